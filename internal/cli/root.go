package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// baseLogger is logger without the cli component, for other components.
var baseLogger zerolog.Logger //nolint:gochecknoglobals // Set with logger in setupLogging

// NewRootCmd creates the root Cobra command for the ecotrack CLI.
// It loads configuration, wires up logging and tracing, and registers the
// parse, classify, factors, serve and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "ecotrack",
		Short:   "Estimate the carbon footprint of everyday activities",
		Long:    "ecotrack: Turn free-text activity descriptions into kg CO2e estimates",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			// Flag and config errors above print usage; runtime errors below do not.
			cmd.SilenceUsage = true

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default ~/.ecotrack/config.yaml)")
	cmd.PersistentFlags().String("log-format", "", "log format: console or json (overrides config)")
	cmd.PersistentFlags().String("project-dir", "",
		"project directory holding .ecotrack/config.yaml (default: search upward from cwd)")
	cmd.AddCommand(NewParseCmd(), NewClassifyCmd(), newFactorsCmd(), NewServeCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Estimate a single activity
  ecotrack parse "Drove 25 miles to work"

  # Force the category and show equivalencies
  ecotrack parse --category waste --equivalents "threw something out"

  # Parse a diary file, one activity per line, as JSON
  ecotrack parse --file week.txt --output json

  # See which category a description falls into
  ecotrack classify "Had a cheeseburger for lunch"

  # Browse the emission factor table
  ecotrack factors list --category transport

  # Serve the HTTP API
  ecotrack serve --addr :8080

  # Initialize configuration
  ecotrack config init`

// loadConfig resolves the effective configuration and installs it as the
// global config. --config replaces the user file; otherwise a project-local
// .ecotrack/config.yaml is merged over it.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var cfg *config.Config
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		projectFlag, _ := cmd.Flags().GetString("project-dir")
		wd, _ := os.Getwd()
		cfg = config.NewWithProjectDir(ctx, config.ResolveProjectDir(ctx, projectFlag, wd))
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}

// newFactorsCmd creates the factors command group.
func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "factors", Short: "Browse the emission factor table"}
	cmd.AddCommand(NewFactorsListCmd(), NewFactorsGetCmd())
	return cmd
}
