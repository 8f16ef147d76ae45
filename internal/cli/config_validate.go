package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/emissions"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration for syntax and semantic correctness.

This includes:
- Output format, log level and log format names
- Non-negative precision and cache TTL, positive concurrency and batch size
- The custom factor table, when parser.factors_file is set`,
		Example: `  # Validate current configuration
  ecotrack config validate

  # Validate and show detailed information
  ecotrack config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	factors := emissions.Default().Len()
	if cfg.Parser.FactorsFile != "" {
		reg, err := emissions.LoadFile(cfg.Parser.FactorsFile)
		if err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		factors = reg.Len()
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		cmd.Println()
		cmd.Println("Configuration details:")
		cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
		cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
		cmd.Printf("  Emission factors: %d\n", factors)
		cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
	}

	return nil
}
