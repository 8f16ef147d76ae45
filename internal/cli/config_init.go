package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ecotrack/internal/config"
)

// errConfigExists is returned by config init when the target file exists.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a .ecotrack/ directory found upward from the working
// directory, or --project-dir), it creates the project-local config.yaml and
// .gitignore. Otherwise, it creates the global ~/.ecotrack/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project, creates $PROJECT/.ecotrack/config.yaml with a .gitignore that
keeps logs and exports out of version control. Use --project-dir to start a new
project, or --global to force the user configuration even inside a project.`,
		Example: `  # Create the user configuration
  ecotrack config init --global

  # Start project-local configuration in the current directory
  ecotrack --project-dir . config init

  # Create configuration, overwriting existing
  ecotrack config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			wd, _ := os.Getwd()
			projectDir := config.ResolveProjectDir(cmd.Context(), projectFlag, wd)

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even inside a project")

	return cmd
}

// checkWritable fails unless path is absent or force is set.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errConfigExists
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, config.ConfigFileName)
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := config.Defaults().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Create .gitignore (never overwrites existing)
	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep logs and exports out of version control\n")
	}
	return nil
}

// initGlobalConfig creates global config at ~/.ecotrack/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err = checkWritable(path, force); err != nil {
		return err
	}

	if err = config.Defaults().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file, project and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			w := cmd.OutOrStdout()
			if output == config.FormatJSON {
				return writeJSON(w, cfg, true)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config: %w", err)
			}
			_, err = w.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
