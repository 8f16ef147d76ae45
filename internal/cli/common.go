package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/emissions"
)

// newParser builds a parser over the configured factor table, or the
// embedded table when none is configured.
func newParser(cfg *config.Config) (*activity.Parser, error) {
	if cfg.Parser.FactorsFile == "" {
		return activity.Default(), nil
	}
	reg, err := emissions.LoadFile(cfg.Parser.FactorsFile)
	if err != nil {
		return nil, fmt.Errorf("loading factor table: %w", err)
	}
	logger.Debug().
		Str("factors_file", cfg.Parser.FactorsFile).
		Int("factors", reg.Len()).
		Msg("loaded custom factor table")
	return activity.NewParser(reg), nil
}

// outputFormat returns --output when set, else the configured default.
func outputFormat(cmd *cobra.Command, flagValue string) (string, error) {
	format := config.GetDefaultOutputFormat()
	if cmd.Flags().Changed("output") {
		format = flagValue
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or ndjson)", config.ErrInvalidOutputFormat, format)
	}
}

// factorCategory parses an optional --category for factor lookups, where
// the general sentinel has no rows.
func factorCategory(s string) (emissions.Category, error) {
	if s == "" {
		return "", nil
	}
	c, err := emissions.ParseCategory(s)
	if err != nil {
		return "", err
	}
	if !c.IsKnown() {
		return "", fmt.Errorf("%w: %q has no factors", emissions.ErrUnknownCategory, s)
	}
	return c, nil
}
