package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/batch"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/emissions"
)

// ErrNoInput is returned by parse when there is no text, file or stdin input.
var ErrNoInput = errors.New("no activity text: pass text arguments, --file, or pipe lines on stdin")

type parseParams struct {
	category    string
	output      string
	file        string
	equivalents bool
	concurrency int
	batchSize   int
}

// NewParseCmd creates the parse command. Text arguments are joined into one
// description; --file or piped stdin is parsed line by line in batches.
func NewParseCmd() *cobra.Command {
	var params parseParams

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Estimate the CO2e of activity descriptions",
		Long: `Parses free-text activity descriptions into quantified items priced in kg CO2e.

With text arguments the words are joined into a single description. With --file
(use "-" for stdin), or with no arguments and piped input, every non-blank line
not starting with # is parsed and a per-category summary is printed.`,
		Example: `  # One activity
  ecotrack parse "Had a cheeseburger and fries for lunch"

  # Route to a category explicitly
  ecotrack parse --category waste "threw something out"

  # A whole diary as NDJSON
  ecotrack parse --file diary.txt --output ndjson

  # Piped input with equivalencies
  cat diary.txt | ecotrack parse --equivalents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, params)
		},
	}

	cmd.Flags().StringVar(&params.category, "category", "",
		"force a category: transport, food, energy, shopping, waste or general")
	cmd.Flags().StringVarP(&params.output, "output", "o", config.FormatTable, "output format: table, json or ndjson")
	cmd.Flags().StringVarP(&params.file, "file", "f", "", `read one activity per line from a file ("-" for stdin)`)
	cmd.Flags().BoolVar(&params.equivalents, "equivalents", false, "include relatable CO2e equivalencies")
	cmd.Flags().IntVar(&params.concurrency, "concurrency", 0, "batches parsed at once (0 = config default)")
	cmd.Flags().IntVar(&params.batchSize, "batch-size", 0, "lines per batch (0 = config default)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, params parseParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	hint, err := activity.ParseHint(params.category)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, params.output)
	if err != nil {
		return err
	}
	equivalents := params.equivalents || cfg.Output.Equivalents

	parser, err := newParser(cfg)
	if err != nil {
		return err
	}

	if len(args) > 0 && params.file == "" {
		start := time.Now()
		a, parseErr := parser.Parse(strings.Join(args, " "), hint)
		if parseErr != nil {
			return parseErr
		}
		logger.Info().Ctx(ctx).
			Str("operation", "parse").
			Str("category", a.Category.String()).
			Int("items", len(a.Items)).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("activity parsed")
		return renderActivity(cmd.OutOrStdout(), format, a, equivalents)
	}

	lines, err := readInputLines(cmd, params.file)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrNoInput
	}

	opts := batch.Options{
		Hint:        hint,
		BatchSize:   firstPositive(params.batchSize, cfg.Parser.BatchSize),
		Concurrency: firstPositive(params.concurrency, cfg.Parser.Concurrency),
		OnProgress: func(s batch.ProgressSnapshot) {
			logger.Debug().Ctx(ctx).
				Int("processed", s.ProcessedItems).
				Int("total", s.TotalItems).
				Float64("percent", s.PercentComplete()).
				Msg("batch progress")
		},
	}
	result, err := batch.ParseAll(ctx, parser, lines, opts)
	if err != nil {
		return fmt.Errorf("parsing %d lines: %w", len(lines), err)
	}
	return renderBatch(cmd.OutOrStdout(), format, result, equivalents, cfg.Output.Precision)
}

// readInputLines reads activity lines from path, "-" meaning stdin, or from
// piped stdin when path is empty. An interactive stdin yields no lines.
func readInputLines(cmd *cobra.Command, path string) ([]string, error) {
	var r io.Reader
	switch path {
	case "":
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && isTerminal(f) {
			return nil, nil
		}
		r = in
	case "-":
		r = cmd.InOrStdin()
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening activity file: %w", err)
		}
		defer f.Close()
		r = f
	}

	lines, err := batch.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading activity lines: %w", err)
	}
	return lines, nil
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// NewClassifyCmd creates the classify command, which reports the category
// the keyword classifier assigns without extracting items.
func NewClassifyCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "classify <text...>",
		Short: "Show which category a description falls into",
		Args:  cobra.MinimumNArgs(1),
		Example: `  ecotrack classify "Took the bus downtown"
  ecotrack classify --output json "Bought a new laptop"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(cmd, output)
			if err != nil {
				return err
			}

			category, keyword := activity.ClassifyWithKeyword(strings.Join(args, " "))
			w := cmd.OutOrStdout()
			if format != config.FormatTable {
				return writeJSON(w, struct {
					Category emissions.Category `json:"category"`
					Keyword  string             `json:"keyword,omitempty"`
				}{category, keyword}, format == config.FormatJSON)
			}
			if keyword == "" {
				_, err = fmt.Fprintf(w, "%s (no category keyword matched)\n", category)
				return err
			}
			_, err = fmt.Fprintf(w, "%s (matched %q)\n", category, keyword)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.FormatTable, "output format: table, json or ndjson")
	return cmd
}
