package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/emissions"
	"github.com/rshade/ecotrack/internal/logging"
)

// Options configures ParseAll.
type Options struct {
	// Hint is applied to every line; empty means classify each line.
	Hint emissions.Category

	// BatchSize defaults to DefaultBatchSize when zero.
	BatchSize int

	// Concurrency is the number of batches parsed at once; at least 1.
	Concurrency int

	OnProgress ProgressCallback
}

// Result holds one Activity per input line, in input order, and their totals.
type Result struct {
	Activities []activity.Activity `json:"activities"`
	Summary    activity.Summary    `json:"summary"`
}

// ParseAll parses every line with parser. It fails on an invalid hint or a
// cancelled context; lines that match nothing still produce an empty
// Activity.
func ParseAll(ctx context.Context, parser *activity.Parser, lines []string, opts Options) (Result, error) {
	log := logging.FromContext(ctx)

	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	proc, err := NewProcessor[string](opts.BatchSize)
	if err != nil {
		return Result{}, err
	}
	proc.WithProgressCallback(opts.OnProgress)

	begin := time.Now()
	activities := make([]activity.Activity, len(lines))
	err = proc.ProcessConcurrent(ctx, lines, func(ctx context.Context, batch []string, start int) error {
		for i, line := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, parseErr := parser.Parse(line, opts.Hint)
			if parseErr != nil {
				return fmt.Errorf("line %d: %w", start+i+1, parseErr)
			}
			activities[start+i] = a
		}
		log.Debug().Ctx(ctx).
			Str("component", "batch").
			Int("start", start).
			Int("lines", len(batch)).
			Msg("batch parsed")
		return nil
	}, opts.Concurrency)
	if err != nil {
		return Result{}, err
	}

	result := Result{Activities: activities, Summary: activity.Summarize(activities)}
	log.Info().Ctx(ctx).
		Str("component", "batch").
		Str("operation", "parse_all").
		Int("lines", len(lines)).
		Int("matched", result.Summary.Matched).
		Float64("total_co2e_kg", result.Summary.TotalCO2Impact).
		Int64("duration_ms", time.Since(begin).Milliseconds()).
		Msg("batch parse complete")
	return result, nil
}

// MaxLineBytes is the longest input line ReadLines accepts.
const MaxLineBytes = 1 << 20

// ReadLines reads one activity description per line, trimming whitespace
// and skipping blank lines and lines starting with '#'. A line longer than
// MaxLineBytes fails with bufio.ErrTooLong.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineBytes)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading activity lines: %w", err)
	}
	return lines, nil
}
