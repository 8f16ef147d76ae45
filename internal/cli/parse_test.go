package cli_test

import (
	"bufio"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/cli"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/emissions"
)

const diary = `Drove 25 miles to work
# lunch was skipped

Used 10 kWh of electricity
threw something out
`

type parsedJSON struct {
	Activity      activity.Activity `json:"activity"`
	Equivalencies *struct {
		DisplayText string `json:"displayText"`
	} `json:"equivalencies"`
}

type batchJSON struct {
	Activities []parsedJSON     `json:"activities"`
	Summary    activity.Summary `json:"summary"`
}

func TestParse_Table(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "parse", "Drove", "25", "miles", "to", "work")
	require.NoError(t, err)

	want, err := activity.Parse("Drove 25 miles to work", "")
	require.NoError(t, err)
	assert.Equal(t, activity.Format(want)+"\n", out)
	assert.Contains(t, out, "• car_gasoline: 25.00 mile (10.00 kg CO₂e)")
	assert.Contains(t, out, "Confidence: 90%")
}

func TestParse_Equivalents(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "parse", "--equivalents", "Drove 25 miles to work")
	require.NoError(t, err)
	assert.Contains(t, out, "Equivalent to driving ~52 miles or charging ~1,217 smartphones")
}

func TestParse_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "parse", "-o", "json", "--category", "waste", "threw something out")
	require.NoError(t, err)

	var got parsedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, emissions.CategoryWaste, got.Activity.Category)
	require.Len(t, got.Activity.Items, 1)
	assert.Equal(t, "general_waste", got.Activity.Items[0].Name)
	assert.InDelta(t, 1.0, got.Activity.TotalCO2Impact, 1e-9)
	assert.Nil(t, got.Equivalencies)
}

func TestParse_DefaultFormatFromConfig(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvOutputFormat, config.FormatNDJSON)

	out, err := execute(t, nil, "parse", "Took the bus downtown")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	var got parsedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "bus", got.Activity.Items[0].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown category",
			args:    []string{"parse", "--category", "travel", "Drove 25 miles"},
			wantErr: activity.ErrInvalidCategory,
		},
		{
			name:    "unknown output format",
			args:    []string{"parse", "-o", "xml", "Drove 25 miles"},
			wantErr: config.ErrInvalidOutputFormat,
		},
		{
			name:    "no input",
			args:    []string{"parse"},
			wantErr: cli.ErrNoInput,
		},
		{
			name:    "missing file",
			args:    []string{"parse", "--file", "does-not-exist.txt"},
			wantMsg: "opening activity file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)

			_, err := execute(t, strings.NewReader(""), tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_BatchFromStdin(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, strings.NewReader(diary), "parse", "--output", "json", "--batch-size", "1")
	require.NoError(t, err)

	var got batchJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Activities, 3)
	assert.Equal(t, "Drove 25 miles to work", got.Activities[0].Activity.OriginalText)
	assert.Equal(t, "Used 10 kWh of electricity", got.Activities[1].Activity.OriginalText)
	assert.Equal(t, emissions.CategoryGeneral, got.Activities[2].Activity.Category)

	assert.Equal(t, 3, got.Summary.Activities)
	assert.Equal(t, 2, got.Summary.Matched)
	assert.InDelta(t, 13.86, got.Summary.TotalCO2Impact, 1e-9)
}

func TestParse_BatchFromFileNDJSON(t *testing.T) {
	setupCLITest(t)
	path := writeFile(t, filepath.Join(t.TempDir(), "diary.txt"), diary)

	out, err := execute(t, nil, "parse", "--file", path, "--output", "ndjson", "--concurrency", "2")
	require.NoError(t, err)

	var totals []float64
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var got parsedJSON
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &got))
		totals = append(totals, got.Activity.TotalCO2Impact)
	}
	require.Len(t, totals, 3)
	assert.InDelta(t, 10.0, totals[0], 1e-9)
	assert.InDelta(t, 3.86, totals[1], 1e-9)
	assert.Zero(t, totals[2])
}

func TestParse_BatchTable(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, strings.NewReader(diary), "parse", "--file", "-")
	require.NoError(t, err)

	assert.Contains(t, out, "Category: transport")
	assert.Contains(t, out, `No recognizable activities found in: "threw something out"`)
	assert.Contains(t, out, "Summary: 3 activities, 2 matched, 2 items")
	assert.Contains(t, out, "Total: 13.86 kg CO₂e")
	assert.Contains(t, out, "Average confidence: 90%")
	assert.Contains(t, out, "Equivalent to driving ~72 miles")
}

func TestParse_CustomFactorTable(t *testing.T) {
	home := setupCLITest(t)
	table := writeFile(t, filepath.Join(home, "factors.yaml"), `factors:
  - {name: car_gasoline, category: transport, value: 1.0, unit: mile, source: test}
`)
	cfgPath := writeFile(t, filepath.Join(home, "custom.yaml"),
		"parser:\n  factors_file: "+table+"\n  concurrency: 1\n  batch_size: 10\n")

	out, err := execute(t, nil, "--config", cfgPath, "parse", "-o", "json", "Drove 25 miles to work")
	require.NoError(t, err)

	var got parsedJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 25.0, got.Activity.TotalCO2Impact, 1e-9)
}
