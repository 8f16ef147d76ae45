package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/emissions"
	"github.com/rshade/ecotrack/internal/pagination"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "keyword", args: []string{"classify", "Drove 25 miles"}, want: "transport (matched \"drove\")\n"},
		{name: "joined words", args: []string{"classify", "Had", "a", "burger"}, want: "food (matched \"burger\")\n"},
		{name: "no keyword", args: []string{"classify", "nothing to see"}, want: "general (no category keyword matched)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			out, err := execute(t, nil, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestClassify_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "classify", "-o", "json", "Used 10 kWh of electricity")
	require.NoError(t, err)

	var got struct {
		Category emissions.Category `json:"category"`
		Keyword  string             `json:"keyword"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, emissions.CategoryEnergy, got.Category)
	assert.NotEmpty(t, got.Keyword)
}

func TestClassify_RequiresText(t *testing.T) {
	setupCLITest(t)
	_, err := execute(t, nil, "classify")
	require.Error(t, err)
}

func TestFactorsList(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "factors", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, emissions.Default().Len()+1)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.True(t, strings.HasPrefix(lines[1], "beef"))
}

func TestFactorsList_Category(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "factors", "list", "--category", "waste", "-o", "json")
	require.NoError(t, err)

	var got []emissions.EmissionFactor
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, emissions.Default().FactorsByCategory(emissions.CategoryWaste), got)

	for _, bad := range []string{"travel", "general"} {
		_, err = execute(t, nil, "factors", "list", "--category", bad)
		require.ErrorIs(t, err, emissions.ErrUnknownCategory, bad)
	}
}

func TestFactorsGet(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "factors", "get", "car_gasoline")
	require.NoError(t, err)
	assert.Equal(t, "car_gasoline (transport): 0.4 kg CO2e per mile [EPA 2023]\n", out)

	out, err = execute(t, nil, "factors", "get", "-o", "json", "apple", "--category", "food")
	require.NoError(t, err)
	var got emissions.EmissionFactor
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "apples", got.Name)

	_, err = execute(t, nil, "factors", "get", "unobtainium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no emission factor matches")
}

func TestFactorsList_SortAndPage(t *testing.T) {
	setupCLITest(t)

	out, err := execute(t, nil, "factors", "list", "--category", "transport",
		"--sort", "value:desc", "--limit", "2", "-o", "json")
	require.NoError(t, err)

	var got []emissions.EmissionFactor
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "truck_gasoline", got[0].Name)
	assert.Equal(t, "suv_gasoline", got[1].Name)

	out, err = execute(t, nil, "factors", "list", "--page", "2", "--page-size", "3", "-o", "ndjson")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.Contains(t, out, `"name":"chicken"`)

	_, err = execute(t, nil, "factors", "list", "--sort", "source")
	require.ErrorIs(t, err, pagination.ErrInvalidSortField)

	_, err = execute(t, nil, "factors", "list", "--page", "1", "--offset", "2", "--page-size", "2")
	require.ErrorIs(t, err, pagination.ErrMixedPaginationModes)
}
