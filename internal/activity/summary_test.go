package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/emissions"
)

func TestSummarize(t *testing.T) {
	var activities []Activity
	for _, text := range []string{
		"hello",
		"Used 10 kWh of electricity",
		"Drove 25 miles to work",
		"Took the bus downtown",
	} {
		a, err := Parse(text, "")
		require.NoError(t, err)
		activities = append(activities, a)
	}

	s := Summarize(activities)
	assert.Equal(t, 4, s.Activities)
	assert.Equal(t, 3, s.Matched)
	assert.Equal(t, 3, s.Items)
	assert.InDelta(t, 3.86+10.0+0.9, s.TotalCO2Impact, floatTolerance)
	assert.InDelta(t, (0.9+0.9+0.6)/3, s.Confidence, floatTolerance)

	require.Len(t, s.Categories, 3)
	assert.Equal(t, emissions.CategoryTransport, s.Categories[0].Category)
	assert.Equal(t, 2, s.Categories[0].Activities)
	assert.InDelta(t, 10.9, s.Categories[0].TotalCO2Impact, floatTolerance)
	assert.Equal(t, emissions.CategoryEnergy, s.Categories[1].Category)
	assert.Equal(t, emissions.CategoryGeneral, s.Categories[2].Category)
	assert.Equal(t, 0, s.Categories[2].Items)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Activities)
	assert.Zero(t, s.Confidence)
	assert.NotNil(t, s.Categories)
	assert.Empty(t, s.Categories)
}
