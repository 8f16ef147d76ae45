package activity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecotrack/internal/emissions"
)

const floatTolerance = 1e-9

func TestParse_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		hint           emissions.Category
		wantCategory   emissions.Category
		wantItem       Item
		wantConfidence float64
	}{
		{
			name:           "transport with explicit distance",
			text:           "Drove 25 miles to work",
			wantCategory:   emissions.CategoryTransport,
			wantItem:       Item{Name: "car_gasoline", Quantity: 25, Unit: "mile", CO2Impact: 10.0, Confidence: 0.9},
			wantConfidence: 0.9,
		},
		{
			name:           "transport without distance",
			text:           "Took the bus downtown",
			wantCategory:   emissions.CategoryTransport,
			wantItem:       Item{Name: "bus", Quantity: 5, Unit: "mile", CO2Impact: 0.9, Confidence: 0.6},
			wantConfidence: 0.6,
		},
		{
			name:           "kilometres converted to miles",
			text:           "Drove 10 km to the store",
			wantCategory:   emissions.CategoryTransport,
			wantItem:       Item{Name: "car_gasoline", Quantity: 6.21371, Unit: "mile", CO2Impact: 10 * 0.621371 * 0.4, Confidence: 0.9},
			wantConfidence: 0.9,
		},
		{
			name:           "metered electricity",
			text:           "Used 10 kWh of electricity",
			wantCategory:   emissions.CategoryEnergy,
			wantItem:       Item{Name: "electricity_us_avg", Quantity: 10, Unit: "kWh", CO2Impact: 3.86, Confidence: 0.9},
			wantConfidence: 0.9,
		},
		{
			name:           "waste fallback",
			text:           "threw something out",
			hint:           emissions.CategoryWaste,
			wantCategory:   emissions.CategoryWaste,
			wantItem:       Item{Name: "general_waste", Quantity: 2, Unit: "kg", CO2Impact: 1.0, Confidence: 0.4},
			wantConfidence: 0.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text, tt.hint)
			require.NoError(t, err)

			assert.Equal(t, tt.text, got.OriginalText)
			assert.Equal(t, tt.wantCategory, got.Category)
			require.Len(t, got.Items, 1)

			item := got.Items[0]
			assert.Equal(t, tt.wantItem.Name, item.Name)
			assert.InDelta(t, tt.wantItem.Quantity, item.Quantity, floatTolerance)
			assert.Equal(t, tt.wantItem.Unit, item.Unit)
			assert.InDelta(t, tt.wantItem.CO2Impact, item.CO2Impact, floatTolerance)
			assert.InDelta(t, tt.wantItem.Confidence, item.Confidence, floatTolerance)

			assert.InDelta(t, tt.wantItem.CO2Impact, got.TotalCO2Impact, floatTolerance)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, floatTolerance)
		})
	}
}

func TestParse_KilometreScenarioRoundsTo249(t *testing.T) {
	got, err := Parse("Drove 10 km to the store", "")
	require.NoError(t, err)
	assert.InDelta(t, 6.21, got.Items[0].Quantity, 0.01)
	assert.InDelta(t, 2.49, got.TotalCO2Impact, 0.01)
}

func TestParse_EmptyInput(t *testing.T) {
	got, err := Parse("", "")
	require.NoError(t, err)

	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.TotalCO2Impact)
	assert.Zero(t, got.Confidence)
	assert.Equal(t, emissions.CategoryGeneral, got.Category)
}

func TestParse_NoMatchIsNotAnError(t *testing.T) {
	got, err := Parse("threw something out", "")
	require.NoError(t, err)

	assert.Equal(t, emissions.CategoryGeneral, got.Category)
	assert.True(t, got.IsEmpty())
	assert.Zero(t, got.TotalCO2Impact)
}

func TestParse_InvalidHint(t *testing.T) {
	_, err := Parse("Drove 25 miles", emissions.Category("travel"))
	require.ErrorIs(t, err, ErrInvalidCategory)
	assert.Contains(t, err.Error(), "travel")
}

func TestParse_HintOverridesClassifier(t *testing.T) {
	// "shopping" classifies as food; the hint routes to the shopping extractor.
	got, err := Parse("shopping for shoes", emissions.CategoryShopping)
	require.NoError(t, err)

	assert.Equal(t, emissions.CategoryShopping, got.Category)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "shoes", got.Items[0].Name)
	assert.Equal(t, "pair", got.Items[0].Unit)
}

func TestParse_GeneralFallback(t *testing.T) {
	t.Run("food first", func(t *testing.T) {
		got, err := Parse("2 burgers", emissions.CategoryGeneral)
		require.NoError(t, err)
		assert.Equal(t, emissions.CategoryGeneral, got.Category)
		require.Len(t, got.Items, 3)
		assert.Equal(t, "beef", got.Items[0].Name)
	})

	t.Run("transport when food finds nothing", func(t *testing.T) {
		got, err := Parse("an hour in a cab then the subway", emissions.CategoryGeneral)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "train", got.Items[0].Name)
	})
}

func TestParse_Determinism(t *testing.T) {
	inputs := []string{
		"Drove 25 miles to work",
		"Had a cheeseburger and a beer",
		"Used 12 kWh and ran the heater",
		"Bought 2 t-shirts and jeans",
		"Recycled 3 kg of plastic and paper",
	}

	for _, text := range inputs {
		first, err := Parse(text, "")
		require.NoError(t, err)
		second, err := Parse(text, "")
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), text)
	}
}

func TestParse_AggregationLawAndNonNegativity(t *testing.T) {
	inputs := []struct {
		text string
		hint emissions.Category
	}{
		{"Had a cheeseburger and fries for lunch", emissions.CategoryFood},
		{"Ate grilled chicken with rice for dinner", emissions.CategoryFood},
		{"Flew to New York (500 miles)", ""},
		{"Used 12.5 kWh and the heater for 2 hours", emissions.CategoryEnergy},
		{"Bought 2 t-shirts and jeans", emissions.CategoryShopping},
		{"Threw away 4 kg of paper and plastic", emissions.CategoryWaste},
		{"Walked 3 miles", ""},
		{"", emissions.CategoryWaste},
	}

	for _, in := range inputs {
		got, err := Parse(in.text, in.hint)
		require.NoError(t, err)
		require.NotEmpty(t, got.Items, in.text)

		var sum, conf float64
		for _, item := range got.Items {
			assert.GreaterOrEqual(t, item.CO2Impact, 0.0, in.text)
			assert.GreaterOrEqual(t, item.Quantity, 0.0, in.text)
			assert.GreaterOrEqual(t, item.Confidence, 0.0, in.text)
			assert.LessOrEqual(t, item.Confidence, 1.0, in.text)
			sum += item.CO2Impact
			conf += item.Confidence
		}
		assert.Equal(t, sum, got.TotalCO2Impact, in.text)
		assert.Equal(t, conf/float64(len(got.Items)), got.Confidence, in.text)
		assert.GreaterOrEqual(t, got.TotalCO2Impact, 0.0, in.text)
	}
}

func TestParseHint(t *testing.T) {
	tests := []struct {
		in      string
		want    emissions.Category
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "FOOD", want: emissions.CategoryFood},
		{in: "general", want: emissions.CategoryGeneral},
		{in: "groceries", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHint(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate("x", emissions.CategoryFood, []Item{
		{Name: "a", CO2Impact: 1.5, Confidence: 0.8},
		{Name: "b", CO2Impact: 2.5, Confidence: 0.6},
	})
	assert.InDelta(t, 4.0, got.TotalCO2Impact, floatTolerance)
	assert.InDelta(t, 0.7, got.Confidence, floatTolerance)

	empty := Aggregate("x", emissions.CategoryFood, nil)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Confidence)
}
