package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

// Calculate normalizes input to kilograms and computes the requested
// equivalencies, or all of them when types is empty.
//
// Amounts below MinEquivalencyThresholdKg produce an empty output with
// InputKg set and no error. Bad units, negative values and non-finite
// values return an empty output and the matching sentinel error.
func Calculate(input CarbonInput, types ...EquivalencyType) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	return CalculateKg(kg, types...)
}

// CalculateKg is Calculate for an amount already in kg CO2e.
func CalculateKg(kg float64, types ...EquivalencyType) (EquivalencyOutput, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
	}
	if kg < 0 {
		return EquivalencyOutput{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}
	if len(types) == 0 {
		types = AllEquivalencies
	}

	results := make([]EquivalencyResult, 0, len(types))
	for _, t := range types {
		info, ok := equivalencies[t]
		if !ok {
			return EquivalencyOutput{IsEmpty: true}, fmt.Errorf("%w: %d", ErrUnknownEquivalency, t)
		}
		v := kg / info.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           t,
			Name:           info.name,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          info.label,
		})
	}

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: displayText(results),
		CompactText: compactText(results),
	}, nil
}

// Describe returns the display text for kg, or "" when kg is below the
// threshold or invalid. Failures are logged, not returned.
func Describe(kg float64, types ...EquivalencyType) string {
	out, err := CalculateKg(kg, types...)
	if err != nil {
		log.Warn().Err(err).Float64("kg", kg).Msg("equivalency calculation failed")
		return ""
	}
	return out.DisplayText
}

// displayText joins the phrases of at most the first two results.
func displayText(results []EquivalencyResult) string {
	const maxPhrases = 2
	phrases := make([]string, 0, maxPhrases)
	for _, r := range results {
		if len(phrases) == maxPhrases {
			break
		}
		phrases = append(phrases, fmt.Sprintf(equivalencies[r.Type].phrase, r.FormattedValue))
	}
	return "Equivalent to " + strings.Join(phrases, " or ")
}

func compactText(results []EquivalencyResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.FormattedValue+" "+equivalencies[r.Type].short)
	}
	return "(≈ " + strings.Join(parts, ", ") + ")"
}

// formatEquivalencyValue abbreviates millions and rounds smaller values to
// separated integers.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
