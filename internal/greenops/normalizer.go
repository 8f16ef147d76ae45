package greenops

import (
	"math"
	"strings"
)

// unitFactor returns the kilogram conversion for unit. Matching ignores case,
// surrounding spaces, a " CO2e" or "CO₂e" suffix and a space before it, so
// "kg CO2e", "kgCO2e" and "KG" are all kilograms.
func unitFactor(unit string) (float64, bool) {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, "co2e")
	u = strings.TrimSuffix(u, "co₂e")
	switch strings.TrimSpace(u) {
	case "g":
		return GramsToKg, true
	case "kg":
		return KgToKg, true
	case "t":
		return TonsToKg, true
	case "lb":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts value in unit to kilograms.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// IsRecognizedUnit reports whether NormalizeToKg accepts unit.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactor(unit)
	return ok
}
