package activity

import (
	"regexp"

	"github.com/rshade/ecotrack/internal/emissions"
)

const (
	electricityFactor = "electricity_us_avg"
	heatingFactor     = "natural_gas"

	// defaultHeatingHours is assumed when heating is mentioned without a number.
	defaultHeatingHours = 8.0
	// thermsPerHeatingHour is a rough household furnace draw.
	thermsPerHeatingHour = 0.5

	meteredConfidence   = 0.9
	estimatedConfidence = 0.5
)

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	kwhPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*kwh`)
	heatingPattern = regexp.MustCompile(`(?i)heat|thermostat`)
)

// EnergyExtractor recognises metered electricity and heating mentions. The
// two checks are independent, so one text can yield both items.
type EnergyExtractor struct {
	calc Calculator
}

// NewEnergyExtractor returns an EnergyExtractor over reg.
func NewEnergyExtractor(reg *emissions.Registry) *EnergyExtractor {
	return &EnergyExtractor{calc: NewCalculator(reg)}
}

// Extract emits an electricity item for "<n> kWh" and a natural gas item
// for heating or thermostat mentions, estimated at half a therm per hour.
func (e *EnergyExtractor) Extract(text string) []Item {
	var items []Item

	if m := kwhPattern.FindStringSubmatch(text); m != nil {
		kwh := parseNumber(m[1], 0)
		item, _ := e.calc.Price(electricityFactor, emissions.CategoryEnergy, kwh, "kWh", meteredConfidence)
		items = append(items, item)
	}

	if heatingPattern.MatchString(text) {
		hours, _ := firstNumber(text, defaultHeatingHours)
		therms := hours * thermsPerHeatingHour
		item, _ := e.calc.Price(heatingFactor, emissions.CategoryEnergy, therms, "therm", estimatedConfidence)
		items = append(items, item)
	}

	return items
}
