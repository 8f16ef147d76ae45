package activity

import (
	"regexp"
	"strings"

	"github.com/rshade/ecotrack/internal/emissions"
)

const (
	// defaultTripMiles is assumed when the text states no distance.
	defaultTripMiles = 5.0

	// kmToMiles converts kilometres to miles.
	kmToMiles = 0.621371

	explicitDistanceConfidence = 0.9
	assumedDistanceConfidence  = 0.6
)

// transportMode maps a mode pattern to the factor it is priced against.
type transportMode struct {
	pattern *regexp.Regexp
	factor  string
}

// transportModes is tried in order and only the first match is used.
//
//nolint:gochecknoglobals // Fixed pattern table, compiled once.
var transportModes = []transportMode{
	{regexp.MustCompile(`(?i)\b(?:drove|drive|driving)\b.*\d+(?:\.\d+)?\s*(?:miles?|mi|km|kilometers?|kilometres?)\b`), "car_gasoline"},
	{regexp.MustCompile(`(?i)\b(?:uber|lyft|taxi)`), "car_gasoline"},
	{regexp.MustCompile(`(?i)\bbus(?:es)?\b`), "bus"},
	{regexp.MustCompile(`(?i)\b(?:train|subway|metro)`), "train"},
	{regexp.MustCompile(`(?i)\b(?:flight|flew|plane|airplane)`), "flight_domestic"},
	{regexp.MustCompile(`(?i)\bwalk`), "walking"},
	{regexp.MustCompile(`(?i)\b(?:bike|biked|biking|cycling|cycled)`), "cycling"},
}

//nolint:gochecknoglobals // Compiled once, read-only.
var distancePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(miles?|mi|km|kilometers?|kilometres?)\b`)

// TransportExtractor emits at most one trip item per text.
type TransportExtractor struct {
	calc Calculator
}

// NewTransportExtractor returns a TransportExtractor over reg.
func NewTransportExtractor(reg *emissions.Registry) *TransportExtractor {
	return &TransportExtractor{calc: NewCalculator(reg)}
}

// Extract finds the first matching travel mode and prices the stated
// distance in miles, assuming 5 miles when none is given.
func (e *TransportExtractor) Extract(text string) []Item {
	for _, mode := range transportModes {
		if !mode.pattern.MatchString(text) {
			continue
		}

		miles, explicit := distanceMiles(text)
		confidence := assumedDistanceConfidence
		if explicit {
			confidence = explicitDistanceConfidence
		}

		item, ok := e.calc.Price(mode.factor, emissions.CategoryTransport, miles, "mile", confidence)
		if !ok {
			return nil
		}
		return []Item{item}
	}
	return nil
}

// distanceMiles returns the first stated distance converted to miles.
func distanceMiles(text string) (float64, bool) {
	m := distancePattern.FindStringSubmatch(text)
	if m == nil {
		return defaultTripMiles, false
	}
	distance := parseNumber(m[1], defaultTripMiles)
	if strings.HasPrefix(strings.ToLower(m[2]), "k") {
		distance *= kmToMiles
	}
	return distance, true
}
