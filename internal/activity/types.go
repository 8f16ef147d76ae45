// Package activity turns a free-text description of a daily activity into
// a quantified, confidence-scored CO2e estimate.
//
// Text is routed to one of five category extractors (food, transport,
// energy, shopping, waste), either by a caller-supplied hint or by a
// keyword classifier. Extractors pull quantities and item names out of the
// text with fixed patterns and price them against an emissions.Registry.
// Everything is deterministic and rule based: the same input always gives
// the same output, and a parse never fails because nothing matched.
package activity

import "github.com/rshade/ecotrack/internal/emissions"

// Item is one quantified line of a parsed activity.
type Item struct {
	// Name is the matched factor name, or the fallback name when no factor
	// backed the item.
	Name string `json:"name"`

	// Quantity is expressed in Unit and is never negative.
	Quantity float64 `json:"quantity"`

	// Unit is the quantity's unit label (kg, mile, kWh, therm, item, dollar, ...).
	Unit string `json:"unit"`

	// CO2Impact is Quantity times the factor value in kg CO2e, 0 without a factor.
	CO2Impact float64 `json:"co2Impact"`

	// Confidence in [0,1] reflects how much explicit text backed the item.
	// It is a heuristic indicator, not a probability.
	Confidence float64 `json:"confidence"`
}

// Activity is the aggregate result of one parse.
type Activity struct {
	OriginalText   string             `json:"originalText"`
	Category       emissions.Category `json:"category"`
	Items          []Item             `json:"items"`
	TotalCO2Impact float64            `json:"totalCO2Impact"`
	Confidence     float64            `json:"confidence"`
}

// IsEmpty reports whether the parse produced no items.
func (a Activity) IsEmpty() bool { return len(a.Items) == 0 }

// Extractor pulls quantified items for one category out of free text.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(text string) []Item
}
