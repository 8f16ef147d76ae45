package activity

import "github.com/rshade/ecotrack/internal/emissions"

const (
	fallbackWasteFactor = "general_waste"

	// defaultWasteKg is assumed for unidentified waste with no stated weight.
	defaultWasteKg = 2.0

	namedWasteConfidence    = 0.6
	fallbackWasteConfidence = 0.4
)

// WasteExtractor prices named waste streams and never returns an empty result.
type WasteExtractor struct {
	registry *emissions.Registry
	calc     Calculator
}

// NewWasteExtractor returns a WasteExtractor over reg.
func NewWasteExtractor(reg *emissions.Registry) *WasteExtractor {
	return &WasteExtractor{registry: reg, calc: NewCalculator(reg)}
}

// Extract prices each word naming a waste factor at the first number in the
// text (default 1 kg). Without one, it emits general waste at the first
// number or 2 kg.
func (e *WasteExtractor) Extract(text string) []Item {
	kg, _ := firstNumber(text, 1)

	var items []Item
	for _, word := range Tokenize(text) {
		factor, ok := lookupWord(e.registry, word, emissions.CategoryWaste)
		if !ok {
			continue
		}
		items = append(items, e.calc.priceFactor(factor, kg, "kg", namedWasteConfidence))
	}
	if len(items) > 0 {
		return items
	}

	weight, _ := firstNumber(text, defaultWasteKg)
	item, _ := e.calc.Price(fallbackWasteFactor, emissions.CategoryWaste, weight, "kg", fallbackWasteConfidence)
	return []Item{item}
}
