package activity

import "github.com/rshade/ecotrack/internal/emissions"

// Calculator prices extracted quantities against a registry.
type Calculator struct {
	registry *emissions.Registry
}

// NewCalculator returns a Calculator over reg.
func NewCalculator(reg *emissions.Registry) Calculator {
	return Calculator{registry: reg}
}

// Price builds an item for quantity units of the named factor. When the
// factor exists the item takes its canonical name, its CO2e impact and, if
// unit is empty, its unit. Otherwise the item keeps name and unit as given,
// has zero impact, and ok is false.
func (c Calculator) Price(
	name string,
	category emissions.Category,
	quantity float64,
	unit string,
	confidence float64,
) (item Item, ok bool) {
	item = Item{Name: name, Quantity: quantity, Unit: unit, Confidence: confidence}

	factor, found := c.registry.FindFactor(name, category)
	if !found {
		return item, false
	}
	return c.priceFactor(factor, quantity, unit, confidence), true
}

func (c Calculator) priceFactor(factor emissions.EmissionFactor, quantity float64, unit string, confidence float64) Item {
	if unit == "" {
		unit = factor.Unit
	}
	return Item{
		Name:       factor.Name,
		Quantity:   quantity,
		Unit:       unit,
		CO2Impact:  c.registry.CalculateEmission(factor.Name, quantity, factor.Category),
		Confidence: confidence,
	}
}

// Aggregate assembles an Activity: the total is the sum of item impacts and
// the confidence is the mean item confidence, or 0 without items.
func Aggregate(text string, category emissions.Category, items []Item) Activity {
	if items == nil {
		items = []Item{}
	}

	var total, confidence float64
	for _, item := range items {
		total += item.CO2Impact
		confidence += item.Confidence
	}
	if len(items) > 0 {
		confidence /= float64(len(items))
	}

	return Activity{
		OriginalText:   text,
		Category:       category,
		Items:          items,
		TotalCO2Impact: total,
		Confidence:     confidence,
	}
}
