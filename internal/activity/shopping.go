package activity

import (
	"regexp"

	"github.com/rshade/ecotrack/internal/emissions"
)

const (
	spendFactor = "general_retail"

	namedGoodConfidence = 0.7
	spendConfidence     = 0.5
)

//nolint:gochecknoglobals // Compiled once, read-only.
var dollarPattern = regexp.MustCompile(`(?i)\$\s?(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s*dollars?`)

// ShoppingExtractor prices named goods, falling back to spend-based retail.
type ShoppingExtractor struct {
	registry *emissions.Registry
	calc     Calculator
}

// NewShoppingExtractor returns a ShoppingExtractor over reg.
func NewShoppingExtractor(reg *emissions.Registry) *ShoppingExtractor {
	return &ShoppingExtractor{registry: reg, calc: NewCalculator(reg)}
}

// Extract prices every word that names a shopping factor, using the first
// number in the text (default 1) as the count for each. Without named goods
// a "$n" or "n dollars" amount is priced as general retail spend.
func (e *ShoppingExtractor) Extract(text string) []Item {
	count, _ := firstNumber(text, 1)

	var items []Item
	for _, word := range Tokenize(text) {
		factor, ok := lookupWord(e.registry, word, emissions.CategoryShopping)
		if !ok {
			continue
		}
		items = append(items, e.calc.priceFactor(factor, count, "", namedGoodConfidence))
	}
	if len(items) > 0 {
		return items
	}

	m := dollarPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount := parseNumber(m[1], 0)
	if m[1] == "" {
		amount = parseNumber(m[2], 0)
	}
	item, _ := e.calc.Price(spendFactor, emissions.CategoryShopping, amount, "dollar", spendConfidence)
	return []Item{item}
}
