package activity

import (
	"fmt"
	"sync"

	"github.com/rshade/ecotrack/internal/emissions"
)

// GeneralFallback is the extractor order tried for text the classifier
// could not place. The first extractor that yields items wins.
//
//nolint:gochecknoglobals // Fixed policy table, read-only.
var GeneralFallback = []emissions.Category{
	emissions.CategoryFood,
	emissions.CategoryTransport,
}

// Parser resolves a category, runs the matching extractor and aggregates
// the result. A Parser is immutable and safe for concurrent use.
type Parser struct {
	registry   *emissions.Registry
	extractors map[emissions.Category]Extractor
}

// NewParser returns a Parser with the five category extractors over reg.
func NewParser(reg *emissions.Registry) *Parser {
	return &Parser{
		registry: reg,
		extractors: map[emissions.Category]Extractor{
			emissions.CategoryFood:      NewFoodExtractor(reg),
			emissions.CategoryTransport: NewTransportExtractor(reg),
			emissions.CategoryEnergy:    NewEnergyExtractor(reg),
			emissions.CategoryShopping:  NewShoppingExtractor(reg),
			emissions.CategoryWaste:     NewWasteExtractor(reg),
		},
	}
}

// Registry returns the registry the parser prices against.
func (p *Parser) Registry() *emissions.Registry { return p.registry }

// Parse estimates the CO2e of an activity description.
//
// An empty hint lets the classifier choose the category. A hint of
// CategoryGeneral, or a general classification, tries GeneralFallback in
// order. Text that matches nothing yields an empty Activity, never an error;
// the only error is ErrInvalidCategory for a hint outside the fixed set.
func (p *Parser) Parse(text string, hint emissions.Category) (Activity, error) {
	category := hint
	switch {
	case hint == "":
		category = Classify(text)
	case !hint.IsKnown() && hint != emissions.CategoryGeneral:
		return Activity{}, fmt.Errorf("%w: %q", ErrInvalidCategory, hint)
	}

	return Aggregate(text, category, p.Extract(text, category)), nil
}

// Extract runs the extractor for category, or the general fallback chain.
func (p *Parser) Extract(text string, category emissions.Category) []Item {
	if ex, ok := p.extractors[category]; ok {
		return ex.Extract(text)
	}
	for _, c := range GeneralFallback {
		if items := p.extractors[c].Extract(text); len(items) > 0 {
			return items
		}
	}
	return nil
}

// ParseHint converts a user-supplied category name into a parse hint.
// An empty string means "classify"; anything outside the fixed set returns
// ErrInvalidCategory.
func ParseHint(s string) (emissions.Category, error) {
	if s == "" {
		return "", nil
	}
	c, err := emissions.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

//nolint:gochecknoglobals // Lazily built parser over the embedded registry.
var (
	defaultParserOnce sync.Once
	defaultParser     *Parser
)

// Default returns the process-wide parser over emissions.Default().
func Default() *Parser {
	defaultParserOnce.Do(func() {
		defaultParser = NewParser(emissions.Default())
	})
	return defaultParser
}

// Parse is Default().Parse.
func Parse(text string, hint emissions.Category) (Activity, error) {
	return Default().Parse(text, hint)
}
