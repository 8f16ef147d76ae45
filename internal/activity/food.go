package activity

import (
	"regexp"

	"github.com/rshade/ecotrack/internal/emissions"
)

// Confidence levels for food items.
const (
	compoundFoodConfidence = 0.8
	wordFoodConfidence     = 0.6

	// defaultFoodWeightKg is the serving assumed for a food word with no
	// common portion.
	defaultFoodWeightKg = 0.1
)

// foodComponent is one ingredient of a compound food.
type foodComponent struct {
	name   string
	weight float64
}

// compoundFood maps a dish pattern to its ingredient breakdown. Weights are
// in the ingredient factor's unit (kg, or liter for milk and beer).
// The pattern's first capture group is an optional leading count ("2 burgers",
// "3 cups of coffee").
type compoundFood struct {
	pattern    *regexp.Regexp
	components []foodComponent
}

// countPrefix captures a leading count, optionally followed by a serving
// container ("3 cups of"). Dish bodies match anywhere in a word, so
// "veggieburger" and "10burgers" both count.
const countPrefix = `(?i)(?:\b(\d+(?:\.\d+)?)\s*(?:(?:cups?|slices?|servings?|bowls?|pieces?|portions?|plates?)\s+of\s+)?)?`

func dish(body string, components ...foodComponent) compoundFood {
	return compoundFood{
		pattern:    regexp.MustCompile(countPrefix + `(?:` + body + `)`),
		components: components,
	}
}

// compoundFoods is scanned in order; every occurrence of every dish counts.
//
//nolint:gochecknoglobals // Fixed pattern table, compiled once.
var compoundFoods = []compoundFood{
	dish(`(?:ham|cheese)?burgers?`,
		foodComponent{"beef", 0.15}, foodComponent{"bread", 0.06}, foodComponent{"cheese", 0.02}),
	dish(`chicken sandwich(?:es)?`,
		foodComponent{"chicken", 0.12}, foodComponent{"bread", 0.06}),
	dish(`pizza(?: slices?)?`,
		foodComponent{"cheese", 0.03}, foodComponent{"bread", 0.08}, foodComponent{"tomatoes", 0.02}),
	dish(`(?:beef )?steaks?`,
		foodComponent{"beef", 0.25}),
	dish(`chicken breasts?`,
		foodComponent{"chicken", 0.18}),
	dish(`pasta`,
		foodComponent{"pasta", 0.15}),
	dish(`rice (?:bowl|dish)(?:es|s)?`,
		foodComponent{"rice", 0.2}),
	dish(`salads?`,
		foodComponent{"lettuce", 0.1}, foodComponent{"tomatoes", 0.05}),
	dish(`coffees?`,
		foodComponent{"coffee", 0.01}),
	dish(`glass(?:es)? of milk`,
		foodComponent{"milk", 0.25}),
	dish(`beers?`,
		foodComponent{"beer", 0.5}),
}

// FoodExtractor recognises dishes first and falls back to single food words.
type FoodExtractor struct {
	registry *emissions.Registry
	calc     Calculator
}

// NewFoodExtractor returns a FoodExtractor over reg.
func NewFoodExtractor(reg *emissions.Registry) *FoodExtractor {
	return &FoodExtractor{registry: reg, calc: NewCalculator(reg)}
}

// Extract breaks known dishes into weighted ingredients. Only when no dish
// matches does it price individual words, sizing each from the common
// portions table or a 100 g default, scaled by the first number in the text.
func (e *FoodExtractor) Extract(text string) []Item {
	items := e.extractDishes(text)
	if len(items) > 0 {
		return items
	}
	return e.extractWords(text)
}

func (e *FoodExtractor) extractDishes(text string) []Item {
	var items []Item
	for _, d := range compoundFoods {
		for _, m := range d.pattern.FindAllStringSubmatch(text, -1) {
			multiplier := parseNumber(m[1], 1)
			for _, c := range d.components {
				item, ok := e.calc.Price(c.name, emissions.CategoryFood, c.weight*multiplier, "", compoundFoodConfidence)
				if !ok {
					continue
				}
				items = append(items, item)
			}
		}
	}
	return items
}

func (e *FoodExtractor) extractWords(text string) []Item {
	count, _ := firstNumber(text, 1)

	var items []Item
	for _, word := range Tokenize(text) {
		factor, ok := lookupWord(e.registry, word, emissions.CategoryFood)
		if !ok {
			continue
		}
		quantity := defaultFoodWeightKg * count
		if portion, found := e.portionFor(word); found {
			quantity = portion.Weight * count
		}
		items = append(items, e.calc.priceFactor(factor, quantity, "", wordFoodConfidence))
	}
	return items
}

// portionFor checks the word and its singular form against the portions table.
func (e *FoodExtractor) portionFor(word string) (emissions.Portion, bool) {
	if p, ok := e.registry.Portion(word); ok {
		return p, true
	}
	if singular, ok := singularOf(word); ok {
		return e.registry.Portion(singular)
	}
	return emissions.Portion{}, false
}
