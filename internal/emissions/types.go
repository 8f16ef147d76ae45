// Package emissions holds the reference table of greenhouse-gas emission
// factors and answers name lookups against it.
//
// All values are kg CO2e per one unit of the factor's Unit. The table is
// loaded once, never mutated afterwards, and is safe for concurrent readers.
package emissions

import (
	"fmt"
	"strings"
)

// Category is one of the fixed activity domains an emission factor belongs to.
type Category string

const (
	// CategoryTransport covers vehicles, public transit, flights and active travel.
	CategoryTransport Category = "transport"

	// CategoryFood covers food and beverages, measured by weight or volume.
	CategoryFood Category = "food"

	// CategoryEnergy covers household electricity and heating fuels.
	CategoryEnergy Category = "energy"

	// CategoryShopping covers consumer goods, per item or per dollar spent.
	CategoryShopping Category = "shopping"

	// CategoryWaste covers discarded material by weight.
	CategoryWaste Category = "waste"

	// CategoryGeneral is the sentinel for text that matched no category.
	// No factor carries this category.
	CategoryGeneral Category = "general"
)

// Categories lists the factor categories in classification priority order.
//
//nolint:gochecknoglobals // Fixed lookup order shared by classifier and renderers.
var Categories = []Category{
	CategoryTransport,
	CategoryFood,
	CategoryEnergy,
	CategoryShopping,
	CategoryWaste,
}

// String returns the category's canonical lowercase name.
func (c Category) String() string { return string(c) }

// IsKnown reports whether c is one of the five factor categories.
// CategoryGeneral is not a factor category and reports false.
func (c Category) IsKnown() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a user-supplied name into a Category.
// Matching is case-insensitive and ignores surrounding whitespace. The
// "general" sentinel is accepted. Unknown names return ErrUnknownCategory.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.IsKnown() || c == CategoryGeneral {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// EmissionFactor is one immutable row of the reference table.
type EmissionFactor struct {
	// Name is the canonical lowercase identifier (e.g. "car_gasoline").
	Name string `json:"name" yaml:"name"`

	// Category is the activity domain the factor belongs to.
	Category Category `json:"category" yaml:"category"`

	// Subcategory is informational only (e.g. "meat", "public").
	Subcategory string `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`

	// Value is kg CO2e per one Unit. Never negative.
	Value float64 `json:"value" yaml:"value"`

	// Unit is the activity unit the value is expressed against
	// (kg, mile, kWh, item, dollar, therm, liter, pair, gallon).
	Unit string `json:"unit" yaml:"unit"`

	// Source cites where the value comes from.
	Source string `json:"source" yaml:"source"`
}

// Portion is a default serving size for an informally named food.
type Portion struct {
	Weight float64 `json:"weight" yaml:"weight"`
	Unit   string  `json:"unit" yaml:"unit"`
}
