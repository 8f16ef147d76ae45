package pagination

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/rshade/ecotrack/internal/emissions"
)

// Sort fields accepted by FactorSorter.
const (
	FieldName     = "name"
	FieldCategory = "category"
	FieldValue    = "value"
	FieldUnit     = "unit"
)

// FactorSorter orders emission factors by one field.
type FactorSorter struct {
	validFields map[string]func(a, b emissions.EmissionFactor) int
}

// NewFactorSorter returns a sorter over name, category, value and unit.
func NewFactorSorter() *FactorSorter {
	return &FactorSorter{
		validFields: map[string]func(a, b emissions.EmissionFactor) int{
			FieldName:     func(a, b emissions.EmissionFactor) int { return strings.Compare(a.Name, b.Name) },
			FieldCategory: func(a, b emissions.EmissionFactor) int { return cmp.Compare(a.Category, b.Category) },
			FieldValue:    func(a, b emissions.EmissionFactor) int { return cmp.Compare(a.Value, b.Value) },
			FieldUnit:     func(a, b emissions.EmissionFactor) int { return strings.Compare(a.Unit, b.Unit) },
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *FactorSorter) IsValidField(field string) bool {
	_, ok := s.validFields[field]
	return ok
}

// GetValidFields returns all valid sort fields in a stable order.
func (s *FactorSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

// Sort returns a sorted copy of factors. Ties keep table order. An empty
// field returns factors unchanged; an unknown one is an error.
func (s *FactorSorter) Sort(factors []emissions.EmissionFactor, field, order string) ([]emissions.EmissionFactor, error) {
	if field == "" {
		return factors, nil
	}
	compare, ok := s.validFields[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(s.GetValidFields(), ", "))
	}

	sorted := slices.Clone(factors)
	slices.SortStableFunc(sorted, func(a, b emissions.EmissionFactor) int {
		if order == SortOrderDesc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return sorted, nil
}

// Page validates params, sorts factors and returns the requested window
// with its metadata.
func (s *FactorSorter) Page(
	factors []emissions.EmissionFactor,
	params Params,
) ([]emissions.EmissionFactor, Meta, error) {
	if err := params.Validate(); err != nil {
		return nil, Meta{}, err
	}
	sorted, err := s.Sort(factors, params.SortField, params.SortOrder)
	if err != nil {
		return nil, Meta{}, err
	}
	return Apply(params, sorted), NewMeta(params, len(sorted)), nil
}
