package emissions

import "strings"

// Registry is a read-only, insertion-ordered table of emission factors plus
// the common food portions table. Construct it with New, Load or Default.
type Registry struct {
	factors []EmissionFactor
	// lowered caches strings.ToLower(factors[i].Name).
	lowered  []string
	portions map[string]Portion
}

// New builds a Registry over a copy of factors and portions after validating
// every row. Row order is kept and acts as the lookup tie-break.
func New(factors []EmissionFactor, portions map[string]Portion) (*Registry, error) {
	if err := validateFactors(factors); err != nil {
		return nil, err
	}

	r := &Registry{
		factors:  make([]EmissionFactor, len(factors)),
		lowered:  make([]string, len(factors)),
		portions: make(map[string]Portion, len(portions)),
	}
	copy(r.factors, factors)
	for i, f := range r.factors {
		r.lowered[i] = strings.ToLower(f.Name)
	}
	for name, p := range portions {
		r.portions[strings.ToLower(name)] = p
	}
	return r, nil
}

// FindFactor looks up a factor by item name, case-insensitively.
//
// Matching runs three passes over the table and returns the first row of the
// first pass that matches:
//
//  1. exact name match;
//  2. the factor name contains itemName;
//  3. either name contains the other.
//
// A non-empty category restricts every pass to that category. A blank
// itemName never matches.
func (r *Registry) FindFactor(itemName string, category Category) (EmissionFactor, bool) {
	term := strings.ToLower(strings.TrimSpace(itemName))
	if term == "" {
		return EmissionFactor{}, false
	}

	tiers := []func(name string) bool{
		func(name string) bool { return name == term },
		func(name string) bool { return strings.Contains(name, term) },
		func(name string) bool { return strings.Contains(term, name) || strings.Contains(name, term) },
	}
	for _, match := range tiers {
		if i := r.firstIndex(match, category); i >= 0 {
			return r.factors[i], true
		}
	}
	return EmissionFactor{}, false
}

func (r *Registry) firstIndex(match func(name string) bool, category Category) int {
	for i, name := range r.lowered {
		if category != "" && r.factors[i].Category != category {
			continue
		}
		if match(name) {
			return i
		}
	}
	return -1
}

// CalculateEmission returns kg CO2e for quantity units of the named item.
// The quantity must already be in the matched factor's unit. An unknown item
// yields 0.
func (r *Registry) CalculateEmission(itemName string, quantity float64, category Category) float64 {
	factor, ok := r.FindFactor(itemName, category)
	if !ok {
		return 0
	}
	return factor.Value * quantity
}

// Portion returns the default serving for an informal food name such as
// "egg" or "cup of coffee".
func (r *Registry) Portion(name string) (Portion, bool) {
	p, ok := r.portions[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// Factors returns a copy of every factor in table order.
func (r *Registry) Factors() []EmissionFactor {
	out := make([]EmissionFactor, len(r.factors))
	copy(out, r.factors)
	return out
}

// FactorsByCategory returns the factors of one category in table order.
func (r *Registry) FactorsByCategory(category Category) []EmissionFactor {
	var out []EmissionFactor
	for _, f := range r.factors {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// Len returns the number of factors in the table.
func (r *Registry) Len() int { return len(r.factors) }
