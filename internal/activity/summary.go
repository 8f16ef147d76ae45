package activity

import "github.com/rshade/ecotrack/internal/emissions"

// CategoryTotal accumulates the activities that resolved to one category.
type CategoryTotal struct {
	Category       emissions.Category `json:"category"`
	Activities     int                `json:"activities"`
	Items          int                `json:"items"`
	TotalCO2Impact float64            `json:"totalCO2Impact"`
}

// Summary totals a set of parsed activities.
type Summary struct {
	Activities     int     `json:"activities"`
	Matched        int     `json:"matched"`
	Items          int     `json:"items"`
	TotalCO2Impact float64 `json:"totalCO2Impact"`
	// Confidence is the mean confidence of the activities that produced items.
	Confidence float64         `json:"confidence"`
	Categories []CategoryTotal `json:"categories"`
}

// Summarize totals activities per category. Categories appear in
// classification order with general last, and only when present.
func Summarize(activities []Activity) Summary {
	order := append(append([]emissions.Category{}, emissions.Categories...), emissions.CategoryGeneral)
	byCategory := make(map[emissions.Category]*CategoryTotal, len(order))

	var s Summary
	var confidence float64
	for _, a := range activities {
		s.Activities++
		s.Items += len(a.Items)
		s.TotalCO2Impact += a.TotalCO2Impact
		if !a.IsEmpty() {
			s.Matched++
			confidence += a.Confidence
		}

		ct, ok := byCategory[a.Category]
		if !ok {
			ct = &CategoryTotal{Category: a.Category}
			byCategory[a.Category] = ct
		}
		ct.Activities++
		ct.Items += len(a.Items)
		ct.TotalCO2Impact += a.TotalCO2Impact
	}
	if s.Matched > 0 {
		s.Confidence = confidence / float64(s.Matched)
	}

	s.Categories = []CategoryTotal{}
	for _, c := range order {
		if ct, ok := byCategory[c]; ok {
			s.Categories = append(s.Categories, *ct)
		}
	}
	return s
}
