// Package greenops turns a kg CO2e total into relatable equivalencies such
// as miles driven or smartphones charged, using EPA-published factors.
package greenops

import (
	"fmt"
	"strings"
)

// EquivalencyType is one kind of real-world equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven is miles in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged is full smartphone charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings is tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays is days of average US home electricity use.
	EquivalencyHomeDays
)

// AllEquivalencies lists every equivalency in display priority order.
//
//nolint:gochecknoglobals // Fixed ordering table, read-only.
var AllEquivalencies = []EquivalencyType{
	EquivalencyMilesDriven,
	EquivalencySmartphonesCharged,
	EquivalencyTreeSeedlings,
	EquivalencyHomeDays,
}

// equivalencyInfo holds the factor and wording for one equivalency type.
type equivalencyInfo struct {
	name   string
	factor float64
	label  string
	short  string
	phrase string
}

//nolint:gochecknoglobals // Fixed lookup table, read-only.
var equivalencies = map[EquivalencyType]equivalencyInfo{
	EquivalencyMilesDriven: {
		name: "MilesDriven", factor: EPAMilesDrivenFactor,
		label: "miles driven", short: "mi", phrase: "driving ~%s miles",
	},
	EquivalencySmartphonesCharged: {
		name: "SmartphonesCharged", factor: EPASmartphoneChargeFactor,
		label: "smartphones charged", short: "phones", phrase: "charging ~%s smartphones",
	},
	EquivalencyTreeSeedlings: {
		name: "TreeSeedlings", factor: EPATreeSeedlingFactor,
		label: "tree seedlings grown for 10 years", short: "seedlings", phrase: "growing ~%s tree seedlings for 10 years",
	},
	EquivalencyHomeDays: {
		name: "HomeDays", factor: EPAHomeDayFactor,
		label: "days of home electricity", short: "home-days", phrase: "powering a home for ~%s days",
	},
}

// String returns the type's identifier, e.g. "MilesDriven".
func (e EquivalencyType) String() string {
	if info, ok := equivalencies[e]; ok {
		return info.name
	}
	return fmt.Sprintf("EquivalencyType(%d)", e)
}

// Label returns the descriptive phrase, e.g. "miles driven".
func (e EquivalencyType) Label() string {
	return equivalencies[e].label
}

// Factor returns the kg CO2e per unit of the equivalent activity.
func (e EquivalencyType) Factor() float64 {
	return equivalencies[e].factor
}

// ParseEquivalencyType resolves a type by identifier, case-insensitively.
func ParseEquivalencyType(s string) (EquivalencyType, error) {
	for _, t := range AllEquivalencies {
		if strings.EqualFold(t.String(), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEquivalency, s)
}

// CarbonInput is a carbon amount in any recognized mass unit.
type CarbonInput struct {
	// Value is the numeric carbon emission amount.
	Value float64 `json:"value"`

	// Unit is g, kg, t or lb, optionally suffixed with CO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult is one calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"-"`
	Name           string          `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formattedValue"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one carbon amount.
type EquivalencyOutput struct {
	// InputKg is the normalized input in kg CO2e.
	InputKg float64 `json:"inputKg"`

	// Results are in the order they were requested.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is prose for terminal output, e.g.
	// "Equivalent to driving ~52 miles or charging ~1,217 smartphones".
	DisplayText string `json:"displayText"`

	// CompactText is the abbreviated form, e.g. "(≈ 52 mi, 1,217 phones)".
	CompactText string `json:"compactText"`

	IsEmpty bool `json:"isEmpty"`
}
