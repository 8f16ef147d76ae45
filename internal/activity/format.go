package activity

import (
	"fmt"
	"math"
	"strings"
)

// Format renders a parsed activity as a plain-text breakdown for display.
func Format(a Activity) string {
	if a.IsEmpty() {
		return fmt.Sprintf("No recognizable activities found in: %q", a.OriginalText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Parsed from: %q\n", a.OriginalText)
	fmt.Fprintf(&b, "Category: %s\n", a.Category)
	b.WriteString("Items breakdown:\n")
	for _, item := range a.Items {
		fmt.Fprintf(&b, "• %s: %.2f %s (%.2f kg CO₂e)\n", item.Name, item.Quantity, item.Unit, item.CO2Impact)
	}
	fmt.Fprintf(&b, "\nTotal CO₂ Impact: %.2f kg CO₂e\n", a.TotalCO2Impact)
	fmt.Fprintf(&b, "Confidence: %d%%", ConfidencePercent(a.Confidence))
	return b.String()
}

// ConfidencePercent rounds a [0,1] confidence to a whole percentage.
func ConfidencePercent(c float64) int {
	return int(math.Round(c * 100))
}
