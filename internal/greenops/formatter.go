package greenops

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with English thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators: 18248 -> "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with precision decimals and thousand separators:
// FormatFloat(1234.567, 2) -> "1,234.57".
func FormatFloat(f float64, precision int) string {
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", precision), f)
}

// FormatLarge abbreviates values of a million or more ("~5.2 million",
// "~1.5 billion") and formats smaller values as separated integers.
func FormatLarge(n float64) string {
	switch {
	case n >= BillionThreshold:
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	case n >= LargeNumberThreshold:
		return fmt.Sprintf("~%.1f million", n/LargeNumberThreshold)
	default:
		return FormatNumber(int64(math.Round(n)))
	}
}

// FormatKg renders a kg CO2e amount the way activity totals are shown,
// with two decimals below 1,000 kg and none above.
func FormatKg(kg float64) string {
	const wholeKgThreshold = 1000
	if kg >= wholeKgThreshold {
		return FormatFloat(kg, 0) + " kg CO₂e"
	}
	return FormatFloat(kg, 2) + " kg CO₂e"
}
