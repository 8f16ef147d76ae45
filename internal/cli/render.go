package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrack/internal/activity"
	"github.com/rshade/ecotrack/internal/batch"
	"github.com/rshade/ecotrack/internal/config"
	"github.com/rshade/ecotrack/internal/emissions"
	"github.com/rshade/ecotrack/internal/greenops"
)

// Rendering constants.
const (
	boxWidth      = 64
	categoryWidth = 10
)

// titleColor returns the Lip Gloss color used for box titles.
func titleColor() lipgloss.Color { return lipgloss.Color("39") }

// borderColor returns the Lip Gloss color used for box borders.
func borderColor() lipgloss.Color { return lipgloss.Color("240") }

// impactColor returns the color for a total: green below 1 kg, amber
// below 10 kg, red above.
func impactColor(kg float64) lipgloss.Color {
	switch {
	case kg < 1:
		return lipgloss.Color("42")
	case kg < 10:
		return lipgloss.Color("214")
	default:
		return lipgloss.Color("196")
	}
}

// parsedOutput is the JSON shape of one parsed activity.
type parsedOutput struct {
	Activity      activity.Activity           `json:"activity"`
	Equivalencies *greenops.EquivalencyOutput `json:"equivalencies,omitempty"`
}

func newParsedOutput(a activity.Activity, equivalents bool) parsedOutput {
	out := parsedOutput{Activity: a}
	if equivalents {
		if eq, err := greenops.CalculateKg(a.TotalCO2Impact); err == nil && !eq.IsEmpty {
			out.Equivalencies = &eq
		}
	}
	return out
}

// renderActivity writes one parse result in the given format.
func renderActivity(w io.Writer, format string, a activity.Activity, equivalents bool) error {
	out := newParsedOutput(a, equivalents)
	switch format {
	case config.FormatJSON:
		return writeJSON(w, out, true)
	case config.FormatNDJSON:
		return writeJSON(w, out, false)
	default:
		return renderActivityTable(w, out)
	}
}

// renderBatch writes a batch result. ndjson emits one activity per line and
// no summary.
func renderBatch(w io.Writer, format string, result batch.Result, equivalents bool, precision int) error {
	switch format {
	case config.FormatJSON:
		outputs := make([]parsedOutput, len(result.Activities))
		for i, a := range result.Activities {
			outputs[i] = newParsedOutput(a, equivalents)
		}
		return writeJSON(w, struct {
			Activities []parsedOutput   `json:"activities"`
			Summary    activity.Summary `json:"summary"`
		}{outputs, result.Summary}, true)
	case config.FormatNDJSON:
		for _, a := range result.Activities {
			if err := writeJSON(w, newParsedOutput(a, equivalents), false); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, a := range result.Activities {
			if err := renderActivityTable(w, newParsedOutput(a, equivalents)); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return renderSummary(w, result.Summary, precision)
	}
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func renderActivityTable(w io.Writer, out parsedOutput) error {
	if isWriterTerminal(w) {
		return renderStyledActivity(w, out)
	}

	text := activity.Format(out.Activity)
	if out.Equivalencies != nil {
		text += "\n" + out.Equivalencies.DisplayText
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// renderStyledActivity renders a parse result as a bordered box.
func renderStyledActivity(w io.Writer, out parsedOutput) error {
	a := out.Activity
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor())
	mutedStyle := lipgloss.NewStyle().Foreground(borderColor()).Italic(true)
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor()).
		Padding(0, 1).
		Width(boxWidth)

	if a.IsEmpty() {
		_, err := fmt.Fprintln(w, boxStyle.Render(mutedStyle.Render(activity.Format(a))))
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(strings.ToUpper(a.Category.String())))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%q", a.OriginalText)))
	b.WriteString("\n\n")
	for _, item := range a.Items {
		fmt.Fprintf(&b, "• %-16s %8.2f %-7s %8.2f kg\n", item.Name, item.Quantity, item.Unit, item.CO2Impact)
	}

	totalStyle := lipgloss.NewStyle().Bold(true).Foreground(impactColor(a.TotalCO2Impact))
	b.WriteString("\n")
	b.WriteString(totalStyle.Render("Total " + greenops.FormatKg(a.TotalCO2Impact)))
	fmt.Fprintf(&b, "   confidence %d%%", activity.ConfidencePercent(a.Confidence))
	if out.Equivalencies != nil {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(out.Equivalencies.DisplayText))
	}

	_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
	return err
}

// renderSummary writes per-category totals for a batch, with kg values
// rounded to precision decimals.
func renderSummary(w io.Writer, s activity.Summary, precision int) error {
	kg := func(v float64) string { return greenops.FormatFloat(v, precision) + " kg CO₂e" }

	var b strings.Builder
	fmt.Fprintf(&b, "Summary: %d activities, %d matched, %d items\n", s.Activities, s.Matched, s.Items)
	for _, ct := range s.Categories {
		fmt.Fprintf(&b, "  %-*s %3d activities  %s\n",
			categoryWidth, ct.Category, ct.Activities, kg(ct.TotalCO2Impact))
	}
	fmt.Fprintf(&b, "Total: %s\n", kg(s.TotalCO2Impact))
	fmt.Fprintf(&b, "Average confidence: %d%%", activity.ConfidencePercent(s.Confidence))
	if text := greenops.Describe(s.TotalCO2Impact); text != "" {
		b.WriteString("\n" + text)
	}

	if isWriterTerminal(w) {
		boxStyle := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(borderColor()).
			Padding(0, 1).
			Width(boxWidth)
		_, err := fmt.Fprintln(w, boxStyle.Render(b.String()))
		return err
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

// renderFactors writes factor rows as an aligned table.
func renderFactors(w io.Writer, factors []emissions.EmissionFactor) error {
	headerStyle := lipgloss.NewStyle()
	if isWriterTerminal(w) {
		headerStyle = headerStyle.Bold(true).Foreground(titleColor())
	}

	header := fmt.Sprintf("%-22s %-*s %-12s %10s  %-8s %s",
		"NAME", categoryWidth, "CATEGORY", "SUBCATEGORY", "KG CO2E", "PER", "SOURCE")
	if _, err := fmt.Fprintln(w, headerStyle.Render(header)); err != nil {
		return err
	}
	for _, f := range factors {
		if _, err := fmt.Fprintf(w, "%-22s %-*s %-12s %10.4g  %-8s %s\n",
			f.Name, categoryWidth, f.Category, f.Subcategory, f.Value, f.Unit, f.Source); err != nil {
			return err
		}
	}
	return nil
}

// isWriterTerminal reports whether w is a terminal file such as os.Stdout.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}
