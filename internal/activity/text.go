package activity

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rshade/ecotrack/internal/emissions"
)

// minTokenLen drops short words ("a", "an", "i", "to") that would otherwise
// substring-match factor names.
const minTokenLen = 3

//nolint:gochecknoglobals // Compiled once, read-only.
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ExtractNumbers returns every decimal number in text in order of appearance.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	numbers := make([]float64, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	return numbers
}

// firstNumber returns the first number in text, or def when there is none.
func firstNumber(text string, def float64) (float64, bool) {
	m := numberPattern.FindString(text)
	if m == "" {
		return def, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return def, false
	}
	return n, true
}

// parseNumber parses a captured number group, falling back to def.
func parseNumber(s string, def float64) float64 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return n
}

// Tokenize lowercases text and splits it into words on anything that is not
// a letter or digit. Purely numeric tokens and words shorter than three
// characters are dropped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLen || isNumeric(f) {
			continue
		}
		words = append(words, f)
	}
	return words
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// lookupWord finds a factor for a single word, retrying the singular form of
// a plural ("shirts" -> "shirt") when the word itself does not match.
func lookupWord(reg *emissions.Registry, word string, category emissions.Category) (emissions.EmissionFactor, bool) {
	if f, ok := reg.FindFactor(word, category); ok {
		return f, true
	}
	if singular, ok := singularOf(word); ok {
		return reg.FindFactor(singular, category)
	}
	return emissions.EmissionFactor{}, false
}

func singularOf(word string) (string, bool) {
	if len(word) <= minTokenLen || !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return "", false
	}
	return strings.TrimSuffix(word, "s"), true
}
