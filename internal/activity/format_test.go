package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	a, err := Parse("Drove 25 miles to work", "")
	require.NoError(t, err)

	want := "Parsed from: \"Drove 25 miles to work\"\n" +
		"Category: transport\n" +
		"Items breakdown:\n" +
		"• car_gasoline: 25.00 mile (10.00 kg CO₂e)\n" +
		"\n" +
		"Total CO₂ Impact: 10.00 kg CO₂e\n" +
		"Confidence: 90%"
	assert.Equal(t, want, Format(a))
}

func TestFormat_Empty(t *testing.T) {
	a, err := Parse("hello", "")
	require.NoError(t, err)
	assert.Equal(t, `No recognizable activities found in: "hello"`, Format(a))
}

func TestConfidencePercent(t *testing.T) {
	assert.Equal(t, 0, ConfidencePercent(0))
	assert.Equal(t, 67, ConfidencePercent(2.0/3.0))
	assert.Equal(t, 100, ConfidencePercent(1))
}
