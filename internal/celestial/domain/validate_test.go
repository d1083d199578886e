package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMoonCount(t *testing.T) {
	assert.NoError(t, ValidateMoonCount(1))
	assert.NoError(t, ValidateMoonCount(99))
	assert.NoError(t, ValidateMoonCount(12))

	for _, count := range []int{0, -1, 100, 1000} {
		err := ValidateMoonCount(count)
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "count", verr.Field)
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(0, 0))
	assert.NoError(t, ValidateCoordinates(90, 180))
	assert.NoError(t, ValidateCoordinates(-90, -180))
	assert.NoError(t, ValidateCoordinates(51.4769, -0.0005))

	assert.Error(t, ValidateCoordinates(90.1, 0))
	assert.Error(t, ValidateCoordinates(-91, 0))
	assert.Error(t, ValidateCoordinates(0, 180.5))
	assert.Error(t, ValidateCoordinates(0, -181))
}

func TestValidateHeight(t *testing.T) {
	assert.NoError(t, ValidateHeight(0))
	assert.NoError(t, ValidateHeight(-200))
	assert.NoError(t, ValidateHeight(10000))

	assert.Error(t, ValidateHeight(-201))
	assert.Error(t, ValidateHeight(10001))
}

func TestValidateEclipseYear(t *testing.T) {
	assert.NoError(t, ValidateEclipseYear(1800))
	assert.NoError(t, ValidateEclipseYear(2050))
	assert.NoError(t, ValidateEclipseYear(2024))

	assert.Error(t, ValidateEclipseYear(1799))
	assert.Error(t, ValidateEclipseYear(2051))
}

func TestValidateAlmanacYear(t *testing.T) {
	assert.NoError(t, ValidateAlmanacYear(1700))
	assert.NoError(t, ValidateAlmanacYear(2100))

	assert.Error(t, ValidateAlmanacYear(1699))
	assert.Error(t, ValidateAlmanacYear(2101))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), d)

	// Single-digit month and day are accepted.
	d, err = ParseDate("2025-3-9")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), d)

	// Leap day handling.
	_, err = ParseDate("2024-02-29")
	assert.NoError(t, err)
	_, err = ParseDate("2025-02-29")
	assert.Error(t, err)

	for _, bad := range []string{"", "2025", "2025-13-01", "2025-00-10", "2025-04-31", "not-a-date", "2025/03/09"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseTime(t *testing.T) {
	h, m, s, err := ParseTime("22:05")
	require.NoError(t, err)
	assert.Equal(t, 22, h)
	assert.Equal(t, 5, m)
	assert.Equal(t, 0, s)

	h, m, s, err = ParseTime("06:30:45")
	require.NoError(t, err)
	assert.Equal(t, 6, h)
	assert.Equal(t, 30, m)
	assert.Equal(t, 45, s)

	for _, bad := range []string{"", "24:00", "12:60", "12", "ab:cd"} {
		_, _, _, err := ParseTime(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "Greenwich", TruncateLabel("Greenwich"))
	assert.Equal(t, "a very long location", TruncateLabel("a very long location label"))
	assert.Len(t, TruncateLabel("a very long location label"), 20)
}

func TestTruncateLabel_Multibyte(t *testing.T) {
	// Truncation counts runes, never splitting a multibyte sequence.
	got := TruncateLabel(strings.Repeat("ü", 25))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ü", 20), got)

	// Short multibyte labels pass through untouched.
	assert.Equal(t, "Zürich", TruncateLabel("Zürich"))
}

func TestParsePlanet(t *testing.T) {
	p, err := ParsePlanet("mars")
	require.NoError(t, err)
	assert.Equal(t, PlanetMars, p)

	p, err = ParsePlanet(" Jupiter ")
	require.NoError(t, err)
	assert.Equal(t, PlanetJupiter, p)

	_, err = ParsePlanet("earth")
	require.Error(t, err)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestMoonPhaseNext(t *testing.T) {
	assert.Equal(t, MoonPhaseFirstQuarter, MoonPhaseNew.Next())
	assert.Equal(t, MoonPhaseFull, MoonPhaseFirstQuarter.Next())
	assert.Equal(t, MoonPhaseLastQuarter, MoonPhaseFull.Next())
	assert.Equal(t, MoonPhaseNew, MoonPhaseLastQuarter.Next())
}
