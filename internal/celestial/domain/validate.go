package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Input ranges shared by every backend. Validation happens before any
// network or dataset access.
const (
	MinMoonPhases = 1
	MaxMoonPhases = 99

	MinLatitude = -90.0
	MaxLatitude = 90.0

	MinLongitude = -180.0
	MaxLongitude = 180.0

	MinHeightMeters = -200
	MaxHeightMeters = 10000

	MinEclipseYear = 1800
	MaxEclipseYear = 2050

	MinAlmanacYear = 1700
	MaxAlmanacYear = 2100
)

// ValidateMoonCount checks the requested number of phase events.
func ValidateMoonCount(count int) error {
	if count < MinMoonPhases || count > MaxMoonPhases {
		return &ValidationError{
			Field:  "count",
			Value:  count,
			Reason: fmt.Sprintf("must be between %d and %d", MinMoonPhases, MaxMoonPhases),
		}
	}
	return nil
}

// ValidateLatitude checks an observer latitude in decimal degrees.
func ValidateLatitude(lat float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return &ValidationError{
			Field:  "latitude",
			Value:  lat,
			Reason: fmt.Sprintf("must be between %g and %g", MinLatitude, MaxLatitude),
		}
	}
	return nil
}

// ValidateLongitude checks an observer longitude in decimal degrees,
// east-positive.
func ValidateLongitude(lon float64) error {
	if lon < MinLongitude || lon > MaxLongitude {
		return &ValidationError{
			Field:  "longitude",
			Value:  lon,
			Reason: fmt.Sprintf("must be between %g and %g", MinLongitude, MaxLongitude),
		}
	}
	return nil
}

// ValidateCoordinates checks a latitude/longitude pair together.
func ValidateCoordinates(lat, lon float64) error {
	if err := ValidateLatitude(lat); err != nil {
		return err
	}
	return ValidateLongitude(lon)
}

// ValidateHeight checks an observer height above sea level in meters.
func ValidateHeight(height int) error {
	if height < MinHeightMeters || height > MaxHeightMeters {
		return &ValidationError{
			Field:  "height",
			Value:  height,
			Reason: fmt.Sprintf("must be between %d and %d meters", MinHeightMeters, MaxHeightMeters),
		}
	}
	return nil
}

// ValidateEclipseYear checks a year against the eclipse catalog coverage.
func ValidateEclipseYear(year int) error {
	if year < MinEclipseYear || year > MaxEclipseYear {
		return &ValidationError{
			Field:  "year",
			Value:  year,
			Reason: fmt.Sprintf("must be between %d and %d", MinEclipseYear, MaxEclipseYear),
		}
	}
	return nil
}

// ValidateAlmanacYear checks a year for the seasons and moon-phase tools.
func ValidateAlmanacYear(year int) error {
	if year < MinAlmanacYear || year > MaxAlmanacYear {
		return &ValidationError{
			Field:  "year",
			Value:  year,
			Reason: fmt.Sprintf("must be between %d and %d", MinAlmanacYear, MaxAlmanacYear),
		}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar date. Single-digit month and day
// are accepted ("2025-3-9"). The components must form a real calendar date.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, &ValidationError{Field: "date", Value: s, Reason: "expected numeric YYYY-MM-DD"}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, &ValidationError{Field: "date", Value: s, Reason: "no such calendar date"}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, &ValidationError{Field: "date", Value: s, Reason: "no such calendar date"}
	}
	return t, nil
}

// ParseTime parses an HH:MM or HH:MM:SS clock time into hours, minutes and
// seconds.
func ParseTime(s string) (hour, minute, second int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, &ValidationError{Field: "time", Value: s, Reason: "expected HH:MM or HH:MM:SS"}
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, &ValidationError{Field: "time", Value: s, Reason: "expected numeric HH:MM"}
		}
		nums[i] = n
	}
	hour, minute = nums[0], nums[1]
	if len(nums) == 3 {
		second = nums[2]
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, 0, 0, &ValidationError{Field: "time", Value: s, Reason: "clock fields out of range"}
	}
	return hour, minute, second, nil
}

// TruncateLabel caps a free-text location label at 20 characters, the limit
// the remote API enforces. The cut is on runes so multibyte labels stay
// valid UTF-8.
func TruncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) > 20 {
		return string(runes[:20])
	}
	return label
}
