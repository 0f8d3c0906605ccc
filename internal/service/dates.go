package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isDateSeparator marks the runes that split a flexible date input into its
// parts. Runs of whitespace count as a single separator.
func isDateSeparator(r rune) bool {
	return r == '/' || r == '-' || r == '.' || r == ' ' || r == '\t'
}

// isCanonicalDate reports whether input is already a valid canonical
// YYYY-MM-DD date, returning the trimmed form when it is.
func isCanonicalDate(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", false
	}
	return trimmed, true
}

// ParseFlexibleDate parses a user-entered calendar date and returns it in
// canonical YYYY-MM-DD form.
//
// Accepted input is three numeric parts separated by '/', '-', '.' or
// whitespace, interpreted day-first ("DD/MM/YYYY"). Two-digit years map to
// the 1900s when ≥ 50 and the 2000s otherwise. Dates that do not exist on
// the calendar (30 February, 31 April) are rejected via a round-trip check.
//
// The function is pure; it is used both for validating DATE field values on
// client add/update and for AddField default values.
func ParseFlexibleDate(input string) (string, error) {
	parts := strings.FieldsFunc(strings.TrimSpace(input), isDateSeparator)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected day, month and year, got %q", ErrInvalidDateFormat, input)
	}

	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return "", fmt.Errorf("%w: non-numeric part %q", ErrInvalidDateFormat, part)
		}
		numbers[i] = n
	}

	day, month, year := numbers[0], numbers[1], numbers[2]

	if year < 100 {
		if year >= 50 {
			year += 1900
		} else {
			year += 2000
		}
	}

	if day < 1 || day > 31 {
		return "", fmt.Errorf("%w: day %d out of range", ErrInvalidDateFormat, day)
	}
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: month %d out of range", ErrInvalidDateFormat, month)
	}

	// time.Date normalizes overflowing values (30 Feb becomes 1-2 Mar), so
	// a round-trip mismatch means the date does not exist on the calendar.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return "", fmt.Errorf("%w: %02d/%02d/%04d does not exist", ErrInvalidDateFormat, day, month, year)
	}

	return date.Format("2006-01-02"), nil
}
