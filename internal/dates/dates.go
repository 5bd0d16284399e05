// Package dates holds the day-granularity comparison rules shared by the
// loan status derivation, the sanction prediction and the delay statistics.
// All comparisons normalize to midnight UTC first so that a stored date-time
// string and a bare date never disagree about which calendar day they mean.
package dates

import (
	"fmt"
	"math"
	"time"
)

const dayLayout = "2006-01-02"

// Day strips the time-of-day component, returning midnight UTC of the same
// calendar day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a date or date-time string into a calendar date. The input
// is truncated to its first 10 characters, so upstream "2024-01-15T00:00:00"
// values parse the same as plain "2024-01-15".
func ParseDay(s string) (time.Time, error) {
	if len(s) > len(dayLayout) {
		s = s[:len(dayLayout)]
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDay renders a calendar date as yyyy-mm-dd.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// StrictlyPastDueAsOf reports whether ref falls on a strictly later calendar
// day than expected. Two instants on the same day, whatever their clock
// times, are never past due relative to each other.
func StrictlyPastDueAsOf(expected, ref time.Time) bool {
	return Day(ref).After(Day(expected))
}

// DaysBetween returns the whole-day difference later-earlier, rounded up.
// A non-positive result means there is no delay and callers must treat it so.
func DaysBetween(later, earlier time.Time) int {
	return int(math.Ceil(later.Sub(earlier).Hours() / 24))
}
