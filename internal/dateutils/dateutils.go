// Package dateutils provides the calendar-day helpers the ledger relies on.
// Transaction dates are plain YYYY-MM-DD strings interpreted in local time.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayoutISO is the only date format the ledger stores.
const DateLayoutISO = "2006-01-02"

// ParseISODate parses a YYYY-MM-DD string as midnight in loc.
// A nil loc means time.Local.
func ParseISODate(dateStr string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayoutISO, strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", dateStr, err)
	}
	return t, nil
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// StartOfDay truncates t to midnight of its calendar day in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// LastNDays returns the ISO keys of the n calendar days ending on today's
// day, oldest first. n <= 0 yields an empty slice.
func LastNDays(today time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	day := StartOfDay(today)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[n-1-i] = ToISODate(day.AddDate(0, 0, -i))
	}
	return keys
}

// SameMonth reports whether the ISO date falls in the month of ref.
func SameMonth(dateStr string, ref time.Time) bool {
	prefix := ref.Format("2006-01") + "-"
	return strings.HasPrefix(dateStr, prefix) && len(dateStr) == len(DateLayoutISO)
}
