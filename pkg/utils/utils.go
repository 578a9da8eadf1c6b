package utils

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// StartOfDay truncates t to midnight in t's own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// AddDays moves t by whole calendar days, keeping the wall clock.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// CalendarDaysBetween counts midnights crossed going from `from` to `to`.
// Negative when `to` is an earlier day.
func CalendarDaysBetween(from, to time.Time) int {
	to = to.In(from.Location())
	a := StartOfDay(from)
	b := StartOfDay(to)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// IsDateOverdue checks if a due date has passed as of now
func IsDateOverdue(dueDate, now time.Time) bool {
	return now.After(dueDate)
}

// DateString formats a timestamp as the YYYY-MM-DD string used in messages and filters.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses YYYY-MM-DD in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}

// IsWholeRupiah reports whether d has no fractional part.
func IsWholeRupiah(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(0))
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
