package core

import "time"

// DateLayout is the fixed persisted date format. The trailing Z is a
// literal, written regardless of zone, so this is deliberately not a
// strict RFC 3339 parser.
const DateLayout = "2006-01-02T15:04:05Z"

// FormatDate encodes a timestamp in the persisted format. Times are
// normalized to UTC so that a format/parse round-trip is lossless at
// second granularity.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate decodes a persisted timestamp. The result is in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SameMonth reports whether t falls in the given calendar year and month.
func SameMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// MonthRange returns the inclusive [first instant, last second] bounds of
// a calendar month in UTC.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
