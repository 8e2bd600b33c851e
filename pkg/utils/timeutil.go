package utils

import (
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used on the wire.
const DateLayout = "2006-01-02"

// Midnight truncates t to 00:00 UTC on the same calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonthsClamped adds n calendar months to t. When the source day does not
// exist in the target month the result is clamped to that month's last day,
// so Jan 31 + 1 month is Feb 28 (or 29) rather than early March.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	target := time.Month(month + 1)
	if last := DaysInMonth(year, target); d > last {
		d = last
	}
	return time.Date(year, target, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from a to b (negative when b
// is before a). Both are truncated to their calendar day first.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// MonthSteps returns start, start+step, start+2*step ... months while the
// date is not after end. Every step is computed from start so day clamping
// never accumulates.
func MonthSteps(start, end time.Time, step int) []time.Time {
	if step <= 0 || end.Before(start) {
		return nil
	}
	var out []time.Time
	for k := 0; ; k++ {
		d := AddMonthsClamped(start, k*step)
		if d.After(end) {
			break
		}
		out = append(out, d)
	}
	return out
}

// ParseDate parses a date string in "2006-01-02" format as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats t as "2006-01-02".
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
