// Package dateutil holds day-level date arithmetic with no business context.
// Calendar days are interpreted in the location of the value passed in.
package dateutil

import (
	"math"
	"time"
)

// DayLayout is the canonical date-only format used for storage and keys.
const DayLayout = "2006-01-02"

// IsSameDay reports whether a and b fall on the same calendar date,
// ignoring time of day. b is compared in a's location.
func IsSameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns 00:00:00.000 on the calendar day of d.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// EndOfDay returns the last representable instant of the calendar day of d.
func EndOfDay(d time.Time) time.Time {
	return StartOfDay(d).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DurationHours returns end - start in fractional hours. Negative when end
// precedes start.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// DurationDays returns end - start in fractional 24h days.
func DurationDays(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// AddDays moves d by n calendar days, keeping the wall-clock time.
func AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b (b - a),
// independent of time of day and DST shifts.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(math.Round(ub.Sub(ua).Hours() / 24))
}

// DaysInRange is the inclusive count of calendar days in [start, end].
// Zero when end is before start.
func DaysInRange(start, end time.Time) int {
	n := DaysBetween(start, end) + 1
	if n < 0 {
		return 0
	}
	return n
}

// IsBusinessDay reports whether d is Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// BeforeDay reports whether a's calendar day is strictly before b's.
func BeforeDay(a, b time.Time) bool {
	return DaysBetween(a, b) > 0
}

// AfterDay reports whether a's calendar day is strictly after b's.
func AfterDay(a, b time.Time) bool {
	return DaysBetween(a, b) < 0
}

// MaxDay returns the later calendar day of a and b, normalized to midnight.
func MaxDay(a, b time.Time) time.Time {
	if BeforeDay(a, b) {
		return StartOfDay(b)
	}
	return StartOfDay(a)
}

// MinDay returns the earlier calendar day of a and b, normalized to midnight.
func MinDay(a, b time.Time) time.Time {
	if AfterDay(a, b) {
		return StartOfDay(b)
	}
	return StartOfDay(a)
}

// EachDay returns midnight of every calendar day in [start, end] inclusive.
func EachDay(start, end time.Time) []time.Time {
	n := DaysInRange(start, end)
	if n == 0 {
		return nil
	}
	first := StartOfDay(start)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = first.AddDate(0, 0, i)
	}
	return days
}

// DayKey formats the calendar day of d as YYYY-MM-DD.
func DayKey(d time.Time) string {
	return d.Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD string into midnight UTC.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// InRange reports whether d's calendar day lies within [start, end].
func InRange(d, start, end time.Time) bool {
	return !BeforeDay(d, start) && !AfterDay(d, end)
}
