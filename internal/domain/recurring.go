package domain

import (
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
)

// RecurringEstimate books HoursPerOccurrence on each date the pattern hits,
// counted from the project's start date.
type RecurringEstimate struct {
	ID                 string
	ProjectID          string
	Pattern            RecurrencePattern
	Interval           int            // every N days/weeks/months; 0 is treated as 1
	Weekdays           []time.Weekday // weekly only; empty means the anchor's weekday
	DayOfMonth         int            // monthly only; 0 means the anchor's day
	HoursPerOccurrence float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r *RecurringEstimate) Validate() error {
	if !ValidRecurrencePatterns[string(r.Pattern)] {
		return &ValidationError{Code: CodeInvalidRecurrence,
			Message: fmt.Sprintf("unknown recurrence pattern %q", r.Pattern), EntityID: r.ID}
	}
	if r.Interval < 0 {
		return &ValidationError{Code: CodeInvalidRecurrence,
			Message: "recurrence interval must be >= 1", EntityID: r.ID}
	}
	if r.DayOfMonth < 0 || r.DayOfMonth > 31 {
		return &ValidationError{Code: CodeInvalidRecurrence,
			Message: fmt.Sprintf("day of month %d out of range", r.DayOfMonth), EntityID: r.ID}
	}
	if r.HoursPerOccurrence < 0 {
		return &ValidationError{Code: CodeNegativeHours,
			Message: "hours per occurrence must be >= 0", EntityID: r.ID}
	}
	return nil
}

func (r *RecurringEstimate) interval() int {
	if r.Interval <= 0 {
		return 1
	}
	return r.Interval
}

// OccursOn reports whether the recurrence, anchored at anchor, hits date d.
// Dates before the anchor never match.
func (r *RecurringEstimate) OccursOn(d, anchor time.Time) bool {
	days := dateutil.DaysBetween(anchor, d)
	if days < 0 {
		return false
	}
	n := r.interval()

	switch r.Pattern {
	case RecurDaily:
		return days%n == 0
	case RecurWeekly:
		weekdays := r.Weekdays
		if len(weekdays) == 0 {
			weekdays = []time.Weekday{anchor.Weekday()}
		}
		hit := false
		for _, wd := range weekdays {
			if d.Weekday() == wd {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
		// Week index relative to the Monday-based week containing anchor.
		anchorMonday := dateutil.AddDays(dateutil.StartOfDay(anchor), -mondayOffset(anchor.Weekday()))
		week := dateutil.DaysBetween(anchorMonday, d) / 7
		return week%n == 0
	case RecurMonthly:
		dom := r.DayOfMonth
		if dom == 0 {
			dom = anchor.Day()
		}
		months := monthsBetween(anchor, d)
		if months%n != 0 {
			return false
		}
		// Clamp to the month's last day so "31st" still fires in short months.
		last := lastDayOfMonth(d)
		if dom > last {
			dom = last
		}
		return d.Day() == dom
	default:
		return false
	}
}

func mondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func monthsBetween(a, b time.Time) int {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return (by-ay)*12 + int(bm-am)
}

func lastDayOfMonth(d time.Time) int {
	y, m, _ := d.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, d.Location()).Day()
}
