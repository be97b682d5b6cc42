package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
)

// Phase is a time-boxed slice of a project's budget.
type Phase struct {
	ID        string
	ProjectID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Hours     float64
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ph *Phase) Validate() error {
	if ph.ProjectID == "" {
		return &ValidationError{Code: CodeRequired, Message: "phase project is required", EntityID: ph.ID}
	}
	if ph.StartDate.IsZero() || ph.EndDate.IsZero() {
		return &ValidationError{Code: CodeRequired, Message: "phase start and end dates are required", EntityID: ph.ID}
	}
	if dateutil.BeforeDay(ph.EndDate, ph.StartDate) {
		return &ValidationError{
			Code: CodeInvalidDateRange,
			Message: fmt.Sprintf("phase end %s is before start %s",
				dateutil.DayKey(ph.EndDate), dateutil.DayKey(ph.StartDate)),
			EntityID: ph.ID,
		}
	}
	if ph.Hours < 0 {
		return &ValidationError{
			Code:     CodeNegativeHours,
			Message:  fmt.Sprintf("phase hours must be >= 0 (got %g)", ph.Hours),
			EntityID: ph.ID,
		}
	}
	return nil
}

// Covers reports whether d lies within the phase's inclusive date range.
func (ph *Phase) Covers(d time.Time) bool {
	return dateutil.InRange(d, ph.StartDate, ph.EndDate)
}

// Overlaps reports whether the two phases share at least one calendar day.
func (ph *Phase) Overlaps(other *Phase) bool {
	return !dateutil.AfterDay(ph.StartDate, other.EndDate) &&
		!dateutil.AfterDay(other.StartDate, ph.EndDate)
}

// DurationDays is the inclusive number of calendar days the phase spans.
func (ph *Phase) DurationDays() int {
	return dateutil.DaysInRange(ph.StartDate, ph.EndDate)
}

// SortPhases returns a copy of phases ordered by start date, then Order, then ID.
func SortPhases(phases []Phase) []Phase {
	sorted := make([]Phase, len(phases))
	copy(sorted, phases)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !dateutil.IsSameDay(a.StartDate, b.StartDate) {
			return dateutil.BeforeDay(a.StartDate, b.StartDate)
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	return sorted
}

// LastPhaseEnd returns the latest end date across phases.
func LastPhaseEnd(phases []Phase) (time.Time, bool) {
	if len(phases) == 0 {
		return time.Time{}, false
	}
	last := phases[0].EndDate
	for _, ph := range phases[1:] {
		if dateutil.AfterDay(ph.EndDate, last) {
			last = ph.EndDate
		}
	}
	return last, true
}
