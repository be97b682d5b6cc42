package scheduler

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

// FilterEventsForProject returns the events linked to projectID whose
// category can count as project time. Habits and tasks are always dropped.
func FilterEventsForProject(events []domain.CalendarEvent, projectID string) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if !e.BelongsTo(projectID) {
			continue
		}
		if !e.Category.CountsTowardProject() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// IsCompletedTime is true for events marked completed and for tracked or
// completed event types.
func IsCompletedTime(e *domain.CalendarEvent) bool {
	switch e.Type {
	case domain.EventTracked, domain.EventCompleted:
		return true
	default:
		return e.Completed
	}
}

// IsPlannedTime is the exact complement of IsCompletedTime.
func IsPlannedTime(e *domain.CalendarEvent) bool {
	return !IsCompletedTime(e)
}

// EventsOnDay returns events that overlap the calendar day of d.
// Zero-length events count on the day they sit on.
func EventsOnDay(events []domain.CalendarEvent, d time.Time) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if overlapsDay(&e, d) {
			out = append(out, e)
		}
	}
	return out
}

func overlapsDay(e *domain.CalendarEvent, d time.Time) bool {
	dayStart := dateutil.StartOfDay(d)
	dayEnd := dayStart.AddDate(0, 0, 1)
	if e.Start.Equal(e.End) {
		return !e.Start.Before(dayStart) && e.Start.Before(dayEnd)
	}
	return e.Start.Before(dayEnd) && e.End.After(dayStart)
}

// HoursOnDay is the part of the event's duration that falls on d's day.
func HoursOnDay(e *domain.CalendarEvent, d time.Time) float64 {
	dayStart := dateutil.StartOfDay(d)
	dayEnd := dayStart.AddDate(0, 0, 1)
	start, end := e.Start, e.End
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !end.After(start) {
		return 0
	}
	return dateutil.DurationHours(start, end)
}

// CompletedHoursInRange sums completed-time hours that fall on days in
// [start, end].
func CompletedHoursInRange(events []domain.CalendarEvent, start, end time.Time) float64 {
	var total float64
	for i := range events {
		e := &events[i]
		if !IsCompletedTime(e) {
			continue
		}
		for _, d := range dateutil.EachDay(dateutil.MaxDay(e.Start, start), dateutil.MinDay(e.End, end)) {
			total += HoursOnDay(e, d)
		}
	}
	return total
}

// DayTally splits one day's in-scope events into planned and completed hours.
type DayTally struct {
	PlannedHours   float64
	CompletedHours float64
	HasPlanned     bool
	HasCompleted   bool
}

func TallyDay(events []domain.CalendarEvent, d time.Time) DayTally {
	var t DayTally
	for i := range events {
		e := &events[i]
		if !overlapsDay(e, d) {
			continue
		}
		h := HoursOnDay(e, d)
		if IsCompletedTime(e) {
			t.HasCompleted = true
			t.CompletedHours += h
		} else {
			t.HasPlanned = true
			t.PlannedHours += h
		}
	}
	return t
}
