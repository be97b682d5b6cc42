package scheduler

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour int) time.Time {
	return d.Add(time.Duration(hour) * time.Hour)
}

func weekdays() calendar.WorkCalendar {
	return calendar.New(domain.DefaultWeeklySchedule(), nil)
}

func projectEvent(id, projectID string, start time.Time, hours float64, typ domain.EventType, completed bool) domain.CalendarEvent {
	pid := projectID
	return domain.CalendarEvent{
		ID:        id,
		Title:     id,
		Start:     start,
		End:       start.Add(time.Duration(hours * float64(time.Hour))),
		ProjectID: &pid,
		Completed: completed,
		Type:      typ,
		Category:  domain.CategoryEvent,
	}
}

func fixedProject(id string, start, end time.Time, hours float64) domain.Project {
	return domain.Project{
		ID:             id,
		Name:           id,
		StartDate:      start,
		EndDate:        &end,
		EstimatedHours: hours,
		Allocation:     domain.NoAllocation{},
	}
}

func phasedProject(id string, hours float64, phases ...domain.Phase) domain.Project {
	sorted := domain.SortPhases(phases)
	p := fixedProject(id, sorted[0].StartDate, sorted[len(sorted)-1].EndDate, hours)
	p.Allocation = domain.PhaseAllocation{Phases: sorted}
	return p
}

func phase(id string, start, end time.Time, hours float64) domain.Phase {
	return domain.Phase{ID: id, ProjectID: "p", Name: id, StartDate: start, EndDate: end, Hours: hours}
}

func parseKey(k string) (time.Time, error) {
	return dateutil.ParseDay(k)
}
