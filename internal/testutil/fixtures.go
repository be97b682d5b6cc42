package testutil

import (
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/google/uuid"
)

// Day returns midnight UTC on the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = &end
		p.Continuous = false
	}
}

func WithContinuous(start time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = nil
		p.Continuous = true
	}
}

func WithEstimatedHours(h float64) ProjectOption {
	return func(p *domain.Project) {
		p.EstimatedHours = h
	}
}

func WithClient(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ClientID = id
	}
}

// NewTestProject returns a valid 40 hour project running January 2025.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	end := Day(2025, 1, 31)
	p := &domain.Project{
		ID:             uuid.New().String(),
		Name:           name,
		StartDate:      Day(2025, 1, 1),
		EndDate:        &end,
		EstimatedHours: 40,
		Allocation:     domain.NoAllocation{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseDates(start, end time.Time) PhaseOption {
	return func(ph *domain.Phase) {
		ph.StartDate = start
		ph.EndDate = end
	}
}

func WithPhaseHours(h float64) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Hours = h
	}
}

func WithPhaseOrder(i int) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Order = i
	}
}

func NewTestPhase(projectID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	ph := &domain.Phase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: Day(2025, 1, 1),
		EndDate:   Day(2025, 1, 10),
		Hours:     10,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph
}

// Event options
type EventOption func(*domain.CalendarEvent)

func WithProject(id string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.ProjectID = &id
	}
}

func WithSpan(start time.Time, d time.Duration) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Start = start
		e.End = start.Add(d)
	}
}

func WithEventType(t domain.EventType) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Type = t
	}
}

func WithCategory(c domain.EventCategory) EventOption {
	return func(e *domain.CalendarEvent) {
		e.Category = c
	}
}

func WithCompleted() EventOption {
	return func(e *domain.CalendarEvent) {
		e.Completed = true
	}
}

// NewTestEvent returns a one hour planned event at 09:00 on 2025-01-06.
func NewTestEvent(title string, opts ...EventOption) *domain.CalendarEvent {
	now := time.Now().UTC()
	start := Day(2025, 1, 6).Add(9 * time.Hour)
	e := &domain.CalendarEvent{
		ID:        uuid.New().String(),
		Title:     title,
		Start:     start,
		End:       start.Add(time.Hour),
		Type:      domain.EventPlanned,
		Category:  domain.CategoryEvent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestHoliday(date time.Time, name string, recurring bool) *domain.Holiday {
	return &domain.Holiday{
		ID:        uuid.New().String(),
		Date:      date,
		Name:      name,
		Recurring: recurring,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestRecurring(projectID string, pattern domain.RecurrencePattern, hours float64) *domain.RecurringEstimate {
	now := time.Now().UTC()
	return &domain.RecurringEstimate{
		ID:                 uuid.New().String(),
		ProjectID:          projectID,
		Pattern:            pattern,
		Interval:           1,
		HoursPerOccurrence: hours,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
