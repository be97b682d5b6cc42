package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/importer"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/alexanderramin/timeplan/internal/scheduler"
)

// ProjectService returns projects with their Allocation populated from the
// stored phases or recurring estimate.
type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) (*contract.MutationResult, error)
	Delete(ctx context.Context, id string) error
	SetRecurring(ctx context.Context, r *domain.RecurringEstimate) error
	ClearRecurring(ctx context.Context, projectID string) error
}

type PhaseService interface {
	Create(ctx context.Context, ph *domain.Phase) (*contract.MutationResult, error)
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) (*contract.MutationResult, error)
	Delete(ctx context.Context, id string) (*contract.MutationResult, error)
	// AdjustForToday pushes phases that still carry hours but ended before
	// today, cascading later phases forward.
	AdjustForToday(ctx context.Context, projectID string, today time.Time) (*contract.MutationResult, error)
}

type EventService interface {
	Create(ctx context.Context, e *domain.CalendarEvent) (*contract.MutationResult, error)
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	List(ctx context.Context, f repository.EventFilter) ([]domain.CalendarEvent, error)
	// ListRange returns events overlapping the calendar days from..to inclusive.
	ListRange(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) (*contract.MutationResult, error)
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	StartTracking(ctx context.Context, title string, projectID *string, at time.Time) (*domain.CalendarEvent, *contract.MutationResult, error)
	StopTracking(ctx context.Context, id string, at time.Time) (*contract.MutationResult, error)
	Running(ctx context.Context) ([]domain.CalendarEvent, error)
}

type CalendarService interface {
	// GetSchedule returns the stored schedule, or the default Monday to
	// Friday 09:00-17:00 week when none has been saved.
	GetSchedule(ctx context.Context) (domain.WeeklySchedule, error)
	SetSchedule(ctx context.Context, ws domain.WeeklySchedule) error
	// Week overrides live in memory only and are lost on restart.
	SetWeekOverride(week domain.WeekKey, ws domain.WeeklySchedule) error
	ClearWeekOverride(week domain.WeekKey)
	WeekOverrides() map[domain.WeekKey]domain.WeeklySchedule
	AddHoliday(ctx context.Context, h *domain.Holiday) error
	ListHolidays(ctx context.Context) ([]domain.Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
	WorkCalendar(ctx context.Context) (calendar.WorkCalendar, error)
}

type TimelineService interface {
	Timeline(ctx context.Context, req contract.TimelineRequest) (*contract.TimelineResponse, error)
	Budget(ctx context.Context, projectID string) (*scheduler.BudgetAnalysis, error)
	Preview(ctx context.Context, req contract.PreviewRequest) (*contract.PreviewResponse, error)
	Insights(ctx context.Context, req contract.InsightsRequest) (*contract.InsightsResponse, error)
}

// ImportResult holds the outcome of a plan import.
type ImportResult struct {
	Project      *domain.Project
	PhaseCount   int
	EventCount   int
	HolidayCount int
	Recurring    bool
	Notices      []contract.Notice
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
