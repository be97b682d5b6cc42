package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
)

// EventFilter narrows event listings. Zero values mean "no constraint".
// From/To select events that overlap [From, To).
type EventFilter struct {
	ProjectID string
	// OriginalEventID selects the continuation parts of a split event.
	OriginalEventID string
	From            *time.Time
	To              *time.Time
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	// PrePhaseEndDate is the end date the project had before its first phase
	// took over end-date syncing.
	GetPrePhaseEndDate(ctx context.Context, id string) (*time.Time, error)
	SetPrePhaseEndDate(ctx context.Context, id string, d *time.Time) error
}

type PhaseRepo interface {
	Create(ctx context.Context, ph *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type RecurringRepo interface {
	Upsert(ctx context.Context, r *domain.RecurringEstimate) error
	GetByProject(ctx context.Context, projectID string) (*domain.RecurringEstimate, error)
	DeleteByProject(ctx context.Context, projectID string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	List(ctx context.Context, f EventFilter) ([]domain.CalendarEvent, error)
	// ListRunning returns tracked events whose end still equals their start.
	ListRunning(ctx context.Context) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

type WorkHoursRepo interface {
	// Get returns ErrNotFound when no schedule has been stored yet.
	Get(ctx context.Context) (domain.WeeklySchedule, error)
	Replace(ctx context.Context, ws domain.WeeklySchedule) error
}

type HolidayRepo interface {
	Create(ctx context.Context, h *domain.Holiday) error
	GetByID(ctx context.Context, id string) (*domain.Holiday, error)
	List(ctx context.Context) ([]domain.Holiday, error)
	Delete(ctx context.Context, id string) error
}
