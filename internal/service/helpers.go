package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/alexanderramin/timeplan/internal/scheduler"
	"github.com/google/uuid"
)

// Clock returns the current instant. Tests pass a fixed clock.
type Clock func() time.Time

func (c Clock) orDefault() Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// todayFrom is the caller's local calendar day as a wall-clock date.
func todayFrom(c Clock) time.Time {
	return dateutil.StartOfDay(dateutil.WallClock(c.orDefault()()))
}

// txRepos bundles repositories bound to one transaction (or connection).
type txRepos struct {
	projects  repository.ProjectRepo
	phases    repository.PhaseRepo
	recurring repository.RecurringRepo
	events    repository.EventRepo
	holidays  repository.HolidayRepo
	workHours repository.WorkHoursRepo
}

// storedCalendar builds the work calendar from the saved schedule and
// holidays. Week overrides live in memory only and are not applied.
func storedCalendar(ctx context.Context, r txRepos) (calendar.WorkCalendar, error) {
	ws, err := r.workHours.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		ws = domain.DefaultWeeklySchedule()
	} else if err != nil {
		return calendar.WorkCalendar{}, err
	}
	holidays, err := r.holidays.List(ctx)
	if err != nil {
		return calendar.WorkCalendar{}, err
	}
	return calendar.New(ws, holidays), nil
}

// unschedulable returns the hours a scope still needs and whether no working
// day from today through end is left to take them.
func unschedulable(budget float64, events []domain.CalendarEvent, start, end time.Time, cal calendar.WorkCalendar, today time.Time) (float64, bool) {
	remaining := scheduler.RemainingForScope(budget, events, start, end)
	if remaining <= 0 {
		return remaining, false
	}
	return remaining, len(scheduler.DistributeHours(remaining, start, end, cal, today)) == 0
}

func reposFor(conn db.DBTX) txRepos {
	return txRepos{
		projects:  repository.NewSQLProjectRepo(conn),
		phases:    repository.NewSQLPhaseRepo(conn),
		recurring: repository.NewSQLRecurringRepo(conn),
		events:    repository.NewSQLEventRepo(conn),
		holidays:  repository.NewSQLHolidayRepo(conn),
		workHours: repository.NewSQLWorkHoursRepo(conn),
	}
}

// loadAllocation reads a project's phases and recurring estimate and sets
// p.Allocation accordingly.
func loadAllocation(ctx context.Context, phases repository.PhaseRepo, recurring repository.RecurringRepo, p *domain.Project) error {
	list, err := phases.ListByProject(ctx, p.ID)
	if err != nil {
		return err
	}
	rec, err := recurring.GetByProject(ctx, p.ID)
	if errors.Is(err, repository.ErrNotFound) {
		rec = nil
	} else if err != nil {
		return err
	}
	alloc, err := domain.NewAllocation(list, rec)
	if err != nil {
		return fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.Allocation = alloc
	return nil
}

func loadProject(ctx context.Context, r txRepos, id string) (*domain.Project, error) {
	p, err := r.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loadAllocation(ctx, r.phases, r.recurring, p); err != nil {
		return nil, err
	}
	return p, nil
}

func newID() string {
	return uuid.New().String()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// filterProjectsByScope returns only projects whose ID is in scope.
// If scope is empty, all projects are returned unchanged. Unknown IDs are
// reported so callers can reject the request.
func filterProjectsByScope(projects []*domain.Project, scope []string) ([]*domain.Project, []string) {
	if len(scope) == 0 {
		return projects, nil
	}
	scopeSet := make(map[string]bool, len(scope))
	for _, id := range scope {
		scopeSet[id] = false
	}
	var filtered []*domain.Project
	for _, p := range projects {
		if _, ok := scopeSet[p.ID]; ok {
			scopeSet[p.ID] = true
			filtered = append(filtered, p)
		}
	}
	var unknown []string
	for _, id := range scope {
		if !scopeSet[id] {
			unknown = append(unknown, id)
		}
	}
	return filtered, unknown
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
