package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/alexanderramin/timeplan/internal/scheduler"
)

type projectService struct {
	projects  repository.ProjectRepo
	phases    repository.PhaseRepo
	recurring repository.RecurringRepo
	uow       db.UnitOfWork
	policy    domain.Policy
	clock     Clock
	observer  UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	recurring repository.RecurringRepo,
	uow db.UnitOfWork,
	policy domain.Policy,
	clock Clock,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects:  projects,
		phases:    phases,
		recurring: recurring,
		uow:       uow,
		policy:    policy,
		clock:     clock.orDefault(),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Create stores a new project. A fixed project whose end date is already
// past is extended to today so its budget still has days to land on.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	fields := map[string]any{"project": p.Name}
	defer observe(ctx, s.observer, "project-create", time.Now(), fields, &err)

	if p.ID == "" {
		p.ID = newID()
	}
	normalizeProjectDates(p)
	if err = p.Validate(); err != nil {
		return err
	}
	if extendOverdueEnd(p, nil, todayFrom(s.clock)) {
		fields["end_extended"] = dateutil.DayKey(*p.EndDate)
	}
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Allocation = domain.NoAllocation{}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := loadAllocation(ctx, s.phases, s.recurring, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if err := loadAllocation(ctx, s.phases, s.recurring, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// Update saves p. When the project has phases its end date stays pinned to
// the last phase, and a changed budget is re-checked against the phase
// allocations. Without phases, an end date in the past is moved to today
// while hours remain.
func (s *projectService) Update(ctx context.Context, p *domain.Project) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "project-update", time.Now(), map[string]any{"project_id": p.ID}, &err)

	normalizeProjectDates(p)
	result = &contract.MutationResult{ID: p.ID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		stored, err := loadProject(ctx, r, p.ID)
		if err != nil {
			return err
		}

		phases := stored.Phases()
		if last, ok := domain.LastPhaseEnd(phases); ok {
			if p.Continuous || p.EndDate == nil || !dateutil.IsSameDay(*p.EndDate, last) {
				result.Add(contract.NoticeProjectEndSynced, p.ID,
					fmt.Sprintf("end date kept at %s, the end of the last phase", dateutil.DayKey(last)))
			}
			p.Continuous = false
			p.EndDate = &last
			if dateutil.AfterDay(p.StartDate, phases[0].StartDate) {
				return &domain.ValidationError{Code: domain.CodeInvalidDateRange, EntityID: p.ID,
					Message: fmt.Sprintf("start date %s is after the first phase start %s",
						dateutil.DayKey(p.StartDate), dateutil.DayKey(phases[0].StartDate))}
			}
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if len(phases) == 0 && stored.AllocationKind() != domain.AllocationRecurring {
			events, err := r.events.List(ctx, repository.EventFilter{ProjectID: p.ID})
			if err != nil {
				return err
			}
			events = scheduler.FilterEventsForProject(events, p.ID)
			today := todayFrom(s.clock)
			was := p.EndDate
			if extendOverdueEnd(p, events, today) {
				result.Add(contract.NoticeProjectEndExtended, p.ID,
					fmt.Sprintf("end date moved from %s to %s, %.1fh still to schedule",
						dateutil.DayKey(*was), dateutil.DayKey(*p.EndDate),
						scheduler.RemainingForScope(p.EstimatedHours, events, p.StartDate, *was)))
			}
			if !p.Continuous && p.EndDate != nil {
				cal, err := storedCalendar(ctx, r)
				if err != nil {
					return err
				}
				if remaining, stuck := unschedulable(p.EstimatedHours, events, p.StartDate, *p.EndDate, cal, today); stuck {
					result.Add(contract.NoticeCannotEstimate, p.ID, fmt.Sprintf("%.1fh left but no working days in %s..%s",
						remaining, dateutil.DayKey(p.StartDate), dateutil.DayKey(*p.EndDate)))
				}
			}
		}
		if len(phases) > 0 {
			warnings, err := scheduler.EnforceBudget(scheduler.AnalyzeBudget(p, phases), s.policy)
			if err != nil {
				return err
			}
			addBudgetWarnings(result, p.ID, warnings)
		}

		p.CreatedAt = stored.CreatedAt
		p.UpdatedAt = nowUTC()
		p.Allocation = stored.Allocation
		return r.projects.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "project-delete", time.Now(), map[string]any{"project_id": id}, &err)
	return s.projects.Delete(ctx, id)
}

// SetRecurring attaches or replaces the project's recurring estimate. It is
// rejected while the project has phases.
func (s *projectService) SetRecurring(ctx context.Context, rec *domain.RecurringEstimate) (err error) {
	defer observe(ctx, s.observer, "project-set-recurring", time.Now(),
		map[string]any{"project_id": rec.ProjectID, "pattern": string(rec.Pattern)}, &err)

	if rec.ID == "" {
		rec.ID = newID()
	}
	if err = rec.Validate(); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if _, err := r.projects.GetByID(ctx, rec.ProjectID); err != nil {
			return err
		}
		phases, err := r.phases.ListByProject(ctx, rec.ProjectID)
		if err != nil {
			return err
		}
		if len(phases) > 0 {
			return &domain.ValidationError{Code: domain.CodeAllocationConflict, EntityID: rec.ProjectID,
				Message: fmt.Sprintf("project has %d phases; remove them before adding a recurring estimate", len(phases))}
		}
		now := nowUTC()
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now
		return r.recurring.Upsert(ctx, rec)
	})
}

func (s *projectService) ClearRecurring(ctx context.Context, projectID string) (err error) {
	defer observe(ctx, s.observer, "project-clear-recurring", time.Now(), map[string]any{"project_id": projectID}, &err)

	err = s.recurring.DeleteByProject(ctx, projectID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	return err
}

// extendOverdueEnd moves a fixed project's end date to today when it has
// already passed and the budget is not used up by completed events.
func extendOverdueEnd(p *domain.Project, events []domain.CalendarEvent, today time.Time) bool {
	if p.Continuous || p.EndDate == nil || !dateutil.BeforeDay(*p.EndDate, today) {
		return false
	}
	if scheduler.RemainingForScope(p.EstimatedHours, events, p.StartDate, *p.EndDate) <= 0 {
		return false
	}
	p.EndDate = &today
	return true
}

func normalizeProjectDates(p *domain.Project) {
	p.StartDate = dateutil.StartOfDay(p.StartDate)
	if p.EndDate != nil {
		end := dateutil.StartOfDay(*p.EndDate)
		p.EndDate = &end
	}
}

func addBudgetWarnings(result *contract.MutationResult, entityID string, warnings []domain.ValidationError) {
	for _, w := range warnings {
		result.Add(contract.NoticeBudgetWarning, entityID, w.Message)
	}
}
