package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/repository"
	"github.com/alexanderramin/timeplan/internal/scheduler"
)

type phaseService struct {
	phases   repository.PhaseRepo
	uow      db.UnitOfWork
	policy   domain.Policy
	clock    Clock
	observer UseCaseObserver
}

func NewPhaseService(
	phases repository.PhaseRepo,
	uow db.UnitOfWork,
	policy domain.Policy,
	clock Clock,
	observers ...UseCaseObserver,
) PhaseService {
	return &phaseService{
		phases:   phases,
		uow:      uow,
		policy:   policy,
		clock:    clock.orDefault(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *phaseService) Create(ctx context.Context, ph *domain.Phase) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "phase-create", time.Now(),
		map[string]any{"project_id": ph.ProjectID, "hours": ph.Hours}, &err)

	if ph.ID == "" {
		ph.ID = newID()
	}
	normalizePhaseDates(ph)
	if err = ph.Validate(); err != nil {
		return nil, err
	}

	result = &contract.MutationResult{ID: ph.ID}
	today := todayFrom(s.clock)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := loadProject(ctx, r, ph.ProjectID)
		if err != nil {
			return err
		}
		if err := checkPhaseTarget(p, ph); err != nil {
			return err
		}

		existing := p.Phases()
		all := append(append([]domain.Phase(nil), existing...), *ph)
		if err := checkPhaseSet(p, all, s.policy, result); err != nil {
			return err
		}
		if len(existing) == 0 {
			if err := r.projects.SetPrePhaseEndDate(ctx, p.ID, p.EndDate); err != nil {
				return err
			}
		}

		now := nowUTC()
		ph.CreatedAt = now
		ph.UpdatedAt = now
		if err := r.phases.Create(ctx, ph); err != nil {
			return err
		}
		return settlePhases(ctx, r, p, today, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByProject(ctx context.Context, projectID string) ([]domain.Phase, error) {
	return s.phases.ListByProject(ctx, projectID)
}

// Update replaces a phase's dates, hours, name and order. A phase cannot
// move to another project.
func (s *phaseService) Update(ctx context.Context, ph *domain.Phase) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "phase-update", time.Now(), map[string]any{"phase_id": ph.ID}, &err)

	normalizePhaseDates(ph)
	result = &contract.MutationResult{ID: ph.ID}
	today := todayFrom(s.clock)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		stored, err := r.phases.GetByID(ctx, ph.ID)
		if err != nil {
			return err
		}
		ph.ProjectID = stored.ProjectID
		if err := ph.Validate(); err != nil {
			return err
		}
		p, err := loadProject(ctx, r, ph.ProjectID)
		if err != nil {
			return err
		}
		if err := checkPhaseTarget(p, ph); err != nil {
			return err
		}

		all := make([]domain.Phase, 0, len(p.Phases()))
		for _, other := range p.Phases() {
			if other.ID == ph.ID {
				continue
			}
			all = append(all, other)
		}
		all = append(all, *ph)
		if err := checkPhaseSet(p, all, s.policy, result); err != nil {
			return err
		}

		ph.CreatedAt = stored.CreatedAt
		ph.UpdatedAt = nowUTC()
		if err := r.phases.Update(ctx, ph); err != nil {
			return err
		}
		return settlePhases(ctx, r, p, today, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a phase. Removing the last phase restores the end date the
// project had before phases were added.
func (s *phaseService) Delete(ctx context.Context, id string) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "phase-delete", time.Now(), map[string]any{"phase_id": id}, &err)

	result = &contract.MutationResult{ID: id}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		ph, err := r.phases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.phases.Delete(ctx, id); err != nil {
			return err
		}
		p, err := loadProject(ctx, r, ph.ProjectID)
		if err != nil {
			return err
		}
		if remaining := p.Phases(); len(remaining) > 0 {
			return syncProjectEnd(ctx, r, p, remaining, result)
		}

		pre, err := r.projects.GetPrePhaseEndDate(ctx, p.ID)
		if err != nil {
			return err
		}
		msg := "project is continuous again"
		if pre == nil {
			p.Continuous = true
			p.EndDate = nil
		} else {
			p.Continuous = false
			p.EndDate = pre
			msg = fmt.Sprintf("project end date restored to %s", dateutil.DayKey(*pre))
		}
		p.UpdatedAt = nowUTC()
		if err := r.projects.Update(ctx, p); err != nil {
			return err
		}
		if err := r.projects.SetPrePhaseEndDate(ctx, p.ID, nil); err != nil {
			return err
		}
		result.Add(contract.NoticeProjectEndReverted, p.ID, msg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *phaseService) AdjustForToday(ctx context.Context, projectID string, today time.Time) (result *contract.MutationResult, err error) {
	defer observe(ctx, s.observer, "phase-adjust", time.Now(), map[string]any{"project_id": projectID}, &err)

	today = dateutil.StartOfDay(today)
	result = &contract.MutationResult{ID: projectID}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		p, err := loadProject(ctx, r, projectID)
		if err != nil {
			return err
		}
		if p.AllocationKind() != domain.AllocationPhases {
			return nil
		}
		return settlePhases(ctx, r, p, today, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func normalizePhaseDates(ph *domain.Phase) {
	ph.StartDate = dateutil.StartOfDay(ph.StartDate)
	ph.EndDate = dateutil.StartOfDay(ph.EndDate)
}

// checkPhaseTarget rejects phases on recurring projects and phases that
// start before their project does.
func checkPhaseTarget(p *domain.Project, ph *domain.Phase) error {
	if p.AllocationKind() == domain.AllocationRecurring {
		return &domain.ValidationError{Code: domain.CodeAllocationConflict, EntityID: p.ID,
			Message: "project uses a recurring estimate; clear it before adding phases"}
	}
	if dateutil.BeforeDay(ph.StartDate, p.StartDate) {
		return &domain.ValidationError{Code: domain.CodeInvalidDateRange, EntityID: ph.ID,
			Message: fmt.Sprintf("phase starts %s, before project start %s",
				dateutil.DayKey(ph.StartDate), dateutil.DayKey(p.StartDate))}
	}
	return nil
}

// checkPhaseSet validates the full phase list a mutation would leave behind
// and applies budget enforcement. Warnings are recorded on result.
func checkPhaseSet(p *domain.Project, phases []domain.Phase, policy domain.Policy, result *contract.MutationResult) error {
	if err := scheduler.ValidatePhases(phases, policy); err != nil {
		return err
	}
	warnings, err := scheduler.EnforceBudget(scheduler.AnalyzeBudget(p, phases), policy)
	if err != nil {
		return err
	}
	addBudgetWarnings(result, p.ID, warnings)
	return nil
}

// settlePhases reloads the project's phases, pushes overdue ones to today
// and pins the project end date to the last phase. Phases that still have
// hours but no working day left are reported, not moved.
func settlePhases(ctx context.Context, r txRepos, p *domain.Project, today time.Time, result *contract.MutationResult) error {
	phases, err := r.phases.ListByProject(ctx, p.ID)
	if err != nil {
		return err
	}
	if len(phases) == 0 {
		return nil
	}
	events, err := r.events.List(ctx, repository.EventFilter{ProjectID: p.ID})
	if err != nil {
		return err
	}

	events = scheduler.FilterEventsForProject(events, p.ID)
	adjusted, changed := adjustPhases(phases, events, today, result)
	now := nowUTC()
	for i := range adjusted {
		if !changed[adjusted[i].ID] {
			continue
		}
		adjusted[i].UpdatedAt = now
		if err := r.phases.Update(ctx, &adjusted[i]); err != nil {
			return err
		}
	}
	if err := syncProjectEnd(ctx, r, p, adjusted, result); err != nil {
		return err
	}

	cal, err := storedCalendar(ctx, r)
	if err != nil {
		return err
	}
	for i := range adjusted {
		ph := &adjusted[i]
		if remaining, stuck := unschedulable(ph.Hours, events, ph.StartDate, ph.EndDate, cal, today); stuck {
			result.Add(contract.NoticeCannotEstimate, ph.ID, fmt.Sprintf("phase %q has %.1fh left but no working days in %s..%s",
				ph.Name, remaining, dateutil.DayKey(ph.StartDate), dateutil.DayKey(ph.EndDate)))
		}
	}
	return nil
}

// adjustPhases extends every phase that ended before today with hours left
// on it, then shifts later phases forward so none overlap. Shifted phases
// keep their length.
func adjustPhases(phases []domain.Phase, events []domain.CalendarEvent, today time.Time, result *contract.MutationResult) ([]domain.Phase, map[string]bool) {
	sorted := domain.SortPhases(phases)
	changed := make(map[string]bool)
	for i := range sorted {
		ph := &sorted[i]
		if i > 0 {
			prev := &sorted[i-1]
			if !dateutil.AfterDay(ph.StartDate, prev.EndDate) {
				length := dateutil.DaysBetween(ph.StartDate, ph.EndDate)
				ph.StartDate = dateutil.AddDays(prev.EndDate, 1)
				ph.EndDate = dateutil.AddDays(ph.StartDate, length)
				changed[ph.ID] = true
				result.Add(contract.NoticePhaseShifted, ph.ID, fmt.Sprintf("phase %q moved to %s..%s",
					ph.Name, dateutil.DayKey(ph.StartDate), dateutil.DayKey(ph.EndDate)))
			}
		}
		if !dateutil.BeforeDay(ph.EndDate, today) {
			continue
		}
		remaining := scheduler.RemainingForScope(ph.Hours, events, ph.StartDate, ph.EndDate)
		if remaining <= 0 {
			continue
		}
		ph.EndDate = today
		changed[ph.ID] = true
		result.Add(contract.NoticePhaseExtended, ph.ID, fmt.Sprintf("phase %q had %.1fh left and now ends %s",
			ph.Name, remaining, dateutil.DayKey(today)))
	}
	return sorted, changed
}

// syncProjectEnd makes the project end on the last phase's end date.
func syncProjectEnd(ctx context.Context, r txRepos, p *domain.Project, phases []domain.Phase, result *contract.MutationResult) error {
	last, ok := domain.LastPhaseEnd(phases)
	if !ok {
		return nil
	}
	if !p.Continuous && p.EndDate != nil && dateutil.IsSameDay(*p.EndDate, last) {
		return nil
	}

	kind := contract.NoticeProjectEndSynced
	if p.EndDate != nil && dateutil.AfterDay(last, *p.EndDate) {
		kind = contract.NoticeProjectEndExtended
	}
	p.EndDate = &last
	p.Continuous = false
	p.UpdatedAt = nowUTC()
	if err := r.projects.Update(ctx, p); err != nil {
		return err
	}
	result.Add(kind, p.ID, fmt.Sprintf("project now ends %s with its last phase", dateutil.DayKey(last)))
	return nil
}
