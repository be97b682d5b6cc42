package service

import (
	"context"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/db"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/importer"
)

type importService struct {
	uow      db.UnitOfWork
	policy   domain.Policy
	clock    Clock
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, policy domain.Policy, clock Clock, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		policy:   policy,
		clock:    clock.orDefault(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, err
	}
	return s.ImportProjectFromSchema(ctx, schema)
}

// ImportProjectFromSchema stores a whole plan in one transaction. Nothing is
// written if any part fails validation.
func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", time.Now(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	plan, err := importer.Convert(schema)
	if err != nil {
		return nil, err
	}
	p := plan.Project
	fields["project"] = p.Name
	if err = p.Validate(); err != nil {
		return nil, err
	}

	phases := make([]domain.Phase, 0, len(plan.Phases))
	for _, ph := range plan.Phases {
		if err = checkPhaseTarget(p, ph); err != nil {
			return nil, err
		}
		phases = append(phases, *ph)
	}
	mutation := &contract.MutationResult{ID: p.ID}
	if len(phases) > 0 {
		if err = checkPhaseSet(p, phases, s.policy, mutation); err != nil {
			return nil, err
		}
	}
	for _, e := range plan.Events {
		if err = normalizeEvent(e); err != nil {
			return nil, err
		}
	}

	today := todayFrom(s.clock)
	result = &ImportResult{Project: p}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		if err := r.projects.Create(ctx, p); err != nil {
			return err
		}

		if len(plan.Phases) > 0 {
			if err := r.projects.SetPrePhaseEndDate(ctx, p.ID, p.EndDate); err != nil {
				return err
			}
			for _, ph := range plan.Phases {
				if err := r.phases.Create(ctx, ph); err != nil {
					return err
				}
			}
			result.PhaseCount = len(plan.Phases)
		}

		if plan.Recurring != nil {
			if err := plan.Recurring.Validate(); err != nil {
				return err
			}
			if err := r.recurring.Upsert(ctx, plan.Recurring); err != nil {
				return err
			}
			result.Recurring = true
		}

		for _, e := range plan.Events {
			if _, err := storeSplit(ctx, r.events, *e, false, mutation); err != nil {
				return err
			}
			result.EventCount++
		}

		for _, h := range plan.Holidays {
			if err := r.holidays.Create(ctx, h); err != nil {
				return err
			}
			result.HolidayCount++
		}

		if len(plan.Phases) > 0 {
			if err := settlePhases(ctx, r, p, today, mutation); err != nil {
				return err
			}
		}
		return loadAllocation(ctx, r.phases, r.recurring, p)
	})
	if err != nil {
		return nil, err
	}
	result.Notices = mutation.Notices
	fields["phases"] = result.PhaseCount
	fields["events"] = result.EventCount
	return result, nil
}
