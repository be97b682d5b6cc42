package scheduler

import (
	"fmt"
	"math"

	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
)

type BudgetAnalysis struct {
	EstimatedHours     float64
	TotalAllocated     float64
	IsOverBudget       bool
	OverageHours       float64
	UtilizationPercent float64
	Remaining          float64 // unallocated hours, never negative
}

// AnalyzeBudget reports how phase allocations compare to the project budget.
// It never fails and does not depend on any enforcement policy.
func AnalyzeBudget(project *domain.Project, phases []domain.Phase) BudgetAnalysis {
	var total float64
	for _, ph := range phases {
		total += ph.Hours
	}
	est := project.EstimatedHours

	a := BudgetAnalysis{
		EstimatedHours: est,
		TotalAllocated: total,
		IsOverBudget:   total > est,
		OverageHours:   math.Max(0, total-est),
		Remaining:      math.Max(0, est-total),
	}
	if est > 0 {
		a.UtilizationPercent = total / est * 100
	}
	return a
}

// ValidatePhases checks every phase on its own, then the set: no two phases
// may share a day, and under GapContiguous consecutive phases must touch.
func ValidatePhases(phases []domain.Phase, policy domain.Policy) error {
	for i := range phases {
		if err := phases[i].Validate(); err != nil {
			return err
		}
	}

	sorted := domain.SortPhases(phases)
	for i := 1; i < len(sorted); i++ {
		prev, cur := &sorted[i-1], &sorted[i]
		if prev.Overlaps(cur) {
			return &domain.ValidationError{
				Code: domain.CodePhaseOverlap,
				Message: fmt.Sprintf("phase %q (%s..%s) overlaps %q (%s..%s)",
					cur.Name, dateutil.DayKey(cur.StartDate), dateutil.DayKey(cur.EndDate),
					prev.Name, dateutil.DayKey(prev.StartDate), dateutil.DayKey(prev.EndDate)),
				EntityID: cur.ID,
			}
		}
		if policy.Gap == domain.GapContiguous && dateutil.DaysBetween(prev.EndDate, cur.StartDate) > 1 {
			return &domain.ValidationError{
				Code: domain.CodePhaseGap,
				Message: fmt.Sprintf("gap between %q ending %s and %q starting %s",
					prev.Name, dateutil.DayKey(prev.EndDate), cur.Name, dateutil.DayKey(cur.StartDate)),
				EntityID: cur.ID,
			}
		}
	}
	return nil
}

// EnforceBudget applies the budget enforcement policy to an analysis.
// Under EnforceBlock a violation is returned as an error; under EnforceWarn
// it is returned as a warning; under EnforceAllow it is ignored.
func EnforceBudget(a BudgetAnalysis, policy domain.Policy) ([]domain.ValidationError, error) {
	var violations []domain.ValidationError
	if a.IsOverBudget {
		violations = append(violations, domain.ValidationError{
			Code: domain.CodeOverBudget,
			Message: fmt.Sprintf("phases allocate %.1fh, %.1fh over the %.1fh budget",
				a.TotalAllocated, a.OverageHours, a.EstimatedHours),
		})
	}
	if policy.RequireFullAllocation && a.TotalAllocated < a.EstimatedHours {
		violations = append(violations, domain.ValidationError{
			Code: domain.CodeUnderBudget,
			Message: fmt.Sprintf("phases allocate %.1fh, %.1fh short of the %.1fh budget",
				a.TotalAllocated, a.Remaining, a.EstimatedHours),
		})
	}
	if len(violations) == 0 {
		return nil, nil
	}

	switch policy.Budget {
	case domain.EnforceAllow:
		return nil, nil
	case domain.EnforceWarn:
		return violations, nil
	default:
		v := violations[0]
		return nil, &v
	}
}
