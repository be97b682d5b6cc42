package scheduler

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeBudget_TwoPhasesFullyAllocated(t *testing.T) {
	p := fixedProject("p", day(2025, 1, 1), day(2025, 1, 31), 100)
	phases := []domain.Phase{
		phase("design", day(2025, 1, 1), day(2025, 1, 15), 40),
		phase("build", day(2025, 1, 16), day(2025, 1, 31), 60),
	}

	a := AnalyzeBudget(&p, phases)

	assert.Equal(t, 100.0, a.TotalAllocated)
	assert.False(t, a.IsOverBudget)
	assert.Equal(t, 100.0, a.UtilizationPercent)
	assert.Zero(t, a.Remaining)
	assert.Zero(t, a.OverageHours)
}

func TestAnalyzeBudget_OverBudget(t *testing.T) {
	p := fixedProject("p", day(2025, 1, 1), day(2025, 1, 31), 50)
	a := AnalyzeBudget(&p, []domain.Phase{phase("a", day(2025, 1, 1), day(2025, 1, 31), 65)})
	assert.True(t, a.IsOverBudget)
	assert.Equal(t, 15.0, a.OverageHours)
	assert.Equal(t, 130.0, a.UtilizationPercent)
}

func TestAnalyzeBudget_ZeroBudgetHasZeroUtilization(t *testing.T) {
	p := fixedProject("p", day(2025, 1, 1), day(2025, 1, 31), 0)
	a := AnalyzeBudget(&p, []domain.Phase{phase("a", day(2025, 1, 1), day(2025, 1, 31), 10)})
	assert.Zero(t, a.UtilizationPercent)
	assert.True(t, a.IsOverBudget)
}

func TestAnalyzeBudget_ConservationProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		est := float64(rng.Intn(200))
		p := fixedProject("p", day(2025, 1, 1), day(2025, 12, 31), est)
		var phases []domain.Phase
		var sum float64
		n := rng.Intn(6)
		for i := 0; i < n; i++ {
			h := float64(rng.Intn(80))
			sum += h
			phases = append(phases, phase("x", day(2025, 1, 1), day(2025, 1, 2), h))
		}
		a := AnalyzeBudget(&p, phases)
		assert.Equal(t, sum, a.TotalAllocated)
		assert.Equal(t, sum > est, a.IsOverBudget)
	}
}

func TestValidatePhases_OverlapAlwaysRejected(t *testing.T) {
	phases := []domain.Phase{
		phase("a", day(2025, 1, 1), day(2025, 1, 15), 10),
		phase("b", day(2025, 1, 15), day(2025, 1, 31), 10),
	}
	for _, gap := range []domain.GapPolicy{domain.GapAllow, domain.GapContiguous} {
		pol := domain.DefaultPolicy()
		pol.Gap = gap
		err := ValidatePhases(phases, pol)
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodePhaseOverlap))
	}
}

func TestValidatePhases_GapPolicy(t *testing.T) {
	phases := []domain.Phase{
		phase("a", day(2025, 1, 1), day(2025, 1, 10), 10),
		phase("b", day(2025, 1, 14), day(2025, 1, 31), 10),
	}
	assert.NoError(t, ValidatePhases(phases, domain.DefaultPolicy()))

	strict := domain.DefaultPolicy()
	strict.Gap = domain.GapContiguous
	assert.True(t, domain.HasCode(ValidatePhases(phases, strict), domain.CodePhaseGap))

	adjacent := []domain.Phase{
		phase("a", day(2025, 1, 1), day(2025, 1, 10), 10),
		phase("b", day(2025, 1, 11), day(2025, 1, 31), 10),
	}
	assert.NoError(t, ValidatePhases(adjacent, strict))
}

func TestValidatePhases_InvalidPhase(t *testing.T) {
	err := ValidatePhases([]domain.Phase{phase("a", day(2025, 1, 10), day(2025, 1, 1), 10)}, domain.DefaultPolicy())
	assert.True(t, domain.HasCode(err, domain.CodeInvalidDateRange))
}

func TestEnforceBudget_Policies(t *testing.T) {
	over := BudgetAnalysis{EstimatedHours: 50, TotalAllocated: 60, IsOverBudget: true, OverageHours: 10}

	pol := domain.DefaultPolicy()
	warnings, err := EnforceBudget(over, pol)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeOverBudget))
	assert.Empty(t, warnings)

	pol.Budget = domain.EnforceWarn
	warnings, err = EnforceBudget(over, pol)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.CodeOverBudget, warnings[0].Code)

	pol.Budget = domain.EnforceAllow
	warnings, err = EnforceBudget(over, pol)
	assert.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestEnforceBudget_UnderAllocationOnlyWhenRequired(t *testing.T) {
	under := BudgetAnalysis{EstimatedHours: 50, TotalAllocated: 30, Remaining: 20}

	_, err := EnforceBudget(under, domain.DefaultPolicy())
	assert.NoError(t, err)

	pol := domain.DefaultPolicy()
	pol.RequireFullAllocation = true
	_, err = EnforceBudget(under, pol)
	assert.True(t, domain.HasCode(err, domain.CodeUnderBudget))
}
