package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestProjectValidate_Valid(t *testing.T) {
	p := &Project{Name: "Website", StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 1, 31)), EstimatedHours: 100}
	assert.NoError(t, p.Validate())
}

func TestProjectValidate_NameRequired(t *testing.T) {
	p := &Project{Name: "  ", StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 1, 31))}
	err := p.Validate()
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeRequired))
}

func TestProjectValidate_NegativeHours(t *testing.T) {
	p := &Project{Name: "X", StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 1, 31)), EstimatedHours: -1}
	assert.True(t, HasCode(p.Validate(), CodeNegativeHours))
}

func TestProjectValidate_EndBeforeStart(t *testing.T) {
	p := &Project{Name: "X", StartDate: day(2025, 2, 1), EndDate: ptr(day(2025, 1, 31))}
	assert.True(t, HasCode(p.Validate(), CodeInvalidDateRange))
}

func TestProjectValidate_SameDayRangeAllowed(t *testing.T) {
	p := &Project{Name: "X", StartDate: day(2025, 2, 1), EndDate: ptr(day(2025, 2, 1).Add(3 * time.Hour))}
	assert.NoError(t, p.Validate())
}

func TestProjectValidate_ContinuousRejectsEndDate(t *testing.T) {
	p := &Project{Name: "X", StartDate: day(2025, 1, 1), EndDate: ptr(day(2025, 3, 1)), Continuous: true}
	assert.True(t, HasCode(p.Validate(), CodeInvalidDateRange))

	p.EndDate = nil
	assert.NoError(t, p.Validate())
}

func TestProjectValidate_NonContinuousNeedsEndDate(t *testing.T) {
	p := &Project{Name: "X", StartDate: day(2025, 1, 1)}
	assert.True(t, HasCode(p.Validate(), CodeRequired))
}

func TestProjectCovers(t *testing.T) {
	p := &Project{StartDate: day(2025, 1, 10), EndDate: ptr(day(2025, 1, 20))}
	assert.False(t, p.Covers(day(2025, 1, 9)))
	assert.True(t, p.Covers(day(2025, 1, 10).Add(23*time.Hour)))
	assert.True(t, p.Covers(day(2025, 1, 20)))
	assert.False(t, p.Covers(day(2025, 1, 21)))

	cont := &Project{StartDate: day(2025, 1, 10), Continuous: true}
	assert.True(t, cont.Covers(day(2030, 1, 1)))
}

func TestNewAllocation_Variants(t *testing.T) {
	none, err := NewAllocation(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, AllocationNone, none.Kind())

	phases, err := NewAllocation([]Phase{
		{ID: "b", StartDate: day(2025, 1, 16), EndDate: day(2025, 1, 31)},
		{ID: "a", StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 15)},
	}, nil)
	require.NoError(t, err)
	require.Equal(t, AllocationPhases, phases.Kind())
	assert.Equal(t, "a", phases.(PhaseAllocation).Phases[0].ID, "phases sorted by start date")

	rec, err := NewAllocation(nil, &RecurringEstimate{Pattern: RecurDaily, HoursPerOccurrence: 2})
	require.NoError(t, err)
	assert.Equal(t, AllocationRecurring, rec.Kind())
}

func TestNewAllocation_PhasesAndRecurringConflict(t *testing.T) {
	_, err := NewAllocation([]Phase{{ID: "a"}}, &RecurringEstimate{Pattern: RecurDaily})
	require.Error(t, err)
	assert.True(t, HasCode(err, CodeAllocationConflict))
}

func TestProjectAllocationAccessors(t *testing.T) {
	p := &Project{}
	assert.Equal(t, AllocationNone, p.AllocationKind())
	assert.Nil(t, p.Phases())
	_, ok := p.Recurring()
	assert.False(t, ok)

	p.Allocation = RecurringAllocation{Estimate: RecurringEstimate{HoursPerOccurrence: 3}}
	r, ok := p.Recurring()
	require.True(t, ok)
	assert.Equal(t, 3.0, r.HoursPerOccurrence)
	assert.Nil(t, p.Phases())
}

func TestDisplayID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000"}
	assert.Equal(t, "550e8400", p.DisplayID())
	assert.Equal(t, "abc", (&Project{ID: "abc"}).DisplayID())
}

func TestValidationError_ErrorString(t *testing.T) {
	err := &ValidationError{Code: CodePhaseOverlap, Message: "phases overlap"}
	assert.Equal(t, "PHASE_OVERLAP: phases overlap", err.Error())
}
