package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/dateutil"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Create_GeneratesIDAndRoundTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	end := testutil.Day(2025, 2, 28)
	p := &domain.Project{Name: "Website", StartDate: testutil.Day(2025, 2, 1), EndDate: &end, EstimatedHours: 60}
	require.NoError(t, env.projects.Create(ctx, p))
	assert.NotEmpty(t, p.ID, "UUID should be generated")

	fetched := env.reload(t, p.ID)
	assert.Equal(t, "Website", fetched.Name)
	assert.Equal(t, 60.0, fetched.EstimatedHours)
	assert.Equal(t, domain.AllocationNone, fetched.AllocationKind())
	require.NotNil(t, fetched.EndDate)
	assert.True(t, dateutil.IsSameDay(end, *fetched.EndDate))
}

func TestProjectService_Create_RejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts []testutil.ProjectOption
		code domain.ValidationCode
	}{
		{"negative hours", []testutil.ProjectOption{testutil.WithEstimatedHours(-1)}, domain.CodeNegativeHours},
		{"end before start", []testutil.ProjectOption{testutil.WithDates(testutil.Day(2025, 2, 1), testutil.Day(2025, 1, 1))}, domain.CodeInvalidDateRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := env.projects.Create(ctx, testutil.NewTestProject("Bad", tc.opts...))
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, tc.code), "got %v", err)
		})
	}

	err := env.projects.Create(ctx, testutil.NewTestProject("  "))
	assert.True(t, domain.HasCode(err, domain.CodeRequired))
}

func TestProjectService_SetRecurring_RoundTripAndClear(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Retainer", testutil.WithContinuous(testutil.Day(2025, 1, 1)))

	rec := testutil.NewTestRecurring(p.ID, domain.RecurWeekly, 2)
	rec.ID = ""
	require.NoError(t, env.projects.SetRecurring(ctx, rec))
	assert.NotEmpty(t, rec.ID)

	got := env.reload(t, p.ID)
	stored, ok := got.Recurring()
	require.True(t, ok)
	assert.Equal(t, 2.0, stored.HoursPerOccurrence)

	require.NoError(t, env.projects.ClearRecurring(ctx, p.ID))
	assert.Equal(t, domain.AllocationNone, env.reload(t, p.ID).AllocationKind())
	assert.NoError(t, env.projects.ClearRecurring(ctx, p.ID), "clearing twice is a no-op")
}

func TestProjectService_SetRecurring_RejectedWithPhases(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t, "Phased")
	env.createPhase(t, p.ID, "Design")

	err := env.projects.SetRecurring(context.Background(), testutil.NewTestRecurring(p.ID, domain.RecurDaily, 1))
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeAllocationConflict))
}

func TestProjectService_SetRecurring_Validates(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t, "Retainer")

	err := env.projects.SetRecurring(context.Background(), testutil.NewTestRecurring(p.ID, "fortnightly", 1))
	assert.True(t, domain.HasCode(err, domain.CodeInvalidRecurrence))
}

func TestProjectService_Update_KeepsEndDatePinnedToLastPhase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Pinned")
	env.createPhase(t, p.ID, "Only", testutil.WithPhaseDates(testutil.Day(2025, 1, 1), testutil.Day(2025, 1, 10)))

	p = env.reload(t, p.ID)
	later := testutil.Day(2025, 3, 1)
	p.EndDate = &later
	p.Name = "Pinned (renamed)"

	result, err := env.projects.Update(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, []contract.NoticeKind{contract.NoticeProjectEndSynced}, noticeKinds(result.Notices))

	got := env.reload(t, p.ID)
	assert.Equal(t, "Pinned (renamed)", got.Name)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2025-01-10", dateutil.DayKey(*got.EndDate))
}

func TestProjectService_Update_BudgetBelowAllocationBlocked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Shrinking", testutil.WithEstimatedHours(40))
	env.createPhase(t, p.ID, "Build", testutil.WithPhaseHours(30))

	p = env.reload(t, p.ID)
	p.EstimatedHours = 20
	_, err := env.projects.Update(ctx, p)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeOverBudget))
	assert.Equal(t, 40.0, env.reload(t, p.ID).EstimatedHours, "rejected update leaves the row untouched")
}

func TestProjectService_Update_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.projects.Update(context.Background(), testutil.NewTestProject("Ghost"))
	assert.Error(t, err)
}

func TestProjectService_DeleteCascadesPhases(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Doomed")
	env.createPhase(t, p.ID, "Design")

	require.NoError(t, env.projects.Delete(ctx, p.ID))
	_, err := env.projects.GetByID(ctx, p.ID)
	assert.Error(t, err)
	phases, err := env.phases.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, phases)
}

func TestProjectService_List_LoadsAllocations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.createProject(t, "A")
	env.createPhase(t, a.ID, "Design")
	env.createProject(t, "B")

	projects, err := env.projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	kinds := map[string]domain.AllocationKind{}
	for _, p := range projects {
		kinds[p.Name] = p.AllocationKind()
	}
	assert.Equal(t, domain.AllocationPhases, kinds["A"])
	assert.Equal(t, domain.AllocationNone, kinds["B"])
}

// storeOverdue writes a project that ended before the test clock's today,
// bypassing the service so the stale end date survives.
func storeOverdue(t *testing.T, env *testEnv, name string, hours float64) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name,
		testutil.WithDates(testutil.Day(2024, 12, 1), testutil.Day(2024, 12, 20)),
		testutil.WithEstimatedHours(hours))
	require.NoError(t, env.repos.projects.Create(context.Background(), p))
	return p
}

func TestProjectService_Update_ExtendsOverdueEndToToday(t *testing.T) {
	env := newTestEnv(t)
	p := storeOverdue(t, env, "Late", 40)

	p = env.reload(t, p.ID)
	p.Name = "Late (renamed)"
	result, err := env.projects.Update(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, []contract.NoticeKind{contract.NoticeProjectEndExtended}, noticeKinds(result.Notices))
	assert.Contains(t, result.Notices[0].Message, "2024-12-20")
	assert.Contains(t, result.Notices[0].Message, "40.0h")

	got := env.reload(t, p.ID)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2025-01-01", dateutil.DayKey(*got.EndDate))
	assert.Equal(t, "2024-12-01", dateutil.DayKey(got.StartDate))
}

func TestProjectService_Update_OverdueButSpentKeepsEnd(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := storeOverdue(t, env, "Wrapped", 8)
	done := testutil.NewTestEvent("Final push", testutil.WithProject(p.ID),
		testutil.WithSpan(testutil.Day(2024, 12, 2).Add(9*time.Hour), 8*time.Hour), testutil.WithCompleted())
	require.NoError(t, env.repos.events.Create(ctx, done))

	p = env.reload(t, p.ID)
	result, err := env.projects.Update(ctx, p)
	require.NoError(t, err)
	assert.Empty(t, result.Notices)
	assert.Equal(t, "2024-12-20", dateutil.DayKey(*env.reload(t, p.ID).EndDate))
}

func TestProjectService_Create_ExtendsPastEnd(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t, "Backdated", testutil.WithDates(testutil.Day(2024, 12, 1), testutil.Day(2024, 12, 20)))

	got := env.reload(t, p.ID)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, "2025-01-01", dateutil.DayKey(*got.EndDate))

	spent := env.createProject(t, "Nothing left",
		testutil.WithDates(testutil.Day(2024, 12, 1), testutil.Day(2024, 12, 20)), testutil.WithEstimatedHours(0))
	assert.Equal(t, "2024-12-20", dateutil.DayKey(*env.reload(t, spent.ID).EndDate))
}

func TestProjectService_Update_WeekendOnlyRangeCannotEstimate(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProject(t, "Weekend job",
		testutil.WithDates(testutil.Day(2025, 1, 4), testutil.Day(2025, 1, 5)), testutil.WithEstimatedHours(10))

	result, err := env.projects.Update(context.Background(), env.reload(t, p.ID))
	require.NoError(t, err)
	require.Equal(t, []contract.NoticeKind{contract.NoticeCannotEstimate}, noticeKinds(result.Notices))
	assert.Contains(t, result.Notices[0].Message, "10.0h left")
}
