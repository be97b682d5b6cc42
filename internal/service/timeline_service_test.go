package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/contract"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/alexanderramin/timeplan/internal/scheduler"
	"github.com/alexanderramin/timeplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTime(t time.Time) *time.Time { return &t }

func requireContractCode(t *testing.T, err error, code contract.ErrorCode) {
	t.Helper()
	var cerr *contract.Error
	require.True(t, errors.As(err, &cerr), "want contract error, got %v", err)
	assert.Equal(t, code, cerr.Code)
}

// One working week, Monday 2025-01-06 to Friday 2025-01-10, 40h.
func weekProject(t *testing.T, env *testEnv, name string) *domain.Project {
	return env.createProject(t, name, testutil.WithDates(testutil.Day(2025, 1, 6), testutil.Day(2025, 1, 10)))
}

func TestTimelineService_Timeline_SpreadsBudgetOverWorkingDays(t *testing.T) {
	env := newTestEnv(t)
	p := weekProject(t, env, "Launch")

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	req.Today = ptrTime(testutil.Day(2025, 1, 6))
	resp, err := env.timeline.Timeline(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Projects, 1)
	row := resp.Projects[0]
	assert.Equal(t, p.ID, row.ProjectID)
	require.Len(t, row.Days, 7)
	for i, d := range row.Days[:5] {
		assert.Equal(t, domain.SourceAutoEstimate, d.Source, "day %d", i)
		assert.InDelta(t, 8.0, d.Hours, 1e-9)
	}
	assert.Equal(t, domain.SourceNone, row.Days[5].Source)
	assert.Equal(t, domain.SourceNone, row.Days[6].Source)
	assert.InDelta(t, 40.0, row.TotalHours, 1e-9)

	require.Len(t, resp.Totals, 7)
	assert.InDelta(t, 8.0, resp.Totals[0].Hours, 1e-9)
	assert.Equal(t, 8.0, resp.Totals[0].CapacityHours)
	assert.True(t, resp.Totals[0].Working)
	assert.False(t, resp.Totals[5].Working)
	assert.Empty(t, resp.Warnings)
}

func TestTimelineService_Timeline_EventDaySuppressesEstimate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := weekProject(t, env, "Launch")

	e := testutil.NewTestEvent("Workshop", testutil.WithProject(p.ID),
		testutil.WithSpan(testutil.Day(2025, 1, 7).Add(9*time.Hour), 3*time.Hour))
	_, err := env.events.Create(ctx, e)
	require.NoError(t, err)

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	req.Today = ptrTime(testutil.Day(2025, 1, 6))
	resp, err := env.timeline.Timeline(ctx, req)
	require.NoError(t, err)

	days := resp.Projects[0].Days
	assert.Equal(t, domain.SourcePlannedEvent, days[1].Source)
	assert.Equal(t, 3.0, days[1].Hours)
	for _, i := range []int{0, 2, 3, 4} {
		assert.Equal(t, domain.SourceAutoEstimate, days[i].Source, "day %d", i)
	}
}

func TestTimelineService_Timeline_HolidayAndPastDaysShowNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	weekProject(t, env, "Launch")
	require.NoError(t, env.calendar.AddHoliday(ctx, testutil.NewTestHoliday(testutil.Day(2025, 1, 9), "Closed", false)))

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	req.Today = ptrTime(testutil.Day(2025, 1, 7))
	resp, err := env.timeline.Timeline(ctx, req)
	require.NoError(t, err)

	days := resp.Projects[0].Days
	assert.Equal(t, domain.SourceNone, days[0].Source, "yesterday")
	assert.Equal(t, domain.SourceNone, days[3].Source, "holiday")
	// Jan 7, 8 and 10 share the full budget.
	for _, i := range []int{1, 2, 4} {
		assert.InDelta(t, 40.0/3, days[i].Hours, 1e-9, "day %d", i)
	}
	assert.False(t, resp.Totals[3].Working)
}

func TestTimelineService_Timeline_RequestErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	weekProject(t, env, "Launch")

	_, err := env.timeline.Timeline(ctx, contract.TimelineRequest{From: testutil.Day(2025, 1, 10), To: testutil.Day(2025, 1, 1)})
	requireContractCode(t, err, contract.ErrInvalidRange)

	_, err = env.timeline.Timeline(ctx, contract.TimelineRequest{From: testutil.Day(2025, 1, 1), To: testutil.Day(2026, 1, 2)})
	requireContractCode(t, err, contract.ErrInvalidRange)

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	req.ProjectScope = []string{"missing"}
	_, err = env.timeline.Timeline(ctx, req)
	requireContractCode(t, err, contract.ErrInvalidScope)
}

func TestTimelineService_Timeline_EmptyProjectsAndScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	live := weekProject(t, env, "Live")
	env.createProject(t, "Old", testutil.WithDates(testutil.Day(2024, 12, 1), testutil.Day(2024, 12, 20)))

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	req.Today = ptrTime(testutil.Day(2025, 1, 6))
	resp, err := env.timeline.Timeline(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, live.ID, resp.Projects[0].ProjectID)

	req.IncludeEmpty = true
	resp, err = env.timeline.Timeline(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Projects, 2)

	req.ProjectScope = []string{live.ID}
	resp, err = env.timeline.Timeline(ctx, req)
	require.NoError(t, err)
	assert.Len(t, resp.Projects, 1)
}

func TestTimelineService_Timeline_WarnsWhenOverCapacity(t *testing.T) {
	env := newTestEnv(t)
	weekProject(t, env, "A")
	weekProject(t, env, "B")

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	req.Today = ptrTime(testutil.Day(2025, 1, 6))
	resp, err := env.timeline.Timeline(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, resp.Totals[0].Hours, 1e-9)
	require.Len(t, resp.Warnings, 5)
	assert.True(t, strings.HasPrefix(resp.Warnings[0], "2025-01-06"))
}

func TestTimelineService_Timeline_UsesCache(t *testing.T) {
	env := newTestEnv(t)
	weekProject(t, env, "Launch")
	cache := scheduler.NewEstimateCache(0)
	r := env.repos
	svc := NewTimelineService(r.projects, r.phases, r.recurring, r.events, env.calendar, cache, domain.DefaultPolicy(), env.clock)

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 6))
	first, err := svc.Timeline(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Timeline(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Projects, second.Projects)
	assert.Equal(t, 1, cache.Len())
}

func TestTimelineService_Budget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Phased", testutil.WithEstimatedHours(40))
	env.createPhase(t, p.ID, "A", testutil.WithPhaseHours(30))

	a, err := env.timeline.Budget(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, a.TotalAllocated)
	assert.Equal(t, 10.0, a.Remaining)
	assert.Equal(t, 75.0, a.UtilizationPercent)

	r := env.createProject(t, "Retainer")
	require.NoError(t, env.projects.SetRecurring(ctx, testutil.NewTestRecurring(r.ID, domain.RecurDaily, 1)))
	_, err = env.timeline.Budget(ctx, r.ID)
	requireContractCode(t, err, contract.ErrNoAllocation)

	_, err = env.timeline.Budget(ctx, "missing")
	assert.Error(t, err)
}

func TestTimelineService_Preview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Phased", testutil.WithEstimatedHours(40))
	env.createPhase(t, p.ID, "A", testutil.WithPhaseHours(30))

	resp, err := env.timeline.Preview(ctx, contract.PreviewRequest{
		ProjectID: p.ID,
		Start:     testutil.Day(2025, 1, 13),
		End:       testutil.Day(2025, 1, 19),
		Hours:     20,
		Today:     ptrTime(testutil.Day(2025, 1, 6)),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.WorkingDays)
	assert.InDelta(t, 20.0, resp.TotalHours, 1e-9)
	require.Len(t, resp.Days, 5)
	assert.Equal(t, testutil.Day(2025, 1, 13), resp.Days[0].Date)
	assert.InDelta(t, 4.0, resp.Days[0].Hours, 1e-9)
	assert.Equal(t, 8.0, resp.Days[0].CapacityHours)
	assert.Empty(t, resp.Warnings)

	require.NotNil(t, resp.Budget)
	assert.Equal(t, 30.0, resp.Budget.AllocatedHours)
	assert.Equal(t, 50.0, resp.Budget.ProjectedAllocated)
	assert.True(t, resp.Budget.IsOverBudget)
	assert.Equal(t, 10.0, resp.Budget.OverageHours)
}

func TestTimelineService_Preview_WarningsAndErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.timeline.Preview(ctx, contract.PreviewRequest{
		Start: testutil.Day(2024, 12, 2), End: testutil.Day(2024, 12, 6), Hours: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], string(domain.CodeRangeInPast))
	assert.Nil(t, resp.Budget)

	resp, err = env.timeline.Preview(ctx, contract.PreviewRequest{
		Start: testutil.Day(2025, 1, 6), End: testutil.Day(2025, 1, 6), Hours: 12,
	})
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "exceeds")

	_, err = env.timeline.Preview(ctx, contract.PreviewRequest{Start: testutil.Day(2025, 1, 6), End: testutil.Day(2025, 1, 10), Hours: -1})
	requireContractCode(t, err, contract.ErrInvalidRequest)
}

func TestTimelineService_Insights_OrdersByRisk(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createProject(t, "Calm", testutil.WithContinuous(testutil.Day(2025, 1, 1)))
	// 40h due Tuesday with only Monday and Tuesday left: 16h of capacity.
	env.createProject(t, "Crunch", testutil.WithDates(testutil.Day(2025, 1, 1), testutil.Day(2025, 1, 7)))
	roomy := env.createProject(t, "Roomy", testutil.WithDates(testutil.Day(2025, 1, 1), testutil.Day(2025, 3, 31)), testutil.WithEstimatedHours(10))

	planned := testutil.NewTestEvent("Booked", testutil.WithProject(roomy.ID),
		testutil.WithSpan(testutil.Day(2025, 1, 8).Add(9*time.Hour), 10*time.Hour))
	_, err := env.events.Create(ctx, planned)
	require.NoError(t, err)

	req := contract.NewInsightsRequest()
	req.Today = ptrTime(testutil.Day(2025, 1, 6))
	resp, err := env.timeline.Insights(ctx, req)
	require.NoError(t, err)

	require.Len(t, resp.Projects, 3)
	assert.Equal(t, "Crunch", resp.Projects[0].ProjectName)
	assert.Equal(t, domain.RiskCritical, resp.Projects[0].RiskLevel)
	require.NotNil(t, resp.Projects[0].DaysLeft)
	assert.Equal(t, 1, *resp.Projects[0].DaysLeft)
	assert.Equal(t, "2025-01-07", *resp.Projects[0].EndDate)

	assert.Equal(t, "Roomy", resp.Projects[1].ProjectName)
	assert.Equal(t, domain.RiskOnTrack, resp.Projects[1].RiskLevel)
	assert.Equal(t, 10.0, resp.Projects[1].PlannedHours)

	assert.Equal(t, "Calm", resp.Projects[2].ProjectName, "continuous projects sort last")
	assert.Nil(t, resp.Projects[2].EndDate)

	assert.Equal(t, 3, resp.Summary.CountsTotal)
	assert.Equal(t, 1, resp.Summary.CountsCritical)
	assert.Equal(t, 2, resp.Summary.CountsOnTrack)
}

func TestTimelineService_Insights_RecentPace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Steady", testutil.WithDates(testutil.Day(2025, 1, 1), testutil.Day(2025, 1, 31)))
	for _, d := range []int{2, 3} {
		e := testutil.NewTestEvent("logged", testutil.WithProject(p.ID),
			testutil.WithSpan(testutil.Day(2025, 1, d).Add(9*time.Hour), 7*time.Hour),
			testutil.WithEventType(domain.EventTracked))
		_, err := env.events.Create(ctx, e)
		require.NoError(t, err)
	}

	req := contract.NewInsightsRequest()
	req.Today = ptrTime(testutil.Day(2025, 1, 6))
	resp, err := env.timeline.Insights(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Projects, 1)

	row := resp.Projects[0]
	assert.Equal(t, 14.0, row.CompletedHours)
	assert.Equal(t, 26.0, row.RemainingHours)
	assert.InDelta(t, 2.0, row.RecentDailyHours, 1e-9)
	assert.InDelta(t, 35.0, row.ProgressPct, 1e-9)
}

func TestTimelineService_Timeline_WarnsWhenScopeCannotBeEstimated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, "Site")
	env.createPhase(t, p.ID, "Weekend",
		testutil.WithPhaseDates(testutil.Day(2025, 1, 4), testutil.Day(2025, 1, 5)), testutil.WithPhaseHours(10))

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 1))
	req.Today = ptrTime(testutil.Day(2025, 1, 1))
	req.IncludeEmpty = true
	resp, err := env.timeline.Timeline(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], `cannot estimate phase "Weekend"`)
	assert.Contains(t, resp.Warnings[0], "10.0h")
}

func TestTimelineService_Timeline_WarnsForOverdueProject(t *testing.T) {
	env := newTestEnv(t)
	storeOverdue(t, env, "Late", 40)

	req := contract.NewTimelineRequest(testutil.Day(2025, 1, 1))
	req.To = testutil.Day(2025, 1, 10)
	req.Today = ptrTime(testutil.Day(2025, 1, 1))
	req.IncludeEmpty = true
	resp, err := env.timeline.Timeline(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "Late: cannot estimate, 40.0h left")
}
