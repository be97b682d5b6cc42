package scheduler

import (
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/calendar"
	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Phase Jan 1-10 2025 with 40h, today Jan 5 (Sunday): Jan 6-10 are the five
// remaining weekdays.
func TestDistributeHours_ExcludesPastDays(t *testing.T) {
	dist := DistributeHours(40, day(2025, 1, 1), day(2025, 1, 10), weekdays(), day(2025, 1, 5))

	require.Equal(t, []string{"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10"}, dist.Days())
	for _, k := range dist.Days() {
		assert.Equal(t, 8.0, dist[k])
	}
	_, ok := dist.Hours(day(2025, 1, 3))
	assert.False(t, ok, "past working day is never eligible")
	assert.InDelta(t, 40.0, dist.Total(), 1e-9)
}

func TestDistributeHours_TodayIsEligible(t *testing.T) {
	dist := DistributeHours(10, day(2025, 1, 6), day(2025, 1, 7), weekdays(), day(2025, 1, 7))
	require.Len(t, dist, 1)
	h, ok := dist.Hours(day(2025, 1, 7))
	assert.True(t, ok)
	assert.Equal(t, 10.0, h)
}

func TestDistributeHours_RangeEntirelyInPast(t *testing.T) {
	dist := DistributeHours(40, day(2025, 1, 1), day(2025, 1, 10), weekdays(), day(2025, 2, 1))
	assert.Empty(t, dist)
}

func TestDistributeHours_NoWorkingDays(t *testing.T) {
	// Saturday and Sunday only.
	dist := DistributeHours(10, day(2025, 1, 4), day(2025, 1, 5), weekdays(), day(2025, 1, 1))
	assert.Empty(t, dist)
}

func TestDistributeHours_NothingRemainingGivesZeroEntries(t *testing.T) {
	for _, remaining := range []float64{0, -5} {
		dist := DistributeHours(remaining, day(2025, 1, 6), day(2025, 1, 10), weekdays(), day(2025, 1, 1))
		require.Len(t, dist, 5)
		for _, h := range dist {
			assert.Zero(t, h)
		}
	}
}

func TestDistributeHours_SkipsHolidays(t *testing.T) {
	cal := calendar.New(domain.DefaultWeeklySchedule(), []domain.Holiday{{Date: day(2025, 1, 8)}})
	dist := DistributeHours(12, day(2025, 1, 6), day(2025, 1, 9), cal, day(2025, 1, 1))
	require.Len(t, dist, 3)
	_, ok := dist.Hours(day(2025, 1, 8))
	assert.False(t, ok)
	assert.Equal(t, 4.0, dist["2025-01-06"])
}

func TestDistributeHours_PartialCapacityGetsFullShare(t *testing.T) {
	ws := domain.DefaultWeeklySchedule()
	ws[time.Friday] = []domain.TimeSlot{{Start: 9 * 60, End: 11 * 60}}
	dist := DistributeHours(10, day(2025, 1, 9), day(2025, 1, 10), calendar.New(ws, nil), day(2025, 1, 1))
	assert.Equal(t, 5.0, dist["2025-01-09"])
	assert.Equal(t, 5.0, dist["2025-01-10"])
}

func TestDistributeHours_SumProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cal := weekdays()

	for trial := 0; trial < 300; trial++ {
		start := day(2025, 1, 1).AddDate(0, 0, rng.Intn(60))
		end := start.AddDate(0, 0, rng.Intn(40))
		today := day(2025, 1, 1).AddDate(0, 0, rng.Intn(90))
		h := float64(rng.Intn(400)+1) + rng.Float64()

		dist := DistributeHours(h, start, end, cal, today)
		if len(dist) == 0 {
			continue
		}
		assert.InDelta(t, h, dist.Total(), 1e-6, "trial %d", trial)
		n := float64(len(dist))
		for k, v := range dist {
			assert.InDelta(t, h/n, v, 1e-9, "day %s", k)
			d, err := parseKey(k)
			require.NoError(t, err)
			assert.False(t, d.Before(today), "no distribution before today")
		}
	}
}

func TestRemainingForScope(t *testing.T) {
	events := []domain.CalendarEvent{
		projectEvent("done", "p", at(day(2025, 1, 2), 9), 6, domain.EventCompleted, true),
		projectEvent("planned", "p", at(day(2025, 1, 3), 9), 4, domain.EventPlanned, false),
		projectEvent("outside", "p", at(day(2025, 2, 3), 9), 4, domain.EventCompleted, true),
	}
	assert.Equal(t, 34.0, RemainingForScope(40, events, day(2025, 1, 1), day(2025, 1, 10)))
}
