package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEventsForProject_ExcludesHabitsAndTasks(t *testing.T) {
	base := at(day(2025, 1, 6), 9)
	ev := projectEvent("e1", "p", base, 1, domain.EventPlanned, false)
	habit := projectEvent("h1", "p", base, 1, domain.EventPlanned, false)
	habit.Category = domain.CategoryHabit
	task := projectEvent("t1", "p", base, 1, domain.EventCompleted, true)
	task.Category = domain.CategoryTask
	other := projectEvent("o1", "other", base, 1, domain.EventPlanned, false)
	unlinked := domain.CalendarEvent{ID: "u1", Start: base, End: base.Add(time.Hour), Category: domain.CategoryEvent}

	got := FilterEventsForProject([]domain.CalendarEvent{ev, habit, task, other, unlinked}, "p")

	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestPlannedAndCompletedAreExclusiveAndExhaustive(t *testing.T) {
	types := []domain.EventType{domain.EventPlanned, domain.EventTracked, domain.EventCompleted}
	for _, typ := range types {
		for _, completed := range []bool{false, true} {
			e := domain.CalendarEvent{Type: typ, Completed: completed}
			assert.NotEqual(t, IsPlannedTime(&e), IsCompletedTime(&e), "type=%s completed=%v", typ, completed)
		}
	}

	planned := domain.CalendarEvent{Type: domain.EventPlanned}
	assert.True(t, IsPlannedTime(&planned))
	tracked := domain.CalendarEvent{Type: domain.EventTracked}
	assert.True(t, IsCompletedTime(&tracked))
	done := domain.CalendarEvent{Type: domain.EventPlanned, Completed: true}
	assert.True(t, IsCompletedTime(&done))
}

func TestEventsOnDay_Overlap(t *testing.T) {
	d := day(2025, 1, 6)
	lateNight := projectEvent("late", "p", at(day(2025, 1, 5), 22), 4, domain.EventPlanned, false) // 22:00-02:00
	endsAtMidnight := projectEvent("mid", "p", at(day(2025, 1, 5), 20), 4, domain.EventPlanned, false)
	zero := projectEvent("zero", "p", at(d, 12), 0, domain.EventPlanned, false)
	nextDay := projectEvent("next", "p", day(2025, 1, 7), 1, domain.EventPlanned, false)

	got := EventsOnDay([]domain.CalendarEvent{lateNight, endsAtMidnight, zero, nextDay}, d)

	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.ElementsMatch(t, []string{"late", "zero"}, ids)
}

func TestHoursOnDay_ClipsToDay(t *testing.T) {
	e := projectEvent("late", "p", at(day(2025, 1, 5), 22), 4, domain.EventPlanned, false)
	assert.Equal(t, 2.0, HoursOnDay(&e, day(2025, 1, 5)))
	assert.Equal(t, 2.0, HoursOnDay(&e, day(2025, 1, 6)))
	assert.Zero(t, HoursOnDay(&e, day(2025, 1, 7)))
}

func TestCompletedHoursInRange(t *testing.T) {
	events := []domain.CalendarEvent{
		projectEvent("a", "p", at(day(2025, 1, 2), 9), 3, domain.EventCompleted, false),
		projectEvent("b", "p", at(day(2025, 1, 3), 9), 2, domain.EventTracked, false),
		projectEvent("c", "p", at(day(2025, 1, 3), 14), 5, domain.EventPlanned, false),
		projectEvent("d", "p", at(day(2025, 1, 20), 9), 4, domain.EventCompleted, true),
		projectEvent("edge", "p", at(day(2025, 1, 10), 22), 4, domain.EventCompleted, true), // 2h in range
	}
	assert.Equal(t, 7.0, CompletedHoursInRange(events, day(2025, 1, 1), day(2025, 1, 10)))
}

func TestTallyDay(t *testing.T) {
	d := day(2025, 1, 6)
	events := []domain.CalendarEvent{
		projectEvent("c", "p", at(d, 9), 6, domain.EventCompleted, true),
		projectEvent("pl", "p", at(d, 16), 2, domain.EventPlanned, false),
	}
	tally := TallyDay(events, d)
	assert.True(t, tally.HasCompleted)
	assert.True(t, tally.HasPlanned)
	assert.Equal(t, 6.0, tally.CompletedHours)
	assert.Equal(t, 2.0, tally.PlannedHours)
}
