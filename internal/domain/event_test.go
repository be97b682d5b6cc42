package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValidate(t *testing.T) {
	start := time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)
	e := &CalendarEvent{Start: start, End: start.Add(time.Hour), Type: EventPlanned, Category: CategoryEvent}
	assert.NoError(t, e.Validate())

	e.End = start.Add(-time.Minute)
	assert.True(t, HasCode(e.Validate(), CodeInvalidEvent))

	e.End = start
	assert.NoError(t, e.Validate(), "zero-length events are allowed")

	e.Type = "bogus"
	assert.True(t, HasCode(e.Validate(), CodeInvalidEvent))
}

func TestParseEventType_LegacyNormal(t *testing.T) {
	et, err := ParseEventType("normal")
	require.NoError(t, err)
	assert.Equal(t, EventPlanned, et)

	_, err = ParseEventType("nope")
	assert.Error(t, err)
}

func TestCategoryCountsTowardProject(t *testing.T) {
	assert.True(t, CategoryEvent.CountsTowardProject())
	assert.False(t, CategoryHabit.CountsTowardProject())
	assert.False(t, CategoryTask.CountsTowardProject())
}

func TestCrossesMidnight(t *testing.T) {
	base := time.Date(2025, 1, 6, 22, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		end   time.Time
		cross bool
	}{
		{"same day", base.Add(time.Hour), false},
		{"ends exactly at midnight", time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), false},
		{"ends after midnight", base.Add(4 * time.Hour), true},
		{"spans two midnights", base.Add(27 * time.Hour), true},
	}
	for _, tc := range cases {
		e := &CalendarEvent{Start: base, End: tc.end}
		assert.Equal(t, tc.cross, e.CrossesMidnight(), tc.name)
	}
}

func TestSplitAtMidnight_TwoParts(t *testing.T) {
	pid := "proj"
	e := CalendarEvent{
		ID:        "orig",
		Start:     time.Date(2025, 1, 6, 22, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 1, 7, 2, 0, 0, 0, time.UTC),
		ProjectID: &pid,
		Type:      EventTracked,
	}
	n := 0
	parts := e.SplitAtMidnight(func() string { n++; return fmt.Sprintf("new-%d", n) })

	require.Len(t, parts, 2)
	assert.Equal(t, "orig", parts[0].ID)
	assert.Nil(t, parts[0].OriginalEventID)
	assert.Equal(t, time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), parts[0].End)

	assert.Equal(t, "new-1", parts[1].ID)
	require.NotNil(t, parts[1].OriginalEventID)
	assert.Equal(t, "orig", *parts[1].OriginalEventID)
	assert.Equal(t, 2.0, parts[1].DurationHours())
	assert.Equal(t, EventTracked, parts[1].Type)

	var total float64
	for _, p := range parts {
		total += p.DurationHours()
	}
	assert.InDelta(t, e.DurationHours(), total, 1e-9, "split preserves total duration")
}

func TestSplitAtMidnight_NoSplitNeeded(t *testing.T) {
	e := CalendarEvent{
		ID:    "x",
		Start: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
	}
	parts := e.SplitAtMidnight(func() string { t.Fatal("should not allocate IDs"); return "" })
	require.Len(t, parts, 1)
	assert.Equal(t, e, parts[0])
}
