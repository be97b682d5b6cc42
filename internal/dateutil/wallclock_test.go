package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClock(t *testing.T) {
	want := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)
	for _, in := range []string{"2025-01-06 09:30", "2025-01-06T09:30", "2025-01-06T09:30:00+02:00", " 2025-01-06 09:30 "} {
		got, err := ParseWallClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWallClock("monday morning")
	assert.Error(t, err)
}

func TestWallClock_KeepsReading(t *testing.T) {
	loc := time.FixedZone("UTC-8", -8*3600)
	late := time.Date(2025, 1, 6, 23, 0, 0, 0, loc)
	got := WallClock(late)
	assert.Equal(t, 6, got.Day(), "must not roll into the next UTC day")
	assert.Equal(t, 23, got.Hour())
	assert.True(t, WallClock(time.Time{}).IsZero())
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("mon, Thursday,SAT")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday, time.Saturday}, got)

	got, err = ParseWeekdays("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseWeekdays("mon,funday")
	assert.Error(t, err)
}
