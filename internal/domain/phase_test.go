package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseValidate(t *testing.T) {
	ok := &Phase{ProjectID: "p", StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 1), Hours: 0}
	assert.NoError(t, ok.Validate())

	backwards := &Phase{ID: "x", ProjectID: "p", StartDate: day(2025, 1, 2), EndDate: day(2025, 1, 1)}
	err := backwards.Validate()
	require.Error(t, err)
	ve, isVE := IsValidation(err)
	require.True(t, isVE)
	assert.Equal(t, CodeInvalidDateRange, ve.Code)
	assert.Equal(t, "x", ve.EntityID)

	negative := &Phase{ProjectID: "p", StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 2), Hours: -3}
	assert.True(t, HasCode(negative.Validate(), CodeNegativeHours))
}

func TestPhaseOverlaps(t *testing.T) {
	a := &Phase{StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 15)}
	b := &Phase{StartDate: day(2025, 1, 16), EndDate: day(2025, 1, 31)}
	c := &Phase{StartDate: day(2025, 1, 15), EndDate: day(2025, 1, 20)}

	assert.False(t, a.Overlaps(b), "adjacent phases do not overlap")
	assert.True(t, a.Overlaps(c), "sharing Jan 15 is an overlap")
	assert.True(t, c.Overlaps(a))
	assert.True(t, b.Overlaps(c))
}

func TestPhaseCoversAndDuration(t *testing.T) {
	ph := &Phase{StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 10)}
	assert.True(t, ph.Covers(day(2025, 1, 10).Add(20*time.Hour)))
	assert.False(t, ph.Covers(day(2025, 1, 11)))
	assert.Equal(t, 10, ph.DurationDays())
}

func TestLastPhaseEnd(t *testing.T) {
	_, ok := LastPhaseEnd(nil)
	assert.False(t, ok)

	end, ok := LastPhaseEnd([]Phase{
		{EndDate: day(2025, 3, 1)},
		{EndDate: day(2025, 5, 1)},
		{EndDate: day(2025, 4, 1)},
	})
	require.True(t, ok)
	assert.Equal(t, day(2025, 5, 1), end)
}
