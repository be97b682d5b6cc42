package scheduler

import (
	"sync"
	"testing"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheInput() RangeInput {
	return RangeInput{
		Project:  fixedProject("p", day(2025, 1, 6), day(2025, 1, 17), 40),
		From:     day(2025, 1, 6),
		To:       day(2025, 1, 17),
		Calendar: weekdays(),
		Today:    day(2025, 1, 6),
		Policy:   domain.DefaultPolicy(),
	}
}

func TestEstimateCache_HitOnIdenticalInput(t *testing.T) {
	c := NewEstimateCache(0)
	var hits, misses int
	c.OnLookup = func(hit bool) {
		if hit {
			hits++
		} else {
			misses++
		}
	}

	first, err := c.ResolveRange(cacheInput())
	require.NoError(t, err)
	second, err := c.ResolveRange(cacheInput())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, ResolveRange(cacheInput()), first)
}

func TestEstimateCache_KeyCoversEveryInput(t *testing.T) {
	c := NewEstimateCache(0)
	base, err := c.ResolveRange(cacheInput())
	require.NoError(t, err)

	in := cacheInput()
	in.Today = day(2025, 1, 8)
	moved, err := c.ResolveRange(in)
	require.NoError(t, err)
	assert.NotEqual(t, base, moved, "changing today must not return the stale result")

	in = cacheInput()
	in.Events = []domain.CalendarEvent{projectEvent("e", "p", at(day(2025, 1, 9), 9), 2, domain.EventPlanned, false)}
	withEvent, err := c.ResolveRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.SourcePlannedEvent, withEvent[3].Source)

	in = cacheInput()
	in.Calendar.Holidays = []domain.Holiday{{Date: day(2025, 1, 9)}}
	withHoliday, err := c.ResolveRange(in)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceNone, withHoliday[3].Source)

	assert.Equal(t, 4, c.Len())
}

func TestEstimateCache_InvalidateAndCopy(t *testing.T) {
	c := NewEstimateCache(0)
	out, err := c.ResolveRange(cacheInput())
	require.NoError(t, err)
	out[0].Hours = 999

	again, err := c.ResolveRange(cacheInput())
	require.NoError(t, err)
	assert.NotEqual(t, 999.0, again[0].Hours, "callers cannot corrupt cached entries")

	c.Invalidate()
	assert.Zero(t, c.Len())
}

func TestEstimateCache_BoundedSize(t *testing.T) {
	c := NewEstimateCache(2)
	for i := 0; i < 5; i++ {
		in := cacheInput()
		in.Today = day(2025, 1, 6+i)
		_, err := c.ResolveRange(in)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, c.Len(), 2)
}

func TestEstimateCache_ConcurrentUse(t *testing.T) {
	c := NewEstimateCache(0)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := cacheInput()
			in.Today = day(2025, 1, 6+i%3)
			_, err := c.ResolveRange(in)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 3, c.Len())
}
