package scheduler

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/alexanderramin/timeplan/internal/domain"
	"github.com/mitchellh/hashstructure/v2"
	"golang.org/x/sync/singleflight"
)

const defaultCacheEntries = 512

// EstimateCache memoizes ResolveRange results keyed by a structural hash of
// the whole RangeInput, so any change to events, allocation, calendar,
// policy or today produces a new key. Safe for concurrent use; concurrent
// misses on one key resolve once.
type EstimateCache struct {
	mu      sync.Mutex
	entries map[uint64][]domain.DayEstimate
	max     int
	flight  singleflight.Group

	// OnLookup, when set, is called after every lookup with whether it hit.
	OnLookup func(hit bool)
}

func NewEstimateCache(maxEntries int) *EstimateCache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheEntries
	}
	return &EstimateCache{
		entries: make(map[uint64][]domain.DayEstimate),
		max:     maxEntries,
	}
}

// ResolveRange returns a cached resolution for in, computing it on a miss.
// The returned slice is a copy.
func (c *EstimateCache) ResolveRange(in RangeInput) ([]domain.DayEstimate, error) {
	key, err := hashstructure.Hash(in, hashstructure.FormatV2, nil)
	if err != nil {
		return nil, fmt.Errorf("hashing estimate input: %w", err)
	}

	c.mu.Lock()
	cached, ok := c.entries[key]
	c.mu.Unlock()
	c.observe(ok)
	if ok {
		return cloneEstimates(cached), nil
	}

	v, _, _ := c.flight.Do(strconv.FormatUint(key, 16), func() (any, error) {
		out := ResolveRange(in)
		c.mu.Lock()
		if len(c.entries) >= c.max {
			// Full: start over rather than track recency.
			c.entries = make(map[uint64][]domain.DayEstimate)
		}
		c.entries[key] = out
		c.mu.Unlock()
		return out, nil
	})
	return cloneEstimates(v.([]domain.DayEstimate)), nil
}

// Invalidate drops every entry.
func (c *EstimateCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[uint64][]domain.DayEstimate)
	c.mu.Unlock()
}

func (c *EstimateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *EstimateCache) observe(hit bool) {
	if c.OnLookup != nil {
		c.OnLookup(hit)
	}
}

func cloneEstimates(in []domain.DayEstimate) []domain.DayEstimate {
	out := make([]domain.DayEstimate, len(in))
	copy(out, in)
	return out
}
