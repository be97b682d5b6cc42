package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueOr(t *testing.T) {
	h := 12.5
	assert.Equal(t, 12.5, ValueOr(3.0, nil, &h))
	assert.Equal(t, 3.0, ValueOr[float64](3.0))

	yes := true
	assert.True(t, ValueOr(false, &yes))
}

func TestDateOr(t *testing.T) {
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	set := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, set, DateOr(fallback, time.Time{}, set))
	assert.Equal(t, fallback, DateOr(fallback, time.Time{}))
}
