package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveCacheLookup(t *testing.T) {
	hits := EstimateCacheLookups.WithLabelValues("hit")
	misses := EstimateCacheLookups.WithLabelValues("miss")
	beforeHit, beforeMiss := counterValue(t, hits), counterValue(t, misses)

	ObserveCacheLookup(true)
	ObserveCacheLookup(false)
	ObserveCacheLookup(false)

	assert.Equal(t, beforeHit+1, counterValue(t, hits))
	assert.Equal(t, beforeMiss+2, counterValue(t, misses))
}
