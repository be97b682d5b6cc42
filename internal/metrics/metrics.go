// Package metrics provides Prometheus metrics for timeplan.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timeplan"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// Estimate engine metrics
var (
	// EstimateCacheLookups counts estimate cache lookups by result (hit, miss).
	EstimateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "estimate",
			Name:      "cache_lookups_total",
			Help:      "Estimate cache lookups by result",
		},
		[]string{"result"},
	)

	// DayEstimatesResolved counts resolved day estimates by source.
	DayEstimatesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "estimate",
			Name:      "days_resolved_total",
			Help:      "Resolved day estimates by source",
		},
		[]string{"source"},
	)
)

// Service metrics
var (
	UseCaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "use_case_duration_seconds",
			Help:      "Service use-case latency in seconds",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"use_case"},
	)

	UseCaseErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "service",
			Name:      "use_case_errors_total",
			Help:      "Service use cases that returned an error",
		},
		[]string{"use_case"},
	)
)

// ObserveCacheLookup matches scheduler.EstimateCache.OnLookup.
func ObserveCacheLookup(hit bool) {
	if hit {
		EstimateCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	EstimateCacheLookups.WithLabelValues("miss").Inc()
}
