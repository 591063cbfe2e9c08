package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reaction-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Prediction outcomes by source path
	ReactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "reactions_total",
			Help:      "Total reaction predictions served, by source",
		},
		[]string{"source"},
	)

	// World-first discoveries
	DiscoveriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "discoveries_total",
			Help:      "Total world-first discoveries recorded",
		},
	)

	// Reasoning backend attempts
	ReasoningAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "reasoning_attempts_total",
			Help:      "Reasoning backend attempts by result",
		},
		[]string{"result"},
	)

	// Fact retrieval requests
	FactRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "fact_requests_total",
			Help:      "Compound fact lookups by result",
		},
		[]string{"result"},
	)

	// Cache insert races lost to a concurrent writer
	CacheConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "cache_conflicts_total",
			Help:      "Cache inserts that lost a concurrent fingerprint race",
		},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Reasoning inference duration
	ReasoningDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "chemezy",
			Subsystem: "reaction_api",
			Name:      "reasoning_duration_seconds",
			Help:      "Reasoning backend call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordReaction records a served prediction by its source path
func RecordReaction(source string) {
	ReactionsTotal.WithLabelValues(source).Inc()
}
