package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the routine module.
type Metrics struct {
	// Check outcomes by deviation status
	CheckOutcome *prometheus.CounterVec

	// Full CheckNow latency including the store lookup
	CheckLatency prometheus.Histogram

	// Store lookup latency by operation
	StoreLatency *prometheus.HistogramVec

	// Store failures surfaced as storage_unavailable
	StoreFailures prometheus.Counter
}

// New creates and registers the routine metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the routine metrics on reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CheckOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safeher_routine_check_outcomes_total",
			Help: "Total routine checks by deviation status",
		}, []string{"status"}), // status: "on_schedule", "deviating", "not_applicable"

		CheckLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "safeher_routine_check_duration_seconds",
			Help:    "Duration of routine checks including the store lookup",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		StoreLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "safeher_routine_store_duration_seconds",
			Help:    "Duration of routine store operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"op"}),

		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "safeher_routine_store_failures_total",
			Help: "Routine store lookups that failed or timed out",
		}),
	}
}

// IncrementOutcome records a check outcome.
func (m *Metrics) IncrementOutcome(status string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(status).Inc()
	}
}

// ObserveCheckLatency records the total check duration.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}

// ObserveStoreLatency records the duration of a store operation.
func (m *Metrics) ObserveStoreLatency(op string, d time.Duration) {
	if m != nil {
		m.StoreLatency.WithLabelValues(op).Observe(d.Seconds())
	}
}

// IncrementStoreFailures records a failed store lookup.
func (m *Metrics) IncrementStoreFailures() {
	if m != nil {
		m.StoreFailures.Inc()
	}
}
