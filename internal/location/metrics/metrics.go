package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for location analysis.
type Metrics struct {
	RiskLevel       *prometheus.CounterVec
	LogFailures     *prometheus.CounterVec
	RoutineFailures prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RiskLevel: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safeher_location_risk_total",
			Help: "Analyzed positions by risk level",
		}, []string{"level"}),
		LogFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safeher_location_log_failures_total",
			Help: "Position writes that failed, by store",
		}, []string{"store"}), // store: "history", "latest"
		RoutineFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "safeher_location_routine_check_failures_total",
			Help: "Analyses whose embedded routine check failed",
		}),
	}
}

func (m *Metrics) IncrementRiskLevel(level string) {
	if m != nil {
		m.RiskLevel.WithLabelValues(level).Inc()
	}
}

func (m *Metrics) IncrementLogFailure(store string) {
	if m != nil {
		m.LogFailures.WithLabelValues(store).Inc()
	}
}

func (m *Metrics) IncrementRoutineFailure() {
	if m != nil {
		m.RoutineFailures.Inc()
	}
}
