package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for SOS handling.
type Metrics struct {
	Triggers      prometheus.Counter
	RecordFailed  prometheus.Counter
	AlertFailures prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Triggers: factory.NewCounter(prometheus.CounterOpts{
			Name: "safeher_sos_triggers_total",
			Help: "SOS requests received",
		}),
		RecordFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "safeher_sos_record_failures_total",
			Help: "SOS events that could not be stored",
		}),
		AlertFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "safeher_sos_alert_failures_total",
			Help: "SOS alerts that could not be published",
		}),
	}
}

func (m *Metrics) IncrementTriggers() {
	if m != nil {
		m.Triggers.Inc()
	}
}

func (m *Metrics) IncrementRecordFailures() {
	if m != nil {
		m.RecordFailed.Inc()
	}
}

func (m *Metrics) IncrementAlertFailures() {
	if m != nil {
		m.AlertFailures.Inc()
	}
}
