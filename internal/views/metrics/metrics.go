package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for view availability checks.
type Metrics struct {
	// Evaluations by view and result ("available", "unavailable")
	Evaluations *prometheus.CounterVec

	// Failed sub-checks by view and check ("configuration", "permission", "data")
	Rejections *prometheus.CounterVec

	// Evidence gathering latencies by source ("entry", "permissions")
	EvidenceLatency *prometheus.HistogramVec
}

// New registers the view metrics with reg. A nil reg leaves them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mediaconsole_view_evaluations_total",
			Help: "View availability evaluations by view and result",
		}, []string{"view", "result"}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mediaconsole_view_rejections_total",
			Help: "Failed availability sub-checks by view and check",
		}, []string{"view", "check"}),

		EvidenceLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mediaconsole_view_evidence_duration_seconds",
			Help:    "Duration of evidence gathering by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"source"}),
	}
}

func (m *Metrics) IncrementEvaluation(view string, available bool) {
	if m == nil {
		return
	}
	result := "unavailable"
	if available {
		result = "available"
	}
	m.Evaluations.WithLabelValues(view, result).Inc()
}

func (m *Metrics) IncrementRejection(view, check string) {
	if m != nil {
		m.Rejections.WithLabelValues(view, check).Inc()
	}
}

func (m *Metrics) ObserveEvidenceLatency(source string, d time.Duration) {
	if m != nil {
		m.EvidenceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}
