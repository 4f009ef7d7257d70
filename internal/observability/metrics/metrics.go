package metrics

import "github.com/prometheus/client_golang/prometheus"

// SubmissionMetrics exposes counters/histograms for the lead submission flow.
type SubmissionMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	forwardLatency     prometheus.Histogram
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "submit",
			Name:      "submissions_total",
			Help:      "Total lead submissions by outcome",
		}, []string{"outcome"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadrelay",
			Subsystem: "submit",
			Name:      "validation_failures_total",
			Help:      "Validation failures by failing field",
		}, []string{"field"}),
		forwardLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leadrelay",
			Subsystem: "submit",
			Name:      "forward_latency_seconds",
			Help:      "Latency of outbound CRM forwards",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.validationFailures, m.forwardLatency)
	return m
}

// ObserveSubmission counts one submission with outcome accepted, rejected,
// or forward_error.
func (m *SubmissionMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *SubmissionMetrics) ObserveValidationFailure(field string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *SubmissionMetrics) ObserveForwardLatency(seconds float64) {
	if m == nil {
		return
	}
	m.forwardLatency.Observe(seconds)
}
