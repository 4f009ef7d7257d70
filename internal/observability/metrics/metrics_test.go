package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSubmissionMetricsObserve(t *testing.T) {
	m := NewSubmissionMetrics(prometheus.NewRegistry())
	m.ObserveSubmission("accepted")
	m.ObserveSubmission("rejected")
	m.ObserveValidationFailure("email")
	m.ObserveForwardLatency(0.5)
}

func TestSubmissionMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSubmissionMetrics(reg)
	m.ObserveSubmission("forward_error")
}

func TestSubmissionMetricsNilSafe(t *testing.T) {
	var m *SubmissionMetrics
	m.ObserveSubmission("accepted")
	m.ObserveValidationFailure("phone")
	m.ObserveForwardLatency(0.1)
}
