// Package metrics exposes prometheus instruments for governance operations.
// Every method is safe to call on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the governance core.
type Metrics struct {
	// Governance operations by action and outcome
	Operations *prometheus.CounterVec

	// Latency of governance operations by action
	OperationLatency *prometheus.HistogramVec

	// Subjects removed by retention purges
	SubjectsPurged prometheus.Counter

	// Audit entries that could not be written
	AuditWriteFailures prometheus.Counter

	// HTTP requests by route pattern, method and status code
	HTTPRequests *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg. Passing a fresh
// prometheus.NewRegistry() keeps tests independent of the global registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "privacy_keeper_operations_total",
			Help: "Total governance operations by action and outcome",
		}, []string{"action", "outcome"}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "privacy_keeper_operation_duration_seconds",
			Help:    "Duration of governance operations including the audit write",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"action"}),

		SubjectsPurged: factory.NewCounter(prometheus.CounterOpts{
			Name: "privacy_keeper_subjects_purged_total",
			Help: "Total subjects hard-deleted after their retention date",
		}),

		AuditWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "privacy_keeper_audit_write_failures_total",
			Help: "Total audit entries that could not be persisted",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "privacy_keeper_http_requests_total",
			Help: "Total HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
	}
}

// IncrementOperation records the outcome of a governance operation.
func (m *Metrics) IncrementOperation(action, outcome string) {
	if m != nil {
		m.Operations.WithLabelValues(action, outcome).Inc()
	}
}

// ObserveOperationLatency records how long a governance operation took.
func (m *Metrics) ObserveOperationLatency(action string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(action).Observe(d.Seconds())
	}
}

// AddPurged records subjects removed by a purge.
func (m *Metrics) AddPurged(n int) {
	if m != nil && n > 0 {
		m.SubjectsPurged.Add(float64(n))
	}
}

// IncrementAuditWriteFailure records an audit entry that was lost.
func (m *Metrics) IncrementAuditWriteFailure() {
	if m != nil {
		m.AuditWriteFailures.Inc()
	}
}

// IncrementHTTPRequest records a served HTTP request.
func (m *Metrics) IncrementHTTPRequest(route, method, code string) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, method, code).Inc()
	}
}
