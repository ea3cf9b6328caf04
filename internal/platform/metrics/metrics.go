// Package metrics registers the Prometheus instruments for the contract
// engine. All methods are nil-safe so tests can pass a nil *Metrics without
// stubbing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordsCreated  prometheus.Counter
	Transitions     *prometheus.CounterVec
	GuardRejections *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "foncier_records_created_total",
			Help: "Total number of contract records created",
		}),
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foncier_workflow_transitions_total",
			Help: "Successful workflow transitions by action type",
		}, []string{"action"}),
		GuardRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "foncier_guard_rejections_total",
			Help: "Mutations rejected by a workflow guard, by error code",
		}, []string{"code"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "foncier_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// IncrementRecordsCreated increments the created-records counter by 1.
func (m *Metrics) IncrementRecordsCreated() {
	if m == nil {
		return
	}
	m.RecordsCreated.Inc()
}

// ObserveTransition counts one successful transition of the given action.
func (m *Metrics) ObserveTransition(action string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(action).Inc()
}

// ObserveGuardRejection counts one guard failure by error code.
func (m *Metrics) ObserveGuardRejection(code string) {
	if m == nil {
		return
	}
	m.GuardRejections.WithLabelValues(code).Inc()
}

// ObserveRequestDuration records HTTP latency in seconds.
func (m *Metrics) ObserveRequestDuration(route, method string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method).Observe(seconds)
}
