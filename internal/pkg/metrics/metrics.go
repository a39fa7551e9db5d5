// Package metrics exposes the Prometheus collectors of the fulfillment
// service. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fulfillment"

// Metrics groups the service collectors.
type Metrics struct {
	promiseEvaluations *prometheus.CounterVec
	splitsCreated      prometheus.Counter
	splitsRejected     prometheus.Counter
	splitTransitions   *prometheus.CounterVec
	shippedWeight      prometheus.Counter
	integrityIssues    prometheus.Gauge
	integrityScans     *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		promiseEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promise_evaluations_total",
			Help:      "Promise evaluations by resulting status.",
		}, []string{"status"}),
		splitsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_shipments_created_total",
			Help:      "Split shipments created.",
		}),
		splitsRejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_shipments_rejected_total",
			Help:      "Split shipment requests rejected by validation.",
		}),
		splitTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "split_shipment_transitions_total",
			Help:      "Split shipment status transitions by target status.",
		}, []string{"status"}),
		shippedWeight: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipped_weight_lbs_total",
			Help:      "Weight moved into split shipments, in pounds.",
		}),
		integrityIssues: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "orders_with_integrity_issues",
			Help:      "Orders found overshipped or unbalanced by the last integrity scan.",
		}),
		integrityScans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_scans_total",
			Help:      "Integrity scans by outcome.",
		}, []string{"outcome"}),
	}
}

// PromiseEvaluated counts an evaluation with the given status.
func (m *Metrics) PromiseEvaluated(status string) {
	if m == nil {
		return
	}
	m.promiseEvaluations.WithLabelValues(status).Inc()
}

// SplitCreated counts a new split and the weight it moved.
func (m *Metrics) SplitCreated(weightLbs float64) {
	if m == nil {
		return
	}
	m.splitsCreated.Inc()
	m.shippedWeight.Add(weightLbs)
}

// SplitRejected counts a split request that failed validation.
func (m *Metrics) SplitRejected() {
	if m == nil {
		return
	}
	m.splitsRejected.Inc()
}

// SplitTransitioned counts a status change to status.
func (m *Metrics) SplitTransitioned(status string) {
	if m == nil {
		return
	}
	m.splitTransitions.WithLabelValues(status).Inc()
}

// IntegrityScanned records the outcome of an integrity scan.
func (m *Metrics) IntegrityScanned(ordersWithIssues int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.integrityScans.WithLabelValues("error").Inc()
		return
	}
	m.integrityScans.WithLabelValues("ok").Inc()
	m.integrityIssues.Set(float64(ordersWithIssues))
}
