// Package metrics exposes ledger activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/mrsplit/internal/models"
)

const namespace = "mrsplit"

// Metrics implements ledger.Recorder on top of Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	expenses  *prometheus.CounterVec
	amount    *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	transfers prometheus.Histogram
}

// New creates and registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		expenses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expenses_recorded_total",
			Help:      "Number of expenses and payments recorded.",
		}, []string{"kind"}),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recorded_amount_minor_units_total",
			Help:      "Sum of recorded amounts in minor currency units.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_operations_total",
			Help:      "Number of ledger operations rejected, by error kind.",
		}, []string{"reason"}),
		transfers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each computed settlement.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
	}
	m.registry.MustRegister(m.expenses, m.amount, m.rejected, m.transfers)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ExpenseRecorded(kind models.ExpenseKind, amount int64) {
	m.expenses.WithLabelValues(string(kind)).Inc()
	m.amount.WithLabelValues(string(kind)).Add(float64(amount))
}

func (m *Metrics) Rejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) Settled(transfers int) {
	m.transfers.Observe(float64(transfers))
}

// WriteTextfile writes the current metrics in the text exposition format to
// path, for collection by the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
