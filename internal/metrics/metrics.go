// Package metrics records database transaction statistics with Prometheus collectors
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for TransactionsTotal
const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
)

// Metrics holds the collectors for one process. Each instance owns a private
// registry so tests and parallel apps do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	TransactionsTotal   *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec
}

// New creates and registers the database collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		TransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cafe_db_transactions_total",
			Help: "Database transactions by operation and outcome",
		}, []string{"op", "outcome"}),
		TransactionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cafe_db_transaction_duration_seconds",
			Help:    "Wall time spent inside database transactions",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.TransactionsTotal, m.TransactionDuration)
	return m
}

// Registry exposes the underlying registry (for scraping or tests)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTx records one finished transaction. Safe to call on a nil receiver.
func (m *Metrics) ObserveTx(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeCommitted
	if err != nil {
		outcome = OutcomeRolledBack
	}
	m.TransactionsTotal.WithLabelValues(op, outcome).Inc()
	m.TransactionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// OpCount is one row of a Snapshot
type OpCount struct {
	Op         string `json:"op"`
	Committed  int64  `json:"committed"`
	RolledBack int64  `json:"rolled_back"`
}

// Snapshot returns per-operation transaction counts sorted by operation name
func (m *Metrics) Snapshot() ([]OpCount, error) {
	if m == nil {
		return nil, nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	byOp := make(map[string]*OpCount)
	for _, mf := range families {
		if mf.GetName() != "cafe_db_transactions_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			var op, outcome string
			for _, lp := range metric.GetLabel() {
				switch lp.GetName() {
				case "op":
					op = lp.GetValue()
				case "outcome":
					outcome = lp.GetValue()
				}
			}
			row, ok := byOp[op]
			if !ok {
				row = &OpCount{Op: op}
				byOp[op] = row
			}
			v := int64(metric.GetCounter().GetValue())
			if outcome == OutcomeCommitted {
				row.Committed += v
			} else {
				row.RolledBack += v
			}
		}
	}

	out := make([]OpCount, 0, len(byOp))
	for _, row := range byOp {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Op < out[j].Op })
	return out, nil
}
