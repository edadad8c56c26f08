// Package metrics exposes Prometheus collectors for ledger activity and RPC traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clubledger"

// Metrics holds the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	confirmations *prometheus.CounterVec
	payments      *prometheus.CounterVec
	rowsWritten   *prometheus.CounterVec
	skippedItems  *prometheus.CounterVec
	rpcDuration   *prometheus.HistogramVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "confirmations_total",
			Help:      "Attendance confirmations by result.",
		}, []string{"result"}),
		payments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_total",
			Help:      "Payment recordings by result.",
		}, []string{"result"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_rows_written_total",
			Help:      "Ledger rows upserted or deleted.",
		}, []string{"op"}),
		skippedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_items_total",
			Help:      "Requested items ignored as unknown or non-positive.",
		}, []string{"operation"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.confirmations,
		m.payments,
		m.rowsWritten,
		m.skippedItems,
		m.rpcDuration,
	)
	return m
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Confirmation counts one confirm call.
func (m *Metrics) Confirmation(result string) {
	m.confirmations.WithLabelValues(result).Inc()
}

// Payment counts one pay call.
func (m *Metrics) Payment(result string) {
	m.payments.WithLabelValues(result).Inc()
}

// LedgerWrites counts applied upserts and deletes.
func (m *Metrics) LedgerWrites(upserts, deletes int) {
	m.rowsWritten.WithLabelValues("upsert").Add(float64(upserts))
	m.rowsWritten.WithLabelValues("delete").Add(float64(deletes))
}

// Skipped counts ignored request items.
func (m *Metrics) Skipped(operation string, n int) {
	if n > 0 {
		m.skippedItems.WithLabelValues(operation).Add(float64(n))
	}
}

// ObserveRPC records one RPC.
func (m *Metrics) ObserveRPC(procedure, code string, d time.Duration) {
	m.rpcDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}
