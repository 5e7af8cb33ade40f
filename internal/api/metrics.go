package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation of the API server. Each
// server owns its registry so tests can run servers side by side.
type Metrics struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	imports   *prometheus.CounterVec
}

// NewMetrics creates and registers the server's metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finanza_ledger_mutations_total",
			Help: "Ledger mutations applied, by operation.",
		}, []string{"operation"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "finanza_backup_imports_total",
			Help: "Backup import attempts, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.mutations, m.imports)
	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Mutation records one applied ledger mutation.
func (m *Metrics) Mutation(operation string) {
	m.mutations.WithLabelValues(operation).Inc()
}

// Import records one backup import attempt outcome ("accepted" or
// "rejected").
func (m *Metrics) Import(outcome string) {
	m.imports.WithLabelValues(outcome).Inc()
}
