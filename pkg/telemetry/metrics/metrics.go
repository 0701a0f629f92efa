// Package metrics exposes the Prometheus instrumentation SPEC_FULL.md
// §2.2 adds around the solver and ALNS loop: solve-invocation counters by
// outcome, and gauges tracking iteration count and best score.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector this program registers. A nil
// *Metrics is valid everywhere it's used (every method is a no-op on a
// nil receiver), so callers that don't configure --metrics-addr pay no
// instrumentation cost beyond a nil check.
type Metrics struct {
	registry *prometheus.Registry

	solverInvocations *prometheus.CounterVec
	iteration         prometheus.Gauge
	bestScore         prometheus.Gauge
}

// New registers a fresh set of collectors on their own registry (never
// the global default, so multiple runs in one process — e.g. tests —
// don't collide on duplicate registration).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		solverInvocations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "loadplan",
			Name:      "solver_invocations_total",
			Help:      "Solver Driver invocations by resulting status.",
		}, []string{"phase", "status"}),
		iteration: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: "loadplan",
			Name:      "alns_iteration",
			Help:      "Current ALNS iteration counter.",
		}),
		bestScore: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: "loadplan",
			Name:      "alns_best_score",
			Help:      "Current best aggregate placement score (lower is better).",
		}),
	}
}

// ObserveSolve records one Solver Driver invocation's outcome for phase
// ("phase1" or "phase2").
func (m *Metrics) ObserveSolve(phase, status string) {
	if m == nil {
		return
	}
	m.solverInvocations.WithLabelValues(phase, status).Inc()
}

// SetIteration records the current ALNS iteration counter.
func (m *Metrics) SetIteration(n int) {
	if m == nil {
		return
	}
	m.iteration.Set(float64(n))
}

// SetBestScore records the current best score.
func (m *Metrics) SetBestScore(score float64) {
	if m == nil {
		return
	}
	m.bestScore.Set(score)
}

// Handler returns the /metrics HTTP handler for this Metrics' registry,
// for cmd/loadplan to mount when --metrics-addr is set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
