// Package metrics provides Prometheus metrics for the roster solver.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the solver.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Solve lifecycle
	solvesStarted    prometheus.Counter
	solvesFeasible   prometheus.Counter
	solvesInfeasible prometheus.Counter
	solvesTruncated  prometheus.Counter
	solveDuration    prometheus.Histogram

	// Problem shape
	variablesCompiled   prometheus.Histogram
	structuralConflicts prometheus.Counter

	// Search behaviour
	nodesExplored  prometheus.Counter
	backtracks     prometheus.Counter
	branchesPruned prometheus.Counter
	forcedBindings prometheus.Counter
	bestCost       prometheus.Gauge
	activeWorkers  prometheus.Gauge

	// Validation
	validationErrors *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "roster",
		subsystem:        "solver",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.solvesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solves_started_total",
		Help:      "Total number of solve runs started",
	})

	m.solvesFeasible = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solves_feasible_total",
		Help:      "Total number of solve runs that produced a feasible schedule",
	})

	m.solvesInfeasible = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solves_infeasible_total",
		Help:      "Total number of solve runs that ended infeasible",
	})

	m.solvesTruncated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solves_truncated_total",
		Help:      "Total number of solve runs cut short by budget or cancellation",
	})

	m.solveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "solve_duration_seconds",
		Help:      "Wall-clock duration of solve runs",
		Buckets:   m.histogramBuckets,
	})

	m.variablesCompiled = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "variables_compiled",
		Help:      "Decision variables materialized per solve run",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000},
	})

	m.structuralConflicts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "structural_conflicts_total",
		Help:      "Constraints found unsatisfiable before search started",
	})

	m.nodesExplored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_nodes_total",
		Help:      "Total search-tree nodes explored",
	})

	m.backtracks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_backtracks_total",
		Help:      "Total backtracks caused by propagated contradictions",
	})

	m.branchesPruned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_branches_pruned_total",
		Help:      "Total branches pruned by the best-cost bound",
	})

	m.forcedBindings = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "propagation_forced_bindings_total",
		Help:      "Variable bindings forced by constraint propagation",
	})

	m.bestCost = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "best_cost",
		Help:      "Objective cost of the best solution found so far",
	})

	m.activeWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_search_workers",
		Help:      "Number of search workers currently exploring branches",
	})

	m.validationErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_errors_total",
		Help:      "Domain model validation failures by entity",
	}, []string{"entity"})
}

// RecordSolveStarted increments the solves started counter.
func RecordSolveStarted() {
	globalManager.solvesStarted.Inc()
}

// RecordSolveCompleted records the outcome of a finished solve run.
func RecordSolveCompleted(feasible, optimal bool, durationSeconds float64) {
	if feasible {
		globalManager.solvesFeasible.Inc()
	} else {
		globalManager.solvesInfeasible.Inc()
	}
	if !optimal {
		globalManager.solvesTruncated.Inc()
	}
	globalManager.solveDuration.Observe(durationSeconds)
}

// ObserveVariablesCompiled records the variable count of a compiled problem.
func ObserveVariablesCompiled(count int) {
	globalManager.variablesCompiled.Observe(float64(count))
}

// RecordStructuralConflict increments the pre-search conflict counter.
func RecordStructuralConflict() {
	globalManager.structuralConflicts.Inc()
}

// RecordNodesExplored adds to the explored node counter.
func RecordNodesExplored(n int64) {
	globalManager.nodesExplored.Add(float64(n))
}

// RecordBacktracks adds to the backtrack counter.
func RecordBacktracks(n int64) {
	globalManager.backtracks.Add(float64(n))
}

// RecordBranchesPruned adds to the pruned branch counter.
func RecordBranchesPruned(n int64) {
	globalManager.branchesPruned.Add(float64(n))
}

// RecordForcedBindings adds to the forced binding counter.
func RecordForcedBindings(n int64) {
	globalManager.forcedBindings.Add(float64(n))
}

// UpdateBestCost sets the best-cost gauge.
func UpdateBestCost(cost float64) {
	globalManager.bestCost.Set(cost)
}

// UpdateActiveWorkers sets the active search worker gauge.
func UpdateActiveWorkers(count int) {
	globalManager.activeWorkers.Set(float64(count))
}

// RecordValidationError counts a validation failure for an entity kind.
func RecordValidationError(entity string) {
	globalManager.validationErrors.WithLabelValues(entity).Inc()
}

// Handler returns an HTTP handler serving the custom registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
