// Package telemetry exports solver progress as Prometheus metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/evomaze/pathfind"
)

const namespace = "evomaze"

// Run outcomes used as the "outcome" label of the runs counter
const (
	OutcomeFound     = "found"
	OutcomeExhausted = "exhausted"
	OutcomeCancelled = "cancelled"
)

// Metrics owns a private registry so several instances never collide
type Metrics struct {
	registry *prometheus.Registry

	generation     *prometheus.GaugeVec
	bestFitness    *prometheus.GaugeVec
	averageFitness *prometheus.GaugeVec
	worstFitness   *prometheus.GaugeVec
	bestSteps      *prometheus.GaugeVec
	runs           *prometheus.CounterVec
}

// New creates and registers all collectors
func New() *Metrics {
	runLabel := []string{"run_id"}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "generation",
			Help: "Index of the last evaluated generation.",
		}, runLabel),
		bestFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "best_fitness",
			Help: "Best fitness in the last evaluated generation.",
		}, runLabel),
		averageFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "average_fitness",
			Help: "Mean fitness in the last evaluated generation.",
		}, runLabel),
		worstFitness: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "worst_fitness",
			Help: "Worst fitness in the last evaluated generation.",
		}, runLabel),
		bestSteps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "best_path_steps",
			Help: "Moves walked by the best chromosome before stopping.",
		}, runLabel),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total",
			Help: "Finished runs by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.generation,
		m.bestFitness,
		m.averageFitness,
		m.worstFitness,
		m.bestSteps,
		m.runs,
	)
	return m
}

// Observe records one generation snapshot; suitable as a Solver.OnGeneration hook
func (m *Metrics) Observe(snap pathfind.Snapshot) {
	labels := prometheus.Labels{"run_id": snap.RunID}
	m.generation.With(labels).Set(float64(snap.Generation))
	m.bestFitness.With(labels).Set(snap.BestFitness)
	m.averageFitness.With(labels).Set(snap.AverageFitness)
	m.worstFitness.With(labels).Set(snap.WorstFitness)
	m.bestSteps.With(labels).Set(float64(max(len(snap.BestPath)-1, 0)))
}

// RunFinished counts a terminated run
func (m *Metrics) RunFinished(res pathfind.Result, cancelled bool) {
	outcome := OutcomeExhausted
	switch {
	case cancelled:
		outcome = OutcomeCancelled
	case res.Found:
		outcome = OutcomeFound
	}
	m.runs.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and embedding
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
