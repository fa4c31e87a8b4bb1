package telemetry

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/pathfind"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()
	m.Observe(pathfind.Snapshot{
		RunID:          "r1",
		Generation:     12,
		BestFitness:    0.5,
		AverageFitness: 0.25,
		WorstFitness:   0.1,
		BestPath:       []maze.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
	})

	assert.Equal(t, 12.0, testutil.ToFloat64(m.generation.WithLabelValues("r1")))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.bestFitness.WithLabelValues("r1")))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.averageFitness.WithLabelValues("r1")))
	assert.Equal(t, 0.1, testutil.ToFloat64(m.worstFitness.WithLabelValues("r1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.bestSteps.WithLabelValues("r1")))
}

func TestMetrics_RunFinished(t *testing.T) {
	m := New()
	m.RunFinished(pathfind.Result{Found: true}, false)
	m.RunFinished(pathfind.Result{}, false)
	m.RunFinished(pathfind.Result{}, false)
	m.RunFinished(pathfind.Result{Found: true}, true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeExhausted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeCancelled)))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Observe(pathfind.Snapshot{RunID: "abc", Generation: 3, BestFitness: 1})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `evomaze_generation{run_id="abc"} 3`)
	assert.Contains(t, string(body), `evomaze_best_fitness{run_id="abc"} 1`)
}
