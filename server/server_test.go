package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/pathfind"
	"github.com/lixenwraith/evomaze/telemetry"
)

func newSolver(t *testing.T) *pathfind.Solver {
	t.Helper()
	g, err := maze.NewGrid(3, 3, nil, maze.Cell{X: 0, Y: 0}, maze.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	s, err := pathfind.New(g, pathfind.Config{PopulationSize: 20, PathLength: 8, MutationRate: 0.05, Generations: 100, Seed: 1})
	require.NoError(t, err)
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_BeforeRun(t *testing.T) {
	solver := newSolver(t)
	h := New(solver, nil).Handler()

	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, solver.RunID(), health["run_id"])
	assert.Equal(t, false, health["finished"])

	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/v1/snapshot").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/v1/result").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/v1/population").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/metrics").Code)

	rec = get(t, h, "/v1/maze")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), "\n"))
}

func TestServer_AfterRun(t *testing.T) {
	solver := newSolver(t)
	metrics := telemetry.New()
	solver.OnGeneration(metrics.Observe)

	want, err := solver.Run(context.Background())
	require.NoError(t, err)
	h := New(solver, metrics.Handler()).Handler()

	rec := get(t, h, "/v1/result")
	require.Equal(t, http.StatusOK, rec.Code)
	var res pathfind.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, want, res)

	rec = get(t, h, "/v1/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)
	var snap pathfind.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, want.BestPath, snap.BestPath)
	assert.Contains(t, rec.Body.String(), `"best_genes":["`)

	rec = get(t, h, "/v1/population?top=3")
	require.Equal(t, http.StatusOK, rec.Code)
	var pop []pathfind.Chromosome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pop))
	assert.Len(t, pop, 3)

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/v1/population?top=zero").Code)

	rec = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "evomaze_best_fitness")

	rec = get(t, h, "/v1/maze")
	assert.Contains(t, rec.Body.String(), string(maze.GlyphStart))
}

func TestServer_ServeShutdown(t *testing.T) {
	srv := New(newSolver(t), nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"finished":false`)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-served)
}
