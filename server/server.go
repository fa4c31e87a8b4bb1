// Package server exposes a running solver over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/parameter"
	"github.com/lixenwraith/evomaze/pathfind"
)

// Source is the read-only solver surface served over HTTP
type Source interface {
	RunID() string
	Grid() *maze.Grid
	Snapshot() (pathfind.Snapshot, bool)
	Result() (pathfind.Result, bool)
	Population() []pathfind.Chromosome
}

// Server serves progress endpoints for one solver
type Server struct {
	source  Source
	metrics http.Handler
	engine  *gin.Engine
	http    *http.Server
}

// New builds the router; metrics may be nil to omit /metrics
func New(source Source, metrics http.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{source: source, metrics: metrics}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.registerRoutes(s.engine)

	s.http = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: parameter.ServerReadHeaderTimeout,
	}
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/v1")
	{
		v1.GET("/snapshot", s.snapshot)
		v1.GET("/result", s.result)
		v1.GET("/population", s.population)
		v1.GET("/maze", s.maze)
	}

	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}
}

// Handler returns the router for embedding or tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve accepts connections on ln until Shutdown
func (s *Server) Serve(ln net.Listener) error {
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops Serve; a later Serve call returns immediately
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// health reports liveness and run state
func (s *Server) health(ctx *gin.Context) {
	_, done := s.source.Result()
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "run_id": s.source.RunID(), "finished": done})
}

// snapshot returns the latest generation snapshot
func (s *Server) snapshot(ctx *gin.Context) {
	snap, ok := s.source.Snapshot()
	if !ok {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "no generation evaluated yet"})
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// result returns the final outcome once the run has terminated
func (s *Server) result(ctx *gin.Context) {
	res, ok := s.source.Result()
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "run still in progress"})
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// population returns the top chromosomes of the latest generation
func (s *Server) population(ctx *gin.Context) {
	top := 10
	if v := ctx.Query("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "top must be a positive integer"})
			return
		}
		top = n
	}

	pop := s.source.Population()
	if pop == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "no generation evaluated yet"})
		return
	}
	ctx.JSON(http.StatusOK, pop[:min(top, len(pop))])
}

// maze renders the grid with the current best path as plain text
func (s *Server) maze(ctx *gin.Context) {
	var route []maze.Cell
	if snap, ok := s.source.Snapshot(); ok {
		route = snap.BestPath
	}
	ctx.String(http.StatusOK, maze.Render(s.source.Grid(), route))
}
