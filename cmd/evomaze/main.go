package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evomaze/archive"
	"github.com/lixenwraith/evomaze/audio"
	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/parameter"
	"github.com/lixenwraith/evomaze/pathfind"
	"github.com/lixenwraith/evomaze/scenario"
	"github.com/lixenwraith/evomaze/server"
	"github.com/lixenwraith/evomaze/telemetry"
	"github.com/lixenwraith/evomaze/view"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "evomaze: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseOptions(args, os.Stderr)
	if err != nil {
		return err
	}

	var fallback io.Writer = io.Discard
	if opts.headless {
		fallback = os.Stderr
	}
	if logFile := setupLogging(opts.debug, fallback); logFile != nil {
		defer logFile.Close()
	}

	sc, err := opts.loadScenario()
	if err != nil {
		return err
	}
	// TOML integers are signed 64-bit
	if sc.Evolution.Seed == 0 {
		sc.Evolution.Seed = rand.Uint64() >> 1
	}

	grid, err := sc.Grid()
	if err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	solver, err := pathfind.New(grid, sc.Config())
	if err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	logger := slog.Default().With("run_id", solver.RunID())
	logStart(logger, sc, grid)

	var runs *archive.Manager
	if opts.archive != "" {
		runs = archive.NewManager(opts.archive)
	}

	metrics := telemetry.New()
	solver.OnGeneration(metrics.Observe)
	solver.OnGeneration(func(snap pathfind.Snapshot) {
		if snap.Generation%parameter.ProgressLogEvery == 0 {
			logger.Debug("generation evaluated",
				"generation", snap.Generation,
				"best", snap.BestFitness,
				"average", snap.AverageFitness,
				"worst", snap.WorstFitness)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.httpAddr != "" {
		srv, err := startServer(ctx, opts.httpAddr, solver, metrics, logger)
		if err != nil {
			return err
		}
		defer shutdownServer(srv, logger)
	}

	var res pathfind.Result
	var runErr error
	if opts.headless {
		res, runErr = runHeadless(ctx, solver)
	} else {
		res, runErr = runInteractive(ctx, solver, logger)
	}

	cancelled := errors.Is(runErr, pathfind.ErrCancelled)
	if runErr != nil && !cancelled {
		return runErr
	}
	metrics.RunFinished(res, cancelled)
	logResult(logger, res, cancelled)

	if runs != nil {
		rec := archive.FromRun(sc.Name, solver.Config(), res, cancelled)
		if err := runs.Save(rec); err != nil {
			logger.Error("archive run", "error", err)
		} else {
			logger.Info("run archived", "path", runs.FilePath(rec.RunID))
		}
	}

	if opts.headless {
		printResult(os.Stdout, grid, res, cancelled)
	}

	if opts.audio && !cancelled {
		player, err := audio.NewPlayer(opts.volume)
		if err != nil {
			logger.Warn("audio unavailable", "error", err)
		}
		player.PlayResult(res)
		player.Close()
	}

	return nil
}

func logStart(logger *slog.Logger, sc *scenario.Scenario, grid *maze.Grid) {
	a := maze.Analyze(grid)
	cfg := sc.Config()
	logger.Info("run starting",
		"scenario", sc.Name,
		"rows", grid.Rows(),
		"cols", grid.Cols(),
		"walls", grid.WallCount(),
		"population", cfg.PopulationSize,
		"path_length", cfg.PathLength,
		"mutation_rate", cfg.MutationRate,
		"generations", cfg.Generations,
		"parallelism", cfg.Parallelism,
		"seed", cfg.Seed,
		"shortest_path", a.ShortestPath)

	switch {
	case !a.Reachable:
		logger.Warn("goal is unreachable from start; the run will exhaust its budget")
	case a.ShortestPath > cfg.PathLength:
		logger.Warn("path length is shorter than the shortest route", "shortest_path", a.ShortestPath, "path_length", cfg.PathLength)
	}
}

func logResult(logger *slog.Logger, res pathfind.Result, cancelled bool) {
	logger.Info("run finished",
		"found", res.Found,
		"cancelled", cancelled,
		"generation_found", res.GenerationFound,
		"generations", res.Generations,
		"best_fitness", res.BestFitness,
		"steps", res.Steps())
}

func startServer(ctx context.Context, addr string, solver *pathfind.Solver, metrics *telemetry.Metrics, logger *slog.Logger) (*server.Server, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("status server: %w", err)
	}

	srv := server.New(solver, metrics.Handler())
	go func() {
		if err := srv.Serve(ln); err != nil {
			logger.Error("status server stopped", "error", err)
		}
	}()
	logger.Info("status server listening", "addr", ln.Addr().String())
	return srv, nil
}

func shutdownServer(srv *server.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), parameter.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("status server shutdown", "error", err)
	}
}

func runHeadless(ctx context.Context, solver *pathfind.Solver) (pathfind.Result, error) {
	return solver.Run(ctx)
}

// runInteractive runs the solver in the background while the terminal view owns the
// foreground; quitting the view cancels the solver at its next generation boundary
func runInteractive(ctx context.Context, solver *pathfind.Solver, logger *slog.Logger) (res pathfind.Result, err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return res, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return res, fmt.Errorf("terminal: %w", err)
	}

	// Restore the terminal before reporting any crash
	crash := func(r any) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\n\x1b[31mEVOMAZE CRASHED: %v\x1b[0m\n", r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
		os.Exit(1)
	}
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		res pathfind.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(r)
			}
		}()
		res, err := solver.Run(runCtx)
		done <- outcome{res, err}
	}()

	if err := view.New(screen, solver).Run(ctx); err != nil {
		logger.Error("view stopped", "error", err)
	}
	cancel()
	screen.Fini()

	out := <-done
	return out.res, out.err
}

func printResult(w io.Writer, grid *maze.Grid, res pathfind.Result, cancelled bool) {
	switch {
	case res.Found:
		fmt.Fprintf(w, "goal reached in generation %d with %d moves\n", res.GenerationFound, res.Steps())
	case cancelled:
		fmt.Fprintf(w, "cancelled after %d generations, best fitness %.4f\n", res.Generations, res.BestFitness)
	default:
		fmt.Fprintf(w, "no path after %d generations, best fitness %.4f\n", res.Generations, res.BestFitness)
	}
	fmt.Fprint(w, maze.Render(grid, res.BestPath))

	if res.Found {
		moves := make([]string, len(res.WinningMoves[:res.Steps()]))
		for i, m := range res.WinningMoves[:res.Steps()] {
			moves[i] = m.String()
		}
		fmt.Fprintf(w, "moves: %v\n", moves)
	}
}
