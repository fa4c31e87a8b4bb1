package pathfind

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/lixenwraith/evomaze/genetic"
	"github.com/lixenwraith/evomaze/genetic/fitness"
	"github.com/lixenwraith/evomaze/maze"
)

type movePool = genetic.Pool[[]maze.Move, float64]

// Solver evolves move sequences through one maze
// Configuration and observers are fixed before Run; Snapshot and Population
// may be called from any goroutine while Run is in progress
type Solver struct {
	runID     string
	grid      *maze.Grid
	cfg       Config
	observers []func(Snapshot)

	snapshot atomic.Pointer[Snapshot]
	pool     atomic.Pointer[movePool]
	final    atomic.Pointer[Result]
	running  atomic.Bool
}

// New validates cfg against grid and returns an idle solver
func New(grid *maze.Grid, cfg Config) (*Solver, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Solver{
		runID: uuid.NewString(),
		grid:  grid,
		cfg:   cfg,
	}, nil
}

// RunID identifies this solver in logs and HTTP responses
func (s *Solver) RunID() string { return s.runID }

// Grid returns the maze being solved
func (s *Solver) Grid() *maze.Grid { return s.grid }

// Config returns the validated configuration
func (s *Solver) Config() Config { return s.cfg }

// OnGeneration registers fn to receive every published snapshot
// Observers run on the solver goroutine and must not block for long
func (s *Solver) OnGeneration(fn func(Snapshot)) {
	s.observers = append(s.observers, fn)
}

// Run evolves until a chromosome reaches the goal or the generation budget is spent.
// A cancelled ctx stops the run at the next generation boundary; the partial
// result is returned together with an error wrapping ErrCancelled and ctx.Err().
func (s *Solver) Run(ctx context.Context) (Result, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Result{}, ErrRunning
	}
	defer s.running.Store(false)

	engine, err := genetic.NewEngine[[]maze.Move, float64](
		Score(s.grid),
		genetic.RandomSequence(maze.Moves[:], s.cfg.PathLength),
		&genetic.TournamentSelector[[]maze.Move, float64]{TournamentSize: s.cfg.tournamentSize()},
		&genetic.SinglePointCombiner[[]maze.Move, maze.Move, float64]{},
		&genetic.ResetPerturbator[[]maze.Move, maze.Move]{Alphabet: maze.Moves[:]},
		s.cfg.engineConfig(),
	)
	if err != nil {
		return Result{}, err
	}

	engine.SetTerminator(func(pool *movePool, _ int) bool {
		return fitness.IsPerfect(pool.Best().Score)
	})
	engine.SetObserver(s.publish)

	pool, runErr := engine.Run(ctx)
	res := s.result(pool)
	s.final.Store(&res)
	if runErr != nil {
		return res, fmt.Errorf("%w: %w", ErrCancelled, runErr)
	}
	return res, nil
}

// publish stores the snapshot for pool, then notifies observers
func (s *Solver) publish(pool *movePool) {
	best := pool.Best()
	_, path := Evaluate(s.grid, best.Data)

	snap := &Snapshot{
		RunID:          s.runID,
		Generation:     pool.Generation,
		BestFitness:    best.Score,
		AverageFitness: pool.Stats.AverageScore,
		WorstFitness:   pool.Stats.WorstScore,
		BestPath:       path,
		BestGenes:      slices.Clone(best.Data),
	}

	s.pool.Store(pool)
	s.snapshot.Store(snap)

	for _, fn := range s.observers {
		fn(*snap)
	}
}

func (s *Solver) result(pool *movePool) Result {
	if pool == nil {
		return Result{RunID: s.runID, GenerationFound: -1}
	}

	best := NewChromosome(s.grid, pool.Best().Data)
	res := Result{
		RunID:           s.runID,
		GenerationFound: -1,
		BestFitness:     best.Fitness,
		BestPath:        best.Path,
		Generations:     pool.Generation + 1,
	}
	if best.ReachedGoal() {
		res.Found = true
		res.WinningMoves = best.Genes
		res.GenerationFound = pool.Generation
	}
	return res
}

// Snapshot returns the latest published snapshot
// ok is false until the first generation has been evaluated
func (s *Solver) Snapshot() (snap Snapshot, ok bool) {
	p := s.snapshot.Load()
	if p == nil {
		return Snapshot{}, false
	}
	return *p, true
}

// Population returns the latest evaluated population as realized chromosomes,
// best first
func (s *Solver) Population() []Chromosome {
	pool := s.pool.Load()
	if pool == nil {
		return nil
	}

	out := make([]Chromosome, len(pool.Members))
	for i, m := range pool.Members {
		out[i] = NewChromosome(s.grid, m.Data)
	}
	return out
}

// Result returns the outcome of the last completed Run
func (s *Solver) Result() (Result, bool) {
	p := s.final.Load()
	if p == nil {
		return Result{}, false
	}
	return *p, true
}
