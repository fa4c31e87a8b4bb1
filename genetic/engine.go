package genetic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync/atomic"

	conc "github.com/sourcegraph/conc/pool"

	"github.com/lixenwraith/evomaze/parameter"
)

// Sentinel errors for engine construction.
var (
	// ErrInvalidConfig indicates an EngineConfig value outside its legal range.
	ErrInvalidConfig = errors.New("genetic: invalid engine config")
	// ErrMissingOperator indicates a nil evaluator, initializer or operator.
	ErrMissingOperator = errors.New("genetic: missing operator")
)

// --- Algorithm Engine ---

// Engine is the main genetic algorithm execution engine
// It coordinates all operators and manages the evolution process
type Engine[S Solution, F Numeric] struct {
	// Core operators
	evaluator   EvaluatorFunc[S, F]
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]
	terminator  TerminationFunc[S, F]
	observer    ObserverFunc[S, F]

	// Configuration
	config EngineConfig

	// State, owned by the goroutine calling Run
	rng         *rand.Rand
	currentPool *Pool[S, F]
	history     []PoolStats[F]

	// Last evaluated pool, readable from any goroutine
	published atomic.Pointer[Pool[S, F]]
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// EliteCount is the number of best solutions preserved unchanged
	EliteCount int
	// PerturbationRate is passed to the perturbator for every offspring (0-1)
	PerturbationRate float64
	// MaxIterations is the maximum number of generations to evaluate
	MaxIterations int
	// Parallelism controls the number of concurrent evaluations (<=1 = sequential)
	Parallelism int
	// Seed for random number generation (0 = parameter.GADefaultSeed)
	Seed uint64
}

// DefaultConfig returns a reasonable default configuration
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:         parameter.GAPopulationSize,
		EliteCount:       parameter.GAEliteCount,
		PerturbationRate: parameter.GAMutationRate,
		MaxIterations:    parameter.GAGenerations,
		Parallelism:      parameter.GAParallelism,
		Seed:             0,
	}
}

// Validate checks the configuration ranges
func (c EngineConfig) Validate() error {
	switch {
	case c.PoolSize < 2:
		return fmt.Errorf("%w: pool size %d < 2", ErrInvalidConfig, c.PoolSize)
	case c.EliteCount < 0 || c.EliteCount >= c.PoolSize:
		return fmt.Errorf("%w: elite count %d not in [0,%d)", ErrInvalidConfig, c.EliteCount, c.PoolSize)
	case math.IsNaN(c.PerturbationRate) || c.PerturbationRate < 0 || c.PerturbationRate > 1:
		return fmt.Errorf("%w: perturbation rate %v not in [0,1]", ErrInvalidConfig, c.PerturbationRate)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations %d < 1", ErrInvalidConfig, c.MaxIterations)
	case c.Parallelism < 0:
		return fmt.Errorf("%w: parallelism %d < 0", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	evaluator EvaluatorFunc[S, F],
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) (*Engine[S, F], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if evaluator == nil || initializer == nil || selector == nil || combiner == nil || perturbator == nil {
		return nil, ErrMissingOperator
	}

	return &Engine[S, F]{
		evaluator:   evaluator,
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         NewRand(config.Seed),
		history:     make([]PoolStats[F], 0, min(config.MaxIterations, 1024)),
	}, nil
}

// SetTerminator sets a custom termination condition
func (e *Engine[S, F]) SetTerminator(terminator TerminationFunc[S, F]) {
	e.terminator = terminator
}

// SetObserver registers a callback invoked after each generation is evaluated
func (e *Engine[S, F]) SetObserver(observer ObserverFunc[S, F]) {
	e.observer = observer
}

// Run executes the genetic algorithm until the terminator is satisfied or
// MaxIterations generations have been evaluated. The context is checked only
// between generations; on cancellation the last evaluated pool is returned with ctx.Err().
// Run must not be called concurrently or more than once per engine.
func (e *Engine[S, F]) Run(ctx context.Context) (*Pool[S, F], error) {
	e.initializePool()

	for {
		e.evaluatePool()

		pool := e.currentPool
		e.history = append(e.history, pool.Stats)
		e.published.Store(pool)

		if e.observer != nil {
			e.observer(pool)
		}

		if e.terminator != nil && e.terminator(pool, pool.Generation) {
			return pool, nil
		}
		if pool.Generation >= e.config.MaxIterations-1 {
			return pool, nil
		}

		select {
		case <-ctx.Done():
			return pool, ctx.Err()
		default:
		}

		e.evolveGeneration()
	}
}

// initializePool creates the unevaluated generation zero
func (e *Engine[S, F]) initializePool() {
	candidates := make([]Candidate[S, F], e.config.PoolSize)
	for i := range candidates {
		candidates[i] = Candidate[S, F]{Data: e.initializer(e.rng)}
	}

	e.currentPool = &Pool[S, F]{
		Members:    candidates,
		Generation: 0,
	}
}

// evaluatePool scores every member, sorts best first and records stats
// Each worker writes only its own slot, so no locking is needed
func (e *Engine[S, F]) evaluatePool() {
	members := e.currentPool.Members

	if e.config.Parallelism <= 1 {
		for i := range members {
			members[i].Score = e.evaluator(members[i].Data)
		}
	} else {
		p := conc.New().WithMaxGoroutines(e.config.Parallelism)
		for i := range members {
			p.Go(func() {
				members[i].Score = e.evaluator(members[i].Data)
			})
		}
		p.Wait()
	}

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Score > members[j].Score
	})

	e.currentPool.Stats = e.calculateStats(members)
}

// evolveGeneration replaces the current pool with elites plus offspring
func (e *Engine[S, F]) evolveGeneration() {
	nextGen := make([]Candidate[S, F], 0, e.config.PoolSize)

	// Preserve elite solutions; the pool is sorted so they lead
	for _, elite := range e.currentPool.Members[:e.config.EliteCount] {
		nextGen = append(nextGen, Candidate[S, F]{Data: elite.Data, Score: elite.Score})
	}

	for len(nextGen) < e.config.PoolSize {
		parents := e.selector.Select(e.currentPool, 2, e.rng)
		offspring := e.combiner.Combine(parents, e.rng)

		for i := range offspring {
			e.perturbator.Perturb(&offspring[i], e.config.PerturbationRate, e.rng)
			nextGen = append(nextGen, Candidate[S, F]{Data: offspring[i]})
			if len(nextGen) >= e.config.PoolSize {
				break
			}
		}
	}

	e.currentPool = &Pool[S, F]{
		Members:    nextGen,
		Generation: e.currentPool.Generation + 1,
	}
}

// calculateStats computes statistical measures for a sorted candidate slice
func (e *Engine[S, F]) calculateStats(candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{Generation: e.currentPool.Generation}
	}

	stats := PoolStats[F]{
		Generation: e.currentPool.Generation,
		BestScore:  candidates[0].Score,
		WorstScore: candidates[len(candidates)-1].Score,
	}

	var total float64
	for _, c := range candidates {
		total += float64(c.Score)
	}
	stats.AverageScore = total / float64(len(candidates))

	return stats
}

// History returns per-generation statistics recorded so far
// Only valid after Run has returned
func (e *Engine[S, F]) History() []PoolStats[F] {
	return e.history
}

// Snapshot returns the most recently evaluated pool, or nil before the first evaluation
// Safe to call from any goroutine while Run is in progress
func (e *Engine[S, F]) Snapshot() *Pool[S, F] {
	return e.published.Load()
}

// Best returns the best candidate of the most recently evaluated pool
func (e *Engine[S, F]) Best() (Candidate[S, F], bool) {
	pool := e.published.Load()
	if pool == nil || len(pool.Members) == 0 {
		return Candidate[S, F]{}, false
	}
	return pool.Best(), true
}
