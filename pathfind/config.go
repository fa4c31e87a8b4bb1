package pathfind

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/evomaze/genetic"
	"github.com/lixenwraith/evomaze/parameter"
)

// Configuration errors, returned wrapped by Config.Validate and New
var (
	ErrPopulationSize = errors.New("pathfind: population size must be at least 2")
	ErrPathLength     = errors.New("pathfind: path length must be positive")
	ErrMutationRate   = errors.New("pathfind: mutation rate must be within [0,1]")
	ErrGenerations    = errors.New("pathfind: generations must be positive")
	ErrParallelism    = errors.New("pathfind: parallelism must not be negative")
	ErrNilGrid        = errors.New("pathfind: grid is nil")

	// ErrRunning is returned when Run is called on a solver that is already running
	ErrRunning = errors.New("pathfind: solver is already running")
	// ErrCancelled wraps the context error when a run stops before terminating
	ErrCancelled = errors.New("pathfind: run cancelled")
)

// Config controls a single evolutionary run
type Config struct {
	PopulationSize int
	PathLength     int
	MutationRate   float64
	Generations    int
	// TournamentSize defaults to parameter.GATournamentSize when zero
	TournamentSize int
	// Parallelism > 1 evaluates each generation concurrently; results are identical
	Parallelism int
	// Seed 0 selects the fixed default stream
	Seed uint64
}

// DefaultConfig returns the compile-time defaults from the parameter package
func DefaultConfig() Config {
	return Config{
		PopulationSize: parameter.GAPopulationSize,
		PathLength:     parameter.GAPathLength,
		MutationRate:   parameter.GAMutationRate,
		Generations:    parameter.GAGenerations,
		TournamentSize: parameter.GATournamentSize,
		Parallelism:    parameter.GAParallelism,
	}
}

// Validate checks every field and returns the first violation
func (c Config) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population size %d: %w", c.PopulationSize, ErrPopulationSize)
	}
	if c.PathLength <= 0 {
		return fmt.Errorf("path length %d: %w", c.PathLength, ErrPathLength)
	}
	if math.IsNaN(c.MutationRate) || c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate %v: %w", c.MutationRate, ErrMutationRate)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations %d: %w", c.Generations, ErrGenerations)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism %d: %w", c.Parallelism, ErrParallelism)
	}
	return nil
}

func (c Config) engineConfig() genetic.EngineConfig {
	return genetic.EngineConfig{
		PoolSize:         c.PopulationSize,
		EliteCount:       parameter.GAEliteCount,
		PerturbationRate: c.MutationRate,
		MaxIterations:    c.Generations,
		Parallelism:      c.Parallelism,
		Seed:             c.Seed,
	}
}

func (c Config) tournamentSize() int {
	if c.TournamentSize <= 0 {
		return parameter.GATournamentSize
	}
	return c.TournamentSize
}
