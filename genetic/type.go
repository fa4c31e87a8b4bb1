package genetic

import (
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution representation
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
}

// Pool represents the population of one generation
// A pool handed out by the engine is never modified afterwards
type Pool[S Solution, F Numeric] struct {
	// Members is sorted by Score, best first, once the pool is evaluated
	Members []Candidate[S, F]
	// Generation is the zero-based iteration this pool represents
	Generation int
	// Stats holds statistical information about this pool
	Stats PoolStats[F]
}

// Best returns the highest scoring member of an evaluated pool
func (p *Pool[S, F]) Best() Candidate[S, F] {
	return p.Members[0]
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	Generation   int
	BestScore    F
	WorstScore   F
	AverageScore float64
}

// --- Function Types for Flexibility ---

// EvaluatorFunc calculates the quality score for a solution
// It must be safe for concurrent use when EngineConfig.Parallelism > 1
type EvaluatorFunc[S Solution, F Numeric] func(solution S) F

// InitializerFunc creates an initial solution
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// TerminationFunc reports whether an evaluated pool satisfies the goal
type TerminationFunc[S Solution, F Numeric] func(pool *Pool[S, F], iteration int) bool

// ObserverFunc receives every evaluated pool on the engine goroutine
type ObserverFunc[S Solution, F Numeric] func(pool *Pool[S, F])

// --- Core Operators as Interfaces ---

// Selector defines the selection operator for choosing candidates for reproduction
type Selector[S Solution, F Numeric] interface {
	// Select chooses size candidates from the pool for reproduction
	Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F]
}

// Combiner defines the recombination operator for creating new solutions
type Combiner[S Solution, F Numeric] interface {
	// Combine creates offspring from parent solutions without modifying them
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in-place
	// The rate parameter controls the intensity of perturbation (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
