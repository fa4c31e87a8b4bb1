// Package genetic provides a generic generational genetic algorithm.
//
// The engine knows nothing about the problem being solved: callers supply an
// initializer, an evaluator and the three operators (selection, recombination,
// perturbation). All randomness flows through one *rand.Rand owned by the engine,
// so a seeded run is reproducible regardless of evaluation parallelism.
package genetic

import (
	"math/rand/v2"
)

// --- Concrete Operator Implementations ---

// TournamentSelector implements tournament selection with replacement
// Randomly samples small groups and selects the best from each group
type TournamentSelector[S Solution, F Numeric] struct {
	// TournamentSize is the number of candidates to compete in each tournament
	TournamentSize int
}

// Select implements the Selector interface using tournament selection
// Ties go to the candidate drawn first
func (ts *TournamentSelector[S, F]) Select(pool *Pool[S, F], size int, rng *rand.Rand) []Candidate[S, F] {
	selected := make([]Candidate[S, F], 0, size)
	poolSize := len(pool.Members)

	tournSize := ts.TournamentSize
	if tournSize < 1 {
		tournSize = 2
	}

	for len(selected) < size {
		winner := pool.Members[rng.IntN(poolSize)]
		for i := 1; i < tournSize; i++ {
			contender := pool.Members[rng.IntN(poolSize)]
			if contender.Score > winner.Score {
				winner = contender
			}
		}
		selected = append(selected, winner)
	}

	return selected
}

// SinglePointCombiner performs single-point crossover producing one child
// The child takes the first parent's genes before the cut and the second's from it on
type SinglePointCombiner[S ~[]T, T any, F Numeric] struct{}

// Combine draws a cut uniformly from [0, L) where L is the shorter parent length
func (sc *SinglePointCombiner[S, T, F]) Combine(parents []Candidate[S, F], rng *rand.Rand) []S {
	switch len(parents) {
	case 0:
		return []S{}
	case 1:
		return []S{append(S(nil), parents[0].Data...)}
	}

	a, b := parents[0].Data, parents[1].Data
	length := min(len(a), len(b))
	if length == 0 {
		return []S{make(S, 0)}
	}

	return []S{sc.CombineAt(a, b, rng.IntN(length))}
}

// CombineAt builds the child for a fixed cut point: a[:cut] followed by b[cut:L]
// The result never aliases either parent
func (sc *SinglePointCombiner[S, T, F]) CombineAt(a, b S, cut int) S {
	length := min(len(a), len(b))
	cut = min(max(cut, 0), length)

	child := make(S, length)
	copy(child[:cut], a[:cut])
	copy(child[cut:], b[cut:length])
	return child
}

// ResetPerturbator redraws genes uniformly from a fixed alphabet
type ResetPerturbator[S ~[]T, T any] struct {
	Alphabet []T
}

// Perturb replaces each gene independently with probability rate
func (rp *ResetPerturbator[S, T]) Perturb(solution *S, rate float64, rng *rand.Rand) {
	if solution == nil || len(rp.Alphabet) == 0 {
		return
	}

	for i := range *solution {
		if rng.Float64() < rate {
			(*solution)[i] = rp.Alphabet[rng.IntN(len(rp.Alphabet))]
		}
	}
}

// RandomSequence returns an initializer drawing length genes uniformly from alphabet
func RandomSequence[T any](alphabet []T, length int) InitializerFunc[[]T] {
	return func(rng *rand.Rand) []T {
		seq := make([]T, length)
		for i := range seq {
			seq[i] = alphabet[rng.IntN(len(alphabet))]
		}
		return seq
	}
}
