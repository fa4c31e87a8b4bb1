// Package pathfind binds the generic genetic engine to maze navigation.
//
// A chromosome is a fixed-length sequence of moves. Its fitness is derived from
// walking the moves from the maze start: reaching the goal scores 1, otherwise
// the score is 1/(d+1) for the Manhattan distance d left to the goal.
package pathfind

import (
	"slices"

	"github.com/lixenwraith/evomaze/maze"
)

// Chromosome is one evaluated candidate path
type Chromosome struct {
	Genes   []maze.Move `json:"genes"`
	Fitness float64     `json:"fitness"`
	// Path holds the visited cells starting at the maze start, truncated at the goal
	Path []maze.Cell `json:"path"`
}

// Clone returns a deep copy
func (c Chromosome) Clone() Chromosome {
	return Chromosome{
		Genes:   slices.Clone(c.Genes),
		Fitness: c.Fitness,
		Path:    slices.Clone(c.Path),
	}
}

// ReachedGoal reports whether the chromosome scored a perfect fitness
func (c Chromosome) ReachedGoal() bool {
	return c.Fitness >= 1.0
}

// NewChromosome evaluates genes against g and returns the realized chromosome
func NewChromosome(g *maze.Grid, genes []maze.Move) Chromosome {
	f, path := Evaluate(g, genes)
	return Chromosome{Genes: slices.Clone(genes), Fitness: f, Path: path}
}
