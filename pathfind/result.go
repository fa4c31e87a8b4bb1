package pathfind

import (
	"github.com/lixenwraith/evomaze/maze"
)

// Snapshot is the immutable per-generation view published to observers
type Snapshot struct {
	RunID          string      `json:"run_id"`
	Generation     int         `json:"generation"`
	BestFitness    float64     `json:"best_fitness"`
	AverageFitness float64     `json:"average_fitness"`
	WorstFitness   float64     `json:"worst_fitness"`
	BestPath       []maze.Cell `json:"best_path"`
	BestGenes      []maze.Move `json:"best_genes"`
}

// Result describes how a run terminated
type Result struct {
	RunID string `json:"run_id"`
	Found bool   `json:"found"`
	// WinningMoves is nil unless Found
	WinningMoves []maze.Move `json:"winning_moves"`
	// GenerationFound is -1 unless Found
	GenerationFound int         `json:"generation_found"`
	BestFitness     float64     `json:"best_fitness"`
	BestPath        []maze.Cell `json:"best_path"`
	// Generations counts evaluated generations, including generation 0
	Generations int `json:"generations"`
}

// Steps returns the number of moves taken along the best path
func (r Result) Steps() int {
	if len(r.BestPath) == 0 {
		return 0
	}
	return len(r.BestPath) - 1
}
