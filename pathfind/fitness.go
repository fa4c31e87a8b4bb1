package pathfind

import (
	"github.com/lixenwraith/evomaze/genetic"
	"github.com/lixenwraith/evomaze/genetic/fitness"
	"github.com/lixenwraith/evomaze/maze"
)

var distanceScore = fitness.NormalizeInverse(1)

// Evaluate walks genes from the grid start and returns the fitness with the visited path.
// Walking stops on the first step that lands on the goal, which scores fitness.Perfect.
func Evaluate(g *maze.Grid, genes []maze.Move) (float64, []maze.Cell) {
	cur := g.Start()
	path := make([]maze.Cell, 1, len(genes)+1)
	path[0] = cur

	for _, m := range genes {
		cur = g.ApplyMove(cur, m)
		path = append(path, cur)
		if g.IsGoal(cur) {
			return fitness.Perfect, path
		}
	}

	return distanceScore(float64(maze.Manhattan(cur, g.Goal()))), path
}

// Score adapts Evaluate to the engine evaluator signature
// The grid is immutable, so the returned func is safe for concurrent use
func Score(g *maze.Grid) genetic.EvaluatorFunc[[]maze.Move, float64] {
	return func(genes []maze.Move) float64 {
		f, _ := Evaluate(g, genes)
		return f
	}
}
