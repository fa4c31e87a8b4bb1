package maze

import (
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Analysis summarizes the walkable topology of a Grid
type Analysis struct {
	// Reachable is true when the goal can be reached from the start
	Reachable bool
	// ShortestPath is the minimal number of moves from start to goal, -1 if unreachable
	ShortestPath int
	// OpenCells is the number of walkable cells
	OpenCells int
}

// Analyze converts the walkable cells into an undirected unit-cost graph and
// checks start-goal connectivity. Complexity: O(rows×cols).
func Analyze(g *Grid) Analysis {
	ug := g.toGraph()

	res := Analysis{
		ShortestPath: -1,
		OpenCells:    ug.Nodes().Len(),
	}

	from, to := ug.Node(g.nodeID(g.start)), ug.Node(g.nodeID(g.goal))
	if !topo.PathExistsIn(ug, from, to) {
		return res
	}

	res.Reachable = true
	route, _ := path.DijkstraFrom(from, ug).To(to.ID())
	res.ShortestPath = len(route) - 1
	return res
}

// nodeID maps a cell to a row-major node identifier
func (g *Grid) nodeID(c Cell) int64 {
	return int64(c.Y*g.cols + c.X)
}

func (g *Grid) toGraph() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()

	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			c := Cell{x, y}
			if g.IsWall(c) {
				continue
			}
			ug.AddNode(simple.Node(g.nodeID(c)))
		}
	}

	// Right and down neighbours cover every undirected edge once
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			c := Cell{x, y}
			if g.IsWall(c) {
				continue
			}
			for _, n := range [2]Cell{{x + 1, y}, {x, y + 1}} {
				if g.Walkable(n) {
					ug.SetEdge(ug.NewEdge(simple.Node(g.nodeID(c)), simple.Node(g.nodeID(n))))
				}
			}
		}
	}

	return ug
}
