// Package maze models the fixed-size grid a route is searched on.
//
// A Grid is immutable once built: walls, bounds and the two endpoints are fixed,
// so one Grid may be shared read-only across goroutines. Moves that would leave
// the bounds or enter a wall are no-ops, the walker stays where it is.
package maze

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for grid construction.
var (
	// ErrInvalidDimensions indicates rows or cols is not positive.
	ErrInvalidDimensions = errors.New("maze: rows and cols must be positive")
	// ErrOutOfBounds indicates a wall or endpoint lies outside the grid.
	ErrOutOfBounds = errors.New("maze: cell out of bounds")
	// ErrBlockedEndpoint indicates start or goal is a wall.
	ErrBlockedEndpoint = errors.New("maze: endpoint is a wall")
	// ErrSameEndpoints indicates start equals goal.
	ErrSameEndpoints = errors.New("maze: start and goal must differ")
)

// Grid is an immutable maze description.
type Grid struct {
	rows, cols int
	walls      map[Cell]struct{}
	start      Cell
	goal       Cell
}

// NewGrid validates and builds a Grid. The walls slice is copied; duplicates are ignored.
// Returns ErrInvalidDimensions, ErrOutOfBounds, ErrBlockedEndpoint or ErrSameEndpoints.
func NewGrid(rows, cols int, walls []Cell, start, goal Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		walls: make(map[Cell]struct{}, len(walls)),
		start: start,
		goal:  goal,
	}

	for _, w := range walls {
		if !g.IsInside(w) {
			return nil, fmt.Errorf("%w: wall %v", ErrOutOfBounds, w)
		}
		g.walls[w] = struct{}{}
	}

	for _, ep := range []struct {
		name string
		cell Cell
	}{{"start", start}, {"goal", goal}} {
		if !g.IsInside(ep.cell) {
			return nil, fmt.Errorf("%w: %s %v", ErrOutOfBounds, ep.name, ep.cell)
		}
		if g.IsWall(ep.cell) {
			return nil, fmt.Errorf("%w: %s %v", ErrBlockedEndpoint, ep.name, ep.cell)
		}
	}

	if start == goal {
		return nil, fmt.Errorf("%w: %v", ErrSameEndpoints, start)
	}

	return g, nil
}

// Rows returns the grid height
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width
func (g *Grid) Cols() int { return g.cols }

// Start returns the walk origin
func (g *Grid) Start() Cell { return g.start }

// Goal returns the target cell
func (g *Grid) Goal() Cell { return g.goal }

// WallCount returns the number of distinct walls
func (g *Grid) WallCount() int { return len(g.walls) }

// Walls returns the wall cells in row-major order
func (g *Grid) Walls() []Cell {
	out := make([]Cell, 0, len(g.walls))
	for w := range g.walls {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// IsInside reports whether c lies within the grid boundaries
func (g *Grid) IsInside(c Cell) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// IsWall reports whether c is blocked
func (g *Grid) IsWall(c Cell) bool {
	_, ok := g.walls[c]
	return ok
}

// IsGoal reports whether c is the goal
func (g *Grid) IsGoal(c Cell) bool {
	return c == g.goal
}

// ApplyMove returns the cell reached from c by m, or c itself when the
// destination is outside the grid or a wall
func (g *Grid) ApplyMove(c Cell, m Move) Cell {
	next := c.Add(m.Delta())
	if !g.IsInside(next) || g.IsWall(next) {
		return c
	}
	return next
}

// Walkable reports whether c is inside and not a wall
func (g *Grid) Walkable(c Cell) bool {
	return g.IsInside(c) && !g.IsWall(c)
}
