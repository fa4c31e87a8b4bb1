package maze

import (
	"math/rand/v2"
)

// GenConfig controls random maze generation
type GenConfig struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, tree) to 1.0 (no dead ends).
	// Higher values add cycles. Plaza/pillar constraints take precedence.
	Braiding float64

	Start *Cell  // Optional (nil = top-left room)
	Goal  *Cell  // Optional (nil = bottom-right room)
	Seed  uint64 // Optional (0 = random)
}

// Generate carves a maze with a recursive backtracker and returns it as a Grid.
// Dimensions are rounded down to the nearest odd number (minimum 3) so rooms sit
// on odd coordinates surrounded by a wall border.
func Generate(cfg GenConfig) (*Grid, error) {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)

	open := make([][]bool, rows)
	for y := range open {
		open[y] = make([]bool, cols)
	}

	var rng *rand.Rand
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}

	start := resolveCell(rows, cols, cfg.Start, Cell{1, 1})
	goal := resolveCell(rows, cols, cfg.Goal, Cell{cols - 2, rows - 2})

	recursiveBacktracker(open, Cell{1, 1}, rng)

	if cfg.Braiding > 0 {
		applyBraiding(open, cfg.Braiding, rng)
	}

	forceOpen(open, start)
	forceOpen(open, goal)

	walls := make([]Cell, 0, rows*cols/2)
	for y := range open {
		for x := range open[y] {
			if !open[y][x] {
				walls = append(walls, Cell{x, y})
			}
		}
	}

	return NewGrid(rows, cols, walls, start, goal)
}

var (
	jumpDirs  = [4]Cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	orthoDirs = [4]Cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

func recursiveBacktracker(open [][]bool, start Cell, rng *rand.Rand) {
	rows, cols := len(open), len(open[0])

	stack := []Cell{start}
	open[start.Y][start.X] = true

	candidates := make([]Cell, 0, 4)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range jumpDirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Leave a 1-cell border of walls
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && !open[ny][nx] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.IntN(len(candidates))]
		open[curr.Y+d.Y/2][curr.X+d.X/2] = true
		next := Cell{curr.X + d.X, curr.Y + d.Y}
		open[next.Y][next.X] = true
		stack = append(stack, next)
	}
}

// applyBraiding opens a wall next to dead-end rooms with the given probability,
// skipping removals that would create 2x2 open plazas or isolated pillars
func applyBraiding(open [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(open), len(open[0])

	candidates := make([]Cell, 0, 4)
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if !open[y][x] {
				continue
			}

			exits := 0
			for _, d := range orthoDirs {
				if open[y+d.Y][x+d.X] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates = candidates[:0]
			for _, jd := range jumpDirs {
				nx, ny := x+jd.X, y+jd.Y
				wx, wy := x+jd.X/2, y+jd.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if open[ny][nx] && !open[wy][wx] && canSafelyRemoveWall(open, wx, wy) {
					candidates = append(candidates, Cell{wx, wy})
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.IntN(len(candidates))]
				open[c.Y][c.X] = true
			}
		}
	}
}

func canSafelyRemoveWall(open [][]bool, x, y int) bool {
	rows, cols := len(open), len(open[0])

	isOpen := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return open[ty][tx]
	}

	// No plazas: none of the four 2x2 quadrants around (x,y) may become fully open
	if isOpen(x-1, y-1) && isOpen(x, y-1) && isOpen(x-1, y) {
		return false
	}
	if isOpen(x, y-1) && isOpen(x+1, y-1) && isOpen(x+1, y) {
		return false
	}
	if isOpen(x-1, y) && isOpen(x-1, y+1) && isOpen(x, y+1) {
		return false
	}
	if isOpen(x+1, y) && isOpen(x, y+1) && isOpen(x+1, y+1) {
		return false
	}

	// No pillars: every neighbouring wall must keep another wall neighbour
	for _, d := range orthoDirs {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || open[ny][nx] {
			continue
		}
		links := 0
		for _, d2 := range orthoDirs {
			nnx, nny := nx+d2.X, ny+d2.Y
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && !open[nny][nnx] {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}

	return true
}

func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func resolveCell(rows, cols int, c *Cell, def Cell) Cell {
	if c == nil {
		return def
	}
	return Cell{X: min(max(c.X, 0), cols-1), Y: min(max(c.Y, 0), rows-1)}
}

// forceOpen clears c and, when it has no open neighbour, one interior neighbour
func forceOpen(open [][]bool, c Cell) {
	rows, cols := len(open), len(open[0])
	open[c.Y][c.X] = true

	for _, d := range orthoDirs {
		nx, ny := c.X+d.X, c.Y+d.Y
		if nx >= 0 && nx < cols && ny >= 0 && ny < rows && open[ny][nx] {
			return
		}
	}
	for _, d := range orthoDirs {
		nx, ny := c.X+d.X, c.Y+d.Y
		if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
			open[ny][nx] = true
			return
		}
	}
}
