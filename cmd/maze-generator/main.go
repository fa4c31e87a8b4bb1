package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/pathfind"
	"github.com/lixenwraith/evomaze/scenario"
)

func main() {
	width := flag.Int("width", 35, "Maze width, rounded down to odd")
	height := flag.Int("height", 19, "Maze height, rounded down to odd")
	braid := flag.Float64("braiding", 0.2, "Braiding factor [0.0 - 1.0]")
	seed := flag.Uint64("seed", 0, "Generator seed, 0 draws a fresh one")
	name := flag.String("name", "generated", "Scenario name")
	out := flag.String("o", "", "Write the maze as a scenario file (.toml or .yaml)")
	flag.Parse()

	// TOML integers are signed 64-bit
	if *seed == 0 {
		*seed = rand.Uint64() >> 1
	}

	fmt.Println("=== STOCHASTIC TOPOLOGICAL MAZE GENERATOR ===")
	fmt.Println("Generating...")
	startT := time.Now()
	grid, err := maze.Generate(maze.GenConfig{
		Width:    *width,
		Height:   *height,
		Braiding: *braid,
		Seed:     *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate: %v\n", err)
		os.Exit(1)
	}
	dur := time.Since(startT)

	a := maze.Analyze(grid)
	fmt.Printf("Done in %v (seed %d)\n", dur, *seed)
	fmt.Printf("Grid Dimensions: %dx%d, %d open cells\n", grid.Cols(), grid.Rows(), a.OpenCells)
	if a.Reachable {
		fmt.Printf("Shortest Path: %d moves\n", a.ShortestPath)
	} else {
		fmt.Println("Status: Unsolvable (Isolated Start/Goal)")
	}
	fmt.Print(maze.Render(grid, nil))

	if *out == "" {
		return
	}

	// Leave headroom over the shortest route for wandering chromosomes
	cfg := pathfind.DefaultConfig()
	cfg.Seed = *seed
	if a.Reachable && cfg.PathLength < 2*a.ShortestPath {
		cfg.PathLength = 2 * a.ShortestPath
	}

	sc := scenario.FromGrid(*name, grid, cfg)
	sc.Description = fmt.Sprintf("Generated %dx%d maze, braiding %.2f, seed %d", grid.Cols(), grid.Rows(), *braid, *seed)
	if err := scenario.SaveFile(*out, sc); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Scenario written to %s\n", *out)
}
