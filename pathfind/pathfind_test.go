package pathfind

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/evomaze/genetic"
	"github.com/lixenwraith/evomaze/maze"
)

func openGrid(t *testing.T) *maze.Grid {
	t.Helper()
	g, err := maze.NewGrid(3, 3, nil, maze.Cell{X: 0, Y: 0}, maze.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	return g
}

// enclosedGrid boxes the goal at (2,2) in with walls on all four sides
func enclosedGrid(t *testing.T) *maze.Grid {
	t.Helper()
	walls := []maze.Cell{{X: 3, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 3}}
	g, err := maze.NewGrid(5, 5, walls, maze.Cell{X: 0, Y: 0}, maze.Cell{X: 2, Y: 2})
	require.NoError(t, err)
	return g
}

func TestEvaluate(t *testing.T) {
	g := openGrid(t)

	t.Run("ReachesGoal", func(t *testing.T) {
		f, path := Evaluate(g, []maze.Move{maze.Right, maze.Right, maze.Down, maze.Down, maze.Left, maze.Up})
		assert.Equal(t, 1.0, f)
		// Truncated at the step that lands on the goal
		require.Len(t, path, 5)
		assert.Equal(t, maze.Cell{X: 2, Y: 2}, path[len(path)-1])
	})

	t.Run("StopsShort", func(t *testing.T) {
		f, path := Evaluate(g, []maze.Move{maze.Right, maze.Down})
		assert.Equal(t, 1.0/3.0, f)
		assert.Equal(t, []maze.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, path)
	})

	t.Run("BlockedMovesWaste", func(t *testing.T) {
		f, path := Evaluate(g, []maze.Move{maze.Up, maze.Left, maze.Up})
		assert.Equal(t, 1.0/5.0, f)
		assert.Len(t, path, 4)
		for _, c := range path {
			assert.Equal(t, g.Start(), c)
		}
	})

	t.Run("EmptyGenes", func(t *testing.T) {
		f, path := Evaluate(g, nil)
		assert.Equal(t, 1.0/5.0, f)
		assert.Equal(t, []maze.Cell{g.Start()}, path)
	})
}

func TestEvaluate_Properties(t *testing.T) {
	g := enclosedGrid(t)
	rng := genetic.NewRand(5)

	for range 500 {
		genes := make([]maze.Move, 1+rng.IntN(20))
		for i := range genes {
			genes[i] = maze.Moves[rng.IntN(len(maze.Moves))]
		}

		f, path := Evaluate(g, genes)
		assert.Greater(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
		assert.Equal(t, g.Start(), path[0])
		assert.LessOrEqual(t, len(path), len(genes)+1)

		// Each step stays put or moves to an adjacent walkable cell
		for i := 1; i < len(path); i++ {
			assert.LessOrEqual(t, maze.Manhattan(path[i-1], path[i]), 1)
			assert.True(t, g.Walkable(path[i]))
		}

		last := path[len(path)-1]
		want := 1.0 / float64(maze.Manhattan(last, g.Goal())+1)
		assert.Equal(t, want, f)
	}
}

func TestEvaluate_StrictlyMonotoneInDistance(t *testing.T) {
	g, err := maze.NewGrid(1, 10, nil, maze.Cell{X: 0, Y: 0}, maze.Cell{X: 9, Y: 0})
	require.NoError(t, err)

	prev := 0.0
	for steps := 0; steps < 9; steps++ {
		genes := make([]maze.Move, steps)
		for i := range genes {
			genes[i] = maze.Right
		}
		f, _ := Evaluate(g, genes)
		assert.Greater(t, f, prev, "steps %d", steps)
		assert.Less(t, f, 1.0)
		prev = f
	}
}

func TestChromosome_Clone(t *testing.T) {
	c := NewChromosome(openGrid(t), []maze.Move{maze.Down, maze.Right})
	d := c.Clone()
	d.Genes[0] = maze.Up
	d.Path[0] = maze.Cell{X: 9, Y: 9}

	assert.Equal(t, maze.Down, c.Genes[0])
	assert.Equal(t, maze.Cell{}, c.Path[0])
	assert.False(t, c.ReachedGoal())
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"PopulationOne", func(c *Config) { c.PopulationSize = 1 }, ErrPopulationSize},
		{"PathZero", func(c *Config) { c.PathLength = 0 }, ErrPathLength},
		{"RateNegative", func(c *Config) { c.MutationRate = -0.01 }, ErrMutationRate},
		{"RateTooHigh", func(c *Config) { c.MutationRate = 1.01 }, ErrMutationRate},
		{"RateNaN", func(c *Config) { c.MutationRate = math.NaN() }, ErrMutationRate},
		{"GenerationsZero", func(c *Config) { c.Generations = 0 }, ErrGenerations},
		{"ParallelismNegative", func(c *Config) { c.Parallelism = -1 }, ErrParallelism},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)

			_, err := New(openGrid(t), cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := New(nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrNilGrid)
}

func TestSolver_OpenGridConverges(t *testing.T) {
	g := openGrid(t)

	for seed := uint64(1); seed <= 10; seed++ {
		s, err := New(g, Config{PopulationSize: 20, PathLength: 8, MutationRate: 0.05, Generations: 100, Seed: seed})
		require.NoError(t, err)

		res, err := s.Run(context.Background())
		require.NoError(t, err)
		require.True(t, res.Found, "seed %d", seed)

		assert.Equal(t, 1.0, res.BestFitness)
		assert.Len(t, res.WinningMoves, 8)
		assert.GreaterOrEqual(t, res.GenerationFound, 0)
		assert.Equal(t, res.GenerationFound+1, res.Generations)
		assert.Equal(t, g.Goal(), res.BestPath[len(res.BestPath)-1])

		f, _ := Evaluate(g, res.WinningMoves)
		assert.Equal(t, 1.0, f)
	}
}

func TestSolver_EnclosedGoalRunsToCap(t *testing.T) {
	s, err := New(enclosedGrid(t), Config{PopulationSize: 10, PathLength: 12, MutationRate: 0.1, Generations: 30, Seed: 3})
	require.NoError(t, err)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Found)
	assert.Nil(t, res.WinningMoves)
	assert.Equal(t, -1, res.GenerationFound)
	assert.Equal(t, 30, res.Generations)
	assert.Greater(t, res.BestFitness, 0.0)
	assert.LessOrEqual(t, res.BestFitness, 1.0/3.0)

	stored, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, res, stored)
}

func TestSolver_PopulationInvariantAndElitism(t *testing.T) {
	s, err := New(enclosedGrid(t), Config{PopulationSize: 13, PathLength: 10, MutationRate: 0.2, Generations: 25, Seed: 9})
	require.NoError(t, err)

	var prev *Snapshot
	s.OnGeneration(func(snap Snapshot) {
		pop := s.Population()
		require.Len(t, pop, 13)
		for i := 1; i < len(pop); i++ {
			assert.GreaterOrEqual(t, pop[i-1].Fitness, pop[i].Fitness)
		}
		assert.Equal(t, snap.BestGenes, pop[0].Genes)
		assert.Equal(t, snap.BestFitness, pop[0].Fitness)
		assert.GreaterOrEqual(t, snap.BestFitness, snap.AverageFitness)
		assert.GreaterOrEqual(t, snap.AverageFitness, snap.WorstFitness)

		if prev != nil {
			assert.Equal(t, prev.Generation+1, snap.Generation)
			assert.GreaterOrEqual(t, snap.BestFitness, prev.BestFitness)

			// Previous best survives unchanged
			found := false
			for _, c := range pop {
				if assert.ObjectsAreEqual(prev.BestGenes, c.Genes) {
					found = true
					break
				}
			}
			assert.True(t, found, "generation %d lost the elite", snap.Generation)
		}
		prev = &snap
	})

	_, err = s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.Equal(t, 24, prev.Generation)
}

func TestSolver_SeedDeterminism(t *testing.T) {
	g := enclosedGrid(t)
	run := func(parallelism int) Result {
		s, err := New(g, Config{PopulationSize: 16, PathLength: 10, MutationRate: 0.05, Generations: 20, Parallelism: parallelism, Seed: 42})
		require.NoError(t, err)
		res, err := s.Run(context.Background())
		require.NoError(t, err)
		res.RunID = ""
		return res
	}

	first := run(1)
	assert.Equal(t, first, run(1))
	assert.Equal(t, first, run(4))
}

func TestSolver_Cancellation(t *testing.T) {
	s, err := New(enclosedGrid(t), Config{PopulationSize: 8, PathLength: 10, MutationRate: 0.05, Generations: 1000})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.OnGeneration(func(snap Snapshot) {
		if snap.Generation == 2 {
			cancel()
		}
	})

	res, err := s.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 3, res.Generations)
	assert.False(t, res.Found)
}

func TestSolver_SnapshotLifecycle(t *testing.T) {
	s, err := New(openGrid(t), Config{PopulationSize: 4, PathLength: 4, MutationRate: 0.05, Generations: 3, Seed: 1})
	require.NoError(t, err)

	_, ok := s.Snapshot()
	assert.False(t, ok)
	assert.Nil(t, s.Population())
	_, ok = s.Result()
	assert.False(t, ok)

	res, err := s.Run(context.Background())
	require.NoError(t, err)

	snap, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, s.RunID(), snap.RunID)
	assert.Equal(t, res.Generations-1, snap.Generation)
	assert.Equal(t, res.BestFitness, snap.BestFitness)
	assert.Equal(t, res.BestPath, snap.BestPath)
}
