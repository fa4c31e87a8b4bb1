package scenario

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/pathfind"
)

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"classic", "enclosed", "open3"}, Builtins())

	for _, name := range Builtins() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name)

			_, err = s.Grid()
			require.NoError(t, err)
			require.NoError(t, s.Config().Validate())
		})
	}
}

func TestBuiltin_Classic(t *testing.T) {
	s, err := Builtin("classic")
	require.NoError(t, err)

	g, err := s.Grid()
	require.NoError(t, err)
	assert.Equal(t, 30, g.Rows())
	assert.Equal(t, 30, g.Cols())
	assert.Equal(t, 387, g.WallCount())
	assert.Equal(t, maze.Cell{X: 0, Y: 0}, g.Start())
	assert.Equal(t, maze.Cell{X: 29, Y: 29}, g.Goal())
	assert.True(t, g.IsWall(maze.Cell{X: 1, Y: 9}))
	assert.True(t, g.IsWall(maze.Cell{X: 7, Y: 26}))

	// The path budget must cover the shortest route
	a := maze.Analyze(g)
	require.True(t, a.Reachable)
	assert.Equal(t, 138, a.ShortestPath)
	assert.GreaterOrEqual(t, s.Evolution.PathLength, a.ShortestPath)
}

func TestBuiltin_Enclosed(t *testing.T) {
	s, err := Builtin("enclosed")
	require.NoError(t, err)
	g, err := s.Grid()
	require.NoError(t, err)
	assert.False(t, maze.Analyze(g).Reachable)
}

func TestBuiltin_Unknown(t *testing.T) {
	_, err := Builtin("nope")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
name: corridor
maze:
  rows: 1
  cols: 4
  start: {x: 0, y: 0}
  goal: {x: 3, y: 0}
  walls: []
evolution:
  population_size: 6
  mutation_rate: 0.2
`)
	s, err := Parse(data, FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "corridor", s.Name)
	assert.Equal(t, 6, s.Evolution.PopulationSize)
	assert.Equal(t, 0.2, s.Evolution.MutationRate)
	// Unset keys keep their defaults
	def := pathfind.DefaultConfig()
	assert.Equal(t, def.PathLength, s.Evolution.PathLength)
	assert.Equal(t, def.Generations, s.Evolution.Generations)

	g, err := s.Grid()
	require.NoError(t, err)
	assert.Equal(t, maze.Cell{X: 3, Y: 0}, g.Goal())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("x"), Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse([]byte("name = "), FormatTOML)
	assert.Error(t, err)

	_, err = FormatFor("maze.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g, err := maze.Generate(maze.GenConfig{Width: 11, Height: 9, Braiding: 0.2, Seed: 5})
	require.NoError(t, err)

	cfg := pathfind.DefaultConfig()
	cfg.PathLength = 64
	cfg.Seed = 17

	for _, ext := range []string{".toml", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mazes", "gen"+ext)
			require.NoError(t, SaveFile(path, FromGrid("gen", g, cfg)))

			s, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "gen", s.Name)
			assert.Equal(t, cfg, s.Config())

			back, err := s.Grid()
			require.NoError(t, err)
			assert.Equal(t, g.Walls(), back.Walls())
			assert.Equal(t, g.Start(), back.Start())
			assert.Equal(t, g.Goal(), back.Goal())
		})
	}
}

func TestSaveFile_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.json")
	assert.ErrorIs(t, SaveFile(path, New("gen")), ErrUnknownFormat)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoad_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yml")
	require.NoError(t, os.WriteFile(path, []byte("maze: {rows: 2, cols: 2, start: {x: 0, y: 0}, goal: {x: 1, y: 1}}\n"), 0644))

	s, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", s.Name)
}

func TestSave_WritesTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, New("empty")))
	assert.Contains(t, buf.String(), `name = 'empty'`)
	assert.Contains(t, buf.String(), "population_size = 100")
}
