// Package scenario loads run descriptions: a maze plus evolution parameters.
//
// Scenarios come from TOML or YAML files, or from the built-in set embedded in
// the binary. Environment overrides are applied on top with ApplyEnv.
package scenario

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/pathfind"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

var (
	ErrUnknownFormat   = errors.New("scenario: unknown file format")
	ErrUnknownScenario = errors.New("scenario: unknown built-in scenario")
)

// Format selects the decoder used by Parse
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Scenario is one complete run description
type Scenario struct {
	Name        string    `toml:"name" yaml:"name"`
	Description string    `toml:"description,omitempty" yaml:"description,omitempty"`
	Maze        Maze      `toml:"maze" yaml:"maze"`
	Evolution   Evolution `toml:"evolution" yaml:"evolution"`
}

// Maze describes the grid
type Maze struct {
	Rows  int         `toml:"rows" yaml:"rows"`
	Cols  int         `toml:"cols" yaml:"cols"`
	Start maze.Cell   `toml:"start" yaml:"start"`
	Goal  maze.Cell   `toml:"goal" yaml:"goal"`
	Walls []maze.Cell `toml:"walls" yaml:"walls"`
}

// Evolution mirrors pathfind.Config in file form
type Evolution struct {
	PopulationSize int     `toml:"population_size" yaml:"population_size"`
	PathLength     int     `toml:"path_length" yaml:"path_length"`
	MutationRate   float64 `toml:"mutation_rate" yaml:"mutation_rate"`
	Generations    int     `toml:"generations" yaml:"generations"`
	TournamentSize int     `toml:"tournament_size" yaml:"tournament_size"`
	Parallelism    int     `toml:"parallelism,omitempty" yaml:"parallelism,omitempty"`
	Seed           uint64  `toml:"seed,omitempty" yaml:"seed,omitempty"`
}

// New returns an empty scenario carrying the default evolution parameters
func New(name string) *Scenario {
	cfg := pathfind.DefaultConfig()
	return &Scenario{
		Name: name,
		Evolution: Evolution{
			PopulationSize: cfg.PopulationSize,
			PathLength:     cfg.PathLength,
			MutationRate:   cfg.MutationRate,
			Generations:    cfg.Generations,
			TournamentSize: cfg.TournamentSize,
			Parallelism:    cfg.Parallelism,
			Seed:           cfg.Seed,
		},
	}
}

// FromGrid captures g and cfg as a scenario
func FromGrid(name string, g *maze.Grid, cfg pathfind.Config) *Scenario {
	s := New(name)
	s.Maze = Maze{
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		Start: g.Start(),
		Goal:  g.Goal(),
		Walls: g.Walls(),
	}
	s.SetConfig(cfg)
	return s
}

// Parse decodes data in the given format on top of the defaults
func Parse(data []byte, format Format) (*Scenario, error) {
	s := New("")

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("scenario: decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("scenario: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return s, nil
}

// FormatFor picks the format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads a scenario file; the name defaults to the file's base name
func Load(path string) (*Scenario, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Builtin returns a copy of the named embedded scenario
func Builtin(name string) (*Scenario, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownScenario, name, strings.Join(Builtins(), ", "))
	}
	return Parse(data, FormatTOML)
}

// Builtins lists the embedded scenario names in sorted order
func Builtins() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	slices.Sort(names)
	return names
}

// Resolve loads ref as a file when it has a scenario extension, otherwise as a built-in name
func Resolve(ref string) (*Scenario, error) {
	if _, err := FormatFor(ref); err == nil {
		return Load(ref)
	}
	return Builtin(ref)
}

// Grid builds the validated maze
func (s *Scenario) Grid() (*maze.Grid, error) {
	return maze.NewGrid(s.Maze.Rows, s.Maze.Cols, s.Maze.Walls, s.Maze.Start, s.Maze.Goal)
}

// Config returns the evolution parameters as a solver config
func (s *Scenario) Config() pathfind.Config {
	return pathfind.Config{
		PopulationSize: s.Evolution.PopulationSize,
		PathLength:     s.Evolution.PathLength,
		MutationRate:   s.Evolution.MutationRate,
		Generations:    s.Evolution.Generations,
		TournamentSize: s.Evolution.TournamentSize,
		Parallelism:    s.Evolution.Parallelism,
		Seed:           s.Evolution.Seed,
	}
}

// SetConfig overwrites the evolution parameters
func (s *Scenario) SetConfig(cfg pathfind.Config) {
	s.Evolution = Evolution{
		PopulationSize: cfg.PopulationSize,
		PathLength:     cfg.PathLength,
		MutationRate:   cfg.MutationRate,
		Generations:    cfg.Generations,
		TournamentSize: cfg.TournamentSize,
		Parallelism:    cfg.Parallelism,
		Seed:           cfg.Seed,
	}
}

// Save encodes s as TOML
func Save(w io.Writer, s *Scenario) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(s)
}

// SaveFile writes s to path in the format named by its extension, creating parent directories
func SaveFile(path string, s *Scenario) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	default:
		if err := Save(&buf, s); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
