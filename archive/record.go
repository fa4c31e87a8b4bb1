// Package archive keeps reports of finished runs on disk.
package archive

import (
	"time"

	"github.com/lixenwraith/evomaze/maze"
	"github.com/lixenwraith/evomaze/pathfind"
)

// Record is the serializable report of one run
type Record struct {
	RunID     string    `toml:"run_id"`
	Scenario  string    `toml:"scenario"`
	SavedAt   time.Time `toml:"saved_at"`
	Cancelled bool      `toml:"cancelled"`
	Config    ConfigDTO `toml:"config"`
	Result    ResultDTO `toml:"result"`
}

// ConfigDTO mirrors pathfind.Config
type ConfigDTO struct {
	PopulationSize int     `toml:"population_size"`
	PathLength     int     `toml:"path_length"`
	MutationRate   float64 `toml:"mutation_rate"`
	Generations    int     `toml:"generations"`
	TournamentSize int     `toml:"tournament_size"`
	Parallelism    int     `toml:"parallelism"`
	Seed           uint64  `toml:"seed"`
}

// ResultDTO mirrors pathfind.Result without the run id
type ResultDTO struct {
	Found           bool        `toml:"found"`
	GenerationFound int         `toml:"generation_found"`
	Generations     int         `toml:"generations"`
	BestFitness     float64     `toml:"best_fitness"`
	WinningMoves    []maze.Move `toml:"winning_moves,omitempty"`
	BestPath        []maze.Cell `toml:"best_path"`
}

// FromRun captures a finished run
func FromRun(scenario string, cfg pathfind.Config, res pathfind.Result, cancelled bool) Record {
	return Record{
		RunID:     res.RunID,
		Scenario:  scenario,
		SavedAt:   time.Now().UTC().Truncate(time.Second),
		Cancelled: cancelled,
		Config: ConfigDTO{
			PopulationSize: cfg.PopulationSize,
			PathLength:     cfg.PathLength,
			MutationRate:   cfg.MutationRate,
			Generations:    cfg.Generations,
			TournamentSize: cfg.TournamentSize,
			Parallelism:    cfg.Parallelism,
			Seed:           cfg.Seed,
		},
		Result: ResultDTO{
			Found:           res.Found,
			GenerationFound: res.GenerationFound,
			Generations:     res.Generations,
			BestFitness:     res.BestFitness,
			WinningMoves:    res.WinningMoves,
			BestPath:        res.BestPath,
		},
	}
}

// PathConfig converts the archived config back to solver form, e.g. to replay a run
func (r Record) PathConfig() pathfind.Config {
	return pathfind.Config{
		PopulationSize: r.Config.PopulationSize,
		PathLength:     r.Config.PathLength,
		MutationRate:   r.Config.MutationRate,
		Generations:    r.Config.Generations,
		TournamentSize: r.Config.TournamentSize,
		Parallelism:    r.Config.Parallelism,
		Seed:           r.Config.Seed,
	}
}
