package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/lixenwraith/evomaze/parameter"
	"github.com/lixenwraith/evomaze/scenario"
)

// options holds parsed command line flags
type options struct {
	scenario string
	envFile  string
	headless bool
	httpAddr string
	debug    bool
	audio    bool
	volume   float64
	archive  string

	// Evolution overrides, applied only when the flag was given
	seed         uint64
	population   int
	pathLength   int
	mutationRate float64
	generations  int
	parallelism  int

	set map[string]bool
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("evomaze", flag.ContinueOnError)
	fs.SetOutput(output)

	o := &options{}
	fs.StringVar(&o.scenario, "scenario", "classic", fmt.Sprintf("Built-in scenario (%v) or a .toml/.yaml file", scenario.Builtins()))
	fs.StringVar(&o.envFile, "env", ".env", "Optional dotenv file with EVOMAZE_* overrides")
	fs.BoolVar(&o.headless, "headless", false, "Run without the terminal view and print the result")
	fs.StringVar(&o.httpAddr, "http", "", "Serve status endpoints on this address, e.g. :8080")
	fs.BoolVar(&o.debug, "debug", false, "Write debug logs to "+parameter.LogDir+"/"+parameter.LogFileName)
	fs.BoolVar(&o.audio, "audio", false, "Play a cue when the run terminates")
	fs.Float64Var(&o.volume, "volume", parameter.AudioVolume, "Cue volume (0.0-1.0)")
	fs.StringVar(&o.archive, "archive", "", "Write a report of the finished run under this directory")

	fs.Uint64Var(&o.seed, "seed", 0, "Random seed, 0 draws a fresh one")
	fs.IntVar(&o.population, "population", 0, "Population size")
	fs.IntVar(&o.pathLength, "path-length", 0, "Moves per chromosome")
	fs.Float64Var(&o.mutationRate, "mutation-rate", 0, "Per-gene mutation probability")
	fs.IntVar(&o.generations, "generations", 0, "Generation budget")
	fs.IntVar(&o.parallelism, "parallelism", 0, "Concurrent fitness evaluations")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// loadScenario resolves the scenario and layers dotenv, environment and flags on top
func (o *options) loadScenario() (*scenario.Scenario, error) {
	if o.envFile != "" {
		if err := scenario.LoadDotEnv(o.envFile); err != nil {
			return nil, err
		}
	}

	sc, err := scenario.Resolve(o.scenario)
	if err != nil {
		return nil, err
	}
	if err := sc.ApplyEnv(); err != nil {
		return nil, err
	}

	ev := &sc.Evolution
	if o.set["seed"] {
		ev.Seed = o.seed
	}
	if o.set["population"] {
		ev.PopulationSize = o.population
	}
	if o.set["path-length"] {
		ev.PathLength = o.pathLength
	}
	if o.set["mutation-rate"] {
		ev.MutationRate = o.mutationRate
	}
	if o.set["generations"] {
		ev.Generations = o.generations
	}
	if o.set["parallelism"] {
		ev.Parallelism = o.parallelism
	}
	return sc, nil
}
