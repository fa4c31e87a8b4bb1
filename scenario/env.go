package scenario

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ApplyEnv
const (
	EnvSeed         = "EVOMAZE_SEED"
	EnvPopulation   = "EVOMAZE_POPULATION"
	EnvPathLength   = "EVOMAZE_PATH_LENGTH"
	EnvMutationRate = "EVOMAZE_MUTATION_RATE"
	EnvGenerations  = "EVOMAZE_GENERATIONS"
	EnvParallelism  = "EVOMAZE_PARALLELISM"
)

// ErrInvalidEnv reports an environment override that does not parse
var ErrInvalidEnv = errors.New("scenario: invalid environment override")

// LoadDotEnv loads KEY=VALUE files into the process environment.
// Missing files are skipped; variables already set are not overwritten.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("scenario: load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides evolution parameters from EVOMAZE_* variables
func (s *Scenario) ApplyEnv() error {
	if err := envInt(EnvPopulation, &s.Evolution.PopulationSize); err != nil {
		return err
	}
	if err := envInt(EnvPathLength, &s.Evolution.PathLength); err != nil {
		return err
	}
	if err := envInt(EnvGenerations, &s.Evolution.Generations); err != nil {
		return err
	}
	if err := envInt(EnvParallelism, &s.Evolution.Parallelism); err != nil {
		return err
	}

	if v, ok := os.LookupEnv(EnvMutationRate); ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvMutationRate, v)
		}
		s.Evolution.MutationRate = rate
	}

	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvSeed, v)
		}
		s.Evolution.Seed = seed
	}

	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, key, v)
	}
	*dst = n
	return nil
}
