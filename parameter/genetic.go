package parameter

import "time"

// Genetic Algorithm - Engine Configuration
const (
	// GAPopulationSize is the number of chromosomes in each generation
	GAPopulationSize = 100

	// GAPathLength is the number of genes (moves) per chromosome
	GAPathLength = 120

	// GAMutationRate is the per-gene probability of redrawing a move (0.0-1.0)
	GAMutationRate = 0.05

	// GAGenerations caps the generational loop
	GAGenerations = 2000

	// GATournamentSize for selection pressure
	GATournamentSize = 3

	// GAEliteCount is the number of best chromosomes carried over unchanged
	GAEliteCount = 1

	// GAParallelism for batch evaluation, 1 evaluates on the engine goroutine
	GAParallelism = 1

	// GADefaultSeed replaces a zero seed so unseeded runs stay reproducible
	GADefaultSeed uint64 = 1
)

// Presentation
const (
	// ViewStepInterval is the delay between animated path steps in the terminal view
	ViewStepInterval = 300 * time.Millisecond

	// ViewRefreshInterval is how often the terminal view polls the engine snapshot
	ViewRefreshInterval = 50 * time.Millisecond

	// ServerReadHeaderTimeout bounds slow clients on the status server
	ServerReadHeaderTimeout = 5 * time.Second
)

// Logging
const (
	// LogDir is the directory for debug log files
	LogDir = "logs"

	// LogFileName is the debug log file name inside LogDir
	LogFileName = "evomaze.log"

	// LogMaxSize triggers rotation of the debug log on startup
	LogMaxSize = 10 * 1024 * 1024
)

// Command line
const (
	// ProgressLogEvery is the generation interval between progress log records
	ProgressLogEvery = 100

	// AudioVolume is the default cue volume (0.0-1.0)
	AudioVolume = 0.5

	// ShutdownTimeout bounds the status server graceful shutdown
	ShutdownTimeout = 2 * time.Second
)
