package genetic

import (
	"math/rand/v2"

	"github.com/lixenwraith/evomaze/parameter"
)

// NewRand returns a deterministic PCG-backed generator.
// Policy: seed==0 uses parameter.GADefaultSeed, otherwise the seed is used verbatim.
// A *rand.Rand is not goroutine-safe; the engine keeps its generator on one goroutine.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = parameter.GADefaultSeed
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
