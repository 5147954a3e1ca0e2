package random

import (
	"math/rand/v2"
	"time"
)

// Source is the slice of math/rand the tree builder needs. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a PCG-backed source. A zero seed means "seed from the clock".
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
