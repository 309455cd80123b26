package engine

import (
	"math/rand"
	"time"
)

// spawn2Prob is the chance a spawned tile is a 2 rather than a 4.
const spawn2Prob = 0.9

// Source supplies the randomness used for tile spawns.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Float64 returns a uniform value in [0.0, 1.0).
	Float64() float64
}

// NewSource returns a math/rand source for the given seed.
// A zero seed uses the current time.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
