// Package randutil centralises deterministic RNG construction so every
// call site derives the two 64-bit PCG seeds the same way.
package randutil

import (
	"time"

	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed, for
// reproducible simulations.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Auto returns a time-seeded RNG along with the seed it used, so the
// caller can log it and replay the run.
func Auto() (*rand.Rand, int64) {
	seed := time.Now().UnixNano()
	return New(seed), seed
}

// mix is the splitmix64 finaliser; it spreads correlated seeds apart.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
