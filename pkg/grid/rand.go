package grid

import "math/rand/v2"

// Rand is the source of randomness for the walk. *rand.Rand from
// math/rand/v2 satisfies it; tests may substitute a scripted source.
type Rand interface {
	// IntN returns a uniform integer in [0, n). n is always > 0.
	IntN(n int) int
}

// NewRand returns a PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Shuffle permutes s in place with the Fisher–Yates algorithm: for i from
// the last index down to 1, swap s[i] with s[j] for a uniform j in [0, i].
func Shuffle[T any](rng Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
