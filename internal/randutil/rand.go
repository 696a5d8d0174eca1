package randutil

import rand "math/rand/v2"

// New returns a *rand.Rand with a reproducible stream derived from seed.
// rand/v2's PCG takes two 64-bit words, so the single seed is stretched with
// a splitmix-style finalizer instead of making every call site invent its own
// second word.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(scramble(u), scramble(u^0x9e3779b97f4a7c15)))
}

func scramble(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
