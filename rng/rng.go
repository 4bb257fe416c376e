// Package rng centralizes deterministic random generation shared by the
// construct, genetic, and solver packages, lifted from tsp/rng.go's
// seed-derivation helpers so every package that needs a reproducible
// pseudo-random stream draws from the same SplitMix64-mixed source instead
// of each reinventing seeding.
package rng

import "math/rand"

// defaultSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand. seed==0 uses defaultSeed so
// the zero value of params.Parameters.Seed still yields reproducible runs.
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream identifier into a new 64-bit
// seed via the canonical SplitMix64 finalizer, so independent substreams
// (one per trial, one per run, one per population member) don't correlate.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive creates an independent deterministic RNG stream from a base RNG
// and a stream identifier. If base is nil, defaultSeed is used as the
// parent. Otherwise base.Int63() is consumed once first, so reusing the
// same stream id against the same base never yields identical children.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	var parent int64
	if base == nil {
		parent = defaultSeed
	} else {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(DeriveSeed(parent, stream)))
}

// ShuffleInt32s performs an in-place Fisher-Yates shuffle of a using rng.
// If rng is nil, a deterministic default stream is used.
func ShuffleInt32s(a []int32, r *rand.Rand) {
	if len(a) <= 1 {
		return
	}
	if r == nil {
		r = FromSeed(0)
	}
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// PermInt32 returns a permutation of [0,n) generated deterministically
// from rng. If rng is nil, the default deterministic stream is used.
func PermInt32(n int, r *rand.Rand) []int32 {
	p := make([]int32, n)
	for i := range p {
		p[i] = int32(i)
	}
	ShuffleInt32s(p, r)
	return p
}
