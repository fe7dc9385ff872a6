// Package rng provides the injectable random source used by the terrain generators.
package rng

import (
	"math/rand/v2"
	"time"
)

// Source yields uniformly distributed floats in [0, 1).
//
// *rand.Rand from math/rand/v2 satisfies it, as does *RNG.
type Source interface {
	Float64() float64
}

// RNG is a seeded PCG source.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// New creates a deterministic RNG using the provided seed.
func New(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0)), seed: seed}
}

// NewTimeSeeded creates an RNG seeded from the wall clock.
func NewTimeSeeded() *RNG {
	return New(time.Now().UnixNano())
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a float in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns an int in [0, n). It returns 0 when n <= 0.
func IntN(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	// Float64 is strictly below 1 but the product can round up to n.
	if i >= n {
		i = n - 1
	}
	return i
}

// Shuffle permutes the first k entries of s into a uniform random
// k-subset using a partial Fisher-Yates pass.
func Shuffle[T any](src Source, s []T, k int) {
	if k > len(s) {
		k = len(s)
	}
	for i := 0; i < k; i++ {
		j := i + IntN(src, len(s)-i)
		s[i], s[j] = s[j], s[i]
	}
}
