// Package rng provides the seeded pseudo-random source every stochastic
// decision in the simulation draws from.
package rng

import (
	"math"
	"unicode/utf16"
)

// DefaultSeed is used when an empty seed string is supplied.
const DefaultSeed = "default-seed"

const (
	fnvOffset = 2166136261
	fnvPrime  = 16777619
	golden    = 0x6D2B79F5
)

// RNG is a 32-bit Mulberry32 generator seeded from a string.
// It is not safe for concurrent use; the simulation owns one per world.
type RNG struct {
	seed  string
	state uint32
}

// New creates a generator from a seed string. Two generators built from the
// same seed produce identical sequences indefinitely.
func New(seed string) *RNG {
	if seed == "" {
		seed = DefaultSeed
	}
	return &RNG{seed: seed, state: HashSeed(seed)}
}

// HashSeed folds a seed string into 32 bits (FNV-1a over UTF-16 code units).
func HashSeed(seed string) uint32 {
	h := uint32(fnvOffset)
	for _, c := range utf16.Encode([]rune(seed)) {
		h ^= uint32(c)
		h *= fnvPrime
	}
	return h
}

// Seed returns the seed string the generator was built from.
func (r *RNG) Seed() string {
	return r.seed
}

// Float returns a value in [0, 1).
func (r *RNG) Float() float64 {
	r.state += golden
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296
}

// Int returns an integer in [min, max] inclusive.
func (r *RNG) Int(min, max int) int {
	return int(math.Floor(float64(min) + r.Float()*float64(max-min+1)))
}

// Range returns a value uniformly drawn from [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float()*(hi-lo)
}

// Jitter returns a value uniformly drawn from [-scale, scale).
func (r *RNG) Jitter(scale float64) float64 {
	return (r.Float()*2 - 1) * scale
}

// Choice selects one element of items uniformly. It panics on an empty slice,
// like indexing would.
func Choice[T any](r *RNG, items []T) T {
	return items[int(r.Float()*float64(len(items)))]
}
