// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package rng provides the seeded pseudo-random source used for
// particle spawning: uniform reals, uniform bits, and gamma-distributed
// reals for the orbital spawn shell radius. Grounded on the vu engine's
// use of math/rand for grid generation (grid.Grid.Seed), extended with
// gonum's gamma sampler since math/rand has no non-uniform distributions.
package rng

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rng is a seeded source of the random values the simulation needs.
// It is not safe for concurrent use; the producer thread owns it.
type Rng struct {
	src *rand.Rand
}

// New returns an Rng seeded deterministically so that a (seed, N,
// size, timestep budget) tuple always reproduces the same run.
func New(seed int64) *Rng {
	return &Rng{src: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform real in [0, 1).
func (r *Rng) Float64() float64 { return r.src.Float64() }

// Uniform returns a uniform real in [lo, hi).
func (r *Rng) Uniform(lo, hi float64) float64 { return lo + r.src.Float64()*(hi-lo) }

// SignedUniform returns a uniform real in [lo, hi) with a random sign,
// used for velocity components drawn symmetrically around zero.
func (r *Rng) SignedUniform(lo, hi float64) float64 {
	v := r.Uniform(lo, hi)
	if r.src.Intn(2) == 0 {
		return -v
	}
	return v
}

// Uint64 returns a uniform 64-bit unsigned integer.
func (r *Rng) Uint64() uint64 { return r.src.Uint64() }

// Intn returns a uniform integer in [0, n).
func (r *Rng) Intn(n int) int { return r.src.Intn(n) }

// Gamma returns a sample from a Gamma(shape, rate) distribution. Used
// by orbital spawning to draw a shell radius offset per spec §4.3
// ("gamma(1,2) + R_center").
func (r *Rng) Gamma(shape, rate float64) float64 {
	g := distuv.Gamma{Alpha: shape, Beta: rate, Src: r.src}
	return g.Rand()
}
