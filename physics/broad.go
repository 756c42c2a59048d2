// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// Pair is an unordered candidate pair of particle indices into the
// slice a Strategy was asked to scan. A strategy must never emit the
// same unordered pair twice in one call to CandidatePairs.
type Pair struct {
	I, J int
}

// Strategy enumerates candidate colliding pairs for the current tick's
// particle positions. Every broad-phase algorithm implements this one
// contract; narrow-phase filtering (Overlaps) and resolution are
// identical regardless of which Strategy produced the candidate.
//
// This replaces the original broad_get_collision_pairs free function
// and its union-find simulation-island bookkeeping (needed only for
// the rigid-body constraint solver this was ported from) with a
// pluggable interface: particles have no constraints between them, so
// islands don't apply here.
type Strategy interface {
	// CandidatePairs returns every pair of particles whose AABBs might
	// overlap this tick. The union of candidates across any correct
	// strategy must cover every truly-overlapping pair; a strategy may
	// over-report but must never under-report.
	CandidatePairs(particles []*Particle) []Pair
}

// BruteForce is the O(n²) correctness-reference strategy: every i<j
// pair is a candidate, so narrow-phase alone decides what collides.
type BruteForce struct{}

func (BruteForce) CandidatePairs(particles []*Particle) []Pair {
	pairs := make([]Pair, 0, len(particles))
	for i := 0; i < len(particles); i++ {
		for j := i + 1; j < len(particles); j++ {
			pairs = append(pairs, Pair{I: i, J: j})
		}
	}
	return pairs
}

// pairKey derives an order-independent identity for a candidate pair
// of particle slice indices, used by the strategies that must dedupe
// (Quadtree, SpatialHash, SpatialIndex, SweepMulti).
func pairKey(i, j int) int64 {
	if i > j {
		i, j = j, i
	}
	return int64(i)<<32 | int64(j)
}

// orderedPair returns i, j in ascending order as a Pair.
func orderedPair(i, j int) Pair {
	if i > j {
		i, j = j, i
	}
	return Pair{I: i, J: j}
}
