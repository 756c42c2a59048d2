// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "sort"

// Boundary is one edge of a particle's AABB along a single axis,
// tracked by SweepMulti in a persistent per-axis sorted slice.
type Boundary struct {
	Dim         int
	Value       float64
	IsUpper     bool
	ParticleIdx int
}

// SweepMulti maintains a persistent overlap set across ticks instead
// of rebuilding candidate pairs from scratch: each tick it re-sorts
// the (already almost-sorted) per-axis boundary slices and reacts only
// to the adjacent swaps that insertion sort performs, rather than
// scanning every pair. It assumes particles keep the same slice index
// for the life of the simulation, which holds here since particles
// are never created or destroyed after spawn.
type SweepMulti struct {
	Dims int

	initialized bool
	axes        [][]*Boundary
	possible    map[int64]Pair
}

func (s *SweepMulti) CandidatePairs(particles []*Particle) []Pair {
	if len(particles) == 0 {
		return nil
	}
	if !s.initialized {
		s.init(particles)
	} else {
		s.refresh(particles)
	}
	out := make([]Pair, 0, len(s.possible))
	for _, pr := range s.possible {
		out = append(out, pr)
	}
	return out
}

func (s *SweepMulti) numAxes() int {
	if s.Dims == 3 {
		return 3
	}
	return 2
}

// init builds the per-axis boundary slices from scratch and seeds
// possible with a single-axis (x) sweep filtered by full AABB overlap.
func (s *SweepMulti) init(particles []*Particle) {
	numAxes := s.numAxes()
	s.axes = make([][]*Boundary, numAxes)
	for d := 0; d < numAxes; d++ {
		bounds := make([]*Boundary, 0, 2*len(particles))
		for idx, p := range particles {
			lo, hi := axisRange(p.AABB(), d)
			bounds = append(bounds, &Boundary{Dim: d, Value: lo, IsUpper: false, ParticleIdx: idx})
			bounds = append(bounds, &Boundary{Dim: d, Value: hi, IsUpper: true, ParticleIdx: idx})
		}
		sort.Slice(bounds, func(i, j int) bool { return bounds[i].Value < bounds[j].Value })
		s.axes[d] = bounds
	}

	s.possible = map[int64]Pair{}
	var activeOnX []int
	for _, b := range s.axes[0] {
		if !b.IsUpper {
			for _, a := range activeOnX {
				if particles[a].AABB().Overlaps(particles[b.ParticleIdx].AABB()) {
					s.possible[pairKey(a, b.ParticleIdx)] = orderedPair(a, b.ParticleIdx)
				}
			}
			activeOnX = append(activeOnX, b.ParticleIdx)
		} else {
			for i, a := range activeOnX {
				if a == b.ParticleIdx {
					activeOnX = append(activeOnX[:i], activeOnX[i+1:]...)
					break
				}
			}
		}
	}
	s.initialized = true
}

// refresh re-reads every boundary's value from its AABB, then
// insertion-sorts each axis, updating possible on every adjacent swap
// that crosses a lower/upper pair.
func (s *SweepMulti) refresh(particles []*Particle) {
	for _, bounds := range s.axes {
		for _, b := range bounds {
			lo, hi := axisRange(particles[b.ParticleIdx].AABB(), b.Dim)
			if b.IsUpper {
				b.Value = hi
			} else {
				b.Value = lo
			}
		}
		insertionSortBoundaries(bounds, particles, s.possible)
	}
}

func axisRange(box AABB, dim int) (lo, hi float64) {
	switch dim {
	case 0:
		return box.Min.X, box.Max.X
	case 1:
		return box.Min.Y, box.Max.Y
	default:
		return box.Min.Z, box.Max.Z
	}
}

// insertionSortBoundaries sorts bounds in place, updating possible at
// every adjacent transposition that crosses a lower boundary past an
// upper one (or vice versa).
func insertionSortBoundaries(bounds []*Boundary, particles []*Particle, possible map[int64]Pair) {
	for i := 1; i < len(bounds); i++ {
		for j := i; j > 0 && bounds[j-1].Value > bounds[j].Value; j-- {
			// bounds[j] is the element being carried leftward by this
			// swap (its index decreases, so it "sinks"); bounds[j-1] is
			// displaced rightward ("rises").
			sinking, rising := bounds[j], bounds[j-1]
			switch {
			case sinking.IsUpper && !rising.IsUpper:
				// an upper boundary sinks past a lower: the pair
				// stopped overlapping on this axis.
				delete(possible, pairKey(sinking.ParticleIdx, rising.ParticleIdx))
			case !sinking.IsUpper && rising.IsUpper:
				// a lower boundary enters a gap an upper just left:
				// the pair may have started overlapping.
				a, b := particles[sinking.ParticleIdx], particles[rising.ParticleIdx]
				if a.AABB().Overlaps(b.AABB()) {
					possible[pairKey(sinking.ParticleIdx, rising.ParticleIdx)] = orderedPair(sinking.ParticleIdx, rising.ParticleIdx)
				}
			}
			bounds[j-1], bounds[j] = bounds[j], bounds[j-1]
		}
	}
}
