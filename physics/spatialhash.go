// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "math"

// SpatialHash buckets particles by the grid cells their AABB corners
// fall in, using a hash table rather than a dense array (the
// companion SpatialIndex strategy). CellSize should be roughly
// 5x the largest particle radius in play.
type SpatialHash struct {
	Dims     int
	CellSize float64
	Capacity int // defaults to 10*len(particles)+1 when <= 0
}

func (s *SpatialHash) CandidatePairs(particles []*Particle) []Pair {
	n := len(particles)
	if n == 0 {
		return nil
	}
	capacity := s.Capacity
	if capacity <= 0 {
		capacity = 10*n + 1
	}

	buckets := make(map[int][]int)
	seen := make(map[int64]bool)
	var pairs []Pair

	for idx, p := range particles {
		visitedSlots := make(map[int]bool)
		for _, c := range hashCorners(p.AABB(), s.Dims) {
			cx := cellCoord(c[0], s.CellSize)
			cy := cellCoord(c[1], s.CellSize)
			cz := cellCoord(c[2], s.CellSize)
			slot := hashCell(cx, cy, cz, capacity)
			if visitedSlots[slot] {
				continue
			}
			visitedSlots[slot] = true
			for _, other := range buckets[slot] {
				key := pairKey(idx, other)
				if !seen[key] {
					seen[key] = true
					pairs = append(pairs, orderedPair(idx, other))
				}
			}
			buckets[slot] = append(buckets[slot], idx)
		}
	}
	return pairs
}

// hashCorners returns the 4 (2D) or 8 (3D) corners of an AABB.
func hashCorners(box AABB, dims int) [][3]float64 {
	xs := [2]float64{box.Min.X, box.Max.X}
	ys := [2]float64{box.Min.Y, box.Max.Y}
	zs := []float64{box.Min.Z}
	if dims == 3 {
		zs = []float64{box.Min.Z, box.Max.Z}
	}
	out := make([][3]float64, 0, 2*2*len(zs))
	for _, z := range zs {
		for _, y := range ys {
			for _, x := range xs {
				out = append(out, [3]float64{x, y, z})
			}
		}
	}
	return out
}

func cellCoord(v, cellSize float64) int { return int(math.Floor(v / cellSize)) }

// hashCell mixes integer cell coordinates into a bucket slot.
func hashCell(x, y, z, capacity int) int {
	h := x*73856093 ^ y*19349663 ^ z*83492791
	h %= capacity
	if h < 0 {
		h += capacity
	}
	return h
}
