// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import "math"

// SpatialIndex uses the same cell structure as SpatialHash but stores
// buckets in a dense vector indexed directly by cell coordinates
// instead of a hash table, trading memory for eliminating hash
// collisions across unrelated cells.
type SpatialIndex struct {
	Dims                 int
	CellSize             float64
	Width, Height, Depth float64
}

func (s *SpatialIndex) CandidatePairs(particles []*Particle) []Pair {
	n := len(particles)
	if n == 0 {
		return nil
	}

	rowX := gridRows(s.Width, s.CellSize)
	rowY := gridRows(s.Height, s.CellSize)
	rowZ := 1
	if s.Dims == 3 {
		rowZ = gridRows(s.Depth, s.CellSize)
	}
	buckets := make([][]int, rowX*rowY*rowZ)

	seen := make(map[int64]bool)
	var pairs []Pair

	for idx, p := range particles {
		visited := make(map[int]bool)
		for _, c := range hashCorners(p.AABB(), s.Dims) {
			cx := clampRow(cellCoord(c[0], s.CellSize), rowX)
			cy := clampRow(cellCoord(c[1], s.CellSize), rowY)
			cz := clampRow(cellCoord(c[2], s.CellSize), rowZ)
			slot := cx*rowY*rowZ + cy*rowZ + cz
			if visited[slot] {
				continue
			}
			visited[slot] = true
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

func gridRows(size, cellSize float64) int {
	rows := int(math.Ceil(size / cellSize))
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clampRow keeps a cell coordinate within the dense grid's bounds; a
// particle whose AABB corner falls outside the nominal arena (a
// transient overshoot before wall reflection applies) still lands in
// a valid slot rather than indexing out of range.
func clampRow(v, rows int) int {
	if v < 0 {
		return 0
	}
	if v >= rows {
		return rows - 1
	}
	return v
}
