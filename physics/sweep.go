// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// SweepSimple rebuilds its sorted-by-x active list every tick. Good
// when particle order is nearly sorted already (insertion sort is
// near-linear on that input), but it throws away all state between
// ticks, unlike SweepMulti below.
type SweepSimple struct{}

func (SweepSimple) CandidatePairs(particles []*Particle) []Pair {
	n := len(particles)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	insertionSortByMinX(order, particles)

	var active []int
	var pairs []Pair
	for _, idx := range order {
		box := particles[idx].AABB()

		kept := active[:0]
		for _, a := range active {
			if particles[a].AABB().Max.X >= box.Min.X {
				kept = append(kept, a)
			}
		}
		active = kept

		for _, a := range active {
			pairs = append(pairs, orderedPair(a, idx))
		}
		active = append(active, idx)
	}
	return pairs
}

func insertionSortByMinX(order []int, particles []*Particle) {
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && particles[order[j-1]].AABB().Min.X > particles[order[j]].AABB().Min.X; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}
}
