// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"math"
	"testing"

	"github.com/sock-lobster/CollisionDetection/math/lin"
)

func particleAt(id int, x, y, z, vx, vy, vz float64) *Particle {
	return NewParticle(id, 4, 16, lin.V3{X: x, Y: y, Z: z}, lin.V3{X: vx, Y: vy, Z: vz})
}

func TestOverlaps(t *testing.T) {
	a := particleAt(0, 0, 0, 0, 0, 0, 0)
	b := particleAt(1, 7, 0, 0, 0, 0, 0)
	if !Overlaps(a, b) {
		t.Error("spheres of radius 4 centered 7 apart should overlap")
	}
	b.Pos.X = 9
	b.RefreshAABB()
	if Overlaps(a, b) {
		t.Error("spheres of radius 4 centered 9 apart should not overlap")
	}
}

// TestHeadOnCollisionSwapsVelocities matches scenario 1 of the
// end-to-end suite: two equal-mass particles approaching head-on along
// x must exchange their velocities after resolution.
func TestHeadOnCollisionSwapsVelocities(t *testing.T) {
	a := particleAt(0, 0, 0, 0, 5, 0, 0)
	b := particleAt(1, 7, 0, 0, -5, 0, 0)
	if !Overlaps(a, b) {
		t.Fatal("setup expects an overlap")
	}
	ev := NewCollisionEvent(a, b, 1)
	if !Resolve(ev) {
		t.Fatal("expected resolution to apply")
	}
	if !lin.Aeq(a.Vel.X, -5) || !lin.Aeq(b.Vel.X, 5) {
		t.Errorf("equal masses should swap velocities along the normal, got a=%v b=%v", a.Vel, b.Vel)
	}
}

// TestResolveSkipsWhenNoLongerOverlapping covers the narrow-phase
// ordering edge case: if an earlier-resolved pair already separated
// these two, Resolve must be a no-op.
func TestResolveSkipsWhenNoLongerOverlapping(t *testing.T) {
	a := particleAt(0, 0, 0, 0, 0, 0, 0)
	b := particleAt(1, 20, 0, 0, 0, 0, 0)
	ev := CollisionEvent{A: a, B: b, Timestep: 1, OverlapTime: 0.01}
	if Resolve(ev) {
		t.Error("Resolve should skip a pair that is not overlapping")
	}
}

// TestResolveSymmetric checks §8's symmetry property: swapping a pair
// ordering in the event does not change the outcome.
func TestResolveSymmetric(t *testing.T) {
	a1 := particleAt(0, 0, 0, 0, 3, 1, 0)
	b1 := particleAt(1, 6, 1, 0, -2, 0, 0)
	ev1 := NewCollisionEvent(a1, b1, 5)
	Resolve(ev1)

	b2 := particleAt(1, 6, 1, 0, -2, 0, 0)
	a2 := particleAt(0, 0, 0, 0, 3, 1, 0)
	ev2 := NewCollisionEvent(b2, a2, 5)
	Resolve(ev2)

	if !a1.Vel.Aeq(&a2.Vel) || !b1.Vel.Aeq(&b2.Vel) {
		t.Errorf("swapped event ordering changed outcome: a=%v/%v b=%v/%v", a1.Vel, a2.Vel, b1.Vel, b2.Vel)
	}
}

// TestElasticCollisionConservesKineticEnergy covers the §8 energy
// sanity property for a fully elastic collision between unequal masses.
func TestElasticCollisionConservesKineticEnergy(t *testing.T) {
	a := NewParticle(0, 4, 10, lin.V3{X: 0, Y: 0, Z: 0}, lin.V3{X: 4, Y: 0, Z: 0})
	b := NewParticle(1, 4, 25, lin.V3{X: 7, Y: 0, Z: 0}, lin.V3{X: -1, Y: 0, Z: 0})
	before := KineticEnergy(a) + KineticEnergy(b)

	ev := NewCollisionEvent(a, b, 0)
	if !Resolve(ev) {
		t.Fatal("expected overlap")
	}
	after := KineticEnergy(a) + KineticEnergy(b)

	if math.Abs(after-before)/before > 1e-9 {
		t.Errorf("kinetic energy not conserved: before=%g after=%g", before, after)
	}
}

func TestFlatWallReflection(t *testing.T) {
	f := &Flat{Dims: 2, Width: 100, Height: 100}
	p := particleAt(0, 96, 50, 0, 10, 0, 0)
	f.Integrate(p)
	if p.Vel.X >= 0 {
		t.Errorf("expected velocity to flip sign off the upper wall, got %v", p.Vel.X)
	}
	if p.Pos.X+p.Radius > f.Width+1e-9 {
		t.Errorf("reflected particle surface should not exceed the wall, pos=%v", p.Pos.X)
	}
}

func TestOrbitalIntegrateStableDistance(t *testing.T) {
	// G*M and r0 chosen so the per-tick angular step (v/r0) is small
	// enough for velocity-Verlet to trace a near-circular orbit; too
	// coarse a step relative to r0 would show spurious drift that
	// reflects the integrator's resolution rather than a real bug.
	center := &Particle{ID: CenterID, Mass: 1e6}
	o := &Orbital{Center: center, G: 1}
	r0 := 1000.0
	speed := math.Sqrt(o.G * center.Mass / r0)
	p := NewParticle(0, 2, 1, lin.V3{X: r0, Y: 0, Z: 0}, lin.V3{X: 0, Y: speed, Z: 0})
	for i := 0; i < 2000; i++ {
		o.Integrate(p)
	}
	dist := p.Pos.Dist(&center.Pos)
	if math.Abs(dist-r0)/r0 > 0.05 {
		t.Errorf("orbit drifted more than 5%%: start=%g end=%g", r0, dist)
	}
}

func TestBruteForcePairCount(t *testing.T) {
	particles := make([]*Particle, 5)
	for i := range particles {
		particles[i] = particleAt(i, float64(i)*20, 0, 0, 0, 0, 0)
	}
	pairs := (BruteForce{}).CandidatePairs(particles)
	want := 5 * 4 / 2
	if len(pairs) != want {
		t.Errorf("brute force on 5 particles should report %d pairs, got %d", want, len(pairs))
	}
}

func TestSweepSimpleMatchesBruteForceOnOverlaps(t *testing.T) {
	particles := []*Particle{
		particleAt(0, 0, 0, 0, 0, 0, 0),
		particleAt(1, 5, 0, 0, 0, 0, 0),
		particleAt(2, 50, 0, 0, 0, 0, 0),
	}
	bfPairs := overlappingPairs((BruteForce{}).CandidatePairs(particles), particles)
	swPairs := overlappingPairs((SweepSimple{}).CandidatePairs(particles), particles)
	if len(bfPairs) != len(swPairs) {
		t.Errorf("sweep-simple disagreed with brute force: bf=%d sweep=%d", len(bfPairs), len(swPairs))
	}
}

func overlappingPairs(pairs []Pair, particles []*Particle) map[int64]bool {
	out := map[int64]bool{}
	for _, p := range pairs {
		if Overlaps(particles[p.I], particles[p.J]) {
			out[pairKey(p.I, p.J)] = true
		}
	}
	return out
}
