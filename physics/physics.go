// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics advances particles one tick at a time and resolves
// elastic collisions between them. It replaces the PBD rigid-body
// solver this was ported from (gjk/epa/contact manifolds) with the
// closed-form sphere-sphere math the simulation actually needs: two
// Physics variants (flat wall-bounded, orbital velocity-Verlet) share
// one overlap test and one resolution step.
package physics

import (
	"log/slog"
	"math"

	"github.com/sock-lobster/CollisionDetection/math/lin"
)

// Physics integrates particle motion. The two variants differ only in
// how they move a particle and what potential energy means for it;
// overlap testing and collision resolution are identical across both
// and live as package functions below.
type Physics interface {
	// Integrate advances p by one tick in place, refreshing its AABB.
	Integrate(p *Particle)
	// PotentialEnergy returns p's contribution to system PE.
	PotentialEnergy(p *Particle) float64
}

// KineticEnergy is the same formula for every Physics variant.
func KineticEnergy(p *Particle) float64 {
	return 0.5 * p.Mass * p.Vel.Dot(&p.Vel)
}

// ---------------------------------------------------------------------
// Flat (2D/3D, wall-reflecting) physics.

// Flat moves particles in a straight line inside a [0,W]x[0,H]x[0,D]
// box, reflecting velocity off any wall a particle's surface reaches.
// Dims controls whether the Z wall is enforced; Depth is ignored for a
// 2D arena.
type Flat struct {
	Dims   int // 2 or 3
	Width  float64
	Height float64
	Depth  float64
}

func (f *Flat) Integrate(p *Particle) {
	p.Pos.Add(&p.Pos, &p.Vel)
	reflect(&p.Pos.X, &p.Vel.X, p.Radius, f.Width)
	reflect(&p.Pos.Y, &p.Vel.Y, p.Radius, f.Height)
	if f.Dims == 3 {
		reflect(&p.Pos.Z, &p.Vel.Z, p.Radius, f.Depth)
	}
	p.RefreshAABB()
}

// reflect checks one dimension of a particle's new position against
// the walls at 0 and size, backing the surface up to the wall and
// flipping velocity when it's been exceeded.
func reflect(pos, vel *float64, radius, size float64) {
	switch {
	case *pos+radius > size:
		*pos -= 2 * ((*pos + radius) - size)
		*vel = -*vel
	case *pos-radius < 0:
		*pos -= 2 * ((*pos - radius) - 0)
		*vel = -*vel
	}
}

// PotentialEnergy is always zero in the flat arenas: walls do no work.
func (f *Flat) PotentialEnergy(p *Particle) float64 { return 0 }

// ---------------------------------------------------------------------
// Orbital (3D, velocity-Verlet around a fixed center of mass) physics.

// Orbital integrates particles under the gravity of a fixed, immobile
// center particle (id CenterID) using velocity-Verlet, the same
// predictor-corrector shape the PBD solver this was ported from used
// for its constraint projection step.
type Orbital struct {
	Center *Particle
	G      float64
}

func (o *Orbital) Integrate(p *Particle) {
	if p.ID == CenterID {
		return
	}
	aOld := p.Accel

	half := lin.V3{}
	half.Scale(&aOld, 0.5)
	delta := lin.V3{}
	delta.Add(&p.Vel, &half)
	p.Pos.Add(&p.Pos, &delta)

	r := lin.V3{}
	r.Sub(&p.Pos, &o.Center.Pos)
	dist := r.Len()

	var aNew lin.V3
	if dist == 0 {
		slog.Warn("orbital radius is zero, clamping acceleration to zero", "particle", p.ID)
	} else {
		coeff := -(o.G * o.Center.Mass) / (dist * dist * dist)
		aNew.Scale(&r, coeff)
	}

	sum := lin.V3{}
	sum.Add(&aNew, &aOld)
	sum.Scale(&sum, 0.5)
	p.Vel.Add(&p.Vel, &sum)

	p.Accel = aNew
	p.RefreshAABB()
}

// PotentialEnergy is the standard gravitational well, negative and
// zero at infinity; zero itself if the center coincides with p.
func (o *Orbital) PotentialEnergy(p *Particle) float64 {
	dist := p.Pos.Dist(&o.Center.Pos)
	if dist == 0 {
		return 0
	}
	return -o.G * o.Center.Mass * p.Mass / dist
}

// ---------------------------------------------------------------------
// Overlap test and collision resolution, shared by every variant.

// Overlaps reports whether particles a and b's spheres intersect.
func Overlaps(a, b *Particle) bool {
	rsum := a.Radius + b.Radius
	return a.Pos.DistSqr(&b.Pos) < rsum*rsum
}

// CollisionEvent records an overlap discovered at Timestep and the
// continuous-time backup distance needed to place A and B tangent.
type CollisionEvent struct {
	A, B        *Particle
	Timestep    int
	OverlapTime float64
}

// NewCollisionEvent computes the overlap_time for a pair already known
// to overlap, by solving the triangle formed by the relative-velocity
// and relative-position vectors. Degenerate triangles (zero relative
// velocity or coincident centers) clamp to a zero overlap time rather
// than dividing by zero or feeding an out-of-domain value to acos/asin.
func NewCollisionEvent(a, b *Particle, timestep int) CollisionEvent {
	dv := lin.V3{}
	dv.Sub(&a.Vel, &b.Vel)
	dp := lin.V3{}
	dp.Sub(&b.Pos, &a.Pos)

	dvLen, dpLen := dv.Len(), dp.Len()
	if dvLen == 0 || dpLen == 0 {
		return CollisionEvent{A: a, B: b, Timestep: timestep, OverlapTime: 0}
	}

	cosC := lin.Clamp(dv.Dot(&dp)/(dvLen*dpLen), -1, 1)
	angleC := math.Pi - math.Acos(cosC)

	rsum := a.Radius + b.Radius
	sinA := lin.Clamp(dpLen*math.Sin(angleC)/rsum, -1, 1)
	angleA := math.Asin(sinA)
	angleB := math.Pi - angleA - angleC

	d := math.Sqrt(dpLen*dpLen + rsum*rsum - 2*dpLen*rsum*math.Cos(angleB))
	return CollisionEvent{A: a, B: b, Timestep: timestep, OverlapTime: d / dvLen}
}

// Resolve applies the elastic collision impulse described by ev,
// backing both particles out to tangent first. It returns false,
// resolving nothing, if the pair is no longer overlapping by the time
// its event reaches the front of the sorted resolution order (the
// other pair resolved first may have already separated them).
func Resolve(ev CollisionEvent) bool {
	a, b := ev.A, ev.B
	if !Overlaps(a, b) {
		return false
	}

	backA := lin.V3{}
	backA.Scale(&a.Vel, ev.OverlapTime)
	a.Pos.Sub(&a.Pos, &backA)

	backB := lin.V3{}
	backB.Scale(&b.Vel, ev.OverlapTime)
	b.Pos.Sub(&b.Pos, &backB)

	n := lin.V3{}
	n.Sub(&a.Pos, &b.Pos)
	n.Scale(&n, 1/(a.Radius+b.Radius))

	aN, bN := n.Dot(&a.Vel), n.Dot(&b.Vel)

	aNv := lin.V3{}
	aNv.Scale(&n, aN)
	aT := lin.V3{}
	aT.Sub(&a.Vel, &aNv)

	bNv := lin.V3{}
	bNv.Scale(&n, bN)
	bT := lin.V3{}
	bT.Sub(&b.Vel, &bNv)

	massSum := a.Mass + b.Mass
	aNPrime := ((a.Mass-b.Mass)*aN + 2*b.Mass*bN) / massSum
	bNPrime := ((b.Mass-a.Mass)*bN + 2*a.Mass*aN) / massSum

	aVelPrime := lin.V3{}
	aVelPrime.Scale(&n, aNPrime)
	aVelPrime.Add(&aVelPrime, &aT)

	bVelPrime := lin.V3{}
	bVelPrime.Scale(&n, bNPrime)
	bVelPrime.Add(&bVelPrime, &bT)

	a.Vel = aVelPrime
	b.Vel = bVelPrime

	aAdvance := lin.V3{}
	aAdvance.Scale(&a.Vel, ev.OverlapTime)
	a.Pos.Add(&a.Pos, &aAdvance)

	bAdvance := lin.V3{}
	bAdvance.Scale(&b.Vel, ev.OverlapTime)
	b.Pos.Add(&b.Pos, &bAdvance)

	a.RefreshAABB()
	b.RefreshAABB()
	return true
}
