// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

import (
	"github.com/sock-lobster/CollisionDetection/math/lin"
)

// CenterID is the reserved particle id for the fixed orbital center of
// gravity. It never appears as a regular spawned particle's id.
const CenterID = -1

// Particle is a single spherical body tracked by the simulation.
// Radius and Mass never change after construction; ID is stable for
// the lifetime of the particle. Pos/Vel/Accel are mutated once per
// tick by a Physics implementation's Integrate.
//
// Unlike the rigid bodies this was ported from, a Particle carries no
// orientation and no back-pointers into the position queue: the
// per-particle queue bookkeeping lives entirely inside the queue
// package, keyed by ID, which avoids the reference cycle the original
// head/tail pointers created (see spec design notes).
type Particle struct {
	ID     int
	Radius float64
	Mass   float64

	Pos   lin.V3
	Vel   lin.V3
	Accel lin.V3

	aabb AABB
}

// NewParticle constructs a particle and immediately refreshes its AABB
// so it is usable by broad-phase strategies before the first tick.
func NewParticle(id int, radius, mass float64, pos, vel lin.V3) *Particle {
	p := &Particle{ID: id, Radius: radius, Mass: mass, Pos: pos, Vel: vel}
	p.RefreshAABB()
	return p
}

// RefreshAABB recomputes the particle's cached bounding box from its
// current position and radius. Between calls the AABB may lag the
// particle, as permitted by spec §3.
func (p *Particle) RefreshAABB() {
	p.aabb = AABB{
		Min: lin.V3{X: p.Pos.X - p.Radius, Y: p.Pos.Y - p.Radius, Z: p.Pos.Z - p.Radius},
		Max: lin.V3{X: p.Pos.X + p.Radius, Y: p.Pos.Y + p.Radius, Z: p.Pos.Z + p.Radius},
	}
}

// AABB returns the particle's last-refreshed bounding box.
func (p *Particle) AABB() AABB { return p.aabb }

// AABB is an axis aligned bounding box. Refreshed explicitly by
// Particle.RefreshAABB; between refreshes it may lag the particle.
type AABB struct {
	Min lin.V3
	Max lin.V3
}

// Overlaps returns true if AABBs a and b intersect on every axis.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Position is an immutable, timestamped snapshot of a particle's
// location, the payload carried by the position queue.
type Position struct {
	Pos      lin.V3
	Timestep int
}
