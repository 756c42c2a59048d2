// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

import (
	"fmt"
	"math"

	"github.com/sock-lobster/CollisionDetection/config"
	"github.com/sock-lobster/CollisionDetection/math/lin"
	"github.com/sock-lobster/CollisionDetection/physics"
	"github.com/sock-lobster/CollisionDetection/rng"
)

// maxSpawnAttempts bounds the rejection-sampling loop below; a
// reasonable Config never needs anywhere near this many retries to
// place a non-overlapping particle.
const maxSpawnAttempts = 10000

// spawn places cfg.NumParticles particles with no initial overlap
// between each other or the orbital center (if any).
func spawn(cfg config.Config, r *rng.Rng, center *physics.Particle) ([]*physics.Particle, error) {
	particles := make([]*physics.Particle, 0, cfg.NumParticles)
	for id := 0; id < cfg.NumParticles; id++ {
		p, err := spawnOne(cfg, r, id, center, particles)
		if err != nil {
			return nil, err
		}
		particles = append(particles, p)
	}
	return particles, nil
}

// spawnOne draws radius, mass, position, and velocity, resampling
// until the candidate overlaps nothing already placed.
func spawnOne(cfg config.Config, r *rng.Rng, id int, center *physics.Particle, existing []*physics.Particle) (*physics.Particle, error) {
	for attempt := 0; attempt < maxSpawnAttempts; attempt++ {
		radius := r.Uniform(cfg.RadiusMin, cfg.RadiusMax)
		mass := radius * radius

		var pos, vel lin.V3
		if cfg.Mode == config.Orbital {
			pos, vel = spawnOrbital(cfg, r, center, radius)
		} else {
			pos, vel = spawnFlat(cfg, r, radius)
		}

		candidate := physics.NewParticle(id, radius, mass, pos, vel)
		if !overlapsAny(candidate, center, existing) {
			return candidate, nil
		}
	}
	return nil, fmt.Errorf("could not place particle %d without overlap after %d attempts", id, maxSpawnAttempts)
}

func spawnFlat(cfg config.Config, r *rng.Rng, radius float64) (pos, vel lin.V3) {
	pos.X = r.Uniform(radius, cfg.Width-radius)
	pos.Y = r.Uniform(radius, cfg.Height-radius)
	vel.X = r.SignedUniform(cfg.SpeedMin, cfg.SpeedMax)
	vel.Y = r.SignedUniform(cfg.SpeedMin, cfg.SpeedMax)
	if cfg.Mode == config.Flat3D {
		pos.Z = r.Uniform(radius, cfg.Depth-radius)
		vel.Z = r.SignedUniform(cfg.SpeedMin, cfg.SpeedMax)
	}
	return pos, vel
}

// spawnOrbital samples a shell radius of gamma(1,2)+cfg.Width (the
// configured Width doubling as the shell's nominal base radius in
// orbital mode) around center, then assigns a velocity orthogonal to
// the radius vector sized for a near-circular orbit.
func spawnOrbital(cfg config.Config, r *rng.Rng, center *physics.Particle, radius float64) (pos, vel lin.V3) {
	shellRadius := r.Gamma(1, 2) + cfg.Width

	dir := lin.V3{X: r.SignedUniform(0, 1), Y: r.SignedUniform(0, 1), Z: r.SignedUniform(0, 1)}
	if dir.AeqZ() {
		dir = lin.V3{X: 1}
	}
	dir.Unit()

	offset := lin.V3{}
	offset.Scale(&dir, shellRadius)
	pos.Add(&center.Pos, &offset)

	arbitrary := lin.V3{X: 0, Y: 0, Z: 1}
	if math.Abs(dir.Dot(&arbitrary)) > 0.99 {
		arbitrary = lin.V3{X: 0, Y: 1, Z: 0}
	}
	orth := lin.V3{}
	orth.Cross(&dir, &arbitrary)
	orth.Unit()

	speed := math.Sqrt(cfg.G * center.Mass / shellRadius)
	vel.Scale(&orth, speed)
	return pos, vel
}

func overlapsAny(p, center *physics.Particle, existing []*physics.Particle) bool {
	if center != nil && physics.Overlaps(p, center) {
		return true
	}
	for _, other := range existing {
		if physics.Overlaps(p, other) {
			return true
		}
	}
	return false
}
