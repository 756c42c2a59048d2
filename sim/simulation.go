// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package sim drives the per-tick collision pipeline: integrate
// motion, enumerate broad-phase candidates, filter and resolve
// overlaps, then hand positions and collision events off to whatever
// consumer is draining the queues. Grounded on the teacher's
// simulation.go (physics-integration glue and its log/slog reporting
// style) and move/move.go's predict->broadphase->narrowphase->solve
// pipeline shape.
package sim

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sock-lobster/CollisionDetection/config"
	"github.com/sock-lobster/CollisionDetection/math/lin"
	"github.com/sock-lobster/CollisionDetection/physics"
	"github.com/sock-lobster/CollisionDetection/queue"
	"github.com/sock-lobster/CollisionDetection/rng"
)

// ParticleInfo is the read-only snapshot of a particle the consumer
// side is allowed to see: an id, radius, and mass never change after
// spawn, so these may be read without synchronization.
type ParticleInfo struct {
	ID     int
	Radius float64
	Mass   float64
}

// Simulation owns the particles, the chosen Physics variant and
// Strategy, and both queues; it drives the per-tick pipeline described
// by Step. A Simulation is built once by New and is not safe to share
// across more than one producer goroutine, though its read accessors
// (Particles, Timestep, SystemKE, SystemPE, Checks) may be called
// concurrently by a consumer.
type Simulation struct {
	cfg      config.Config
	phys     physics.Physics
	strategy physics.Strategy
	particles []*physics.Particle
	center   *physics.Particle // non-nil only in orbital mode

	posQueue  *queue.PositionQueue
	collQueue *queue.CollisionQueue

	running atomic.Bool
	timestep atomic.Int64
	checks   atomic.Int64

	statsMu            sync.Mutex
	systemKE, systemPE float64
}

// New validates cfg, builds the Physics variant and broad-phase
// Strategy for alg (0-5, see NewStrategy), and spawns cfg.NumParticles
// particles with no initial overlap.
func New(cfg config.Config, alg int) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var phys physics.Physics
	var center *physics.Particle
	switch cfg.Mode {
	case config.Flat2D:
		phys = &physics.Flat{Dims: 2, Width: cfg.Width, Height: cfg.Height}
	case config.Flat3D:
		phys = &physics.Flat{Dims: 3, Width: cfg.Width, Height: cfg.Height, Depth: cfg.Depth}
	case config.Orbital:
		center = physics.NewParticle(physics.CenterID, 0, cfg.CentralMass, lin.V3{}, lin.V3{})
		phys = &physics.Orbital{Center: center, G: cfg.G}
	}

	strategy := NewStrategy(alg, cfg)
	source := rng.New(cfg.Seed)
	particles, err := spawn(cfg, source, center)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:       cfg,
		phys:      phys,
		strategy:  strategy,
		particles: particles,
		center:    center,
		posQueue:  queue.NewPositionQueue(cfg.MaxQueueSize),
		collQueue: queue.NewCollisionQueue(),
	}
	return s, nil
}

// NewStrategy maps the benchmark harness's alg selector (0-5) to a
// broad-phase Strategy sized for cfg's arena.
func NewStrategy(alg int, cfg config.Config) physics.Strategy {
	dims := 2
	if cfg.Mode != config.Flat2D {
		dims = 3
	}
	bounds := physics.AABB{Max: lin.V3{X: cfg.Width, Y: cfg.Height, Z: cfg.Depth}}
	cellSize := 5 * cfg.RadiusMax

	switch alg {
	case 0:
		return physics.BruteForce{}
	case 1:
		return &physics.Quadtree{Dims: dims, Bounds: bounds, MaxPerLevel: cfg.MaxParticlesPerLevel}
	case 2:
		return &physics.SpatialHash{Dims: dims, CellSize: cellSize}
	case 3:
		return &physics.SpatialIndex{Dims: dims, CellSize: cellSize, Width: cfg.Width, Height: cfg.Height, Depth: cfg.Depth}
	case 4:
		return &physics.SweepSimple{}
	case 5:
		return &physics.SweepMulti{Dims: dims}
	default:
		slog.Warn("unknown broad-phase algorithm selector, defaulting to brute force", "alg", alg)
		return physics.BruteForce{}
	}
}

// Step advances the simulation exactly one tick: integrate, broad
// phase, narrow phase, sorted resolution, then publish positions (at
// most once every AlgSpeedScale ticks) and collision events.
func (s *Simulation) Step() {
	ts := s.timestep.Add(1)

	for _, p := range s.particles {
		s.phys.Integrate(p)
	}

	pairs := s.strategy.CandidatePairs(s.particles)
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].I != pairs[j].I {
			return pairs[i].I < pairs[j].I
		}
		return pairs[i].J < pairs[j].J
	})
	events := make([]physics.CollisionEvent, 0, len(pairs))
	for _, pr := range pairs {
		s.checks.Add(1)
		a, b := s.particles[pr.I], s.particles[pr.J]
		if physics.Overlaps(a, b) {
			events = append(events, physics.NewCollisionEvent(a, b, int(ts)))
		}
	}

	sort.Slice(events, func(i, j int) bool { return events[i].OverlapTime > events[j].OverlapTime })
	for _, ev := range events {
		physics.Resolve(ev)
	}

	if s.cfg.AlgSpeedScale > 0 && int(ts)%s.cfg.AlgSpeedScale == 0 {
		for _, p := range s.particles {
			s.posQueue.PushTail(p.ID, physics.Position{Pos: p.Pos, Timestep: int(ts)})
		}
	}
	for _, ev := range events {
		s.collQueue.Push(ev)
	}

	ke, pe := 0.0, 0.0
	for _, p := range s.particles {
		ke += physics.KineticEnergy(p)
		pe += s.phys.PotentialEnergy(p)
	}
	s.statsMu.Lock()
	s.systemKE, s.systemPE = ke, pe
	s.statsMu.Unlock()

	if s.cfg.TimestepLimit > 0 && s.cfg.TimestepLimit+s.cfg.LookaheadTimesteps*s.cfg.AlgSpeedScale <= int(ts) {
		s.Stop()
	}
}

// Run advances ticks as fast as backpressure allows until Stop is
// called or the configured timestep limit is reached.
func (s *Simulation) Run() {
	s.running.Store(true)
	for s.running.Load() {
		s.Step()
	}
}

// Stop flips the running flag and wakes any producer blocked on a full
// PositionQueue so Run's goroutine can exit.
func (s *Simulation) Stop() {
	s.running.Store(false)
	s.posQueue.Stop()
}

// Particles returns a read-only snapshot of every particle's
// immutable identity (id, radius, mass).
func (s *Simulation) Particles() []ParticleInfo {
	out := make([]ParticleInfo, len(s.particles))
	for i, p := range s.particles {
		out[i] = ParticleInfo{ID: p.ID, Radius: p.Radius, Mass: p.Mass}
	}
	return out
}

// CenterOfGravity returns the fixed central particle's info, or false
// if this simulation is not running in orbital mode.
func (s *Simulation) CenterOfGravity() (ParticleInfo, bool) {
	if s.center == nil {
		return ParticleInfo{}, false
	}
	return ParticleInfo{ID: s.center.ID, Radius: s.center.Radius, Mass: s.center.Mass}, true
}

// PositionQueue returns the bounded per-particle position queue.
func (s *Simulation) PositionQueue() *queue.PositionQueue { return s.posQueue }

// Collisions returns the collision event queue.
func (s *Simulation) Collisions() *queue.CollisionQueue { return s.collQueue }

// Timestep returns the current tick count.
func (s *Simulation) Timestep() int { return int(s.timestep.Load()) }

// Checks returns the narrow-phase comparison counter.
func (s *Simulation) Checks() int { return int(s.checks.Load()) }

// SystemKE returns the cached total kinetic energy as of the last tick.
func (s *Simulation) SystemKE() float64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.systemKE
}

// SystemPE returns the cached total potential energy as of the last tick.
func (s *Simulation) SystemPE() float64 {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.systemPE
}

// Physics returns the Physics variant this simulation was built with.
func (s *Simulation) Physics() physics.Physics { return s.phys }
