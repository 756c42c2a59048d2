// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

import (
	"testing"
	"time"

	"github.com/sock-lobster/CollisionDetection/config"
	"github.com/sock-lobster/CollisionDetection/math/lin"
	"github.com/sock-lobster/CollisionDetection/physics"
)

// TestHeadOnCollisionProducesOneCollision matches end-to-end scenario 1:
// two equal particles placed head-on must collide exactly once.
func TestHeadOnCollisionProducesOneCollision(t *testing.T) {
	cfg := config.Default(config.Flat2D, 2)
	s, err := New(cfg, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Override the randomly-spawned particles with a deterministic
	// head-on setup: same radius/mass, closing slowly along x so that,
	// after they swap velocities and separate, 200 ticks isn't enough
	// time for either to bounce off a wall and meet again.
	s.particles = []*physics.Particle{
		physics.NewParticle(0, 6, 36, lin.V3{X: 290, Y: 300, Z: 0}, lin.V3{X: 1, Y: 0, Z: 0}),
		physics.NewParticle(1, 6, 36, lin.V3{X: 310, Y: 300, Z: 0}, lin.V3{X: -1, Y: 0, Z: 0}),
	}

	for i := 0; i < 200; i++ {
		s.Step()
	}

	events := s.Collisions().DequeueBefore(s.Timestep() + 1)
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 collision, got %d", len(events))
	}
	if events[0].A.Vel.X >= 0 || events[0].B.Vel.X <= 0 {
		t.Errorf("expected velocities to exchange sign along the normal, got a=%v b=%v", events[0].A.Vel, events[0].B.Vel)
	}
}

// TestStrategiesAgreeOnCollisionCount matches end-to-end scenario 2:
// for identical seed/N/size/timestep budget, every broad-phase
// strategy must report the same number of collisions, since the true
// overlapping pairs don't depend on how candidates were found.
func TestStrategiesAgreeOnCollisionCount(t *testing.T) {
	const n, ticks = 30, 400
	var counts [6]int
	for alg := 0; alg < 6; alg++ {
		cfg := config.Default(config.Flat2D, n)
		cfg.Seed = 42
		s, err := New(cfg, alg)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < ticks; i++ {
			s.Step()
		}
		counts[alg] = s.Collisions().Len()
	}
	for alg := 1; alg < 6; alg++ {
		if counts[alg] != counts[0] {
			t.Errorf("alg %d produced %d collisions, alg 0 produced %d", alg, counts[alg], counts[0])
		}
	}
}

// TestOrbitalSimulationHoldsDistance matches end-to-end scenario 4.
func TestOrbitalSimulationHoldsDistance(t *testing.T) {
	cfg := config.Default(config.Orbital, 1)
	// G*M and Width (the shell's nominal base radius) chosen so the
	// per-tick angular step stays small enough for velocity-Verlet to
	// trace a near-circular orbit at this tick granularity.
	cfg.Width, cfg.Height, cfg.Depth = 1000, 1000, 1000
	cfg.G = 1
	cfg.CentralMass = 1e6
	s, err := New(cfg, 0)
	if err != nil {
		t.Fatal(err)
	}
	initial := s.particles[0].Pos.Len()
	for i := 0; i < 5000; i++ {
		s.Step()
	}
	final := s.particles[0].Pos.Len()
	if rel := (final - initial) / initial; rel > 0.05 || rel < -0.05 {
		t.Errorf("orbit distance drifted more than 5%%: initial=%g final=%g", initial, final)
	}
	if _, ok := s.CenterOfGravity(); !ok {
		t.Error("expected a center of gravity in orbital mode")
	}
}

// TestBackpressureBlocksProducer matches end-to-end scenario 6.
func TestBackpressureBlocksProducer(t *testing.T) {
	cfg := config.Default(config.Flat2D, 5)
	cfg.MaxQueueSize = 10
	cfg.AlgSpeedScale = 1 // push every tick so the queue fills fast
	s, err := New(cfg, 0)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if sz := s.PositionQueue().Size(); sz > cfg.MaxQueueSize {
		t.Errorf("position queue exceeded MaxQueueSize: %d", sz)
	}

	s.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not unblock the producer")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default(config.Flat2D, 0)
	if _, err := New(cfg, 0); err == nil {
		t.Error("expected an error for NumParticles below MinNumParticles")
	}
}
