// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sim

import (
	"time"

	"github.com/sock-lobster/CollisionDetection/config"
)

// Report is the one-line benchmark result: particle count, wall-clock
// seconds, narrow-phase comparisons, and collisions produced.
type Report struct {
	NumParticles int
	Seconds      float64
	Checks       int
	Collisions   int
}

// RunHarness builds a Simulation for cfg/alg and drives it for
// numTimesteps producer ticks with no consumer draining either queue,
// matching the benchmark harness's no-consumer, zero-lookahead mode.
// cfg.MaxQueueSize must already be sized so the producer never blocks
// (see config.Default's QueueSizeMultiplier).
func RunHarness(cfg config.Config, alg, numTimesteps int) (Report, error) {
	s, err := New(cfg, alg)
	if err != nil {
		return Report{}, err
	}

	start := time.Now()
	for i := 0; i < numTimesteps; i++ {
		s.Step()
	}
	elapsed := time.Since(start).Seconds()

	return Report{
		NumParticles: len(s.particles),
		Seconds:      elapsed,
		Checks:       s.Checks(),
		Collisions:   s.Collisions().Len(),
	}, nil
}
