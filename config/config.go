// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config holds the single immutable configuration struct that
// is threaded through the simulation core. The original engine this
// was ported from exposed its tunables as process-wide mutable
// globals; here they are collected once, by value, and handed to the
// pieces (physics, broad-phase strategies, queues) that need them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects which physical arena the simulation runs in.
type Mode uint8

const (
	Flat2D Mode = iota
	Flat3D
	Orbital
)

// Tunable defaults shared by every simulation run, matching the
// original engine's ALG_SPEED_SCALE/MIN_FRAMERATE/etc. constants.
const (
	AlgSpeedScale        = 50
	MinFramerate         = 15
	MaxFramerate         = 510
	QueueSizeMultiplier  = 1000
	MinNumParticles      = 1
	MaxNumParticles      = 20000
	MaxParticlesPerLevel = 5
	DefaultG             = 6.674e-5 // tuned for stable velocity-Verlet orbits, not SI.
)

// Config is the immutable description of one simulation run. It is
// built once, normally by the CLI or a scenario file, and is never
// mutated afterwards; every component that needs a tunable reads it
// from its own copy of this struct.
type Config struct {
	Mode Mode `yaml:"mode"`

	// Width, Height, Depth describe the bounding box. Depth is ignored
	// in Flat2D mode. In Orbital mode they describe the starting shell
	// bounds used for particle spawning, not walls.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Depth  float64 `yaml:"depth"`

	NumParticles int   `yaml:"numParticles"`
	Seed         int64 `yaml:"seed"`

	RadiusMin float64 `yaml:"radiusMin"`
	RadiusMax float64 `yaml:"radiusMax"`
	SpeedMin  float64 `yaml:"speedMin"`
	SpeedMax  float64 `yaml:"speedMax"`

	// CentralMass and G only matter in Orbital mode.
	CentralMass float64 `yaml:"centralMass"`
	G           float64 `yaml:"g"`

	MaxQueueSize         int `yaml:"maxQueueSize"`
	AlgSpeedScale        int `yaml:"algSpeedScale"`
	LookaheadTimesteps   int `yaml:"lookaheadTimesteps"`
	MaxParticlesPerLevel int `yaml:"maxParticlesPerLevel"`

	// TimestepLimit stops Simulation.Run once the tick count reaches
	// TimestepLimit + LookaheadTimesteps*AlgSpeedScale. Zero means
	// run until Stop is called.
	TimestepLimit int `yaml:"timestepLimit"`
}

// Default returns a Config with the tunables from §6 of the spec and
// a queue sized for n particles running forever (bounded, not
// unbounded: backpressure is still the normal flow-control path).
func Default(mode Mode, n int) Config {
	return Config{
		Mode:                 mode,
		Width:                600,
		Height:               600,
		Depth:                600,
		NumParticles:         n,
		Seed:                 1,
		RadiusMin:            4,
		RadiusMax:            12,
		SpeedMin:             10,
		SpeedMax:             80,
		CentralMass:          5e9,
		G:                    DefaultG,
		MaxQueueSize:         n * QueueSizeMultiplier,
		AlgSpeedScale:        AlgSpeedScale,
		LookaheadTimesteps:   2,
		MaxParticlesPerLevel: MaxParticlesPerLevel,
	}
}

// Validate checks the invariants the CLI and any scenario loader must
// enforce before a Simulation is constructed: fail fast with a single
// message, do not start the simulation.
func (c Config) Validate() error {
	if c.NumParticles < MinNumParticles || c.NumParticles > MaxNumParticles {
		return fmt.Errorf("numParticles %d outside [%d, %d]", c.NumParticles, MinNumParticles, MaxNumParticles)
	}
	if c.RadiusMin <= 0 || c.RadiusMax < c.RadiusMin {
		return fmt.Errorf("invalid radius range [%g, %g]", c.RadiusMin, c.RadiusMax)
	}
	if c.Width <= 0 || c.Height <= 0 || (c.Mode != Flat2D && c.Depth <= 0) {
		return fmt.Errorf("invalid bounds %gx%gx%g", c.Width, c.Height, c.Depth)
	}
	return nil
}

// Load reads a scenario Config from a YAML file, starting from
// Default(Flat2D, 0) so unset fields keep sane values.
func Load(path string) (Config, error) {
	cfg := Default(Flat2D, 0)
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.MaxQueueSize == 0 {
		cfg.MaxQueueSize = cfg.NumParticles * QueueSizeMultiplier
	}
	return cfg, nil
}
