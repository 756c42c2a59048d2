// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command harness is the headless benchmark entry point: it builds a
// Simulation from six positional arguments, drives it with no
// consumer, and prints one line of counters to stdout.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sock-lobster/CollisionDetection/config"
	"github.com/sock-lobster/CollisionDetection/sim"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "harness dimensions alg winSize numParticles numTimesteps seed",
		Short: "Run a headless particle collision benchmark",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(6)(cmd, args); err != nil {
				cmd.PrintErrln(err)
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runHarness,
	}
}

func runHarness(cmd *cobra.Command, args []string) error {
	dims, err := strconv.Atoi(args[0])
	if err != nil || (dims != 2 && dims != 3) {
		cmd.PrintErrln("dimensions must be 2 or 3")
		return fmt.Errorf("invalid dimensions %q", args[0])
	}

	alg, err := strconv.Atoi(args[1])
	if err != nil || alg < 0 || alg > 5 {
		cmd.PrintErrln("alg must be an integer in [0,5]")
		return fmt.Errorf("invalid alg %q", args[1])
	}

	winSize, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		cmd.PrintErrln("winSize must be a number")
		return err
	}

	n, err := strconv.Atoi(args[3])
	if err != nil {
		cmd.PrintErrln("numParticles must be an integer")
		return err
	}

	numTimesteps, err := strconv.Atoi(args[4])
	if err != nil {
		cmd.PrintErrln("numTimesteps must be an integer")
		return err
	}

	seed, err := strconv.ParseInt(args[5], 10, 64)
	if err != nil {
		cmd.PrintErrln("seed must be an integer")
		return err
	}

	mode := config.Flat2D
	if dims == 3 {
		mode = config.Flat3D
	}

	cfg := config.Default(mode, n)
	cfg.Width, cfg.Height, cfg.Depth = winSize, winSize, winSize
	cfg.Seed = seed
	cfg.LookaheadTimesteps = 0
	// Sized so the producer never blocks: no consumer drains the
	// queue in harness mode.
	cfg.MaxQueueSize = (numTimesteps + 2) * n
	if cfg.MaxQueueSize < 1 {
		cfg.MaxQueueSize = 1
	}

	if err := cfg.Validate(); err != nil {
		cmd.PrintErrln(err)
		return err
	}

	report, err := sim.RunHarness(cfg, alg, numTimesteps)
	if err != nil {
		cmd.PrintErrln(err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d, %g, %d, %d\n", report.NumParticles, report.Seconds, report.Checks, report.Collisions)
	return nil
}
