// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the 3-vector math and scalar helpers the
// simulation needs: particle position, velocity, and acceleration have
// no orientation, so this is trimmed from the original vu/math/lin
// package down to V3 plus a few scalar utilities: tolerance
// comparisons (used by the tests) and domain clamping for the
// collision-time trig in the physics package. Angle conversion, rounding,
// and the fast-trig approximation the original package carried for its
// rendering loop have no caller here and were dropped rather than kept
// as unexercised surface.
package lin

import "math"

// Epsilon is how close two floats must be to count as equal.
const Epsilon float64 = 0.000001

// AeqZ (~=) almost-equals-zero returns true if x is close enough to
// zero that the difference doesn't matter.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if a and b are close enough that
// the difference doesn't matter. Used to compare floating-point
// results (such as post-collision velocities) where reordering of
// the underlying arithmetic can perturb the last few bits.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Clamp returns s restricted to the range [lb, ub]. Used to keep
// collision-time angle arguments (cos/sin ratios that can drift
// slightly outside [-1, 1] from floating-point error) in the domain
// math.Acos/math.Asin accept.
func Clamp(s, lb, ub float64) float64 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}
