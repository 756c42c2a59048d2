// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// V3 is the 3-element vector this simulation uses for particle
// position, velocity, and acceleration. Trimmed from the original
// vu/math/lin vector package, which also carried V4 and matrix/
// quaternion interop for rotating rendered meshes — spherical
// particles have no orientation, so only the plain vector algebra
// survives: arithmetic, dot/cross products, and the normalize/length
// operations the overlap test, wall reflection, and elastic-collision
// math in the physics package build on.

import (
	"log/slog"
	"math"
)

// V3 is a 3 element vector. This can also be used as a point.
type V3 struct {
	X float64
	Y float64
	Z float64
}

// Eq (==) returns true if v and a have identical elements.
func (v *V3) Eq(a *V3) bool {
	return v.Z == a.Z && v.Y == a.Y && v.X == a.X
}

// Aeq (~=) almost-equals returns true if every element of v is within
// Epsilon of the corresponding element of a. Used where direct
// equality is unlikely to hold because of floating-point reordering,
// e.g. comparing positions and velocities across broad-phase strategies.
func (v *V3) Aeq(a *V3) bool {
	return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z)
}

// AeqZ (~=) almost-equals-zero returns true if v's squared length is
// close enough to zero to treat as the zero vector — used by orbital
// spawning to detect a degenerate (all-zero) direction draw before
// normalizing it.
func (v *V3) AeqZ() bool { return v.Dot(v) < Epsilon }

// Set (=, copy, clone) sets v's elements to a's. The updated vector v
// is returned.
func (v *V3) Set(a *V3) *V3 {
	v.X, v.Y, v.Z = a.X, a.Y, a.Z
	return v
}

// Swap exchanges the element values of v and a. Both are updated.
func (v *V3) Swap(a *V3) *V3 {
	v.X, a.X = a.X, v.X
	v.Y, a.Y = a.Y, v.Y
	v.Z, a.Z = a.Z, v.Z
	return v
}

// Min sets v to the element-wise minimum of a and b.
func (v *V3) Min(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Min(b.X, a.X), math.Min(b.Y, a.Y), math.Min(b.Z, a.Z)
	return v
}

// Max sets v to the element-wise maximum of a and b.
func (v *V3) Max(a, b *V3) *V3 {
	v.X, v.Y, v.Z = math.Max(b.X, a.X), math.Max(b.Y, a.Y), math.Max(b.Z, a.Z)
	return v
}

// Abs sets v to the absolute value of its own elements.
func (v *V3) Abs() *V3 {
	v.X, v.Y, v.Z = math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	return v
}

// Neg (-) sets v to the negation of a. v may be used as a.
func (v *V3) Neg(a *V3) *V3 {
	v.X, v.Y, v.Z = -a.X, -a.Y, -a.Z
	return v
}

// Add (+) sets v to a+b. v may be used as either or both parameters:
// v.Add(v, b) is (+=).
func (v *V3) Add(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X+b.X, a.Y+b.Y, a.Z+b.Z
	return v
}

// Sub (-) sets v to a-b. v may be used as either or both parameters:
// v.Sub(v, b) is (-=). This is the relative-position vector (Δp) the
// collision-time triangle in the physics package builds on.
func (v *V3) Sub(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return v
}

// Mult (*) sets v to the element-wise product of a and b.
func (v *V3) Mult(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.X*b.X, a.Y*b.Y, a.Z*b.Z
	return v
}

// Scale (*=) sets v to a scaled by s. v may be used as a. This is how
// collision resolution backs a particle out to tangent (p - v*overlapTime)
// and how orbital integration composes its half-acceleration terms.
func (v *V3) Scale(a *V3, s float64) *V3 {
	v.X, v.Y, v.Z = a.X*s, a.Y*s, a.Z*s
	return v
}

// Div (/=) divides v's elements by s. v is unchanged if s is zero.
func (v *V3) Div(s float64) *V3 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y, v.Z = v.X*inv, v.Y*inv, v.Z*inv
	}
	return v
}

// Dot returns the dot product of v and a.
func (v *V3) Dot(a *V3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Len returns the length (magnitude) of v.
func (v *V3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Dist returns the distance between points v and a.
func (v *V3) Dist(a *V3) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the squared distance between points v and a —
// the narrow-phase overlap test compares this directly against
// (ra+rb)² to avoid a square root on every candidate pair.
func (v *V3) DistSqr(a *V3) float64 {
	dx, dy, dz := a.X-v.X, a.Y-v.Y, a.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

// Ang returns the angle in radians between v and a, or 0 if either has
// zero magnitude.
func (v *V3) Ang(a *V3) float64 {
	magnitude := math.Sqrt(v.Dot(v) * a.Dot(a))
	if magnitude != 0 {
		return math.Acos(Clamp(v.Dot(a)/magnitude, -1, 1))
	}
	slog.Warn("V3.Ang called with a zero-magnitude vector")
	return 0
}

// Unit normalizes v to length 1, in place. v is unchanged if its
// length is zero (the degenerate direction orbital spawning guards
// against with AeqZ before calling this).
func (v *V3) Unit() *V3 {
	length := v.Len()
	if length != 0 {
		return v.Div(length)
	}
	return v
}

// Cross sets v to the cross product of a and b: a vector perpendicular
// to both. Used to build the orbital spawn's orthogonal velocity
// direction from the shell-radius vector and an arbitrary axis.
func (v *V3) Cross(a, b *V3) *V3 {
	v.X, v.Y, v.Z = a.Y*b.Z-a.Z*b.Y, a.Z*b.X-a.X*b.Z, a.X*b.Y-a.Y*b.X
	return v
}

// Lerp sets v to the linear interpolation of a to b by fraction
// (expected in [0, 1], not checked).
func (v *V3) Lerp(a, b *V3, fraction float64) *V3 {
	v.X = (b.X-a.X)*fraction + a.X
	v.Y = (b.Y-a.Y)*fraction + a.Y
	v.Z = (b.Z-a.Z)*fraction + a.Z
	return v
}
