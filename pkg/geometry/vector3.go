// Package geometry provides the vector math primitives the boid engine
// is built on: 3-D vectors in world space, and 2-D vectors in screen
// space once a boid has been projected by the render adapter.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 represents a point or free vector in 3-D cartesian space.
// Fields are public because they are fundamental data, not internal
// state: `Vector3{1, 2, 3}` is a valid literal.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Zero3 is the additive identity.
var Zero3 = Vector3{}

// Rotation is a 3-D rotation, as returned by RotationBetween and
// consumed by the render adapter's set_local_rotation call. It is an
// alias for gonum's r3.Rotation so callers outside this package never
// need to import gonum directly.
type Rotation = r3.Rotation

// NewVector3 builds a Vector3 from components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) r3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func fromR3(v r3.Vec) Vector3 { return Vector3{X: v.X, Y: v.Y, Z: v.Z} }

// String implements fmt.Stringer.
func (v Vector3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return fromR3(r3.Add(v.r3(), other.r3()))
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return fromR3(r3.Sub(v.r3(), other.r3()))
}

// Scale returns v scaled by a scalar factor.
func (v Vector3) Scale(f float64) Vector3 {
	return fromR3(r3.Scale(f, v.r3()))
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return r3.Dot(v.r3(), other.r3())
}

// Cross returns the cross product v x other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return fromR3(r3.Cross(v.r3(), other.r3()))
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return r3.Norm(v.r3())
}

// NormSqr returns the squared Euclidean length of v, avoiding the
// square root; prefer this for comparisons against a threshold.
func (v Vector3) NormSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Unit returns v normalized to length 1. Returns the zero vector if v
// is (numerically) the zero vector; callers that need a guaranteed
// unit vector must guard on Norm() > 0 first.
func (v Vector3) Unit() Vector3 {
	n := v.Norm()
	if n < epsilon {
		return Zero3
	}
	return v.Scale(1 / n)
}

// DistanceTo returns the Euclidean distance between v and other.
func (v Vector3) DistanceTo(other Vector3) float64 {
	return v.Sub(other).Norm()
}

// DistanceSqrTo returns the squared Euclidean distance between v and
// other, avoiding the square root.
func (v Vector3) DistanceSqrTo(other Vector3) float64 {
	return v.Sub(other).NormSqr()
}

const epsilon = 1e-9

// smallAngle is the sin(theta) threshold below which Slerp falls back
// to linear interpolation. Below this angle a direct slerp formula
// divides by a near-zero sine and loses precision.
const smallAngle = 1e-6

// Slerp performs spherical linear interpolation between two unit
// vectors a and b, t in [0,1]. Slerp(a, b, 0) == a, Slerp(a, b, 1) ==
// b, and the result always has unit length provided a and b do.
//
// a and b must already be unit vectors; Slerp does not normalize its
// inputs (callers normalize once and reuse the result, see
// boids.Engine.applyAlignment/applyCoherence).
func Slerp(a, b Vector3, t float64) Vector3 {
	cosTheta := clamp(a.Dot(b), -1, 1)

	// Antiparallel: there is no unique shortest arc. Rotate a by pi
	// about any axis orthogonal to a; pick the rotation axis
	// deterministically (see RotationBetween for the same tie-break).
	if cosTheta < -1+epsilon {
		axis := orthogonalAxis(a)
		return fromR3(rotateAbout(a.r3(), axis.r3(), math.Pi*t))
	}

	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	if sinTheta < smallAngle {
		// Nearly parallel: linear interpolation is numerically stable
		// here and the renormalization keeps the result on the unit
		// sphere.
		return a.Scale(1 - t).Add(b.Scale(t)).Unit()
	}

	theta := math.Acos(cosTheta)
	s1 := math.Sin((1-t)*theta) / sinTheta
	s2 := math.Sin(t*theta) / sinTheta
	return a.Scale(s1).Add(b.Scale(s2))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// orthogonalAxis returns a unit vector perpendicular to v. Used only
// for the antiparallel tie-break in Slerp and RotationBetween.
func orthogonalAxis(v Vector3) Vector3 {
	// Cross with world +X unless v is itself ~parallel to +X, in
	// which case cross with +Y instead.
	x := Vector3{X: 1}
	if math.Abs(v.Dot(x)) > 1-epsilon {
		x = Vector3{Y: 1}
	}
	return v.Cross(x).Unit()
}

func rotateAbout(v, axis r3.Vec, angle float64) r3.Vec {
	rot := r3.NewRotation(angle, axis)
	return rot.Rotate(v)
}

// RotationBetween returns the rotation that maps unit vector `from`
// onto unit vector `to` along the shortest arc.
//
// Tie-break: when from and to are antiparallel, or to is the zero
// vector, the rotation is pi radians about a fixed axis orthogonal to
// `from` (see orthogonalAxis) rather than panicking or leaving the
// rotation undefined.
func RotationBetween(from, to Vector3) r3.Rotation {
	toNorm := to.Norm()
	if toNorm < epsilon {
		axis := orthogonalAxis(from)
		return r3.NewRotation(math.Pi, axis.r3())
	}
	toUnit := to.Scale(1 / toNorm)

	cosTheta := clamp(from.Dot(toUnit), -1, 1)
	if cosTheta < -1+epsilon {
		axis := orthogonalAxis(from)
		return r3.NewRotation(math.Pi, axis.r3())
	}

	axis := from.Cross(toUnit)
	axisNorm := axis.Norm()
	if axisNorm < epsilon {
		// from and toUnit are effectively parallel: identity rotation.
		return r3.NewRotation(0, Vector3{X: 1}.r3())
	}
	angle := math.Acos(cosTheta)
	return r3.NewRotation(angle, axis.Scale(1/axisNorm).r3())
}
