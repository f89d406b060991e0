package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	UnitX = rl.Vector3{X: 1}
	UnitY = rl.Vector3{Y: 1}
	UnitZ = rl.Vector3{Z: 1}
)

// Identity is the rotation that leaves every vector unchanged.
func Identity() rl.Quaternion {
	return rl.Quaternion{W: 1}
}

// Conjugate inverts a unit quaternion.
func Conjugate(q rl.Quaternion) rl.Quaternion {
	return rl.Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Compose returns the rotation that applies b first, then a.
func Compose(a, b rl.Quaternion) rl.Quaternion {
	return rl.Quaternion{
		X: a.X*b.W + a.W*b.X + a.Y*b.Z - a.Z*b.Y,
		Y: a.Y*b.W + a.W*b.Y + a.Z*b.X - a.X*b.Z,
		Z: a.Z*b.W + a.W*b.Z + a.X*b.Y - a.Y*b.X,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// RotateVector applies the rotation q to v. The identity rotation returns v unchanged.
func RotateVector(v rl.Vector3, q rl.Quaternion) rl.Vector3 {
	ix := q.W*v.X + q.Y*v.Z - q.Z*v.Y
	iy := q.W*v.Y + q.Z*v.X - q.X*v.Z
	iz := q.W*v.Z + q.X*v.Y - q.Y*v.X
	iw := -q.X*v.X - q.Y*v.Y - q.Z*v.Z

	return rl.Vector3{
		X: ix*q.W + iw*-q.X + iy*-q.Z - iz*-q.Y,
		Y: iy*q.W + iw*-q.Y + iz*-q.X - ix*-q.Z,
		Z: iz*q.W + iw*-q.Z + ix*-q.Y - iy*-q.X,
	}
}

// AxisAngle builds a rotation of angle radians about axis. A zero axis yields the identity.
func AxisAngle(axis rl.Vector3, angle float32) rl.Quaternion {
	length := rl.Vector3Length(axis)
	if length < epsilon {
		return Identity()
	}
	axis = rl.Vector3Scale(axis, 1/length)
	s, c := math.Sincos(float64(angle) / 2)
	return rl.Quaternion{
		X: axis.X * float32(s),
		Y: axis.Y * float32(s),
		Z: axis.Z * float32(s),
		W: float32(c),
	}
}

// QuatFromBasis converts an orthonormal basis (the columns of a rotation matrix) into a
// quaternion.
func QuatFromBasis(x, y, z rl.Vector3) rl.Quaternion {
	m11, m12, m13 := x.X, y.X, z.X
	m21, m22, m23 := x.Y, y.Y, z.Y
	m31, m32, m33 := x.Z, y.Z, z.Z

	trace := m11 + m22 + m33
	switch {
	case trace > 0:
		s := 0.5 / sqrt(trace+1)
		return rl.Quaternion{
			W: 0.25 / s,
			X: (m32 - m23) * s,
			Y: (m13 - m31) * s,
			Z: (m21 - m12) * s,
		}
	case m11 > m22 && m11 > m33:
		s := 2 * sqrt(1+m11-m22-m33)
		return rl.Quaternion{
			W: (m32 - m23) / s,
			X: 0.25 * s,
			Y: (m12 + m21) / s,
			Z: (m13 + m31) / s,
		}
	case m22 > m33:
		s := 2 * sqrt(1+m22-m11-m33)
		return rl.Quaternion{
			W: (m13 - m31) / s,
			X: (m12 + m21) / s,
			Y: 0.25 * s,
			Z: (m23 + m32) / s,
		}
	default:
		s := 2 * sqrt(1+m33-m11-m22)
		return rl.Quaternion{
			W: (m21 - m12) / s,
			X: (m13 + m31) / s,
			Y: (m23 + m32) / s,
			Z: 0.25 * s,
		}
	}
}

// LookRotation returns the orientation whose local -Z axis points from eye towards target,
// with its local Y as close to up as possible.
func LookRotation(eye, target, up rl.Vector3) rl.Quaternion {
	z := rl.Vector3Subtract(eye, target)
	if rl.Vector3LengthSqr(z) == 0 {
		z.Z = 1
	}
	z = rl.Vector3Normalize(z)

	x := rl.Vector3CrossProduct(up, z)
	if rl.Vector3LengthSqr(x) == 0 {
		// up and z are parallel
		if abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = rl.Vector3Normalize(z)
		x = rl.Vector3CrossProduct(up, z)
	}
	x = rl.Vector3Normalize(x)
	y := rl.Vector3CrossProduct(z, x)

	return QuatFromBasis(x, y, z)
}

// FromUnitVectors returns the shortest rotation taking the unit vector from onto to.
func FromUnitVectors(from, to rl.Vector3) rl.Quaternion {
	r := rl.Vector3DotProduct(from, to) + 1
	var q rl.Quaternion
	if r < epsilon {
		// opposite vectors
		if abs(from.X) > abs(from.Z) {
			q = rl.Quaternion{X: -from.Y, Y: from.X, Z: 0, W: 0}
		} else {
			q = rl.Quaternion{X: 0, Y: -from.Z, Z: from.Y, W: 0}
		}
	} else {
		c := rl.Vector3CrossProduct(from, to)
		q = rl.Quaternion{X: c.X, Y: c.Y, Z: c.Z, W: r}
	}
	return rl.QuaternionNormalize(q)
}

func sqrt(f float32) float32 {
	return float32(math.Sqrt(float64(f)))
}
