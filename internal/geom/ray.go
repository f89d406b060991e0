package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const epsilon = 1e-6

// PointAt returns the point at parameter t along the ray.
func PointAt(ray rl.Ray, t float32) rl.Vector3 {
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, t))
}

// IntersectPlane returns the ray parameter of the hit with the plane through point with the
// given normal. Rays parallel to the plane and hits behind the origin are misses.
func IntersectPlane(ray rl.Ray, point, normal rl.Vector3) (float32, bool) {
	denom := rl.Vector3DotProduct(ray.Direction, normal)
	if abs(denom) < epsilon {
		return 0, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(point, ray.Position), normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Mul multiplies two vectors component-wise.
func Mul(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Inverse returns the component-wise reciprocal, mapping zero components to zero.
func Inverse(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: recip(v.X), Y: recip(v.Y), Z: recip(v.Z)}
}

// MaxComponent returns the largest of the three components.
func MaxComponent(v rl.Vector3) float32 {
	return float32(math.Max(float64(v.X), math.Max(float64(v.Y), float64(v.Z))))
}

func recip(f float32) float32 {
	if f == 0 {
		return 0
	}
	return 1 / f
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
