package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Spherical holds y-up spherical coordinates: Phi is the polar angle from +Y and Theta the
// azimuth about +Y measured from +Z.
type Spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

// SphericalFromVector converts a cartesian offset. A zero vector maps to the zero value.
func SphericalFromVector(v rl.Vector3) Spherical {
	// mgl32 works z-up with the azimuth measured from +X; feed it (z, x, y).
	r, polar, azimuth := mgl32.CartesianToSpherical(mgl32.Vec3{v.Z, v.X, v.Y})
	if r == 0 {
		return Spherical{}
	}
	if math.IsNaN(float64(polar)) {
		polar = 0
		if v.Y < 0 {
			polar = math.Pi
		}
	}
	return Spherical{Radius: r, Phi: polar, Theta: azimuth}
}

// Vector converts back to a cartesian offset.
func (s Spherical) Vector() rl.Vector3 {
	c := mgl32.SphericalToCartesian(s.Radius, s.Phi, s.Theta)
	return rl.Vector3{X: c[1], Y: c[2], Z: c[0]}
}

// MakeSafe keeps Phi strictly inside (0, pi) so the look-at basis never degenerates.
func (s Spherical) MakeSafe() Spherical {
	const eps = 1e-6
	s.Phi = clamp(s.Phi, eps, math.Pi-eps)
	return s
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return clamp(v, lo, hi)
}
