package geom

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "z")
}

func TestIntersectPlane(t *testing.T) {
	ray := rl.Ray{Position: rl.Vector3{Z: 5}, Direction: rl.Vector3{Z: -1}}

	tt, ok := IntersectPlane(ray, rl.Vector3{}, UnitZ)
	require.True(t, ok)
	assert.InDelta(t, 5, tt, 1e-6)

	_, ok = IntersectPlane(ray, rl.Vector3{}, UnitX)
	assert.False(t, ok, "parallel ray must miss")

	_, ok = IntersectPlane(ray, rl.Vector3{Z: 10}, UnitZ)
	assert.False(t, ok, "plane behind the origin must miss")
}

func TestRotateVectorIdentityIsExact(t *testing.T) {
	v := rl.Vector3{X: 0.1, Y: -3.7, Z: 12.25}
	assert.Equal(t, v, RotateVector(v, Identity()))
}

func TestAxisAngleAndCompose(t *testing.T) {
	q := AxisAngle(UnitZ, math.Pi/2)
	assertVec(t, rl.Vector3{Y: 1}, RotateVector(UnitX, q))

	// b first, then a
	a := AxisAngle(UnitX, math.Pi/2)
	b := AxisAngle(UnitY, math.Pi/2)
	assertVec(t, rl.Vector3{Y: 1}, RotateVector(UnitX, Compose(a, b)))
	assertVec(t, rl.Vector3{Z: -1}, RotateVector(UnitX, Compose(b, a)))

	back := Compose(Conjugate(q), q)
	assert.InDelta(t, 1, back.W, 1e-6)

	assert.Equal(t, Identity(), AxisAngle(rl.Vector3{}, 1))
}

func TestLookRotationFacesTarget(t *testing.T) {
	eye := rl.Vector3{X: 3, Y: 2, Z: 5}
	q := LookRotation(eye, rl.Vector3{}, UnitY)

	forward := RotateVector(rl.Vector3{Z: -1}, q)
	assertVec(t, rl.Vector3Normalize(rl.Vector3Negate(eye)), forward)

	right := RotateVector(UnitX, q)
	assert.InDelta(t, 0, right.Y, 1e-5, "no roll")

	// looking straight down still yields a valid rotation
	q = LookRotation(rl.Vector3{Y: 5}, rl.Vector3{}, UnitY)
	assert.InDelta(t, -1, RotateVector(rl.Vector3{Z: -1}, q).Y, 1e-4)
}

func TestFromUnitVectors(t *testing.T) {
	q := FromUnitVectors(UnitY, UnitX)
	assertVec(t, UnitX, RotateVector(UnitY, q))

	q = FromUnitVectors(UnitY, rl.Vector3{Y: -1})
	assertVec(t, rl.Vector3{Y: -1}, RotateVector(UnitY, q))
}

func TestSphericalRoundTrip(t *testing.T) {
	s := SphericalFromVector(rl.Vector3{Z: 5})
	assert.InDelta(t, 5, s.Radius, 1e-6)
	assert.InDelta(t, math.Pi/2, s.Phi, 1e-6)
	assert.InDelta(t, 0, s.Theta, 1e-6)

	s = SphericalFromVector(rl.Vector3{X: 1})
	assert.InDelta(t, math.Pi/2, s.Theta, 1e-6)

	v := rl.Vector3{X: -1.5, Y: 2, Z: 0.25}
	assertVec(t, v, SphericalFromVector(v).Vector())

	assert.Equal(t, Spherical{}, SphericalFromVector(rl.Vector3{}))
}

func TestSphericalMakeSafe(t *testing.T) {
	s := Spherical{Radius: 1, Phi: -2}.MakeSafe()
	assert.Greater(t, s.Phi, float32(0))

	s = Spherical{Radius: 1, Phi: 4}.MakeSafe()
	assert.Less(t, s.Phi, float32(math.Pi))
}

func TestFrameRayToLocalKeepsParameter(t *testing.T) {
	f := Frame{
		Position: rl.Vector3{X: 2},
		Rotation: AxisAngle(UnitY, math.Pi/3),
		Scale:    rl.Vector3{X: 2, Y: 2, Z: 2},
	}
	ray := rl.Ray{Position: rl.Vector3{X: 2, Z: 10}, Direction: rl.Vector3{Z: -1}}
	local := f.RayToLocal(ray)

	box := Box{HalfExtents: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}}
	tt, ok := box.IntersectRay(local)
	require.True(t, ok)

	hit := PointAt(ray, tt)
	assertVec(t, hit, f.PointToWorld(PointAt(local, tt)))
	assertVec(t, PointAt(local, tt), f.PointToLocal(hit))
}

func TestShapes(t *testing.T) {
	down := rl.Ray{Position: rl.Vector3{Y: 5}, Direction: rl.Vector3{Y: -1}}

	tt, ok := Sphere{Radius: 1}.IntersectRay(down)
	require.True(t, ok)
	assert.InDelta(t, 4, tt, 1e-5)

	tt, ok = Box{HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1}}.IntersectRay(down)
	require.True(t, ok)
	assert.InDelta(t, 4, tt, 1e-5)

	inside := rl.Ray{Direction: rl.Vector3{X: 1}}
	tt, ok = Box{HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1}}.IntersectRay(inside)
	require.True(t, ok)
	assert.InDelta(t, 1, tt, 1e-5)

	quad := Quad{Normal: UnitY, HalfSize: 0.5}
	_, ok = quad.IntersectRay(down)
	assert.True(t, ok)
	_, ok = quad.IntersectRay(rl.Ray{Position: rl.Vector3{X: 1, Y: 5}, Direction: rl.Vector3{Y: -1}})
	assert.False(t, ok)

	ring := Ring{Normal: UnitY, Radius: 1, Tolerance: 0.1}
	_, ok = ring.IntersectRay(down)
	assert.False(t, ok, "center of a ring is empty")
	_, ok = ring.IntersectRay(rl.Ray{Position: rl.Vector3{X: 1.05, Y: 5}, Direction: rl.Vector3{Y: -1}})
	assert.True(t, ok)
}
