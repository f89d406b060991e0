package physics

import (
	"busic/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// collide returns the contact between a and b, if any. Box-box pairs are not supported.
func collide(a, b *Body) (*Contact, bool) {
	switch sa := a.Shape.(type) {
	case Sphere:
		switch sb := b.Shape.(type) {
		case Sphere:
			return sphereVsSphere(a, b, sa, sb)
		case Box:
			return sphereVsBox(a, b, sa, sb, false)
		}
	case Box:
		if sb, ok := b.Shape.(Sphere); ok {
			return sphereVsBox(b, a, sb, sa, true)
		}
	}
	return nil, false
}

func sphereVsSphere(a, b *Body, sa, sb Sphere) (*Contact, bool) {
	delta := rl.Vector3Subtract(b.Position, a.Position)
	dist := rl.Vector3Length(delta)
	minDist := sa.Radius + sb.Radius
	if dist >= minDist {
		return nil, false
	}

	normal := geom.UnitY
	if dist > 1e-6 {
		normal = rl.Vector3Scale(delta, 1/dist)
	}
	return &Contact{
		A:      a,
		B:      b,
		Normal: normal,
		Depth:  minDist - dist,
		Point:  rl.Vector3Add(a.Position, rl.Vector3Scale(normal, sa.Radius)),
	}, true
}

// sphereVsBox finds the contact between a sphere and an oriented box. When flip is set the
// contact is reported with the box as A.
func sphereVsBox(sphere, box *Body, s Sphere, bx Box, flip bool) (*Contact, bool) {
	frame := geom.Frame{Position: box.Position, Rotation: box.Quaternion, Scale: rl.Vector3One()}
	local := frame.PointToLocal(sphere.Position)
	h := bx.HalfExtents

	// Clamp to box extents
	closest := rl.Vector3{
		X: clampf(local.X, -h.X, h.X),
		Y: clampf(local.Y, -h.Y, h.Y),
		Z: clampf(local.Z, -h.Z, h.Z),
	}

	var normalLocal rl.Vector3
	var depth float32
	diff := rl.Vector3Subtract(local, closest)
	distSq := rl.Vector3LengthSqr(diff)
	if distSq > 1e-12 {
		if distSq >= s.Radius*s.Radius {
			return nil, false
		}
		dist := sqrtf(distSq)
		normalLocal = rl.Vector3Scale(diff, 1/dist)
		depth = s.Radius - dist
	} else {
		// center inside the box: push out through the nearest face
		normalLocal, depth = nearestFace(local, h)
		depth += s.Radius
	}

	// normal points from the box to the sphere
	normal := geom.RotateVector(normalLocal, box.Quaternion)
	point := frame.PointToWorld(closest)
	if flip {
		return &Contact{A: box, B: sphere, Normal: normal, Depth: depth, Point: point}, true
	}
	return &Contact{A: sphere, B: box, Normal: rl.Vector3Negate(normal), Depth: depth, Point: point}, true
}

func nearestFace(p, h rl.Vector3) (rl.Vector3, float32) {
	faces := [6]struct {
		normal rl.Vector3
		dist   float32
	}{
		{rl.Vector3{X: 1}, h.X - p.X},
		{rl.Vector3{X: -1}, h.X + p.X},
		{rl.Vector3{Y: 1}, h.Y - p.Y},
		{rl.Vector3{Y: -1}, h.Y + p.Y},
		{rl.Vector3{Z: 1}, h.Z - p.Z},
		{rl.Vector3{Z: -1}, h.Z + p.Z},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.dist < best.dist {
			best = f
		}
	}
	return best.normal, best.dist
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
