package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// Shape is a local-space hit volume. IntersectRay returns the smallest non-negative ray
// parameter of a hit; the direction need not be normalized.
type Shape interface {
	IntersectRay(ray rl.Ray) (float32, bool)
	BoundingRadius() float32
}

// Box is an axis-aligned box in local space.
type Box struct {
	Center      rl.Vector3
	HalfExtents rl.Vector3
}

func (b Box) IntersectRay(ray rl.Ray) (float32, bool) {
	min := rl.Vector3Subtract(b.Center, b.HalfExtents)
	max := rl.Vector3Add(b.Center, b.HalfExtents)

	origin := [3]float32{ray.Position.X, ray.Position.Y, ray.Position.Z}
	dir := [3]float32{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	tmin := float32(-1e30)
	tmax := float32(1e30)
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		// origin inside the box
		return tmax, true
	}
	return tmin, true
}

func (b Box) BoundingRadius() float32 {
	return rl.Vector3Length(rl.Vector3Add(absVec(b.Center), b.HalfExtents))
}

// Sphere is a ball in local space.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

func (s Sphere) IntersectRay(ray rl.Ray) (float32, bool) {
	oc := rl.Vector3Subtract(ray.Position, s.Center)
	a := rl.Vector3DotProduct(ray.Direction, ray.Direction)
	if a == 0 {
		return 0, false
	}
	b := 2 * rl.Vector3DotProduct(oc, ray.Direction)
	c := rl.Vector3DotProduct(oc, oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	root := sqrt(disc)
	t := (-b - root) / (2 * a)
	if t < 0 {
		t = (-b + root) / (2 * a)
		if t < 0 {
			return 0, false
		}
	}
	return t, true
}

func (s Sphere) BoundingRadius() float32 {
	return rl.Vector3Length(s.Center) + s.Radius
}

// Quad is a double-sided square on the plane through Center with an axis-aligned Normal.
type Quad struct {
	Center   rl.Vector3
	Normal   rl.Vector3
	HalfSize float32
}

func (q Quad) IntersectRay(ray rl.Ray) (float32, bool) {
	t, ok := IntersectPlane(ray, q.Center, q.Normal)
	if !ok {
		return 0, false
	}
	d := rl.Vector3Subtract(PointAt(ray, t), q.Center)
	// drop the out-of-plane component
	d = rl.Vector3Subtract(d, rl.Vector3Scale(q.Normal, rl.Vector3DotProduct(d, q.Normal)))
	if abs(d.X) > q.HalfSize || abs(d.Y) > q.HalfSize || abs(d.Z) > q.HalfSize {
		return 0, false
	}
	return t, true
}

func (q Quad) BoundingRadius() float32 {
	return rl.Vector3Length(q.Center) + q.HalfSize*sqrt(2)
}

// Ring is a circle of Radius on the plane through Center, widened into an annulus of
// +/-Tolerance for picking.
type Ring struct {
	Center    rl.Vector3
	Normal    rl.Vector3
	Radius    float32
	Tolerance float32
}

func (r Ring) IntersectRay(ray rl.Ray) (float32, bool) {
	t, ok := IntersectPlane(ray, r.Center, r.Normal)
	if !ok {
		return 0, false
	}
	dist := rl.Vector3Distance(PointAt(ray, t), r.Center)
	if abs(dist-r.Radius) > r.Tolerance {
		return 0, false
	}
	return t, true
}

func (r Ring) BoundingRadius() float32 {
	return rl.Vector3Length(r.Center) + r.Radius + r.Tolerance
}

func absVec(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: abs(v.X), Y: abs(v.Y), Z: abs(v.Z)}
}
