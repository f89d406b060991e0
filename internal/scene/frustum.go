package scene

import (
	"busic/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum holds the six clip planes of a camera: left, right, bottom, top, near, far.
type Frustum struct {
	planes [6]Plane
}

// Plane is n·p + d = 0 with a unit normal pointing into the frustum.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// CameraFrustum extracts the frustum of cam's current view and projection.
func CameraFrustum(cam *camera.Camera) Frustum {
	return ExtractFrustum(cam.ViewMatrix(), cam.ProjectionMatrix())
}

// ExtractFrustum builds the planes from view and projection with the Gribb/Hartmann method:
// each plane is the last row of the clip matrix plus or minus one of the other rows.
func ExtractFrustum(view, proj rl.Matrix) Frustum {
	vp := rl.MatrixMultiply(view, proj)
	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}
	w := rows[3]

	var f Frustum
	for i := 0; i < 3; i++ {
		r := rows[i]
		f.planes[2*i] = makePlane(w[0]+r[0], w[1]+r[1], w[2]+r[2], w[3]+r[3])
		f.planes[2*i+1] = makePlane(w[0]-r[0], w[1]-r[1], w[2]-r[2], w[3]-r[3])
	}
	return f
}

func makePlane(a, b, c, d float32) Plane {
	p := Plane{Normal: rl.Vector3{X: a, Y: b, Z: c}, Distance: d}
	length := rl.Vector3Length(p.Normal)
	if length == 0 {
		return p
	}
	return Plane{
		Normal:   rl.Vector3Scale(p.Normal, 1/length),
		Distance: d / length,
	}
}

// ContainsSphere reports whether the sphere is inside or crosses the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		if rl.Vector3DotProduct(p.Normal, center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
