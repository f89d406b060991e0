package scene

import (
	"busic/internal/engine"
	"busic/internal/geom"
	"busic/internal/gizmo"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	sphereRings  = 12
	sphereSlices = 12
	coneSides    = 12
)

// Renderer draws the scene's objects and the gizmo handles with raylib.
type Renderer struct {
	Background  rl.Color
	GridSlices  int32
	GridSpacing float32
}

func NewRenderer(background rl.Color) *Renderer {
	return &Renderer{
		Background:  background,
		GridSlices:  20,
		GridSpacing: 0.5,
	}
}

// Draw renders one frame. It must run between rl.BeginDrawing and rl.EndDrawing.
func (r *Renderer) Draw(s *Scene) {
	rl.ClearBackground(r.Background)
	rl.BeginMode3D(s.Camera.GetRaylibCamera())
	if r.GridSlices > 0 {
		rl.DrawGrid(r.GridSlices, r.GridSpacing)
	}
	for _, o := range s.objects {
		r.drawNode(o.Node)
	}

	if s.Controller.Attached() {
		// handles stay visible through the selected object
		rl.DrawRenderBatchActive()
		rl.DisableDepthTest()
		for _, e := range s.Controller.Widget().Handles() {
			if e.Node.Visible {
				r.drawElement(e)
			}
		}
		rl.DrawRenderBatchActive()
		rl.EnableDepthTest()
	}
	rl.EndMode3D()
}

func (r *Renderer) drawNode(n *engine.Node) {
	if !n.Visible {
		return
	}
	withFrame(n.WorldFrame(), func() {
		switch shape := n.Shape.(type) {
		case geom.Box:
			size := rl.Vector3Scale(shape.HalfExtents, 2)
			rl.DrawCubeV(shape.Center, size, n.Color)
			rl.DrawCubeWiresV(shape.Center, size, rl.Black)
		case geom.Sphere:
			rl.DrawSphereEx(shape.Center, shape.Radius, sphereRings, sphereSlices, n.Color)
		}
	})
}

func (r *Renderer) drawElement(e *gizmo.Element) {
	col := e.Material.Tint()
	withFrame(e.Node.WorldFrame(), func() {
		switch e.Kind {
		case gizmo.KindLine:
			rl.DrawLine3D(e.Start, e.End, col)
		case gizmo.KindCone:
			rl.DrawCylinderEx(e.Start, e.End, e.Size, 0, coneSides, col)
		case gizmo.KindCube:
			rl.DrawCubeV(e.Center, rl.Vector3{X: e.Size, Y: e.Size, Z: e.Size}, col)
		case gizmo.KindSphere:
			rl.DrawSphereEx(e.Center, e.Size, sphereRings, sphereSlices, col)
		case gizmo.KindSquare:
			drawSquare(e.Center, e.Normal, e.Size, col)
		case gizmo.KindCircle:
			axis, angle := circleRotation(e.Normal)
			rl.DrawCircle3D(e.Center, e.Size, axis, angle, col)
		}
	})
}

// withFrame runs draw with f pushed onto the model matrix stack.
func withFrame(f geom.Frame, draw func()) {
	var axis rl.Vector3
	var angle float32
	rl.QuaternionToAxisAngle(f.Rotation, &axis, &angle)

	rl.PushMatrix()
	rl.Translatef(f.Position.X, f.Position.Y, f.Position.Z)
	rl.Rotatef(angle*rl.Rad2deg, axis.X, axis.Y, axis.Z)
	rl.Scalef(f.Scale.X, f.Scale.Y, f.Scale.Z)
	draw()
	rl.PopMatrix()
}

// drawSquare draws a double sided square of half size h on the plane through c with normal n.
func drawSquare(c, n rl.Vector3, h float32, col rl.Color) {
	u, v := planeBasis(n)
	u, v = rl.Vector3Scale(u, h), rl.Vector3Scale(v, h)
	a := rl.Vector3Add(c, rl.Vector3Add(u, v))
	b := rl.Vector3Add(c, rl.Vector3Subtract(u, v))
	d := rl.Vector3Subtract(c, rl.Vector3Subtract(u, v))
	e := rl.Vector3Subtract(c, rl.Vector3Add(u, v))

	rl.DrawTriangle3D(a, d, e, col)
	rl.DrawTriangle3D(a, e, b, col)
	rl.DrawTriangle3D(a, e, d, col)
	rl.DrawTriangle3D(a, b, e, col)
}

// planeBasis returns two unit vectors spanning the plane with normal n.
func planeBasis(n rl.Vector3) (rl.Vector3, rl.Vector3) {
	ref := geom.UnitY
	if abs(n.Y) > 0.9 {
		ref = geom.UnitX
	}
	u := rl.Vector3Normalize(rl.Vector3CrossProduct(ref, n))
	v := rl.Vector3CrossProduct(n, u)
	return u, v
}

// circleRotation returns the axis and angle in degrees turning the XY plane to face n.
func circleRotation(n rl.Vector3) (rl.Vector3, float32) {
	axis := rl.Vector3CrossProduct(geom.UnitZ, n)
	if rl.Vector3Length(axis) < 1e-6 {
		if n.Z < 0 {
			return geom.UnitX, 180
		}
		return geom.UnitX, 0
	}
	return rl.Vector3Normalize(axis), rl.Vector3Angle(geom.UnitZ, n) * rl.Rad2deg
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
