package camera

import (
	"math"

	"busic/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// Camera looks down its local -Z axis. Fov is the vertical field of view in degrees.
type Camera struct {
	Projection Projection
	Position   rl.Vector3
	Rotation   rl.Quaternion
	Up         rl.Vector3
	Fov        float32
	Aspect     float32
	Near       float32
	Far        float32
	Zoom       float32

	// orthographic frustum extents
	Left, Right, Top, Bottom float32
}

func NewPerspective(fov, aspect, near, far float32) *Camera {
	return &Camera{
		Projection: Perspective,
		Rotation:   geom.Identity(),
		Up:         geom.UnitY,
		Fov:        fov,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
		Zoom:       1,
	}
}

func NewOrthographic(left, right, top, bottom, near, far float32) *Camera {
	return &Camera{
		Projection: Orthographic,
		Rotation:   geom.Identity(),
		Up:         geom.UnitY,
		Aspect:     (right - left) / (top - bottom),
		Near:       near,
		Far:        far,
		Zoom:       1,
		Left:       left,
		Right:      right,
		Top:        top,
		Bottom:     bottom,
	}
}

// LookAt turns the camera towards target, keeping Up as the vertical reference.
func (c *Camera) LookAt(target rl.Vector3) {
	c.Rotation = geom.LookRotation(c.Position, target, c.Up)
}

// Forward is the world-space viewing direction.
func (c *Camera) Forward() rl.Vector3 {
	return geom.RotateVector(rl.Vector3{Z: -1}, c.Rotation)
}

// RightAxis is the camera's local +X in world space.
func (c *Camera) RightAxis() rl.Vector3 {
	return geom.RotateVector(geom.UnitX, c.Rotation)
}

// UpAxis is the camera's local +Y in world space.
func (c *Camera) UpAxis() rl.Vector3 {
	return geom.RotateVector(geom.UnitY, c.Rotation)
}

// SetAspect updates the aspect ratio. Orthographic cameras keep their height and center and
// widen or narrow Left/Right to match.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	if c.Projection == Orthographic {
		halfW := (c.Top - c.Bottom) / 2 * aspect
		cx := (c.Right + c.Left) / 2
		c.Left = cx - halfW
		c.Right = cx + halfW
	}
}

func (c *Camera) tanHalfFov() float32 {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return float32(math.Tan(float64(c.Fov)*math.Pi/360)) / zoom
}

// orthoExtents returns the zoomed frustum half-width, half-height and center offset.
func (c *Camera) orthoExtents() (halfW, halfH, cx, cy float32) {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW = (c.Right - c.Left) / (2 * zoom)
	halfH = (c.Top - c.Bottom) / (2 * zoom)
	cx = (c.Right + c.Left) / 2
	cy = (c.Top + c.Bottom) / 2
	return
}

// Ray returns the world-space picking ray through a point in normalized device coordinates.
func (c *Camera) Ray(ndc rl.Vector2) rl.Ray {
	if c.Projection == Orthographic {
		halfW, halfH, cx, cy := c.orthoExtents()
		local := rl.Vector3{X: cx + ndc.X*halfW, Y: cy + ndc.Y*halfH}
		return rl.Ray{
			Position:  rl.Vector3Add(c.Position, geom.RotateVector(local, c.Rotation)),
			Direction: c.Forward(),
		}
	}

	tanHalf := c.tanHalfFov()
	dir := rl.Vector3{X: ndc.X * tanHalf * c.Aspect, Y: ndc.Y * tanHalf, Z: -1}
	return rl.Ray{
		Position:  c.Position,
		Direction: rl.Vector3Normalize(geom.RotateVector(dir, c.Rotation)),
	}
}

func (c *Camera) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(c.Position, rl.Vector3Add(c.Position, c.Forward()), c.UpAxis())
}

func (c *Camera) ProjectionMatrix() rl.Matrix {
	if c.Projection == Orthographic {
		halfW, halfH, cx, cy := c.orthoExtents()
		return rl.MatrixOrtho(cx-halfW, cx+halfW, cy-halfH, cy+halfH, c.Near, c.Far)
	}
	fovy := 2 * float32(math.Atan(float64(c.tanHalfFov())))
	return rl.MatrixPerspective(fovy, c.Aspect, c.Near, c.Far)
}

// GetRaylibCamera converts to the raylib camera used for drawing.
func (c *Camera) GetRaylibCamera() rl.Camera3D {
	cam := rl.Camera3D{
		Position: c.Position,
		Target:   rl.Vector3Add(c.Position, c.Forward()),
		Up:       c.UpAxis(),
	}
	if c.Projection == Orthographic {
		_, halfH, _, _ := c.orthoExtents()
		cam.Fovy = 2 * halfH
		cam.Projection = rl.CameraOrthographic
		return cam
	}
	cam.Fovy = 2 * float32(math.Atan(float64(c.tanHalfFov()))) * rl.Rad2deg
	cam.Projection = rl.CameraPerspective
	return cam
}
