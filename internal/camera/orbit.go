package camera

import (
	"math"

	"busic/internal/engine"
	"busic/internal/geom"
	"busic/internal/input"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type orbitState int

const (
	stateNone orbitState = iota
	stateRotate
	stateDolly
	statePan
	stateTouchRotate
	stateTouchDolly
	stateTouchPan
)

// OrbitController moves a camera on a sphere around Target from pointer and touch gestures.
//
// Mouse: secondary button orbits, middle button dollies, primary button with Alt pans, the
// wheel dollies. Touch: one finger orbits, a two-finger pinch dollies, three fingers pan.
type OrbitController struct {
	Camera *Camera
	Target rl.Vector3

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
	MinDistance float32
	MaxDistance float32

	viewport *input.Viewport
	arbiter  *input.Arbiter
	token    *input.Token
	disabled bool

	state          orbitState
	sphericalDelta geom.Spherical
	scale          float32
	panOffset      rl.Vector3

	rotateStart rl.Vector2
	panStart    rl.Vector2
	dollyStart  rl.Vector2

	target0   rl.Vector3
	position0 rl.Vector3
	zoom0     float32
}

func NewOrbitController(cam *Camera, viewport *input.Viewport, arbiter *input.Arbiter) *OrbitController {
	return &OrbitController{
		Camera:      cam,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		PanSpeed:    1,
		MinDistance: 1e-3,
		MaxDistance: float32(math.Inf(1)),
		viewport:    viewport,
		arbiter:     arbiter,
		token:       input.NewToken("camera"),
		scale:       1,
		position0:   cam.Position,
		zoom0:       cam.Zoom,
	}
}

// Attach subscribes the controller to d.
func (o *OrbitController) Attach(d *input.Dispatcher) *engine.Subscription {
	return d.Subscribe(o)
}

func (o *OrbitController) Token() *input.Token {
	return o.token
}

// Disabled reports whether gestures are suppressed, either explicitly or because another
// controller holds pointer focus.
func (o *OrbitController) Disabled() bool {
	return o.disabled || (o.arbiter != nil && o.arbiter.Blocks(o.token))
}

// SetDisabled suppresses gesture handling. Disabling ends any gesture in progress.
func (o *OrbitController) SetDisabled(disabled bool) {
	o.disabled = disabled
	if disabled && o.state != stateNone {
		o.endGesture()
	}
}

// Spherical returns the current camera offset from the target.
func (o *OrbitController) Spherical() geom.Spherical {
	return geom.SphericalFromVector(rl.Vector3Subtract(o.Camera.Position, o.Target))
}

func (o *OrbitController) zoomScale() float32 {
	return float32(math.Pow(0.95, float64(o.ZoomSpeed)))
}

// SaveState records the current target, position and zoom as the Reset point.
func (o *OrbitController) SaveState() {
	o.target0 = o.Target
	o.position0 = o.Camera.Position
	o.zoom0 = o.Camera.Zoom
}

// Reset restores the saved position, target and zoom, by default those at construction.
func (o *OrbitController) Reset() {
	o.Target = o.target0
	o.Camera.Position = o.position0
	o.Camera.Zoom = o.zoom0
	o.Update()
	o.endGesture()
}

// Update applies the accumulated gesture deltas and re-aims the camera. It runs every frame.
func (o *OrbitController) Update() {
	cam := o.Camera
	up := rl.Vector3Normalize(cam.Up)
	quat := geom.FromUnitVectors(up, geom.UnitY)
	quatInverse := geom.Conjugate(quat)

	offset := geom.RotateVector(rl.Vector3Subtract(cam.Position, o.Target), quat)
	s := geom.SphericalFromVector(offset)

	s.Theta += o.sphericalDelta.Theta
	s.Phi += o.sphericalDelta.Phi
	s.Phi = geom.Clamp(s.Phi, 0, math.Pi)
	s = s.MakeSafe()

	s.Radius *= o.scale
	s.Radius = geom.Clamp(s.Radius, o.MinDistance, o.MaxDistance)

	o.Target = rl.Vector3Add(o.Target, o.panOffset)

	offset = geom.RotateVector(s.Vector(), quatInverse)
	cam.Position = rl.Vector3Add(o.Target, offset)
	cam.LookAt(o.Target)

	o.scale = 1
	o.panOffset = rl.Vector3{}
	o.sphericalDelta = geom.Spherical{}
}

func (o *OrbitController) rotateLeft(angle float32) {
	o.sphericalDelta.Theta -= angle
}

func (o *OrbitController) rotateUp(angle float32) {
	o.sphericalDelta.Phi -= angle
}

func (o *OrbitController) panLeft(distance float32) {
	o.panOffset = rl.Vector3Add(o.panOffset, rl.Vector3Scale(o.Camera.RightAxis(), -distance))
}

func (o *OrbitController) panUp(distance float32) {
	o.panOffset = rl.Vector3Add(o.panOffset, rl.Vector3Scale(o.Camera.UpAxis(), distance))
}

// pan converts a pixel delta into a target offset on the camera plane.
func (o *OrbitController) pan(dx, dy float32) {
	dx *= o.PanSpeed
	dy *= o.PanSpeed
	cam := o.Camera
	if cam.Projection == Orthographic {
		zoom := cam.Zoom
		if zoom <= 0 {
			return
		}
		o.panLeft(dx * (cam.Right - cam.Left) / zoom / o.viewport.Width)
		o.panUp(dy * (cam.Top - cam.Bottom) / zoom / o.viewport.Height)
		return
	}
	dist := rl.Vector3Distance(cam.Position, o.Target) *
		float32(math.Tan(float64(cam.Fov)/2*math.Pi/180))
	o.panLeft(2 * dx * dist / o.viewport.Height)
	o.panUp(2 * dy * dist / o.viewport.Height)
}

func (o *OrbitController) dollyIn(scale float32) {
	if o.Camera.Projection == Orthographic {
		o.Camera.Zoom = float32(math.Max(0, float64(o.Camera.Zoom*scale)))
		return
	}
	o.scale /= scale
}

func (o *OrbitController) dollyOut(scale float32) {
	if o.Camera.Projection == Orthographic {
		o.Camera.Zoom = float32(math.Max(0, float64(o.Camera.Zoom/scale)))
		return
	}
	o.scale *= scale
}

func (o *OrbitController) handleRotate(x, y float32) {
	if o.viewport.Width <= 0 || o.viewport.Height <= 0 {
		return
	}
	dx := x - o.rotateStart.X
	dy := y - o.rotateStart.Y
	o.rotateLeft(2 * math.Pi * dx / o.viewport.Width * o.RotateSpeed)
	o.rotateUp(2 * math.Pi * dy / o.viewport.Height * o.RotateSpeed)
	o.rotateStart = rl.Vector2{X: x, Y: y}
	o.Update()
}

func (o *OrbitController) handlePan(x, y float32) {
	if o.viewport.Width <= 0 || o.viewport.Height <= 0 {
		return
	}
	o.pan(x-o.panStart.X, y-o.panStart.Y)
	o.panStart = rl.Vector2{X: x, Y: y}
	o.Update()
}

func (o *OrbitController) handleDolly(x, y float32) {
	dy := y - o.dollyStart.Y
	if dy > 0 {
		o.dollyIn(o.zoomScale())
	} else if dy < 0 {
		o.dollyOut(o.zoomScale())
	}
	o.dollyStart = rl.Vector2{X: x, Y: y}
	o.Update()
}

// beginGesture takes pointer focus for the new state, or drops the gesture if it cannot.
func (o *OrbitController) beginGesture(s orbitState) {
	if s == stateNone || (o.arbiter != nil && !o.arbiter.Claim(o.token)) {
		o.endGesture()
		return
	}
	o.state = s
}

func (o *OrbitController) endGesture() {
	o.state = stateNone
	if o.arbiter != nil {
		o.arbiter.Release(o.token)
	}
}

func (o *OrbitController) PointerDown(e *input.PointerEvent) {
	if o.Disabled() {
		return
	}
	if e.Device == input.Touch {
		o.touchStart(e)
		return
	}

	pos := rl.Vector2{X: e.X, Y: e.Y}
	switch {
	case e.Button == input.ButtonSecondary:
		o.rotateStart = pos
		o.beginGesture(stateRotate)
	case e.Button == input.ButtonMiddle:
		o.dollyStart = pos
		o.beginGesture(stateDolly)
	case e.Button == input.ButtonPrimary && e.Has(input.ModAlt):
		o.panStart = pos
		o.beginGesture(statePan)
	}
}

func (o *OrbitController) touchStart(e *input.PointerEvent) {
	switch len(e.Touches) {
	case 1:
		o.rotateStart = rl.Vector2{X: e.Touches[0].X, Y: e.Touches[0].Y}
		o.beginGesture(stateTouchRotate)
	case 2:
		o.dollyStart = rl.Vector2{Y: e.TouchDistance()}
		o.beginGesture(stateTouchDolly)
	case 3:
		o.panStart = rl.Vector2{X: e.Touches[0].X, Y: e.Touches[0].Y}
		o.beginGesture(stateTouchPan)
	default:
		o.endGesture()
	}
}

func (o *OrbitController) PointerMove(e *input.PointerEvent) {
	if o.Disabled() {
		return
	}
	if e.Device == input.Touch {
		o.touchMove(e)
		return
	}

	switch o.state {
	case stateRotate:
		o.handleRotate(e.X, e.Y)
	case stateDolly:
		o.handleDolly(e.X, e.Y)
	case statePan:
		o.handlePan(e.X, e.Y)
	}
}

func (o *OrbitController) touchMove(e *input.PointerEvent) {
	if o.state == stateNone {
		return
	}
	switch len(e.Touches) {
	case 1:
		o.handleRotate(e.Touches[0].X, e.Touches[0].Y)
	case 2:
		o.handleDolly(0, e.TouchDistance())
	case 3:
		o.handlePan(e.Touches[0].X, e.Touches[0].Y)
	default:
		o.endGesture()
	}
}

// PointerUp always ends the gesture, even when another controller holds focus.
func (o *OrbitController) PointerUp(e *input.PointerEvent) {
	if o.state == stateNone {
		return
	}
	o.endGesture()
}

func (o *OrbitController) Wheel(e *input.WheelEvent) {
	if o.Disabled() {
		return
	}
	if e.DeltaY < 0 {
		o.dollyOut(o.zoomScale())
	} else if e.DeltaY > 0 {
		o.dollyIn(o.zoomScale())
	}
	e.Handled = true
	o.Update()
}
