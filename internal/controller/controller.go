package controller

import (
	"busic/internal/camera"
	"busic/internal/engine"
	"busic/internal/geom"
	"busic/internal/gizmo"
	"busic/internal/input"
	"busic/internal/logging"
	"busic/internal/physics"
	"busic/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// DefaultSize is the gizmo size factor: the widget spans distance/6*Size world units.
const DefaultSize = 0.5

// Controller drags the attached node and body with the transform gizmo. It is an input
// handler and must be subscribed ahead of the camera so that handle presses are consumed.
//
// States: idle (no axis), hover (axis set, not dragging) and dragging.
type Controller struct {
	// ObjectChange fires after every drag step that changed the node.
	ObjectChange engine.Event

	// TranslationSnap is the position increment in world units and RotationSnap the angle
	// increment in radians. Zero disables snapping.
	TranslationSnap float32
	RotationSnap    float32
	Size            float32

	widget  *gizmo.Widget
	camera  *camera.Camera
	picker  *picking.Service
	arbiter *input.Arbiter
	token   *input.Token

	node *engine.Node
	body *physics.Body

	mode     gizmo.Mode
	space    gizmo.Space
	axis     gizmo.Axis
	dragging bool
	session  session

	worldPosition rl.Vector3
	worldRotation rl.Quaternion
	eye           rl.Vector3
}

func New(cam *camera.Camera, picker *picking.Service, arbiter *input.Arbiter) *Controller {
	return &Controller{
		Size:          DefaultSize,
		widget:        gizmo.NewWidget(),
		camera:        cam,
		picker:        picker,
		arbiter:       arbiter,
		token:         input.NewToken("gizmo"),
		worldRotation: geom.Identity(),
	}
}

// Listen subscribes the controller to d.
func (c *Controller) Listen(d *input.Dispatcher) *engine.Subscription {
	return d.Subscribe(c)
}

func (c *Controller) log() *logrus.Entry {
	entry := logging.L().WithField("mode", c.mode.String())
	if c.node != nil {
		entry = entry.WithField("node", c.node.Name)
	}
	return entry
}

// Attach makes node and body the manipulated pair.
func (c *Controller) Attach(node *engine.Node, body *physics.Body) {
	if node == nil {
		c.Detach()
		return
	}
	c.endDrag()
	c.node = node
	c.body = body
	c.axis = gizmo.AxisNone
	c.release()
	c.Update()
	c.log().Debug("gizmo: attach")
}

// Detach drops the manipulated pair. Every pointer handler is a no-op until the next Attach.
func (c *Controller) Detach() {
	if c.node == nil {
		return
	}
	c.log().Debug("gizmo: detach")
	c.endDrag()
	c.node = nil
	c.body = nil
	c.axis = gizmo.AxisNone
	c.widget.Highlight(gizmo.AxisNone)
	c.release()
}

func (c *Controller) Attached() bool {
	return c.node != nil
}

func (c *Controller) Node() *engine.Node {
	return c.node
}

func (c *Controller) Body() *physics.Body {
	return c.body
}

func (c *Controller) Widget() *gizmo.Widget {
	return c.widget
}

func (c *Controller) Mode() gizmo.Mode {
	return c.mode
}

// SetMode switches the handle set. A drag in progress is abandoned.
func (c *Controller) SetMode(m gizmo.Mode) {
	if m == c.mode {
		return
	}
	c.endDrag()
	c.mode = m
	c.axis = gizmo.AxisNone
	c.release()
	c.widget.SetMode(m)
	c.Update()
	c.log().Info("gizmo: mode changed")
}

// Space is the orientation of the handles. Scale always works in local space.
func (c *Controller) Space() gizmo.Space {
	if c.mode == gizmo.Scale {
		return gizmo.Local
	}
	return c.space
}

// SetSpace stores the preferred space; it takes effect outside scale mode.
func (c *Controller) SetSpace(s gizmo.Space) {
	c.space = s
	c.Update()
}

func (c *Controller) Axis() gizmo.Axis {
	return c.axis
}

func (c *Controller) Dragging() bool {
	return c.dragging
}

// Update places the widget on the attached node at a constant apparent size and orients
// its handles. It runs every frame and after every drag step.
func (c *Controller) Update() {
	if c.node == nil {
		return
	}
	c.worldPosition = c.node.WorldPosition()
	c.worldRotation = c.node.WorldRotation()

	camPos := c.camera.Position
	c.widget.Place(c.worldPosition, rl.Vector3Distance(c.worldPosition, camPos)/6*c.Size)

	if c.camera.Projection == camera.Orthographic {
		c.eye = rl.Vector3Negate(c.camera.Forward())
	} else {
		c.eye = rl.Vector3Normalize(rl.Vector3Subtract(camPos, c.worldPosition))
	}

	rotation := geom.Identity()
	if c.Space() == gizmo.Local {
		rotation = c.worldRotation
	}
	c.widget.Update(rotation, c.eye)
	c.widget.Highlight(c.axis)
}

func (c *Controller) blocked() bool {
	return c.arbiter != nil && c.arbiter.Blocks(c.token)
}

func (c *Controller) claim() bool {
	return c.arbiter == nil || c.arbiter.Claim(c.token)
}

func (c *Controller) release() {
	if c.arbiter != nil {
		c.arbiter.Release(c.token)
	}
}

// pickHandle returns the axis of the picker under window pixel (x, y).
func (c *Controller) pickHandle(x, y float32) gizmo.Axis {
	hit, ok := c.picker.Pick(x, y, c.widget.Pickers())
	if !ok {
		return gizmo.AxisNone
	}
	return hit.Candidate.(*gizmo.Element).Axis
}

// hover tracks the handle under the pointer and holds pointer focus while one is hovered.
func (c *Controller) hover(e *input.PointerEvent) {
	if c.node == nil || c.dragging || e.IgnoredButton() || c.blocked() {
		return
	}
	axis := c.pickHandle(e.X, e.Y)
	if axis != gizmo.AxisNone {
		c.claim()
	} else {
		c.release()
	}
	if axis != c.axis {
		c.axis = axis
		c.Update()
	}
}

func (c *Controller) PointerDown(e *input.PointerEvent) {
	if c.node == nil || c.dragging || e.IgnoredButton() || c.blocked() {
		return
	}
	axis := c.pickHandle(e.X, e.Y)
	if axis == gizmo.AxisNone || !c.claim() {
		return
	}
	e.Handled = true

	c.axis = axis
	c.Update()
	if !c.beginDrag(c.picker.Ray(e.X, e.Y)) {
		return
	}
	c.log().WithField("axis", axis.String()).Debug("gizmo: drag start")
}

func (c *Controller) PointerMove(e *input.PointerEvent) {
	if c.node == nil || e.IgnoredButton() {
		return
	}
	if !c.dragging {
		c.hover(e)
		return
	}
	e.Handled = true
	c.drag(c.picker.Ray(e.X, e.Y))
}

func (c *Controller) PointerUp(e *input.PointerEvent) {
	if e.IgnoredButton() {
		return
	}
	if c.dragging {
		c.log().WithField("axis", c.axis.String()).Debug("gizmo: drag end")
	}
	c.dragging = false
	if c.node == nil {
		c.release()
		return
	}

	// touch has no passive hover, and a pointer that left the viewport hovers nothing
	if e.Device == input.Touch || e.Leave {
		c.axis = gizmo.AxisNone
		c.release()
		c.Update()
		return
	}
	c.hover(e)
}

func (c *Controller) Wheel(e *input.WheelEvent) {}

func (c *Controller) endDrag() {
	if c.dragging {
		c.dragging = false
		c.release()
	}
}
