package controller

import (
	"math"

	"busic/internal/geom"
	"busic/internal/gizmo"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// scaleSensitivity divides the drag distance applied to scale.
const scaleSensitivity = 5

// session is the state captured when a drag starts.
type session struct {
	// offset is where the pointer first hit the constraint plane.
	offset        rl.Vector3
	worldPosition rl.Vector3

	oldPosition   rl.Vector3
	oldScale      rl.Vector3
	oldRotation   rl.Quaternion
	worldRotation rl.Quaternion

	parentRotation rl.Quaternion
	parentInvScale rl.Vector3

	eye  rl.Vector3
	look rl.Quaternion

	// bodyApplied is the part of the translation already added to the body.
	bodyApplied rl.Vector3
}

// beginDrag raycasts the constraint plane for the current axis and, on a hit, snapshots the
// node and enters the dragging state. A handle hit whose plane is missed stays idle.
func (c *Controller) beginDrag(ray rl.Ray) bool {
	eye := rl.Vector3Normalize(rl.Vector3Subtract(c.camera.Position, c.worldPosition))
	c.widget.SetActivePlane(c.axis, eye)
	point, ok := c.widget.IntersectActivePlane(ray)
	if !ok {
		return false
	}

	parent := c.node.ParentFrame()
	c.session = session{
		offset:         point,
		worldPosition:  c.worldPosition,
		oldPosition:    c.node.Position,
		oldScale:       c.node.Scale,
		oldRotation:    c.node.Rotation,
		worldRotation:  c.worldRotation,
		parentRotation: parent.Rotation,
		parentInvScale: geom.Inverse(parent.Scale),
		eye:            eye,
		look:           geom.LookRotation(eye, rl.Vector3{}, geom.UnitY),
	}
	c.dragging = true
	return true
}

// drag applies one pointer step. A ray that misses the plane leaves the last transform.
func (c *Controller) drag(ray rl.Ray) {
	point, ok := c.widget.IntersectActivePlane(ray)
	if !ok {
		return
	}

	switch c.mode {
	case gizmo.Translate:
		c.translate(point)
	case gizmo.Scale:
		c.scale(point)
	case gizmo.Rotate:
		c.rotate(point)
	}
	c.Update()
	c.ObjectChange.Invoke()
}

func (c *Controller) translate(point rl.Vector3) {
	s := &c.session
	delta := geom.Mul(rl.Vector3Subtract(point, s.offset), s.parentInvScale)

	var move rl.Vector3
	if c.Space() == gizmo.Local && c.axis != gizmo.AxisXYZ {
		d := geom.RotateVector(delta, geom.Conjugate(s.worldRotation))
		move = geom.RotateVector(c.axis.Mask(d), s.oldRotation)
	} else {
		move = geom.RotateVector(c.axis.Mask(delta), geom.Conjugate(s.parentRotation))
	}

	position := rl.Vector3Add(s.oldPosition, move)
	if c.TranslationSnap > 0 {
		position = c.snapPosition(position)
	}
	c.node.Position = position

	if c.body != nil {
		applied := rl.Vector3Subtract(position, s.oldPosition)
		c.body.Position = rl.Vector3Add(c.body.Position, rl.Vector3Subtract(applied, s.bodyApplied))
		s.bodyApplied = applied
	}
}

// snapPosition rounds the constrained components of p, measured in the gizmo's frame, to
// multiples of TranslationSnap.
func (c *Controller) snapPosition(p rl.Vector3) rl.Vector3 {
	local := c.Space() == gizmo.Local
	if local {
		p = geom.RotateVector(p, geom.Conjugate(c.session.worldRotation))
	}
	step := c.TranslationSnap
	if c.axis.HasX() {
		p.X = roundTo(p.X, step)
	}
	if c.axis.HasY() {
		p.Y = roundTo(p.Y, step)
	}
	if c.axis.HasZ() {
		p.Z = roundTo(p.Z, step)
	}
	if local {
		p = geom.RotateVector(p, c.session.worldRotation)
	}
	return p
}

func (c *Controller) scale(point rl.Vector3) {
	s := &c.session
	delta := geom.Mul(rl.Vector3Subtract(point, s.offset), s.parentInvScale)
	old := s.oldScale

	if c.axis == gizmo.AxisXYZ {
		largest := geom.MaxComponent(old)
		if largest == 0 {
			return
		}
		c.node.Scale = rl.Vector3Scale(old, 1+delta.Y/largest/scaleSensitivity)
		return
	}

	d := geom.RotateVector(delta, geom.Conjugate(s.worldRotation))
	scale := old
	switch c.axis {
	case gizmo.AxisX:
		scale.X = old.X + d.X/scaleSensitivity
	case gizmo.AxisY:
		scale.Y = old.Y + d.Y/scaleSensitivity
	case gizmo.AxisZ:
		scale.Z = old.Z + d.Z/scaleSensitivity
	}
	c.node.Scale = scale
}

func (c *Controller) rotate(point rl.Vector3) {
	s := &c.session
	current := geom.Mul(rl.Vector3Subtract(point, s.worldPosition), s.parentInvScale)
	start := geom.Mul(rl.Vector3Subtract(s.offset, s.worldPosition), s.parentInvScale)
	parentInv := geom.Conjugate(s.parentRotation)

	switch {
	case c.axis == gizmo.AxisE:
		inv := geom.Conjugate(s.look)
		p := geom.RotateVector(current, inv)
		o := geom.RotateVector(start, inv)
		angle := atan2(p.Y, p.X) - atan2(o.Y, o.X)
		q := geom.AxisAngle(s.eye, angle)
		c.node.Rotation = geom.Compose(geom.Compose(parentInv, q), s.worldRotation)

	case c.axis == gizmo.AxisXYZE:
		axis := rl.Vector3CrossProduct(current, start)
		if rl.Vector3LengthSqr(axis) == 0 {
			// back over the press point
			c.node.Rotation = s.oldRotation
			return
		}
		q := geom.AxisAngle(rl.Vector3Normalize(axis), -rl.Vector3Angle(current, start))
		c.node.Rotation = geom.Compose(geom.Compose(parentInv, q), s.worldRotation)

	case c.Space() == gizmo.Local:
		inv := geom.Conjugate(s.worldRotation)
		q := c.axisRotation(geom.RotateVector(current, inv), geom.RotateVector(start, inv))
		c.node.Rotation = geom.Compose(s.oldRotation, q)

	default:
		q := c.axisRotation(current, start)
		c.node.Rotation = geom.Compose(geom.Compose(parentInv, q), s.worldRotation)
	}
}

// axisRotation is the rotation about the constrained axis that turns start towards current.
func (c *Controller) axisRotation(current, start rl.Vector3) rl.Quaternion {
	var axis rl.Vector3
	var angle float32
	switch c.axis {
	case gizmo.AxisX:
		axis, angle = geom.UnitX, atan2(current.Z, current.Y)-atan2(start.Z, start.Y)
	case gizmo.AxisY:
		axis, angle = geom.UnitY, atan2(current.X, current.Z)-atan2(start.X, start.Z)
	case gizmo.AxisZ:
		axis, angle = geom.UnitZ, atan2(current.Y, current.X)-atan2(start.Y, start.X)
	default:
		return geom.Identity()
	}
	angle = wrapAngle(angle)
	if c.RotationSnap > 0 {
		angle = roundTo(angle, c.RotationSnap)
	}
	return geom.AxisAngle(axis, angle)
}

func roundTo(v, step float32) float32 {
	return float32(math.Round(float64(v/step))) * step
}

func atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
