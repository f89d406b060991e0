package gizmo

import (
	"busic/internal/engine"
	"busic/internal/geom"
	"busic/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// planeHalfSize is large enough that a drag stays on its constraint plane across the screen.
const planeHalfSize = 25

type plane struct {
	axis Axis
	node *engine.Node
}

// Widget holds the handle and picker sets of every mode and the invisible constraint planes,
// all parented under Root. Only the current mode's elements are visible and pickable.
type Widget struct {
	Root *engine.Node

	mode        Mode
	sets        [3]elementSet
	planes      []plane
	activePlane Axis
	rotation    rl.Quaternion
}

func NewWidget() *Widget {
	w := &Widget{
		Root:        engine.NewNode("gizmo", nil),
		activePlane: AxisXYZE,
		rotation:    geom.Identity(),
	}
	w.sets[Translate] = translateElements()
	w.sets[Rotate] = rotateElements()
	w.sets[Scale] = scaleElements()
	for _, set := range w.sets {
		for _, e := range set.handles {
			w.Root.AddChild(e.Node)
		}
		for _, e := range set.pickers {
			w.Root.AddChild(e.Node)
		}
	}

	for _, p := range []struct {
		axis   Axis
		normal rl.Vector3
	}{
		{AxisXY, geom.UnitZ},
		{AxisYZ, geom.UnitX},
		{AxisXZ, geom.UnitY},
		{AxisXYZE, geom.UnitZ},
	} {
		node := engine.NewNode("plane-"+p.axis.String(), geom.Quad{Normal: p.normal, HalfSize: planeHalfSize})
		w.Root.AddChild(node)
		w.planes = append(w.planes, plane{axis: p.axis, node: node})
	}

	w.SetMode(Translate)
	return w
}

func (w *Widget) Mode() Mode {
	return w.mode
}

func (w *Widget) SetMode(m Mode) {
	w.mode = m
	for i, set := range w.sets {
		visible := Mode(i) == m
		for _, e := range set.handles {
			e.Node.Visible = visible
		}
		for _, e := range set.pickers {
			e.Node.Visible = visible
		}
	}
}

// Handles returns the current mode's visible handles.
func (w *Widget) Handles() []*Element {
	return w.sets[w.mode].handles
}

// Pickers returns the current mode's pick shapes as picking candidates.
func (w *Widget) Pickers() []picking.Candidate {
	pickers := w.sets[w.mode].pickers
	out := make([]picking.Candidate, len(pickers))
	for i, p := range pickers {
		out[i] = p
	}
	return out
}

// Place moves the root to position with a uniform scale.
func (w *Widget) Place(position rl.Vector3, scale float32) {
	w.Root.Position = position
	w.Root.Scale = rl.Vector3{X: scale, Y: scale, Z: scale}
}

// Update orients every element: screen-aligned ones (E, XYZE and their plane) face along
// eye, the rest take rotation (identity in world space, the object's rotation in local).
func (w *Widget) Update(rotation rl.Quaternion, eye rl.Vector3) {
	w.rotation = rotation
	look := geom.LookRotation(eye, rl.Vector3{}, geom.UnitY)
	orient := func(axis Axis, n *engine.Node) {
		if axis.ScreenAligned() {
			n.Rotation = look
		} else {
			n.Rotation = rotation
		}
	}
	for _, set := range w.sets {
		for _, e := range set.handles {
			orient(e.Axis, e.Node)
		}
		for _, e := range set.pickers {
			orient(e.Axis, e.Node)
		}
	}
	for _, p := range w.planes {
		orient(p.axis, p.node)
	}
}

// SetActivePlane picks the constraint plane for a pressed token. eye is the normalized
// camera-to-object direction in world space.
func (w *Widget) SetActivePlane(axis Axis, eye rl.Vector3) {
	if w.mode == Rotate {
		switch axis {
		case AxisX:
			w.activePlane = AxisYZ
		case AxisY:
			w.activePlane = AxisXZ
		case AxisZ:
			w.activePlane = AxisXY
		default:
			w.activePlane = AxisXYZE
		}
		return
	}

	e := geom.RotateVector(eye, geom.Conjugate(w.rotation))
	switch axis {
	case AxisX:
		w.activePlane = AxisXY
		if abs(e.Y) > abs(e.Z) {
			w.activePlane = AxisXZ
		}
	case AxisY:
		w.activePlane = AxisXY
		if abs(e.X) > abs(e.Z) {
			w.activePlane = AxisYZ
		}
	case AxisZ:
		w.activePlane = AxisXZ
		if abs(e.X) > abs(e.Y) {
			w.activePlane = AxisYZ
		}
	case AxisXY, AxisYZ, AxisXZ:
		w.activePlane = axis
	case AxisXYZ:
		w.activePlane = AxisXYZE
	}
}

// ActivePlane returns the token of the current constraint plane.
func (w *Widget) ActivePlane() Axis {
	return w.activePlane
}

// IntersectActivePlane returns where ray meets the current constraint plane.
func (w *Widget) IntersectActivePlane(ray rl.Ray) (rl.Vector3, bool) {
	for _, p := range w.planes {
		if p.axis != w.activePlane {
			continue
		}
		t, ok := p.node.IntersectRay(ray)
		if !ok {
			return rl.Vector3{}, false
		}
		return geom.PointAt(ray, t), true
	}
	return rl.Vector3{}, false
}

// Highlight tints the handles of axis and restores every other handle.
func (w *Widget) Highlight(axis Axis) {
	for _, set := range w.sets {
		for _, e := range set.handles {
			e.Material.Highlight(axis != AxisNone && e.Axis == axis)
		}
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
