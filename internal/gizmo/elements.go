package gizmo

import (
	"busic/internal/engine"
	"busic/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind selects how a handle is drawn.
type Kind int

const (
	KindLine Kind = iota
	KindCone
	KindCube
	KindSphere
	KindSquare
	KindCircle
)

// Element is one handle or picker. Geometry is in the element's own frame, which the widget
// orients every frame; the node carries that transform under the widget root.
type Element struct {
	Axis     Axis
	Kind     Kind
	Node     *engine.Node
	Material *Material

	// Start and End bound lines and cones (base to tip).
	Start, End rl.Vector3
	// Center of cubes, spheres, squares and circles.
	Center rl.Vector3
	// Size is the cone base radius, cube edge, sphere or circle radius, or square half size.
	Size float32
	// Normal of squares and circles.
	Normal rl.Vector3
}

// IntersectRay hit-tests the element's pick shape. Handles have no shape and never hit.
func (e *Element) IntersectRay(ray rl.Ray) (float32, bool) {
	if e == nil {
		return 0, false
	}
	return e.Node.IntersectRay(ray)
}

type elementSet struct {
	handles []*Element
	pickers []*Element
}

var (
	red     = rl.NewColor(255, 0, 0, 255)
	green   = rl.NewColor(0, 255, 0, 255)
	blue    = rl.NewColor(0, 0, 255, 255)
	white   = rl.NewColor(255, 255, 255, 255)
	black   = rl.NewColor(0, 0, 0, 255)
	cyan    = rl.NewColor(0, 255, 255, 255)
	magenta = rl.NewColor(255, 0, 255, 255)
	yellow  = rl.NewColor(204, 204, 0, 255)
	grey    = rl.NewColor(120, 120, 120, 255)
)

var unitAxes = [3]struct {
	axis  Axis
	dir   rl.Vector3
	color rl.Color
}{
	{AxisX, geom.UnitX, red},
	{AxisY, geom.UnitY, green},
	{AxisZ, geom.UnitZ, blue},
}

// planeHandles lists the planar handle tokens with their normal and offset direction.
var planeHandles = [3]struct {
	axis   Axis
	normal rl.Vector3
	offset rl.Vector3
	color  rl.Color
	alpha  float32
}{
	{AxisXY, geom.UnitZ, rl.Vector3{X: 1, Y: 1}, black, 0.5},
	{AxisYZ, geom.UnitX, rl.Vector3{Y: 1, Z: 1}, cyan, 0.25},
	{AxisXZ, geom.UnitY, rl.Vector3{X: 1, Z: 1}, magenta, 0.25},
}

func newElement(axis Axis, kind Kind, shape geom.Shape, mat *Material) *Element {
	return &Element{
		Axis:     axis,
		Kind:     kind,
		Node:     engine.NewNode(axis.String(), shape),
		Material: mat,
	}
}

// axisBox is a pick box along dir from center distance c with half length l and half width w.
func axisBox(dir rl.Vector3, c, l, w float32) geom.Box {
	half := rl.Vector3{X: w, Y: w, Z: w}
	switch dir {
	case geom.UnitX:
		half.X = l
	case geom.UnitY:
		half.Y = l
	default:
		half.Z = l
	}
	return geom.Box{Center: rl.Vector3Scale(dir, c), HalfExtents: half}
}

func translateElements() elementSet {
	var s elementSet
	for _, a := range unitAxes {
		line := newElement(a.axis, KindLine, nil, NewMaterial(a.color, 1))
		line.End = a.dir
		cone := newElement(a.axis, KindCone, nil, NewMaterial(a.color, 1))
		cone.Start = rl.Vector3Scale(a.dir, 0.9)
		cone.End = rl.Vector3Scale(a.dir, 1.1)
		cone.Size = 0.05
		s.handles = append(s.handles, line, cone)

		s.pickers = append(s.pickers, newElement(a.axis, KindCube, axisBox(a.dir, 0.6, 0.5, 0.2), nil))
	}

	center := newElement(AxisXYZ, KindSphere, nil, NewMaterial(white, 0.25))
	center.Size = 0.1
	s.handles = append(s.handles, center)
	s.pickers = append(s.pickers, newElement(AxisXYZ, KindSphere, geom.Sphere{Radius: 0.2}, nil))

	for _, p := range planeHandles {
		square := newElement(p.axis, KindSquare, nil, NewMaterial(p.color, p.alpha))
		square.Center = rl.Vector3Scale(p.offset, 0.15)
		square.Normal = p.normal
		square.Size = 0.145
		s.handles = append(s.handles, square)

		shape := geom.Quad{Center: rl.Vector3Scale(p.offset, 0.2), Normal: p.normal, HalfSize: 0.2}
		s.pickers = append(s.pickers, newElement(p.axis, KindSquare, shape, nil))
	}
	return s
}

func rotateElements() elementSet {
	var s elementSet
	for _, a := range unitAxes {
		ring := newElement(a.axis, KindCircle, nil, NewMaterial(a.color, 1))
		ring.Normal = a.dir
		ring.Size = 1
		s.handles = append(s.handles, ring)

		shape := geom.Ring{Normal: a.dir, Radius: 1, Tolerance: 0.12}
		s.pickers = append(s.pickers, newElement(a.axis, KindCircle, shape, nil))
	}

	// E and XYZE are drawn in the camera-facing frame, whose +Z points at the viewer
	outer := newElement(AxisE, KindCircle, nil, NewMaterial(yellow, 1))
	outer.Normal = geom.UnitZ
	outer.Size = 1.25
	inner := newElement(AxisXYZE, KindCircle, nil, NewMaterial(grey, 0.5))
	inner.Normal = geom.UnitZ
	inner.Size = 1
	s.handles = append(s.handles, outer, inner)

	s.pickers = append(s.pickers,
		newElement(AxisE, KindCircle, geom.Ring{Normal: geom.UnitZ, Radius: 1.25, Tolerance: 0.12}, nil),
		newElement(AxisXYZE, KindSphere, geom.Sphere{Radius: 0.85}, nil),
	)
	return s
}

func scaleElements() elementSet {
	var s elementSet
	for _, a := range unitAxes {
		line := newElement(a.axis, KindLine, nil, NewMaterial(a.color, 1))
		line.End = a.dir
		tip := newElement(a.axis, KindCube, nil, NewMaterial(a.color, 1))
		tip.Center = a.dir
		tip.Size = 0.125
		s.handles = append(s.handles, line, tip)

		s.pickers = append(s.pickers, newElement(a.axis, KindCube, axisBox(a.dir, 0.6, 0.5, 0.2), nil))
	}

	center := newElement(AxisXYZ, KindCube, nil, NewMaterial(white, 0.25))
	center.Size = 0.125
	s.handles = append(s.handles, center)

	shape := geom.Box{HalfExtents: rl.Vector3{X: 0.2, Y: 0.2, Z: 0.2}}
	s.pickers = append(s.pickers, newElement(AxisXYZ, KindCube, shape, nil))
	return s
}
