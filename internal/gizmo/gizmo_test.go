package gizmo

import (
	"math"
	"testing"

	"busic/internal/geom"
	"busic/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisMask(t *testing.T) {
	v := rl.Vector3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, rl.Vector3{X: 1}, AxisX.Mask(v))
	assert.Equal(t, rl.Vector3{Y: 2, Z: 3}, AxisYZ.Mask(v))
	assert.Equal(t, v, AxisXYZ.Mask(v))
	assert.Equal(t, rl.Vector3{}, AxisNone.Mask(v))
	assert.Equal(t, rl.Vector3{}, AxisE.Mask(v))
}

func TestAxisTokensMatchExactly(t *testing.T) {
	// XY must not count as X alone
	assert.True(t, AxisXY.HasX())
	assert.True(t, AxisXY.HasY())
	assert.False(t, AxisXY.HasZ())
	assert.NotEqual(t, AxisX, AxisXY)
	assert.True(t, AxisE.ScreenAligned())
	assert.True(t, AxisXYZE.ScreenAligned())
	assert.False(t, AxisXYZ.ScreenAligned())
	assert.Equal(t, "XYZE", AxisXYZE.String())
	assert.Equal(t, "invalid", Axis(42).String())
}

func TestParseModeAndSpace(t *testing.T) {
	m, ok := ParseMode("rotate")
	assert.True(t, ok)
	assert.Equal(t, Rotate, m)
	_, ok = ParseMode("shear")
	assert.False(t, ok)

	s, ok := ParseSpace("local")
	assert.True(t, ok)
	assert.Equal(t, Local, s)
}

func TestHighlightRestoresExactly(t *testing.T) {
	base := rl.NewColor(12, 34, 56, 255)
	m := NewMaterial(base, 0.25)

	m.Highlight(true)
	assert.Equal(t, HighlightColor, m.Color)
	assert.Equal(t, float32(1), m.Opacity)

	m.Highlight(false)
	assert.Equal(t, base, m.Color)
	assert.Equal(t, float32(0.25), m.Opacity)

	m.Highlight(false)
	assert.Equal(t, base, m.Color)
}

func newWidget() *Widget {
	w := NewWidget()
	w.Place(rl.Vector3{}, 1)
	w.Update(geom.Identity(), rl.Vector3{Z: 1})
	return w
}

func pickAxis(t *testing.T, w *Widget, ray rl.Ray) Axis {
	t.Helper()
	hit, ok := picking.IntersectRay(ray, w.Pickers())
	if !ok {
		return AxisNone
	}
	e, ok := hit.Candidate.(*Element)
	require.True(t, ok)
	return e.Axis
}

func TestTranslatePickers(t *testing.T) {
	w := newWidget()
	down := rl.Vector3{Z: -1}

	assert.Equal(t, AxisX, pickAxis(t, w, rl.Ray{Position: rl.Vector3{X: 0.6, Z: 5}, Direction: down}))
	assert.Equal(t, AxisY, pickAxis(t, w, rl.Ray{Position: rl.Vector3{Y: 0.8, Z: 5}, Direction: down}))
	assert.Equal(t, AxisNone, pickAxis(t, w, rl.Ray{Position: rl.Vector3{X: 3, Y: 3, Z: 5}, Direction: down}))
}

func TestPickersFollowPlacement(t *testing.T) {
	w := NewWidget()
	w.Place(rl.Vector3{X: 10}, 2)
	w.Update(geom.Identity(), rl.Vector3{Z: 1})

	ray := rl.Ray{Position: rl.Vector3{X: 11.2, Z: 5}, Direction: rl.Vector3{Z: -1}}
	assert.Equal(t, AxisX, pickAxis(t, w, ray))
}

func TestOnlyCurrentModeIsPickable(t *testing.T) {
	w := newWidget()
	w.SetMode(Rotate)
	assert.Equal(t, Rotate, w.Mode())

	ray := rl.Ray{Position: rl.Vector3{X: 0.6, Z: 5}, Direction: rl.Vector3{Z: -1}}
	assert.Equal(t, AxisXYZE, pickAxis(t, w, ray))

	ring := rl.Ray{Position: rl.Vector3{X: 1.25, Z: 5}, Direction: rl.Vector3{Z: -1}}
	assert.Equal(t, AxisE, pickAxis(t, w, ring))

	for _, h := range w.sets[Translate].handles {
		assert.False(t, h.Node.Visible)
	}
}

func TestActivePlaneSingleAxis(t *testing.T) {
	w := newWidget()

	w.SetActivePlane(AxisX, rl.Vector3{Y: 1, Z: 0.1})
	assert.Equal(t, AxisXZ, w.ActivePlane())
	w.SetActivePlane(AxisX, rl.Vector3{Y: 0.1, Z: 1})
	assert.Equal(t, AxisXY, w.ActivePlane())

	w.SetActivePlane(AxisY, rl.Vector3{X: 1, Z: 0.2})
	assert.Equal(t, AxisYZ, w.ActivePlane())
	w.SetActivePlane(AxisY, rl.Vector3{X: 0.2, Z: 1})
	assert.Equal(t, AxisXY, w.ActivePlane())

	w.SetActivePlane(AxisZ, rl.Vector3{X: 1, Y: 0.1})
	assert.Equal(t, AxisYZ, w.ActivePlane())
	w.SetActivePlane(AxisZ, rl.Vector3{X: 0.1, Y: 1})
	assert.Equal(t, AxisXZ, w.ActivePlane())
}

func TestActivePlanePlanarAndFree(t *testing.T) {
	w := newWidget()
	eye := rl.Vector3{Z: 1}
	for _, a := range []Axis{AxisXY, AxisYZ, AxisXZ} {
		w.SetActivePlane(a, eye)
		assert.Equal(t, a, w.ActivePlane())
	}
	w.SetActivePlane(AxisXYZ, eye)
	assert.Equal(t, AxisXYZE, w.ActivePlane())
}

func TestActivePlaneUsesGizmoRotation(t *testing.T) {
	w := NewWidget()
	w.Update(geom.AxisAngle(geom.UnitZ, math.Pi/2), rl.Vector3{Y: 1, Z: 0.1})

	// the world eye lies along the rotated X axis, so X can no longer use XZ
	w.SetActivePlane(AxisX, rl.Vector3{Y: 1, Z: 0.1})
	assert.Equal(t, AxisXY, w.ActivePlane())
}

func TestRotateActivePlanes(t *testing.T) {
	w := newWidget()
	w.SetMode(Rotate)
	eye := rl.Vector3{Y: 1}
	cases := map[Axis]Axis{AxisX: AxisYZ, AxisY: AxisXZ, AxisZ: AxisXY, AxisE: AxisXYZE, AxisXYZE: AxisXYZE}
	for pressed, want := range cases {
		w.SetActivePlane(pressed, eye)
		assert.Equal(t, want, w.ActivePlane(), pressed.String())
	}
}

func TestIntersectActivePlane(t *testing.T) {
	w := newWidget()
	w.SetActivePlane(AxisX, rl.Vector3{Y: 1})
	require.Equal(t, AxisXZ, w.ActivePlane())

	p, ok := w.IntersectActivePlane(rl.Ray{Position: rl.Vector3{X: 2, Y: 5, Z: 1}, Direction: rl.Vector3{Y: -1}})
	require.True(t, ok)
	assert.InDelta(t, 2, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, 1, p.Z, 1e-5)

	_, ok = w.IntersectActivePlane(rl.Ray{Position: rl.Vector3{Y: 5}, Direction: rl.Vector3{X: 1}})
	assert.False(t, ok)
}

func TestScreenAlignedElementsFaceEye(t *testing.T) {
	w := NewWidget()
	w.Update(geom.Identity(), rl.Vector3{X: 1})

	for _, p := range w.planes {
		facing := geom.RotateVector(geom.UnitZ, p.node.Rotation)
		if p.axis == AxisXYZE {
			assert.InDelta(t, 1, facing.X, 1e-5)
		} else {
			assert.InDelta(t, 1, facing.Z, 1e-5)
		}
	}
}

func TestHighlightAxis(t *testing.T) {
	w := newWidget()
	w.Highlight(AxisX)
	for _, h := range w.Handles() {
		if h.Axis == AxisX {
			assert.Equal(t, HighlightColor, h.Material.Color)
		} else {
			assert.NotEqual(t, HighlightColor, h.Material.Color)
		}
	}

	w.Highlight(AxisNone)
	for _, h := range w.Handles() {
		assert.Equal(t, h.Material.baseColor, h.Material.Color)
		assert.Equal(t, h.Material.baseOpacity, h.Material.Opacity)
	}
}
