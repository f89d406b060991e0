package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name   string
	log    *[]string
	handle bool
}

func (r *recorder) PointerDown(e *PointerEvent) {
	*r.log = append(*r.log, r.name+":down")
	if r.handle {
		e.Handled = true
	}
}

func (r *recorder) PointerMove(e *PointerEvent) { *r.log = append(*r.log, r.name+":move") }

func (r *recorder) PointerUp(e *PointerEvent) {
	if e.Leave {
		*r.log = append(*r.log, r.name+":leave")
		return
	}
	*r.log = append(*r.log, r.name+":up")
}

func (r *recorder) Wheel(e *WheelEvent) { *r.log = append(*r.log, r.name+":wheel") }

func TestDispatcherOrderAndHandled(t *testing.T) {
	var log []string
	d := NewDispatcher()
	d.Subscribe(&recorder{name: "gizmo", log: &log, handle: true})
	d.Subscribe(&recorder{name: "camera", log: &log})

	d.PointerDown(&PointerEvent{})
	d.PointerMove(&PointerEvent{})
	d.PointerUp(&PointerEvent{})
	d.Wheel(&WheelEvent{DeltaY: 1})

	assert.Equal(t, []string{
		"gizmo:down",
		"gizmo:move", "camera:move",
		"gizmo:up", "camera:up",
		"gizmo:wheel", "camera:wheel",
	}, log)
}

func TestDispatcherLeaveIsRelease(t *testing.T) {
	var log []string
	d := NewDispatcher()
	d.Subscribe(&recorder{name: "gizmo", log: &log})

	d.PointerLeave(&PointerEvent{})
	assert.Equal(t, []string{"gizmo:leave"}, log)
}

func TestSubscriptionDetaches(t *testing.T) {
	var log []string
	d := NewDispatcher()
	sub := d.Subscribe(&recorder{name: "a", log: &log})
	d.Subscribe(&recorder{name: "b", log: &log})

	sub.Close()
	sub.Close()
	d.PointerMove(&PointerEvent{})

	assert.Equal(t, []string{"b:move"}, log)
	assert.Equal(t, 1, d.HandlerCount())
}

func TestArbiter(t *testing.T) {
	a := NewArbiter()
	camera := NewToken("camera")
	gizmo := NewToken("gizmo")

	require.True(t, a.Claim(gizmo))
	assert.True(t, a.Claim(gizmo), "re-claiming own focus succeeds")
	assert.False(t, a.Claim(camera))
	assert.True(t, a.Blocks(camera))
	assert.False(t, a.Blocks(gizmo))

	a.Release(camera)
	assert.Same(t, gizmo, a.Owner(), "only the owner can release")

	a.Release(gizmo)
	assert.Nil(t, a.Owner())
	assert.False(t, a.Blocks(camera))
}

func TestViewportNDC(t *testing.T) {
	v := &Viewport{X: 100, Y: 50, Width: 200, Height: 100}

	assert.Equal(t, float32(-1), v.NDC(100, 50).X)
	assert.Equal(t, float32(1), v.NDC(100, 50).Y)

	center := v.NDC(200, 100)
	assert.InDelta(t, 0, center.X, 1e-6)
	assert.InDelta(t, 0, center.Y, 1e-6)

	corner := v.NDC(300, 150)
	assert.InDelta(t, 1, corner.X, 1e-6)
	assert.InDelta(t, -1, corner.Y, 1e-6)

	assert.True(t, v.Contains(150, 60))
	assert.False(t, v.Contains(50, 60))
	assert.Equal(t, float32(2), v.Aspect())
}

func TestPointerEventHelpers(t *testing.T) {
	e := &PointerEvent{Mods: ModAlt | ModShift, Touches: []TouchPoint{{X: 0, Y: 0}, {X: 3, Y: 4}}}
	assert.True(t, e.Has(ModAlt))
	assert.False(t, e.Has(ModCtrl))
	assert.Equal(t, float32(5), e.TouchDistance())

	assert.False(t, e.IgnoredButton())
	e.Button = ButtonSecondary
	assert.True(t, e.IgnoredButton())
	e.Device = Touch
	assert.False(t, e.IgnoredButton())
}
