package input

import (
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Poller turns raylib's per-frame input state into dispatcher events.
type Poller struct {
	dispatcher *Dispatcher
	// Blocked reports window positions covered by UI; presses there are not dispatched.
	Blocked func(x, y float32) bool
	// TouchEnabled reads touch points. Desktop raylib reports mouse presses as touches too,
	// so it is only on for mobile builds.
	TouchEnabled bool

	lastMouse   rl.Vector2
	lastTouches []TouchPoint
	onScreen    bool
	pressed     [3]bool
}

func NewPoller(d *Dispatcher) *Poller {
	return &Poller{
		dispatcher:   d,
		onScreen:     true,
		TouchEnabled: runtime.GOOS == "android",
	}
}

var mouseButtons = [3]struct {
	button Button
	raylib rl.MouseButton
}{
	{ButtonPrimary, rl.MouseButtonLeft},
	{ButtonMiddle, rl.MouseButtonMiddle},
	{ButtonSecondary, rl.MouseButtonRight},
}

func modifiers() Modifier {
	var m Modifier
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		m |= ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		m |= ModCtrl
	}
	return m
}

// Poll reads the current input state and dispatches what changed since the last frame.
func (p *Poller) Poll() {
	if p.TouchEnabled {
		if touches := readTouches(); len(touches) > 0 || len(p.lastTouches) > 0 {
			p.pollTouches(touches)
			return
		}
	}
	p.pollMouse()
}

func readTouches() []TouchPoint {
	count := rl.GetTouchPointCount()
	touches := make([]TouchPoint, 0, count)
	for i := int32(0); i < count; i++ {
		pos := rl.GetTouchPosition(i)
		touches = append(touches, TouchPoint{ID: rl.GetTouchPointId(i), X: pos.X, Y: pos.Y})
	}
	return touches
}

func (p *Poller) pollTouches(touches []TouchPoint) {
	prev := p.lastTouches
	p.lastTouches = touches

	switch {
	case len(touches) == 0:
		last := prev[0]
		p.dispatcher.PointerUp(&PointerEvent{Device: Touch, X: last.X, Y: last.Y})
	case len(touches) != len(prev):
		e := &PointerEvent{Device: Touch, X: touches[0].X, Y: touches[0].Y, Touches: touches}
		if len(prev) == 0 && p.Blocked != nil && p.Blocked(e.X, e.Y) {
			p.lastTouches = nil
			return
		}
		p.dispatcher.PointerDown(e)
	case touchesMoved(prev, touches):
		p.dispatcher.PointerMove(&PointerEvent{Device: Touch, X: touches[0].X, Y: touches[0].Y, Touches: touches})
	}
}

func touchesMoved(a, b []TouchPoint) bool {
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			return true
		}
	}
	return false
}

func (p *Poller) pollMouse() {
	pos := rl.GetMousePosition()
	mods := modifiers()

	onScreen := rl.IsCursorOnScreen()
	if p.onScreen && !onScreen {
		p.pressed = [3]bool{}
		p.dispatcher.PointerLeave(&PointerEvent{Device: Mouse, Button: ButtonPrimary, Mods: mods, X: pos.X, Y: pos.Y})
	}
	p.onScreen = onScreen

	for i, mb := range mouseButtons {
		switch {
		case rl.IsMouseButtonPressed(mb.raylib):
			if p.Blocked != nil && p.Blocked(pos.X, pos.Y) {
				continue
			}
			p.pressed[i] = true
			p.dispatcher.PointerDown(&PointerEvent{Device: Mouse, Button: mb.button, Mods: mods, X: pos.X, Y: pos.Y})
		case rl.IsMouseButtonReleased(mb.raylib) && p.pressed[i]:
			p.pressed[i] = false
			p.dispatcher.PointerUp(&PointerEvent{Device: Mouse, Button: mb.button, Mods: mods, X: pos.X, Y: pos.Y})
		}
	}

	if pos != p.lastMouse {
		p.lastMouse = pos
		button := ButtonPrimary
		for i, mb := range mouseButtons {
			if p.pressed[i] {
				button = mb.button
				break
			}
		}
		p.dispatcher.PointerMove(&PointerEvent{Device: Mouse, Button: button, Mods: mods, X: pos.X, Y: pos.Y})
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if p.Blocked != nil && p.Blocked(pos.X, pos.Y) {
			return
		}
		p.dispatcher.Wheel(&WheelEvent{DeltaY: -wheel, X: pos.X, Y: pos.Y})
	}
}
