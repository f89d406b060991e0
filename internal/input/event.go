package input

import "math"

type Device int

const (
	Mouse Device = iota
	Touch
)

type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModShift
	ModCtrl
)

// TouchPoint is one active finger in viewport pixels.
type TouchPoint struct {
	ID   int32
	X, Y float32
}

// PointerEvent carries a mouse or touch event. X and Y are the pointer (or first changed
// touch) position in window pixels. Setting Handled stops delivery to later handlers.
type PointerEvent struct {
	Device  Device
	Button  Button
	Mods    Modifier
	X, Y    float32
	Touches []TouchPoint
	// Leave marks a release caused by the pointer leaving the viewport.
	Leave   bool
	Handled bool
}

func (e *PointerEvent) Has(m Modifier) bool {
	return e.Mods&m != 0
}

// IgnoredButton reports whether a mouse event uses a non-primary button.
func (e *PointerEvent) IgnoredButton() bool {
	return e.Device == Mouse && e.Button != ButtonPrimary
}

// TouchDistance is the distance between the first two touches.
func (e *PointerEvent) TouchDistance() float32 {
	if len(e.Touches) < 2 {
		return 0
	}
	dx := e.Touches[0].X - e.Touches[1].X
	dy := e.Touches[0].Y - e.Touches[1].Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// WheelEvent follows the DOM convention: DeltaY > 0 scrolls towards the user.
type WheelEvent struct {
	DeltaY  float32
	X, Y    float32
	Handled bool
}

// Handler receives dispatched input.
type Handler interface {
	PointerDown(e *PointerEvent)
	PointerMove(e *PointerEvent)
	PointerUp(e *PointerEvent)
	Wheel(e *WheelEvent)
}
