package gizmo

import rl "github.com/gen2brain/raylib-go/raylib"

// Axis is the constraint token a handle carries: a single axis, a coordinate plane, the
// free XYZ handle, the screen-aligned ring E or the trackball XYZE.
type Axis int

const (
	AxisNone Axis = iota
	AxisX
	AxisY
	AxisZ
	AxisXY
	AxisYZ
	AxisXZ
	AxisXYZ
	AxisE
	AxisXYZE
)

var axisNames = [...]string{"none", "X", "Y", "Z", "XY", "YZ", "XZ", "XYZ", "E", "XYZE"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return "invalid"
	}
	return axisNames[a]
}

// axisComponents marks which of x, y, z each token constrains motion to.
var axisComponents = [...][3]bool{
	AxisNone: {},
	AxisX:    {true, false, false},
	AxisY:    {false, true, false},
	AxisZ:    {false, false, true},
	AxisXY:   {true, true, false},
	AxisYZ:   {false, true, true},
	AxisXZ:   {true, false, true},
	AxisXYZ:  {true, true, true},
	AxisE:    {},
	AxisXYZE: {true, true, true},
}

func (a Axis) components() [3]bool {
	if a < 0 || int(a) >= len(axisComponents) {
		return [3]bool{}
	}
	return axisComponents[a]
}

func (a Axis) HasX() bool { return a.components()[0] }
func (a Axis) HasY() bool { return a.components()[1] }
func (a Axis) HasZ() bool { return a.components()[2] }

// Mask zeroes the components of v the token does not constrain to.
func (a Axis) Mask(v rl.Vector3) rl.Vector3 {
	c := a.components()
	if !c[0] {
		v.X = 0
	}
	if !c[1] {
		v.Y = 0
	}
	if !c[2] {
		v.Z = 0
	}
	return v
}

// ScreenAligned reports whether elements of this token turn to face the camera.
func (a Axis) ScreenAligned() bool {
	return a == AxisE || a == AxisXYZE
}

type Mode int

const (
	Translate Mode = iota
	Rotate
	Scale
)

func (m Mode) String() string {
	switch m {
	case Translate:
		return "translate"
	case Rotate:
		return "rotate"
	case Scale:
		return "scale"
	}
	return "invalid"
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, bool) {
	for _, m := range []Mode{Translate, Rotate, Scale} {
		if m.String() == s {
			return m, true
		}
	}
	return Translate, false
}

type Space int

const (
	World Space = iota
	Local
)

func (s Space) String() string {
	if s == Local {
		return "local"
	}
	return "world"
}

// ParseSpace accepts "world" and "local".
func ParseSpace(s string) (Space, bool) {
	switch s {
	case "world":
		return World, true
	case "local":
		return Local, true
	}
	return World, false
}
