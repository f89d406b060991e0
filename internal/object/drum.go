package object

import (
	"math"

	"busic/internal/audio"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DrumRotation tilts drum pads so falling balls glance off them.
const DrumRotation = math.Pi / 4

var drumColors = map[audio.DrumKind]rl.Color{
	audio.Kick:    rl.Orange,
	audio.HighHat: rl.Gold,
	audio.Snare:   rl.SkyBlue,
}

// NewDrum creates a static pad at the origin that plays drum when hit.
func NewDrum(drum *audio.Drum) *Object {
	o := New(Box, drum, 0, 0, DrumRotation, true)
	o.Node.Name = drum.Kind.String()
	if c, ok := drumColors[drum.Kind]; ok {
		o.Node.Color = c
	}
	return o
}
