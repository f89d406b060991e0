package object

import rl "github.com/gen2brain/raylib-go/raylib"

// Generator drops a new ball from its object's position every Interval seconds.
type Generator struct {
	Interval float32

	elapsed  float32
	onCreate func(*Object)
	closed   bool
}

// IntervalForBPM converts beats per minute to seconds between beats.
func IntervalForBPM(bpm float32) float32 {
	if bpm < 1 {
		bpm = 1
	}
	return 60 / bpm
}

// NewGenerator creates a static box at (x, y) emitting balls at bpm through onCreate.
func NewGenerator(bpm float32, onCreate func(*Object), x, y float32) *Object {
	o := New(Box, nil, x, y, 0, true)
	o.Node.Name = "generator"
	o.Node.Color = rl.DarkGray
	o.behavior = &Generator{
		Interval: IntervalForBPM(bpm),
		onCreate: onCreate,
	}
	return o
}

func (g *Generator) Tick(o *Object, dt float32) {
	if g.closed || g.onCreate == nil || g.Interval <= 0 {
		return
	}
	g.elapsed += dt
	for g.elapsed >= g.Interval {
		g.elapsed -= g.Interval
		pos := o.Node.Position
		g.onCreate(New(Sphere, nil, pos.X, pos.Y, 0, false))
	}
}

func (g *Generator) Close() {
	g.closed = true
}
