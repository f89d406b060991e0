package ui

import (
	"fmt"
	"math"

	"busic/internal/audio"
	"busic/internal/config"
	"busic/internal/controller"
	"busic/internal/gizmo"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	panelWidth = 200
	padding    = 10
	rowHeight  = 24
	rowGap     = 6

	// snap steps used when a toggle is switched on without a configured value
	defaultTranslationSnap = 0.25
	defaultRotationSnap    = math.Pi / 12
)

var drumButtons = []struct {
	label string
	kind  audio.DrumKind
}{
	{"Create HighHat", audio.HighHat},
	{"Create Snare", audio.Snare},
	{"Create Kick", audio.Kick},
}

// LeftPanel is the creation and gizmo settings panel docked on the left edge.
type LeftPanel struct {
	Bounds rl.Rectangle
	Title  string

	BPM            float32
	MinBPM, MaxBPM float32

	OnCreateGenerator func(bpm float32)
	OnCreateDrum      func(kind audio.DrumKind)

	controller      *controller.Controller
	translationSnap float32
	rotationSnap    float32
}

func NewLeftPanel(cfg config.Config, ctrl *controller.Controller) *LeftPanel {
	p := &LeftPanel{
		Bounds:          rl.Rectangle{Width: panelWidth, Height: float32(cfg.Window.Height)},
		Title:           cfg.Window.Title,
		MinBPM:          cfg.Generator.MinBPM,
		MaxBPM:          cfg.Generator.MaxBPM,
		controller:      ctrl,
		translationSnap: cfg.Gizmo.TranslationSnapValue(),
		rotationSnap:    cfg.Gizmo.RotationSnapRadians(),
	}
	if p.translationSnap == 0 {
		p.translationSnap = defaultTranslationSnap
	}
	if p.rotationSnap == 0 {
		p.rotationSnap = defaultRotationSnap
	}
	p.SetBPM(cfg.Generator.BPM)
	return p
}

// Contains reports whether window pixel (x, y) is over the panel.
func (p *LeftPanel) Contains(x, y float32) bool {
	b := p.Bounds
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// SetBPM stores v rounded to a whole beat and clamped to the allowed range.
func (p *LeftPanel) SetBPM(v float32) {
	v = float32(math.Round(float64(v)))
	if v < p.MinBPM {
		v = p.MinBPM
	}
	if v > p.MaxBPM {
		v = p.MaxBPM
	}
	p.BPM = v
}

func (p *LeftPanel) TranslationSnapping() bool {
	return p.controller.TranslationSnap > 0
}

// SetTranslationSnapping switches the controller's position snap between off and the panel step.
func (p *LeftPanel) SetTranslationSnapping(on bool) {
	if on {
		p.controller.TranslationSnap = p.translationSnap
	} else {
		p.controller.TranslationSnap = 0
	}
}

func (p *LeftPanel) RotationSnapping() bool {
	return p.controller.RotationSnap > 0
}

func (p *LeftPanel) SetRotationSnapping(on bool) {
	if on {
		p.controller.RotationSnap = p.rotationSnap
	} else {
		p.controller.RotationSnap = 0
	}
}

func (p *LeftPanel) createGenerator() {
	if p.OnCreateGenerator != nil {
		p.OnCreateGenerator(p.BPM)
	}
}

func (p *LeftPanel) createDrum(kind audio.DrumKind) {
	if p.OnCreateDrum != nil {
		p.OnCreateDrum(kind)
	}
}

// Draw renders the panel and runs any button the user pressed this frame.
func (p *LeftPanel) Draw() {
	p.Bounds.Height = float32(rl.GetScreenHeight())
	rl.DrawRectangleRec(p.Bounds, colorBgPanel)

	x := p.Bounds.X + padding
	w := p.Bounds.Width - 2*padding
	y := p.Bounds.Y + padding
	row := func(h float32) rl.Rectangle {
		r := rl.Rectangle{X: x, Y: y, Width: w, Height: h}
		y += h + rowGap
		return r
	}

	gui.Label(row(rowHeight+6), p.Title)

	gui.Label(row(rowHeight), fmt.Sprintf("BPM: %d", int(p.BPM)))
	p.SetBPM(gui.Slider(row(rowHeight), "", "", p.BPM, p.MinBPM, p.MaxBPM))

	if gui.Button(row(rowHeight), "Create Generator") {
		p.createGenerator()
	}
	for _, b := range drumButtons {
		if gui.Button(row(rowHeight), b.label) {
			p.createDrum(b.kind)
		}
	}

	y += rowGap
	gui.Label(row(rowHeight), "Gizmo: "+p.controller.Mode().String())
	third := (w - 2*rowGap) / 3
	for i, m := range []gizmo.Mode{gizmo.Translate, gizmo.Rotate, gizmo.Scale} {
		bounds := rl.Rectangle{X: x + float32(i)*(third+rowGap), Y: y, Width: third, Height: rowHeight}
		if gui.Button(bounds, modeLabels[m]) && p.controller.Mode() != m {
			p.controller.SetMode(m)
		}
	}
	y += rowHeight + rowGap

	local := p.controller.Space() == gizmo.Local
	if next := gui.CheckBox(checkBounds(x, &y), "Local space", local); next != local {
		if next {
			p.controller.SetSpace(gizmo.Local)
		} else {
			p.controller.SetSpace(gizmo.World)
		}
	}
	snap := p.TranslationSnapping()
	if next := gui.CheckBox(checkBounds(x, &y), "Snap position", snap); next != snap {
		p.SetTranslationSnapping(next)
	}
	snap = p.RotationSnapping()
	if next := gui.CheckBox(checkBounds(x, &y), "Snap rotation", snap); next != snap {
		p.SetRotationSnapping(next)
	}
}

var modeLabels = map[gizmo.Mode]string{
	gizmo.Translate: "Move",
	gizmo.Rotate:    "Rotate",
	gizmo.Scale:     "Scale",
}

func checkBounds(x float32, y *float32) rl.Rectangle {
	r := rl.Rectangle{X: x, Y: *y, Width: rowHeight - 6, Height: rowHeight - 6}
	*y += rowHeight + 2
	return r
}
