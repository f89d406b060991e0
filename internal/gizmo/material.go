package gizmo

import rl "github.com/gen2brain/raylib-go/raylib"

// HighlightColor is the tint of a hovered or dragged handle.
var HighlightColor = rl.NewColor(255, 255, 0, 255)

// Material is a handle's color and opacity. The construction-time values are kept so that
// Highlight(false) restores them exactly.
type Material struct {
	Color   rl.Color
	Opacity float32

	baseColor   rl.Color
	baseOpacity float32
}

func NewMaterial(color rl.Color, opacity float32) *Material {
	return &Material{
		Color:       color,
		Opacity:     opacity,
		baseColor:   color,
		baseOpacity: opacity,
	}
}

func (m *Material) Highlight(active bool) {
	if active {
		m.Color = HighlightColor
		m.Opacity = 1
		return
	}
	m.Color = m.baseColor
	m.Opacity = m.baseOpacity
}

// Tint is the color to draw with, opacity folded into alpha.
func (m *Material) Tint() rl.Color {
	return rl.Fade(m.Color, m.Opacity)
}
