package input

import rl "github.com/gen2brain/raylib-go/raylib"

// Viewport is the drawing area's rectangle in window pixels.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

func (v *Viewport) Contains(x, y float32) bool {
	return x >= v.X && x < v.X+v.Width && y >= v.Y && y < v.Y+v.Height
}

// NDC converts window pixels to normalized device coordinates, +Y up.
func (v *Viewport) NDC(x, y float32) rl.Vector2 {
	if v.Width <= 0 || v.Height <= 0 {
		return rl.Vector2{}
	}
	return rl.Vector2{
		X: (x-v.X)/v.Width*2 - 1,
		Y: -((y-v.Y)/v.Height)*2 + 1,
	}
}

func (v *Viewport) Aspect() float32 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}
