package object

import (
	"busic/internal/geom"
	"busic/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Appearance selects the render and collision shape of an object.
type Appearance int

const (
	Box Appearance = iota
	Sphere
)

const (
	boxSize      = 0.5
	boxHalf      = boxSize / 2
	sphereRadius = 0.075
)

// Contact materials: boxes are drums, spheres are balls.
var (
	DrumMaterial = &physics.Material{Name: "drum"}
	BallMaterial = &physics.Material{Name: "ball"}
)

func (a Appearance) String() string {
	if a == Sphere {
		return "sphere"
	}
	return "box"
}

func (a Appearance) shapes() (geom.Shape, physics.Shape, *physics.Material) {
	if a == Sphere {
		return geom.Sphere{Radius: sphereRadius}, physics.Sphere{Radius: sphereRadius}, BallMaterial
	}
	half := rl.Vector3{X: boxHalf, Y: boxHalf, Z: boxHalf}
	return geom.Box{HalfExtents: half}, physics.Box{HalfExtents: half}, DrumMaterial
}
