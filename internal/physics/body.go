package physics

import (
	"busic/internal/engine"
	"busic/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape is the collision volume of a body, centered on the body position.
type Shape interface {
	// Inertia returns the principal moments of inertia for the given mass.
	Inertia(mass float32) rl.Vector3
	BoundingRadius() float32
}

type Sphere struct {
	Radius float32
}

func (s Sphere) Inertia(mass float32) rl.Vector3 {
	i := 2.0 / 5.0 * mass * s.Radius * s.Radius
	return rl.Vector3{X: i, Y: i, Z: i}
}

func (s Sphere) BoundingRadius() float32 {
	return s.Radius
}

type Box struct {
	HalfExtents rl.Vector3
}

func (b Box) Inertia(mass float32) rl.Vector3 {
	x, y, z := 2*b.HalfExtents.X, 2*b.HalfExtents.Y, 2*b.HalfExtents.Z
	return rl.Vector3{
		X: mass / 12 * (y*y + z*z),
		Y: mass / 12 * (x*x + z*z),
		Z: mass / 12 * (x*x + y*y),
	}
}

func (b Box) BoundingRadius() float32 {
	return rl.Vector3Length(b.HalfExtents)
}

// Material tags bodies so a ContactMaterial can be looked up for a pair.
type Material struct {
	Name string
}

// Body is a rigid body. A body with Mass <= 0 is immovable.
type Body struct {
	ID              uint64
	Position        rl.Vector3
	Quaternion      rl.Quaternion
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3
	Force           rl.Vector3
	Torque          rl.Vector3
	Inertia         rl.Vector3
	Mass            float32
	Shape           Shape
	Material        *Material

	collide engine.EventWithArg[*CollideEvent]
}

func NewBody(mass float32, shape Shape) *Body {
	b := &Body{
		Quaternion: geom.Identity(),
		Mass:       mass,
	}
	b.SetShape(shape)
	return b
}

// SetShape replaces the collision shape and recomputes the inertia.
func (b *Body) SetShape(shape Shape) {
	b.Shape = shape
	b.UpdateInertia()
}

func (b *Body) UpdateInertia() {
	if b.Shape == nil || b.Mass <= 0 {
		b.Inertia = rl.Vector3{}
		return
	}
	b.Inertia = b.Shape.Inertia(b.Mass)
}

func (b *Body) IsStatic() bool {
	return b.Mass <= 0
}

// ZeroMotion clears force, torque, inertia, velocity and angular velocity.
func (b *Body) ZeroMotion() {
	b.Force = rl.Vector3{}
	b.Torque = rl.Vector3{}
	b.Inertia = rl.Vector3{}
	b.Velocity = rl.Vector3{}
	b.AngularVelocity = rl.Vector3{}
}

// OnCollide subscribes to contacts that begin this step.
func (b *Body) OnCollide(fn func(*CollideEvent)) *engine.Subscription {
	return b.collide.AddListener(fn)
}

func (b *Body) boundingRadius() float32 {
	if b.Shape == nil {
		return 0
	}
	return b.Shape.BoundingRadius()
}
