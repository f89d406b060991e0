package object

import (
	"busic/internal/engine"
	"busic/internal/geom"
	"busic/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Trigger is the audio cue a static object plays when something hits it.
type Trigger interface {
	Play()
}

// Behavior is per-frame logic owned by an object.
type Behavior interface {
	Tick(o *Object, dt float32)
	Close()
}

// Object pairs a render node with a physics body and keeps the two in step.
type Object struct {
	ID   string
	Node *engine.Node
	Body *physics.Body

	appearance Appearance
	static     bool
	asleep     bool
	audio      Trigger
	behavior   Behavior
	collide    *engine.Subscription
}

// New creates an object at (x, y, 0) rotated by rotation radians about Z. Static objects
// have zero mass. A non-nil audio trigger is played once as a preview.
func New(appearance Appearance, audio Trigger, x, y, rotation float32, static bool) *Object {
	var mass float32 = 1
	if static {
		mass = 0
	}
	o := &Object{
		ID:     NewID(),
		Node:   engine.NewNode(appearance.String(), nil),
		Body:   physics.NewBody(mass, nil),
		static: static,
	}
	o.SetPosition(x, y, 0)
	if audio != nil {
		o.SetAudio(audio)
	}
	o.SetAppearance(appearance)
	o.SetRotation(rotation)
	o.collide = o.Body.OnCollide(o.onCollision)
	o.Update()
	return o
}

func (o *Object) Static() bool {
	return o.static
}

func (o *Object) Asleep() bool {
	return o.asleep
}

func (o *Object) Appearance() Appearance {
	return o.appearance
}

func (o *Object) Audio() Trigger {
	return o.audio
}

func (o *Object) Behavior() Behavior {
	return o.behavior
}

// SetAudio replaces the trigger and previews it.
func (o *Object) SetAudio(t Trigger) {
	o.audio = t
	if t != nil {
		t.Play()
	}
}

func (o *Object) SetAppearance(a Appearance) {
	shape, body, material := a.shapes()
	o.appearance = a
	o.Node.Shape = shape
	o.Body.SetShape(body)
	o.Body.Material = material
}

func (o *Object) SetPosition(x, y, z float32) {
	o.Body.Position = rl.Vector3{X: x, Y: y, Z: z}
}

// SetRotation orients the body by angle radians about Z.
func (o *Object) SetRotation(angle float32) {
	o.Body.Quaternion = geom.AxisAngle(geom.UnitZ, angle)
}

// SetMass changes the body mass, for example to restore it after Wake.
func (o *Object) SetMass(mass float32) {
	o.Body.Mass = mass
	o.Body.UpdateInertia()
}

// Update copies the body pose onto the node. While asleep the body's motion is zeroed on
// every call so it cannot drift.
func (o *Object) Update() {
	o.Node.Position = o.Body.Position
	o.Node.Rotation = o.Body.Quaternion
	if o.asleep {
		o.Body.ZeroMotion()
	}
}

// UpdateReverse pushes an edited node pose back into the body.
func (o *Object) UpdateReverse() {
	o.Body.Position = o.Node.Position
	o.Body.Quaternion = o.Node.Rotation
}

// Sleep freezes the body: its mass drops to zero and its motion is cleared.
func (o *Object) Sleep() {
	o.asleep = true
	o.Body.Mass = 0
	o.Body.ZeroMotion()
}

// Wake clears the asleep flag. Restoring a mass is up to the caller.
func (o *Object) Wake() {
	o.asleep = false
}

// Tick runs the object's behavior, if any.
func (o *Object) Tick(dt float32) {
	if o.behavior != nil {
		o.behavior.Tick(o, dt)
	}
}

// Close detaches the collision listener, stops the behavior and releases a closable trigger.
func (o *Object) Close() {
	o.collide.Close()
	if c, ok := o.audio.(interface{ Close() }); ok {
		c.Close()
	}
	if o.behavior != nil {
		o.behavior.Close()
	}
}

func (o *Object) onCollision(e *physics.CollideEvent) {
	if !o.static || o.audio == nil {
		return
	}
	e.Contact.Restitution = 1
	o.audio.Play()
}
