package physics

import (
	"math"
	"testing"

	"busic/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestGravityIntegration(t *testing.T) {
	w := NewWorld()
	ball := NewBody(1, Sphere{Radius: 0.075})
	w.AddBody(ball)

	w.Step()

	if !near(ball.Velocity.Y, -10.0/60) {
		t.Errorf("Expected vy %f, got %f", -10.0/60, ball.Velocity.Y)
	}
	if ball.Position.Y >= 0 {
		t.Errorf("Ball should fall, got y=%f", ball.Position.Y)
	}
}

func TestStaticBodyDoesNotMove(t *testing.T) {
	w := NewWorld()
	drum := NewBody(0, Box{HalfExtents: rl.Vector3{X: 0.25, Y: 0.25, Z: 0.25}})
	w.AddBody(drum)

	for i := 0; i < 10; i++ {
		w.Step()
	}
	if drum.Position != (rl.Vector3{}) || drum.Velocity != (rl.Vector3{}) {
		t.Errorf("Static body moved: pos=%v vel=%v", drum.Position, drum.Velocity)
	}
	if len(w.Statics) != 1 || len(w.Dynamics) != 0 {
		t.Error("Mass 0 bodies belong to the static list")
	}
}

func TestCollideFiresOnBothBodiesBeforeSolve(t *testing.T) {
	w := NewWorld()
	drum := NewBody(0, Box{HalfExtents: rl.Vector3{X: 0.25, Y: 0.25, Z: 0.25}})
	ball := NewBody(1, Sphere{Radius: 0.075})
	ball.Position = rl.Vector3{Y: 0.3}
	ball.Velocity = rl.Vector3{Y: -2}
	w.AddBody(drum)
	w.AddBody(ball)

	var drumHits, ballHits int
	drum.OnCollide(func(e *CollideEvent) {
		drumHits++
		if e.Body != drum || e.Target != ball {
			t.Error("Event should name the receiving body first")
		}
		e.Contact.Restitution = 1
	})
	ball.OnCollide(func(e *CollideEvent) { ballHits++ })

	w.Step()

	if drumHits != 1 || ballHits != 1 {
		t.Fatalf("Expected one collide per body, got drum=%d ball=%d", drumHits, ballHits)
	}
	// restitution 1 reflects the approach speed plus one step of gravity
	if ball.Velocity.Y <= 1.5 {
		t.Errorf("Expected elastic bounce, got vy=%f", ball.Velocity.Y)
	}

	// still touching or separating: no second enter
	w.Step()
	if drumHits != 1 {
		t.Errorf("collide should fire once per touch, got %d", drumHits)
	}
}

func TestSphereVsSphere(t *testing.T) {
	a := NewBody(1, Sphere{Radius: 0.5})
	b := NewBody(1, Sphere{Radius: 0.5})
	b.Position = rl.Vector3{X: 0.8}

	c, ok := collide(a, b)
	if !ok {
		t.Fatal("Expected contact")
	}
	if !near(c.Depth, 0.2) || !near(c.Normal.X, 1) {
		t.Errorf("Unexpected contact %+v", c)
	}

	b.Position = rl.Vector3{X: 1.1}
	if _, ok := collide(a, b); ok {
		t.Error("Separated spheres should not touch")
	}
}

func TestSphereVsRotatedBox(t *testing.T) {
	box := NewBody(0, Box{HalfExtents: rl.Vector3{X: 0.25, Y: 0.25, Z: 0.25}})
	box.Quaternion = geom.AxisAngle(geom.UnitZ, math.Pi/4)
	ball := NewBody(1, Sphere{Radius: 0.075})

	// the rotated box's corner points straight up at y = 0.25*sqrt(2)
	ball.Position = rl.Vector3{Y: 0.25*float32(math.Sqrt2) + 0.05}
	c, ok := collide(box, ball)
	if !ok {
		t.Fatal("Expected contact with the box corner")
	}
	if c.A != box || c.Normal.Y <= 0 {
		t.Errorf("Normal should point from box to ball, got %+v", c.Normal)
	}

	ball.Position = rl.Vector3{Y: 0.25*float32(math.Sqrt2) + 0.1}
	if _, ok := collide(box, ball); ok {
		t.Error("Ball above the corner should not touch")
	}
}

func TestSphereInsideBoxPushesOut(t *testing.T) {
	box := NewBody(0, Box{HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1}})
	ball := NewBody(1, Sphere{Radius: 0.1})
	ball.Position = rl.Vector3{Y: 0.9}

	c, ok := collide(ball, box)
	if !ok {
		t.Fatal("Expected contact")
	}
	// normal from ball towards box is -Y, so the ball is pushed up
	if !near(c.Normal.Y, -1) || !near(c.Depth, 0.2) {
		t.Errorf("Unexpected contact %+v", c)
	}
}

func TestContactMaterialLookup(t *testing.T) {
	w := NewWorld()
	ballMat := &Material{Name: "ball"}
	drumMat := &Material{Name: "drum"}
	w.AddContactMaterial(drumMat, ballMat, ContactMaterial{Restitution: 0.9, Friction: 0.1})

	a := NewBody(1, Sphere{Radius: 1})
	a.Material = ballMat
	b := NewBody(0, Sphere{Radius: 1})
	b.Material = drumMat

	if cm := w.contactMaterial(a, b); cm.Restitution != 0.9 {
		t.Errorf("Expected pair material, got %+v", cm)
	}
	a.Material = nil
	if cm := w.contactMaterial(a, b); cm != w.DefaultContact {
		t.Errorf("Expected default material, got %+v", cm)
	}
}

func TestMassChangeReclassifies(t *testing.T) {
	w := NewWorld()
	ball := NewBody(1, Sphere{Radius: 0.075})
	w.AddBody(ball)

	ball.Mass = 0
	ball.ZeroMotion()
	w.Step()
	if len(w.Statics) != 1 || ball.Velocity != (rl.Vector3{}) {
		t.Error("Body with mass 0 should stop and become static")
	}

	ball.Mass = 1
	w.Step()
	if len(w.Dynamics) != 1 {
		t.Error("Body with mass restored should be dynamic again")
	}
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld()
	a := NewBody(1, Sphere{Radius: 1})
	b := NewBody(0, Sphere{Radius: 1})
	w.AddBody(a)
	w.AddBody(b)
	w.AddBody(a)

	if w.BodyCount() != 2 {
		t.Errorf("Expected 2 bodies, got %d", w.BodyCount())
	}
	if a.ID == b.ID {
		t.Error("Bodies should get unique IDs")
	}

	w.RemoveBody(a)
	w.RemoveBody(b)
	if w.BodyCount() != 0 {
		t.Errorf("Expected empty world, got %d", w.BodyCount())
	}
}

func TestZeroMotion(t *testing.T) {
	b := NewBody(1, Box{HalfExtents: rl.Vector3{X: 1, Y: 1, Z: 1}})
	b.Velocity = rl.Vector3{X: 1}
	b.AngularVelocity = rl.Vector3{Y: 1}
	b.Force = rl.Vector3{Z: 1}
	b.Torque = rl.Vector3{X: 1}

	b.ZeroMotion()
	if b.Velocity != (rl.Vector3{}) || b.AngularVelocity != (rl.Vector3{}) ||
		b.Force != (rl.Vector3{}) || b.Torque != (rl.Vector3{}) || b.Inertia != (rl.Vector3{}) {
		t.Errorf("ZeroMotion left motion behind: %+v", b)
	}
}
