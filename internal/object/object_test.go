package object

import (
	"math"
	"testing"

	"busic/internal/audio"
	"busic/internal/geom"
	"busic/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTrigger struct {
	plays int
}

func (c *countingTrigger) Play() { c.plays++ }

type silentBackend struct {
	plays int
}

func (b *silentBackend) Load(string) (uint64, error)  { return 1, nil }
func (b *silentBackend) Play(uint64)                  { b.plays++ }
func (b *silentBackend) Stop(uint64)                  {}
func (b *silentBackend) IsPlaying(uint64) bool        { return false }
func (b *silentBackend) SetVolume(uint64, float32)    {}
func (b *silentBackend) Unload(uint64)                {}

func TestNewObjectMassAndPose(t *testing.T) {
	dynamic := New(Sphere, nil, 1, 2, 0, false)
	assert.Equal(t, float32(1), dynamic.Body.Mass)
	assert.False(t, dynamic.Static())
	assert.Equal(t, rl.Vector3{X: 1, Y: 2}, dynamic.Node.Position)
	assert.Equal(t, BallMaterial, dynamic.Body.Material)

	static := New(Box, nil, 0, 0, 0, true)
	assert.Equal(t, float32(0), static.Body.Mass)
	assert.True(t, static.Static())
	assert.Equal(t, DrumMaterial, static.Body.Material)
	assert.IsType(t, geom.Box{}, static.Node.Shape)
}

func TestNewObjectPreviewsAudio(t *testing.T) {
	trigger := &countingTrigger{}
	New(Box, trigger, 0, 0, 0, true)
	assert.Equal(t, 1, trigger.plays)
}

func TestSyncRoundTrip(t *testing.T) {
	o := New(Box, nil, 0, 0, 0, true)
	o.Node.Position = rl.Vector3{X: 3, Y: -1, Z: 0.5}
	o.Node.Rotation = geom.AxisAngle(geom.UnitY, 0.7)
	want := *o.Node

	o.UpdateReverse()
	assert.Equal(t, want.Position, o.Body.Position)
	assert.Equal(t, want.Rotation, o.Body.Quaternion)

	o.Update()
	assert.Equal(t, want.Position, o.Node.Position)
	assert.Equal(t, want.Rotation, o.Node.Rotation)
}

func TestUpdateFollowsBody(t *testing.T) {
	o := New(Sphere, nil, 0, 0, 0, false)
	o.Body.Position = rl.Vector3{Y: -4}
	o.Update()
	assert.Equal(t, rl.Vector3{Y: -4}, o.Node.Position)
}

func TestSleepZeroesMotionEveryUpdate(t *testing.T) {
	o := New(Sphere, nil, 0, 0, 0, false)
	o.Body.Velocity = rl.Vector3{Y: -3}
	o.Sleep()
	assert.True(t, o.Asleep())
	assert.Equal(t, float32(0), o.Body.Mass)
	assert.Equal(t, rl.Vector3{}, o.Body.Velocity)

	o.Body.Velocity = rl.Vector3{X: 1}
	o.Body.AngularVelocity = rl.Vector3{Z: 2}
	o.Update()
	assert.Equal(t, rl.Vector3{}, o.Body.Velocity)
	assert.Equal(t, rl.Vector3{}, o.Body.AngularVelocity)

	o.Wake()
	assert.False(t, o.Asleep())
	assert.Equal(t, float32(0), o.Body.Mass)
	o.SetMass(1)
	o.Body.Velocity = rl.Vector3{X: 1}
	o.Update()
	assert.Equal(t, rl.Vector3{X: 1}, o.Body.Velocity)
}

func TestStaticTriggerBouncesAndPlays(t *testing.T) {
	trigger := &countingTrigger{}
	o := New(Box, trigger, 0, 0, 0, true)
	trigger.plays = 0

	contact := &physics.Contact{Restitution: 0.2}
	o.onCollision(&physics.CollideEvent{Body: o.Body, Contact: contact})
	assert.Equal(t, float32(1), contact.Restitution)
	assert.Equal(t, 1, trigger.plays)
}

func TestDynamicObjectDoesNotTrigger(t *testing.T) {
	trigger := &countingTrigger{}
	o := New(Sphere, trigger, 0, 0, 0, false)
	trigger.plays = 0

	contact := &physics.Contact{Restitution: 0.2}
	o.onCollision(&physics.CollideEvent{Body: o.Body, Contact: contact})
	assert.Equal(t, float32(0.2), contact.Restitution)
	assert.Zero(t, trigger.plays)
}

func TestFallingBallHitsDrumOnce(t *testing.T) {
	trigger := &countingTrigger{}
	drum := New(Box, trigger, 0, 0, 0, true)
	ball := New(Sphere, nil, 0, 1, 0, false)
	trigger.plays = 0

	w := physics.NewWorld()
	w.AddBody(drum.Body)
	w.AddBody(ball.Body)
	for i := 0; i < 120 && trigger.plays == 0; i++ {
		w.Step()
	}
	require.Equal(t, 1, trigger.plays)
	w.Step()
	assert.Greater(t, ball.Body.Velocity.Y, float32(0))
}

func TestCloseStopsTriggering(t *testing.T) {
	trigger := &countingTrigger{}
	drum := New(Box, trigger, 0, 0, 0, true)
	ball := New(Sphere, nil, 0, 0.3, 0, false)
	trigger.plays = 0
	drum.Close()

	w := physics.NewWorld()
	w.AddBody(drum.Body)
	w.AddBody(ball.Body)
	w.Step()
	assert.Zero(t, trigger.plays)
}

func TestSetAppearanceSwapsShapes(t *testing.T) {
	o := New(Box, nil, 0, 0, 0, true)
	o.SetAppearance(Sphere)
	assert.Equal(t, Sphere, o.Appearance())
	assert.Equal(t, physics.Sphere{Radius: sphereRadius}, o.Body.Shape)
	assert.Equal(t, geom.Sphere{Radius: sphereRadius}, o.Node.Shape)
	assert.Equal(t, BallMaterial, o.Body.Material)
}

func TestNewDrumIsTiltedStaticPad(t *testing.T) {
	backend := &silentBackend{}
	m := audio.NewManager(backend, "sounds", 1)
	d := NewDrum(m.Drum(audio.Snare))

	assert.True(t, d.Static())
	assert.Equal(t, "Snare", d.Node.Name)
	want := geom.AxisAngle(geom.UnitZ, math.Pi/4)
	assert.InDelta(t, want.Z, d.Node.Rotation.Z, 1e-6)
	assert.InDelta(t, want.W, d.Node.Rotation.W, 1e-6)
	assert.NotNil(t, d.Audio())
}

func TestGeneratorEmitsBallsOnBeat(t *testing.T) {
	var created []*Object
	g := NewGenerator(120, func(o *Object) { created = append(created, o) }, 1, 2)
	require.IsType(t, &Generator{}, g.Behavior())
	assert.InDelta(t, 0.5, g.Behavior().(*Generator).Interval, 1e-6)
	assert.True(t, g.Static())

	g.Tick(0.2)
	g.Tick(0.2)
	assert.Empty(t, created)
	g.Tick(0.2)
	require.Len(t, created, 1)
	ball := created[0]
	assert.Equal(t, Sphere, ball.Appearance())
	assert.False(t, ball.Static())
	assert.Equal(t, rl.Vector3{X: 1, Y: 2}, ball.Body.Position)

	g.Tick(1.0)
	assert.Len(t, created, 3)

	g.Close()
	g.Tick(5)
	assert.Len(t, created, 3)
}

func TestIntervalForBPM(t *testing.T) {
	assert.InDelta(t, 1.0, IntervalForBPM(60), 1e-6)
	assert.InDelta(t, 60.0/380, IntervalForBPM(380), 1e-6)
	assert.InDelta(t, 60.0, IntervalForBPM(0), 1e-6)
}

func TestNewIDIsUnique(t *testing.T) {
	a, b := NewID(), NewID()
	assert.Len(t, a, 32)
	assert.NotContains(t, a, "-")
	assert.NotEqual(t, a, b)
}
