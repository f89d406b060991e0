package app

import (
	"testing"

	"busic/internal/audio"
	"busic/internal/config"
	"busic/internal/gizmo"
	"busic/internal/logging"
	"busic/internal/object"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	loaded   []string
	plays    int
	unloaded int
}

func (f *fakeBackend) Load(path string) (uint64, error) {
	f.loaded = append(f.loaded, path)
	return uint64(len(f.loaded)), nil
}
func (f *fakeBackend) Play(uint64)               { f.plays++ }
func (f *fakeBackend) Stop(uint64)               {}
func (f *fakeBackend) IsPlaying(uint64) bool     { return false }
func (f *fakeBackend) SetVolume(uint64, float32) {}
func (f *fakeBackend) Unload(uint64)             { f.unloaded++ }

func newTestApp(t *testing.T) (*App, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	a := New(config.Default(), backend)
	t.Cleanup(a.scene.Close)
	return a, backend
}

func TestCreateDrumSelectsAndPreviews(t *testing.T) {
	a, backend := newTestApp(t)
	a.CreateDrum(audio.Kick)

	objects := a.Scene().Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, "Kick", objects[0].Node.Name)
	assert.Same(t, objects[0], a.Scene().Selected())
	assert.Equal(t, []string{"assets/audio/kick.wav"}, backend.loaded)
	assert.Equal(t, 1, backend.plays)
}

func TestCreateGenerator(t *testing.T) {
	a, _ := newTestApp(t)
	a.panel.SetBPM(240)
	a.panel.OnCreateGenerator(a.panel.BPM)

	g := a.Scene().Selected()
	require.NotNil(t, g)
	require.IsType(t, &object.Generator{}, g.Behavior())
	assert.InDelta(t, 0.25, g.Behavior().(*object.Generator).Interval, 1e-6)
}

func TestModeKeys(t *testing.T) {
	a, _ := newTestApp(t)
	ctrl := a.Scene().Controller

	a.HandleKey(rl.KeyE)
	assert.Equal(t, gizmo.Rotate, ctrl.Mode())
	a.HandleKey(rl.KeyR)
	assert.Equal(t, gizmo.Scale, ctrl.Mode())
	a.HandleKey(rl.KeyW)
	assert.Equal(t, gizmo.Translate, ctrl.Mode())
}

func TestSpaceToggle(t *testing.T) {
	a, _ := newTestApp(t)
	ctrl := a.Scene().Controller
	require.Equal(t, gizmo.World, ctrl.Space())

	a.HandleKey(rl.KeyQ)
	assert.Equal(t, gizmo.Local, ctrl.Space())
	a.HandleKey(rl.KeyQ)
	assert.Equal(t, gizmo.World, ctrl.Space())
}

func TestDeleteKeyRemovesSelection(t *testing.T) {
	a, backend := newTestApp(t)
	a.CreateDrum(audio.Snare)
	a.HandleKey(rl.KeyDelete)

	assert.Empty(t, a.Scene().Objects())
	assert.False(t, a.Scene().Controller.Attached())
	assert.Equal(t, 1, backend.unloaded)
}

func TestHomeResetsCamera(t *testing.T) {
	a, _ := newTestApp(t)
	orbit := a.Scene().Orbit
	cam := a.Scene().Camera
	position, rotation := cam.Position, cam.Rotation

	orbit.Target = rl.Vector3{X: 3}
	orbit.Update()
	require.NotEqual(t, rotation, cam.Rotation)

	a.HandleKey(rl.KeyHome)
	assert.Equal(t, rl.Vector3{}, orbit.Target)
	assert.InDelta(t, position.Z, cam.Position.Z, 1e-4)
	assert.InDelta(t, rotation.Y, cam.Rotation.Y, 1e-4)
	assert.InDelta(t, rotation.W, cam.Rotation.W, 1e-4)
}

func TestPanelBlocksPointer(t *testing.T) {
	a, _ := newTestApp(t)
	require.NotNil(t, a.poller.Blocked)
	assert.True(t, a.poller.Blocked(20, 20))
	assert.False(t, a.poller.Blocked(600, 300))
}

func TestBadClearColorFallsBackWithWarning(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	defer logging.ReplaceGlobal(logger)()

	cfg := config.Default()
	cfg.Window.ClearColor = "teal"
	a := New(cfg, &fakeBackend{})
	defer a.scene.Close()

	assert.Equal(t, defaultBackground, a.renderer.Background)
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "app: bad clear color, using default" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestClearColorFromConfig(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Equal(t, rl.NewColor(0x1b, 0xaa, 0xaa, 255), a.renderer.Background)
}
