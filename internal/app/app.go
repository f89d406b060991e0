package app

import (
	"busic/internal/audio"
	"busic/internal/config"
	"busic/internal/gizmo"
	"busic/internal/input"
	"busic/internal/logging"
	"busic/internal/object"
	"busic/internal/scene"
	"busic/internal/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

// App wires the window, input, scene and panel together and runs the frame loop.
type App struct {
	cfg        config.Config
	viewport   *input.Viewport
	dispatcher *input.Dispatcher
	poller     *input.Poller
	scene      *scene.Scene
	renderer   *scene.Renderer
	panel      *ui.LeftPanel
	sounds     *audio.Manager
}

// New builds the application. Nothing here touches the window, so it is safe before Run.
func New(cfg config.Config, backend audio.Backend) *App {
	viewport := &input.Viewport{Width: float32(cfg.Window.Width), Height: float32(cfg.Window.Height)}
	dispatcher := input.NewDispatcher()

	s := scene.New(cfg, viewport)
	s.Listen(dispatcher)

	a := &App{
		cfg:        cfg,
		viewport:   viewport,
		dispatcher: dispatcher,
		poller:     input.NewPoller(dispatcher),
		scene:      s,
		renderer:   scene.NewRenderer(clearColor(cfg.Window.ClearColor)),
		panel:      ui.NewLeftPanel(cfg, s.Controller),
		sounds:     audio.NewManager(backend, cfg.Audio.Directory, cfg.Audio.Volume),
	}
	a.poller.Blocked = a.panel.Contains
	a.panel.OnCreateGenerator = a.CreateGenerator
	a.panel.OnCreateDrum = a.CreateDrum
	return a
}

// defaultBackground matches the shipped clearColor.
var defaultBackground = rl.NewColor(0x1b, 0xaa, 0xaa, 255)

func clearColor(s string) rl.Color {
	c, err := config.ParseColor(s)
	if err != nil {
		logging.L().WithError(err).Warn("app: bad clear color, using default")
		return defaultBackground
	}
	return rl.NewColor(c.R, c.G, c.B, 255)
}

func (a *App) Scene() *scene.Scene {
	return a.scene
}

// CreateDrum adds a drum pad at the origin and selects it.
func (a *App) CreateDrum(kind audio.DrumKind) {
	drum := object.NewDrum(a.sounds.Drum(kind))
	a.scene.Add(drum, true)
	logging.L().WithFields(logrus.Fields{"drum": kind.String(), "id": drum.ID}).Info("app: drum created")
}

// CreateGenerator adds a ball generator at the origin and selects it.
func (a *App) CreateGenerator(bpm float32) {
	g := a.scene.AddGenerator(bpm, 0, 0, true)
	logging.L().WithFields(logrus.Fields{"bpm": bpm, "id": g.ID}).Info("app: generator created")
}

var modeKeys = map[int32]gizmo.Mode{
	rl.KeyW: gizmo.Translate,
	rl.KeyE: gizmo.Rotate,
	rl.KeyR: gizmo.Scale,
}

// HandleKey runs the shortcut bound to key.
func (a *App) HandleKey(key int32) {
	ctrl := a.scene.Controller
	if m, ok := modeKeys[key]; ok {
		if ctrl.Mode() != m {
			ctrl.SetMode(m)
		}
		return
	}
	switch key {
	case rl.KeyQ:
		if ctrl.Space() == gizmo.Local {
			ctrl.SetSpace(gizmo.World)
		} else {
			ctrl.SetSpace(gizmo.Local)
		}
	case rl.KeyDelete:
		a.scene.DeleteSelected()
	case rl.KeyHome:
		a.scene.Orbit.Reset()
	}
}

var shortcutKeys = []int32{rl.KeyW, rl.KeyE, rl.KeyR, rl.KeyQ, rl.KeyDelete, rl.KeyHome}

func (a *App) pollKeys() {
	for _, key := range shortcutKeys {
		if rl.IsKeyPressed(key) {
			a.HandleKey(key)
		}
	}
}

func (a *App) resize() {
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	if w == a.viewport.Width && h == a.viewport.Height {
		return
	}
	a.viewport.Width, a.viewport.Height = w, h
	logging.L().WithFields(logrus.Fields{"width": w, "height": h}).Debug("app: resize")
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagWindowHighdpi)
	rl.InitWindow(a.cfg.Window.Width, a.cfg.Window.Height, a.cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(a.cfg.Window.TargetFPS)
	rl.SetExitKey(rl.KeyNull)
	ui.ApplyStyle()
	defer a.scene.Close()

	logging.L().WithField("title", a.cfg.Window.Title).Info("app: running")
	for !rl.WindowShouldClose() {
		a.resize()
		a.poller.Poll()
		a.pollKeys()
		a.scene.Frame(rl.GetFrameTime())

		rl.BeginDrawing()
		a.renderer.Draw(a.scene)
		a.panel.Draw()
		rl.EndDrawing()
	}
}
