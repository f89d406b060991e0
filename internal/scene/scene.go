package scene

import (
	"math"
	"strings"

	"busic/internal/camera"
	"busic/internal/config"
	"busic/internal/controller"
	"busic/internal/engine"
	"busic/internal/gizmo"
	"busic/internal/input"
	"busic/internal/logging"
	"busic/internal/object"
	"busic/internal/physics"
	"busic/internal/picking"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
)

const (
	// clickSlop is how far in pixels a press may travel and still count as a click.
	clickSlop = 5
	// maxSubSteps bounds the physics catch-up after a slow frame.
	maxSubSteps = 5
)

// Scene owns the objects and drives physics, camera and gizmo once per frame.
type Scene struct {
	Camera     *camera.Camera
	Orbit      *camera.OrbitController
	Controller *controller.Controller
	World      *physics.World
	Picker     *picking.Service
	Arbiter    *input.Arbiter

	viewport *input.Viewport
	graph    *engine.Scene
	objects  []*object.Object
	subs     []*engine.Subscription
	elapsed  float32

	pressed        bool
	pressX, pressY float32
}

// New builds a scene from the settings, rendering into viewport.
func New(cfg config.Config, viewport *input.Viewport) *Scene {
	cam := NewCamera(cfg.Camera, viewport.Aspect())
	arbiter := input.NewArbiter()
	picker := picking.NewService(cam, viewport)

	orbit := camera.NewOrbitController(cam, viewport, arbiter)
	orbit.RotateSpeed = cfg.Controls.RotateSpeed
	orbit.ZoomSpeed = cfg.Controls.ZoomSpeed
	orbit.PanSpeed = cfg.Controls.PanSpeed
	orbit.MinDistance = cfg.Controls.MinDistance
	orbit.MaxDistance = cfg.Controls.MaxDistance
	orbit.SaveState()

	ctrl := controller.New(cam, picker, arbiter)
	ctrl.Size = cfg.Gizmo.Size
	ctrl.TranslationSnap = cfg.Gizmo.TranslationSnapValue()
	ctrl.RotationSnap = cfg.Gizmo.RotationSnapRadians()
	if space, ok := gizmo.ParseSpace(strings.ToLower(cfg.Gizmo.Space)); ok {
		ctrl.SetSpace(space)
	}

	s := &Scene{
		Camera:     cam,
		Orbit:      orbit,
		Controller: ctrl,
		World:      NewWorld(cfg.World),
		Picker:     picker,
		Arbiter:    arbiter,
		viewport:   viewport,
		graph:      engine.NewScene("busic"),
	}
	s.subs = append(s.subs, ctrl.ObjectChange.AddListener(s.syncSelected))
	return s
}

// NewCamera builds the configured camera at (0, 0, Z) looking down -Z. The orthographic
// volume frames the same height at the origin as the perspective one does.
func NewCamera(cfg config.Camera, aspect float32) *camera.Camera {
	var cam *camera.Camera
	if cfg.Projection == "orthographic" {
		halfH := cfg.Z * float32(math.Tan(float64(cfg.Fov)*math.Pi/360))
		halfW := halfH * aspect
		cam = camera.NewOrthographic(-halfW, halfW, halfH, -halfH, cfg.Near, cfg.Far)
	} else {
		cam = camera.NewPerspective(cfg.Fov, aspect, cfg.Near, cfg.Far)
	}
	cam.Position = rl.Vector3{Z: cfg.Z}
	cam.LookAt(rl.Vector3{})
	return cam
}

// NewWorld builds the physics world with the drum/ball contact material registered.
func NewWorld(cfg config.World) *physics.World {
	w := physics.NewWorld()
	w.Gravity = rl.Vector3{X: cfg.Gravity[0], Y: cfg.Gravity[1], Z: cfg.Gravity[2]}
	w.TimeStep = cfg.TimeStep
	w.Iterations = cfg.SolverIterations
	w.AddContactMaterial(object.DrumMaterial, object.BallMaterial, physics.ContactMaterial{
		Restitution: cfg.BallDrumRestitution,
		Friction:    cfg.Friction,
	})
	return w
}

// Listen subscribes the gizmo, the camera and click selection to d, in that order, so a
// press on a gizmo handle never reaches the camera or the selection.
func (s *Scene) Listen(d *input.Dispatcher) {
	s.subs = append(s.subs,
		s.Controller.Listen(d),
		s.Orbit.Attach(d),
		d.Subscribe(s),
	)
}

// Objects returns a snapshot of the objects in insertion order.
func (s *Scene) Objects() []*object.Object {
	return append([]*object.Object(nil), s.objects...)
}

func (s *Scene) Graph() *engine.Scene {
	return s.graph
}

// Add registers o with the render graph and the physics world. With attach set the gizmo
// moves to o.
func (s *Scene) Add(o *object.Object, attach bool) {
	s.objects = append(s.objects, o)
	s.graph.Add(o.Node)
	s.World.AddBody(o.Body)
	logging.L().WithFields(logrus.Fields{"id": o.ID, "name": o.Node.Name}).Debug("scene: add")
	if attach {
		s.attach(o)
	}
}

// AddGenerator creates a generator at (x, y) whose balls are added to the scene.
func (s *Scene) AddGenerator(bpm, x, y float32, attach bool) *object.Object {
	g := object.NewGenerator(bpm, func(o *object.Object) { s.Add(o, false) }, x, y)
	s.Add(g, attach)
	return g
}

// Remove drops o from the scene and releases it. Removing the selected object detaches
// the gizmo.
func (s *Scene) Remove(o *object.Object) bool {
	for i, other := range s.objects {
		if other != o {
			continue
		}
		if s.Controller.Node() == o.Node {
			s.Controller.Detach()
		}
		o.Close()
		s.objects = append(s.objects[:i], s.objects[i+1:]...)
		s.World.RemoveBody(o.Body)
		s.graph.Remove(o.Node)
		logging.L().WithFields(logrus.Fields{"id": o.ID, "name": o.Node.Name}).Debug("scene: remove")
		return true
	}
	return false
}

// Selected returns the object under the gizmo, or nil.
func (s *Scene) Selected() *object.Object {
	node := s.Controller.Node()
	if node == nil {
		return nil
	}
	for _, o := range s.objects {
		if o.Node == node {
			return o
		}
	}
	return nil
}

// DeleteSelected removes the object under the gizmo.
func (s *Scene) DeleteSelected() bool {
	o := s.Selected()
	if o == nil {
		return false
	}
	return s.Remove(o)
}

// Select attaches the gizmo to the nearest object under the pointer, or detaches it when
// nothing is hit.
func (s *Scene) Select(x, y float32) *object.Object {
	candidates := make([]picking.Candidate, len(s.objects))
	for i, o := range s.objects {
		candidates[i] = o.Node
	}
	if hit, ok := s.Picker.Pick(x, y, candidates); ok {
		for _, o := range s.objects {
			if picking.Candidate(o.Node) == hit.Candidate {
				s.attach(o)
				return o
			}
		}
	}
	s.Controller.Detach()
	return nil
}

func (s *Scene) attach(o *object.Object) {
	s.Controller.Detach()
	s.Controller.Attach(o.Node, o.Body)
}

// syncSelected copies the dragged node onto its body. It runs after the controller's own
// incremental body update and overrides it, so the body lands exactly on the node.
func (s *Scene) syncSelected() {
	if o := s.Selected(); o != nil {
		o.UpdateReverse()
	}
}

// Frame advances the scene by dt seconds: physics, object behaviors, camera, frustum
// eviction and node sync, then the gizmo placement.
func (s *Scene) Frame(dt float32) {
	s.step(dt)
	for _, o := range s.Objects() {
		o.Tick(dt)
	}

	s.Orbit.Update()
	s.Camera.SetAspect(s.viewport.Aspect())
	frustum := CameraFrustum(s.Camera)
	for _, o := range s.Objects() {
		if !frustum.ContainsSphere(o.Node.WorldPosition(), o.Node.BoundingRadius()) {
			s.Remove(o)
			continue
		}
		o.Update()
	}
	s.Controller.Update()
}

func (s *Scene) step(dt float32) {
	s.elapsed += dt
	for n := 0; s.elapsed >= s.World.TimeStep; n++ {
		if n == maxSubSteps {
			s.elapsed = 0
			return
		}
		s.World.Step()
		s.elapsed -= s.World.TimeStep
	}
}

// Close releases every subscription and object.
func (s *Scene) Close() {
	for _, sub := range s.subs {
		sub.Close()
	}
	s.subs = nil
	s.Controller.Detach()
	for len(s.objects) > 0 {
		s.Remove(s.objects[len(s.objects)-1])
	}
}

func (s *Scene) PointerDown(e *input.PointerEvent) {
	s.pressed = false
	switch e.Device {
	case input.Mouse:
		if e.Button != input.ButtonPrimary || e.Has(input.ModAlt) {
			return
		}
	case input.Touch:
		if len(e.Touches) != 1 {
			return
		}
	}
	s.pressed = true
	s.pressX, s.pressY = e.X, e.Y
}

func (s *Scene) PointerMove(e *input.PointerEvent) {
	if s.pressed && !s.withinSlop(e.X, e.Y) {
		s.pressed = false
	}
}

func (s *Scene) PointerUp(e *input.PointerEvent) {
	if !s.pressed {
		return
	}
	s.pressed = false
	if e.Leave || !s.withinSlop(e.X, e.Y) {
		return
	}
	s.Select(e.X, e.Y)
}

func (s *Scene) Wheel(e *input.WheelEvent) {}

func (s *Scene) withinSlop(x, y float32) bool {
	dx, dy := x-s.pressX, y-s.pressY
	return dx*dx+dy*dy <= clickSlop*clickSlop
}
