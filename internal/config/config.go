package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file read when no -config flag is given.
const DefaultPath = "config/busic.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Camera    Camera    `yaml:"camera"`
	Controls  Controls  `yaml:"controls"`
	Gizmo     Gizmo     `yaml:"gizmo"`
	World     World     `yaml:"world"`
	Audio     Audio     `yaml:"audio"`
	Window    Window    `yaml:"window"`
	Generator Generator `yaml:"generator"`
	Logging   Logging   `yaml:"logging"`
}

type Camera struct {
	Projection string  `yaml:"projection"`
	Fov        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Z          float32 `yaml:"z"`
}

type Controls struct {
	RotateSpeed float32 `yaml:"rotateSpeed"`
	ZoomSpeed   float32 `yaml:"zoomSpeed"`
	PanSpeed    float32 `yaml:"panSpeed"`
	MinDistance float32 `yaml:"minDistance"`
	MaxDistance float32 `yaml:"maxDistance"`
}

type Gizmo struct {
	Size float32 `yaml:"size"`
	// TranslationSnap is in world units; nil disables snapping.
	TranslationSnap *float32 `yaml:"translationSnap"`
	// RotationSnap is in degrees; nil disables snapping.
	RotationSnap *float32 `yaml:"rotationSnap"`
	Space        string   `yaml:"space"`
}

// RotationSnapRadians returns the rotation snap in radians, or 0 when disabled.
func (g Gizmo) RotationSnapRadians() float32 {
	if g.RotationSnap == nil {
		return 0
	}
	return *g.RotationSnap * math.Pi / 180
}

// TranslationSnapValue returns the translation snap, or 0 when disabled.
func (g Gizmo) TranslationSnapValue() float32 {
	if g.TranslationSnap == nil {
		return 0
	}
	return *g.TranslationSnap
}

type World struct {
	Gravity             [3]float32 `yaml:"gravity"`
	TimeStep            float32    `yaml:"timeStep"`
	SolverIterations    int        `yaml:"solverIterations"`
	BallDrumRestitution float32    `yaml:"ballDrumRestitution"`
	Friction            float32    `yaml:"friction"`
}

type Audio struct {
	Directory string  `yaml:"directory"`
	Volume    float32 `yaml:"volume"`
}

type Window struct {
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Title      string `yaml:"title"`
	TargetFPS  int32  `yaml:"targetFPS"`
	ClearColor string `yaml:"clearColor"`
}

type Generator struct {
	BPM    float32 `yaml:"bpm"`
	MinBPM float32 `yaml:"minBPM"`
	MaxBPM float32 `yaml:"maxBPM"`
}

type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Camera: Camera{
			Projection: "perspective",
			Fov:        70,
			Near:       0.01,
			Far:        10,
			Z:          5,
		},
		Controls: Controls{
			RotateSpeed: 1,
			ZoomSpeed:   1,
			PanSpeed:    1,
			MinDistance: 1e-3,
			MaxDistance: float32(math.Inf(1)),
		},
		Gizmo: Gizmo{
			Size:  0.5,
			Space: "world",
		},
		World: World{
			Gravity:             [3]float32{0, -10, 0},
			TimeStep:            1.0 / 60,
			SolverIterations:    10,
			BallDrumRestitution: 0.9,
			Friction:            0.1,
		},
		Audio: Audio{
			Directory: "assets/audio",
			Volume:    1,
		},
		Window: Window{
			Width:      1280,
			Height:     720,
			Title:      "Busic",
			TargetFPS:  60,
			ClearColor: "#1baaaa",
		},
		Generator: Generator{
			BPM:    60,
			MinBPM: 1,
			MaxBPM: 380,
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Save writes settings to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "write config")
}

func (c Config) Validate() error {
	switch c.Camera.Projection {
	case "perspective", "orthographic":
	default:
		return invalid("camera.projection", c.Camera.Projection)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return invalid("camera.fov", c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera.near/far", fmt.Sprintf("%v/%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Controls.MinDistance <= 0 || c.Controls.MaxDistance < c.Controls.MinDistance {
		return invalid("controls.minDistance", c.Controls.MinDistance)
	}
	if c.Gizmo.Size <= 0 {
		return invalid("gizmo.size", c.Gizmo.Size)
	}
	if c.Gizmo.TranslationSnap != nil && *c.Gizmo.TranslationSnap <= 0 {
		return invalid("gizmo.translationSnap", *c.Gizmo.TranslationSnap)
	}
	if c.Gizmo.RotationSnap != nil && *c.Gizmo.RotationSnap <= 0 {
		return invalid("gizmo.rotationSnap", *c.Gizmo.RotationSnap)
	}
	switch strings.ToLower(c.Gizmo.Space) {
	case "world", "local":
	default:
		return invalid("gizmo.space", c.Gizmo.Space)
	}
	if c.World.TimeStep <= 0 {
		return invalid("world.timeStep", c.World.TimeStep)
	}
	if c.World.SolverIterations < 1 {
		return invalid("world.solverIterations", c.World.SolverIterations)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height))
	}
	if _, err := ParseColor(c.Window.ClearColor); err != nil {
		return err
	}
	if c.Generator.MinBPM <= 0 || c.Generator.MaxBPM < c.Generator.MinBPM {
		return invalid("generator.minBPM/maxBPM", fmt.Sprintf("%v/%v", c.Generator.MinBPM, c.Generator.MaxBPM))
	}
	if c.Generator.BPM < c.Generator.MinBPM || c.Generator.BPM > c.Generator.MaxBPM {
		return invalid("generator.bpm", c.Generator.BPM)
	}
	return nil
}

// RGB is a parsed #rrggbb color.
type RGB struct {
	R, G, B uint8
}

// ParseColor parses a #rrggbb string.
func ParseColor(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, invalid("color", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, errors.Wrapf(ErrInvalid, "color %q: %v", s, err)
	}
	return c, nil
}

func invalid(field string, value any) error {
	return errors.Wrapf(ErrInvalid, "%s: %v", field, value)
}
