// Package config handles toolkit configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/endless/internal/engine/lighting"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/primitives"
)

// ErrInvalidConfig reports a configuration value outside its domain.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all toolkit settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Shape   ShapeConfig   `yaml:"shape"`
	Light   LightConfig   `yaml:"light"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds viewer display settings.
type WindowConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Wireframe  bool    `yaml:"wireframe"`
	Spin       float32 `yaml:"spin"` // degrees per second around Y, 0 disables
	Background string  `yaml:"background"`
	// CaptureDir receives screenshots; CaptureScale multiplies the window
	// size for offscreen captures.
	CaptureDir   string `yaml:"capture_dir"`
	CaptureScale int    `yaml:"capture_scale"`
}

// ShapeConfig describes the geometry to build. Fields that do not apply to
// the chosen kind are ignored.
type ShapeConfig struct {
	Kind      string       `yaml:"kind"`
	Sphere    string       `yaml:"sphere"` // uv, icosahedron or spherified-cube
	Origin    [3]float32   `yaml:"origin,flow"`
	End       [3]float32   `yaml:"end,flow"` // line end point
	Size      float32      `yaml:"size"`
	Radius    float32      `yaml:"radius"`
	Thickness float32      `yaml:"thickness"`
	Segments  int          `yaml:"segments"`
	Subdivide int          `yaml:"subdivide"`
	Dedup     bool         `yaml:"dedup"`
	Normals   string       `yaml:"normals"` // keep, face or smooth
	Rotate    RotateConfig `yaml:"rotate"`
	Translate [3]float32   `yaml:"translate,flow"`
	Color     string       `yaml:"color"`
	EndColor  string       `yaml:"end_color"`
}

// RotateConfig is an axis-angle rotation applied after subdivision.
type RotateConfig struct {
	Degrees float32    `yaml:"degrees"`
	Axis    [3]float32 `yaml:"axis,flow"`
}

// LightConfig places the directional light. Angles are in degrees.
type LightConfig struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
	Ambient   float32 `yaml:"ambient"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Normal modes for ShapeConfig.Normals. An empty mode keeps the generator's
// normals.
const (
	NormalsKeep   = "keep"
	NormalsFace   = "face"
	NormalsSmooth = "smooth"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:        1280,
			Height:       720,
			Fullscreen:   false,
			VSync:        true,
			Spin:         30,
			Background:   "navy",
			CaptureDir:   "screenshots",
			CaptureScale: 2,
		},
		Shape: ShapeConfig{
			Kind:      primitives.ShapeCube.String(),
			Sphere:    primitives.UVSphere.String(),
			End:       [3]float32{1, 0, 0},
			Size:      1,
			Radius:    1,
			Thickness: 0.1,
			Segments:  16,
			Normals:   NormalsKeep,
			Rotate: RotateConfig{
				Axis: [3]float32{0, 0, 1},
			},
			Color:    "white",
			EndColor: "white",
		},
		Light: LightConfig{
			Azimuth:   lighting.DefaultAzimuth,
			Elevation: lighting.DefaultElevation,
			Ambient:   lighting.DefaultAmbient,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that would otherwise fail deep inside a generator.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if _, ok := math.ColorByName(c.Window.Background); !ok {
		return fmt.Errorf("%w: unknown background color %q", ErrInvalidConfig, c.Window.Background)
	}
	if c.Window.CaptureScale < 1 || c.Window.CaptureScale > 8 {
		return fmt.Errorf("%w: capture scale %d outside [1, 8]", ErrInvalidConfig, c.Window.CaptureScale)
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		return fmt.Errorf("%w: ambient %g outside [0, 1]", ErrInvalidConfig, c.Light.Ambient)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return c.Shape.Validate()
}

// Validate checks the shape description without building it.
func (s *ShapeConfig) Validate() error {
	shape, err := primitives.ParseShape(s.Kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if shape == primitives.ShapeSphere {
		if _, err := primitives.ParseSphereKind(s.Sphere); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if s.Subdivide < 0 {
		return fmt.Errorf("%w: subdivide %d", ErrInvalidConfig, s.Subdivide)
	}
	switch s.Normals {
	case "", NormalsKeep, NormalsFace, NormalsSmooth:
	default:
		return fmt.Errorf("%w: unknown normals mode %q", ErrInvalidConfig, s.Normals)
	}
	for _, name := range []string{s.Color, s.EndColor} {
		if _, ok := math.ColorByName(name); !ok {
			return fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Direction returns the unit vector toward the light.
func (l LightConfig) Direction() math.Vec3 {
	return lighting.Direction(l.Azimuth, l.Elevation)
}

// ComputedNormals reports whether the built mesh carries normals derived
// from its triangles rather than the generator's.
func (s *ShapeConfig) ComputedNormals() bool {
	return s.Normals == NormalsFace || s.Normals == NormalsSmooth
}

// OriginPosition returns Origin as a point.
func (s *ShapeConfig) OriginPosition() math.Position {
	return math.Pos(s.Origin[0], s.Origin[1], s.Origin[2])
}

// EndPosition returns End as a point.
func (s *ShapeConfig) EndPosition() math.Position {
	return math.Pos(s.End[0], s.End[1], s.End[2])
}

// TranslateOffset returns Translate as a direction.
func (s *ShapeConfig) TranslateOffset() math.Position {
	return math.Dir(s.Translate[0], s.Translate[1], s.Translate[2])
}

// RotateAxis returns the rotation axis as a direction.
func (r RotateConfig) RotateAxis() math.Position {
	return math.Dir(r.Axis[0], r.Axis[1], r.Axis[2])
}

// Radians returns the rotation angle in radians.
func (r RotateConfig) Radians() float32 {
	return r.Degrees * math.DegToRad
}
