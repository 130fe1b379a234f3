package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Shape.Kind != "cube" {
		t.Errorf("expected shape 'cube', got %s", cfg.Shape.Kind)
	}
	if cfg.Shape.Sphere != "uv" {
		t.Errorf("expected sphere 'uv', got %s", cfg.Shape.Sphere)
	}
	if cfg.Shape.Subdivide != 0 {
		t.Errorf("expected subdivide 0, got %d", cfg.Shape.Subdivide)
	}
	if cfg.Shape.Dedup {
		t.Error("expected dedup to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  wireframe: true

shape:
  kind: sphere
  sphere: icosahedron
  origin: [1, 2, 3]
  radius: 2.5
  subdivide: 3
  dedup: true
  rotate:
    degrees: 45
    axis: [0, 1, 0]
  translate: [0, 0, -5]

logging:
  level: "debug"
  log_file: "endless.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if !cfg.Window.Wireframe {
		t.Error("expected wireframe to be true")
	}

	if cfg.Shape.Kind != "sphere" || cfg.Shape.Sphere != "icosahedron" {
		t.Errorf("expected icosahedron sphere, got %s/%s", cfg.Shape.Kind, cfg.Shape.Sphere)
	}
	if cfg.Shape.Origin != [3]float32{1, 2, 3} {
		t.Errorf("expected origin [1 2 3], got %v", cfg.Shape.Origin)
	}
	if cfg.Shape.Radius != 2.5 {
		t.Errorf("expected radius 2.5, got %f", cfg.Shape.Radius)
	}
	if cfg.Shape.Subdivide != 3 {
		t.Errorf("expected subdivide 3, got %d", cfg.Shape.Subdivide)
	}
	if !cfg.Shape.Dedup {
		t.Error("expected dedup to be true")
	}
	if cfg.Shape.Rotate.Degrees != 45 || cfg.Shape.Rotate.Axis != [3]float32{0, 1, 0} {
		t.Errorf("unexpected rotate %+v", cfg.Shape.Rotate)
	}
	if cfg.Shape.Translate != [3]float32{0, 0, -5} {
		t.Errorf("expected translate [0 0 -5], got %v", cfg.Shape.Translate)
	}

	// Untouched fields keep their defaults
	if cfg.Shape.Segments != 16 {
		t.Errorf("expected default segments 16, got %d", cfg.Shape.Segments)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "endless.log" {
		t.Errorf("expected log file 'endless.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileValidates(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad-shape.yaml")

	if err := os.WriteFile(configPath, []byte("shape:\n  kind: torus\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadFile(configPath)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(*Config) {}, true},
		{"every shape", func(c *Config) { c.Shape.Kind = "ring" }, true},
		{"mixed case shape", func(c *Config) { c.Shape.Kind = "Sphere" }, true},
		{"unknown shape", func(c *Config) { c.Shape.Kind = "torus" }, false},
		{"unknown sphere kind", func(c *Config) {
			c.Shape.Kind = "sphere"
			c.Shape.Sphere = "geodesic"
		}, false},
		{"sphere kind ignored for cube", func(c *Config) { c.Shape.Sphere = "geodesic" }, true},
		{"negative subdivide", func(c *Config) { c.Shape.Subdivide = -1 }, false},
		{"unknown color", func(c *Config) { c.Shape.Color = "chartreuse" }, false},
		{"unknown end color", func(c *Config) { c.Shape.EndColor = "" }, false},
		{"zero width", func(c *Config) { c.Window.Width = 0 }, false},
		{"unknown background", func(c *Config) { c.Window.Background = "sky" }, false},
		{"unknown log level", func(c *Config) { c.Logging.Level = "verbose" }, false},
		{"zero capture scale", func(c *Config) { c.Window.CaptureScale = 0 }, false},
		{"ambient above one", func(c *Config) { c.Light.Ambient = 1.5 }, false},
		{"no ambient", func(c *Config) { c.Light.Ambient = 0 }, true},
		{"smooth normals", func(c *Config) { c.Shape.Normals = NormalsSmooth }, true},
		{"empty normals mode", func(c *Config) { c.Shape.Normals = "" }, true},
		{"unknown normals mode", func(c *Config) { c.Shape.Normals = "vertex" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestShapeConversions(t *testing.T) {
	s := Default().Shape
	s.Origin = [3]float32{1, 2, 3}
	s.Translate = [3]float32{4, 5, 6}
	s.Rotate = RotateConfig{Degrees: 180, Axis: [3]float32{0, 1, 0}}

	if p := s.OriginPosition(); p.X != 1 || p.Y != 2 || p.Z != 3 || p.W != 1 {
		t.Errorf("OriginPosition() = %v", p)
	}
	if d := s.TranslateOffset(); d.X != 4 || d.Y != 5 || d.Z != 6 || d.W != 0 {
		t.Errorf("TranslateOffset() = %v", d)
	}
	if a := s.Rotate.RotateAxis(); a.Y != 1 || a.W != 0 {
		t.Errorf("RotateAxis() = %v", a)
	}
	if r := s.Rotate.Radians(); r < 3.14159 || r > 3.14160 {
		t.Errorf("Radians() = %v, want pi", r)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Shape.Kind = "line"
	cfg.Shape.End = [3]float32{0, 4, 0}
	cfg.Shape.EndColor = "red"
	cfg.Window.Spin = 0

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "shape flags",
			setup: func() {
				*flagShape = "sphere"
				*flagSphere = "spherified-cube"
				*flagSubdivide = 2
				*flagDedup = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shape.Kind != "sphere" || cfg.Shape.Sphere != "spherified-cube" {
					t.Errorf("unexpected shape %s/%s", cfg.Shape.Kind, cfg.Shape.Sphere)
				}
				if cfg.Shape.Subdivide != 2 {
					t.Errorf("expected subdivide 2, got %d", cfg.Shape.Subdivide)
				}
				if !cfg.Shape.Dedup {
					t.Error("expected dedup to be true")
				}
			},
			teardown: func() {
				*flagShape = ""
				*flagSphere = ""
				*flagSubdivide = -1
				*flagDedup = false
			},
		},
		{
			name:  "subdivide zero overrides file",
			setup: func() { *flagSubdivide = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shape.Subdivide != 0 {
					t.Errorf("expected subdivide 0, got %d", cfg.Shape.Subdivide)
				}
			},
			teardown: func() { *flagSubdivide = -1 },
		},
		{
			name:  "wireframe flag",
			setup: func() { *flagWireframe = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Wireframe {
					t.Error("expected wireframe to be true")
				}
			},
			teardown: func() { *flagWireframe = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			cfg.Shape.Subdivide = 4
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flag overrides config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}
