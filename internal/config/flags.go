package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagShape      = flag.String("shape", "", "Shape to build (triangle, square, cube, line, ring, sphere)")
	flagSphere     = flag.String("sphere", "", "Sphere kind (uv, icosahedron, spherified-cube)")
	flagSubdivide  = flag.Int("subdivide", -1, "Subdivision level")
	flagDedup      = flag.Bool("dedup", false, "Merge identical vertices after building")
	flagNormals    = flag.String("normals", "", "Vertex normals (keep, face, smooth)")
	flagWireframe  = flag.Bool("wireframe", false, "Draw triangle edges only")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShape != "" {
		cfg.Shape.Kind = *flagShape
	}
	if *flagSphere != "" {
		cfg.Shape.Sphere = *flagSphere
	}
	if *flagSubdivide >= 0 {
		cfg.Shape.Subdivide = *flagSubdivide
	}
	if *flagDedup {
		cfg.Shape.Dedup = true
	}
	if *flagNormals != "" {
		cfg.Shape.Normals = *flagNormals
	}
	if *flagWireframe {
		cfg.Window.Wireframe = true
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
