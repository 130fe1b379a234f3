// Package viewer implements the interactive mesh viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/internal/engine/framebuffer"
	"github.com/Faultbox/endless/internal/engine/input"
	"github.com/Faultbox/endless/internal/engine/picking"
	"github.com/Faultbox/endless/internal/engine/renderer"
	"github.com/Faultbox/endless/internal/engine/snapshot"
	"github.com/Faultbox/endless/internal/engine/window"
	"github.com/Faultbox/endless/internal/logger"
	"github.com/Faultbox/endless/internal/scene"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/primitives"
)

const maxLevel = 6

// Viewer shows one geometry in a window and lets the user orbit around it.
type Viewer struct {
	cfg      *config.Config
	geometry primitives.Geometry

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	capture  *snapshot.Capture

	center  math.Vec3 // spin pivot
	angle   float32   // current spin, radians
	paused  bool
	running bool
}

// New opens the window and uploads g.
func New(cfg *config.Config, g primitives.Geometry) (*Viewer, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{
		cfg:      cfg,
		geometry: g,
		input:    input.New(),
		camera:   camera.NewOrbitCamera(),
		capture:  snapshot.NewCapture(cfg.Window.CaptureDir, "mesh"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title(g),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made.
	bg, _ := math.ColorByName(cfg.Window.Background)
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:         width,
		Height:        height,
		Background:    bg,
		Wireframe:     cfg.Window.Wireframe,
		VertexNormals: cfg.Shape.ComputedNormals(),
		Light:         cfg.Light.Direction(),
		Ambient:       cfg.Light.Ambient,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := v.renderer.Upload(g.Mesh()); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}
	v.center = g.Mesh().Bounds().Center()
	v.camera.FitToBounds(g.Mesh().Bounds())

	logger.Info("viewer initialized")
	return v, nil
}

// Run blocks until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}

		for _, event := range v.input.Events() {
			if err := v.handle(event); err != nil {
				return err
			}
		}

		if !v.paused {
			v.angle = math32.Mod(v.angle+v.cfg.Window.Spin*math.DegToRad*dt, 2*math32.Pi)
		}

		v.render()
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handle(event input.Event) error {
	switch event.Type {
	case input.EventWindowResize:
		v.renderer.Resize(v.window.DrawableSize())
	case input.EventMouseMove:
		if event.Held {
			v.camera.HandleDrag(event.DeltaX, event.DeltaY)
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(event.DeltaY)
	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_RIGHT {
			v.pick(event.MouseX, event.MouseY)
		}
	case input.EventKeyDown:
		return v.handleKey(event.Key)
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_SPACE:
		v.paused = !v.paused
	case sdl.SCANCODE_W:
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	case sdl.SCANCODE_B:
		v.renderer.ToggleOverlay(renderer.OverlayBounds)
	case sdl.SCANCODE_G:
		v.renderer.ToggleOverlay(renderer.OverlayGrid)
	case sdl.SCANCODE_R:
		v.angle = 0
		v.camera = camera.NewOrbitCamera()
		v.camera.FitToBounds(v.geometry.Mesh().Bounds())
	case sdl.SCANCODE_F12:
		v.screenshot()
	case sdl.SCANCODE_F11:
		v.captureScaled()
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return v.rebuild(min(v.cfg.Shape.Subdivide+1, maxLevel), v.cfg.Shape.Dedup)
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return v.rebuild(max(v.cfg.Shape.Subdivide-1, 0), v.cfg.Shape.Dedup)
	case sdl.SCANCODE_D:
		return v.rebuild(v.cfg.Shape.Subdivide, !v.cfg.Shape.Dedup)
	}
	return nil
}

// rebuild regenerates the geometry with a new subdivision level or dedup
// setting. A shape that rejects the level keeps the previous geometry.
func (v *Viewer) rebuild(level int, dedup bool) error {
	shape := v.cfg.Shape
	if level == shape.Subdivide && dedup == shape.Dedup {
		return nil
	}
	shape.Subdivide = level
	shape.Dedup = dedup

	g, err := scene.Build(shape)
	if err != nil {
		logger.Warn("rebuild rejected", zap.Int("level", level), zap.Bool("dedup", dedup), zap.Error(err))
		return nil
	}
	if err := v.renderer.Upload(g.Mesh()); err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}

	v.cfg.Shape = shape
	v.geometry = g
	v.center = g.Mesh().Bounds().Center()
	v.window.SetTitle(title(g))
	return nil
}

// pick logs the triangle under the cursor. The ray is turned back by the
// current spin so it meets the mesh in its own coordinates.
func (v *Viewer) pick(x, y int) {
	width, height := v.window.Size()
	ray := picking.ScreenToRay(v.camera, float32(x), float32(y), float32(width), float32(height)).
		Rotate(-v.angle, v.center, math.Vec3{Y: 1})

	m := v.geometry.Mesh()
	hit, ok := picking.PickTriangle(m, ray)
	if !ok {
		logger.Info("pick missed", zap.Int("x", x), zap.Int("y", y))
		return
	}

	first := hit.Triangle * 3
	logger.Info("triangle picked",
		zap.Int("triangle", hit.Triangle),
		zap.Uint32s("indices", m.Indices[first:first+3]),
		zap.Stringer("point", hit.Point.Position()),
		zap.Float32("distance", hit.Distance),
	)
}

func (v *Viewer) screenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.capture.SavePixels(pixels, width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// captureScaled renders one frame offscreen at CaptureScale times the
// drawable size and saves it.
func (v *Viewer) captureScaled() {
	width, height := v.window.DrawableSize()
	scale := v.cfg.Window.CaptureScale
	fb, err := framebuffer.New(width*scale, height*scale)
	if err != nil {
		logger.Error("capture failed", zap.Error(err))
		return
	}
	defer fb.Destroy()

	restore := fb.Bind()
	v.render()
	pixels := fb.ReadPixels()
	restore()

	w, h := fb.Size()
	path, err := v.capture.SavePixels(pixels, w, h)
	if err != nil {
		logger.Error("capture failed", zap.Error(err))
		return
	}
	logger.Info("capture saved", zap.String("path", path), zap.Int("width", w), zap.Int("height", h))
}

func (v *Viewer) render() {
	spin := math.QuatFromAxisAngle(math.Vec3{Y: 1}, v.angle)
	model := math.RotationAbout(v.center, spin)

	v.renderer.Begin()
	v.renderer.Draw(v.camera.ViewProjection(v.renderer.Aspect()), model)
	v.renderer.End()
}

func title(g primitives.Geometry) string {
	return "Endless - " + primitives.Describe(g)
}
