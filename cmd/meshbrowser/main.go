// Mesh Browser - A graphical tool for tuning procedural shapes.
package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/engine/snapshot"
	"github.com/Faultbox/endless/internal/logger"
	"github.com/Faultbox/endless/internal/scene"
	"github.com/Faultbox/endless/pkg/primitives"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Error("failed to create browser", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()
}

// App represents the Mesh Browser application state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	cfg     *config.Config

	// Shape being edited and the geometry last built from it
	shape    config.ShapeConfig
	geometry primitives.Geometry
	stats    scene.Stats
	buildErr error
	dirty    bool

	preview *MeshPreview
	capture *snapshot.Capture

	// Notification overlay
	notifyMsg  string
	notifyTime time.Time

	// Deferred capture so the finished frame is read
	screenshotRequested bool

	// File dialogs run off the main thread; results are applied in render
	mu          sync.Mutex
	pendingLoad string
	pendingSave string
	pendingDump string
}

// NewApp creates the window, the preview target and the first geometry.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:     cfg,
		shape:   cfg.Shape,
		capture: snapshot.NewCapture(cfg.Window.CaptureDir, "browser"),
		dirty:   true,
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}

	app.backend.SetBgColor(imgui.NewVec4(BackgroundColor[0], BackgroundColor[1], BackgroundColor[2], BackgroundColor[3]))
	app.backend.CreateWindow("Mesh Browser", cfg.Window.Width, cfg.Window.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	app.preview, err = NewMeshPreview(previewWidth, previewHeight, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview: %w", err)
	}

	logger.Info("mesh browser initialized")
	return app, nil
}

// Close releases GL resources.
func (app *App) Close() {
	if app.preview != nil {
		app.preview.Destroy()
		app.preview = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// rebuild regenerates the geometry from the edited shape. A failed build
// keeps the previous geometry on screen and shows the error.
func (app *App) rebuild() {
	app.dirty = false

	g, err := scene.Build(app.shape)
	if err != nil {
		app.buildErr = err
		logger.Warn("build failed", zap.Error(err))
		return
	}
	stats, err := scene.Measure(g)
	if err != nil {
		app.buildErr = err
		return
	}
	if err := app.preview.Load(g); err != nil {
		app.buildErr = err
		return
	}
	app.preview.renderer.SetVertexNormals(app.shape.ComputedNormals())

	app.buildErr = nil
	app.geometry = g
	app.stats = stats
	app.backend.SetWindowTitle("Mesh Browser - " + primitives.Describe(g))
}

// openConfigDialog shows a native dialog to pick a config file.
func (app *App) openConfigDialog() {
	// Cocoa requires window work on the main thread, so only the path is
	// handed back here.
	go func() {
		path, err := dialog.File().
			Filter("YAML Config", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Config").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		app.mu.Lock()
		app.pendingLoad = path
		app.mu.Unlock()
	}()
}

// saveDialog asks for a destination and stores it in *target.
func (app *App) saveDialog(title, filterName string, target *string, extensions ...string) {
	go func() {
		path, err := dialog.File().
			Filter(filterName, extensions...).
			Title(title).
			Save()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}
		app.mu.Lock()
		*target = path
		app.mu.Unlock()
	}()
}

// applyPending handles dialog results on the main thread.
func (app *App) applyPending() {
	app.mu.Lock()
	load, save, dump := app.pendingLoad, app.pendingSave, app.pendingDump
	app.pendingLoad, app.pendingSave, app.pendingDump = "", "", ""
	app.mu.Unlock()

	if load != "" {
		cfg, err := config.LoadFile(load)
		if err != nil {
			app.showNotification(fmt.Sprintf("Open failed: %v", err))
		} else {
			app.shape = cfg.Shape
			app.dirty = true
			app.showNotification("Loaded: " + load)
		}
	}

	if save != "" {
		cfg := *app.cfg
		cfg.Shape = app.shape
		if err := cfg.SaveTo(save); err != nil {
			app.showNotification(fmt.Sprintf("Save failed: %v", err))
		} else {
			app.showNotification("Saved: " + save)
		}
	}

	if dump != "" && app.geometry != nil {
		data, err := yaml.Marshal(app.geometry.Mesh())
		if err == nil {
			err = os.WriteFile(dump, data, 0644)
		}
		if err != nil {
			app.showNotification(fmt.Sprintf("Export failed: %v", err))
		} else {
			app.showNotification("Exported: " + dump)
		}
	}
}

// saveDefault stores the edited shape in the user config directory, where
// Load finds it when no endless.yaml is in the working directory.
func (app *App) saveDefault() {
	cfg := *app.cfg
	cfg.Shape = app.shape
	if err := cfg.Save(); err != nil {
		app.showNotification(fmt.Sprintf("Save failed: %v", err))
		return
	}
	app.showNotification("Saved to " + config.ConfigDir())
}

// render is called each frame to draw the UI.
func (app *App) render() {
	// Capture at start of frame to get previous frame's rendered content
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	app.checkAndExecuteCommand()
	app.applyPending()

	if app.dirty {
		app.rebuild()
	}

	app.handleShortcuts()

	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItemBool("Open Config...") {
				app.openConfigDialog()
			}
			if imgui.MenuItemBool("Save Config As...") {
				app.saveDialog("Save Config", "YAML Config", &app.pendingSave, "yaml", "yml")
			}
			if imgui.MenuItemBool("Save as Default") {
				app.saveDefault()
			}
			if imgui.MenuItemBool("Export Mesh...") {
				app.saveDialog("Export Mesh", "YAML Mesh", &app.pendingDump, "yaml")
			}
			imgui.Separator()
			if imgui.MenuItemBool("Exit") {
				os.Exit(0)
			}
			imgui.EndMenu()
		}
		imgui.EndMainMenuBar()
	}

	// Get viewport work area (excludes menu bar)
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	leftPanelWidth := float32(320)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Shape", nil, flags) {
		app.renderShapePanel()
		imgui.Separator()
		app.renderDisplayPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-leftPanelWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	// Notification overlay, shown for 2 seconds
	if app.notifyMsg != "" && time.Since(app.notifyTime) < 2*time.Second {
		notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
			imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
			imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
		imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth+10, workPos.Y+10))
		imgui.SetNextWindowBgAlpha(0.85)
		if imgui.BeginV("##Notify", nil, notifyFlags) {
			imgui.Text(app.notifyMsg)
		}
		imgui.End()
	} else {
		app.notifyMsg = ""
	}
}

// handleShortcuts processes keyboard shortcuts outside text input.
func (app *App) handleShortcuts() {
	// F12 = request screenshot (captured next frame to get rendered content)
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}

	ctrlD := imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(imgui.KeyD)
	if imgui.IsKeyChordPressed(ctrlD) {
		app.dumpState()
	}

	if app.geometry != nil {
		ctrlC := imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(imgui.KeyC)
		if imgui.IsKeyChordPressed(ctrlC) {
			desc := primitives.Describe(app.geometry)
			imgui.SetClipboardText(desc)
			app.showNotification("Copied: " + desc)
		}
	}

	if imgui.IsAnyItemActive() {
		return
	}

	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyW)) {
		app.preview.SetWireframe(!app.preview.Wireframe())
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEqual)) || imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyKeypadAdd)) {
		if app.shape.Subdivide < maxSubdivide {
			app.shape.Subdivide++
			app.dirty = true
		}
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyMinus)) || imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyKeypadSubtract)) {
		if app.shape.Subdivide > 0 {
			app.shape.Subdivide--
			app.dirty = true
		}
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.Key0)) || imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyKeypad0)) {
		app.preview.Reset()
	}
}

// renderStatusBar renders the status bar at the bottom.
func (app *App) renderStatusBar() {
	switch {
	case app.buildErr != nil:
		imgui.TextColored(imgui.NewVec4(ErrorColor[0], ErrorColor[1], ErrorColor[2], ErrorColor[3]), app.buildErr.Error())
	case app.geometry != nil:
		imgui.Text(fmt.Sprintf("%s | %d vertices | %d triangles",
			primitives.Describe(app.geometry), app.stats.Vertices, app.stats.Triangles))
	default:
		imgui.Text("No geometry")
	}
}
