// Command and screenshot handling for Mesh Browser.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/logger"
)

// GUIState is the JSON snapshot written by dumpState.
type GUIState struct {
	Timestamp string             `json:"timestamp"`
	Shape     config.ShapeConfig `json:"shape"`
	Wireframe bool               `json:"wireframe"`
	Error     string             `json:"error,omitempty"`
	Stats     struct {
		Vertices  int `json:"vertices"`
		Unique    int `json:"unique"`
		Indices   int `json:"indices"`
		Triangles int `json:"triangles"`
	} `json:"stats"`
}

// Command is a single-shot action read from command.json.
type Command struct {
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// captureScreenshot writes the last presented frame to a PNG file.
func (app *App) captureScreenshot() {
	// DisplaySize is logical pixels, DisplayFramebufferScale is the multiplier
	io := imgui.CurrentIO()
	displaySize := io.DisplaySize()
	fbScale := io.DisplayFramebufferScale()
	width := int(displaySize.X * fbScale.X)
	height := int(displaySize.Y * fbScale.Y)

	if width <= 0 || height <= 0 {
		app.showNotification("Screenshot failed: invalid viewport")
		return
	}

	// Read from front buffer since we capture at frame start
	gl.ReadBuffer(gl.FRONT)
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.ReadBuffer(gl.BACK)

	path, err := app.capture.SavePixels(pixels, width, height)
	if err != nil {
		app.showNotification(fmt.Sprintf("Screenshot failed: %v", err))
		return
	}

	app.showNotification("Saved: " + filepath.Base(path))
	logger.Info("screenshot saved", zap.String("path", path))
}

// showNotification displays a brief overlay notification message.
func (app *App) showNotification(msg string) {
	app.notifyMsg = msg
	app.notifyTime = time.Now()
}

// dumpState exports the edited shape and current statistics as JSON.
func (app *App) dumpState() {
	state := GUIState{
		Timestamp: time.Now().Format(time.RFC3339),
		Shape:     app.shape,
		Wireframe: app.preview.Wireframe(),
	}
	if app.buildErr != nil {
		state.Error = app.buildErr.Error()
	}
	state.Stats.Vertices = app.stats.Vertices
	state.Stats.Unique = app.stats.Unique
	state.Stats.Indices = app.stats.Indices
	state.Stats.Triangles = app.stats.Triangles

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		app.showNotification(fmt.Sprintf("State dump failed: %v", err))
		return
	}

	if err := os.MkdirAll(app.cfg.Window.CaptureDir, 0755); err != nil {
		app.showNotification(fmt.Sprintf("State dump failed: %v", err))
		return
	}
	statePath := filepath.Join(app.cfg.Window.CaptureDir, "state.json")
	if err := os.WriteFile(statePath, jsonData, 0644); err != nil {
		app.showNotification(fmt.Sprintf("State dump failed: %v", err))
		return
	}

	app.showNotification("State saved: state.json")
	logger.Info("state saved", zap.String("path", statePath))
}

// checkAndExecuteCommand polls for command.json in the capture directory.
// Commands are single-shot: the file is removed before it runs.
func (app *App) checkAndExecuteCommand() {
	cmdPath := filepath.Join(app.cfg.Window.CaptureDir, "command.json")

	data, err := os.ReadFile(cmdPath)
	if err != nil {
		return
	}
	os.Remove(cmdPath)

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		logger.Warn("invalid command", zap.Error(err))
		return
	}

	app.executeCommand(cmd)
}

// executeCommand executes a single command.
func (app *App) executeCommand(cmd Command) {
	logger.Debug("command", zap.String("action", cmd.Action), zap.String("value", cmd.Value))

	switch cmd.Action {
	case "set_shape":
		app.shape.Kind = cmd.Value
		app.dirty = true
		app.showNotification("Shape: " + cmd.Value)

	case "set_sphere":
		app.shape.Sphere = cmd.Value
		app.dirty = true
		app.showNotification("Sphere: " + cmd.Value)

	case "set_subdivide":
		level, err := strconv.Atoi(cmd.Value)
		if err != nil {
			app.showNotification(fmt.Sprintf("Bad level %q", cmd.Value))
			return
		}
		app.shape.Subdivide = level
		app.dirty = true
		app.showNotification(fmt.Sprintf("Subdivide: %d", level))

	case "set_color":
		app.shape.Color = cmd.Value
		app.dirty = true
		app.showNotification("Color: " + cmd.Value)

	case "set_normals":
		app.shape.Normals = cmd.Value
		app.dirty = true
		app.showNotification("Normals: " + cmd.Value)

	case "toggle_dedup":
		app.shape.Dedup = !app.shape.Dedup
		app.dirty = true
		app.showNotification(fmt.Sprintf("Dedup: %v", app.shape.Dedup))

	case "set_wireframe":
		on := cmd.Value == "true" || cmd.Value == "1"
		app.preview.SetWireframe(on)
		app.showNotification(fmt.Sprintf("Wireframe: %v", on))

	case "reset_view":
		app.preview.Reset()

	case "screenshot":
		app.screenshotRequested = true

	case "dump_state":
		// Rebuild first so the dump reflects earlier commands
		if app.dirty {
			app.rebuild()
		}
		app.dumpState()

	default:
		logger.Warn("unknown command", zap.String("action", cmd.Action))
		app.showNotification("Unknown command: " + cmd.Action)
	}
}
