// Offscreen mesh preview for Mesh Browser.
package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/internal/engine/framebuffer"
	"github.com/Faultbox/endless/internal/engine/renderer"
	"github.com/Faultbox/endless/internal/logger"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/primitives"
)

// Initial preview size; the target follows the panel afterwards.
const (
	previewWidth  = 768
	previewHeight = 576
)

// MeshPreview renders a geometry to an offscreen framebuffer that the UI
// shows as an image.
type MeshPreview struct {
	fb       *framebuffer.Framebuffer
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera
	geometry primitives.Geometry

	lastMousePos imgui.Vec2
}

// NewMeshPreview creates a width x height preview target.
func NewMeshPreview(width, height int, cfg *config.Config) (*MeshPreview, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}

	bg, _ := math.ColorByName(cfg.Window.Background)
	r, err := renderer.New(renderer.Config{
		Width:         width,
		Height:        height,
		Background:    bg,
		Wireframe:     cfg.Window.Wireframe,
		VertexNormals: cfg.Shape.ComputedNormals(),
		Light:         cfg.Light.Direction(),
		Ambient:       cfg.Light.Ambient,
	})
	if err != nil {
		fb.Destroy()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	return &MeshPreview{
		fb:       fb,
		renderer: r,
		camera:   camera.NewOrbitCamera(),
	}, nil
}

// Load uploads g and frames it. The camera angle is kept across loads so
// tweaking a parameter does not jump the view.
func (mp *MeshPreview) Load(g primitives.Geometry) error {
	if err := mp.renderer.Upload(g.Mesh()); err != nil {
		return err
	}
	yaw, pitch := mp.camera.Yaw, mp.camera.Pitch
	mp.camera.FitToBounds(g.Mesh().Bounds())
	mp.camera.Yaw, mp.camera.Pitch = yaw, pitch
	mp.geometry = g
	return nil
}

// Render draws the mesh and returns the color texture.
func (mp *MeshPreview) Render() uint32 {
	restore := mp.fb.Bind()
	mp.renderer.Begin()
	mp.renderer.Draw(mp.camera.ViewProjection(mp.fb.Aspect()), math.Identity())
	mp.renderer.End()
	restore()
	return mp.fb.ColorTexture()
}

// Resize matches the offscreen target to the on-screen image size.
func (mp *MeshPreview) Resize(width, height int) {
	resized, err := mp.fb.Resize(width, height)
	if err != nil {
		logger.Error("preview resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
		return
	}
	if resized {
		logger.Debug("preview resized", zap.Int("width", width), zap.Int("height", height))
	}
}

// Reset restores the default camera angle around the current mesh.
func (mp *MeshPreview) Reset() {
	mp.camera = camera.NewOrbitCamera()
	if mp.geometry != nil {
		mp.camera.FitToBounds(mp.geometry.Mesh().Bounds())
	}
}

// SetWireframe switches between filled and line polygons.
func (mp *MeshPreview) SetWireframe(on bool) { mp.renderer.SetWireframe(on) }

// Wireframe reports whether polygons are drawn as lines.
func (mp *MeshPreview) Wireframe() bool { return mp.renderer.Wireframe() }

// Destroy releases GL resources.
func (mp *MeshPreview) Destroy() {
	mp.renderer.Close()
	mp.fb.Destroy()
}

// renderPreview shows the preview image and routes mouse input to the camera.
func (app *App) renderPreview() {
	if app.geometry == nil {
		imgui.TextDisabled("No geometry built")
		return
	}

	mp := app.preview

	// Fill the panel, leaving a row for the controls below the image
	avail := imgui.ContentRegionAvail()
	displayW := max(avail.X, 1)
	displayH := max(avail.Y-40, 1)

	scale := imgui.CurrentIO().DisplayFramebufferScale()
	mp.Resize(int(displayW*scale.X), int(displayH*scale.Y))
	textureID := mp.Render()

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(displayW, displayH),
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(PreviewBackground[0], PreviewBackground[1], PreviewBackground[2], PreviewBackground[3]),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			mp.camera.HandleDrag(mousePos.X-mp.lastMousePos.X, mousePos.Y-mp.lastMousePos.Y)
		}
		mp.lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			mp.camera.HandleZoom(wheel)
		}
	}

	if imgui.Button("Reset View") {
		mp.Reset()
	}
	imgui.SameLine()
	imgui.TextDisabled("(Drag to rotate, scroll to zoom, W wireframe, +/- subdivide)")
}
