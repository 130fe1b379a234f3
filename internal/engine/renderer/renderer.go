// Package renderer draws a single mesh with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/endless/internal/engine/debug"
	"github.com/Faultbox/endless/internal/engine/shader"
	"github.com/Faultbox/endless/internal/logger"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background math.Color
	Wireframe  bool
	// VertexNormals shades with the mesh normals instead of face normals.
	VertexNormals bool
	// Light points from the surface toward the light.
	Light   math.Vec3
	Ambient float32
}

// Overlay selects optional line geometry drawn with the mesh.
type Overlay int

const (
	OverlayBounds Overlay = 1 << iota
	OverlayGrid
)

// lines is a position-only line buffer.
type lines struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	vao, vbo, ebo uint32
	indexCount    int32

	bounds   lines
	grid     lines
	overlays Overlay

	light   math.Vec3
	ambient float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		light:   cfg.Light.Normalize(),
		ambient: cfg.Ambient,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.Compile(meshVertexShader, meshFragmentShader, meshUniforms...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.deleteMesh()
	r.bounds.delete()
	r.grid.delete()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetVertexNormals chooses between mesh normals and face normals.
func (r *Renderer) SetVertexNormals(on bool) {
	r.config.VertexNormals = on
}

// VertexNormals reports whether mesh normals are used for shading.
func (r *Renderer) VertexNormals() bool {
	return r.config.VertexNormals
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// SetWireframe switches between filled and line polygons.
func (r *Renderer) SetWireframe(on bool) {
	r.config.Wireframe = on
}

// Wireframe reports whether polygons are drawn as lines.
func (r *Renderer) Wireframe() bool {
	return r.config.Wireframe
}

// ToggleOverlay flips o and returns whether it is now shown.
func (r *Renderer) ToggleOverlay(o Overlay) bool {
	r.overlays ^= o
	return r.overlays&o != 0
}

// ShowOverlay turns o on or off.
func (r *Renderer) ShowOverlay(o Overlay, on bool) {
	if on {
		r.overlays |= o
	} else {
		r.overlays &^= o
	}
}

// OverlayShown reports whether o is drawn.
func (r *Renderer) OverlayShown(o Overlay) bool {
	return r.overlays&o != 0
}

// SetLight changes the light direction and ambient floor.
func (r *Renderer) SetLight(dir math.Vec3, ambient float32) {
	r.light = dir.Normalize()
	r.ambient = ambient
}

// Upload replaces the GPU copy of the mesh. The vertex buffer is the
// []Vertex memory itself, read through mesh.VertexLayout.
func (r *Renderer) Upload(m *mesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.deleteMesh()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	if len(m.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(mesh.VertexStride), unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	}

	layout := mesh.VertexLayout()
	for _, attr := range layout.Attributes {
		size := mesh.ComponentCount(attr.Format)
		if size == 0 {
			gl.BindVertexArray(0)
			return fmt.Errorf("unsupported vertex format %v at location %d", attr.Format, attr.ShaderLocation)
		}
		gl.VertexAttribPointerWithOffset(attr.ShaderLocation, size, gl.FLOAT, false, int32(layout.ArrayStride), uintptr(attr.Offset))
		gl.EnableVertexAttribArray(attr.ShaderLocation)
	}

	gl.BindVertexArray(0)
	r.indexCount = int32(len(m.Indices))

	b := m.Bounds()
	r.bounds.upload(debug.BBoxWireframe(b, b.Size().Length()*0.01))
	r.grid.upload(debug.GroundGrid(b, 10))

	logger.Debug("mesh uploaded",
		append(logger.MeshFields(m),
			zap.Uint32("vao", r.vao),
			zap.Uint64("stride", layout.ArrayStride),
		)...)
	return nil
}

// Begin starts a new frame. Depth, blend and clear state are set every
// frame since a UI pass sharing the context may change them.
func (r *Renderer) Begin() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	bg := r.config.Background
	gl.ClearColor(bg.R, bg.G, bg.B, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the uploaded mesh and any enabled overlays.
func (r *Renderer) Draw(viewProj, model math.Mat4) {
	if r.vao == 0 {
		return
	}
	p := r.program
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, model.Ptr())
	gl.Uniform3f(p.Uniform("uLightDir"), r.light.X, r.light.Y, r.light.Z)
	gl.Uniform1f(p.Uniform("uAmbient"), r.ambient)
	gl.Uniform1i(p.Uniform("uUnlit"), 0)
	gl.Uniform1i(p.Uniform("uVertexNormals"), boolToInt(r.config.VertexNormals))

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	gl.Uniform1i(p.Uniform("uUnlit"), 1)
	if r.overlays&OverlayBounds != 0 {
		gl.Uniform4f(p.Uniform("uLineColor"), 1, 0.84, 0, 1)
		r.bounds.draw()
	}
	if r.overlays&OverlayGrid != 0 {
		// The grid stays put while the model spins.
		identity := math.Identity()
		gl.UniformMatrix4fv(p.Uniform("uModel"), 1, false, identity.Ptr())
		gl.Uniform4f(p.Uniform("uLineColor"), 0.5, 0.5, 0.5, 1)
		r.grid.draw()
	}
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.Flush()
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) deleteMesh() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.indexCount = 0
}

func (l *lines) upload(vertices []float32) {
	l.delete()
	if len(vertices) == 0 {
		return
	}
	gl.GenVertexArrays(1, &l.vao)
	gl.BindVertexArray(l.vao)
	gl.GenBuffers(1, &l.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, l.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(mesh.LocationPosition, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(mesh.LocationPosition)
	gl.BindVertexArray(0)
	l.count = int32(len(vertices) / 3)
}

func (l *lines) draw() {
	if l.vao == 0 {
		return
	}
	gl.BindVertexArray(l.vao)
	gl.DrawArrays(gl.LINES, 0, l.count)
}

func (l *lines) delete() {
	if l.vao != 0 {
		gl.DeleteVertexArrays(1, &l.vao)
		l.vao = 0
	}
	if l.vbo != 0 {
		gl.DeleteBuffers(1, &l.vbo)
		l.vbo = 0
	}
	l.count = 0
}
