// Shape and display controls for Mesh Browser.
package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/engine/lighting"
	"github.com/Faultbox/endless/internal/engine/renderer"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/primitives"
)

const maxSubdivide = 7

var sphereKinds = []primitives.SphereKind{
	primitives.UVSphere,
	primitives.Icosahedron,
	primitives.SpherifiedCube,
}

var normalModes = []string{config.NormalsKeep, config.NormalsFace, config.NormalsSmooth}

var axes = []struct {
	name string
	axis [3]float32
}{
	{"X", [3]float32{1, 0, 0}},
	{"Y", [3]float32{0, 1, 0}},
	{"Z", [3]float32{0, 0, 1}},
}

// renderShapePanel edits app.shape and marks it dirty on change.
func (app *App) renderShapePanel() {
	s := &app.shape
	changed := false

	kind, _ := primitives.ParseShape(s.Kind)

	if imgui.TreeNodeExStrV("Kind", imgui.TreeNodeFlagsDefaultOpen) {
		if imgui.BeginTable("shapeTable", 2) {
			for i, shape := range primitives.Shapes() {
				if i%2 == 0 {
					imgui.TableNextRow()
				}
				imgui.TableNextColumn()
				if imgui.SelectableBoolV(shape.String(), shape == kind, 0, imgui.NewVec2(0, 0)) && shape != kind {
					s.Kind = shape.String()
					changed = true
				}
			}
			imgui.EndTable()
		}

		if kind == primitives.ShapeSphere {
			imgui.Spacing()
			for _, k := range sphereKinds {
				if imgui.SelectableBoolV(k.String(), s.Sphere == k.String(), 0, imgui.NewVec2(0, 0)) && s.Sphere != k.String() {
					s.Sphere = k.String()
					changed = true
				}
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Parameters", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.SetNextItemWidth(-1)
		switch kind {
		case primitives.ShapeTriangle, primitives.ShapeSquare, primitives.ShapeCube:
			changed = sliderFloat("Size", &s.Size, 0.1, 10) || changed
		case primitives.ShapeRing:
			changed = sliderFloat("Radius", &s.Radius, 0.1, 10) || changed
			changed = sliderFloat("Thickness", &s.Thickness, 0.01, 5) || changed
			changed = sliderInt("Segments", &s.Segments, 3, 256) || changed
		case primitives.ShapeLine:
			changed = sliderFloat("Thickness", &s.Thickness, 0.01, 5) || changed
			changed = sliderInt("Segments", &s.Segments, 1, 256) || changed
			changed = sliderFloat("End X", &s.End[0], -10, 10) || changed
			changed = sliderFloat("End Y", &s.End[1], -10, 10) || changed
			changed = sliderFloat("End Z", &s.End[2], -10, 10) || changed
		case primitives.ShapeSphere:
			changed = sliderFloat("Radius", &s.Radius, 0.1, 10) || changed
		}

		changed = sliderInt("Subdivide", &s.Subdivide, 0, maxSubdivide) || changed
		if imgui.Checkbox("Dedup", &s.Dedup) {
			changed = true
		}
		imgui.Text("Normals")
		for _, mode := range normalModes {
			imgui.SameLine()
			current := s.Normals == mode || (s.Normals == "" && mode == config.NormalsKeep)
			if imgui.SelectableBoolV(mode, current, 0, imgui.NewVec2(50, 0)) && !current {
				s.Normals = mode
				changed = true
			}
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Transform", imgui.TreeNodeFlagsNone) {
		changed = sliderFloat("Rotate", &s.Rotate.Degrees, -180, 180) || changed
		for i, a := range axes {
			if i > 0 {
				imgui.SameLine()
			}
			if imgui.SelectableBoolV(a.name, s.Rotate.Axis == a.axis, 0, imgui.NewVec2(30, 0)) && s.Rotate.Axis != a.axis {
				s.Rotate.Axis = a.axis
				changed = true
			}
		}
		changed = sliderFloat("Move X", &s.Translate[0], -10, 10) || changed
		changed = sliderFloat("Move Y", &s.Translate[1], -10, 10) || changed
		changed = sliderFloat("Move Z", &s.Translate[2], -10, 10) || changed
		imgui.TreePop()
	}

	if imgui.TreeNodeExStrV("Color", imgui.TreeNodeFlagsNone) {
		changed = colorList("##color", &s.Color) || changed
		if kind == primitives.ShapeLine {
			imgui.Separator()
			imgui.Text("End color")
			changed = colorList("##endcolor", &s.EndColor) || changed
		}
		imgui.TreePop()
	}

	if changed {
		app.dirty = true
	}

	imgui.Separator()
	app.renderStats()
}

// renderStats shows counts for the current geometry.
func (app *App) renderStats() {
	if app.geometry == nil {
		imgui.TextDisabled("No geometry")
		return
	}
	st := app.stats
	imgui.Text(fmt.Sprintf("Vertices:  %d (%d unique)", st.Vertices, st.Unique))
	imgui.Text(fmt.Sprintf("Indices:   %d", st.Indices))
	imgui.Text(fmt.Sprintf("Triangles: %d", st.Triangles))
	imgui.Text(fmt.Sprintf("Min: %v", st.Bounds.Min))
	imgui.Text(fmt.Sprintf("Max: %v", st.Bounds.Max))

	if app.buildErr != nil {
		imgui.Spacing()
		imgui.TextColored(imgui.NewVec4(ErrorColor[0], ErrorColor[1], ErrorColor[2], ErrorColor[3]), "Build failed:")
		imgui.TextWrapped(app.buildErr.Error())
	}
}

// renderDisplayPanel edits preview settings that do not need a rebuild.
func (app *App) renderDisplayPanel() {
	if !imgui.TreeNodeExStrV("Display", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	defer imgui.TreePop()

	r := app.preview.renderer
	wire := r.Wireframe()
	if imgui.Checkbox("Wireframe", &wire) {
		r.SetWireframe(wire)
	}
	imgui.SameLine()
	bounds := r.OverlayShown(renderer.OverlayBounds)
	if imgui.Checkbox("Bounds", &bounds) {
		r.ShowOverlay(renderer.OverlayBounds, bounds)
	}
	imgui.SameLine()
	grid := r.OverlayShown(renderer.OverlayGrid)
	if imgui.Checkbox("Grid", &grid) {
		r.ShowOverlay(renderer.OverlayGrid, grid)
	}

	light := &app.cfg.Light
	lightChanged := sliderFloat("Azimuth", &light.Azimuth, -180, 180)
	lightChanged = sliderFloat("Elevation", &light.Elevation, -90, 90) || lightChanged
	lightChanged = sliderFloat("Ambient", &light.Ambient, 0, 1) || lightChanged
	if lightChanged {
		r.SetLight(lighting.Direction(light.Azimuth, light.Elevation), light.Ambient)
	}
}

func sliderFloat(label string, v *float32, lo, hi float32) bool {
	return imgui.SliderFloatV(label, v, lo, hi, "%.2f", imgui.SliderFlagsNone)
}

// sliderInt adapts an int field to the int32 slider.
func sliderInt(label string, v *int, lo, hi int32) bool {
	n := int32(*v)
	if imgui.SliderIntV(label, &n, lo, hi, "%d", imgui.SliderFlagsNone) {
		*v = int(n)
		return true
	}
	return false
}

// colorList shows the palette as a two-column table of selectables.
func colorList(id string, name *string) bool {
	changed := false
	if imgui.BeginTable(id, 2) {
		for i, c := range math.ColorNames() {
			if i%2 == 0 {
				imgui.TableNextRow()
			}
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(c+id, *name == c, 0, imgui.NewVec2(0, 0)) && *name != c {
				*name = c
				changed = true
			}
		}
		imgui.EndTable()
	}
	return changed
}
