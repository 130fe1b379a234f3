package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/internal/engine/lighting"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Options controls software rendering.
type Options struct {
	Width      int
	Height     int
	Background math.Color
	// Light points from the surface toward the light, in world space.
	Light     math.Vec3
	Ambient   float32
	Wireframe bool
	// VertexNormals shades each triangle with the mean of its vertex
	// normals instead of its face normal.
	VertexNormals bool
	EdgeColor     math.Color
	Caption       string
}

// DefaultOptions returns a 640x480 shaded render on navy.
func DefaultOptions() Options {
	return Options{
		Width:      640,
		Height:     480,
		Background: math.Navy,
		Light:      lighting.Direction(lighting.DefaultAzimuth, lighting.DefaultElevation),
		Ambient:    lighting.DefaultAmbient,
		EdgeColor:  math.White,
	}
}

type face struct {
	pts   [3]math.Vec2
	depth float32
	fill  color.NRGBA
}

// Render draws m as seen by cam with flat shading. Triangles are sorted back
// to front and filled in that order; any triangle with a vertex behind the
// camera is skipped.
func Render(m *mesh.Mesh, cam *camera.OrbitCamera, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: image %dx%d", mesh.ErrInvalidParameter, opts.Width, opts.Height)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(opts.Background)), image.Point{}, draw.Src)

	faces := project(m, cam, opts)
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].depth < faces[j].depth })

	z := vector.NewRasterizer(opts.Width, opts.Height)
	z.DrawOp = draw.Over
	edge := image.NewUniform(toNRGBA(opts.EdgeColor))
	for _, f := range faces {
		z.Reset(opts.Width, opts.Height)
		z.MoveTo(f.pts[0].X, f.pts[0].Y)
		z.LineTo(f.pts[1].X, f.pts[1].Y)
		z.LineTo(f.pts[2].X, f.pts[2].Y)
		z.ClosePath()
		z.Draw(img, img.Bounds(), image.NewUniform(f.fill), image.Point{})

		if opts.Wireframe {
			z.Reset(opts.Width, opts.Height)
			for i := range 3 {
				stroke(z, f.pts[i], f.pts[(i+1)%3], 1)
			}
			z.Draw(img, img.Bounds(), edge, image.Point{})
		}
	}

	if opts.Caption != "" {
		caption(img, opts.Caption, toNRGBA(opts.EdgeColor))
	}
	return img, nil
}

func project(m *mesh.Mesh, cam *camera.OrbitCamera, opts Options) []face {
	w, h := float32(opts.Width), float32(opts.Height)
	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix(w / h)
	light := opts.Light.Normalize()

	faces := make([]face, 0, m.TriangleCount())
	for t := 0; t+2 < len(m.Indices); t += 3 {
		var f face
		var colorSum math.Color
		visible := true

		tri := [3]mesh.Vertex{m.Vertices[m.Indices[t]], m.Vertices[m.Indices[t+1]], m.Vertices[m.Indices[t+2]]}
		for i, v := range tri {
			p := v.Position
			p.W = 1
			eye := view.TransformPosition(p)
			clip := proj.TransformPosition(eye)
			if clip.W <= cam.Near {
				visible = false
				break
			}
			f.pts[i] = math.Vec2{
				X: (clip.X/clip.W + 1) / 2 * w,
				Y: (1 - clip.Y/clip.W) / 2 * h,
			}
			f.depth += eye.Z / 3
			colorSum = colorSum.Add(v.Color)
		}
		if !visible {
			continue
		}

		normal := mesh.TriangleNormal(tri[0].Position, tri[1].Position, tri[2].Position).Normalize()
		if opts.VertexNormals {
			if n := tri[0].Normal.Add(tri[1].Normal).Add(tri[2].Normal).Normalize(); n != (math.Normal{}) {
				normal = n
			}
		}
		// Two-sided: winding differs between generators.
		shade := lighting.Lambert(math.Vec3{X: normal.X, Y: normal.Y, Z: normal.Z}, light, opts.Ambient)
		base := colorSum.DivScalar(3)
		f.fill = toNRGBA(math.Color{R: base.R * shade, G: base.G * shade, B: base.B * shade, A: base.A})
		faces = append(faces, f)
	}
	return faces
}

// stroke adds a quad of the given width centered on segment ab.
func stroke(z *vector.Rasterizer, a, b math.Vec2, width float32) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := math.Vec2{X: -d.Y / l, Y: d.X / l}.Scale(width / 2)
	z.MoveTo(a.X+n.X, a.Y+n.Y)
	z.LineTo(b.X+n.X, b.Y+n.Y)
	z.LineTo(b.X-n.X, b.Y-n.Y)
	z.LineTo(a.X-n.X, a.Y-n.Y)
	z.ClosePath()
}

func caption(img draw.Image, text string, col color.Color) {
	ff := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: ff,
		Dot:  fixed.P(4, ff.Ascent+4),
	}
	d.DrawString(text)
}

func toNRGBA(c math.Color) color.NRGBA {
	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}
}

func channel(v float32) uint8 {
	return uint8(math32.Round(math32.Max(0, math32.Min(1, v)) * 255))
}
