// Package plot draws mesh vertices onto a character grid. Column is the
// projected x and row is the projected y, so +Y points down the page.
package plot

import (
	"fmt"
	"io"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Plane selects the two coordinates a vertex is projected onto.
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneZY
)

var planeNames = [...]string{PlaneXY: "xy", PlaneXZ: "xz", PlaneZY: "zy"}

func (p Plane) String() string {
	if p >= 0 && int(p) < len(planeNames) {
		return planeNames[p]
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

// ParsePlane accepts xy, xz or zy.
func ParsePlane(s string) (Plane, error) {
	for i, name := range planeNames {
		if strings.EqualFold(s, name) {
			return Plane(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown plane %q", mesh.ErrInvalidParameter, s)
}

func (p Plane) project(v math.Position) math.Vec2 {
	switch p {
	case PlaneXZ:
		return math.Vec2{X: v.X, Y: v.Z}
	case PlaneZY:
		return math.Vec2{X: v.Z, Y: v.Y}
	default:
		return math.Vec2{X: v.X, Y: v.Y}
	}
}

// Options controls how a mesh is drawn.
type Options struct {
	Width  int
	Height int
	Plane  Plane
	// Fit scales and centers the mesh into the grid keeping its aspect.
	// Without it coordinates are used as cell numbers and anything outside
	// the grid is clipped.
	Fit bool
	// Edges also traces every triangle edge.
	Edges  bool
	Vertex rune
	Edge   rune
}

// DefaultOptions returns an 80x50 grid in the XY plane.
func DefaultOptions() Options {
	return Options{Width: 80, Height: 50, Plane: PlaneXY, Vertex: 'X', Edge: '.'}
}

// Canvas is a grid of cells. The zero value is not usable; see New.
type Canvas struct {
	width, height int
	cells         []rune
	// Clipped counts vertices that fell outside the grid.
	Clipped int
}

// New returns a blank canvas.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", mesh.ErrInvalidParameter, width, height)
	}
	cells := make([]rune, width*height)
	for i := range cells {
		cells[i] = ' '
	}
	return &Canvas{width: width, height: height, cells: cells}, nil
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// At returns the cell at column x, row y, or 0 outside the grid.
func (c *Canvas) At(x, y int) rune {
	if !c.inside(x, y) {
		return 0
	}
	return c.cells[y*c.width+x]
}

// Set writes r at column x, row y and reports whether it was inside.
func (c *Canvas) Set(x, y int, r rune) bool {
	if !c.inside(x, y) {
		return false
	}
	c.cells[y*c.width+x] = r
	return true
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// String renders the grid with one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.width + 1) * c.height)
	for y := range c.height {
		b.WriteString(string(c.cells[y*c.width : (y+1)*c.width]))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the rendered grid to w.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}

// Mesh draws m onto a new canvas.
func Mesh(m *mesh.Mesh, opts Options) (*Canvas, error) {
	c, err := New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if opts.Vertex == 0 {
		opts.Vertex = 'X'
	}
	if opts.Edge == 0 {
		opts.Edge = '.'
	}
	if len(m.Vertices) == 0 {
		return c, nil
	}

	toCell := identity
	if opts.Fit {
		toCell = fitter(m, opts)
	}

	points := make([]math.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		points[i] = toCell(opts.Plane.project(v.Position))
	}

	if opts.Edges {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		for t := 0; t+2 < len(m.Indices); t += 3 {
			a, b, d := points[m.Indices[t]], points[m.Indices[t+1]], points[m.Indices[t+2]]
			c.line(a, b, opts.Edge)
			c.line(b, d, opts.Edge)
			c.line(d, a, opts.Edge)
		}
	}

	// Vertices go last so edges never hide them.
	for _, p := range points {
		x, y := cell(p)
		if !c.Set(x, y, opts.Vertex) {
			c.Clipped++
		}
	}
	return c, nil
}

func identity(p math.Vec2) math.Vec2 { return p }

// fitter maps the projected bounds of m onto the grid with one uniform
// scale, centered on both axes.
func fitter(m *mesh.Mesh, opts Options) func(math.Vec2) math.Vec2 {
	lo := opts.Plane.project(m.Vertices[0].Position)
	hi := lo
	for _, v := range m.Vertices[1:] {
		p := opts.Plane.project(v.Position)
		lo = lo.Min(p)
		hi = hi.Max(p)
	}

	span := hi.Sub(lo)
	cols, rows := float32(opts.Width-1), float32(opts.Height-1)
	scale := float32(1)
	switch {
	case span.X > 0 && span.Y > 0:
		scale = math32.Min(cols/span.X, rows/span.Y)
	case span.X > 0:
		scale = cols / span.X
	case span.Y > 0:
		scale = rows / span.Y
	}

	pad := math.Vec2{X: (cols - span.X*scale) / 2, Y: (rows - span.Y*scale) / 2}
	return func(p math.Vec2) math.Vec2 {
		return p.Sub(lo).Scale(scale).Add(pad)
	}
}

// cell truncates toward negative infinity so 4.9 lands in column 4.
func cell(p math.Vec2) (int, int) {
	return int(math32.Floor(p.X)), int(math32.Floor(p.Y))
}

// line walks from a to b one cell at a time along the longer axis.
func (c *Canvas) line(a, b math.Vec2, r rune) {
	d := b.Sub(a)
	steps := int(math32.Ceil(math32.Max(math32.Abs(d.X), math32.Abs(d.Y))))
	steps = min(max(steps, 1), 4*(c.width+c.height))
	for i := 0; i <= steps; i++ {
		x, y := cell(a.Add(d.Scale(float32(i) / float32(steps))))
		c.Set(x, y, r)
	}
}
