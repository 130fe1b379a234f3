package primitives

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// MaxSegments bounds the segment count of lines and rings after subdivision.
const MaxSegments = 1 << 20

// Line is a thick segment drawn as a ribbon of quads.
type Line struct {
	primitive
	start     mesh.Vertex
	end       mesh.Vertex
	thickness float32
	segments  int
}

// NewLine builds a ribbon from start to end, thickness wide, split into
// segments quads. Colors blend from start to end along the ribbon.
func NewLine(start, end mesh.Vertex, thickness float32, segments int) (*Line, error) {
	if err := checkPositive("thickness", thickness); err != nil {
		return nil, err
	}
	if segments < 1 || segments > MaxSegments {
		return nil, fmt.Errorf("%w: line segments %d outside [1, %d]", mesh.ErrInvalidParameter, segments, MaxSegments)
	}
	if err := checkFinite("start", start.Position); err != nil {
		return nil, err
	}
	if err := checkFinite("end", end.Position); err != nil {
		return nil, err
	}

	l := &Line{start: start, end: end, thickness: thickness, segments: segments}
	m, err := l.generate(segments)
	if err != nil {
		return nil, err
	}
	l.mesh = m
	return l, nil
}

// ribbonSide returns the unit offset direction of the rails for a line
// running along dir. The reference up is world Z unless dir is nearly
// parallel to it, then world Y.
func ribbonSide(dir math.Position) math.Position {
	up := math.Dir(0, 0, 1)
	if math32.Abs(dir.Dot(up)) > 0.99 {
		up = math.Dir(0, 1, 0)
	}
	side := dir.Cross(up).Normalize()
	if side.Z < 0 {
		side = side.Scale(-1)
	}
	return side
}

func (l *Line) generate(segments int) (*mesh.Mesh, error) {
	dir, err := mesh.DirectionBetween(l.start.Position, l.end.Position)
	if err != nil {
		return nil, err
	}
	offset := ribbonSide(dir).Scale(l.thickness / 2)

	vertices := make([]mesh.Vertex, 0, segments*4)
	indices := make([]uint32, 0, segments*6)
	step := 1 / float32(segments)

	for i := range segments {
		t0 := float32(i) * step
		t1 := float32(i+1) * step
		if i == segments-1 {
			t1 = 1
		}

		c0 := mesh.Lerp(l.start, l.end, t0)
		c1 := mesh.Lerp(l.start, l.end, t1)
		left0 := c0.Position.Offset(offset)
		right0 := c0.Position.Offset(offset.Scale(-1))
		left1 := c1.Position.Offset(offset)
		right1 := c1.Position.Offset(offset.Scale(-1))

		normal, err := mesh.UnitTriangleNormal(left0, right0, left1)
		if err != nil {
			return nil, err
		}

		base := uint32(len(vertices))
		vertices = append(vertices,
			mesh.NewVertex(left0, c0.Color, normal),
			mesh.NewVertex(right0, c0.Color, normal),
			mesh.NewVertex(left1, c1.Color, normal),
			mesh.NewVertex(right1, c1.Color, normal),
		)
		indices = append(indices,
			base, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	return mesh.New(vertices, indices), nil
}

// Shape reports ShapeLine.
func (l *Line) Shape() Shape { return ShapeLine }

// Start returns the start vertex.
func (l *Line) Start() mesh.Vertex { return l.start }

// End returns the end vertex.
func (l *Line) End() mesh.Vertex { return l.end }

// Thickness returns the ribbon width.
func (l *Line) Thickness() float32 { return l.thickness }

// Segments returns the segment count given to NewLine.
func (l *Line) Segments() int { return l.segments }

// Midpoint is the pivot used by Rotate.
func (l *Line) Midpoint() math.Position {
	return l.start.Position.Lerp(l.end.Position, 0.5)
}

// Rotate rotates the ribbon by angle radians around axis through its midpoint.
func (l *Line) Rotate(angle float32, axis math.Position) {
	l.rotate(angle, axis, l.Midpoint())
}

// Subdivide regenerates the ribbon with segments * 2^level quads, where
// segments is the count given to NewLine.
func (l *Line) Subdivide(level int) error {
	if err := checkSegmentLevel("line", l.segments, level); err != nil {
		return err
	}
	m, err := l.generate(l.segments << level)
	if err != nil {
		return err
	}
	l.replace(m)
	return nil
}

func (l *Line) String() string {
	return fmt.Sprintf("Line{start: %v, end: %v, thickness: %g, segments: %d, mesh: %v}",
		l.start.Position, l.end.Position, l.thickness, l.segments, l.mesh)
}
