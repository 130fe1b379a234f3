// Package primitives generates meshes for the basic shapes: triangle,
// square, cube, line, ring and three sphere tessellations. Every shape owns
// its mesh and regenerates it from control data on Subdivide.
package primitives

import (
	"fmt"
	"strings"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Shape enumerates the Geometry variants.
type Shape int

const (
	ShapeTriangle Shape = iota
	ShapeSquare
	ShapeCube
	ShapeLine
	ShapeRing
	ShapeSphere
)

var shapeNames = [...]string{
	ShapeTriangle: "triangle",
	ShapeSquare:   "square",
	ShapeCube:     "cube",
	ShapeLine:     "line",
	ShapeRing:     "ring",
	ShapeSphere:   "sphere",
}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape accepts the names printed by String, case-insensitively.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(name, n) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape %q", mesh.ErrInvalidParameter, name)
}

// Shapes returns every shape in declaration order.
func Shapes() []Shape {
	out := make([]Shape, len(shapeNames))
	for i := range shapeNames {
		out[i] = Shape(i)
	}
	return out
}

// Geometry is the closed set of primitives: *Triangle, *Square, *Cube,
// *Line, *Ring and *Spherical. Other packages cannot add variants.
type Geometry interface {
	Shape() Shape
	Mesh() *mesh.Mesh
	Vertices() []mesh.Vertex
	Indices() []uint32
	VertexLen() int
	IndexLen() int
	// Rotate turns the shape by angle radians around axis through the
	// shape's own pivot.
	Rotate(angle float32, axis math.Position)
	Subdivide(level int) error
	Dedup() error

	geometry()
}

var (
	_ Geometry = (*Triangle)(nil)
	_ Geometry = (*Square)(nil)
	_ Geometry = (*Cube)(nil)
	_ Geometry = (*Line)(nil)
	_ Geometry = (*Ring)(nil)
	_ Geometry = (*Spherical)(nil)
)

// New builds the shapes that need only an origin and a size. Spheres are
// UV spheres with size as radius. Lines and rings take more parameters
// and must be built with NewLine and NewRing.
func New(shape Shape, origin math.Position, size float32) (Geometry, error) {
	switch shape {
	case ShapeTriangle:
		return geometryOf(NewTriangle(origin, size))
	case ShapeSquare:
		return geometryOf(NewSquare(origin, size))
	case ShapeCube:
		return geometryOf(NewCube(origin, size))
	case ShapeSphere:
		return geometryOf(NewSphere(UVSphere, size, origin))
	case ShapeLine, ShapeRing:
		return nil, fmt.Errorf("%w: %v needs its own constructor", mesh.ErrInvalidParameter, shape)
	}
	return nil, fmt.Errorf("%w: %v", mesh.ErrInvalidParameter, shape)
}

// geometryOf keeps a failed constructor from leaking a typed nil.
func geometryOf[T Geometry](g T, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Describe returns a one-line summary of g with its shape parameters.
func Describe(g Geometry) string {
	var params string
	switch v := g.(type) {
	case *Triangle:
		params = fmt.Sprintf("origin=%v size=%g", v.origin, v.size)
	case *Square:
		params = fmt.Sprintf("origin=%v size=%g", v.origin, v.size)
	case *Cube:
		params = fmt.Sprintf("origin=%v size=%g", v.origin, v.size)
	case *Line:
		params = fmt.Sprintf("start=%v end=%v thickness=%g segments=%d",
			v.start.Position, v.end.Position, v.thickness, v.segments)
	case *Ring:
		params = fmt.Sprintf("center=%v radius=%g thickness=%g segments=%d",
			v.center, v.radius, v.thickness, v.segments)
	case *Spherical:
		params = fmt.Sprintf("kind=%v origin=%v radius=%g level=%d", v.kind, v.origin, v.radius, v.level)
	}
	return fmt.Sprintf("%v %s vertices=%d indices=%d triangles=%d",
		g.Shape(), params, g.VertexLen(), g.IndexLen(), g.IndexLen()/3)
}
