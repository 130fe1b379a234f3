package primitives

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Triangle is a single flat triangle in the XY plane.
type Triangle struct {
	primitive
	origin math.Position
	size   float32
}

// NewTriangle builds a red/green/blue triangle around origin. size is the
// width of its base; the apex sits sqrt(size/2) * 0.75 above origin.
func NewTriangle(origin math.Position, size float32) (*Triangle, error) {
	if err := checkPositive("size", size); err != nil {
		return nil, err
	}
	if err := checkFinite("origin", origin); err != nil {
		return nil, err
	}

	altitude := math32.Sqrt(size * 0.5)
	normal := math.Normal{Z: 1}
	vertices := []mesh.Vertex{
		mesh.NewVertex(math.Pos(origin.X, origin.Y+altitude*0.75, origin.Z), math.Red, normal),
		mesh.NewVertex(math.Pos(origin.X-size*0.5, origin.Y-altitude/2, origin.Z), math.Green, normal),
		mesh.NewVertex(math.Pos(origin.X+size*0.5, origin.Y-altitude/2, origin.Z), math.Blue, normal),
	}

	return &Triangle{
		primitive: primitive{mesh: mesh.New(vertices, []uint32{0, 1, 2})},
		origin:    origin,
		size:      size,
	}, nil
}

// NewTriangleFromVertices wraps three explicit vertices. The origin is their
// centroid and the size is the length of the b-c edge.
func NewTriangleFromVertices(a, b, c mesh.Vertex) (*Triangle, error) {
	for _, v := range []mesh.Vertex{a, b, c} {
		if err := checkFinite("vertex", v.Position); err != nil {
			return nil, err
		}
	}
	if _, err := mesh.UnitTriangleNormal(a.Position, b.Position, c.Position); err != nil {
		return nil, err
	}

	centroid := a.Position.Add(b.Position).Add(c.Position).DivScalar(3)
	return &Triangle{
		primitive: primitive{mesh: mesh.New([]mesh.Vertex{a, b, c}, []uint32{0, 1, 2})},
		origin:    centroid,
		size:      mesh.Length(b, c),
	}, nil
}

// Shape reports ShapeTriangle.
func (t *Triangle) Shape() Shape { return ShapeTriangle }

// Origin returns the pivot used by Rotate.
func (t *Triangle) Origin() math.Position { return t.origin }

// Size returns the base width.
func (t *Triangle) Size() float32 { return t.size }

// Rotate rotates the triangle by angle radians around axis through its origin.
func (t *Triangle) Rotate(angle float32, axis math.Position) {
	t.rotate(angle, axis, t.origin)
}

// Subdivide has nothing to refine on a triangle. It only checks the level.
func (t *Triangle) Subdivide(level int) error {
	if level < 0 {
		return fmt.Errorf("%w: triangle subdivision level %d", mesh.ErrInvalidParameter, level)
	}
	return nil
}

func (t *Triangle) String() string {
	return fmt.Sprintf("Triangle{origin: %v, size: %g, mesh: %v}", t.origin, t.size, t.mesh)
}
