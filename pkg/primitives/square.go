package primitives

import (
	"fmt"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// MaxSquareLevel bounds Square subdivision to a 1025x1025 grid.
const MaxSquareLevel = 10

// Square is a quad built from four corner vertices. The corners are kept so
// every Subdivide starts from the same control points.
type Square struct {
	primitive
	origin  math.Position
	size    float32
	corners [4]mesh.Vertex
}

// NewSquare builds an axis-aligned square in the XY plane centered on
// origin, with black, cyan, yellow and magenta corners.
func NewSquare(origin math.Position, size float32) (*Square, error) {
	if err := checkPositive("size", size); err != nil {
		return nil, err
	}
	if err := checkFinite("origin", origin); err != nil {
		return nil, err
	}

	h := size / 2
	normal := math.Normal{Z: 1}
	corners := [4]mesh.Vertex{
		mesh.NewVertex(math.Pos(origin.X-h, origin.Y+h, origin.Z), math.Black, normal),
		mesh.NewVertex(math.Pos(origin.X-h, origin.Y-h, origin.Z), math.Cyan, normal),
		mesh.NewVertex(math.Pos(origin.X+h, origin.Y+h, origin.Z), math.Yellow, normal),
		mesh.NewVertex(math.Pos(origin.X+h, origin.Y-h, origin.Z), math.Magenta, normal),
	}
	return newSquare(corners, origin, size), nil
}

// NewSquareFromVertices builds a quad from explicit corners. v1 and v4 are
// opposite, as are v2 and v3. The origin is the corners' average.
func NewSquareFromVertices(v1, v2, v3, v4 mesh.Vertex) (*Square, error) {
	corners := [4]mesh.Vertex{v1, v2, v3, v4}
	for _, v := range corners {
		if err := checkFinite("corner", v.Position); err != nil {
			return nil, err
		}
	}
	if _, err := mesh.UnitTriangleNormal(v1.Position, v2.Position, v3.Position); err != nil {
		return nil, err
	}

	var center math.Position
	for _, v := range corners {
		center = center.Add(v.Position)
	}
	return newSquare(corners, center.DivScalar(4), mesh.Length(v1, v2)), nil
}

func newSquare(corners [4]mesh.Vertex, origin math.Position, size float32) *Square {
	vertices := []mesh.Vertex{corners[0], corners[1], corners[2], corners[3]}
	return &Square{
		primitive: primitive{mesh: mesh.New(vertices, []uint32{0, 1, 2, 1, 3, 2})},
		origin:    origin,
		size:      size,
		corners:   corners,
	}
}

// Patch evaluates the bilinear patch over four corners on a grid of
// (2^level + 1)^2 vertices and emits two triangles per cell. Vertex (i, j)
// sits at s = i/2^level, t = j/2^level, stored row-major at i*(n+1)+j.
func Patch(corners [4]mesh.Vertex, level int) (*mesh.Mesh, error) {
	if err := checkLevel("patch", level, MaxSquareLevel); err != nil {
		return nil, err
	}

	n := 1 << level
	step := 1 / float32(n)
	row := uint32(n + 1)

	vertices := make([]mesh.Vertex, 0, (n+1)*(n+1))
	for i := range n + 1 {
		s := float32(i) * step
		for j := range n + 1 {
			t := float32(j) * step
			vertices = append(vertices, mesh.Bilinear(corners[0], corners[1], corners[2], corners[3], s, t))
		}
	}

	indices := make([]uint32, 0, n*n*6)
	for i := range n {
		for j := range n {
			idx := uint32(i)*row + uint32(j)
			indices = append(indices,
				idx+row, idx, idx+row+1,
				idx, idx+1, idx+row+1,
			)
		}
	}

	return mesh.New(vertices, indices), nil
}

// Shape reports ShapeSquare.
func (q *Square) Shape() Shape { return ShapeSquare }

// Origin returns the pivot used by Rotate.
func (q *Square) Origin() math.Position { return q.origin }

// Size returns the edge length.
func (q *Square) Size() float32 { return q.size }

// Corners returns the control vertices.
func (q *Square) Corners() [4]mesh.Vertex { return q.corners }

// Rotate rotates the square by angle radians around axis through its origin.
func (q *Square) Rotate(angle float32, axis math.Position) {
	q.rotate(angle, axis, q.origin)
}

// Subdivide replaces the mesh with the deduplicated patch grid at level.
func (q *Square) Subdivide(level int) error {
	m, err := Patch(q.corners, level)
	if err != nil {
		return err
	}
	if err := m.Dedup(); err != nil {
		return err
	}
	q.replace(m)
	return nil
}

func (q *Square) String() string {
	return fmt.Sprintf("Square{origin: %v, size: %g, mesh: %v}", q.origin, q.size, q.mesh)
}
