package primitives

import (
	"fmt"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// MaxCubeLevel bounds Cube subdivision to six 513x513 faces.
const MaxCubeLevel = 9

// cubeIndices is the 12-triangle winding over the eight corners.
var cubeIndices = []uint32{
	0, 1, 2, 1, 3, 2,
	4, 5, 6, 5, 7, 6,
	6, 7, 0, 7, 1, 0,
	2, 3, 4, 3, 5, 4,
	1, 7, 3, 7, 5, 3,
	6, 0, 4, 0, 2, 4,
}

// cubeFaces lists the corners of each face as bilinear patch control
// points. Adjacent faces walk shared edges with the same two corners so
// subdivided seams land on identical vertices.
var cubeFaces = [6][4]int{
	{0, 1, 2, 3},
	{4, 5, 6, 7},
	{6, 7, 0, 1},
	{2, 3, 4, 5},
	{1, 7, 3, 5},
	{6, 0, 4, 2},
}

// Cube is an axis-aligned cube with one colored vertex per corner.
type Cube struct {
	primitive
	origin  math.Position
	size    float32
	corners [8]mesh.Vertex
}

// NewCube builds a cube of edge size centered on origin.
func NewCube(origin math.Position, size float32) (*Cube, error) {
	if err := checkPositive("size", size); err != nil {
		return nil, err
	}
	if err := checkFinite("origin", origin); err != nil {
		return nil, err
	}

	x, y, z := origin.X, origin.Y, origin.Z
	o := size / 2
	// All corners share one normal so corners coincide exactly across faces.
	normal := math.Normal{Z: 1}
	corners := [8]mesh.Vertex{
		mesh.NewVertex(math.Pos(x-o, y+o, z+o), math.Black, normal),
		mesh.NewVertex(math.Pos(x-o, y-o, z+o), math.Cyan, normal),
		mesh.NewVertex(math.Pos(x+o, y+o, z+o), math.Yellow, normal),
		mesh.NewVertex(math.Pos(x+o, y-o, z+o), math.Magenta, normal),
		mesh.NewVertex(math.Pos(x+o, y+o, z-o), math.Red, normal),
		mesh.NewVertex(math.Pos(x+o, y-o, z-o), math.Blue, normal),
		mesh.NewVertex(math.Pos(x-o, y+o, z-o), math.White, normal),
		mesh.NewVertex(math.Pos(x-o, y-o, z-o), math.Green, normal),
	}

	vertices := make([]mesh.Vertex, len(corners))
	copy(vertices, corners[:])
	indices := make([]uint32, len(cubeIndices))
	copy(indices, cubeIndices)

	return &Cube{
		primitive: primitive{mesh: mesh.New(vertices, indices)},
		origin:    origin,
		size:      size,
		corners:   corners,
	}, nil
}

// Shape reports ShapeCube.
func (c *Cube) Shape() Shape { return ShapeCube }

// Origin returns the current center, including translations.
func (c *Cube) Origin() math.Position { return c.origin }

// Size returns the edge length.
func (c *Cube) Size() float32 { return c.size }

// Rotate rotates the cube by angle radians around axis through its center.
func (c *Cube) Rotate(angle float32, axis math.Position) {
	c.rotate(angle, axis, c.origin)
}

// Translate moves the cube and its center by delta.
func (c *Cube) Translate(delta math.Position) {
	c.translate(delta)
	c.origin = c.origin.Offset(delta)
}

// Subdivide replaces the mesh with six patch grids at level, one per face.
// Each face is laid out as a subdivided Square over the same corners would
// be. Vertices on shared edges are duplicated; call Dedup to merge them.
func (c *Cube) Subdivide(level int) error {
	if err := checkLevel("cube", level, MaxCubeLevel); err != nil {
		return err
	}

	out := mesh.New(nil, nil)
	for _, face := range cubeFaces {
		patch, err := Patch([4]mesh.Vertex{
			c.corners[face[0]], c.corners[face[1]], c.corners[face[2]], c.corners[face[3]],
		}, level)
		if err != nil {
			return err
		}
		if err := patch.Dedup(); err != nil {
			return err
		}
		out.Append(patch)
	}

	c.replace(out)
	return nil
}

func (c *Cube) String() string {
	return fmt.Sprintf("Cube{origin: %v, size: %g, mesh: %v}", c.origin, c.size, c.mesh)
}
