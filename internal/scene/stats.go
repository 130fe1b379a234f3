package scene

import (
	"github.com/Faultbox/endless/pkg/mesh"
	"github.com/Faultbox/endless/pkg/primitives"
)

// Stats summarizes a finished geometry.
type Stats struct {
	Shape     primitives.Shape
	Vertices  int
	Indices   int
	Triangles int
	// Unique is the vertex count an exact Dedup would leave.
	Unique int
	Bounds mesh.Bounds
}

// Measure computes Stats without modifying g.
func Measure(g primitives.Geometry) (Stats, error) {
	m := g.Mesh()
	unique := m.Clone()
	if err := unique.Dedup(); err != nil {
		return Stats{}, err
	}
	return Stats{
		Shape:     g.Shape(),
		Vertices:  m.VertexCount(),
		Indices:   m.IndexCount(),
		Triangles: m.TriangleCount(),
		Unique:    unique.VertexCount(),
		Bounds:    m.Bounds(),
	}, nil
}
