// Package mesh provides the indexed triangle mesh shared by every primitive.
package mesh

import (
	"fmt"

	"github.com/Faultbox/endless/pkg/math"
)

// Mesh is an indexed triangle list. Vertex order is significant to the
// renderer, and every three indices form one triangle whose winding decides
// its front face.
type Mesh struct {
	Vertices []Vertex `yaml:"vertices"`
	Indices  []uint32 `yaml:"indices,flow"`
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// New wraps vertices and indices without validating them.
func New(vertices []Vertex, indices []uint32) *Mesh {
	return &Mesh{Vertices: vertices, Indices: indices}
}

// Validate checks that the index buffer describes whole triangles and that
// every index names an existing vertex.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidParameter, len(m.Indices))
	}
	return m.checkIndices()
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of whole triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	vertices := make([]Vertex, len(m.Vertices))
	copy(vertices, m.Vertices)
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)
	return &Mesh{Vertices: vertices, Indices: indices}
}

// Translate moves every vertex by the X, Y and Z of delta. W is kept.
func (m *Mesh) Translate(delta math.Position) {
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Offset(delta)
	}
}

// Rotate rotates every vertex by angle radians around axis through origin.
// Normals are rotated with the surface so lighting stays correct.
func (m *Mesh) Rotate(axis, origin math.Position, angle float32) {
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = v.Position.Rotate(angle, origin, axis)
		v.Normal = v.Normal.Rotate(angle, axis)
	}
}

// Append adds other's vertices and triangles to m. Other's indices are
// offset by m's vertex count so both index spaces stay valid.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Merge returns a new mesh holding a followed by b.
func Merge(a, b *Mesh) *Mesh {
	out := &Mesh{
		Vertices: make([]Vertex, 0, len(a.Vertices)+len(b.Vertices)),
		Indices:  make([]uint32, 0, len(a.Indices)+len(b.Indices)),
	}
	out.Append(a)
	out.Append(b)
	return out
}

// Bounds returns the bounding box of all vertex positions.
// An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	first := m.Vertices[0].Position.Vec3()
	b := Bounds{Min: first, Max: first}
	for _, v := range m.Vertices[1:] {
		p := v.Position
		b.Min.X = min(b.Min.X, p.X)
		b.Min.Y = min(b.Min.Y, p.Y)
		b.Min.Z = min(b.Min.Z, p.Z)
		b.Max.X = max(b.Max.X, p.X)
		b.Max.Y = max(b.Max.Y, p.Y)
		b.Max.Z = max(b.Max.Z, p.Z)
	}
	return b
}

// ComputeNormals replaces every vertex normal with the normalized sum of the
// face normals of the triangles using it, so larger triangles weigh more.
// A triangle wound the other way contributes the opposite direction.
func (m *Mesh) ComputeNormals() error {
	if err := m.Validate(); err != nil {
		return err
	}

	sums := make([]math.Normal, len(m.Vertices))
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := m.Vertices[a].FaceNormal(m.Vertices[b], m.Vertices[c])
		sums[a] = sums[a].Add(n)
		sums[b] = sums[b].Add(n)
		sums[c] = sums[c].Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = sums[i].Normalize()
	}
	return nil
}

// SmoothNormals averages the normals of vertices that share a position
// (within epsilon) so seams between faces shade continuously.
func (m *Mesh) SmoothNormals(epsilon float32) {
	groups := make(map[[3]float64][]int)
	for i := range m.Vertices {
		key := quantizeVec(m.Vertices[i].Position.X, m.Vertices[i].Position.Y, m.Vertices[i].Position.Z, epsilon)
		groups[key] = append(groups[key], i)
	}

	for _, idx := range groups {
		if len(idx) < 2 {
			continue
		}
		var sum math.Normal
		for _, i := range idx {
			sum = sum.Add(m.Vertices[i].Normal)
		}
		avg := sum.Normalize()
		for _, i := range idx {
			m.Vertices[i].Normal = avg
		}
	}
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh{vertices: %d, indices: %d, triangles: %d}", len(m.Vertices), len(m.Indices), m.TriangleCount())
}
