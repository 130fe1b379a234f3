package mesh

import (
	stdmath "math"

	"github.com/chewxy/math32"
)

// Dedup collapses vertices that are exactly Equal. Indices are scanned in
// order; the first occurrence of each vertex is kept and indices are
// renumbered to the kept set. Vertices no index refers to are dropped.
//
// The result is identical to DedupFunc(Equal) but runs in linear time:
// vertices are keyed on their bit patterns with -0 folded into +0, and a
// vertex containing NaN never matches anything, itself included.
func (m *Mesh) Dedup() error {
	return dedupKeyed(m, exactKey)
}

// DedupQuantized collapses vertices whose components fall in the same
// epsilon-sized bucket. The first vertex seen in a bucket is kept.
func (m *Mesh) DedupQuantized(epsilon float32) error {
	if epsilon <= 0 || !finite(epsilon) {
		return ErrInvalidParameter
	}
	return dedupKeyed(m, func(v Vertex) (quantKey, bool) {
		return quantizeVertex(v, epsilon), true
	})
}

// DedupFunc collapses vertices using eq with a linear scan over the kept
// vertices. It is the reference behavior for Dedup and the hook for custom
// comparisons.
func (m *Mesh) DedupFunc(eq func(a, b Vertex) bool) error {
	if err := m.checkIndices(); err != nil {
		return err
	}

	vertices := make([]Vertex, 0, len(m.Vertices))
	indices := make([]uint32, 0, len(m.Indices))

	for _, idx := range m.Indices {
		vertex := m.Vertices[idx]
		found := false
		for i, kept := range vertices {
			if eq(kept, vertex) {
				indices = append(indices, uint32(i))
				found = true
				break
			}
		}
		if !found {
			indices = append(indices, uint32(len(vertices)))
			vertices = append(vertices, vertex)
		}
	}

	m.Vertices = vertices
	m.Indices = indices
	return nil
}

func dedupKeyed[K comparable](m *Mesh, key func(Vertex) (K, bool)) error {
	if err := m.checkIndices(); err != nil {
		return err
	}

	seen := make(map[K]uint32, len(m.Vertices))
	vertices := make([]Vertex, 0, len(m.Vertices))
	indices := make([]uint32, 0, len(m.Indices))

	for _, idx := range m.Indices {
		vertex := m.Vertices[idx]
		k, ok := key(vertex)
		if ok {
			if kept, hit := seen[k]; hit {
				indices = append(indices, kept)
				continue
			}
			seen[k] = uint32(len(vertices))
		}
		indices = append(indices, uint32(len(vertices)))
		vertices = append(vertices, vertex)
	}

	m.Vertices = vertices
	m.Indices = indices
	return nil
}

// checkIndices reports the first dangling index without the triangle
// count check, so Dedup works on any index list.
func (m *Mesh) checkIndices() error {
	count := len(m.Vertices)
	for i, idx := range m.Indices {
		if int(idx) >= count {
			return &IndexError{Pos: i, Index: idx, Count: count}
		}
	}
	return nil
}

type exactBits [11]uint32

// quantKey holds floor(component/epsilon) per component. The values exceed
// the int32 range for coordinates past 2^31 epsilons.
type quantKey [11]float64

func components(v Vertex) [11]float32 {
	p, c, n := v.Position, v.Color, v.Normal
	return [11]float32{p.X, p.Y, p.Z, p.W, c.R, c.G, c.B, c.A, n.X, n.Y, n.Z}
}

func exactKey(v Vertex) (exactBits, bool) {
	var k exactBits
	for i, f := range components(v) {
		if f != f {
			return k, false
		}
		if f == 0 {
			continue
		}
		k[i] = math32.Float32bits(f)
	}
	return k, true
}

func quantizeVertex(v Vertex, epsilon float32) quantKey {
	var k quantKey
	for i, f := range components(v) {
		k[i] = bucket(f, epsilon)
	}
	return k
}

func quantizeVec(x, y, z, epsilon float32) [3]float64 {
	return [3]float64{bucket(x, epsilon), bucket(y, epsilon), bucket(z, epsilon)}
}

func bucket(f, epsilon float32) float64 {
	return stdmath.Floor(float64(f) / float64(epsilon))
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
