package mesh

import (
	"fmt"

	"github.com/Faultbox/endless/pkg/math"
)

// Vertex is the 11-float record handed to the GPU:
// position (4) at byte 0, color (4) at byte 16, normal (3) at byte 32.
type Vertex struct {
	Position math.Position `yaml:"position,flow"`
	Color    math.Color    `yaml:"color,flow"`
	Normal   math.Normal   `yaml:"normal,flow"`
}

// NewVertex builds a vertex from its parts.
func NewVertex(p math.Position, c math.Color, n math.Normal) Vertex {
	return Vertex{Position: p, Color: c, Normal: n}
}

// Equal is the comparison used by Dedup: exact float equality of every
// component. Vertices that differ only by rounding are distinct.
func Equal(a, b Vertex) bool {
	return a == b
}

// Lerp interpolates position, color and normal: a*(1-t) + b*t.
func Lerp(a, b Vertex, t float32) Vertex {
	return Vertex{
		Position: a.Position.Lerp(b.Position, t),
		Color:    a.Color.Lerp(b.Color, t),
		Normal:   a.Normal.Lerp(b.Normal, t),
	}
}

// Bilinear evaluates the patch v1(1-s)(1-t) + v2(1-s)t + v3 s(1-t) + v4 s t.
// The multiplication order is fixed so that patches sharing an edge produce
// identical values along it.
func Bilinear(v1, v2, v3, v4 Vertex, s, t float32) Vertex {
	w1a, w1b := 1-s, 1-t
	w2a, w2b := 1-s, t
	w3a, w3b := s, 1-t
	w4a, w4b := s, t

	return Vertex{
		Position: v1.Position.Scale(w1a).Scale(w1b).
			Add(v2.Position.Scale(w2a).Scale(w2b)).
			Add(v3.Position.Scale(w3a).Scale(w3b)).
			Add(v4.Position.Scale(w4a).Scale(w4b)),
		Color: v1.Color.Scale(w1a).Scale(w1b).
			Add(v2.Color.Scale(w2a).Scale(w2b)).
			Add(v3.Color.Scale(w3a).Scale(w3b)).
			Add(v4.Color.Scale(w4a).Scale(w4b)),
		Normal: v1.Normal.Scale(w1a).Scale(w1b).
			Add(v2.Normal.Scale(w2a).Scale(w2b)).
			Add(v3.Normal.Scale(w3a).Scale(w3b)).
			Add(v4.Normal.Scale(w4a).Scale(w4b)),
	}
}

// Distance returns the xyz distance between two vertex positions.
func (v Vertex) Distance(target Vertex) float32 {
	return v.Position.Distance(target.Position)
}

// FaceNormal returns the unnormalized normal of the triangle (v, a, b).
func (v Vertex) FaceNormal(a, b Vertex) math.Normal {
	return a.Position.Sub(v.Position).Cross(b.Position.Sub(v.Position)).Normal()
}

func (v Vertex) String() string {
	return fmt.Sprintf("Vertex{position: %v, color: %v, normal: %v}", v.Position, v.Color, v.Normal)
}
