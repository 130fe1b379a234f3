package mesh

import (
	"fmt"

	"github.com/Faultbox/endless/pkg/math"
)

// Length returns the distance between two vertex positions.
func Length(a, b Vertex) float32 {
	return a.Position.Distance(b.Position)
}

// DirectionBetween returns the unit direction pointing from start to end.
func DirectionBetween(start, end math.Position) (math.Position, error) {
	if start.Distance(end) == 0 {
		return math.Position{}, fmt.Errorf("%w: coincident points %v", ErrDegenerateGeometry, start)
	}
	return end.Direction(start), nil
}

// Dot returns the dot product of two vertex positions.
func Dot(a, b Vertex) float32 {
	return a.Position.Dot(b.Position)
}

// Cross returns the cross product of two vertex positions.
func Cross(a, b Vertex) math.Position {
	return a.Position.Cross(b.Position)
}

// TriangleNormal returns cross(b-a, c-a) without normalizing it.
func TriangleNormal(a, b, c math.Position) math.Normal {
	return b.Sub(a).Cross(c.Sub(a)).Normal()
}

// UnitTriangleNormal returns the normalized face normal of (a, b, c).
func UnitTriangleNormal(a, b, c math.Position) (math.Normal, error) {
	n := TriangleNormal(a, b, c)
	if n.Length() == 0 {
		return math.Normal{}, fmt.Errorf("%w: zero-area triangle", ErrDegenerateGeometry)
	}
	return n.Normalize(), nil
}
