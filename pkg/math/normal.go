package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Normal is a surface direction. It is not normalized on construction.
type Normal struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Add returns n + other.
func (n Normal) Add(other Normal) Normal {
	return Normal{n.X + other.X, n.Y + other.Y, n.Z + other.Z}
}

// Sub returns n - other.
func (n Normal) Sub(other Normal) Normal {
	return Normal{n.X - other.X, n.Y - other.Y, n.Z - other.Z}
}

// Mul returns the component-wise product.
func (n Normal) Mul(other Normal) Normal {
	return Normal{n.X * other.X, n.Y * other.Y, n.Z * other.Z}
}

// Scale returns n * s.
func (n Normal) Scale(s float32) Normal {
	return Normal{n.X * s, n.Y * s, n.Z * s}
}

// DivScalar returns n / s.
func (n Normal) DivScalar(s float32) Normal {
	return Normal{n.X / s, n.Y / s, n.Z / s}
}

// Negate flips the direction.
func (n Normal) Negate() Normal {
	return Normal{-n.X, -n.Y, -n.Z}
}

// Dot returns the dot product.
func (n Normal) Dot(other Normal) float32 {
	return n.X*other.X + n.Y*other.Y + n.Z*other.Z
}

// Cross returns the cross product.
func (n Normal) Cross(other Normal) Normal {
	return Normal{
		n.Y*other.Z - n.Z*other.Y,
		n.Z*other.X - n.X*other.Z,
		n.X*other.Y - n.Y*other.X,
	}
}

// Length returns the magnitude.
func (n Normal) Length() float32 {
	return math32.Sqrt(n.Dot(n))
}

// Normalize returns a unit vector, or the zero vector if n is zero.
func (n Normal) Normalize() Normal {
	l := n.Length()
	if l == 0 {
		return Normal{}
	}
	return Normal{n.X / l, n.Y / l, n.Z / l}
}

// Lerp returns n*(1-t) + b*t.
func (n Normal) Lerp(b Normal, t float32) Normal {
	return n.Scale(1 - t).Add(b.Scale(t))
}

// Rotate rotates the direction by angle radians around axis.
func (n Normal) Rotate(angle float32, axis Position) Normal {
	x, y, z := rotateXYZ(n.X, n.Y, n.Z, angle, axis.X, axis.Y, axis.Z)
	return Normal{x, y, z}
}

// Position returns n as a direction (W = 0).
func (n Normal) Position() Position {
	return Position{X: n.X, Y: n.Y, Z: n.Z}
}

func (n Normal) String() string {
	return fmt.Sprintf("(%g, %g, %g)", n.X, n.Y, n.Z)
}
