// Package math provides the vector, color and matrix types used to build meshes.
package math

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Position is a homogeneous point or direction.
// W is 1 for points and 0 for directions. Only X, Y and Z take part in
// length, dot and cross computations; W is carried through everything else.
type Position struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
	W float32 `yaml:"w"`
}

// Pos returns a point (W = 1).
func Pos(x, y, z float32) Position {
	return Position{X: x, Y: y, Z: z, W: 1}
}

// Dir returns a direction (W = 0).
func Dir(x, y, z float32) Position {
	return Position{X: x, Y: y, Z: z, W: 0}
}

// Add returns p + other, component-wise including W.
func (p Position) Add(other Position) Position {
	return Position{p.X + other.X, p.Y + other.Y, p.Z + other.Z, p.W + other.W}
}

// Sub returns p - other, component-wise including W.
func (p Position) Sub(other Position) Position {
	return Position{p.X - other.X, p.Y - other.Y, p.Z - other.Z, p.W - other.W}
}

// Mul returns the component-wise product.
func (p Position) Mul(other Position) Position {
	return Position{p.X * other.X, p.Y * other.Y, p.Z * other.Z, p.W * other.W}
}

// Div returns the component-wise quotient.
func (p Position) Div(other Position) Position {
	return Position{p.X / other.X, p.Y / other.Y, p.Z / other.Z, p.W / other.W}
}

// Scale returns p * s.
func (p Position) Scale(s float32) Position {
	return Position{p.X * s, p.Y * s, p.Z * s, p.W * s}
}

// DivScalar returns p / s.
func (p Position) DivScalar(s float32) Position {
	return Position{p.X / s, p.Y / s, p.Z / s, p.W / s}
}

// Offset moves p by the X, Y and Z of d and keeps p's W.
func (p Position) Offset(d Position) Position {
	return Position{p.X + d.X, p.Y + d.Y, p.Z + d.Z, p.W}
}

// AddNormal returns p moved along n. W is unchanged.
func (p Position) AddNormal(n Normal) Position {
	return Position{p.X + n.X, p.Y + n.Y, p.Z + n.Z, p.W}
}

// SubNormal returns p moved against n. W is unchanged.
func (p Position) SubNormal(n Normal) Position {
	return Position{p.X - n.X, p.Y - n.Y, p.Z - n.Z, p.W}
}

// Dot returns the xyz dot product.
func (p Position) Dot(other Position) float32 {
	return p.X*other.X + p.Y*other.Y + p.Z*other.Z
}

// Cross returns the xyz cross product. W of the result is always 0.
func (p Position) Cross(other Position) Position {
	return Position{
		X: p.Y*other.Z - p.Z*other.Y,
		Y: p.Z*other.X - p.X*other.Z,
		Z: p.X*other.Y - p.Y*other.X,
	}
}

// Length returns the xyz magnitude.
func (p Position) Length() float32 {
	return math32.Sqrt(p.Dot(p))
}

// Distance returns the xyz distance to target.
func (p Position) Distance(target Position) float32 {
	d := p.Sub(target)
	return math32.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

// Direction returns (p - target) / Distance(p, target).
// Coincident points have no direction and yield the zero Position.
func (p Position) Direction(target Position) Position {
	d := p.Distance(target)
	if d == 0 {
		return Position{}
	}
	return p.Sub(target).DivScalar(d)
}

// Normalize scales X, Y and Z to unit length and keeps W.
// A zero vector is returned unchanged.
func (p Position) Normalize() Position {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Position{p.X / l, p.Y / l, p.Z / l, p.W}
}

// FindNext returns the point dist units away from p along dir.
func (p Position) FindNext(dir Position, dist float32) Position {
	return p.Add(dir.Scale(dist))
}

// Lerp returns p*(1-t) + b*t. t is not clamped.
func (p Position) Lerp(b Position, t float32) Position {
	return p.Scale(1 - t).Add(b.Scale(t))
}

// Rotate rotates p by angle radians around axis passing through origin.
// The axis is normalized first; a zero axis leaves p unchanged.
func (p Position) Rotate(angle float32, origin, axis Position) Position {
	x, y, z := rotateXYZ(p.X-origin.X, p.Y-origin.Y, p.Z-origin.Z, angle, axis.X, axis.Y, axis.Z)
	return Position{x + origin.X, y + origin.Y, z + origin.Z, p.W}
}

// Vec3 drops W.
func (p Position) Vec3() Vec3 {
	return Vec3{p.X, p.Y, p.Z}
}

// Normal drops W.
func (p Position) Normal() Normal {
	return Normal{p.X, p.Y, p.Z}
}

// Array returns the components as [x, y, z, w].
func (p Position) Array() [4]float32 {
	return [4]float32{p.X, p.Y, p.Z, p.W}
}

// IsFinite reports whether no component is NaN or infinite.
func (p Position) IsFinite() bool {
	return finite(p.X) && finite(p.Y) && finite(p.Z) && finite(p.W)
}

func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", p.X, p.Y, p.Z, p.W)
}

// rotateXYZ applies the axis-angle (Rodrigues) rotation to (x, y, z).
func rotateXYZ(x, y, z, angle, u, v, w float32) (float32, float32, float32) {
	l := math32.Sqrt(u*u + v*v + w*w)
	if l == 0 {
		return x, y, z
	}
	u, v, w = u/l, v/l, w/l

	s, c := math32.Sincos(angle)
	d := u*x + v*y + w*z

	rx := u*d*(1-c) + x*c + (-w*y+v*z)*s
	ry := v*d*(1-c) + y*c + (w*x-u*z)*s
	rz := w*d*(1-c) + z*c + (-v*x+u*y)*s
	return rx, ry, rz
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
