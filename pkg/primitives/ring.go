package primitives

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Ring is a flat annulus in the XY plane around a center point.
type Ring struct {
	primitive
	center    math.Position
	radius    float32
	thickness float32
	segments  int
	color     math.Color
}

// NewRing builds an annulus of the given mid radius and band thickness,
// approximated by segments steps around the center.
func NewRing(center math.Position, radius, thickness float32, segments int, color math.Color) (*Ring, error) {
	if err := checkPositive("radius", radius); err != nil {
		return nil, err
	}
	if err := checkPositive("thickness", thickness); err != nil {
		return nil, err
	}
	if thickness >= 2*radius {
		return nil, fmt.Errorf("%w: ring thickness %g must be below twice the radius %g", mesh.ErrInvalidParameter, thickness, radius)
	}
	if segments < 3 || segments > MaxSegments {
		return nil, fmt.Errorf("%w: ring segments %d outside [3, %d]", mesh.ErrInvalidParameter, segments, MaxSegments)
	}
	if err := checkFinite("center", center); err != nil {
		return nil, err
	}

	r := &Ring{center: center, radius: radius, thickness: thickness, segments: segments, color: color}
	m, err := r.generate(segments)
	if err != nil {
		return nil, err
	}
	r.mesh = m
	return r, nil
}

// generate walks an outer and an inner point around the center, emitting
// one vertex pair per step. Pair i is (2i outer, 2i+1 inner); each step
// joins pair i to pair i+1 with two triangles and the last step wraps to
// pair 0.
func (r *Ring) generate(segments int) (*mesh.Mesh, error) {
	angle := 2 * math32.Pi / float32(segments)
	axis := math.Dir(0, 0, 1)
	half := r.thickness / 2

	outer := math.Position{X: r.center.X + r.radius + half, Y: r.center.Y, Z: r.center.Z, W: 1}
	inner := math.Position{X: r.center.X + r.radius - half, Y: r.center.Y, Z: r.center.Z, W: 1}

	vertices := make([]mesh.Vertex, 0, segments*2)
	// The first pair's normals need the last pair; they are set after the loop.
	vertices = append(vertices,
		mesh.NewVertex(outer, r.color, math.Normal{}),
		mesh.NewVertex(inner, r.color, math.Normal{}),
	)

	for range segments - 1 {
		nextOuter := outer.Rotate(angle, r.center, axis)
		nextInner := inner.Rotate(angle, r.center, axis)

		n1, err := mesh.UnitTriangleNormal(outer, nextOuter, nextInner)
		if err != nil {
			return nil, err
		}
		n2, err := mesh.UnitTriangleNormal(inner, nextInner, nextOuter)
		if err != nil {
			return nil, err
		}

		vertices = append(vertices,
			mesh.NewVertex(nextOuter, r.color, n1),
			mesh.NewVertex(nextInner, r.color, n2),
		)
		outer, inner = nextOuter, nextInner
	}

	first, second := vertices[0].Position, vertices[1].Position
	n1, err := mesh.UnitTriangleNormal(outer, first, second)
	if err != nil {
		return nil, err
	}
	n2, err := mesh.UnitTriangleNormal(inner, second, first)
	if err != nil {
		return nil, err
	}
	vertices[0].Normal = n1
	vertices[1].Normal = n2

	indices := make([]uint32, 0, segments*6)
	for i := range segments {
		a := uint32(2 * i)
		c := uint32(2 * ((i + 1) % segments))
		indices = append(indices,
			a, a+1, c,
			a+1, c+1, c,
		)
	}

	return mesh.New(vertices, indices), nil
}

// Shape reports ShapeRing.
func (r *Ring) Shape() Shape { return ShapeRing }

// Center returns the pivot used by Rotate.
func (r *Ring) Center() math.Position { return r.center }

// Radius returns the mid radius of the band.
func (r *Ring) Radius() float32 { return r.radius }

// Thickness returns the band width.
func (r *Ring) Thickness() float32 { return r.thickness }

// Segments returns the step count given to NewRing.
func (r *Ring) Segments() int { return r.segments }

// Rotate rotates the ring by angle radians around axis through its center.
func (r *Ring) Rotate(angle float32, axis math.Position) {
	r.rotate(angle, axis, r.center)
}

// Subdivide regenerates the ring with segments * 2^level steps.
func (r *Ring) Subdivide(level int) error {
	if err := checkSegmentLevel("ring", r.segments, level); err != nil {
		return err
	}
	m, err := r.generate(r.segments << level)
	if err != nil {
		return err
	}
	r.replace(m)
	return nil
}

func (r *Ring) String() string {
	return fmt.Sprintf("Ring{center: %v, radius: %g, thickness: %g, segments: %d, mesh: %v}",
		r.center, r.radius, r.thickness, r.segments, r.mesh)
}
