// Package picking casts rays from the screen into a mesh.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// Hit is the nearest triangle a ray passes through.
type Hit struct {
	Triangle int     // index of the triangle's first index / 3
	Distance float32 // along the ray
	Point    math.Vec3
}

const epsilon = 1e-7

// ScreenToRay converts pixel coordinates in a width x height viewport to a
// world-space ray leaving the camera.
func ScreenToRay(cam *camera.OrbitCamera, x, y, width, height float32) Ray {
	eye := cam.Position()
	forward := cam.Center.Sub(eye).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height // Flip Y

	tanHalf := math32.Tan(cam.FovY / 2)
	dir := forward.
		Add(right.Scale(ndcX * tanHalf * width / height)).
		Add(up.Scale(ndcY * tanHalf))
	return Ray{Origin: eye, Direction: dir.Normalize()}
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Rotate turns the ray by angle radians around axis through pivot. Use it
// with the negated model rotation to bring a world ray into mesh space.
func (r Ray) Rotate(angle float32, pivot, axis math.Vec3) Ray {
	a := axis.Position()
	a.W = 0
	origin := r.Origin.Position().Rotate(angle, pivot.Position(), a)
	dir := r.Direction.Position()
	dir.W = 0
	return Ray{
		Origin:    origin.Vec3(),
		Direction: dir.Rotate(angle, math.Position{}, a).Vec3(),
	}
}

// IntersectBounds tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectBounds(b mesh.Bounds) (float32, bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for i := range 3 {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle returns the distance to the triangle abc. Both faces
// count as hits; rays parallel to the plane miss.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t < epsilon {
		return 0, false
	}
	return t, true
}

// PickTriangle returns the nearest triangle of m hit by r.
func PickTriangle(m *mesh.Mesh, r Ray) (Hit, bool) {
	if _, ok := r.IntersectBounds(m.Bounds()); !ok {
		return Hit{}, false
	}

	best := Hit{Triangle: -1, Distance: math32.MaxFloat32}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position.Vec3()
		b := m.Vertices[m.Indices[i+1]].Position.Vec3()
		c := m.Vertices[m.Indices[i+2]].Position.Vec3()
		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best.Distance {
			best = Hit{Triangle: i / 3, Distance: t}
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}
