package picking

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
	"github.com/Faultbox/endless/pkg/primitives"
)

const delta = 1e-4

func assertVec(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "X")
	assert.InDelta(t, want.Y, got.Y, delta, "Y")
	assert.InDelta(t, want.Z, got.Z, delta, "Z")
}

func TestScreenToRayCenterLooksAtTarget(t *testing.T) {
	cam := camera.NewOrbitCamera()
	cam.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	cam.Yaw = 0.6

	r := ScreenToRay(cam, 400, 300, 800, 600)
	assertVec(t, cam.Position(), r.Origin)
	assertVec(t, cam.Center.Sub(cam.Position()).Normalize(), r.Direction)
}

func TestScreenToRayTopEdgeIsHalfFov(t *testing.T) {
	cam := camera.NewOrbitCamera()
	forward := cam.Center.Sub(cam.Position()).Normalize()

	r := ScreenToRay(cam, 400, 0, 800, 600)
	assert.InDelta(t, math32.Cos(cam.FovY/2), r.Direction.Dot(forward), delta)
	assert.Greater(t, r.Direction.Y, forward.Y, "top of the screen should look higher")
}

func TestIntersectBounds(t *testing.T) {
	box := mesh.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	tests := []struct {
		name string
		ray  Ray
		want float32
		hit  bool
	}{
		{"from outside", Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}}, 4, true},
		{"from inside returns exit", Ray{math.Vec3{}, math.Vec3{X: 1}}, 1, true},
		{"parallel outside slab", Ray{math.Vec3{X: 5, Y: 5, Z: 5}, math.Vec3{Z: -1}}, 0, false},
		{"pointing away", Ray{math.Vec3{Z: 5}, math.Vec3{Z: 1}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectBounds(box)
			assert.Equal(t, tt.hit, hit)
			assert.InDelta(t, tt.want, got, delta)
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1}
	b := math.Vec3{X: 1, Y: -1}
	c := math.Vec3{Y: 1}

	dist, ok := Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}}.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 5, dist, delta)

	// Back face counts too.
	dist, ok = Ray{math.Vec3{Z: -2}, math.Vec3{Z: 1}}.IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 2, dist, delta)

	_, ok = Ray{math.Vec3{Z: 5}, math.Vec3{X: 1}}.IntersectTriangle(a, b, c)
	assert.False(t, ok, "parallel")
	_, ok = Ray{math.Vec3{Z: 5}, math.Vec3{Z: 1}}.IntersectTriangle(a, b, c)
	assert.False(t, ok, "behind")
	_, ok = Ray{math.Vec3{X: 3, Z: 5}, math.Vec3{Z: -1}}.IntersectTriangle(a, b, c)
	assert.False(t, ok, "outside")
}

func TestPickTriangleNearest(t *testing.T) {
	tri := func(z float32) []mesh.Vertex {
		return []mesh.Vertex{
			{Position: math.Pos(-1, -1, z)},
			{Position: math.Pos(1, -1, z)},
			{Position: math.Pos(0, 1, z)},
		}
	}
	m := mesh.New(append(tri(-1), tri(0)...), []uint32{0, 1, 2, 3, 4, 5})

	hit, ok := PickTriangle(m, Ray{math.Vec3{Z: 5}, math.Vec3{Z: -1}})
	require.True(t, ok)
	assert.Equal(t, 1, hit.Triangle)
	assert.InDelta(t, 5, hit.Distance, delta)
	assertVec(t, math.Vec3{}, hit.Point)

	_, ok = PickTriangle(m, Ray{math.Vec3{X: 10, Y: 10, Z: 5}, math.Vec3{Z: -1}})
	assert.False(t, ok)
}

func TestPickCubeFromCamera(t *testing.T) {
	cube, err := primitives.NewCube(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	cam := camera.NewOrbitCamera()
	cam.Pitch = 0
	cam.Yaw = 0

	// Slightly off center so the ray misses the face diagonal.
	hit, ok := PickTriangle(cube.Mesh(), ScreenToRay(cam, 330, 250, 640, 480))
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Distance, 0.01)
	assert.InDelta(t, 1, hit.Point.Z, delta)
}

func TestRayRotate(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1}, Direction: math.Vec3{Z: -1}}
	got := r.Rotate(math32.Pi/2, math.Vec3{}, math.Vec3{Y: 1})
	assertVec(t, math.Vec3{Z: -1}, got.Origin)
	assertVec(t, math.Vec3{X: -1}, got.Direction)
}
