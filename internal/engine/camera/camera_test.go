package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

const delta = 1e-4

func TestPositionOnZAxis(t *testing.T) {
	c := NewOrbitCamera()
	c.Pitch = 0
	c.Yaw = 0
	c.Distance = 3
	c.Center = math.Vec3{X: 1}

	p := c.Position()
	assert.InDelta(t, 1, p.X, delta)
	assert.InDelta(t, 0, p.Y, delta)
	assert.InDelta(t, 3, p.Z, delta)
}

func TestViewMatrixMapsCenterAhead(t *testing.T) {
	c := NewOrbitCamera()
	c.Yaw = 0.7
	c.Pitch = 0.3
	c.Distance = 4

	// The orbit center sits straight down -Z in view space.
	p := c.ViewMatrix().TransformPosition(c.Center.Position())
	assert.InDelta(t, 0, p.X, delta)
	assert.InDelta(t, 0, p.Y, delta)
	assert.InDelta(t, -4, p.Z, delta)
}

func TestFitToBoundsKeepsBoxInView(t *testing.T) {
	b := mesh.Bounds{Min: math.Vec3{X: -2, Y: -1, Z: -1}, Max: math.Vec3{X: 4, Y: 1, Z: 3}}
	c := NewOrbitCamera()
	c.FitToBounds(b)

	assert.Equal(t, b.Center(), c.Center)
	assert.Greater(t, c.Far, c.Distance)

	vp := c.ViewProjection(1)
	for _, corner := range []math.Vec3{b.Min, b.Max, {X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z}} {
		clip := vp.TransformPosition(corner.Position())
		assert.LessOrEqual(t, math32.Abs(clip.X/clip.W), float32(1))
		assert.LessOrEqual(t, math32.Abs(clip.Y/clip.W), float32(1))
	}
}

func TestFitToBoundsEmpty(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mesh.Bounds{})
	assert.Greater(t, c.Distance, float32(0))
	assert.Greater(t, c.Near, float32(0))
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	assert.Equal(t, c.MaxPitch, c.Pitch)
	c.HandleDrag(0, -1e6)
	assert.Equal(t, c.MinPitch, c.Pitch)

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	assert.InDelta(t, yaw-100*c.DragSensitivity, c.Yaw, delta)
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	before := c.Distance
	c.HandleZoom(1)
	assert.Less(t, c.Distance, before)

	for range 1000 {
		c.HandleZoom(5)
	}
	assert.Equal(t, c.MinDistance, c.Distance)
}
