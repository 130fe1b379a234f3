package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/endless/internal/engine/camera"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
	"github.com/Faultbox/endless/pkg/primitives"
)

func TestFromPixelsFlips(t *testing.T) {
	// 1x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromPixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{B: 255, A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(0, 1))
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	_, err := FromPixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}

func TestCaptureFilename(t *testing.T) {
	c := NewCapture("shots", "cube")
	c.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	assert.Equal(t, filepath.Join("shots", "cube_2026-03-04_05-06-07.png"), c.Filename())

	c.SetOutputDir("")
	assert.Equal(t, "cube_2026-03-04_05-06-07.png", c.Filename())
}

func TestCaptureSavePixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := NewCapture(dir, "frame")

	path, err := c.SavePixels(make([]byte, 4*3*2), 3, 2)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}

func framedCamera(m *mesh.Mesh) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.FitToBounds(m.Bounds())
	return cam
}

func TestRenderCube(t *testing.T) {
	cube, err := primitives.NewCube(math.Pos(0, 0, 0), 1)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	img, err := Render(cube.Mesh(), framedCamera(cube.Mesh()), opts)
	require.NoError(t, err)

	bg := color.RGBAModel.Convert(toNRGBA(opts.Background))
	assert.Equal(t, bg, img.At(0, 47), "corner should stay background")
	assert.NotEqual(t, bg, img.At(32, 24), "center should be covered by the cube")
}

func TestRenderWireframeAndCaption(t *testing.T) {
	sq, err := primitives.NewSquare(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Width, opts.Height = 80, 60
	opts.Wireframe = true
	opts.Caption = "square"
	img, err := Render(sq.Mesh(), framedCamera(sq.Mesh()), opts)
	require.NoError(t, err)

	white := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{255, 255, 255, 255}) {
				white++
			}
		}
	}
	assert.Greater(t, white, 10)
}

func TestRenderSkipsGeometryBehindCamera(t *testing.T) {
	sq, err := primitives.NewSquare(math.Pos(0, 0, 0), 1)
	require.NoError(t, err)

	cam := camera.NewOrbitCamera()
	// Camera at z=-9 looking down -Z, away from the square at z=0.
	cam.Center = math.Vec3{Z: -10}
	cam.Pitch = 0
	cam.Distance = 1

	opts := DefaultOptions()
	opts.Width, opts.Height = 16, 16
	img, err := Render(sq.Mesh(), cam, opts)
	require.NoError(t, err)

	bg := color.RGBAModel.Convert(toNRGBA(opts.Background))
	for y := range 16 {
		for x := range 16 {
			require.Equal(t, bg, img.At(x, y))
		}
	}
}

func TestRenderErrors(t *testing.T) {
	cam := camera.NewOrbitCamera()

	_, err := Render(mesh.New(nil, nil), cam, Options{})
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)

	bad := mesh.New(nil, []uint32{0, 1, 2})
	_, err = Render(bad, cam, DefaultOptions())
	assert.ErrorIs(t, err, mesh.ErrIndexOutOfRange)
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestChannelClamps(t *testing.T) {
	assert.Equal(t, uint8(0), channel(-1))
	assert.Equal(t, uint8(255), channel(2))
	assert.Equal(t, uint8(128), channel(0.5))
}

func TestRenderVertexNormals(t *testing.T) {
	// A white square in XY whose stored normals lie along X, perpendicular
	// to a light on +Z.
	side := math.Normal{X: 1}
	m := mesh.New([]mesh.Vertex{
		mesh.NewVertex(math.Pos(-1, 1, 0), math.White, side),
		mesh.NewVertex(math.Pos(-1, -1, 0), math.White, side),
		mesh.NewVertex(math.Pos(1, 1, 0), math.White, side),
		mesh.NewVertex(math.Pos(1, -1, 0), math.White, side),
	}, []uint32{0, 1, 2, 1, 3, 2})

	opts := DefaultOptions()
	opts.Width, opts.Height = 40, 30
	opts.Background = math.Black
	opts.Light = math.Vec3{Z: 1}
	opts.Ambient = 0.2

	face, err := Render(m, framedCamera(m), opts)
	require.NoError(t, err)

	opts.VertexNormals = true
	stored, err := Render(m, framedCamera(m), opts)
	require.NoError(t, err)

	lit, dim := face.RGBAAt(20, 15), stored.RGBAAt(20, 15)
	assert.Greater(t, lit.R, dim.R)
	assert.InDelta(t, 0.2*255, float64(dim.R), 2)
}
