package primitives

import (
	stdmath "math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

func TestTriangle(t *testing.T) {
	tri, err := NewTriangle(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	v := tri.Vertices()
	require.Len(t, v, 3)
	assert.Equal(t, math.Pos(0, 0.75, 0), v[0].Position)
	assert.Equal(t, math.Pos(-1, -0.5, 0), v[1].Position)
	assert.Equal(t, math.Pos(1, -0.5, 0), v[2].Position)
	assert.Equal(t, []math.Color{math.Red, math.Green, math.Blue}, []math.Color{v[0].Color, v[1].Color, v[2].Color})
	assert.Equal(t, []uint32{0, 1, 2}, tri.Indices())

	before := tri.Mesh().Clone()
	require.NoError(t, tri.Subdivide(4))
	assert.Equal(t, before, tri.Mesh())
}

func TestTriangleFromVertices(t *testing.T) {
	a := mesh.NewVertex(math.Pos(0, 0, 0), math.Red, math.Normal{Z: 1})
	b := mesh.NewVertex(math.Pos(3, 0, 0), math.Green, math.Normal{Z: 1})
	c := mesh.NewVertex(math.Pos(0, 3, 0), math.Blue, math.Normal{Z: 1})

	tri, err := NewTriangleFromVertices(a, b, c)
	require.NoError(t, err)
	assert.Equal(t, math.Pos(1, 1, 0), tri.Origin())
	assert.Equal(t, []mesh.Vertex{a, b, c}, tri.Vertices())

	_, err = NewTriangleFromVertices(a, b, mesh.NewVertex(math.Pos(6, 0, 0), math.Blue, math.Normal{}))
	assert.ErrorIs(t, err, mesh.ErrDegenerateGeometry)
}

func TestSquare(t *testing.T) {
	sq, err := NewSquare(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	v := sq.Vertices()
	require.Len(t, v, 4)
	assert.Equal(t, math.Pos(-1, 1, 0), v[0].Position)
	assert.Equal(t, math.Pos(-1, -1, 0), v[1].Position)
	assert.Equal(t, math.Pos(1, 1, 0), v[2].Position)
	assert.Equal(t, math.Pos(1, -1, 0), v[3].Position)
	assert.Equal(t, []math.Color{math.Black, math.Cyan, math.Yellow, math.Magenta},
		[]math.Color{v[0].Color, v[1].Color, v[2].Color, v[3].Color})
	assert.Equal(t, []uint32{0, 1, 2, 1, 3, 2}, sq.Indices())
}

func TestPatchGrid(t *testing.T) {
	sq, err := NewSquare(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	for level := range 5 {
		m, err := Patch(sq.Corners(), level)
		require.NoError(t, err)
		n := 1<<level + 1
		assert.Equal(t, n*n, m.VertexCount(), "level %d", level)
		assert.Equal(t, (n-1)*(n-1)*6, m.IndexCount(), "level %d", level)
		require.NoError(t, m.Validate())
	}

	m, err := Patch(sq.Corners(), 1)
	require.NoError(t, err)
	assert.Equal(t, 9, m.VertexCount())
	assert.Equal(t, 8, m.TriangleCount())
	assert.Equal(t, 24, m.IndexCount())
	assert.Equal(t, []uint32{3, 0, 4, 0, 1, 4}, m.Indices[:6])
	// center of the grid is the average of the corners
	assert.Equal(t, math.Pos(0, 0, 0), m.Vertices[4].Position)

	_, err = Patch(sq.Corners(), MaxSquareLevel+1)
	assert.ErrorIs(t, err, mesh.ErrInvalidParameter)
}

func TestSquareSubdivide(t *testing.T) {
	sq, err := NewSquare(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	require.NoError(t, sq.Subdivide(1))
	assert.Equal(t, 9, sq.VertexLen())
	assert.Equal(t, 24, sq.IndexLen())

	// subdividing again starts from the corners, not the current grid
	require.NoError(t, sq.Subdivide(1))
	assert.Equal(t, 9, sq.VertexLen())

	require.NoError(t, sq.Subdivide(3))
	assert.Equal(t, 81, sq.VertexLen())
	b := sq.Mesh().Bounds()
	assert.Equal(t, math.Vec3{X: -1, Y: -1}, b.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 1}, b.Max)
}

func TestCube(t *testing.T) {
	cube, err := NewCube(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)
	assert.Equal(t, 8, cube.VertexLen())
	assert.Equal(t, 36, cube.IndexLen())
	assert.Equal(t, math.Black, cube.Vertices()[0].Color)
	assert.Equal(t, math.Green, cube.Vertices()[7].Color)
	assert.Equal(t, math.Pos(-1, -1, -1), cube.Vertices()[7].Position)
}

func TestCubeSeamsCollapse(t *testing.T) {
	for level := range 4 {
		cube, err := NewCube(math.Pos(0.5, 0.25, -3), 2)
		require.NoError(t, err)
		require.NoError(t, cube.Subdivide(level))

		n := 1 << level
		assert.Equal(t, 6*(n+1)*(n+1), cube.VertexLen(), "level %d", level)
		assert.Equal(t, 6*n*n*6, cube.IndexLen(), "level %d", level)

		before := cube.VertexLen()
		require.NoError(t, cube.Dedup())
		assert.Less(t, cube.VertexLen(), before, "level %d", level)
		// one vertex per surface grid point: every shared edge merged
		assert.Equal(t, 6*n*n+2, cube.VertexLen(), "level %d", level)
	}
}

func TestCubeFaceMatchesSquare(t *testing.T) {
	for level := range 3 {
		cube, err := NewCube(math.Pos(0, 0, 0), 2)
		require.NoError(t, err)
		require.NoError(t, cube.Subdivide(level))

		for f, face := range cubeFaces {
			c := cube.corners
			square, err := NewSquareFromVertices(c[face[0]], c[face[1]], c[face[2]], c[face[3]])
			require.NoError(t, err)
			require.NoError(t, square.Subdivide(level))

			nv, ni := square.VertexLen(), square.IndexLen()
			base := uint32(f * nv)
			assert.Equal(t, square.Vertices(), cube.Vertices()[f*nv:(f+1)*nv], "level %d face %d", level, f)
			for i, idx := range square.Indices() {
				assert.Equal(t, idx+base, cube.Indices()[f*ni+i], "level %d face %d index %d", level, f, i)
			}
		}
	}
}

func TestCubeTranslate(t *testing.T) {
	cube, err := NewCube(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	cube.Translate(math.Pos(3, 0, 0))
	assert.Equal(t, math.Pos(3, 0, 0), cube.Origin())
	assert.Equal(t, math.Vec3{X: 3}, cube.Mesh().Bounds().Center())

	require.NoError(t, cube.Subdivide(2))
	assert.Equal(t, math.Vec3{X: 3}, cube.Mesh().Bounds().Center())
}

func TestLine(t *testing.T) {
	start := mesh.NewVertex(math.Pos(0, 0, 0), math.Red, math.Normal{})
	end := mesh.NewVertex(math.Pos(4, 0, 0), math.Blue, math.Normal{})

	line, err := NewLine(start, end, 0.5, 4)
	require.NoError(t, err)
	require.Equal(t, 16, line.VertexLen())
	require.Equal(t, 24, line.IndexLen())

	v := line.Vertices()
	assert.Equal(t, math.Pos(0, -0.25, 0), v[0].Position)
	assert.Equal(t, math.Pos(0, 0.25, 0), v[1].Position)
	assert.Equal(t, math.Pos(4, 0.25, 0), v[15].Position)
	assert.Equal(t, math.Red, v[0].Color)
	assert.Equal(t, math.Blue, v[15].Color)
	assert.Equal(t, []uint32{4, 5, 6, 5, 7, 6}, line.Indices()[6:12])

	for _, vert := range v {
		assert.InDelta(t, 1, vert.Normal.Length(), delta)
		assert.InDelta(t, 1, stdmath.Abs(float64(vert.Normal.Z)), delta)
	}

	require.NoError(t, line.Subdivide(2))
	assert.Equal(t, 64, line.VertexLen())
	assert.Equal(t, 4, line.Segments())
	assert.Equal(t, math.Blue, line.Vertices()[63].Color)
}

func TestLineAlongZ(t *testing.T) {
	start := mesh.NewVertex(math.Pos(0, 0, 0), math.White, math.Normal{})
	end := mesh.NewVertex(math.Pos(0, 0, 3), math.White, math.Normal{})

	line, err := NewLine(start, end, 1, 1)
	require.NoError(t, err)
	for _, v := range line.Vertices() {
		assert.True(t, v.Position.IsFinite())
		assert.InDelta(t, 1, v.Normal.Length(), delta)
	}
	assert.InDelta(t, 1, line.Vertices()[0].Distance(line.Vertices()[1]), delta)
}

func TestRing(t *testing.T) {
	center := math.Pos(1, 2, 0)
	ring, err := NewRing(center, 1, 0.2, 8, math.Gold)
	require.NoError(t, err)

	require.Equal(t, 16, ring.VertexLen())
	require.Equal(t, 48, ring.IndexLen())

	v := ring.Vertices()
	assert.InDelta(t, 2.1, v[0].Position.X, delta)
	assert.InDelta(t, 1.9, v[1].Position.X, delta)
	assert.Equal(t, float32(2), v[0].Position.Y)

	for i, vert := range v {
		want := float32(1.1)
		if i%2 == 1 {
			want = 0.9
		}
		assert.InDelta(t, want, vert.Position.Distance(center), delta, "vertex %d", i)
		assert.Equal(t, math.Gold, vert.Color)
		assert.InDelta(t, 1, vert.Normal.Length(), delta, "vertex %d", i)
	}

	// closing step joins the last pair back to pair 0
	assert.Equal(t, []uint32{14, 15, 0, 15, 1, 0}, ring.Indices()[42:])

	// patched first-pair normals match the rest of the band
	assert.InDelta(t, v[2].Normal.Z, v[0].Normal.Z, delta)
	assert.InDelta(t, v[3].Normal.Z, v[1].Normal.Z, delta)

	require.NoError(t, ring.Subdivide(1))
	assert.Equal(t, 32, ring.VertexLen())
	assert.Equal(t, 8, ring.Segments())
}

func TestUVSphere(t *testing.T) {
	origin := math.Pos(1, -2, 3)
	s, err := NewSphere(UVSphere, 2, origin)
	require.NoError(t, err)

	assert.Equal(t, 33*33, s.VertexLen())
	assert.Equal(t, 32*32*6, s.IndexLen())
	for _, v := range s.Vertices() {
		assert.InDelta(t, 2, v.Position.Distance(origin), delta)
		assert.Equal(t, float32(1), v.Position.W)
	}

	c := s.Vertices()[0].Color
	assert.InDelta(t, 0.5, c.R, delta)
	assert.InDelta(t, 1, c.G, delta)
	assert.InDelta(t, 1+1.0/512, c.B, delta)

	require.NoError(t, s.Subdivide(1))
	assert.Equal(t, 65*65, s.VertexLen())
	assert.Equal(t, 1, s.Level())

	require.NoError(t, s.Subdivide(0))
	assert.Equal(t, 33*33, s.VertexLen())
}

func TestIcosphere(t *testing.T) {
	origin := math.Pos(0, 1, 0)
	s, err := NewSphere(Icosahedron, 2, origin)
	require.NoError(t, err)

	assert.Equal(t, 12, s.VertexLen())
	assert.Equal(t, 60, s.IndexLen())
	assert.Equal(t, math.Pos(-2, 2*goldenRatio+1, 0), s.Vertices()[0].Position)
	assert.Equal(t, []uint32{0, 11, 5}, s.Indices()[:3])
	assert.Equal(t, []uint32{9, 8, 1}, s.Indices()[57:])

	base := s.Mesh().Clone()
	require.NoError(t, s.Subdivide(0))
	assert.Equal(t, base, s.Mesh())

	circumradius := 2 * math32.Sqrt(1+goldenRatio*goldenRatio)
	for level := 1; level <= 3; level++ {
		require.NoError(t, s.Subdivide(level))
		pow := 1 << (2 * level)
		assert.Equal(t, 10*pow+2, s.VertexLen(), "level %d", level)
		assert.Equal(t, 60*pow, s.IndexLen(), "level %d", level)
		for _, v := range s.Vertices() {
			assert.InDelta(t, circumradius, v.Position.Distance(origin), delta)
			assert.Equal(t, math.Blue, v.Color)
		}
	}
}

func TestSpherifiedCube(t *testing.T) {
	origin := math.Pos(-1, 0, 4)
	s, err := NewSphere(SpherifiedCube, 3, origin)
	require.NoError(t, err)

	assert.Equal(t, 6*8*8, s.VertexLen())
	assert.Equal(t, 6*7*7*6, s.IndexLen())
	assert.Equal(t, []uint32{0, 9, 1, 1, 9, 8}, s.Indices()[:6])

	for _, v := range s.Vertices() {
		assert.InDelta(t, 3, v.Position.Distance(origin), delta)
		assert.Equal(t, float32(1), v.Position.W)
	}

	corner := s.Vertices()[0].Position.Sub(origin)
	k := float32(3 / stdmath.Sqrt(3))
	assert.InDelta(t, k, corner.X, delta)
	assert.InDelta(t, -k, corner.Y, delta)
	assert.InDelta(t, -k, corner.Z, delta)

	require.NoError(t, s.Subdivide(1))
	assert.Equal(t, 6*16*16, s.VertexLen())
	assert.Equal(t, 6*15*15*6, s.IndexLen())
}
