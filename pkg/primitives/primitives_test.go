package primitives

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

const delta = 1e-4

type builder struct {
	name     string
	maxLevel int
	build    func(t *testing.T) Geometry
}

func builders() []builder {
	origin := math.Pos(0.5, -1, 2)
	return []builder{
		{"triangle", 3, func(t *testing.T) Geometry {
			g, err := NewTriangle(origin, 2)
			require.NoError(t, err)
			return g
		}},
		{"square", 3, func(t *testing.T) Geometry {
			g, err := NewSquare(origin, 2)
			require.NoError(t, err)
			return g
		}},
		{"cube", 3, func(t *testing.T) Geometry {
			g, err := NewCube(origin, 2)
			require.NoError(t, err)
			return g
		}},
		{"line", 3, func(t *testing.T) Geometry {
			g, err := NewLine(
				mesh.NewVertex(math.Pos(-1, -1, 0), math.Red, math.Normal{}),
				mesh.NewVertex(math.Pos(2, 3, 1), math.Blue, math.Normal{}),
				0.25, 4)
			require.NoError(t, err)
			return g
		}},
		{"ring", 3, func(t *testing.T) Geometry {
			g, err := NewRing(origin, 1, 0.2, 12, math.Gold)
			require.NoError(t, err)
			return g
		}},
		{"uv sphere", 2, func(t *testing.T) Geometry {
			g, err := NewSphere(UVSphere, 1.5, origin)
			require.NoError(t, err)
			return g
		}},
		{"icosahedron", 3, func(t *testing.T) Geometry {
			g, err := NewSphere(Icosahedron, 1.5, origin)
			require.NoError(t, err)
			return g
		}},
		{"spherified cube", 3, func(t *testing.T) Geometry {
			g, err := NewSphere(SpherifiedCube, 1.5, origin)
			require.NoError(t, err)
			return g
		}},
	}
}

func TestEveryMeshIsValid(t *testing.T) {
	for _, b := range builders() {
		t.Run(b.name, func(t *testing.T) {
			g := b.build(t)
			require.NoError(t, g.Mesh().Validate())
			assert.Zero(t, g.IndexLen()%3)

			for level := 0; level <= b.maxLevel; level++ {
				require.NoError(t, g.Subdivide(level), "level %d", level)
				require.NoError(t, g.Mesh().Validate(), "level %d", level)
				require.NoError(t, g.Dedup())
				require.NoError(t, g.Mesh().Validate(), "level %d after dedup", level)
			}
		})
	}
}

func TestHashDedupMatchesLinearScan(t *testing.T) {
	for _, b := range builders() {
		t.Run(b.name, func(t *testing.T) {
			g := b.build(t)
			for level := 0; level <= 1; level++ {
				require.NoError(t, g.Subdivide(level))

				hashed := g.Mesh().Clone()
				linear := g.Mesh().Clone()
				require.NoError(t, hashed.Dedup())
				require.NoError(t, linear.DedupFunc(mesh.Equal))
				assert.Equal(t, linear, hashed, "level %d", level)
			}
		})
	}
}

func TestDedupIsIdempotent(t *testing.T) {
	for _, b := range builders() {
		t.Run(b.name, func(t *testing.T) {
			g := b.build(t)
			require.NoError(t, g.Subdivide(1))
			require.NoError(t, g.Dedup())
			once := g.Mesh().Clone()
			require.NoError(t, g.Dedup())
			assert.Equal(t, once, g.Mesh())
		})
	}
}

func TestAccessorsAgree(t *testing.T) {
	for _, b := range builders() {
		t.Run(b.name, func(t *testing.T) {
			g := b.build(t)
			assert.Equal(t, len(g.Vertices()), g.VertexLen())
			assert.Equal(t, len(g.Indices()), g.IndexLen())
			assert.Equal(t, g.Mesh().Vertices, g.Vertices())
			assert.Equal(t, g.Mesh().Indices, g.Indices())
		})
	}
}

func TestSubdivideKeepsRotation(t *testing.T) {
	sq, err := NewSquare(math.Pos(0, 0, 0), 2)
	require.NoError(t, err)

	sq.Rotate(stdmath.Pi/2, math.Dir(0, 0, 1))
	p := sq.Vertices()[0].Position
	assert.InDelta(t, -1, p.X, delta)
	assert.InDelta(t, -1, p.Y, delta)

	require.NoError(t, sq.Subdivide(1))
	// grid vertex (0, 0) is corner 0, rotated the same way
	p = sq.Vertices()[0].Position
	assert.InDelta(t, -1, p.X, delta)
	assert.InDelta(t, -1, p.Y, delta)
}

func TestRejectsBadParameters(t *testing.T) {
	red := mesh.NewVertex(math.Pos(0, 0, 0), math.Red, math.Normal{})
	blue := mesh.NewVertex(math.Pos(1, 0, 0), math.Blue, math.Normal{})
	nan := float32(stdmath.NaN())

	tests := []struct {
		name string
		err  error
		fn   func() error
	}{
		{"triangle zero size", mesh.ErrInvalidParameter, func() error { _, err := NewTriangle(math.Pos(0, 0, 0), 0); return err }},
		{"triangle nan origin", mesh.ErrInvalidParameter, func() error { _, err := NewTriangle(math.Pos(nan, 0, 0), 1); return err }},
		{"square negative size", mesh.ErrInvalidParameter, func() error { _, err := NewSquare(math.Pos(0, 0, 0), -1); return err }},
		{"cube inf size", mesh.ErrInvalidParameter, func() error {
			_, err := NewCube(math.Pos(0, 0, 0), float32(stdmath.Inf(1)))
			return err
		}},
		{"line zero thickness", mesh.ErrInvalidParameter, func() error { _, err := NewLine(red, blue, 0, 1); return err }},
		{"line zero segments", mesh.ErrInvalidParameter, func() error { _, err := NewLine(red, blue, 1, 0); return err }},
		{"line coincident ends", mesh.ErrDegenerateGeometry, func() error { _, err := NewLine(red, red, 1, 1); return err }},
		{"ring two segments", mesh.ErrInvalidParameter, func() error {
			_, err := NewRing(math.Pos(0, 0, 0), 1, 0.1, 2, math.Red)
			return err
		}},
		{"ring too thick", mesh.ErrInvalidParameter, func() error {
			_, err := NewRing(math.Pos(0, 0, 0), 1, 2, 8, math.Red)
			return err
		}},
		{"ring zero radius", mesh.ErrInvalidParameter, func() error {
			_, err := NewRing(math.Pos(0, 0, 0), 0, 0.1, 8, math.Red)
			return err
		}},
		{"sphere zero radius", mesh.ErrInvalidParameter, func() error {
			_, err := NewSphere(Icosahedron, 0, math.Pos(0, 0, 0))
			return err
		}},
		{"sphere unknown kind", mesh.ErrInvalidParameter, func() error {
			_, err := NewSphere(SphereKind(42), 1, math.Pos(0, 0, 0))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), tt.err)
		})
	}
}

func TestSubdivideRejectsBadLevels(t *testing.T) {
	for _, b := range builders() {
		t.Run(b.name, func(t *testing.T) {
			g := b.build(t)
			before := g.Mesh()
			assert.ErrorIs(t, g.Subdivide(-1), mesh.ErrInvalidParameter)
			assert.Same(t, before, g.Mesh())
		})
	}

	cube, err := NewCube(math.Pos(0, 0, 0), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, cube.Subdivide(MaxCubeLevel+1), mesh.ErrInvalidParameter)

	ico, err := NewSphere(Icosahedron, 1, math.Pos(0, 0, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, ico.Subdivide(MaxIcosahedronLevel+1), mesh.ErrInvalidParameter)
}
