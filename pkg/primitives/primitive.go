package primitives

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
)

// transform is a recorded in-place edit of a primitive's mesh. Subdivide
// regenerates the mesh from control data and replays the history so
// rotations and translations survive a change of resolution.
type transform func(m *mesh.Mesh)

// primitive holds the mesh every shape owns exclusively.
type primitive struct {
	mesh    *mesh.Mesh
	history []transform
}

// Mesh returns the current mesh. The primitive keeps ownership; callers
// must not hold on to it across Subdivide, which replaces it.
func (p *primitive) Mesh() *mesh.Mesh { return p.mesh }

// Vertices returns the mesh vertices.
func (p *primitive) Vertices() []mesh.Vertex { return p.mesh.Vertices }

// Indices returns the mesh indices.
func (p *primitive) Indices() []uint32 { return p.mesh.Indices }

// VertexLen returns the vertex count.
func (p *primitive) VertexLen() int { return len(p.mesh.Vertices) }

// IndexLen returns the index count.
func (p *primitive) IndexLen() int { return len(p.mesh.Indices) }

// Dedup merges exactly equal vertices of the current mesh.
func (p *primitive) Dedup() error { return p.mesh.Dedup() }

func (p *primitive) geometry() {}

func (p *primitive) apply(t transform) {
	t(p.mesh)
	p.history = append(p.history, t)
}

func (p *primitive) rotate(angle float32, axis, pivot math.Position) {
	p.apply(func(m *mesh.Mesh) { m.Rotate(axis, pivot, angle) })
}

func (p *primitive) translate(delta math.Position) {
	p.apply(func(m *mesh.Mesh) { m.Translate(delta) })
}

// replace installs a freshly generated mesh and replays the history on it.
func (p *primitive) replace(m *mesh.Mesh) {
	for _, t := range p.history {
		t(m)
	}
	p.mesh = m
}

func checkPositive(name string, v float32) error {
	if !(v > 0) || math32.IsInf(v, 1) {
		return fmt.Errorf("%w: %s must be positive, got %v", mesh.ErrInvalidParameter, name, v)
	}
	return nil
}

func checkFinite(name string, p math.Position) error {
	if !p.IsFinite() {
		return fmt.Errorf("%w: %s is not finite: %v", mesh.ErrInvalidParameter, name, p)
	}
	return nil
}

func checkLevel(shape string, level, max int) error {
	if level < 0 || level > max {
		return fmt.Errorf("%w: %s subdivision level %d outside [0, %d]", mesh.ErrInvalidParameter, shape, level, max)
	}
	return nil
}

// checkSegmentLevel rejects levels that would push segments<<level past
// MaxSegments.
func checkSegmentLevel(shape string, segments, level int) error {
	if level < 0 || level > 20 || segments<<level > MaxSegments {
		return fmt.Errorf("%w: %s subdivision level %d for %d segments", mesh.ErrInvalidParameter, shape, level, segments)
	}
	return nil
}
