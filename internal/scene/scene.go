// Package scene turns a shape description from the config into a finished
// geometry: built, subdivided, deduplicated, placed and validated.
package scene

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/endless/internal/config"
	"github.com/Faultbox/endless/internal/logger"
	"github.com/Faultbox/endless/pkg/math"
	"github.com/Faultbox/endless/pkg/mesh"
	"github.com/Faultbox/endless/pkg/primitives"
)

// translator is implemented by shapes that track their own placement.
type translator interface {
	Translate(delta math.Position)
}

// Build constructs the geometry described by cfg. Steps run in a fixed
// order: construct, subdivide, dedup, rotate, translate, normals. Translations of
// shapes without a Translate method go straight to the mesh, so a later
// Subdivide on the result drops them.
func Build(cfg config.ShapeConfig) (primitives.Geometry, error) {
	start := time.Now()

	shape, err := primitives.ParseShape(cfg.Kind)
	if err != nil {
		return nil, err
	}

	g, err := construct(shape, cfg)
	if err != nil {
		return nil, fmt.Errorf("building %v: %w", shape, err)
	}
	logger.Debug("shape built", append(logger.MeshFields(g.Mesh()), zap.Stringer("shape", shape))...)

	if cfg.Subdivide > 0 {
		if err := g.Subdivide(cfg.Subdivide); err != nil {
			return nil, fmt.Errorf("subdividing %v: %w", shape, err)
		}
		logger.Debug("shape subdivided", append(logger.MeshFields(g.Mesh()), zap.Int("level", cfg.Subdivide))...)
	}

	if cfg.Dedup {
		before := g.VertexLen()
		if err := g.Dedup(); err != nil {
			return nil, fmt.Errorf("deduplicating %v: %w", shape, err)
		}
		logger.Debug("vertices merged", zap.Int("before", before), zap.Int("after", g.VertexLen()))
	}

	if cfg.Rotate.Degrees != 0 {
		g.Rotate(cfg.Rotate.Radians(), cfg.Rotate.RotateAxis())
	}

	if delta := cfg.TranslateOffset(); delta != (math.Position{}) {
		if t, ok := g.(translator); ok {
			t.Translate(delta)
		} else {
			g.Mesh().Translate(delta)
		}
	}

	if err := recomputeNormals(g.Mesh(), cfg.Normals); err != nil {
		return nil, fmt.Errorf("normals for %v: %w", shape, err)
	}

	if err := g.Mesh().Validate(); err != nil {
		return nil, fmt.Errorf("validating %v: %w", shape, err)
	}

	logger.Info("geometry ready",
		append(logger.MeshFields(g.Mesh()),
			zap.Stringer("shape", shape),
			zap.Duration("elapsed", time.Since(start)),
		)...)
	return g, nil
}

func construct(shape primitives.Shape, cfg config.ShapeConfig) (primitives.Geometry, error) {
	color, err := lookupColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	origin := cfg.OriginPosition()

	switch shape {
	case primitives.ShapeTriangle:
		return geometry(primitives.NewTriangle(origin, cfg.Size))
	case primitives.ShapeSquare:
		return geometry(primitives.NewSquare(origin, cfg.Size))
	case primitives.ShapeCube:
		return geometry(primitives.NewCube(origin, cfg.Size))
	case primitives.ShapeLine:
		endColor, err := lookupColor(cfg.EndColor)
		if err != nil {
			return nil, err
		}
		up := math.Normal{Z: 1}
		return geometry(primitives.NewLine(
			mesh.NewVertex(origin, color, up),
			mesh.NewVertex(cfg.EndPosition(), endColor, up),
			cfg.Thickness, cfg.Segments,
		))
	case primitives.ShapeRing:
		return geometry(primitives.NewRing(origin, cfg.Radius, cfg.Thickness, cfg.Segments, color))
	case primitives.ShapeSphere:
		kind, err := primitives.ParseSphereKind(cfg.Sphere)
		if err != nil {
			return nil, err
		}
		return geometry(primitives.NewSphere(kind, cfg.Radius, origin))
	}
	return nil, fmt.Errorf("%w: %v", mesh.ErrInvalidParameter, shape)
}

// smoothEpsilon is the distance under which positions count as shared when
// smoothing normals across seams.
const smoothEpsilon = 1e-5

// recomputeNormals replaces generator normals, which are often a constant
// +Z, with ones derived from the triangles.
func recomputeNormals(m *mesh.Mesh, mode string) error {
	switch mode {
	case "", config.NormalsKeep:
		return nil
	case config.NormalsFace, config.NormalsSmooth:
		if err := m.ComputeNormals(); err != nil {
			return err
		}
		if mode == config.NormalsSmooth {
			m.SmoothNormals(smoothEpsilon)
		}
		logger.Debug("normals recomputed", zap.String("mode", mode))
		return nil
	}
	return fmt.Errorf("%w: unknown normals mode %q", mesh.ErrInvalidParameter, mode)
}

func lookupColor(name string) (math.Color, error) {
	c, ok := math.ColorByName(name)
	if !ok {
		return math.Color{}, fmt.Errorf("%w: unknown color %q", mesh.ErrInvalidParameter, name)
	}
	return c, nil
}

func geometry[T primitives.Geometry](g T, err error) (primitives.Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}
