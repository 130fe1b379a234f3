package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/mesh"
)

// GroundGrid returns line vertices for a square grid of cells×cells lying
// in the XZ plane just below b, sized to cover b's footprint with a margin.
// Format is [x, y, z] per vertex.
func GroundGrid(b mesh.Bounds, cells int) []float32 {
	if cells < 1 {
		return nil
	}

	size := b.Size()
	extent := math32.Max(size.X, size.Z)
	if extent == 0 {
		extent = math32.Max(size.Y, 1)
	}
	extent *= 1.5

	center := b.Center()
	half := extent / 2
	step := extent / float32(cells)
	y := b.Min.Y - step*0.05

	vertices := make([]float32, 0, (cells+1)*2*2*3)
	for i := 0; i <= cells; i++ {
		offset := -half + float32(i)*step
		x := center.X + offset
		z := center.Z + offset
		// Line parallel to Z
		vertices = append(vertices, x, y, center.Z-half, x, y, center.Z+half)
		// Line parallel to X
		vertices = append(vertices, center.X-half, y, z, center.X+half, y, z)
	}
	return vertices
}
