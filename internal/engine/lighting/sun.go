// Package lighting converts light settings into shader inputs.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/endless/pkg/math"
)

// Direction converts azimuth and elevation angles in degrees to a unit
// vector pointing from the surface toward the light. Azimuth turns around
// the Y axis starting at +Z; elevation is measured up from the XZ plane.
func Direction(azimuth, elevation float32) math.Vec3 {
	sinAz, cosAz := math32.Sincos(azimuth * math.DegToRad)
	sinEl, cosEl := math32.Sincos(elevation * math.DegToRad)

	return math.Vec3{
		X: cosEl * sinAz,
		Y: sinEl,
		Z: cosEl * cosAz,
	}
}

// Lambert returns the two-sided diffuse factor for a face with normal n,
// floored at ambient. n and light must be unit vectors.
func Lambert(n, light math.Vec3, ambient float32) float32 {
	return min(1, ambient+(1-ambient)*math32.Abs(n.Dot(light)))
}

// Defaults shared by the GL renderer and the software rasterizer.
const (
	DefaultAzimuth   = 35
	DefaultElevation = 50
	DefaultAmbient   = 0.35
)
