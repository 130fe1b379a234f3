package lighting

import (
	"math"
	"testing"

	emath "github.com/Faultbox/endless/pkg/math"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= eps
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name               string
		azimuth, elevation float32
		want               emath.Vec3
	}{
		{"front", 0, 0, emath.Vec3{Z: 1}},
		{"right", 90, 0, emath.Vec3{X: 1}},
		{"overhead", 0, 90, emath.Vec3{Y: 1}},
		{"behind", 180, 0, emath.Vec3{Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(tt.azimuth, tt.elevation)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("Direction(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
		})
	}
}

func TestDirectionIsUnit(t *testing.T) {
	d := Direction(DefaultAzimuth, DefaultElevation)
	if !near(d.Length(), 1) {
		t.Errorf("length = %v, want 1", d.Length())
	}
}

func TestLambert(t *testing.T) {
	up := emath.Vec3{Y: 1}

	if got := Lambert(up, up, 0.25); !near(got, 1) {
		t.Errorf("facing light = %v, want 1", got)
	}
	if got := Lambert(emath.Vec3{Y: -1}, up, 0.25); !near(got, 1) {
		t.Errorf("back face = %v, want 1", got)
	}
	if got := Lambert(emath.Vec3{X: 1}, up, 0.25); !near(got, 0.25) {
		t.Errorf("edge on = %v, want ambient", got)
	}
}
