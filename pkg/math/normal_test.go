package math

import (
	"math"
	"testing"
)

func TestNormalNormalize(t *testing.T) {
	n := Normal{3, 4, 0}.Normalize()
	if !near(n.Length(), 1) {
		t.Errorf("Normalize().Length() = %v, want 1", n.Length())
	}
	if z := (Normal{}).Normalize(); z != (Normal{}) {
		t.Errorf("zero Normalize() = %v, want zero", z)
	}
}

func TestNormalNotNormalizedOnConstruction(t *testing.T) {
	n := Normal{0, 0, 2}
	if n.Length() != 2 {
		t.Errorf("Length() = %v, want 2", n.Length())
	}
}

func TestNormalCross(t *testing.T) {
	got := Normal{1, 0, 0}.Cross(Normal{0, 1, 0})
	if got != (Normal{0, 0, 1}) {
		t.Errorf("Cross() = %v, want (0,0,1)", got)
	}
}

func TestNormalRotate(t *testing.T) {
	got := Normal{1, 0, 0}.Rotate(math.Pi/2, Dir(0, 0, 1))
	if !near(got.X, 0) || !near(got.Y, 1) || !near(got.Z, 0) {
		t.Errorf("Rotate() = %v, want (0,1,0)", got)
	}
}

func TestNormalPosition(t *testing.T) {
	p := Normal{1, 2, 3}.Position()
	if p != Dir(1, 2, 3) {
		t.Errorf("Position() = %v, want direction", p)
	}
	if back := Pos(1, 2, 3).AddNormal(Normal{1, 1, 1}); back != Pos(2, 3, 4) {
		t.Errorf("AddNormal() = %v", back)
	}
}
