package stroke

import (
	"math"
	"testing"
)

func TestMapNormalized_Mirrors(t *testing.T) {
	p := MapNormalized(0.25, 0.5, 800, 600)
	if p.X != 600 {
		t.Errorf("X = %f, want 600 (mirrored)", p.X)
	}
	if p.Y != 300 {
		t.Errorf("Y = %f, want 300", p.Y)
	}
}

func TestMapNormalized_Corners(t *testing.T) {
	// Left edge of the image lands on the right edge of the surface.
	p := MapNormalized(0, 0, 800, 600)
	if p.X != 800 || p.Y != 0 {
		t.Errorf("(0,0) mapped to (%f, %f), want (800, 0)", p.X, p.Y)
	}

	p = MapNormalized(1, 1, 800, 600)
	if p.X != 0 || p.Y != 600 {
		t.Errorf("(1,1) mapped to (%f, %f), want (0, 600)", p.X, p.Y)
	}
}

func TestMapNormalized_MirrorInvolution(t *testing.T) {
	// Mapping x, then mapping the pre-mirrored value 1-x, recovers the
	// original surface coordinate: mirroring composed twice is identity.
	for _, x := range []float64{0, 0.1, 0.33, 0.5, 0.77, 1} {
		once := MapNormalized(x, 0.5, 1000, 1000)
		twice := MapNormalized(1-x, 0.5, 1000, 1000)
		if math.Abs(once.X-(1000-twice.X)) > 1e-9 {
			t.Errorf("x=%f: mirror involution broken: %f vs %f", x, once.X, 1000-twice.X)
		}
	}
}

func TestMapNormalized_SameFormulaForAnyRect(t *testing.T) {
	// Screen space and canvas space use the same formula against their
	// respective rectangles.
	surface := MapNormalized(0.3, 0.4, 800, 600)
	screen := MapNormalized(0.3, 0.4, 1920, 1080)

	if surface.X/800 != screen.X/1920 {
		t.Error("relative X differs between rectangles")
	}
	if surface.Y/600 != screen.Y/1080 {
		t.Error("relative Y differs between rectangles")
	}
}
