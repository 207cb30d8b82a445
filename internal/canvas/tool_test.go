package canvas

import "testing"

func TestToolState_Defaults(t *testing.T) {
	ts := NewToolState()
	if ts.Tool() != Pen {
		t.Errorf("default tool = %v, want Pen", ts.Tool())
	}
	if ts.Color() != Black {
		t.Errorf("default color = %+v, want black", ts.Color())
	}
	if ts.Radius() != 5 {
		t.Errorf("default radius = %f, want 5", ts.Radius())
	}
}

func TestToolState_RadiusClamped(t *testing.T) {
	ts := NewToolState()

	ts.SetRadius(0)
	if ts.Radius() != MinRadius {
		t.Errorf("radius = %f, want clamped to %d", ts.Radius(), MinRadius)
	}

	ts.SetRadius(500)
	if ts.Radius() != MaxRadius {
		t.Errorf("radius = %f, want clamped to %d", ts.Radius(), MaxRadius)
	}

	ts.SetRadius(12)
	if ts.Radius() != 12 {
		t.Errorf("radius = %f, want 12", ts.Radius())
	}
}

func TestTool_String(t *testing.T) {
	if Pen.String() != "pen" {
		t.Errorf("Pen.String() = %q", Pen.String())
	}
	if Eraser.String() != "eraser" {
		t.Errorf("Eraser.String() = %q", Eraser.String())
	}
}

func TestFromRGB(t *testing.T) {
	c := FromRGB(255, 0, 128)
	if c.R != 1 || c.G != 0 || c.A != 1 {
		t.Errorf("FromRGB = %+v", c)
	}
	n := c.NRGBA()
	if n.R != 255 || n.B != 128 || n.A != 255 {
		t.Errorf("NRGBA = %+v", n)
	}
}
