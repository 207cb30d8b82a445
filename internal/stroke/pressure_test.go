package stroke

import "testing"

func TestPressureWindow_AveragesSamples(t *testing.T) {
	w := NewPressureWindow()

	if got := w.Push(0.4); got != 0.4 {
		t.Errorf("first sample = %f, want 0.4", got)
	}
	if got := w.Push(0.8); got != 0.6 {
		t.Errorf("average of two = %f, want 0.6", got)
	}
}

func TestPressureWindow_BoundedHistory(t *testing.T) {
	w := NewPressureWindow()

	for i := 0; i < 20; i++ {
		w.Push(1.0)
	}
	// After the window is saturated with 1.0, a single low sample moves
	// the average by at most 1/windowSize.
	got := w.Push(0.0)
	if got < 0.7 {
		t.Errorf("smoothed = %f, window seems unbounded", got)
	}
}

func TestPressureWindow_ClampsOutput(t *testing.T) {
	w := NewPressureWindow()
	if got := w.Push(5.0); got != MaxPressure {
		t.Errorf("Push(5.0) = %f, want clamped to %f", got, MaxPressure)
	}

	w.Reset()
	if got := w.Push(0.0); got != MinPressure {
		t.Errorf("Push(0.0) = %f, want clamped to %f", got, MinPressure)
	}
}

func TestClampPressure(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, MinPressure},
		{0, MinPressure},
		{0.5, 0.5},
		{1, 1},
		{3, MaxPressure},
	}
	for _, tt := range tests {
		if got := ClampPressure(tt.in); got != tt.want {
			t.Errorf("ClampPressure(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}
