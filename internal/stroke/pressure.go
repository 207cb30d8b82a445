package stroke

// Pressure bounds. Inputs without pressure report DefaultPressure.
const (
	MinPressure     = 0.1
	MaxPressure     = 1.0
	DefaultPressure = 1.0
)

// pressureWindowSize is the length of the rolling average used to smooth
// pressure estimates. Contact-area derived pressure is noisy frame to
// frame; a short window settles it without noticeable lag.
const pressureWindowSize = 5

// PressureWindow smooths a stream of raw pressure samples over a short
// rolling window and clamps the result to the valid range.
type PressureWindow struct {
	samples []float64
}

// NewPressureWindow creates an empty pressure window.
func NewPressureWindow() *PressureWindow {
	return &PressureWindow{
		samples: make([]float64, 0, pressureWindowSize),
	}
}

// Push adds a raw sample and returns the smoothed, clamped pressure.
func (p *PressureWindow) Push(raw float64) float64 {
	if len(p.samples) >= pressureWindowSize {
		p.samples = append(p.samples[:0], p.samples[1:]...)
	}
	p.samples = append(p.samples, raw)

	var sum float64
	for _, s := range p.samples {
		sum += s
	}
	return ClampPressure(sum / float64(len(p.samples)))
}

// Reset clears the window, as at stroke end.
func (p *PressureWindow) Reset() {
	p.samples = p.samples[:0]
}

// ClampPressure bounds a pressure value to [MinPressure, MaxPressure].
func ClampPressure(v float64) float64 {
	if v < MinPressure {
		return MinPressure
	}
	if v > MaxPressure {
		return MaxPressure
	}
	return v
}
