// Package detector provides the hand landmark provider boundary for the
// drawing pipeline: the Detector interface, the MediaPipe subprocess
// implementation and a mock used by tests.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a normalized landmark position. X and Y are in [0,1]
// image coordinates (origin top-left, y down); Z is the depth estimate
// supplied by the tracker.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents one hand's 21 tracked landmarks for a single
// frame. A fresh value is produced per frame and never mutated afterwards.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// Distance returns the Euclidean distance between two landmark points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Valid reports whether every landmark coordinate is finite. Trackers
// occasionally emit NaN or infinite positions for a frame; such frames are
// discarded upstream rather than fed into classification.
func (h *HandLandmarks) Valid() bool {
	if h == nil {
		return false
	}
	for i := range h.Points {
		p := h.Points[i]
		if !isFinite(p.X) || !isFinite(p.Y) || !isFinite(p.Z) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
