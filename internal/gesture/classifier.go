// Package gesture turns per-frame hand landmarks into discrete, debounced
// gesture labels for the drawing pipeline.
package gesture

import (
	"math"

	"github.com/ayusman/alpona/internal/detector"
)

// Label is a classified hand pose. The set is closed; every consumer is
// expected to handle all nine values.
type Label int

const (
	// None means no hand, an unrecognized pose, or an unstable window.
	None Label = iota
	// Point is an extended index finger only.
	Point
	// Draw is index and middle fingers extended and held together.
	Draw
	// Peace is index and middle fingers extended and spread apart.
	Peace
	// Palm is four or more fingers extended.
	Palm
	// Rock is thumb, index and pinky extended.
	Rock
	// Three is index, middle and ring fingers extended.
	Three
	// Tap is an extended thumb with all other fingers curled.
	Tap
	// Fist is all fingers curled. The classifier folds a closed fist into
	// None; the value exists so downstream code can name it explicitly.
	Fist
)

// String returns the label name used in logs and the status API.
func (l Label) String() string {
	switch l {
	case None:
		return "none"
	case Point:
		return "point"
	case Draw:
		return "draw"
	case Peace:
		return "peace"
	case Palm:
		return "palm"
	case Rock:
		return "rock"
	case Three:
		return "three"
	case Tap:
		return "tap"
	case Fist:
		return "fist"
	}
	return "unknown"
}

// Classification thresholds, in normalized image units.
const (
	// thumbExtendThreshold is the minimum wrist-to-thumb-tip distance for
	// the thumb to count as extended. Thumb flexion does not follow the
	// vertical tip-above-joint ordering the other fingers do.
	thumbExtendThreshold = 0.1

	// drawSplitThreshold separates the two-finger "draw" pose (fingers
	// together) from "peace" (fingers spread), measured tip to tip.
	drawSplitThreshold = 0.08
)

// Classify maps one landmark set to a gesture label. It is deterministic and
// keeps no state between frames.
//
// The rules form an ordered decision list; the first match wins. The order
// deliberately favors the poses the tracker detects most reliably (palm,
// point, peace) over the weaker ones, so ambiguous finger combinations
// always resolve the same way.
func Classify(hand *detector.HandLandmarks) Label {
	if hand == nil {
		return None
	}

	index := fingerExtended(hand, detector.IndexTip, detector.IndexPIP)
	middle := fingerExtended(hand, detector.MiddleTip, detector.MiddlePIP)
	ring := fingerExtended(hand, detector.RingTip, detector.RingPIP)
	pinky := fingerExtended(hand, detector.PinkyTip, detector.PinkyPIP)
	thumb := detector.Distance(hand.Points[detector.Wrist], hand.Points[detector.ThumbTip]) > thumbExtendThreshold

	extendedCount := 0
	for _, ext := range []bool{index, middle, ring, pinky, thumb} {
		if ext {
			extendedCount++
		}
	}

	fingerDistance := tipDistance2D(hand, detector.IndexTip, detector.MiddleTip)

	switch {
	case extendedCount >= 4:
		return Palm
	case extendedCount == 1 && index:
		return Point
	case extendedCount == 2 && index && middle:
		if fingerDistance < drawSplitThreshold {
			return Draw
		}
		return Peace
	case extendedCount == 3 && index && pinky && thumb:
		return Rock
	case extendedCount == 3 && index && middle && ring:
		return Three
	case extendedCount == 1 && thumb && !index:
		return Tap
	case index:
		return Point
	}
	return None
}

// fingerExtended reports whether a finger's tip sits above its PIP joint in
// image space (y grows downward).
func fingerExtended(hand *detector.HandLandmarks, tip, pip int) bool {
	return hand.Points[tip].Y < hand.Points[pip].Y
}

// tipDistance2D is the planar distance between two fingertip landmarks.
// Depth is ignored; the split threshold is calibrated against the image
// plane only.
func tipDistance2D(hand *detector.HandLandmarks, a, b int) float64 {
	dx := hand.Points[a].X - hand.Points[b].X
	dy := hand.Points[a].Y - hand.Points[b].Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DrawingGestures is the set of labels that start or continue a stroke.
// Palm draws with the eraser; the rest draw with the pen.
var DrawingGestures = map[Label]bool{
	Point: true,
	Draw:  true,
	Peace: true,
	Palm:  true,
	Three: true,
}

// IsDrawing reports whether the label belongs to the drawing gesture set.
func IsDrawing(l Label) bool {
	return DrawingGestures[l]
}
