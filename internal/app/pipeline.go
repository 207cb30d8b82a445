package app

import (
	"log"
	"time"

	"github.com/ayusman/alpona/internal/detector"
	"github.com/ayusman/alpona/internal/gesture"
	"github.com/ayusman/alpona/internal/stroke"
)

// handSpanPressureScale converts the normalized wrist-to-middle-knuckle
// span into a pressure estimate: a hand closer to the camera appears larger
// and presses harder.
const handSpanPressureScale = 3.0

// ProcessFrame runs one frame's landmarks through the full pipeline:
// classify, stabilize, map coordinates, advance the stroke state machine.
// It is the single synchronous entry point for camera-driven input and runs
// to completion before the next frame is processed.
func (a *App) ProcessFrame(hands []detector.HandLandmarks) {
	if len(hands) == 0 {
		// No hand is not an error: it reads as "gesture none" and ends
		// any gesture-driven stroke.
		stable, changed := a.stabilizer.Push(gesture.None)
		if changed {
			a.setGesture(stable)
		}
		a.controller.HandLost()
		return
	}

	hand := &hands[0]
	if !hand.Valid() {
		// Malformed set: drop the frame, keep the previous stable gesture.
		log.Printf("Discarding malformed landmark frame (non-finite coordinates)")
		return
	}

	raw := gesture.Classify(hand)
	stable, changed := a.stabilizer.Push(raw)
	if changed {
		a.setGesture(stable)
		log.Printf("Stable gesture: %s", stable)
	}

	tip := hand.Points[detector.IndexTip]
	pos := stroke.MapNormalized(tip.X, tip.Y, a.engine.Width(), a.engine.Height())
	pressure := handPressure(hand)

	a.controller.HandleGesture(stable, pos, pressure)
}

// handPressure estimates stroke pressure from apparent hand size.
func handPressure(hand *detector.HandLandmarks) float64 {
	span := detector.Distance(hand.Points[detector.Wrist], hand.Points[detector.MiddleMCP])
	return stroke.ClampPressure(span * handSpanPressureScale)
}

// runPipeline is the camera loop. It manages the transitions between idle
// and active modes based on motion detection and feeds detected hands into
// ProcessFrame.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand detection and ProcessFrame on every active frame
// 4. After 2s without motion, switch back to idle mode and end any stroke
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			// Read a frame from the camera
			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)

					// Going idle reads as losing the hand.
					a.stabilizer.Reset()
					a.setGesture(gesture.None)
					a.controller.HandLost()
					log.Println("Switched to idle mode")
				}
			}

			// Skip detection if not in active mode or no detector
			d := a.Detector()
			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := d.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Step 3: Run the drawing pipeline on this frame
			a.ProcessFrame(hands)
		}
	}
}
