// Package stroke owns the stroke lifecycle: mapping landmark coordinates to
// the drawing surface and running the idle/drawing state machine that feeds
// the rasterization engine.
package stroke

import "github.com/ayusman/alpona/internal/canvas"

// MapNormalized converts a normalized landmark coordinate into a rectangle
// of the given size, mirroring horizontally. The camera sees the user like
// a rear camera would; flipping x makes the canvas behave like a mirror,
// which is how people expect to steer their hand. The same transform is
// applied to every landmark-derived coordinate, cursor and stroke geometry
// alike.
func MapNormalized(x, y float64, width, height int) canvas.Point {
	return canvas.Point{
		X: (1 - x) * float64(width),
		Y: y * float64(height),
	}
}
