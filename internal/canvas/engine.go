package canvas

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
)

// Rasterization constants.
const (
	// stampSpacing is the distance in pixels between consecutive stamps
	// along a line segment. Dense enough that fast strokes show no gaps.
	stampSpacing = 2.0

	// antialiasWidth controls the smoothstep transition band at the disc
	// edge, in pixels.
	antialiasWidth = 0.7
)

// ErrInvalidSize is returned when a render surface cannot be created with
// the requested dimensions.
var ErrInvalidSize = errors.New("canvas: surface dimensions must be positive")

// Config holds configuration for the rasterization engine.
type Config struct {
	Width      int
	Height     int
	Background RGBA
}

// DefaultConfig returns the default engine configuration: an 800x600 canvas
// over an opaque white background.
func DefaultConfig() Config {
	return Config{
		Width:      800,
		Height:     600,
		Background: White,
	}
}

// Engine maintains the authoritative drawing image as a pair of equally
// sized render targets and composites brush/eraser stamps incrementally.
//
// Exactly one target is the authoritative front buffer at any time; the
// other is the write target for the in-progress stroke. Stamps land in the
// back buffer (seeded from front at stroke start) and the roles swap at
// stroke end by flipping an index, never by copying pixels. The back buffer
// is blitted to the output surface after every stamp so the user sees live
// feedback without the intermediate becoming authoritative.
//
// Ink is stored with straight alpha over a transparent base; the configured
// background color is composited in only at presentation time. Erasing
// therefore subtracts alpha instead of painting a background-colored disc,
// which keeps it correct over any background.
type Engine struct {
	mu      sync.Mutex
	targets [2]*Surface
	front   int // index of the authoritative target
	output  *Surface
	bg      RGBA
	active  bool // a seeded, uncommitted stroke is in progress
	dropped int  // stamps rejected for degenerate coordinates
}

// New creates an engine with both render targets and the output surface
// allocated at the configured size. Failing to allocate a usable surface is
// fatal for the caller; there is no degraded rendering mode.
func New(cfg Config) (*Engine, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}

	e := &Engine{
		targets: [2]*Surface{
			NewSurface(cfg.Width, cfg.Height),
			NewSurface(cfg.Width, cfg.Height),
		},
		output: NewSurface(cfg.Width, cfg.Height),
		bg:     cfg.Background,
	}
	e.presentLocked(e.targets[e.front])
	return e, nil
}

// Width returns the surface width in pixels.
func (e *Engine) Width() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targets[0].Width()
}

// Height returns the surface height in pixels.
func (e *Engine) Height() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targets[0].Height()
}

// Active reports whether a seeded stroke is awaiting commit.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Seed copies the front buffer into the back buffer, preparing it to
// receive a new stroke's stamps on top of all committed content. Called
// once per stroke start.
func (e *Engine) Seed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.back().CopyFrom(e.targets[e.front])
	e.active = true
}

// Stamp composites one anti-aliased disc into the back buffer and refreshes
// the touched region of the output surface. Stamps with non-finite or
// out-of-bounds centers are dropped silently; momentary degenerate values
// from the tracker must not kill a stroke.
func (e *Engine) Stamp(center Point, radius float64, tool Tool, color RGBA, pressure float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dst := e.back()
	w, h := float64(dst.Width()), float64(dst.Height())

	if !finite(center.X) || !finite(center.Y) ||
		center.X < 0 || center.X >= w || center.Y < 0 || center.Y >= h {
		e.dropped++
		log.Printf("canvas: dropped stamp at (%v, %v), %d dropped total", center.X, center.Y, e.dropped)
		return
	}

	if pressure < 0.1 {
		pressure = 0.1
	}
	if pressure > 1 {
		pressure = 1
	}

	x0 := int(math.Floor(center.X - radius - antialiasWidth))
	x1 := int(math.Ceil(center.X + radius + antialiasWidth))
	y0 := int(math.Floor(center.Y - radius - antialiasWidth))
	y1 := int(math.Ceil(center.Y + radius + antialiasWidth))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= dst.Width() {
		x1 = dst.Width() - 1
	}
	if y1 >= dst.Height() {
		y1 = dst.Height() - 1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cov := discCoverage(float64(x)+0.5, float64(y)+0.5, center.X, center.Y, radius)
			if cov <= 0 {
				continue
			}

			px := dst.Pixel(x, y)
			switch tool {
			case Eraser:
				dst.SetPixel(x, y, eraseOut(px, cov*pressure))
			default:
				dst.SetPixel(x, y, sourceOver(px, color, cov*pressure*color.A))
			}
		}
	}

	// Live feedback: refresh only the stamped region of the output.
	e.presentRegionLocked(dst, x0, y0, x1, y1)
}

// Line stamps discs along the segment from p0 to p1 at a fixed spacing,
// interpolating pressure between the endpoints.
func (e *Engine) Line(p0, p1 Point, radius float64, tool Tool, color RGBA, pr0, pr1 float64) {
	dist := math.Hypot(p1.X-p0.X, p1.Y-p0.Y)
	steps := int(dist / stampSpacing)
	if steps < 1 {
		steps = 1
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := Point{
			X: p0.X + (p1.X-p0.X)*t,
			Y: p0.Y + (p1.Y-p0.Y)*t,
		}
		e.Stamp(p, radius, tool, color, pr0+(pr1-pr0)*t)
	}
}

// Commit swaps the front/back roles so the just-drawn back buffer becomes
// the authoritative image. The swap flips an index; no pixels move. Commit
// without a seeded stroke is a no-op.
func (e *Engine) Commit() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active {
		return
	}
	e.front = 1 - e.front
	e.active = false
	e.presentLocked(e.targets[e.front])
}

// Present blits the live buffer to the output surface: the back buffer
// during a stroke, the front buffer otherwise.
func (e *Engine) Present() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		e.presentLocked(e.back())
		return
	}
	e.presentLocked(e.targets[e.front])
}

// Clear resets both targets to fully transparent ink (the configured
// background shows through) and re-presents. Any in-progress stroke is
// discarded.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.targets[0].Fill(Transparent)
	e.targets[1].Fill(Transparent)
	e.active = false
	e.presentLocked(e.targets[e.front])
}

// Resize reallocates both render targets and the output surface, reseeding
// the new front buffer from the previous authoritative content (top-left
// anchored). An in-progress stroke has its stamps so far committed into the
// new front buffer, and the back buffer is re-seeded so the stroke keeps
// accumulating and its closing Commit still lands.
func (e *Engine) Resize(width, height int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	wasActive := e.active
	if wasActive {
		// Fold the stamps drawn so far into the authoritative image.
		e.front = 1 - e.front
	}
	prev := e.targets[e.front]

	e.targets[0] = NewSurface(width, height)
	e.targets[1] = NewSurface(width, height)
	e.output = NewSurface(width, height)
	e.front = 0

	e.targets[e.front].CopyFrom(prev)
	if wasActive {
		e.back().CopyFrom(e.targets[e.front])
	}
	e.active = wasActive
	e.presentLocked(e.targets[e.front])
	return nil
}

// Front returns a copy of the authoritative front buffer.
func (e *Engine) Front() *Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.targets[e.front].Clone()
}

// Output returns a copy of the presented output surface, with the
// background composited in.
func (e *Engine) Output() *Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.output.Clone()
}

// DroppedStamps returns how many stamps were rejected for degenerate
// coordinates since the engine was created.
func (e *Engine) DroppedStamps() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropped
}

func (e *Engine) back() *Surface {
	return e.targets[1-e.front]
}

// presentLocked composites src over the background color into the whole
// output surface. Callers must hold e.mu.
func (e *Engine) presentLocked(src *Surface) {
	e.presentRegionLocked(src, 0, 0, src.Width()-1, src.Height()-1)
}

func (e *Engine) presentRegionLocked(src *Surface, x0, y0, x1, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			ink := src.Pixel(x, y)
			e.output.SetPixel(x, y, sourceOver(e.bg, ink, ink.A))
		}
	}
}

// discCoverage computes anti-aliased coverage of a pixel center by a filled
// disc, using a signed-distance smoothstep.
func discCoverage(px, py, cx, cy, radius float64) float64 {
	sdf := math.Hypot(px-cx, py-cy) - radius
	if sdf >= antialiasWidth {
		return 0
	}
	if sdf <= -antialiasWidth {
		return 1
	}
	t := (sdf + antialiasWidth) / (2 * antialiasWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}

// sourceOver composites src over dst with the given source alpha, in
// straight (non-premultiplied) form. The result alpha never drops below the
// destination alpha.
func sourceOver(dst, src RGBA, srcAlpha float64) RGBA {
	outA := srcAlpha + dst.A*(1-srcAlpha)
	if outA <= 0 {
		return Transparent
	}
	return RGBA{
		R: (src.R*srcAlpha + dst.R*dst.A*(1-srcAlpha)) / outA,
		G: (src.G*srcAlpha + dst.G*dst.A*(1-srcAlpha)) / outA,
		B: (src.B*srcAlpha + dst.B*dst.A*(1-srcAlpha)) / outA,
		A: outA,
	}
}

// eraseOut applies the destination-out operator: the destination keeps its
// color but loses alpha in proportion to the eraser strength. Alpha can
// only decrease.
func eraseOut(dst RGBA, strength float64) RGBA {
	return RGBA{
		R: dst.R,
		G: dst.G,
		B: dst.B,
		A: dst.A * (1 - strength),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
