package stroke

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/alpona/internal/canvas"
	"github.com/ayusman/alpona/internal/gesture"
)

// State is the controller's stroke state.
type State int

const (
	// Idle means no stroke is in progress.
	Idle State = iota
	// Drawing means a stroke is being accumulated into the back buffer.
	Drawing
)

// String returns the state name used in the status API.
func (s State) String() string {
	if s == Drawing {
		return "drawing"
	}
	return "idle"
}

// DefaultSmoothing is the default exponential smoothing factor. Each new
// raw point moves the recorded point this fraction of the way toward the
// raw target, which damps landmark jitter before it reaches the rasterizer.
const DefaultSmoothing = 0.35

// Controller runs the idle/drawing state machine. It owns the in-progress
// stroke exclusively: points are appended here, smoothed here, and handed
// to the engine as line segments. At most one stroke is active at a time;
// a new stroke cannot begin until the previous one committed.
type Controller struct {
	mu        sync.Mutex
	engine    *canvas.Engine
	tools     *canvas.ToolState
	smoothing float64

	state        State
	strokeID     string
	strokeStart  time.Time
	points       []canvas.Point
	last         canvas.Point
	lastPressure float64
	lastSample   time.Time
	velocity     float64 // pixels per second over the last segment
	cursor       canvas.Point
	hasCursor    bool
	override     bool // explicit tool choice pending a gesture stroke
	pressure     *PressureWindow
}

// NewController creates a controller driving the given engine and tool
// state with the default smoothing factor.
func NewController(engine *canvas.Engine, tools *canvas.ToolState) *Controller {
	return &Controller{
		engine:    engine,
		tools:     tools,
		smoothing: DefaultSmoothing,
		pressure:  NewPressureWindow(),
	}
}

// SetSmoothing sets the exponential smoothing factor in (0, 1]. Values out
// of range are ignored.
func (c *Controller) SetSmoothing(factor float64) {
	if factor <= 0 || factor > 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.smoothing = factor
}

// SelectTool applies an explicit tool choice (UI, keyboard, tray). It
// overrides the gesture-implied tool for the next gesture-driven stroke.
func (c *Controller) SelectTool(tool canvas.Tool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tools.SetTool(tool)
	c.override = true
}

// HandleGesture advances the state machine with one stable gesture frame.
// pos is the mapped surface position of the index fingertip; rawPressure is
// the caller's pressure estimate (DefaultPressure when unavailable).
func (c *Controller) HandleGesture(label gesture.Label, pos canvas.Point, rawPressure float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cursor = pos
	c.hasCursor = true

	if !gesture.IsDrawing(label) {
		c.endLocked()
		return
	}

	pressure := c.pressure.Push(rawPressure)

	if c.state == Idle {
		// Gesture-driven starts re-derive the tool from the gesture
		// unless an explicit selection is pending.
		if c.override {
			c.override = false
		} else if label == gesture.Palm {
			c.tools.SetTool(canvas.Eraser)
		} else {
			c.tools.SetTool(canvas.Pen)
		}
		c.startLocked(pos, pressure)
		return
	}

	c.continueLocked(pos, pressure)
}

// HandLost reports that the tracker no longer sees a hand. Any in-progress
// gesture stroke is committed.
func (c *Controller) HandLost() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasCursor = false
	c.endLocked()
}

// PointerDown starts a pointer-driven stroke at surface coordinates,
// bypassing the classifier. The current tool applies unchanged.
func (c *Controller) PointerDown(x, y, rawPressure float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cursor = canvas.Point{X: x, Y: y}
	c.hasCursor = true

	if c.state == Drawing {
		// The previous stroke must commit before a new one begins.
		c.endLocked()
	}
	c.startLocked(canvas.Point{X: x, Y: y}, c.pressure.Push(rawPressure))
}

// PointerMove continues a pointer-driven stroke.
func (c *Controller) PointerMove(x, y, rawPressure float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cursor = canvas.Point{X: x, Y: y}
	c.hasCursor = true

	if c.state != Drawing {
		return
	}
	c.continueLocked(canvas.Point{X: x, Y: y}, c.pressure.Push(rawPressure))
}

// PointerUp ends a pointer-driven stroke and commits it.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
}

// Cancel force-commits any in-progress stroke, as on focus loss or an
// explicit cancel action. The state machine never stays in drawing.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endLocked()
}

// startLocked begins a stroke: seed the back buffer from front and stamp
// the first point. Callers must hold c.mu.
func (c *Controller) startLocked(pos canvas.Point, pressure float64) {
	c.state = Drawing
	c.strokeID = uuid.NewString()
	c.strokeStart = time.Now()
	c.points = append(c.points[:0], pos)
	c.last = pos
	c.lastPressure = pressure
	c.lastSample = c.strokeStart
	c.velocity = 0

	c.engine.Seed()
	c.engine.Stamp(pos, c.tools.Radius(), c.tools.Tool(), c.tools.Color(), pressure)
}

// continueLocked appends a smoothed point and stamps the connecting
// segment. Callers must hold c.mu.
func (c *Controller) continueLocked(raw canvas.Point, pressure float64) {
	smoothed := canvas.Point{
		X: c.last.X + (raw.X-c.last.X)*c.smoothing,
		Y: c.last.Y + (raw.Y-c.last.Y)*c.smoothing,
	}

	now := time.Now()
	if dt := now.Sub(c.lastSample).Seconds(); dt > 0 {
		c.velocity = math.Hypot(smoothed.X-c.last.X, smoothed.Y-c.last.Y) / dt
	}
	c.lastSample = now

	c.points = append(c.points, smoothed)
	c.engine.Line(c.last, smoothed, c.tools.Radius(), c.tools.Tool(), c.tools.Color(), c.lastPressure, pressure)
	c.last = smoothed
	c.lastPressure = pressure
}

// endLocked commits any in-progress stroke and resets per-stroke state.
// Callers must hold c.mu.
func (c *Controller) endLocked() {
	if c.state != Drawing {
		return
	}
	c.engine.Commit()
	c.state = Idle
	c.strokeID = ""
	c.points = c.points[:0]
	c.velocity = 0
	c.pressure.Reset()
}

// Status is a read-only snapshot for the UI layer.
type Status struct {
	State    string        `json:"state"`
	StrokeID string        `json:"stroke_id,omitempty"`
	Points   int           `json:"points"`
	Tool     string        `json:"tool"`
	Radius   float64       `json:"radius"`
	Pressure float64       `json:"pressure"`
	Velocity float64       `json:"velocity"`
	Cursor   *canvas.Point `json:"cursor,omitempty"`
}

// Status returns a snapshot of the controller state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		State:    c.state.String(),
		StrokeID: c.strokeID,
		Points:   len(c.points),
		Tool:     c.tools.Tool().String(),
		Radius:   c.tools.Radius(),
		Pressure: c.lastPressure,
		Velocity: c.velocity,
	}
	if c.hasCursor {
		cur := c.cursor
		s.Cursor = &cur
	}
	return s
}

// State returns the current stroke state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

