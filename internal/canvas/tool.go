package canvas

import "sync"

// Tool selects how stamps composite onto the canvas.
type Tool int

const (
	// Pen composites the brush color over the canvas.
	Pen Tool = iota
	// Eraser subtracts alpha, revealing the background.
	Eraser
)

// String returns the tool name used in logs and the status API.
func (t Tool) String() string {
	if t == Eraser {
		return "eraser"
	}
	return "pen"
}

// Brush radius bounds in pixels.
const (
	MinRadius = 1
	MaxRadius = 50
)

// ToolState holds the current tool, color and brush radius. It has a single
// writer (the pipeline / explicit configuration calls); the engine reads it
// on every stamp and the UI layer reads it to reflect state.
type ToolState struct {
	mu     sync.RWMutex
	tool   Tool
	color  RGBA
	radius float64
}

// NewToolState returns tool state with the defaults: pen, black, radius 5.
func NewToolState() *ToolState {
	return &ToolState{
		tool:   Pen,
		color:  Black,
		radius: 5,
	}
}

// SetTool selects the active tool.
func (t *ToolState) SetTool(tool Tool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tool = tool
}

// Tool returns the active tool.
func (t *ToolState) Tool() Tool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tool
}

// SetColor sets the brush color.
func (t *ToolState) SetColor(c RGBA) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.color = c
}

// Color returns the brush color.
func (t *ToolState) Color() RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.color
}

// SetRadius sets the brush radius in pixels, clamped to [MinRadius, MaxRadius].
func (t *ToolState) SetRadius(radius float64) {
	if radius < MinRadius {
		radius = MinRadius
	}
	if radius > MaxRadius {
		radius = MaxRadius
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.radius = radius
}

// Radius returns the brush radius in pixels.
func (t *ToolState) Radius() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.radius
}
