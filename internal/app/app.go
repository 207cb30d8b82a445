// Package app wires the drawing pipeline together: camera capture, hand
// detection, gesture stabilization, the stroke controller and the canvas
// engine.
package app

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/ayusman/alpona/internal/canvas"
	"github.com/ayusman/alpona/internal/capture"
	"github.com/ayusman/alpona/internal/detector"
	"github.com/ayusman/alpona/internal/gesture"
	"github.com/ayusman/alpona/internal/store"
	"github.com/ayusman/alpona/internal/stroke"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without motion before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Settings keys persisted through the store.
const (
	settingTool      = "tool"
	settingColor     = "color"
	settingRadius    = "brush_radius"
	settingWindow    = "stability_window"
	settingSmoothing = "smoothing"
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	Width        int
	Height       int
	Background   canvas.RGBA
	Window       int // stability window in frames
}

// App owns one drawing session: the capture/detection pipeline on one side
// and the canvas engine on the other. It is created on start and torn down
// on stop; nothing in it is shared across sessions.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	stabilizer *gesture.Stabilizer
	tools      *canvas.ToolState
	engine     *canvas.Engine
	controller *stroke.Controller

	enabled bool
	current gesture.Label
	mu      sync.RWMutex
	stopCh  chan struct{}
}

// New creates an App with the given configuration. It fails if the render
// surfaces cannot be allocated; there is no degraded mode without a canvas.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}
	if config.Width <= 0 || config.Height <= 0 {
		config.Width, config.Height = 800, 600
	}
	bg := config.Background
	if bg == (canvas.RGBA{}) {
		bg = canvas.White
	}
	window := config.Window
	if window < 1 {
		window = gesture.DefaultWindow
	}

	engine, err := canvas.New(canvas.Config{
		Width:      config.Width,
		Height:     config.Height,
		Background: bg,
	})
	if err != nil {
		return nil, fmt.Errorf("create render surfaces: %w", err)
	}

	tools := canvas.NewToolState()

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		stabilizer: gesture.NewStabilizer(window),
		tools:      tools,
		engine:     engine,
		controller: stroke.NewController(engine, tools),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables hand tracking. Disabling commits any
// stroke in progress.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.controller.Cancel()
		a.stabilizer.Reset()
		a.setGesture(gesture.None)
	}
}

// IsEnabled returns whether hand tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Gesture returns the current stable gesture label.
func (a *App) Gesture() gesture.Label {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

func (a *App) setGesture(l gesture.Label) {
	a.mu.Lock()
	a.current = l
	a.mu.Unlock()
}

// LoadSettings applies persisted user settings from the store.
func (a *App) LoadSettings() error {
	if a.config.Store == nil {
		return nil
	}
	settings := a.config.Store.Settings()

	if v, err := settings.Get(settingTool); err == nil {
		if v == canvas.Eraser.String() {
			a.tools.SetTool(canvas.Eraser)
		} else {
			a.tools.SetTool(canvas.Pen)
		}
	}
	if v, err := settings.Get(settingColor); err == nil {
		if c, err := canvas.ParseHex(v); err == nil {
			a.tools.SetColor(c)
		}
	}
	if v, err := settings.Get(settingRadius); err == nil {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			a.tools.SetRadius(r)
		}
	}
	if v, err := settings.Get(settingSmoothing); err == nil {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			a.controller.SetSmoothing(f)
		}
	}

	log.Println("Settings loaded from database")
	return nil
}

// SaveToolSettings persists the current tool state.
func (a *App) SaveToolSettings() error {
	if a.config.Store == nil {
		return nil
	}
	settings := a.config.Store.Settings()

	if err := settings.Set(settingTool, a.tools.Tool().String()); err != nil {
		return err
	}
	if err := settings.Set(settingColor, a.tools.Color().Hex()); err != nil {
		return err
	}
	return settings.Set(settingRadius, strconv.FormatFloat(a.tools.Radius(), 'f', -1, 64))
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := a.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	a.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking pipeline and releases resources. Any in-progress
// stroke is committed.
func (a *App) Stop() {
	a.mu.Lock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}
	a.mu.Unlock()

	a.controller.Cancel()
	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the rasterization engine.
func (a *App) Engine() *canvas.Engine {
	return a.engine
}

// Tools returns the shared tool state.
func (a *App) Tools() *canvas.ToolState {
	return a.tools
}

// Controller returns the stroke controller.
func (a *App) Controller() *stroke.Controller {
	return a.controller
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Status is the aggregate read-only state served to the UI.
type Status struct {
	Enabled bool          `json:"enabled"`
	Gesture string        `json:"gesture"`
	Canvas  CanvasInfo    `json:"canvas"`
	Stroke  stroke.Status `json:"stroke"`
}

// CanvasInfo describes the drawing surface.
type CanvasInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Status returns a snapshot of the whole session for the status API.
func (a *App) Status() Status {
	return Status{
		Enabled: a.IsEnabled(),
		Gesture: a.Gesture().String(),
		Canvas: CanvasInfo{
			Width:  a.engine.Width(),
			Height: a.engine.Height(),
		},
		Stroke: a.controller.Status(),
	}
}
