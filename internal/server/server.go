// Package server provides the HTTP and WebSocket boundary for the Alpona
// drawing UI: status queries, tool configuration, canvas export and pointer
// input.
package server

import (
	"encoding/json"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/ayusman/alpona/internal/app"
	"github.com/ayusman/alpona/internal/canvas"
	"github.com/ayusman/alpona/internal/server/api"
	"github.com/ayusman/alpona/internal/store"
)

// Minimum drawing area size. The core engine accepts any positive size;
// the UI boundary is where the floor is enforced.
const (
	MinCanvasWidth  = 800
	MinCanvasHeight = 600
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	App       *app.App
}

// Server represents the HTTP server for the Alpona application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register palette API handler if Store is configured
	if s.config.Store != nil {
		paletteHandler := api.NewPaletteHandler(s.config.Store)
		s.mux.Handle("/api/palettes", paletteHandler)
		s.mux.Handle("/api/palettes/", paletteHandler)
	}

	if s.config.App != nil {
		s.mux.HandleFunc("/api/state", s.handleState)
		s.mux.HandleFunc("/api/tool", s.handleTool)
		s.mux.HandleFunc("/api/canvas", s.handleCanvas)
		s.mux.HandleFunc("/api/canvas/clear", s.handleCanvasClear)
		s.mux.HandleFunc("/api/canvas/resize", s.handleCanvasResize)

		// Camera preview stream
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.App.Camera()))

		// Bidirectional events socket: state out, pointer input in
		s.mux.Handle("/api/events", NewEventsHandler(s.config.App))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleState handles GET requests to /api/state. The response is
// read-only: the UI reflects tool and stroke state, it never mutates it
// through this endpoint.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.config.App.Status())
}

type toolRequest struct {
	Tool   *string  `json:"tool,omitempty"`
	Color  *string  `json:"color,omitempty"` // "#rrggbb"
	Radius *float64 `json:"radius,omitempty"`
}

type toolResponse struct {
	Tool   string  `json:"tool"`
	Color  string  `json:"color"`
	Radius float64 `json:"radius"`
}

// handleTool handles GET and PUT requests to /api/tool.
func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	tools := s.config.App.Tools()

	switch r.Method {
	case http.MethodGet:
		// fall through to the response below

	case http.MethodPut:
		var req toolRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Tool != nil {
			switch *req.Tool {
			case "pen":
				s.config.App.Controller().SelectTool(canvas.Pen)
			case "eraser":
				s.config.App.Controller().SelectTool(canvas.Eraser)
			default:
				http.Error(w, "Unknown tool", http.StatusBadRequest)
				return
			}
		}
		if req.Color != nil {
			c, err := canvas.ParseHex(*req.Color)
			if err != nil {
				http.Error(w, "Invalid color", http.StatusBadRequest)
				return
			}
			tools.SetColor(c)
		}
		if req.Radius != nil {
			tools.SetRadius(*req.Radius)
		}

		// The new tool state is live even if persistence fails; it just
		// won't survive a restart.
		if err := s.config.App.SaveToolSettings(); err != nil {
			log.Printf("Failed to persist tool settings: %v", err)
		}

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, toolResponse{
		Tool:   tools.Tool().String(),
		Color:  tools.Color().Hex(),
		Radius: tools.Radius(),
	})
}

// handleCanvas handles GET requests to /api/canvas, returning the presented
// canvas as PNG.
func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img := s.config.App.Engine().Output().ToImage()
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		http.Error(w, "Failed to encode canvas", http.StatusInternalServerError)
	}
}

// handleCanvasClear handles POST requests to /api/canvas/clear.
func (s *Server) handleCanvasClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.config.App.Controller().Cancel()
	s.config.App.Engine().Clear()
	w.WriteHeader(http.StatusNoContent)
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// handleCanvasResize handles POST requests to /api/canvas/resize. Sizes
// below the minimum drawing area are rejected here.
func (s *Server) handleCanvasResize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Width < MinCanvasWidth || req.Height < MinCanvasHeight {
		http.Error(w, "Canvas size below minimum", http.StatusBadRequest)
		return
	}

	if err := s.config.App.Engine().Resize(req.Width, req.Height); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
