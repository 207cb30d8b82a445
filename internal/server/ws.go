package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/alpona/internal/app"
	"github.com/ayusman/alpona/internal/stroke"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// pointerMessage is an inbound drawing event from the browser. It drives the
// stroke controller directly, bypassing gesture classification, so mouse and
// touch input share the canvas with the hand. Pressure is optional; mice
// don't report one and draw at full pressure.
type pointerMessage struct {
	Type     string   `json:"type"` // "pointer_down", "pointer_move", "pointer_up"
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Pressure *float64 `json:"pressure,omitempty"`
}

func (m *pointerMessage) pressure() float64 {
	if m.Pressure == nil {
		return stroke.DefaultPressure
	}
	return *m.Pressure
}

// EventsHandler is the bidirectional WebSocket for the drawing UI: it
// broadcasts application state to all connected clients and accepts pointer
// events from them.
type EventsHandler struct {
	app     *app.App
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates a new EventsHandler for the given application.
func NewEventsHandler(a *app.App) *EventsHandler {
	h := &EventsHandler{
		app:     a,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		h.handleMessage(data)
	}
}

// handleMessage decodes an inbound pointer event and forwards it to the
// stroke controller. Malformed messages are dropped.
func (h *EventsHandler) handleMessage(data []byte) {
	var msg pointerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	ctrl := h.app.Controller()
	switch msg.Type {
	case "pointer_down":
		ctrl.PointerDown(msg.X, msg.Y, msg.pressure())
	case "pointer_move":
		ctrl.PointerMove(msg.X, msg.Y, msg.pressure())
	case "pointer_up":
		ctrl.PointerUp()
	}
}

// broadcast sends application state to all connected clients.
func (h *EventsHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		msg, err := json.Marshal(map[string]any{
			"state":     h.app.Status(),
			"timestamp": time.Now().UnixMilli(),
		})
		if err != nil {
			continue
		}

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
