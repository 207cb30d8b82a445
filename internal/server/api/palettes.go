// Package api provides HTTP API handlers for the Alpona drawing application.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/alpona/internal/store"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// PaletteHandler handles HTTP requests for palette resources.
type PaletteHandler struct {
	store *store.Store
}

// NewPaletteHandler creates a new PaletteHandler with the given store.
func NewPaletteHandler(s *store.Store) *PaletteHandler {
	return &PaletteHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PaletteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/palettes or /api/palettes/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/palettes")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/palettes
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/palettes/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createPaletteRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

type updatePaletteRequest struct {
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position *int   `json:"position"`
}

type listPalettesResponse struct {
	Palettes []store.Palette `json:"palettes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/palettes and returns all palette entries.
func (h *PaletteHandler) list(w http.ResponseWriter, r *http.Request) {
	palettes, err := h.store.Palettes().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list palettes")
		return
	}

	response := listPalettesResponse{
		Palettes: make([]store.Palette, 0, len(palettes)),
	}
	response.Palettes = append(response.Palettes, palettes...)
	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/palettes/{id} and returns a single palette entry.
func (h *PaletteHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	palette, err := h.store.Palettes().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Palette not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get palette")
		return
	}

	writeJSON(w, http.StatusOK, palette)
}

// create handles POST /api/palettes and creates a new palette entry.
func (h *PaletteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if !hexColorPattern.MatchString(req.Color) {
		writeError(w, http.StatusBadRequest, "Color must be #rrggbb")
		return
	}

	palette := &store.Palette{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Color:    strings.ToLower(req.Color),
		Position: req.Position,
	}

	if err := h.store.Palettes().Create(palette); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create palette")
		return
	}

	writeJSON(w, http.StatusCreated, palette)
}

// update handles PUT /api/palettes/{id} and updates an existing palette entry.
func (h *PaletteHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	// First, get the existing palette
	palette, err := h.store.Palettes().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Palette not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get palette")
		return
	}

	var req updatePaletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if req.Name != "" {
		palette.Name = req.Name
	}
	if req.Color != "" {
		if !hexColorPattern.MatchString(req.Color) {
			writeError(w, http.StatusBadRequest, "Color must be #rrggbb")
			return
		}
		palette.Color = strings.ToLower(req.Color)
	}
	if req.Position != nil {
		palette.Position = *req.Position
	}

	if err := h.store.Palettes().Update(palette); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update palette")
		return
	}

	writeJSON(w, http.StatusOK, palette)
}

// delete handles DELETE /api/palettes/{id} and removes a palette entry.
func (h *PaletteHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Palettes().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Palette not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete palette")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
