package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/alpona/internal/app"
)

// newTestApp creates an App backed by the mock detector and an in-memory
// canvas, without starting the camera pipeline.
func newTestApp(t *testing.T) *app.App {
	t.Helper()
	a, err := app.New(app.Config{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	return a
}

func TestServer_Health(t *testing.T) {
	s := New(Config{})

	t.Run("returns 200 with JSON response", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		contentType := rec.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", contentType)
		}

		var response map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response["status"] != "ok" {
			t.Errorf("expected status 'ok', got %v", response["status"])
		}

		if _, exists := response["uptime"]; !exists {
			t.Error("expected 'uptime' field in response")
		}
	})

	t.Run("only allows GET method", func(t *testing.T) {
		methods := []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch}

		for _, method := range methods {
			req := httptest.NewRequest(method, "/api/health", nil)
			rec := httptest.NewRecorder()

			s.ServeHTTP(rec, req)

			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
			}
		}
	})
}

func TestServer_NotFound(t *testing.T) {
	s := New(Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestServer_State(t *testing.T) {
	a := newTestApp(t)
	s := New(Config{App: a})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var status app.Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if status.Canvas.Width != 800 || status.Canvas.Height != 600 {
		t.Errorf("canvas = %dx%d, want 800x600", status.Canvas.Width, status.Canvas.Height)
	}
	if status.Gesture != "none" {
		t.Errorf("gesture = %q, want 'none'", status.Gesture)
	}
	if status.Enabled {
		t.Error("tracking should start disabled")
	}
}

func TestServer_Tool(t *testing.T) {
	a := newTestApp(t)
	s := New(Config{App: a})

	t.Run("GET returns defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tool", nil)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}

		var resp toolResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Tool != "pen" {
			t.Errorf("tool = %q, want 'pen'", resp.Tool)
		}
		if resp.Radius != 5 {
			t.Errorf("radius = %v, want 5", resp.Radius)
		}
	})

	t.Run("PUT updates tool, color and radius", func(t *testing.T) {
		body := `{"tool":"eraser","color":"#336699","radius":12}`
		req := httptest.NewRequest(http.MethodPut, "/api/tool", strings.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}

		var resp toolResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Tool != "eraser" {
			t.Errorf("tool = %q, want 'eraser'", resp.Tool)
		}
		if resp.Color != "#336699" {
			t.Errorf("color = %q, want '#336699'", resp.Color)
		}
		if resp.Radius != 12 {
			t.Errorf("radius = %v, want 12", resp.Radius)
		}
	})

	t.Run("PUT clamps radius", func(t *testing.T) {
		body := `{"radius":500}`
		req := httptest.NewRequest(http.MethodPut, "/api/tool", strings.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		var resp toolResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Radius != 50 {
			t.Errorf("radius = %v, want clamped to 50", resp.Radius)
		}
	})

	t.Run("PUT rejects unknown tool", func(t *testing.T) {
		body := `{"tool":"chisel"}`
		req := httptest.NewRequest(http.MethodPut, "/api/tool", strings.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})

	t.Run("PUT rejects bad color", func(t *testing.T) {
		body := `{"color":"blueish"}`
		req := httptest.NewRequest(http.MethodPut, "/api/tool", strings.NewReader(body))
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestServer_CanvasPNG(t *testing.T) {
	a := newTestApp(t)
	s := New(Config{App: a})

	req := httptest.NewRequest(http.MethodGet, "/api/canvas", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("response is not valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 800 || bounds.Dy() != 600 {
		t.Errorf("image = %dx%d, want 800x600", bounds.Dx(), bounds.Dy())
	}
}

func TestServer_CanvasClear(t *testing.T) {
	a := newTestApp(t)
	s := New(Config{App: a})

	// Put some ink down through the pointer path
	a.Controller().PointerDown(100, 100, 1.0)
	a.Controller().PointerMove(150, 100, 1.0)
	a.Controller().PointerUp()

	req := httptest.NewRequest(http.MethodPost, "/api/canvas/clear", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	front := a.Engine().Front()
	if c := front.Pixel(125, 100); c.A != 0 {
		t.Error("canvas still has ink after clear")
	}
}

func TestServer_CanvasResize(t *testing.T) {
	a := newTestApp(t)
	s := New(Config{App: a})

	t.Run("accepts sizes at or above the floor", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"width":1024,"height":768}`))
		req := httptest.NewRequest(http.MethodPost, "/api/canvas/resize", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status %d, got %d: %s", http.StatusNoContent, rec.Code, rec.Body.String())
		}
		if w, h := a.Engine().Width(), a.Engine().Height(); w != 1024 || h != 768 {
			t.Errorf("engine = %dx%d, want 1024x768", w, h)
		}
	})

	t.Run("rejects sizes below the floor", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"width":640,"height":480}`))
		req := httptest.NewRequest(http.MethodPost, "/api/canvas/resize", body)
		rec := httptest.NewRecorder()

		s.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}

func TestServer_StaticFiles(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "alpona-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	testContent := "<html><body>Alpona</body></html>"
	if err := os.WriteFile(filepath.Join(tmpDir, "index.html"), []byte(testContent), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	s := New(Config{StaticDir: tmpDir})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != testContent {
		t.Errorf("expected body %q, got %q", testContent, rec.Body.String())
	}
}

func TestNew(t *testing.T) {
	t.Run("creates server with config", func(t *testing.T) {
		cfg := Config{StaticDir: "/some/path"}
		s := New(cfg)

		if s == nil {
			t.Fatal("expected non-nil server")
		}

		if s.config.StaticDir != cfg.StaticDir {
			t.Errorf("expected StaticDir %s, got %s", cfg.StaticDir, s.config.StaticDir)
		}
	})

	t.Run("server implements http.Handler", func(t *testing.T) {
		s := New(Config{})
		var _ http.Handler = s
	})
}
