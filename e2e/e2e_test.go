package e2e

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/alpona/internal/app"
	"github.com/ayusman/alpona/internal/detector"
	"github.com/ayusman/alpona/internal/server"
	"github.com/ayusman/alpona/internal/store"
)

func TestE2E_DrawingWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "data.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application, err := app.New(app.Config{
		Store:  s,
		Width:  800,
		Height: 600,
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	application.SetDetector(detector.NewMockDetector())
	application.SetEnabled(true)

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("DrawWithPointingGesture", func(t *testing.T) {
		// Two frames fill the stability window and start a pen stroke
		for i := 0; i < 2; i++ {
			application.ProcessFrame([]detector.HandLandmarks{detector.PointingLandmarks()})
		}
		// Losing the hand commits it
		application.ProcessFrame(nil)

		front := application.Engine().Front()
		if c := front.Pixel(344, 210); c.A == 0 {
			t.Error("expected committed ink at the fingertip position")
		}
	})

	t.Run("StateReflectsGesture", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/state")
		if err != nil {
			t.Fatalf("get state error = %v", err)
		}
		defer resp.Body.Close()

		var status app.Status
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode state error = %v", err)
		}
		if !status.Enabled {
			t.Error("tracking should be enabled")
		}
		if status.Stroke.State != "idle" {
			t.Errorf("stroke state = %q, want 'idle' after commit", status.Stroke.State)
		}
	})

	t.Run("SwitchToolOverAPI", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/tool",
			strings.NewReader(`{"tool":"eraser","radius":20}`))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("put tool error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		// The explicit choice holds for the next gesture stroke, even one
		// that would normally imply the pen
		for i := 0; i < 2; i++ {
			application.ProcessFrame([]detector.HandLandmarks{detector.PointingLandmarks()})
		}
		if st := application.Status().Stroke; st.Tool != "eraser" {
			t.Errorf("tool = %q, want 'eraser' from explicit selection", st.Tool)
		}
		application.ProcessFrame(nil)
	})

	t.Run("ExportCanvasPNG", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/canvas")
		if err != nil {
			t.Fatalf("get canvas error = %v", err)
		}
		defer resp.Body.Close()

		img, err := png.Decode(resp.Body)
		if err != nil {
			t.Fatalf("canvas is not valid PNG: %v", err)
		}
		if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
			t.Errorf("canvas = %dx%d, want 800x600", img.Bounds().Dx(), img.Bounds().Dy())
		}
	})

	t.Run("ClearCanvas", func(t *testing.T) {
		resp, err := client.Post(ts.URL+"/api/canvas/clear", "", nil)
		if err != nil {
			t.Fatalf("clear canvas error = %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}

		front := application.Engine().Front()
		if c := front.Pixel(344, 210); c.A != 0 {
			t.Error("canvas should be empty after clear")
		}
	})

	t.Run("SettingsPersisted", func(t *testing.T) {
		v, err := s.Settings().Get("tool")
		if err != nil {
			t.Fatalf("tool setting not persisted: %v", err)
		}
		if v != "eraser" {
			t.Errorf("persisted tool = %q, want 'eraser'", v)
		}
	})
}

func TestE2E_PalettesOverAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	srv := server.New(server.Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	resp, err := client.Post(
		ts.URL+"/api/palettes",
		"application/json",
		strings.NewReader(`{"name": "Sindoor", "color": "#c21807", "position": 1}`),
	)
	if err != nil {
		t.Fatalf("create palette error = %v", err)
	}

	var created store.Palette
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if created.ID == "" {
		t.Fatal("created palette has no ID")
	}

	resp, err = client.Get(ts.URL + "/api/palettes")
	if err != nil {
		t.Fatalf("list palettes error = %v", err)
	}

	var listResp struct {
		Palettes []store.Palette `json:"palettes"`
	}
	json.NewDecoder(resp.Body).Decode(&listResp)
	resp.Body.Close()

	if len(listResp.Palettes) != 1 {
		t.Fatalf("expected 1 palette, got %d", len(listResp.Palettes))
	}
	if listResp.Palettes[0].Name != "Sindoor" {
		t.Errorf("palette name = %q, want 'Sindoor'", listResp.Palettes[0].Name)
	}
}

func TestE2E_PointerAndGestureShareCanvas(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	application, err := app.New(app.Config{Width: 800, Height: 600})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	application.SetDetector(detector.NewMockDetector())
	application.SetEnabled(true)

	// Pointer stroke
	ctrl := application.Controller()
	ctrl.PointerDown(100, 100, 1.0)
	ctrl.PointerMove(200, 100, 1.0)
	ctrl.PointerUp()

	// Gesture stroke on the same surface
	for i := 0; i < 2; i++ {
		application.ProcessFrame([]detector.HandLandmarks{detector.PointingLandmarks()})
	}
	application.ProcessFrame(nil)

	front := application.Engine().Front()
	if c := front.Pixel(100, 100); c.A == 0 {
		t.Error("pointer stroke missing")
	}
	if c := front.Pixel(344, 210); c.A == 0 {
		t.Error("gesture stroke missing")
	}
}
