package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "alpona-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	s, err := New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "alpona-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	// Verify the database file doesn't exist yet
	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	// Verify the database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"settings", "palettes"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not created: %v", table, err)
		}
	}
}

func TestSettings_SetGet(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if err := settings.Set("brush_radius", "12"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, err := settings.Get("brush_radius")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if v != "12" {
		t.Errorf("Get() = %q, want %q", v, "12")
	}

	// Overwrite
	if err := settings.Set("brush_radius", "20"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	v, _ = settings.Get("brush_radius")
	if v != "20" {
		t.Errorf("Get() after overwrite = %q, want %q", v, "20")
	}
}

func TestSettings_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Settings().Get("no-such-key")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestSettings_DeleteAndAll(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	settings.Set("tool", "pen")
	settings.Set("color", "#ff0000")

	all, err := settings.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("All() returned %d entries, want 2", len(all))
	}

	if err := settings.Delete("tool"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := settings.Get("tool"); !errors.Is(err, ErrNotFound) {
		t.Error("deleted key still present")
	}

	// Deleting a missing key is fine
	if err := settings.Delete("tool"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestPalettes_CRUD(t *testing.T) {
	s := newTestStore(t)
	palettes := s.Palettes()

	p := &Palette{
		ID:       "p1",
		Name:     "Crimson",
		Color:    "#dc143c",
		Position: 1,
	}
	if err := palettes.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := palettes.GetByID("p1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Crimson" || got.Color != "#dc143c" {
		t.Errorf("GetByID() = %+v", got)
	}

	got.Color = "#ff0000"
	if err := palettes.Update(got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = palettes.GetByID("p1")
	if got.Color != "#ff0000" {
		t.Errorf("color after update = %q", got.Color)
	}

	list, err := palettes.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 {
		t.Errorf("List() returned %d entries, want 1", len(list))
	}

	if err := palettes.Delete("p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := palettes.GetByID("p1"); !errors.Is(err, ErrNotFound) {
		t.Error("palette still present after delete")
	}
	if err := palettes.Delete("p1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() of missing palette error = %v, want ErrNotFound", err)
	}
}

func TestPalettes_ListOrdersByPosition(t *testing.T) {
	s := newTestStore(t)
	palettes := s.Palettes()

	palettes.Create(&Palette{ID: "b", Name: "Second", Color: "#00ff00", Position: 2})
	palettes.Create(&Palette{ID: "a", Name: "First", Color: "#ff0000", Position: 1})

	list, err := palettes.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("List() order wrong: %+v", list)
	}
}
