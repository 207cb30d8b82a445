package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/alpona/internal/app"
	"github.com/ayusman/alpona/internal/server"
	"github.com/ayusman/alpona/internal/store"
	"github.com/ayusman/alpona/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	width := flag.Int("width", 800, "canvas width in pixels")
	height := flag.Int("height", 600, "canvas height in pixels")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	fmt.Println("Alpona - Air Drawing Canvas")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".alpona")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "alpona.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Create the drawing session
	a, err := app.New(app.Config{
		Store:    st,
		CameraID: *cameraID,
		Width:    *width,
		Height:   *height,
	})
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := a.LoadSettings(); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	// Start hand tracking. The canvas still works through pointer input
	// when no camera is available.
	if err := a.Start(); err != nil {
		log.Printf("Hand tracking unavailable (%v), pointer input only", err)
	} else {
		a.SetEnabled(true)
	}
	defer a.Stop()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		App:       a,
	})

	fmt.Printf("Starting server on %s\n", *addr)
	if *noTray {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main goroutine; Run blocks until Quit.
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnClear(func() {
		a.Controller().Cancel()
		a.Engine().Clear()
	})
	t.OnOpen(func() {
		fmt.Printf("Canvas at http://localhost%s\n", *addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.alpona/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".alpona", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
