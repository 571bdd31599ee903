package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, baseDir string, manifest Manifest) string {
	t.Helper()

	sinkDir := filepath.Join(baseDir, manifest.Name)
	if err := os.MkdirAll(sinkDir, 0755); err != nil {
		t.Fatalf("failed to create sink dir: %v", err)
	}

	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}

	manifestPath := filepath.Join(sinkDir, "sink.json")
	if err := os.WriteFile(manifestPath, manifestBytes, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	return sinkDir
}

func TestManager_Discover(t *testing.T) {
	tmpDir := t.TempDir()

	sinkDir := writeManifest(t, tmpDir, Manifest{
		Name:        "console",
		Version:     "1.0.0",
		Description: "Prints events to stdout",
		Executable:  "console",
		Events:      []string{"swipe", "zoom"},
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	sinks := manager.List()
	if len(sinks) != 1 {
		t.Fatalf("expected 1 sink, got %d", len(sinks))
	}

	s := sinks[0]
	if s.Manifest.Name != "console" {
		t.Errorf("expected sink name 'console', got %q", s.Manifest.Name)
	}
	if s.Manifest.Version != "1.0.0" {
		t.Errorf("expected version '1.0.0', got %q", s.Manifest.Version)
	}
	if len(s.Manifest.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(s.Manifest.Events))
	}
	if s.Path != sinkDir {
		t.Errorf("expected path %q, got %q", sinkDir, s.Path)
	}
	if s.Executable != filepath.Join(sinkDir, "console") {
		t.Errorf("unexpected executable path %q", s.Executable)
	}
}

func TestManager_Discover_MultipleSinks(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"sink-a", "sink-b"} {
		writeManifest(t, tmpDir, Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name,
		})
	}

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	if got := len(manager.List()); got != 2 {
		t.Fatalf("expected 2 sinks, got %d", got)
	}
}

func TestManager_Discover_EmptyDir(t *testing.T) {
	manager := NewManager(t.TempDir())
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed on empty dir: %v", err)
	}

	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 sinks, got %d", got)
	}
}

func TestManager_Discover_NonExistentDir(t *testing.T) {
	manager := NewManager("/path/that/does/not/exist")

	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed on non-existent dir: %v", err)
	}

	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 sinks, got %d", got)
	}
}

func TestManager_Discover_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()

	sinkDir := filepath.Join(tmpDir, "bad-sink")
	if err := os.MkdirAll(sinkDir, 0755); err != nil {
		t.Fatalf("failed to create sink dir: %v", err)
	}
	manifestPath := filepath.Join(sinkDir, "sink.json")
	if err := os.WriteFile(manifestPath, []byte("not valid json"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	manager := NewManager(tmpDir)

	// Discover should skip invalid sinks gracefully
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed unexpectedly: %v", err)
	}

	if got := len(manager.List()); got != 0 {
		t.Fatalf("expected 0 sinks (invalid JSON should be skipped), got %d", got)
	}
}

func TestManager_Get(t *testing.T) {
	tmpDir := t.TempDir()

	writeManifest(t, tmpDir, Manifest{
		Name:       "my-sink",
		Version:    "2.0.0",
		Executable: "my-sink-bin",
	})

	manager := NewManager(tmpDir)
	if err := manager.Discover(); err != nil {
		t.Fatalf("Discover() failed: %v", err)
	}

	s, err := manager.Get("my-sink")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}

	if s.Manifest.Name != "my-sink" {
		t.Errorf("expected sink name 'my-sink', got %q", s.Manifest.Name)
	}
	if s.Manifest.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %q", s.Manifest.Version)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager(t.TempDir())

	if _, err := manager.Get("nonexistent-sink"); err != ErrSinkNotFound {
		t.Errorf("expected ErrSinkNotFound, got %v", err)
	}
}

func TestManager_SinkDir(t *testing.T) {
	sinkDir := "/path/to/sinks"
	manager := NewManager(sinkDir)

	if manager.SinkDir() != sinkDir {
		t.Errorf("expected sink dir %q, got %q", sinkDir, manager.SinkDir())
	}
}

func TestSink_Wants(t *testing.T) {
	all := &Sink{Manifest: Manifest{Name: "all"}}
	if !all.Wants("swipe") {
		t.Error("sink with no event filter should want every event")
	}

	filtered := &Sink{Manifest: Manifest{Name: "filtered", Events: []string{"zoom", "rotate"}}}
	if !filtered.Wants("zoom") {
		t.Error("filtered sink should want 'zoom'")
	}
	if filtered.Wants("swipe") {
		t.Error("filtered sink should not want 'swipe'")
	}
}
