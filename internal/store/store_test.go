package store

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-test-*")
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
	tmpDir, err := os.MkdirTemp("", "mudra-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"profiles", "settings"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q should exist after migrations: %v", table, err)
		}
	}
}

func TestStore_Close(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "mudra-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("close should not return error: %v", err)
	}

	if _, err := s.DB().Exec("SELECT 1"); err == nil {
		t.Error("DB operations should fail after close")
	}
}

func TestStore_ForeignKeysEnabled(t *testing.T) {
	s := newTestStore(t)

	var fkEnabled int
	if err := s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("failed to check foreign keys pragma: %v", err)
	}
	if fkEnabled != 1 {
		t.Error("foreign keys should be enabled")
	}
}

func TestSettings_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.Get("missing"); err != ErrNotFound {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := settings.Set("camera_id", "1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := settings.Get("camera_id")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "1" {
		t.Errorf("Get() = %q, want %q", value, "1")
	}

	// Setting again replaces the value.
	if err := settings.Set("camera_id", "2"); err != nil {
		t.Fatalf("second Set() error = %v", err)
	}
	value, _ = settings.Get("camera_id")
	if value != "2" {
		t.Errorf("Get() after overwrite = %q, want %q", value, "2")
	}

	if err := settings.Delete("camera_id"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := settings.Get("camera_id"); err != ErrNotFound {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSettings_ActiveProfile(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.ActiveProfileID(); err != ErrNotFound {
		t.Errorf("ActiveProfileID() error = %v, want ErrNotFound", err)
	}

	if err := settings.SetActiveProfileID("profile-1"); err != nil {
		t.Fatalf("SetActiveProfileID() error = %v", err)
	}

	id, err := settings.ActiveProfileID()
	if err != nil {
		t.Fatalf("ActiveProfileID() error = %v", err)
	}
	if id != "profile-1" {
		t.Errorf("ActiveProfileID() = %q, want %q", id, "profile-1")
	}
}
