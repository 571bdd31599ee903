package store

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mudralabs/mudra/internal/gesture"
)

func newTestProfile(name string) *Profile {
	return &Profile{
		ID:     uuid.New().String(),
		Name:   name,
		Params: gesture.DefaultParams(),
	}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := newTestProfile("precision")
	p.Params.ZoomGain = 2.0
	p.Params.SwipeCooldown = 800 * time.Millisecond

	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.Name != "precision" {
		t.Errorf("Name = %q, want %q", got.Name, "precision")
	}
	if got.Params.ZoomGain != 2.0 {
		t.Errorf("ZoomGain = %f, want 2.0", got.Params.ZoomGain)
	}
	if got.Params.SwipeCooldown != 800*time.Millisecond {
		t.Errorf("SwipeCooldown = %v, want 800ms", got.Params.SwipeCooldown)
	}
	if got.Params.SmoothWindow != 3 {
		t.Errorf("SmoothWindow = %d, want 3", got.Params.SmoothWindow)
	}
}

func TestProfileRepository_GetByName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := newTestProfile("relaxed")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByName("relaxed")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("ID = %q, want %q", got.ID, p.ID)
	}
}

func TestProfileRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if _, err := repo.GetByID("no-such-id"); err != ErrNotFound {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByName("no-such-name"); err != ErrNotFound {
		t.Errorf("GetByName() error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	for _, name := range []string{"one", "two", "three"} {
		if err := repo.Create(newTestProfile(name)); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	profiles, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(profiles) != 3 {
		t.Errorf("List() returned %d profiles, want 3", len(profiles))
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := newTestProfile("tweakable")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	p.Name = "tweaked"
	p.Params.RotateGain = 3.0
	if err := repo.Update(p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "tweaked" {
		t.Errorf("Name = %q, want %q", got.Name, "tweaked")
	}
	if got.Params.RotateGain != 3.0 {
		t.Errorf("RotateGain = %f, want 3.0", got.Params.RotateGain)
	}
}

func TestProfileRepository_UpdateMissing(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := newTestProfile("ghost")
	if err := repo.Update(p); err != ErrNotFound {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := newTestProfile("doomed")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.GetByID(p.ID); err != ErrNotFound {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(p.ID); err != ErrNotFound {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestProfileRepository_DuplicateNameRejected(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if err := repo.Create(newTestProfile("dup")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(newTestProfile("dup")); err == nil {
		t.Error("expected error creating profile with duplicate name")
	}
}
