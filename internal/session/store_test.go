package session

import (
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get(); ok {
		t.Fatal("fresh store should hold no token")
	}

	if err := s.Set("abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	token, ok := s.Get()
	if !ok || token != "abc" {
		t.Fatalf("Get = %q, %v; want abc, true", token, ok)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatal("token survived Clear")
	}
	// Clear is idempotent.
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instalite", "token")

	first := NewFileStore(path)
	if err := first.Set("persisted-token"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// A new instance over the same path models a process restart.
	second := NewFileStore(path)
	token, ok := second.Get()
	if !ok || token != "persisted-token" {
		t.Fatalf("Get after restart = %q, %v; want persisted-token, true", token, ok)
	}
}

func TestFileStore_MissingFileIsAbsence(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "nope", "token"))

	if _, ok := s.Get(); ok {
		t.Fatal("missing file should read as no token")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear on missing file: %v", err)
	}
}

func TestFileStore_ClearRemovesToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path)

	if err := s.Set("abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok := s.Get(); ok {
		t.Fatal("token survived Clear")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
