package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	got, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != Default() {
		t.Errorf("missing file: got %+v, want defaults", got)
	}
}

func TestLoadInvalidFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("drag: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err == nil {
		t.Error("LoadFrom: expected a parse error")
	}
	if got != Default() {
		t.Errorf("invalid file: got %+v, want defaults", got)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "editor.yaml")
	want := Default()
	want.Drag.Damping = 0.75
	want.GroundSnap.MaxAttempts = 10
	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != want {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
}

func TestPartialFileKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("rotate:\n  increment_degrees: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got.Rotate.IncrementDegrees != 30 {
		t.Errorf("IncrementDegrees = %v, want 30", got.Rotate.IncrementDegrees)
	}
	if got.Drag != Default().Drag {
		t.Errorf("Drag = %+v, want defaults", got.Drag)
	}
}
