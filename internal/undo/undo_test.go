package undo

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/editor"
	"level-editor/internal/world"
)

func newSceneWithObject(t *testing.T) (*world.Scene, editor.ObjectID) {
	t.Helper()
	s := world.NewScene()
	tr := editor.NewTransform()
	tr.Position = rl.NewVector3(1, 2, 3)
	id := s.Spawn(world.SpawnSpec{Name: "obj", Folder: "A", Transform: tr})
	return s, id
}

func TestUndoRestoresRecordedState(t *testing.T) {
	s, id := newSceneWithObject(t)
	log := NewLog(s)

	scope := log.Open("Move")
	scope.Record(id)
	s.SetPosition(id, rl.NewVector3(9, 9, 9))
	s.SetFolder(id, "B")
	scope.Close()

	if log.Len() != 1 || log.LastLabel() != "Move" {
		t.Fatalf("Len=%d LastLabel=%q, want 1, Move", log.Len(), log.LastLabel())
	}
	if !log.Undo() {
		t.Fatal("Undo returned false")
	}
	got, _ := s.Transform(id)
	if got.Position != rl.NewVector3(1, 2, 3) {
		t.Errorf("position after undo = %v, want (1,2,3)", got.Position)
	}
	if s.Folder(id) != "A" {
		t.Errorf("folder after undo = %q, want A", s.Folder(id))
	}
}

func TestEmptyScopeLeavesNoEntry(t *testing.T) {
	s, _ := newSceneWithObject(t)
	log := NewLog(s)
	log.Open("Nothing").Close()
	if log.Len() != 0 {
		t.Errorf("Len = %d, want 0 after empty scope", log.Len())
	}
	if log.Undo() {
		t.Error("Undo on empty log returned true")
	}
}

func TestRecordKeepsFirstSnapshot(t *testing.T) {
	s, id := newSceneWithObject(t)
	log := NewLog(s)

	scope := log.Open("Drag")
	scope.Record(id)
	s.SetPosition(id, rl.NewVector3(5, 0, 0))
	// Second Record mid-gesture must not overwrite the gesture-start snapshot.
	scope.Record(id)
	s.SetPosition(id, rl.NewVector3(10, 0, 0))
	scope.Close()

	log.Undo()
	got, _ := s.Transform(id)
	if got.Position != rl.NewVector3(1, 2, 3) {
		t.Errorf("position after undo = %v, want the gesture-start position", got.Position)
	}
}

func TestRecordSkipsGoneObjects(t *testing.T) {
	s, id := newSceneWithObject(t)
	log := NewLog(s)
	s.Delete(id)

	scope := log.Open("Move")
	scope.Record(id)
	scope.Close()
	if log.Len() != 0 {
		t.Errorf("Len = %d, want 0 when only gone objects were recorded", log.Len())
	}
}
