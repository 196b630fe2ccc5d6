package session

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/config"
	"level-editor/internal/editor"
	"level-editor/internal/grid"
	"level-editor/internal/undo"
	"level-editor/internal/world"
)

// sideView looks down +Y from (0,-10,0), so an object at the origin sits 10
// units away and one pixel covers 0.02 world units at 90 degrees FOV over
// 1000 pixels.
type sideView struct {
	space editor.CoordSpace
	mode  editor.WidgetMode
}

func (v *sideView) CameraPosition() rl.Vector3 { return rl.NewVector3(0, -10, 0) }
func (v *sideView) CameraForward() rl.Vector3  { return rl.NewVector3(0, 1, 0) }
func (v *sideView) CameraRight() rl.Vector3    { return rl.NewVector3(1, 0, 0) }
func (v *sideView) FOV() float32               { return 90 }
func (v *sideView) ViewportHeight() int        { return 1000 }

func (v *sideView) DeprojectScreen(rl.Vector2) (rl.Vector3, rl.Vector3) {
	return v.CameraPosition(), v.CameraForward()
}

func (v *sideView) CoordSpace() editor.CoordSpace { return v.space }

func (v *sideView) WidgetMode() editor.WidgetMode { return v.mode }

func (v *sideView) SetWidgetMode(m editor.WidgetMode) { v.mode = m }

type testCursor struct {
	pos    rl.Vector2
	hidden bool
}

func (c *testCursor) Position() rl.Vector2     { return c.pos }
func (c *testCursor) SetPosition(p rl.Vector2) { c.pos = p }
func (c *testCursor) SetHidden(h bool)         { c.hidden = h }

type countNotifier struct{ n int }

func (c *countNotifier) SelectionChanged() { c.n++ }

type rig struct {
	ctrl     *Controller
	scene    *world.Scene
	settings *grid.Settings
	log      *undo.Log
	cursor   *testCursor
	view     *sideView
	notify   *countNotifier
}

func newRig(t *testing.T) *rig {
	t.Helper()
	tun := config.Default()
	tun.Drag.Damping = 1
	tun.Drag.CloseDistance = 0 // no close-range taper; keeps expectations exact

	scene := world.NewScene()
	log := undo.NewLog(scene)
	settings := grid.Defaults()
	view := &sideView{}
	cursor := &testCursor{pos: rl.NewVector2(500, 500)}
	notify := &countNotifier{}
	return &rig{
		ctrl:     New(scene, scene, view, settings, log, notify, cursor, tun),
		scene:    scene,
		settings: settings,
		log:      log,
		cursor:   cursor,
		view:     view,
		notify:   notify,
	}
}

func (r *rig) spawnAt(name string, x, y, z float32) editor.ObjectID {
	tr := editor.NewTransform()
	tr.Position = rl.NewVector3(x, y, z)
	return r.scene.Spawn(world.SpawnSpec{Name: name, Transform: tr})
}

// moveCursor displaces the pointer and runs one frame.
func (r *rig) moveCursor(dx, dy float32) {
	r.cursor.pos = rl.Vector2Add(r.cursor.pos, rl.NewVector2(dx, dy))
	r.ctrl.Tick()
}

func wantVec3(t *testing.T, got, want rl.Vector3, tol float32) {
	t.Helper()
	if math32.Abs(got.X-want.X) > tol || math32.Abs(got.Y-want.Y) > tol || math32.Abs(got.Z-want.Z) > tol {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestHorizontalMoveFollowsScreenAxes(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)
	r.settings.TogglePositionGrid() // raw deltas

	r.ctrl.Begin(MoveHorizontal)
	// 100px right and 50px up: right maps to +X, screen-up to camera-forward
	// projected into the ground plane (+Y), at 0.02 units per pixel.
	r.moveCursor(100, -50)
	r.ctrl.End(MoveHorizontal)

	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Position, rl.NewVector3(2, 1, 0), 1e-3)
}

func TestVerticalMoveAlongWorldUp(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)
	r.settings.TogglePositionGrid()

	r.ctrl.Begin(MoveVertical)
	r.moveCursor(0, -100) // drag up raises
	r.ctrl.End(MoveVertical)

	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Position, rl.NewVector3(0, 0, 2), 1e-3)
}

func TestVerticalMoveUsesLocalUpInLocalSpace(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	// Rolled 90 degrees about X: local up is world -Y.
	r.scene.SetRotation(id, rl.QuaternionFromAxisAngle(rl.NewVector3(1, 0, 0), math32.Pi/2))
	r.scene.Select(id)
	r.settings.TogglePositionGrid()
	r.view.space = editor.CoordLocal

	r.ctrl.Begin(MoveVertical)
	r.moveCursor(0, -100)
	r.ctrl.End(MoveVertical)

	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Position, rl.NewVector3(0, -2, 0), 1e-3)
}

func TestSnapHoldsBelowOneIncrement(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)
	// default position grid: 0.5, enabled

	r.ctrl.Begin(MoveHorizontal)
	r.moveCursor(10, 0) // 0.2 world units, under the 0.5 grid
	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Position, rl.NewVector3(0, 0, 0), 0)
	if r.log.Len() != 0 {
		t.Fatalf("undo entries before any step: %d", r.log.Len())
	}
	r.ctrl.End(MoveHorizontal)
	if r.log.Len() != 0 {
		t.Fatalf("undo entries after movement-free close: %d", r.log.Len())
	}
}

func TestSnapStepsInGridMultiples(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)

	r.ctrl.Begin(MoveHorizontal)
	r.moveCursor(100, 0) // ~2.0 world units against a 0.5 grid
	r.ctrl.End(MoveHorizontal)

	tr, _ := r.scene.Transform(id)
	steps := tr.Position.X / 0.5
	if math32.Abs(steps-math32.Round(steps)) > 1e-4 {
		t.Fatalf("position %v is not on the 0.5 grid", tr.Position)
	}
	if tr.Position.X < 1.4 || tr.Position.X > 2.1 {
		t.Fatalf("position %v outside expected snap range", tr.Position)
	}
}

func TestGestureCollapsesToOneUndoStep(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 3, 0, 0)
	r.scene.Select(id)
	r.settings.TogglePositionGrid()

	r.ctrl.Begin(MoveHorizontal)
	r.moveCursor(40, 0)
	r.moveCursor(60, 0)
	r.ctrl.End(MoveHorizontal)

	if r.log.Len() != 1 {
		t.Fatalf("undo entries = %d, want 1", r.log.Len())
	}
	if got := r.log.LastLabel(); got != "Move Horizontal" {
		t.Fatalf("label = %q", got)
	}
	r.log.Undo()
	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Position, rl.NewVector3(3, 0, 0), 0)
}

func TestSelectionSnapshotIgnoresMidGestureChanges(t *testing.T) {
	r := newRig(t)
	a := r.spawnAt("a", 0, 0, 0)
	b := r.spawnAt("b", 5, 0, 0)
	r.scene.Select(a)
	r.settings.TogglePositionGrid()

	r.ctrl.Begin(MoveHorizontal)
	r.moveCursor(50, 0)
	r.scene.Select(b) // selection changed mid-gesture
	r.moveCursor(50, 0)
	r.ctrl.End(MoveHorizontal)

	ta, _ := r.scene.Transform(a)
	tb, _ := r.scene.Transform(b)
	wantVec3(t, ta.Position, rl.NewVector3(2, 0, 0), 1e-3)
	wantVec3(t, tb.Position, rl.NewVector3(5, 0, 0), 0)
}

func TestDeletedObjectSkippedMidGesture(t *testing.T) {
	r := newRig(t)
	a := r.spawnAt("a", 0, 0, 0)
	b := r.spawnAt("b", 5, 0, 0)
	r.scene.Select(a, b)
	r.settings.TogglePositionGrid()

	r.ctrl.Begin(MoveHorizontal)
	r.moveCursor(50, 0)
	r.scene.Delete(b)
	r.moveCursor(50, 0)
	r.ctrl.End(MoveHorizontal)

	ta, _ := r.scene.Transform(a)
	wantVec3(t, ta.Position, rl.NewVector3(2, 0, 0), 1e-3)
}

func TestCursorHiddenAndWarpedDuringDrag(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)

	anchor := r.cursor.pos
	r.ctrl.Begin(MoveHorizontal)
	if !r.cursor.hidden {
		t.Fatal("cursor not hidden at drag start")
	}
	r.moveCursor(100, 0)
	if r.cursor.pos != anchor {
		t.Fatalf("cursor at %v, want warped back to %v", r.cursor.pos, anchor)
	}
	r.ctrl.End(MoveHorizontal)
	if r.cursor.hidden {
		t.Fatal("cursor still hidden after drag end")
	}
}

func TestCursorStaysHiddenWhileAnotherSessionOpen(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)

	r.ctrl.Begin(MoveHorizontal)
	r.ctrl.Begin(MoveVertical)
	r.ctrl.End(MoveHorizontal)
	if !r.cursor.hidden {
		t.Fatal("cursor shown while vertical session still open")
	}
	r.ctrl.End(MoveVertical)
	if r.cursor.hidden {
		t.Fatal("cursor hidden after all sessions closed")
	}
}

func TestScaleMultiplierFromInitial(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.SetScale(id, rl.NewVector3(1, 2, 3))
	r.scene.Select(id)
	r.settings.SetScaleGrid(0) // raw multiplier

	r.ctrl.Begin(ScaleUniform)
	// Two ticks totalling +100px radial: multiplier 1 + 100*0.004 = 1.4,
	// always derived from the initial scale, never compounding.
	r.moveCursor(50, 0)
	r.moveCursor(50, 0)
	r.ctrl.End(ScaleUniform)

	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Scale, rl.NewVector3(1.4, 2.8, 4.2), 1e-3)
}

func TestScaleMultiplierFloor(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.SetScale(id, rl.NewVector3(0.05, 1, 1))
	r.scene.Select(id)
	r.settings.SetScaleGrid(0)

	r.ctrl.Begin(ScaleUniform)
	r.moveCursor(-2000, 0) // multiplier floors at 0.01
	r.ctrl.End(ScaleUniform)

	tr, _ := r.scene.Transform(id)
	// 0.05 * 0.01 would be 0.0005, under the per-axis floor.
	wantVec3(t, tr.Scale, rl.NewVector3(0.001, 0.01, 0.01), 1e-5)
}

func TestScaleSnapsMultiplier(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)
	// default scale grid: 0.25, enabled

	r.ctrl.Begin(ScaleUniform)
	r.moveCursor(100, 0) // raw multiplier 1.4 snaps to 1.5
	r.ctrl.End(ScaleUniform)

	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Scale, rl.NewVector3(1.5, 1.5, 1.5), 1e-3)
}

func TestRotateSingleObjectSpinsInPlace(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 4, 0, 0)
	r.scene.Select(id)

	if !r.ctrl.Rotate(1, false) {
		t.Fatal("rotate reported no change")
	}

	tr, _ := r.scene.Transform(id)
	wantVec3(t, tr.Position, rl.NewVector3(4, 0, 0), 0)
	// Default rotation grid is 15 degrees; check where local +X ended up.
	got := rl.Vector3RotateByQuaternion(rl.NewVector3(1, 0, 0), tr.Rotation)
	deg := float32(15) * math32.Pi / 180
	wantVec3(t, got, rl.NewVector3(math32.Cos(deg), math32.Sin(deg), 0), 1e-4)
}

func TestRotatePairOrbitsCentroid(t *testing.T) {
	r := newRig(t)
	a := r.spawnAt("a", 0, 0, 0)
	b := r.spawnAt("b", 10, 0, 0)
	r.scene.Select(a, b)

	// Bypass snap and use the configured 90-degree increment directly.
	tun := config.Default()
	tun.Rotate.IncrementDegrees = 90
	r.ctrl.tun = tun

	if !r.ctrl.Rotate(1, true) {
		t.Fatal("rotate reported no change")
	}

	ta, _ := r.scene.Transform(a)
	tb, _ := r.scene.Transform(b)
	wantVec3(t, ta.Position, rl.NewVector3(5, -5, 0), 1e-4)
	wantVec3(t, tb.Position, rl.NewVector3(5, 5, 0), 1e-4)
}

func TestRotateNegativeTicksClockwise(t *testing.T) {
	r := newRig(t)
	id := r.spawnAt("box", 0, 0, 0)
	r.scene.Select(id)
	tun := config.Default()
	tun.Rotate.IncrementDegrees = 90
	r.ctrl.tun = tun

	r.ctrl.Rotate(-1, true)

	tr, _ := r.scene.Transform(id)
	got := rl.Vector3RotateByQuaternion(rl.NewVector3(1, 0, 0), tr.Rotation)
	wantVec3(t, got, rl.NewVector3(0, -1, 0), 1e-4)
}

func TestRotateGroupedSingleStillRotates(t *testing.T) {
	r := newRig(t)
	tr := editor.NewTransform()
	tr.Position = rl.NewVector3(2, 0, 0)
	r.scene.Spawn(world.SpawnSpec{Name: "root", Group: 7})
	member := r.scene.Spawn(world.SpawnSpec{Name: "member", Group: 7, Transform: tr})
	r.scene.Select(member)
	tun := config.Default()
	tun.Rotate.IncrementDegrees = 90
	r.ctrl.tun = tun

	if !r.ctrl.Rotate(1, true) {
		t.Fatal("rotate reported no change")
	}

	tm, _ := r.scene.Transform(member)
	got := rl.Vector3RotateByQuaternion(rl.NewVector3(1, 0, 0), tm.Rotation)
	wantVec3(t, got, rl.NewVector3(0, 1, 0), 1e-4)
}

func TestRotateEmptySelectionNoOp(t *testing.T) {
	r := newRig(t)
	if r.ctrl.Rotate(1, false) {
		t.Fatal("rotate with empty selection reported a change")
	}
	if r.log.Len() != 0 {
		t.Fatalf("undo entries = %d, want 0", r.log.Len())
	}
}
