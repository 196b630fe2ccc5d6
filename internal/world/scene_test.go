package world

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/editor"
)

func blockBox() []ComponentSpec {
	return []ComponentSpec{{Kind: editor.KindPrimitive, Collision: editor.CollisionQueryAndPhysics, Bounds: unitBox}}
}

func spawnAt(s *Scene, name string, x, y, z float32) editor.ObjectID {
	t := editor.NewTransform()
	t.Position = rl.NewVector3(x, y, z)
	return s.Spawn(SpawnSpec{Name: name, Primitive: "cube", Transform: t, Components: blockBox()})
}

func TestSelectedDropsStaleEntries(t *testing.T) {
	s := NewScene()
	a := spawnAt(s, "a", 0, 0, 0)
	b := spawnAt(s, "b", 1, 0, 0)
	s.Select(a, b)
	s.Delete(a)
	got := s.Selected()
	if len(got) != 1 || got[0] != b {
		t.Errorf("Selected() = %v, want [%v]", got, b)
	}
}

func TestDescendantsRecursive(t *testing.T) {
	s := NewScene()
	root := spawnAt(s, "root", 0, 0, 0)
	child := s.Spawn(SpawnSpec{Name: "child", Parent: root, Transform: editor.NewTransform()})
	grand := s.Spawn(SpawnSpec{Name: "grand", Parent: child, Transform: editor.NewTransform()})
	spawnAt(s, "other", 5, 0, 0)

	got := s.Descendants(root)
	if len(got) != 2 || got[0] != child || got[1] != grand {
		t.Errorf("Descendants(root) = %v, want [%v %v]", got, child, grand)
	}
}

func TestComponentToWorldAppliesFullTransform(t *testing.T) {
	s := NewScene()
	id := s.Spawn(SpawnSpec{
		Name: "o",
		Transform: editor.Transform{
			Position: rl.NewVector3(10, 0, 0),
			// 90° about Z: local +X maps to world +Y.
			Rotation: rl.QuaternionFromAxisAngle(editor.Up(), rl.Pi/2),
			Scale:    rl.NewVector3(2, 2, 2),
		},
		Components: blockBox(),
	})
	cid := s.Components(id)[0].ID
	got := s.ComponentToWorld(cid, rl.NewVector3(1, 0, 0))
	want := rl.NewVector3(10, 2, 0)
	const tol = 1e-5
	if diff := rl.Vector3Distance(got, want); diff > tol {
		t.Errorf("ComponentToWorld = %v, want %v", got, want)
	}
}

func TestCastReturnsNearestHit(t *testing.T) {
	s := NewScene()
	spawnAt(s, "low", 0, 0, 0)
	high := spawnAt(s, "high", 0, 0, 3)

	hit, ok := s.Cast(rl.NewVector3(0, 0, 10), editor.Down(), 100, nil)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Object != high {
		t.Errorf("hit object %v, want the higher box %v", hit.Object, high)
	}
	if hit.Point.Z != 3.5 {
		t.Errorf("hit point Z = %v, want top of the higher box (3.5)", hit.Point.Z)
	}
}

func TestCastHonorsIgnoreSet(t *testing.T) {
	s := NewScene()
	low := spawnAt(s, "low", 0, 0, 0)
	high := spawnAt(s, "high", 0, 0, 3)

	ignore := editor.NewIgnoreSet()
	ignore.AddObject(high)
	hit, ok := s.Cast(rl.NewVector3(0, 0, 10), editor.Down(), 100, ignore)
	if !ok || hit.Object != low {
		t.Fatalf("hit = %+v ok=%v, want the lower box", hit, ok)
	}

	ignore.AddComponent(s.Components(low)[0].ID)
	if _, ok := s.Cast(rl.NewVector3(0, 0, 10), editor.Down(), 100, ignore); ok {
		t.Error("expected no hit with both boxes ignored")
	}
}

func TestCastSkipsCollisionNone(t *testing.T) {
	s := NewScene()
	t1 := editor.NewTransform()
	s.Spawn(SpawnSpec{
		Name:       "ghost",
		Transform:  t1,
		Components: []ComponentSpec{{Kind: editor.KindPrimitive, Collision: editor.CollisionNone, Bounds: unitBox}},
	})
	if _, ok := s.Cast(rl.NewVector3(0, 0, 10), editor.Down(), 100, nil); ok {
		t.Error("collision-none component should not block the ray")
	}
}

func TestDuplicateSelectsClonesInPlace(t *testing.T) {
	s := NewScene()
	a := spawnAt(s, "a", 1, 2, 3)
	if s.Duplicate() {
		t.Error("Duplicate with empty selection reported work done")
	}
	s.Select(a)
	if !s.Duplicate() {
		t.Fatal("Duplicate reported nothing done")
	}

	sel := s.Selected()
	if len(sel) != 1 || sel[0] == a {
		t.Fatalf("Selected() after Duplicate = %v", sel)
	}
	got, _ := s.Transform(sel[0])
	want, _ := s.Transform(a)
	if got != want {
		t.Errorf("clone transform %+v, want %+v", got, want)
	}
}

func TestCopyPasteBuffer(t *testing.T) {
	s := NewScene()
	a := spawnAt(s, "a", 1, 0, 0)
	if s.Paste() {
		t.Error("Paste with an empty buffer reported work done")
	}
	s.Select(a)
	if err := s.CopySelected(); err != nil {
		t.Fatalf("CopySelected: %v", err)
	}

	before := len(s.Objects())
	if !s.Paste() {
		t.Fatal("Paste reported nothing done")
	}
	if len(s.Objects()) != before+1 {
		t.Fatalf("Paste created %d objects, want 1", len(s.Objects())-before)
	}
	sel := s.Selected()
	if len(sel) != 1 || sel[0] == a {
		t.Errorf("Selected() after Paste = %v, want just the pasted object", sel)
	}
}

func TestGroupRoot(t *testing.T) {
	s := NewScene()
	a := s.Spawn(SpawnSpec{Name: "a", Group: 7, Transform: editor.NewTransform()})
	b := s.Spawn(SpawnSpec{Name: "b", Group: 7, Transform: editor.NewTransform()})
	solo := spawnAt(s, "solo", 0, 0, 0)

	if root, ok := s.GroupRoot(b); !ok || root != a {
		t.Errorf("GroupRoot(b) = %v, %v, want %v, true", root, ok, a)
	}
	if _, ok := s.GroupRoot(solo); ok {
		t.Error("ungrouped object should have no group root")
	}
}

func TestBuildScene(t *testing.T) {
	file := SceneFile{Objects: []ObjectDef{
		{Name: "floor", Primitive: "plane", Position: [3]float32{0, 0, 0}, Scale: [3]float32{20, 20, 0.1}},
		{Name: "crate", Position: [3]float32{0, 0, 3}, Folder: "Props"},
		{Name: "lid", Parent: "crate", Position: [3]float32{0, 0, 4}},
		{Name: "zone", Position: [3]float32{2, 0, 1}, Collision: "query"},
	}}
	s, err := BuildScene(file)
	if err != nil {
		t.Fatalf("BuildScene: %v", err)
	}
	if len(s.Objects()) != 4 {
		t.Fatalf("got %d objects, want 4", len(s.Objects()))
	}
	crate := s.Objects()[1]
	if s.Folder(crate) != "Props" {
		t.Errorf("crate folder = %q, want Props", s.Folder(crate))
	}
	if kids := s.Descendants(crate); len(kids) != 1 {
		t.Errorf("crate descendants = %v, want the lid", kids)
	}
	zone := s.Objects()[3]
	if mode := s.Components(zone)[0].Collision; mode != editor.CollisionQueryOnly {
		t.Errorf("zone collision = %v, want query-only", mode)
	}
}

func TestBuildSceneUnknownParent(t *testing.T) {
	_, err := BuildScene(SceneFile{Objects: []ObjectDef{{Name: "x", Parent: "missing"}}})
	if err == nil {
		t.Error("expected error for unknown parent")
	}
}
