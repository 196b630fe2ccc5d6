// Package world is the in-process host scene the manipulation engine runs
// against: objects with transforms, geometry/collision components, folders,
// attachments, groups, an ordered selection, and a copy/paste buffer.
package world

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"

	"level-editor/internal/editor"
)

// ComponentSpec describes one component at spawn time.
type ComponentSpec struct {
	Kind      editor.ComponentKind
	Collision editor.CollisionMode
	Bounds    editor.Box
}

// SpawnSpec describes an object at spawn time.
type SpawnSpec struct {
	Name       string
	Folder     string
	Parent     editor.ObjectID
	Group      uint64
	Primitive  string
	Transform  editor.Transform
	Components []ComponentSpec
}

// Object is one placeable entity.
type Object struct {
	ID        editor.ObjectID
	Name      string
	Folder    string
	Parent    editor.ObjectID // 0 = not attached
	Group     uint64          // 0 = ungrouped
	Primitive string          // mesh kind for drawing (cube, sphere, ...)
	Transform editor.Transform
}

type component struct {
	id        editor.ComponentID
	owner     editor.ObjectID
	kind      editor.ComponentKind
	collision editor.CollisionMode
	bounds    editor.Box
}

// State is the undoable portion of an object: transform and folder.
type State struct {
	Transform editor.Transform
	Folder    string
}

// Scene owns all objects. Not safe for concurrent use; the editor is
// single-threaded and frame-driven.
type Scene struct {
	objects    map[editor.ObjectID]*Object
	components map[editor.ComponentID]*component
	byObject   map[editor.ObjectID][]editor.ComponentID
	order      []editor.ObjectID
	selection  []editor.ObjectID
	copied     []SpawnSpec

	nextObject    editor.ObjectID
	nextComponent editor.ComponentID
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{
		objects:    make(map[editor.ObjectID]*Object),
		components: make(map[editor.ComponentID]*component),
		byObject:   make(map[editor.ObjectID][]editor.ComponentID),
	}
}

// Spawn creates an object from spec and returns its ID.
func (s *Scene) Spawn(spec SpawnSpec) editor.ObjectID {
	s.nextObject++
	id := s.nextObject
	obj := &Object{
		ID:        id,
		Name:      spec.Name,
		Folder:    spec.Folder,
		Parent:    spec.Parent,
		Group:     spec.Group,
		Primitive: spec.Primitive,
		Transform: spec.Transform,
	}
	if obj.Transform.Scale == (rl.Vector3{}) {
		obj.Transform.Scale = rl.NewVector3(1, 1, 1)
	}
	if obj.Transform.Rotation == (rl.Quaternion{}) {
		obj.Transform.Rotation = rl.QuaternionIdentity()
	}
	s.objects[id] = obj
	s.order = append(s.order, id)
	for _, cs := range spec.Components {
		s.nextComponent++
		c := &component{
			id:        s.nextComponent,
			owner:     id,
			kind:      cs.Kind,
			collision: cs.Collision,
			bounds:    cs.Bounds,
		}
		s.components[c.id] = c
		s.byObject[id] = append(s.byObject[id], c.id)
	}
	return id
}

// Delete removes an object, its components, and its selection entry.
func (s *Scene) Delete(id editor.ObjectID) {
	if _, ok := s.objects[id]; !ok {
		return
	}
	for _, cid := range s.byObject[id] {
		delete(s.components, cid)
	}
	delete(s.byObject, id)
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	for i, oid := range s.selection {
		if oid == id {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			break
		}
	}
}

// Object returns the stored object for drawing/glue. Nil if gone.
func (s *Scene) Object(id editor.ObjectID) *Object {
	return s.objects[id]
}

// --- editor.Scene ---

// Objects returns every live object ID in spawn order.
func (s *Scene) Objects() []editor.ObjectID {
	out := make([]editor.ObjectID, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Scene) Exists(id editor.ObjectID) bool {
	_, ok := s.objects[id]
	return ok
}

func (s *Scene) Transform(id editor.ObjectID) (editor.Transform, bool) {
	obj, ok := s.objects[id]
	if !ok {
		return editor.Transform{}, false
	}
	return obj.Transform, true
}

func (s *Scene) SetPosition(id editor.ObjectID, p rl.Vector3) {
	if obj, ok := s.objects[id]; ok {
		obj.Transform.Position = p
	}
}

func (s *Scene) SetRotation(id editor.ObjectID, q rl.Quaternion) {
	if obj, ok := s.objects[id]; ok {
		obj.Transform.Rotation = q
	}
}

func (s *Scene) SetScale(id editor.ObjectID, scale rl.Vector3) {
	if obj, ok := s.objects[id]; ok {
		obj.Transform.Scale = scale
	}
}

// Descendants returns every object attached below id, recursively.
func (s *Scene) Descendants(id editor.ObjectID) []editor.ObjectID {
	var out []editor.ObjectID
	for _, oid := range s.order {
		if s.objects[oid].Parent == id {
			out = append(out, oid)
			out = append(out, s.Descendants(oid)...)
		}
	}
	return out
}

func (s *Scene) Components(id editor.ObjectID) []editor.Component {
	cids := s.byObject[id]
	out := make([]editor.Component, 0, len(cids))
	for _, cid := range cids {
		c := s.components[cid]
		out = append(out, editor.Component{ID: c.id, Kind: c.kind, Collision: c.collision})
	}
	return out
}

func (s *Scene) ComponentLocalBounds(id editor.ComponentID) (editor.Box, bool) {
	c, ok := s.components[id]
	if !ok {
		return editor.Box{}, false
	}
	return c.bounds, true
}

// ComponentToWorld applies the owner's full transform (scale, rotation,
// translation) to a local point.
func (s *Scene) ComponentToWorld(id editor.ComponentID, local rl.Vector3) rl.Vector3 {
	c, ok := s.components[id]
	if !ok {
		return local
	}
	t := s.objects[c.owner].Transform
	p := rl.Vector3Multiply(local, t.Scale)
	p = rl.Vector3RotateByQuaternion(p, t.Rotation)
	return rl.Vector3Add(p, t.Position)
}

func (s *Scene) Folder(id editor.ObjectID) string {
	if obj, ok := s.objects[id]; ok {
		return obj.Folder
	}
	return ""
}

func (s *Scene) SetFolder(id editor.ObjectID, folder string) {
	if obj, ok := s.objects[id]; ok {
		obj.Folder = folder
	}
}

// --- editor.Selection ---

// Selected returns the ordered selection, dropping stale entries.
func (s *Scene) Selected() []editor.ObjectID {
	out := make([]editor.ObjectID, 0, len(s.selection))
	for _, id := range s.selection {
		if s.Exists(id) {
			out = append(out, id)
		}
	}
	return out
}

// Select replaces the selection.
func (s *Scene) Select(ids ...editor.ObjectID) {
	s.selection = append(s.selection[:0:0], ids...)
}

// AddToSelection appends an object if not already selected.
func (s *Scene) AddToSelection(id editor.ObjectID) {
	for _, sid := range s.selection {
		if sid == id {
			return
		}
	}
	s.selection = append(s.selection, id)
}

// GroupRoot returns the first spawned member of id's group.
func (s *Scene) GroupRoot(id editor.ObjectID) (editor.ObjectID, bool) {
	obj, ok := s.objects[id]
	if !ok || obj.Group == 0 {
		return 0, false
	}
	for _, oid := range s.order {
		if s.objects[oid].Group == obj.Group {
			return oid, true
		}
	}
	return 0, false
}

// --- editor.Commands ---

// Duplicate clones the current selection in place and selects the clones.
// Reports whether anything was duplicated.
func (s *Scene) Duplicate() bool {
	ids := s.Selected()
	if len(ids) == 0 {
		return false
	}
	clones := make([]editor.ObjectID, 0, len(ids))
	for _, id := range ids {
		clones = append(clones, s.Spawn(s.spec(id)))
	}
	s.Select(clones...)
	return true
}

// CopySelected fills the host copy buffer from the current selection. Specs
// are deep-copied so later scene edits cannot reach into the buffer. On a copy
// failure the buffer is left empty and the error returned.
func (s *Scene) CopySelected() error {
	specs := make([]SpawnSpec, 0, len(s.selection))
	for _, id := range s.Selected() {
		specs = append(specs, s.spec(id))
	}
	s.copied = nil
	if err := copier.CopyWithOption(&s.copied, &specs, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("copying selection: %w", err)
	}
	return nil
}

// Paste spawns the copy buffer and selects the pasted objects. Reports whether
// anything was pasted; an empty buffer does nothing.
func (s *Scene) Paste() bool {
	if len(s.copied) == 0 {
		return false
	}
	pasted := make([]editor.ObjectID, 0, len(s.copied))
	for _, spec := range s.copied {
		pasted = append(pasted, s.Spawn(spec))
	}
	s.Select(pasted...)
	return true
}

// spec rebuilds a SpawnSpec from a live object, deep-copying component specs.
func (s *Scene) spec(id editor.ObjectID) SpawnSpec {
	obj := s.objects[id]
	spec := SpawnSpec{
		Name:      obj.Name,
		Folder:    obj.Folder,
		Parent:    obj.Parent,
		Group:     obj.Group,
		Primitive: obj.Primitive,
		Transform: obj.Transform,
	}
	for _, cid := range s.byObject[id] {
		c := s.components[cid]
		spec.Components = append(spec.Components, ComponentSpec{Kind: c.kind, Collision: c.collision, Bounds: c.bounds})
	}
	return spec
}

// --- undo support ---

// State returns the undoable state of an object.
func (s *Scene) State(id editor.ObjectID) (State, bool) {
	obj, ok := s.objects[id]
	if !ok {
		return State{}, false
	}
	return State{Transform: obj.Transform, Folder: obj.Folder}, true
}

// Restore puts an object back into a previously captured state. Gone objects
// are skipped.
func (s *Scene) Restore(id editor.ObjectID, st State) {
	if obj, ok := s.objects[id]; ok {
		obj.Transform = st.Transform
		obj.Folder = st.Folder
	}
}
