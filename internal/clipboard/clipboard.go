// Package clipboard holds the copied transform and the deferred folder-paste
// pipeline that moves freshly pasted objects into a captured folder.
package clipboard

import (
	"level-editor/internal/editor"
)

// Clipboard is the transform clipboard. It starts invalid, is overwritten by
// every Copy, and is never cleared. Inject one instance per editor; it is a
// plain value so tests run without a live host.
type Clipboard struct {
	transform editor.Transform
	valid     bool
}

// New returns an empty (invalid) clipboard.
func New() *Clipboard {
	return &Clipboard{}
}

// Valid reports whether anything has been copied yet.
func (c *Clipboard) Valid() bool {
	return c.valid
}

// Copy stores the transform of the first selected object. Returns false (and
// leaves the clipboard untouched) with an empty selection or a stale object.
func (c *Clipboard) Copy(scene editor.Scene, sel editor.Selection) bool {
	ids := sel.Selected()
	if len(ids) == 0 {
		return false
	}
	t, ok := scene.Transform(ids[0])
	if !ok {
		return false
	}
	c.transform = t
	c.valid = true
	return true
}

// Paste applies the copied position and rotation (never scale) to every
// selected object inside one undo scope. Returns false if nothing was copied,
// nothing is selected, or every selected object is gone.
func (c *Clipboard) Paste(scene editor.Scene, sel editor.Selection, undo editor.UndoLog, notify editor.Notifier) bool {
	if !c.valid {
		return false
	}
	ids := sel.Selected()
	if len(ids) == 0 {
		return false
	}

	scope := undo.Open("Paste Transform")
	modified := 0
	for _, id := range ids {
		if !scene.Exists(id) {
			continue
		}
		scope.Record(id)
		scene.SetPosition(id, c.transform.Position)
		scene.SetRotation(id, c.transform.Rotation)
		modified++
	}
	scope.Close()

	if modified == 0 {
		return false
	}
	notify.SelectionChanged()
	return true
}

// FolderPaste is the two-phase folder-aware paste. Arm snapshots the scene and
// the target folder at shortcut time; Complete runs on the next frame tick,
// diffs the scene, and moves only the newly created objects. At most one
// pending record exists: a second Arm before Complete overwrites the snapshot
// (accepted race, not an error).
type FolderPaste struct {
	folder  string
	before  map[editor.ObjectID]struct{}
	pending bool
}

// Arm captures the folder of the first selected object and the identity of
// every object currently in the scene, then marks the record pending.
func (f *FolderPaste) Arm(scene editor.Scene, sel editor.Selection) {
	f.folder = ""
	if ids := sel.Selected(); len(ids) > 0 {
		f.folder = scene.Folder(ids[0])
	}
	f.before = make(map[editor.ObjectID]struct{})
	for _, id := range scene.Objects() {
		f.before[id] = struct{}{}
	}
	f.pending = true
}

// Pending reports whether a Complete is due on the next tick.
func (f *FolderPaste) Pending() bool {
	return f.pending
}

// Complete consumes the pending record: objects present now but not in the
// snapshot move to the captured folder inside one undo scope. With no captured
// folder or no new objects it mutates nothing. Returns how many objects moved.
func (f *FolderPaste) Complete(scene editor.Scene, undo editor.UndoLog, notify editor.Notifier) int {
	if !f.pending {
		return 0
	}
	f.pending = false

	var created []editor.ObjectID
	for _, id := range scene.Objects() {
		if _, ok := f.before[id]; !ok {
			created = append(created, id)
		}
	}
	f.before = nil

	if f.folder == "" || len(created) == 0 {
		return 0
	}

	scope := undo.Open("Paste to Folder")
	for _, id := range created {
		scope.Record(id)
		scene.SetFolder(id, f.folder)
	}
	scope.Close()
	notify.SelectionChanged()
	return len(created)
}
