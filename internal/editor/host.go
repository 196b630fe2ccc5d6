package editor

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Host interface boundary. Everything below is owned by the host editor and
// called synchronously on its UI thread; the manipulation engine only reads
// and requests mutation through these contracts. Missing objects are reported
// through ok=false results and treated as skip-not-fail by all callers.

// Scene is the host's object model: transforms, components, folders, attachments.
type Scene interface {
	// Objects returns the identity of every object currently in the scene,
	// in stable order. Used by the deferred folder-paste diff.
	Objects() []ObjectID
	Exists(id ObjectID) bool

	Transform(id ObjectID) (Transform, bool)
	SetPosition(id ObjectID, p rl.Vector3)
	SetRotation(id ObjectID, q rl.Quaternion)
	SetScale(id ObjectID, s rl.Vector3)

	// Descendants returns every object attached below id, recursively.
	Descendants(id ObjectID) []ObjectID

	Components(id ObjectID) []Component
	ComponentLocalBounds(id ComponentID) (Box, bool)
	// ComponentToWorld transforms a point from the component's local space to world space.
	ComponentToWorld(id ComponentID, local rl.Vector3) rl.Vector3

	Folder(id ObjectID) string
	SetFolder(id ObjectID, folder string)
}

// Selection is the host's ordered selection set.
type Selection interface {
	Selected() []ObjectID
	// GroupRoot returns the root of id's group, if id belongs to one.
	GroupRoot(id ObjectID) (ObjectID, bool)
}

// RayQuery is the host's spatial query service: single nearest hit along a ray.
// Query-only components block the ray too (visibility-channel semantics); it is
// the caller's job to filter them out via the ignore set.
type RayQuery interface {
	Cast(origin, dir rl.Vector3, maxDist float32, ignore *IgnoreSet) (Hit, bool)
}

// View is the host's viewport/camera service.
type View interface {
	CameraPosition() rl.Vector3
	CameraForward() rl.Vector3
	CameraRight() rl.Vector3
	// FOV is the vertical field of view in degrees.
	FOV() float32
	ViewportHeight() int
	// DeprojectScreen converts a screen-space point to a world-space ray.
	DeprojectScreen(pos rl.Vector2) (origin, dir rl.Vector3)

	CoordSpace() CoordSpace
	WidgetMode() WidgetMode
	SetWidgetMode(m WidgetMode)
}

// Gate holds the preconditions that decide whether manipulation shortcuts run.
type Gate interface {
	// Editing is false while a play session is in progress; nothing runs then.
	Editing() bool
	ViewportFocused() bool
	// ToolModeActive reports that a brush/paint tool currently owns the
	// manipulation keys, so they must pass through untouched.
	ToolModeActive() bool
}

// SnapSettings is the host's grid/snap settings store.
type SnapSettings interface {
	// PositionGrid returns the current position grid increment and whether it is enabled.
	PositionGrid() (size float32, enabled bool)
	// RotationGrid returns the current rotation increment in degrees and whether it is enabled.
	RotationGrid() (degrees float32, enabled bool)
	// ScaleGrid returns the current scale-multiplier increment and whether it is enabled.
	ScaleGrid() (size float32, enabled bool)

	SetRotationGridEnabled(enabled bool)
	TogglePositionGrid()
	// StepPositionGrid moves the position grid size up or down its size list.
	StepPositionGrid(up bool)
}

// UndoScope batches object mutations into one user-visible undo step.
// Record must be called for an object before its first mutation in the scope
// (mark dirty before mutate). Close with no recorded objects is a no-op.
type UndoScope interface {
	Record(id ObjectID)
	Close()
}

// UndoLog opens undo scopes.
type UndoLog interface {
	Open(label string) UndoScope
}

// Notifier is the fire-and-forget refresh signal for gizmos and dependent UI.
type Notifier interface {
	SelectionChanged()
}

// Cursor controls the host pointer during drags: hidden and warped back to an
// anchor each frame so the drag range is unbounded.
type Cursor interface {
	Position() rl.Vector2
	SetPosition(p rl.Vector2)
	SetHidden(hidden bool)
}

// Commands invokes host-owned editing commands the engine layers on top of.
// Each reports whether it modified the scene, so a no-op chord can stay
// unconsumed.
type Commands interface {
	// Duplicate duplicates the current selection and selects the duplicates.
	Duplicate() bool
	// Paste pastes the host's own copy buffer and selects the pasted objects.
	Paste() bool
}
