// Package session owns per-gesture drag state for the key-held manipulation
// modes: horizontal move (Q), vertical move (E), uniform scale (R), plus the
// scroll-driven rotation that piggybacks on the move key.
package session

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/config"
	"level-editor/internal/editor"
	"level-editor/internal/project"
	"level-editor/internal/snap"
)

// Mode tags one drag session kind. The three modes are independent and may be
// held simultaneously; Tick applies them in fixed declaration order.
type Mode int

const (
	MoveHorizontal Mode = iota
	MoveVertical
	ScaleUniform
)

// modeOrder is the per-frame application order for overlapping sessions.
var modeOrder = [...]Mode{MoveHorizontal, MoveVertical, ScaleUniform}

func (m Mode) label() string {
	switch m {
	case MoveHorizontal:
		return "Move Horizontal"
	case MoveVertical:
		return "Move Vertical"
	case ScaleUniform:
		return "Scale Uniform"
	}
	return "Drag"
}

// deltaEpsilon is the pointer movement (pixels) below which a frame is treated
// as no movement.
const deltaEpsilon = 1e-3

// minScaleAxis is the hard per-axis floor applied after the multiplier.
const minScaleAxis = 0.001

// session is the state of one held manipulation key across frames.
type session struct {
	mode Mode

	// initialized is set on the first movement sample, when the selection
	// snapshot and manipulation axis are resolved.
	initialized bool
	ids         []editor.ObjectID
	axis        rl.Vector3

	acc snap.Accumulator

	// scale-only state: total accumulated multiplier delta and the initial
	// scale per object, kept by identity (checked for existence, never a
	// dangling reference).
	scaleTotal    float32
	initialScales map[editor.ObjectID]rl.Vector3

	// scope opens lazily on the first actually-applied delta so a key tap
	// with no movement creates no undo entry.
	scope editor.UndoScope
}

// Controller runs the drag state machines against the host services.
type Controller struct {
	scene    editor.Scene
	sel      editor.Selection
	view     editor.View
	settings editor.SnapSettings
	undo     editor.UndoLog
	notify   editor.Notifier
	cursor   editor.Cursor
	tun      config.Tunables

	sessions map[Mode]*session

	// Pointer tracking is shared: while any session is active the cursor is
	// hidden and warped back to the anchor each frame for unbounded range.
	anchor      rl.Vector2
	lastPointer rl.Vector2
	hidden      bool
}

// New returns a Controller over the given host services and tunables.
func New(scene editor.Scene, sel editor.Selection, view editor.View, settings editor.SnapSettings,
	undo editor.UndoLog, notify editor.Notifier, cursor editor.Cursor, tun config.Tunables) *Controller {
	return &Controller{
		scene:    scene,
		sel:      sel,
		view:     view,
		settings: settings,
		undo:     undo,
		notify:   notify,
		cursor:   cursor,
		tun:      tun,
		sessions: make(map[Mode]*session),
	}
}

// Begin starts (or re-acknowledges, on key repeat) a session for mode.
func (c *Controller) Begin(mode Mode) {
	if _, ok := c.sessions[mode]; ok {
		return
	}
	if !c.anyActive() {
		c.anchor = c.cursor.Position()
		c.lastPointer = c.anchor
		c.cursor.SetHidden(true)
		c.hidden = true
	}
	c.sessions[mode] = &session{mode: mode}
}

// End closes a session: the undo scope commits whatever was applied (there is
// no rollback-to-start), accumulation resets, and the host is told to refresh.
func (c *Controller) End(mode Mode) {
	s, ok := c.sessions[mode]
	if !ok {
		return
	}
	if s.scope != nil {
		s.scope.Close()
	}
	delete(c.sessions, mode)
	if !c.anyActive() && c.hidden {
		c.cursor.SetHidden(false)
		c.hidden = false
	}
	c.notify.SelectionChanged()
}

// Active reports whether a session for mode is open.
func (c *Controller) Active(mode Mode) bool {
	_, ok := c.sessions[mode]
	return ok
}

// AnyActive reports whether any drag session is open.
func (c *Controller) AnyActive() bool {
	return c.anyActive()
}

func (c *Controller) anyActive() bool {
	return len(c.sessions) > 0
}

// Tick samples the pointer once per frame and drives every active session in
// fixed order. With no movement nothing is applied, no scopes open, and no
// refresh is sent.
func (c *Controller) Tick() {
	if !c.anyActive() {
		return
	}
	pos := c.cursor.Position()
	delta := rl.Vector2Subtract(pos, c.lastPointer)
	if c.hidden {
		c.cursor.SetPosition(c.anchor)
		c.lastPointer = c.anchor
	} else {
		c.lastPointer = pos
	}
	if math32.Abs(delta.X) < deltaEpsilon && math32.Abs(delta.Y) < deltaEpsilon {
		return
	}
	for _, mode := range modeOrder {
		s, ok := c.sessions[mode]
		if !ok {
			continue
		}
		switch mode {
		case MoveHorizontal, MoveVertical:
			c.applyMove(s, delta)
		case ScaleUniform:
			c.applyScale(s, delta)
		}
	}
}

// initSession snapshots the selection and resolves the manipulation axis once
// per gesture, on the first movement sample. Returns false with nothing
// selected (the session stays uninitialized and retries next frame).
func (c *Controller) initSession(s *session) bool {
	if s.initialized {
		return true
	}
	ids := c.sel.Selected()
	if len(ids) == 0 {
		return false
	}
	s.ids = ids
	s.axis = c.resolveAxis(ids)
	if s.mode == ScaleUniform {
		s.initialScales = make(map[editor.ObjectID]rl.Vector3, len(ids))
		for _, id := range ids {
			if t, ok := c.scene.Transform(id); ok {
				s.initialScales[id] = t.Scale
			}
		}
	}
	s.initialized = true
	return true
}

// resolveAxis picks the plane normal / vertical axis for this gesture: world
// up, or the first selected object's local up in local coordinate mode.
func (c *Controller) resolveAxis(ids []editor.ObjectID) rl.Vector3 {
	if c.view.CoordSpace() == editor.CoordLocal {
		for _, id := range ids {
			if t, ok := c.scene.Transform(id); ok {
				return rl.Vector3RotateByQuaternion(editor.Up(), t.Rotation)
			}
		}
	}
	return editor.Up()
}

// livePivot is the centroid of the still-existing snapshotted objects.
func (c *Controller) livePivot(ids []editor.ObjectID) (rl.Vector3, bool) {
	sum := rl.NewVector3(0, 0, 0)
	n := 0
	for _, id := range ids {
		if t, ok := c.scene.Transform(id); ok {
			sum = rl.Vector3Add(sum, t.Position)
			n++
		}
	}
	if n == 0 {
		return sum, false
	}
	return rl.Vector3Scale(sum, 1/float32(n)), true
}

func (c *Controller) camera() project.Camera {
	return project.Camera{
		Position:       c.view.CameraPosition(),
		Forward:        c.view.CameraForward(),
		Right:          c.view.CameraRight(),
		FOVDegrees:     c.view.FOV(),
		ViewportHeight: float32(c.view.ViewportHeight()),
	}
}

func (c *Controller) dragParams() project.Params {
	return project.Params{
		Damping:       c.tun.Drag.Damping,
		MinDistance:   c.tun.Drag.MinDistance,
		TiltFloor:     c.tun.Drag.TiltFloor,
		CloseDistance: c.tun.Drag.CloseDistance,
		MinCloseRatio: c.tun.Drag.MinCloseRatio,
	}
}

func (c *Controller) applyMove(s *session, delta rl.Vector2) {
	if !c.initSession(s) {
		return
	}
	pivot, ok := c.livePivot(s.ids)
	if !ok {
		return
	}

	var world rl.Vector3
	if s.mode == MoveVertical {
		world = project.AxisDelta(c.camera(), s.axis, pivot, delta.Y, c.dragParams())
	} else {
		world = project.PlanarDelta(c.camera(), s.axis, pivot, delta.X, delta.Y, c.dragParams())
	}

	grid, enabled := c.settings.PositionGrid()
	if !enabled {
		grid = 0
	}
	step := s.acc.Feed(world, grid)
	if snap.IsNearlyZero(step, 1e-7) {
		// Not enough accumulated motion for a snap step: no mutation, no
		// transaction, no redraw.
		return
	}

	if s.scope == nil {
		s.scope = c.undo.Open(s.mode.label())
	}
	for _, id := range s.ids {
		t, ok := c.scene.Transform(id)
		if !ok {
			continue
		}
		s.scope.Record(id)
		c.scene.SetPosition(id, rl.Vector3Add(t.Position, step))
	}
	c.notify.SelectionChanged()
}

func (c *Controller) applyScale(s *session, delta rl.Vector2) {
	if !c.initSession(s) {
		return
	}

	// Outward motion on either axis grows, inward shrinks.
	radial := delta.X - delta.Y
	s.scaleTotal += radial * c.tun.Scale.Sensitivity

	mult := math32.Max(1+s.scaleTotal, c.tun.Scale.MinMultiplier)
	if grid, enabled := c.settings.ScaleGrid(); enabled && grid > 0 {
		// Snap the multiplier itself so all axes step together.
		mult = snap.Nearest(mult, grid)
		if mult < grid {
			mult = grid
		}
	}

	if s.scope == nil {
		s.scope = c.undo.Open(s.mode.label())
	}
	applied := 0
	for id, initial := range s.initialScales {
		if !c.scene.Exists(id) {
			continue
		}
		s.scope.Record(id)
		ns := rl.Vector3Scale(initial, mult)
		ns.X = math32.Max(ns.X, minScaleAxis)
		ns.Y = math32.Max(ns.Y, minScaleAxis)
		ns.Z = math32.Max(ns.Z, minScaleAxis)
		c.scene.SetScale(id, ns)
		applied++
	}
	if applied > 0 {
		c.notify.SelectionChanged()
	}
}

// Rotate turns every selected object by one increment about world Z, driven by
// a discrete scroll tick rather than the per-frame drag loop. Positive ticks
// rotate counter-clockwise. The increment is the rotation grid when enabled,
// unless bypassSnap asks for the raw increment. Multiple selected objects (or
// a grouped selection) pivot about the selection centroid; a single ungrouped
// object spins in place. Returns whether anything was modified.
func (c *Controller) Rotate(ticks float32, bypassSnap bool) bool {
	ids := c.sel.Selected()
	if len(ids) == 0 {
		return false
	}

	amount := c.tun.Rotate.IncrementDegrees
	if !bypassSnap {
		if deg, enabled := c.settings.RotationGrid(); enabled && deg > 0 {
			amount = deg
		}
	}
	if ticks < 0 {
		amount = -amount
	}

	aroundPivot := len(ids) > 1
	if !aroundPivot {
		_, aroundPivot = c.sel.GroupRoot(ids[0])
	}
	pivot, ok := c.livePivot(ids)
	if !ok {
		return false
	}

	q := rl.QuaternionFromAxisAngle(editor.Up(), amount*math32.Pi/180)
	scope := c.undo.Open("Rotate Selected")
	modified := 0
	for _, id := range ids {
		t, ok := c.scene.Transform(id)
		if !ok {
			continue
		}
		scope.Record(id)
		if aroundPivot {
			rel := rl.Vector3Subtract(t.Position, pivot)
			c.scene.SetPosition(id, rl.Vector3Add(pivot, rl.Vector3RotateByQuaternion(rel, q)))
		}
		c.scene.SetRotation(id, rl.QuaternionMultiply(q, t.Rotation))
		modified++
	}
	scope.Close()
	if modified == 0 {
		return false
	}
	c.notify.SelectionChanged()
	return true
}
