// Package shortcuts maps viewport input to manipulation actions: the held
// move/scale keys, scroll rotation, grid controls, widget modes, and the
// transform clipboard chords. It owns no transform math itself; it decides
// what runs and what the host keeps.
package shortcuts

import (
	"level-editor/internal/clipboard"
	"level-editor/internal/editor"
	"level-editor/internal/groundsnap"
	"level-editor/internal/logger"
	"level-editor/internal/session"
)

// Key is the set of keys the processor cares about. Anything else never
// reaches it.
type Key int

const (
	KeyQ Key = iota
	KeyE
	KeyR
	KeyG
	Key1
	Key2
	Key3
	KeyC
	KeyT
	KeyB
	KeyD
	KeyV
)

// Mods is the modifier state at the time of an input event.
type Mods uint8

const (
	ModCtrl Mods = 1 << iota
	ModShift
)

// Button identifies a mouse button event.
type Button int

const (
	MouseLeft Button = iota
	MouseRight
)

// Env are the services the processor drives. All fields are required.
type Env struct {
	Scene    editor.Scene
	Sel      editor.Selection
	View     editor.View
	Gate     editor.Gate
	Settings editor.SnapSettings
	Undo     editor.UndoLog
	Notify   editor.Notifier
	Cmds     editor.Commands

	Ctrl    *session.Controller
	Snapper *groundsnap.Snapper
	Clip    *clipboard.Clipboard
	Folder  *clipboard.FolderPaste

	// Log receives one line per discrete operation. Nil disables action logging.
	Log *logger.Logger
}

// Processor is the input front-end. Feed it the host's key, mouse and scroll
// events plus one Tick per frame; each handler reports whether it consumed
// the event (a consumed event must not reach the host's own bindings).
type Processor struct {
	env Env

	// G distinguishes tap (toggle) from hold-and-scroll (resize) on release.
	gHeld     bool
	gScrolled bool

	// Scrolling during a horizontal drag switches the widget to rotate for
	// visual feedback; the key release puts it back.
	qScrolled bool

	// Shift+LMB suppresses rotation snapping for the duration of the press.
	rotSuppressed bool
	rotWasEnabled bool
}

// New returns a Processor over env.
func New(env Env) *Processor {
	return &Processor{env: env}
}

func (p *Processor) logf(format string, args ...any) {
	if p.env.Log != nil {
		p.env.Log.Logf(format, args...)
	}
}

// active reports whether manipulation shortcuts currently run at all.
func (p *Processor) active() bool {
	g := p.env.Gate
	return g.Editing() && g.ViewportFocused() && !g.ToolModeActive()
}

var dragKeys = map[Key]session.Mode{
	KeyQ: session.MoveHorizontal,
	KeyE: session.MoveVertical,
	KeyR: session.ScaleUniform,
}

// KeyDown handles a key press (including OS auto-repeat, which is a no-op for
// the session keys).
func (p *Processor) KeyDown(k Key, mods Mods) bool {
	if !p.active() {
		return false
	}

	if mode, ok := dragKeys[k]; ok && mods == 0 {
		p.env.Ctrl.Begin(mode)
		return true
	}

	switch k {
	case KeyG:
		if mods != 0 {
			return false
		}
		p.gHeld = true
		p.gScrolled = false
		return true
	case Key1, Key2, Key3:
		if mods != 0 {
			return false
		}
		p.env.View.SetWidgetMode(widgetFor(k))
		return true
	case KeyC:
		if mods == ModCtrl {
			p.env.Clip.Copy(p.env.Scene, p.env.Sel)
			// Never consumed: the host's own copy-objects binding runs too.
			return false
		}
	// The command chords consume the event only when the operation modified
	// something; a no-op leaves the chord to the host's own bindings.
	case KeyT:
		if mods == ModCtrl {
			if !p.env.Clip.Paste(p.env.Scene, p.env.Sel, p.env.Undo, p.env.Notify) {
				return false
			}
			p.logf("pasted transform onto %d object(s)", len(p.env.Sel.Selected()))
			return true
		}
	case KeyB:
		switch mods {
		case ModCtrl:
			return p.snapSelection(groundsnap.AlignSurface)
		case ModShift:
			return p.snapSelection(groundsnap.AlignLevel)
		}
	case KeyD:
		if mods == ModCtrl {
			return p.duplicateInPlace()
		}
	case KeyV:
		if mods == ModCtrl|ModShift {
			// Arm before pasting: the paste lands asynchronously and the diff
			// baseline must predate it.
			p.env.Folder.Arm(p.env.Scene, p.env.Sel)
			return p.env.Cmds.Paste()
		}
	}
	return false
}

// KeyUp handles a key release. Session keys are released even while the gate
// is closed, so a focus change mid-drag cannot leave a session stuck open.
func (p *Processor) KeyUp(k Key) bool {
	if mode, ok := dragKeys[k]; ok {
		if !p.env.Ctrl.Active(mode) {
			return false
		}
		p.env.Ctrl.End(mode)
		if k == KeyQ && p.qScrolled {
			p.env.View.SetWidgetMode(editor.WidgetTranslate)
			p.qScrolled = false
		}
		return true
	}

	if k == KeyG && p.gHeld {
		p.gHeld = false
		if !p.gScrolled {
			p.env.Settings.TogglePositionGrid()
			if _, enabled := p.env.Settings.PositionGrid(); enabled {
				p.logf("position grid on")
			} else {
				p.logf("position grid off")
			}
		}
		return true
	}
	return false
}

// Scroll handles mouse wheel ticks (positive = up/away). Shift during a drag
// requests a raw unsnapped rotation step.
func (p *Processor) Scroll(ticks float32, mods Mods) bool {
	if !p.active() || ticks == 0 {
		return false
	}

	if p.gHeld {
		p.gScrolled = true
		p.env.Settings.StepPositionGrid(ticks > 0)
		size, _ := p.env.Settings.PositionGrid()
		p.logf("position grid size %g", size)
		return true
	}

	if p.env.Ctrl.Active(session.MoveHorizontal) {
		bypass := mods&ModShift != 0 || p.rotSuppressed
		if p.env.Ctrl.Rotate(ticks, bypass) {
			p.env.View.SetWidgetMode(editor.WidgetRotate)
			p.qScrolled = true
		}
		return true
	}
	return false
}

// MouseDown handles a button press. Shift+LMB turns rotation snapping off for
// the duration of the press; the event itself stays with the host (selection,
// gizmo interaction).
func (p *Processor) MouseDown(b Button, mods Mods) bool {
	if !p.active() {
		return false
	}
	if b == MouseLeft && mods&ModShift != 0 && !p.rotSuppressed {
		_, p.rotWasEnabled = p.env.Settings.RotationGrid()
		p.env.Settings.SetRotationGridEnabled(false)
		p.rotSuppressed = true
	}
	return false
}

// MouseUp restores rotation snapping after a Shift+LMB press.
func (p *Processor) MouseUp(b Button) bool {
	if b == MouseLeft && p.rotSuppressed {
		p.env.Settings.SetRotationGridEnabled(p.rotWasEnabled)
		p.rotSuppressed = false
	}
	return false
}

// Tick runs the per-frame work: completing a pending folder paste once the
// pasted objects exist, then advancing the drag sessions.
func (p *Processor) Tick() {
	if p.env.Folder.Pending() {
		if moved := p.env.Folder.Complete(p.env.Scene, p.env.Undo, p.env.Notify); moved > 0 {
			p.logf("moved %d pasted object(s) into folder", moved)
		}
	}
	p.env.Ctrl.Tick()
}

// duplicateInPlace runs the host duplicate command and pins the duplicates to
// the source transforms in one undo scope, in case the host offsets its clones.
// The pairing is positional: the host selects the clones in source order.
// Reports whether anything was duplicated.
func (p *Processor) duplicateInPlace() bool {
	src := p.env.Sel.Selected()
	if len(src) == 0 {
		return false
	}
	transforms := make([]editor.Transform, 0, len(src))
	for _, id := range src {
		if t, ok := p.env.Scene.Transform(id); ok {
			transforms = append(transforms, t)
		}
	}
	if !p.env.Cmds.Duplicate() {
		return false
	}
	dup := p.env.Sel.Selected()
	if len(dup) == 0 {
		return false
	}
	scope := p.env.Undo.Open("Duplicate")
	for i, id := range dup {
		if i >= len(transforms) {
			break
		}
		scope.Record(id)
		p.env.Scene.SetPosition(id, transforms[i].Position)
		p.env.Scene.SetRotation(id, transforms[i].Rotation)
		p.env.Scene.SetScale(id, transforms[i].Scale)
	}
	scope.Close()
	p.logf("duplicated %d object(s)", len(dup))
	p.env.Notify.SelectionChanged()
	return true
}

// snapSelection drops the selection to the ground and reports whether any
// object moved.
func (p *Processor) snapSelection(align groundsnap.Align) bool {
	ids := p.env.Sel.Selected()
	if len(ids) == 0 {
		return false
	}
	scope := p.env.Undo.Open("Snap to Ground")
	n := p.env.Snapper.SnapSelection(ids, align, scope)
	scope.Close()
	if n == 0 {
		return false
	}
	p.logf("snapped %d object(s) to ground", n)
	p.env.Notify.SelectionChanged()
	return true
}

func widgetFor(k Key) editor.WidgetMode {
	switch k {
	case Key2:
		return editor.WidgetRotate
	case Key3:
		return editor.WidgetScale
	}
	return editor.WidgetTranslate
}
