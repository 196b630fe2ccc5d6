package main

import (
	"flag"
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/clipboard"
	"level-editor/internal/commands"
	"level-editor/internal/config"
	"level-editor/internal/console"
	"level-editor/internal/debug"
	"level-editor/internal/editor"
	"level-editor/internal/graphics"
	"level-editor/internal/grid"
	"level-editor/internal/groundsnap"
	"level-editor/internal/logger"
	"level-editor/internal/primitives"
	"level-editor/internal/session"
	"level-editor/internal/shortcuts"
	"level-editor/internal/undo"
	"level-editor/internal/viewport"
	"level-editor/internal/world"
)

// scenePath is tried at startup; a missing or invalid file starts the editor
// with an empty scene.
const scenePath = "assets/scene.yaml"

const pickDistance = 10000

var (
	objectTint   = rl.NewColor(128, 128, 128, 255)
	selectedTint = rl.NewColor(230, 160, 60, 255)
)

// mouseCursor adapts raylib's global mouse state to the engine's cursor contract.
type mouseCursor struct{}

func (mouseCursor) Position() rl.Vector2 { return rl.GetMousePosition() }

func (mouseCursor) SetPosition(p rl.Vector2) { rl.SetMousePosition(int(p.X), int(p.Y)) }

func (mouseCursor) SetHidden(hidden bool) {
	if hidden {
		rl.HideCursor()
	} else {
		rl.ShowCursor()
	}
}

// refresh is the selection-changed hook. The overlay and viewport recompute
// from scene state every frame, so nothing needs invalidation yet.
type refresh struct{}

func (refresh) SelectionChanged() {}

// gate wires the shortcut preconditions: not in a play session, console
// closed, window focused. There are no brush tools, so ToolModeActive is
// always false.
type gate struct {
	console *console.Console
	playing *bool
}

func (g gate) Editing() bool { return !*g.playing }

func (g gate) ViewportFocused() bool { return !g.console.IsOpen() && rl.IsWindowFocused() }

func (g gate) ToolModeActive() bool { return false }

// keyBinding maps a raylib key to the shortcut processor's key set.
type keyBinding struct {
	rlKey int32
	key   shortcuts.Key
}

var keyBindings = []keyBinding{
	{rl.KeyQ, shortcuts.KeyQ},
	{rl.KeyE, shortcuts.KeyE},
	{rl.KeyR, shortcuts.KeyR},
	{rl.KeyG, shortcuts.KeyG},
	{rl.KeyOne, shortcuts.Key1},
	{rl.KeyTwo, shortcuts.Key2},
	{rl.KeyThree, shortcuts.Key3},
	{rl.KeyC, shortcuts.KeyC},
	{rl.KeyT, shortcuts.KeyT},
	{rl.KeyB, shortcuts.KeyB},
	{rl.KeyD, shortcuts.KeyD},
	{rl.KeyV, shortcuts.KeyV},
}

func activeMods() shortcuts.Mods {
	var m shortcuts.Mods
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		m |= shortcuts.ModCtrl
	}
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		m |= shortcuts.ModShift
	}
	return m
}

// app owns every editor system and runs the per-frame update/draw split.
type app struct {
	log      *logger.Logger
	scene    *world.Scene
	view     *viewport.Viewport
	settings *grid.Settings
	undoLog  *undo.Log
	proc     *shortcuts.Processor
	console  *console.Console
	overlay  *debug.Overlay
	meshes   *primitives.Registry
	tun      config.Tunables

	playing bool
}

func newApp() *app {
	log := logger.New()

	tun, err := config.Load()
	if err != nil {
		log.Logf("config: %v (using defaults)", err)
	}

	scene, err := world.LoadScene(scenePath)
	if err != nil {
		log.Logf("scene: %v (starting empty)", err)
		scene = world.NewScene()
	}

	a := &app{
		log:      log,
		scene:    scene,
		view:     viewport.New(),
		settings: grid.Defaults(),
		undoLog:  undo.NewLog(scene),
		overlay:  debug.New(),
		meshes:   primitives.NewRegistry(),
		tun:      tun,
	}
	a.undoLog.SetLogger(log)
	a.console = console.New(log, a.registerCommands())

	ctrl := session.New(scene, scene, a.view, a.settings, a.undoLog, refresh{}, mouseCursor{}, tun)
	snapper := groundsnap.New(scene, scene, groundsnap.Params{
		Clearance:      tun.GroundSnap.Clearance,
		RayStartHeight: tun.GroundSnap.RayStartHeight,
		RayDepth:       tun.GroundSnap.RayDepth,
		MaxAttempts:    tun.GroundSnap.MaxAttempts,
	})
	a.proc = shortcuts.New(shortcuts.Env{
		Scene:    scene,
		Sel:      scene,
		View:     a.view,
		Gate:     gate{console: a.console, playing: &a.playing},
		Settings: a.settings,
		Undo:     a.undoLog,
		Notify:   refresh{},
		Cmds:     scene,
		Ctrl:     ctrl,
		Snapper:  snapper,
		Clip:     clipboard.New(),
		Folder:   &clipboard.FolderPaste{},
		Log:      log,
	})

	a.overlay.Status = a.statusLine
	return a
}

// registerCommands builds the console command set.
func (a *app) registerCommands() *commands.Registry {
	reg := commands.NewRegistry()

	helpFS := flag.NewFlagSet("help", flag.ContinueOnError)
	reg.Register("help", "list commands", helpFS, func([]string) error {
		for _, line := range reg.Summaries() {
			a.log.Log(line)
		}
		return nil
	})

	gridFS := flag.NewFlagSet("grid", flag.ContinueOnError)
	gridPow2 := gridFS.Bool("pow2", false, "use power-of-two size list")
	gridHide := gridFS.Bool("hide", false, "hide the ground grid")
	reg.Register("grid", "grid settings: [-pow2] [-hide]", gridFS, func([]string) error {
		a.settings.SetUsePow2(*gridPow2)
		a.view.SetGridVisible(!*gridHide)
		size, enabled := a.settings.PositionGrid()
		a.log.Logf("position grid: %g (enabled=%v)", size, enabled)
		return nil
	})

	snapFS := flag.NewFlagSet("snap", flag.ContinueOnError)
	snapDiv := snapFS.Bool("div360", false, "rotation angles that divide 360 evenly")
	snapScale := snapFS.Float64("scale", 0, "scale increment (0 = leave unchanged)")
	reg.Register("snap", "snap settings: [-div360] [-scale N]", snapFS, func([]string) error {
		if *snapDiv {
			a.settings.SetRotationMode(grid.RotationDivisionsOf360)
		} else {
			a.settings.SetRotationMode(grid.RotationFixedList)
		}
		if *snapScale != 0 {
			a.settings.SetScaleGrid(float32(*snapScale))
		}
		deg, _ := a.settings.RotationGrid()
		scale, _ := a.settings.ScaleGrid()
		a.log.Logf("rotation %g°, scale %g", deg, scale)
		return nil
	})

	undoFS := flag.NewFlagSet("undo", flag.ContinueOnError)
	reg.Register("undo", "undo the last transform edit", undoFS, func([]string) error {
		if !a.undoLog.Undo() {
			return fmt.Errorf("nothing to undo")
		}
		return nil
	})

	spawnFS := flag.NewFlagSet("spawn", flag.ContinueOnError)
	reg.Register("spawn", "spawn <cube|sphere|cylinder|plane> [x y z]", spawnFS, func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("spawn: missing primitive type")
		}
		tr := editor.NewTransform()
		if len(args) >= 4 {
			for i, f := range []*float32{&tr.Position.X, &tr.Position.Y, &tr.Position.Z} {
				v, err := strconv.ParseFloat(args[1+i], 32)
				if err != nil {
					return fmt.Errorf("spawn: bad coordinate %q", args[1+i])
				}
				*f = float32(v)
			}
		}
		id := a.scene.Spawn(world.SpawnSpec{
			Name:      args[0],
			Primitive: args[0],
			Transform: tr,
			Components: []world.ComponentSpec{{
				Kind:      editor.KindPrimitive,
				Collision: editor.CollisionQueryAndPhysics,
				Bounds: editor.Box{
					Min: rl.NewVector3(-0.5, -0.5, -0.5),
					Max: rl.NewVector3(0.5, 0.5, 0.5),
				},
			}},
		})
		a.scene.Select(id)
		return nil
	})

	deleteFS := flag.NewFlagSet("delete", flag.ContinueOnError)
	reg.Register("delete", "delete the selected objects", deleteFS, func([]string) error {
		for _, id := range a.scene.Selected() {
			a.scene.Delete(id)
		}
		return nil
	})

	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	reg.Register("fps", "toggle the FPS readout", fpsFS, func([]string) error {
		a.overlay.SetShowFPS(!a.overlay.ShowFPS)
		return nil
	})

	memFS := flag.NewFlagSet("mem", flag.ContinueOnError)
	reg.Register("mem", "toggle the heap readout", memFS, func([]string) error {
		a.overlay.SetShowMemAlloc(!a.overlay.ShowMemAlloc)
		return nil
	})

	playFS := flag.NewFlagSet("play", flag.ContinueOnError)
	reg.Register("play", "toggle play mode (manipulation disabled)", playFS, func([]string) error {
		a.playing = !a.playing
		a.log.Logf("play mode: %v", a.playing)
		return nil
	})

	localFS := flag.NewFlagSet("local", flag.ContinueOnError)
	reg.Register("local", "toggle local/world manipulation space", localFS, func([]string) error {
		if a.view.CoordSpace() == editor.CoordWorld {
			a.view.SetCoordSpace(editor.CoordLocal)
			a.log.Log("coordinate space: local")
		} else {
			a.view.SetCoordSpace(editor.CoordWorld)
			a.log.Log("coordinate space: world")
		}
		return nil
	})

	saveFS := flag.NewFlagSet("saveconfig", flag.ContinueOnError)
	reg.Register("saveconfig", "write the tunables file", saveFS, func([]string) error {
		if err := config.Save(a.tun); err != nil {
			return err
		}
		a.log.Log("saved " + config.Path)
		return nil
	})

	return reg
}

// update runs once per frame before drawing: console, camera, shortcuts, picking.
func (a *app) update() {
	a.console.Update()
	a.view.Update()

	mods := activeMods()
	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.rlKey) {
			consumed := a.proc.KeyDown(b.key, mods)
			// The transform clipboard copy deliberately leaves Ctrl+C to the
			// host: it also fills the object copy buffer.
			if !consumed && b.key == shortcuts.KeyC && mods == shortcuts.ModCtrl {
				if err := a.scene.CopySelected(); err != nil {
					a.log.Logf("copy: %v", err)
				}
			}
		}
		if rl.IsKeyReleased(b.rlKey) {
			a.proc.KeyUp(b.key)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.proc.Scroll(wheel, mods)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.proc.MouseDown(shortcuts.MouseLeft, mods)
		a.pick(mods&shortcuts.ModShift != 0)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.proc.MouseUp(shortcuts.MouseLeft)
	}

	a.proc.Tick()
}

// pick ray-casts under the mouse and updates the selection. Shift adds to it;
// a miss clears it.
func (a *app) pick(additive bool) {
	if a.console.IsOpen() || rl.IsMouseButtonDown(rl.MouseButtonRight) {
		return
	}
	origin, dir := a.view.DeprojectScreen(rl.GetMousePosition())
	hit, ok := a.scene.Cast(origin, dir, pickDistance, nil)
	if !ok {
		if !additive {
			a.scene.Select()
		}
		return
	}
	if additive {
		a.scene.AddToSelection(hit.Object)
	} else {
		a.scene.Select(hit.Object)
	}
}

func (a *app) draw() {
	cam := a.view.CameraPosition()
	a.meshes.SetView([3]float32{cam.X, cam.Y, cam.Z}, [3]float32{0.5, 0.5, 1})

	a.view.Draw(func() {
		selected := make(map[editor.ObjectID]bool)
		for _, id := range a.scene.Selected() {
			selected[id] = true
		}
		for _, id := range a.scene.Objects() {
			obj := a.scene.Object(id)
			if obj == nil || obj.Primitive == "" {
				continue
			}
			tint := objectTint
			if selected[id] {
				tint = selectedTint
			}
			a.meshes.Draw(obj.Primitive, obj.Transform.Position, obj.Transform.Rotation, obj.Transform.Scale, tint)
		}
	})

	a.overlay.Draw()
	a.console.Draw()
}

// statusLine is the bottom-left readout: selection, grid and widget state.
func (a *app) statusLine() string {
	size, enabled := a.settings.PositionGrid()
	gridState := "off"
	if enabled {
		gridState = fmt.Sprintf("%g", size)
	}
	sel := a.scene.Selected()
	selText := "nothing selected"
	if len(sel) == 1 {
		if obj := a.scene.Object(sel[0]); obj != nil {
			p := obj.Transform.Position
			selText = fmt.Sprintf("%s (%.2f, %.2f, %.2f)", obj.Name, p.X, p.Y, p.Z)
		}
	} else if len(sel) > 1 {
		selText = fmt.Sprintf("%d objects", len(sel))
	}
	return fmt.Sprintf("%s | grid %s | %s", selText, gridState, widgetName(a.view.WidgetMode()))
}

func widgetName(m editor.WidgetMode) string {
	switch m {
	case editor.WidgetRotate:
		return "rotate"
	case editor.WidgetScale:
		return "scale"
	}
	return "translate"
}

func main() {
	a := newApp()
	graphics.Run(a.update, a.draw)
}
