// Package viewport owns the editor's 3D camera and the in-world overlay
// drawing (ground grid, axis lines). The world is Z-up: the ground plane is
// XY at Z=0 and the camera orbits with +Z as up.
package viewport

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/editor"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Viewport holds the 3D camera, the coordinate-space toggle and the active
// transform widget mode. Update runs camera logic; Draw renders the 3D pass
// between BeginMode3D and EndMode3D.
type Viewport struct {
	Camera      rl.Camera3D
	GridVisible bool

	space editor.CoordSpace
	mode  editor.WidgetMode
}

// New returns a viewport with a perspective camera looking at the origin.
// Camera: position (12,-12,10), target (0,0,0), up (0,0,1), fovy 60°.
// Grid is visible by default.
func New() *Viewport {
	v := &Viewport{}
	v.Camera.Position = rl.NewVector3(12, -12, 10)
	v.Camera.Target = rl.NewVector3(0, 0, 0)
	v.Camera.Up = rl.NewVector3(0, 0, 1)
	v.Camera.Fovy = 60
	v.Camera.Projection = rl.CameraPerspective
	v.GridVisible = true
	return v
}

// SetGridVisible sets whether the ground grid is drawn.
func (v *Viewport) SetGridVisible(visible bool) {
	v.GridVisible = visible
}

// Update runs once per frame. The camera flies free (raylib CameraFree: WASD +
// mouse look) while the right mouse button is held; the cursor is captured for
// the duration so look deltas are unbounded.
func (v *Viewport) Update() {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		rl.DisableCursor()
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		rl.EnableCursor()
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		rl.UpdateCamera(&v.Camera, rl.CameraFree)
	}
}

// CameraPosition returns the camera's world position.
func (v *Viewport) CameraPosition() rl.Vector3 {
	return v.Camera.Position
}

// CameraForward returns the normalized view direction.
func (v *Viewport) CameraForward() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3Subtract(v.Camera.Target, v.Camera.Position))
}

// CameraRight returns the normalized screen-right direction.
func (v *Viewport) CameraRight() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3CrossProduct(v.CameraForward(), v.Camera.Up))
}

// FOV returns the vertical field of view in degrees.
func (v *Viewport) FOV() float32 {
	return v.Camera.Fovy
}

// ViewportHeight returns the render height in pixels.
func (v *Viewport) ViewportHeight() int {
	return int(rl.GetScreenHeight())
}

// DeprojectScreen converts a screen point to a world-space picking ray.
func (v *Viewport) DeprojectScreen(pos rl.Vector2) (rl.Vector3, rl.Vector3) {
	ray := rl.GetMouseRay(pos, v.Camera)
	return ray.Position, ray.Direction
}

// CoordSpace returns the active manipulation coordinate space.
func (v *Viewport) CoordSpace() editor.CoordSpace {
	return v.space
}

// SetCoordSpace sets the manipulation coordinate space.
func (v *Viewport) SetCoordSpace(s editor.CoordSpace) {
	v.space = s
}

// WidgetMode returns the active transform widget mode.
func (v *Viewport) WidgetMode() editor.WidgetMode {
	return v.mode
}

// SetWidgetMode sets the active transform widget mode.
func (v *Viewport) SetWidgetMode(m editor.WidgetMode) {
	v.mode = m
}

// Draw renders the 3D pass: the ground grid when visible, then the caller's
// world content via drawWorld.
func (v *Viewport) Draw(drawWorld func()) {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawGroundGrid()
	}
	if drawWorld != nil {
		drawWorld()
	}
	rl.EndMode3D()
}

// drawGroundGrid draws a grid on the XY plane (Z=0) with major/minor lines and
// axis lines through the origin (X=red, Y=green, Z=blue).
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGroundGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	// Grid lines on the XY plane: lines along Y (varying X) and along X (varying Y)
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), float32(-gridExtent), 0
		end.X, end.Y, end.Z = float32(x), float32(gridExtent), 0
		rl.DrawLine3D(start, end, c)
	}
	for y := -gridExtent; y <= gridExtent; y += gridMinorStep {
		c := major
		if y%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), float32(y), 0
		end.X, end.Y, end.Z = float32(gridExtent), float32(y), 0
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, float32(-gridExtent), 0
	end.X, end.Y, end.Z = 0, float32(gridExtent), 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
