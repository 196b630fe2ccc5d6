// Package project converts 2D pointer deltas into 3D world deltas on a chosen
// manipulation plane or axis, relative to the current camera view.
package project

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a per-frame sample of the viewport camera.
type Camera struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
	// FOVDegrees is the vertical field of view.
	FOVDegrees float32
	// ViewportHeight is the viewport height in pixels.
	ViewportHeight float32
}

// Params are the tunable constants of the projection.
type Params struct {
	// Damping maps screen-pixel motion to a comfortable world-space speed.
	// Chosen by feel, not derived.
	Damping float32
	// MinDistance clamps the camera-to-pivot distance used for the
	// world-units-per-pixel scale.
	MinDistance float32
	// TiltFloor is the lower clamp on the tilt correction, so a plane nearly
	// parallel to the view direction does not blow up the projected delta.
	TiltFloor float32
	// CloseDistance and MinCloseRatio taper single-axis sensitivity below
	// CloseDistance, down to MinCloseRatio at MinDistance.
	CloseDistance float32
	MinCloseRatio float32
}

// PlanarDelta converts a pointer delta (dx right, dy down, in pixels) into a
// world delta lying in the plane through pivot with the given normal. Screen
// right maps along the camera's right projected into the plane; screen up maps
// along the camera's forward projected into the plane.
func PlanarDelta(cam Camera, planeNormal, pivot rl.Vector3, dx, dy float32, p Params) rl.Vector3 {
	forward := rl.Vector3Normalize(planeProject(cam.Forward, planeNormal))
	right := rl.Vector3Normalize(planeProject(cam.Right, planeNormal))

	scale := unitsPerPixel(cam, pivot, p) * tiltCorrection(cam.Forward, planeNormal, p) * p.Damping

	out := rl.Vector3Scale(right, dx*scale)
	return rl.Vector3Add(out, rl.Vector3Scale(forward, -dy*scale))
}

// AxisDelta converts a vertical pointer delta (dy down, in pixels) into a world
// delta along a single axis. Dragging up moves along +axis. Sensitivity tapers
// linearly below CloseDistance so close-up moves are finer-grained.
func AxisDelta(cam Camera, axis, pivot rl.Vector3, dy float32, p Params) rl.Vector3 {
	scale := unitsPerPixel(cam, pivot, p) * p.Damping * closeTaper(distance(cam, pivot, p), p)
	return rl.Vector3Scale(axis, -dy*scale)
}

// unitsPerPixel is the world height covered by one viewport pixel at the
// pivot's (clamped) distance from the camera.
func unitsPerPixel(cam Camera, pivot rl.Vector3, p Params) float32 {
	halfFOV := cam.FOVDegrees * 0.5 * (math32.Pi / 180)
	return 2 * distance(cam, pivot, p) * math32.Tan(halfFOV) / cam.ViewportHeight
}

func distance(cam Camera, pivot rl.Vector3, p Params) float32 {
	d := rl.Vector3Distance(cam.Position, pivot)
	if d < p.MinDistance {
		return p.MinDistance
	}
	return d
}

// tiltCorrection shrinks motion as the view direction leaves the plane,
// floored so a grazing view stays controllable.
func tiltCorrection(camForward, planeNormal rl.Vector3, p Params) float32 {
	dot := rl.Vector3DotProduct(camForward, planeNormal)
	tilt := math32.Sqrt(math32.Max(0, 1-dot*dot))
	if tilt < p.TiltFloor {
		return p.TiltFloor
	}
	return tilt
}

// closeTaper maps distance in [MinDistance, CloseDistance] to
// [MinCloseRatio, 1], clamped at both ends.
func closeTaper(dist float32, p Params) float32 {
	if p.CloseDistance <= p.MinDistance {
		return 1
	}
	t := (dist - p.MinDistance) / (p.CloseDistance - p.MinDistance)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.MinCloseRatio + t*(1-p.MinCloseRatio)
}

// planeProject removes v's component along the plane normal.
func planeProject(v, normal rl.Vector3) rl.Vector3 {
	return rl.Vector3Subtract(v, rl.Vector3Scale(normal, rl.Vector3DotProduct(v, normal)))
}
