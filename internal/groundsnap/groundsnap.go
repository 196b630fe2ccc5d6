// Package groundsnap places an object's geometric bottom on the nearest
// qualifying surface beneath it, optionally tilting the object to the surface
// slope while preserving its horizontal facing.
package groundsnap

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/editor"
)

// Align selects what happens to the object's orientation on a successful snap.
type Align int

const (
	// AlignSurface tilts the object so its up axis matches the surface normal,
	// keeping its current yaw facing.
	AlignSurface Align = iota
	// AlignLevel resets the orientation to the level default.
	AlignLevel
)

// Params are the tunable constants of the snap.
type Params struct {
	// Clearance is added above the contact point to avoid z-fighting/overlap.
	Clearance float32
	// RayStartHeight is how far above the object's position the ray starts.
	RayStartHeight float32
	// RayDepth must clear any plausible scene extent.
	RayDepth float32
	// MaxAttempts bounds the iterative non-blocking-surface filter.
	MaxAttempts int
}

// Snapper runs ground projection against a host scene and ray query.
type Snapper struct {
	scene editor.Scene
	ray   editor.RayQuery
	p     Params
}

// New returns a Snapper over the given host services.
func New(scene editor.Scene, ray editor.RayQuery, p Params) *Snapper {
	return &Snapper{scene: scene, ray: ray, p: p}
}

// SnapSelection snaps each object in ids and returns how many were modified.
// Objects with no surface below them are left unmodified; one object's failure
// never stops the rest. All mutations share the caller's undo scope.
func (s *Snapper) SnapSelection(ids []editor.ObjectID, align Align, scope editor.UndoScope) int {
	modified := 0
	for _, id := range ids {
		if s.SnapObject(id, align, scope) {
			modified++
		}
	}
	return modified
}

// SnapObject snaps one object. Returns false if the object is gone or no
// blocking surface was found within the attempt budget.
func (s *Snapper) SnapObject(id editor.ObjectID, align Align, scope editor.UndoScope) bool {
	t, ok := s.scene.Transform(id)
	if !ok {
		return false
	}

	offset := s.bottomOffset(id, t)

	// The ray must never hit the object itself or anything attached below it.
	ignore := editor.NewIgnoreSet()
	ignore.AddObject(id)
	for _, d := range s.scene.Descendants(id) {
		ignore.AddObject(d)
	}

	origin := rl.Vector3Add(t.Position, rl.Vector3Scale(editor.Up(), s.p.RayStartHeight))
	hit, ok := s.castBlocking(origin, ignore)
	if !ok {
		return false
	}

	scope.Record(id)

	pos := t.Position
	pos.Z = hit.Point.Z + offset + s.p.Clearance
	s.scene.SetPosition(id, pos)

	if align == AlignSurface {
		s.scene.SetRotation(id, alignToSurface(t.Rotation, hit.Normal))
	} else {
		s.scene.SetRotation(id, rl.QuaternionIdentity())
	}
	return true
}

// castBlocking casts straight down and retries past query-only hits by adding
// the specific component to the ignore set. Bounded by MaxAttempts so stacked
// trigger volumes cannot loop forever.
func (s *Snapper) castBlocking(origin rl.Vector3, ignore *editor.IgnoreSet) (editor.Hit, bool) {
	for attempt := 0; attempt < s.p.MaxAttempts; attempt++ {
		hit, ok := s.ray.Cast(origin, editor.Down(), s.p.RayDepth, ignore)
		if !ok {
			return editor.Hit{}, false
		}
		if s.componentCollision(hit.Object, hit.Component).Blocking() {
			return hit, true
		}
		ignore.AddComponent(hit.Component)
	}
	return editor.Hit{}, false
}

func (s *Snapper) componentCollision(obj editor.ObjectID, comp editor.ComponentID) editor.CollisionMode {
	for _, c := range s.scene.Components(obj) {
		if c.ID == comp {
			return c.Collision
		}
	}
	return editor.CollisionNone
}

// bottomOffset is the vertical distance from the object's position pivot to the
// lowest point of its representative geometry: a skeletal mesh if present, else
// a static mesh, else the first blocking collision primitive. Query-only
// components never qualify. With no qualifying component the pivot itself is
// the ground contact point.
func (s *Snapper) bottomOffset(id editor.ObjectID, t editor.Transform) float32 {
	comp, ok := representative(s.scene.Components(id))
	if !ok {
		return 0
	}
	box, ok := s.scene.ComponentLocalBounds(comp.ID)
	if !ok {
		return 0
	}
	worldBottom := s.scene.ComponentToWorld(comp.ID, rl.NewVector3(0, 0, box.Min.Z))
	return t.Position.Z - worldBottom.Z
}

func representative(comps []editor.Component) (editor.Component, bool) {
	for _, kind := range []editor.ComponentKind{editor.KindSkeletalMesh, editor.KindStaticMesh} {
		for _, c := range comps {
			if c.Kind == kind {
				return c, true
			}
		}
	}
	for _, c := range comps {
		if c.Collision.Blocking() {
			return c, true
		}
	}
	return editor.Component{}, false
}

// alignToSurface builds an orientation whose up axis is the surface normal and
// whose forward axis is the object's current horizontal facing projected onto
// the surface plane.
func alignToSurface(current rl.Quaternion, normal rl.Vector3) rl.Quaternion {
	forward := rl.Vector3RotateByQuaternion(editor.Forward(), current)
	forward.Z = 0
	if rl.Vector3Length(forward) < 1e-4 {
		forward = editor.Forward()
	}
	forward = rl.Vector3Normalize(forward)

	up := rl.Vector3Normalize(normal)
	right := rl.Vector3CrossProduct(forward, up)
	if rl.Vector3Length(right) < 1e-4 {
		// Normal parallel to the facing direction; nothing sensible to build.
		return current
	}
	right = rl.Vector3Normalize(right)
	forward = rl.Vector3Normalize(rl.Vector3CrossProduct(up, right))

	return rl.QuaternionFromMatrix(axesMatrix(right, forward, up))
}

// axesMatrix builds a rotation matrix whose columns are the world images of the
// local right (+X), forward (+Y) and up (+Z) axes.
func axesMatrix(right, forward, up rl.Vector3) rl.Matrix {
	return rl.Matrix{
		M0: right.X, M1: right.Y, M2: right.Z, M3: 0,
		M4: forward.X, M5: forward.Y, M6: forward.Z, M7: 0,
		M8: up.X, M9: up.Y, M10: up.Z, M11: 0,
		M12: 0, M13: 0, M14: 0, M15: 1,
	}
}
