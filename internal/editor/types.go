package editor

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ObjectID identifies a scene object owned by the host. 0 is never a valid ID.
type ObjectID uint64

// ComponentID identifies a geometry/collision component attached to an object.
type ComponentID uint64

// Transform is an object's world transform: position, rotation quaternion, non-uniform scale.
type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// NewTransform returns the identity transform (origin, no rotation, scale 1).
func NewTransform() Transform {
	return Transform{
		Position: rl.NewVector3(0, 0, 0),
		Rotation: rl.QuaternionIdentity(),
		Scale:    rl.NewVector3(1, 1, 1),
	}
}

// Box is an axis-aligned box in a component's local space.
type Box struct {
	Min rl.Vector3
	Max rl.Vector3
}

// ComponentKind says what geometry a component carries. Kind priority matters for
// bottom-offset selection: skeletal first, then static mesh, then collision primitives.
type ComponentKind int

const (
	KindPrimitive ComponentKind = iota
	KindStaticMesh
	KindSkeletalMesh
)

// CollisionMode mirrors the host's collision configuration for one component.
type CollisionMode int

const (
	CollisionNone CollisionMode = iota
	CollisionQueryOnly
	CollisionPhysicsOnly
	CollisionQueryAndPhysics
)

// Blocking reports whether the component permits physical contact, as opposed to
// query-only trigger volumes (which still block visibility-style ray queries).
func (m CollisionMode) Blocking() bool {
	return m == CollisionPhysicsOnly || m == CollisionQueryAndPhysics
}

// Queryable reports whether a ray query can hit the component at all.
func (m CollisionMode) Queryable() bool {
	return m != CollisionNone
}

// Component is the host's description of one attached geometry/collision component.
type Component struct {
	ID        ComponentID
	Kind      ComponentKind
	Collision CollisionMode
}

// Hit is a single nearest result from a ray query.
type Hit struct {
	Object    ObjectID
	Component ComponentID
	Point     rl.Vector3
	Normal    rl.Vector3
	Distance  float32
}

// IgnoreSet lists objects and individual components a ray query must skip.
type IgnoreSet struct {
	objects    map[ObjectID]struct{}
	components map[ComponentID]struct{}
}

// NewIgnoreSet returns an empty ignore set.
func NewIgnoreSet() *IgnoreSet {
	return &IgnoreSet{
		objects:    make(map[ObjectID]struct{}),
		components: make(map[ComponentID]struct{}),
	}
}

// AddObject adds an object (all of its components) to the set.
func (s *IgnoreSet) AddObject(id ObjectID) {
	s.objects[id] = struct{}{}
}

// AddComponent adds one specific component to the set.
func (s *IgnoreSet) AddComponent(id ComponentID) {
	s.components[id] = struct{}{}
}

// HasObject reports whether the object is ignored. Nil sets ignore nothing.
func (s *IgnoreSet) HasObject(id ObjectID) bool {
	if s == nil {
		return false
	}
	_, ok := s.objects[id]
	return ok
}

// HasComponent reports whether the component is ignored. Nil sets ignore nothing.
func (s *IgnoreSet) HasComponent(id ComponentID) bool {
	if s == nil {
		return false
	}
	_, ok := s.components[id]
	return ok
}

// World axes. Right-handed, Z up, forward +Y (so yaw is rotation about Z and the
// ground plane is XY).

// Up returns the world up axis (0, 0, 1).
func Up() rl.Vector3 { return rl.NewVector3(0, 0, 1) }

// Down returns the world down axis (0, 0, -1).
func Down() rl.Vector3 { return rl.NewVector3(0, 0, -1) }

// Forward returns the world forward axis (0, 1, 0).
func Forward() rl.Vector3 { return rl.NewVector3(0, 1, 0) }

// Right returns the world right axis (1, 0, 0).
func Right() rl.Vector3 { return rl.NewVector3(1, 0, 0) }

// CoordSpace selects which frame manipulation axes come from.
type CoordSpace int

const (
	// CoordWorld manipulates along scene-global axes.
	CoordWorld CoordSpace = iota
	// CoordLocal manipulates along the first selected object's local axes.
	CoordLocal
)

// WidgetMode is the host gizmo mode (set by the 1/2/3 shortcuts).
type WidgetMode int

const (
	WidgetTranslate WidgetMode = iota
	WidgetRotate
	WidgetScale
)
