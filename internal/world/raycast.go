package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"level-editor/internal/editor"
)

// Cast implements editor.RayQuery: the single nearest hit among components
// that participate in queries at all (query-only volumes included, matching
// visibility-channel semantics). The ignore set skips whole objects or
// individual components.
func (s *Scene) Cast(origin, dir rl.Vector3, maxDist float32, ignore *editor.IgnoreSet) (editor.Hit, bool) {
	ray := rl.NewRay(origin, dir)
	var best editor.Hit
	found := false
	for _, id := range s.order {
		if ignore.HasObject(id) {
			continue
		}
		obj := s.objects[id]
		for _, cid := range s.byObject[id] {
			c := s.components[cid]
			if !c.collision.Queryable() || ignore.HasComponent(cid) {
				continue
			}
			col := rl.GetRayCollisionBox(ray, componentAABB(obj, c))
			if !col.Hit || col.Distance > maxDist {
				continue
			}
			if !found || col.Distance < best.Distance {
				best = editor.Hit{
					Object:    id,
					Component: cid,
					Point:     col.Point,
					Normal:    col.Normal,
					Distance:  col.Distance,
				}
				found = true
			}
		}
	}
	return best, found
}

// componentAABB is the world-space box for one component: local bounds scaled
// by the owner's scale around its position. Rotation is not applied; boxes stay
// axis-aligned like the physics AABBs this store grew out of.
func componentAABB(obj *Object, c *component) rl.BoundingBox {
	t := obj.Transform
	lo := rl.Vector3Add(t.Position, rl.Vector3Multiply(c.bounds.Min, t.Scale))
	hi := rl.Vector3Add(t.Position, rl.Vector3Multiply(c.bounds.Max, t.Scale))
	return rl.NewBoundingBox(
		rl.NewVector3(min(lo.X, hi.X), min(lo.Y, hi.Y), min(lo.Z, hi.Z)),
		rl.NewVector3(max(lo.X, hi.X), max(lo.Y, hi.Y), max(lo.Z, hi.Z)),
	)
}
