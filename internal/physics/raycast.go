package physics

import (
	"math"
	"sort"

	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collidable is anything with a bounding sphere.
type Collidable interface {
	CollisionCenter() rl.Vector3
	CollisionRadius() float32
}

// NarrowphaseCollidable additionally exposes its box hierarchy.
type NarrowphaseCollidable interface {
	Collidable
	CollisionMode() components.CollisionMode
	CollisionVolume() *geom.OBBTree // nil for sphere-only objects
}

// RayHit is the result of CastFull. Leaf is the OBB leaf that was hit, or -1
// when the object's bounding sphere was used.
type RayHit[T any] struct {
	Object   T
	Distance float32 // in multiples of the ray direction
	Leaf     int
}

// CastBroadphase returns the object whose bounding sphere the ray hits with
// the nearest center. An object containing the ray origin is returned
// immediately.
func CastBroadphase[T Collidable](ray geom.Ray, objects []T) (T, bool) {
	var best T
	found := false
	bestDistSq := float32(math.MaxFloat32)

	for _, o := range objects {
		c := o.CollisionCenter()
		r := o.CollisionRadius()
		hit, inside := geom.RayVsSphere(ray, c, r*r)
		if inside {
			return o, true
		}
		if !hit {
			continue
		}
		distSq := geom.LengthSq(rl.Vector3Subtract(c, ray.Origin))
		if distSq >= bestDistSq {
			continue
		}
		best, bestDistSq, found = o, distSq, true
	}
	return best, found
}

// CastFull returns the nearest object the ray hits within tLimit. Objects in
// FullCollision mode are tested against their box hierarchy, others against
// their bounding sphere; objects in NoCollision mode are ignored.
func CastFull[T NarrowphaseCollidable](ray geom.Ray, objects []T, tLimit float32) (RayHit[T], bool) {
	type candidate struct {
		obj   T
		entry float32
	}
	var cands []candidate
	for _, o := range objects {
		if o.CollisionMode() == components.NoCollision {
			continue
		}
		if t, ok := sphereEntry(ray, o.CollisionCenter(), o.CollisionRadius()); ok && t < tLimit {
			cands = append(cands, candidate{obj: o, entry: t})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].entry < cands[j].entry
	})

	best := RayHit[T]{Leaf: -1, Distance: tLimit}
	found := false
	for _, c := range cands {
		if c.entry >= best.Distance {
			break
		}
		tree := c.obj.CollisionVolume()
		if c.obj.CollisionMode() != components.FullCollision || tree == nil {
			best = RayHit[T]{Object: c.obj, Distance: c.entry, Leaf: -1}
			found = true
			continue
		}
		if leaf, t, ok := geom.RayVsHierarchy(ray, tree, best.Distance); ok && t < best.Distance {
			best = RayHit[T]{Object: c.obj, Distance: t, Leaf: leaf}
			found = true
		}
	}
	return best, found
}

// sphereEntry returns where the ray enters the sphere, clamped to 0 when the
// origin is inside.
func sphereEntry(ray geom.Ray, center rl.Vector3, radius float32) (float32, bool) {
	if ray.Degenerate() {
		return 0, false
	}
	m := rl.Vector3Subtract(ray.Origin, center)
	a := geom.LengthSq(ray.Direction)
	b := rl.Vector3DotProduct(m, ray.Direction)
	c := geom.LengthSq(m) - radius*radius
	if c <= 0 {
		return 0, true
	}
	if b > 0 {
		return 0, false
	}
	disc := b*b - a*c
	if disc < 0 {
		return 0, false
	}
	return (-b - sqrtf(disc)) / a, true
}

// Raycast implements engine.WorldAccess over the bodies of the last frame.
// The direction is normalised so distances are in world units.
func (w *World) Raycast(ray geom.Ray, maxDistance float32) (engine.RaycastResult, bool) {
	if ray.Degenerate() || maxDistance <= 0 {
		return engine.RaycastResult{}, false
	}
	ray.Direction = rl.Vector3Normalize(ray.Direction)

	hit, ok := CastFull(ray, w.bodies, maxDistance)
	if !ok {
		return engine.RaycastResult{}, false
	}
	return engine.RaycastResult{
		GameObject: hit.Object.Object,
		Point:      ray.At(hit.Distance),
		Distance:   hit.Distance,
		Leaf:       hit.Leaf,
	}, true
}

// Nearby implements engine.WorldAccess using the world's spatial index.
func (w *World) Nearby(point rl.Vector3, radius float32) []*engine.GameObject {
	return w.index.QueryNear(point, radius, nil)
}

var _ engine.WorldAccess = (*World)(nil)
