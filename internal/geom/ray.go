package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// degenerateDirSq is the squared direction length below which a ray is ignored.
	degenerateDirSq = 1e-12
	// slabEpsilon treats a direction component as parallel to its slab.
	slabEpsilon = 1e-8
)

// Ray is parameterised as Origin + Direction*t. Direction need not be unit
// length; t is measured in multiples of it.
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

func NewRay(origin, direction rl.Vector3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Direction, t))
}

// Degenerate reports a direction too short to test against.
func (r Ray) Degenerate() bool {
	return LengthSq(r.Direction) < degenerateDirSq
}

// RayVsAABB intersects a ray with a box using the slab method. A hit with a
// negative tMin means the origin is inside the box.
func RayVsAABB(r Ray, box AABB, tLimit float32) (hit bool, tMin, tMax float32) {
	if r.Degenerate() {
		return false, 0, 0
	}
	tMin = -math.MaxFloat32
	tMax = math.MaxFloat32

	o := toArray(r.Origin)
	d := toArray(r.Direction)
	lo := toArray(box.Min)
	hi := toArray(box.Max)

	for i := 0; i < 3; i++ {
		if absf(d[i]) < slabEpsilon {
			if o[i] < lo[i] || o[i] > hi[i] {
				return false, tMin, tMax
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false, tMin, tMax
		}
	}

	hit = tMax >= 0 && tMin < tLimit && tMax >= tMin
	return hit, tMin, tMax
}

// RayVsOBB moves the ray into box space and tests it against an
// origin-centered AABB of the same extents.
func RayVsOBB(r Ray, o OBB, tLimit float32) (bool, float32, float32) {
	local := Ray{Origin: o.Local(r.Origin), Direction: o.LocalDirection(r.Direction)}
	box := AABB{Min: rl.Vector3Negate(o.HalfSize), Max: o.HalfSize}
	return RayVsAABB(local, box, tLimit)
}

// RayVsSphere is a sign-only test: no root is computed. inside reports that
// the origin already lies within the sphere.
func RayVsSphere(r Ray, center rl.Vector3, radiusSq float32) (hit, inside bool) {
	m := rl.Vector3Subtract(r.Origin, center)
	c := LengthSq(m) - radiusSq
	if c <= 0 {
		return true, true
	}
	if r.Degenerate() {
		return false, false
	}
	b := rl.Vector3DotProduct(r.Direction, m)
	if b >= 0 {
		// pointing away
		return false, false
	}
	return b*b-LengthSq(r.Direction)*c >= 0, false
}
