package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// ClosestPointOnLineSegment returns the point on segment ab nearest to p.
func ClosestPointOnLineSegment(a, b, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	denom := LengthSq(ab)
	if denom < 1e-12 {
		return a
	}
	t := clampf(rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab)/denom, 0, 1)
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}

// ClosestPointOnAABB clamps p into the box.
func ClosestPointOnAABB(box AABB, p rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clampf(p.X, box.Min.X, box.Max.X),
		Y: clampf(p.Y, box.Min.Y, box.Max.Y),
		Z: clampf(p.Z, box.Min.Z, box.Max.Z),
	}
}

// ClosestPointOnOBB returns the point of the box nearest to p, along with
// p's unclamped coordinates in box space. A point whose local coordinates are
// within the extents on every axis is inside and is returned unchanged.
func ClosestPointOnOBB(o OBB, p rl.Vector3) (rl.Vector3, rl.Vector3) {
	local := o.Local(p)
	if Inside(o, local) {
		return p, local
	}
	clamped := rl.Vector3{
		X: clampf(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
	return o.World(clamped), local
}

// Inside reports whether box-space coordinates lie within the extents.
func Inside(o OBB, local rl.Vector3) bool {
	return absf(local.X) <= o.HalfSize.X &&
		absf(local.Y) <= o.HalfSize.Y &&
		absf(local.Z) <= o.HalfSize.Z
}

// ExitNormal returns the world-space face normal of the face nearest to a
// point given in box space. Used when a point lies inside the box and the
// closest point gives no direction.
func ExitNormal(o OBB, local rl.Vector3) rl.Vector3 {
	best := 0
	bestGap := o.HalfSize.X - absf(local.X)
	for i := 1; i < 3; i++ {
		gap := o.Extent(i) - absf(component(local, i))
		if gap < bestGap {
			best, bestGap = i, gap
		}
	}
	return towards(o.Axes[best], component(local, best))
}
