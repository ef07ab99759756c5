package physics

import (
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// refineSteps bounds the search iterations when a swept sphere clips the
// corner region of a box.
const refineSteps = 32

// TestContinuousSphereCollision finds when two spheres moving linearly by
// disp0 and disp1 over the interval first touch, solving
// |S + V t|^2 = R^2 for the smallest t in [0,1].
func TestContinuousSphereCollision(pos0, disp0 rl.Vector3, r0 float32, pos1, disp1 rl.Vector3, r1 float32) (ContinuousCollisionTestResult, bool) {
	res := ContinuousCollisionTestResult{IntersectionTime: 1}
	in := &res.InterimCalculations
	in.Pos0, in.Pos1 = pos0, pos1
	in.Displacement0, in.Displacement1 = disp0, disp1
	in.S = rl.Vector3Subtract(pos1, pos0)
	in.V = rl.Vector3Subtract(disp1, disp0)
	in.R = r0 + r1

	in.C = geom.LengthSq(in.S) - in.R*in.R
	if in.C < 0 {
		// already overlapping
		fillSphereContact(&res, 0, r0)
		return res, true
	}

	in.A = geom.LengthSq(in.V)
	in.B = rl.Vector3DotProduct(in.V, in.S)
	if in.B >= 0 {
		// not closing
		return res, false
	}

	in.D = in.B*in.B - in.A*in.C
	if in.D < 0 {
		return res, false
	}

	t := (-in.B - sqrtf(in.D)) / in.A
	if t > 1 {
		return res, false
	}
	if t < 0 {
		t = 0
	}
	fillSphereContact(&res, t, r0)
	return res, true
}

func fillSphereContact(res *ContinuousCollisionTestResult, t, r0 float32) {
	in := res.InterimCalculations
	res.IntersectionTime = t
	res.CollisionPos0 = rl.Vector3Add(in.Pos0, rl.Vector3Scale(in.Displacement0, t))
	res.CollisionPos1 = rl.Vector3Add(in.Pos1, rl.Vector3Scale(in.Displacement1, t))
	res.ContactNormal = rl.Vector3Subtract(res.CollisionPos1, res.CollisionPos0)
	res.NormalisedContactNormal = normalizeOr(res.ContactNormal, rl.Vector3Normalize(in.S))
	res.ContactPoint = rl.Vector3Add(res.CollisionPos0, rl.Vector3Scale(res.NormalisedContactNormal, r0))
}

// TestContinuousSphereVsOBBCollision sweeps a sphere against a stationary
// box. The sweep is first tested as a ray against the box grown by the
// radius; if the entry point lands in a corner region where the grown box
// overestimates the sphere, the first touch is found by searching the
// distance to the closest point on the box along the sweep.
func TestContinuousSphereVsOBBCollision(pos0, disp0 rl.Vector3, r0 float32, box geom.OBB) (ContinuousCollisionTestResult, bool) {
	res := ContinuousCollisionTestResult{IntersectionTime: 1}
	in := &res.InterimCalculations
	in.Pos0, in.Pos1 = pos0, box.Center
	in.Displacement0 = disp0
	in.S = rl.Vector3Subtract(box.Center, pos0)
	in.V = rl.Vector3Negate(disp0)
	in.R = r0

	rSq := r0 * r0
	distSqAt := func(t float32) float32 {
		c := rl.Vector3Add(pos0, rl.Vector3Scale(disp0, t))
		closest, _ := geom.ClosestPointOnOBB(box, c)
		return geom.LengthSq(rl.Vector3Subtract(closest, c))
	}

	if distSqAt(0) < rSq {
		fillBoxContact(&res, box, 0)
		return res, true
	}

	grown := box
	grown.HalfSize = rl.Vector3AddValue(box.HalfSize, r0)
	hit, tMin, _ := geom.RayVsOBB(geom.NewRay(pos0, disp0), grown, 1)
	if !hit {
		return res, false
	}
	t := tMin
	if t < 0 {
		t = 0
	}

	if distSqAt(t) > rSq*(1+1e-4) {
		// Corner region: the squared distance is convex along the sweep, so
		// find its minimum, then the first crossing before it.
		lo, hi := t, float32(1)
		for i := 0; i < refineSteps; i++ {
			m1 := lo + (hi-lo)/3
			m2 := hi - (hi-lo)/3
			if distSqAt(m1) < distSqAt(m2) {
				hi = m2
			} else {
				lo = m1
			}
		}
		tMinDist := (lo + hi) / 2
		if distSqAt(tMinDist) > rSq {
			return res, false
		}
		a, b := t, tMinDist
		for i := 0; i < refineSteps; i++ {
			mid := (a + b) / 2
			if distSqAt(mid) > rSq {
				a = mid
			} else {
				b = mid
			}
		}
		t = b
	}

	fillBoxContact(&res, box, t)
	return res, true
}

func fillBoxContact(res *ContinuousCollisionTestResult, box geom.OBB, t float32) {
	in := res.InterimCalculations
	center := rl.Vector3Add(in.Pos0, rl.Vector3Scale(in.Displacement0, t))
	closest, local := geom.ClosestPointOnOBB(box, center)

	n := rl.Vector3Subtract(closest, center)
	if geom.LengthSq(n) < 1e-12 {
		// center inside the box: push out through the nearest face
		n = rl.Vector3Negate(geom.ExitNormal(box, local))
	}

	res.IntersectionTime = t
	res.CollisionPos0 = center
	res.CollisionPos1 = box.Center
	res.ContactNormal = n
	res.NormalisedContactNormal = normalizeOr(n, rl.Vector3Normalize(in.S))
	res.ContactPoint = closest
}
