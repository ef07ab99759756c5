package physics

import (
	"collide3d/internal/components"
	"collide3d/internal/geom"
)

// checkBroadphase runs the sphere test for a pair.
func checkBroadphase(a, b *Body) (CollisionDetectionResult, bool) {
	res := newResult()
	res.Type = SphereVsSphere
	pen := geom.SpherePenetrationSq(a.Position(), a.Radius(), b.Position(), b.Radius())
	res.BroadphaseOverlap = pen > 0
	res.BroadphasePenetrationSq = absf(pen)
	return res, res.BroadphaseOverlap
}

// checkFullCollision refines a broadphase hit according to both objects'
// collision modes.
func checkFullCollision(a, b *Body, res CollisionDetectionResult) (CollisionDetectionResult, bool) {
	ma, mb := a.Mode(), b.Mode()
	switch {
	case ma == components.BroadphaseCollisionOnly && mb == components.BroadphaseCollisionOnly:
		res.Type = SphereVsSphere
		return res, true

	case ma == components.FullCollision && mb == components.FullCollision:
		res.Type = OBBvsOBB
		hit, ok := geom.TestHierarchy(a.Box.Tree, b.Box.Tree)
		if !ok {
			return res, false
		}
		res.SAT = hit.SAT
		res.Penetration = hit.SAT.Penetration
		res.Leaf0, res.Leaf1 = hit.Leaf0, hit.Leaf1
		return res, true

	case ma == components.FullCollision:
		res.Type = SphereVsOBB
		r := b.Radius()
		leaf, penSq, ok := geom.TestSphereHierarchy(b.Position(), r*r, a.Box.Tree)
		if !ok {
			return res, false
		}
		res.Leaf0 = leaf
		res.Penetration = spherePenetration(r, penSq)
		return res, true

	default:
		res.Type = SphereVsOBB
		r := a.Radius()
		leaf, penSq, ok := geom.TestSphereHierarchy(a.Position(), r*r, b.Box.Tree)
		if !ok {
			return res, false
		}
		res.Leaf1 = leaf
		res.Penetration = spherePenetration(r, penSq)
		return res, true
	}
}

// spherePenetration converts radiusSq - distSq back into a linear depth.
func spherePenetration(r, penSq float32) float32 {
	distSq := r*r - penSq
	if distSq < 0 {
		distSq = 0
	}
	return r - sqrtf(distSq)
}

// checkCollision is the full discrete test for a pair: broadphase, then
// narrowphase. The result describes the last stage reached.
func checkCollision(a, b *Body) (CollisionDetectionResult, bool, bool) {
	res, ok := checkBroadphase(a, b)
	if !ok {
		return res, false, false
	}
	res, ok = checkFullCollision(a, b, res)
	return res, true, ok
}
