package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// SphereVsOBB tests a sphere against a box via the closest point on the box.
// The second return is radiusSq minus the squared distance to that point,
// positive on overlap.
func SphereVsOBB(center rl.Vector3, radiusSq float32, o OBB) (bool, float32) {
	closest, _ := ClosestPointOnOBB(o, center)
	pen := radiusSq - LengthSq(rl.Vector3Subtract(closest, center))
	return pen > 0, pen
}

// IntersectsSphere tests if an OBB intersects with a sphere
func (o OBB) IntersectsSphere(center rl.Vector3, radius float32) bool {
	ok, _ := SphereVsOBB(center, radius*radius, o)
	return ok
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (o OBB) IntersectsOBB(b OBB) bool {
	ok, _ := OBBvsOBB(o, b)
	return ok
}
