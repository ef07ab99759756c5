package geom

import rl "github.com/gen2brain/raylib-go/raylib"

type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// SpherePenetrationSq returns (r0+r1)^2 - |c1-c0|^2. The value is positive
// when the spheres overlap and negative when they are separated.
func SpherePenetrationSq(c0 rl.Vector3, r0 float32, c1 rl.Vector3, r1 float32) float32 {
	r := r0 + r1
	return r*r - LengthSq(rl.Vector3Subtract(c1, c0))
}

// SphereVsSphere reports whether two spheres overlap, without a square root.
func SphereVsSphere(c0 rl.Vector3, r0 float32, c1 rl.Vector3, r1 float32) bool {
	return SpherePenetrationSq(c0, r0, c1, r1) > 0
}

func (s Sphere) Intersects(o Sphere) bool {
	return SphereVsSphere(s.Center, s.Radius, o.Center, o.Radius)
}
