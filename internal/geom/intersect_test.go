package geom

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randVec(r *rand.Rand, scale float32) rl.Vector3 {
	return rl.Vector3{
		X: (r.Float32()*2 - 1) * scale,
		Y: (r.Float32()*2 - 1) * scale,
		Z: (r.Float32()*2 - 1) * scale,
	}
}

func TestSphereVsSphereSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		c0, c1 := randVec(r, 10), randVec(r, 10)
		r0, r1 := r.Float32()*5, r.Float32()*5
		assert.Equal(t, SphereVsSphere(c0, r0, c1, r1), SphereVsSphere(c1, r1, c0, r0))
		assert.Equal(t, SpherePenetrationSq(c0, r0, c1, r1), SpherePenetrationSq(c1, r1, c0, r0))
	}
}

func TestSphereVsSphere(t *testing.T) {
	assert.True(t, SphereVsSphere(rl.Vector3{}, 1, rl.Vector3{X: 1.5}, 1))
	assert.False(t, SphereVsSphere(rl.Vector3{}, 1, rl.Vector3{X: 3}, 1))
	// touching is not overlapping
	assert.False(t, SphereVsSphere(rl.Vector3{}, 1, rl.Vector3{X: 2}, 1))
	assert.InDelta(t, 4-2.25, SpherePenetrationSq(rl.Vector3{}, 1, rl.Vector3{X: 1.5}, 1), 1e-5)
}

func TestOBBvsOBBAgreesWithAABB(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		ca, cb := randVec(r, 6), randVec(r, 6)
		sa := rl.Vector3{X: 0.2 + r.Float32()*4, Y: 0.2 + r.Float32()*4, Z: 0.2 + r.Float32()*4}
		sb := rl.Vector3{X: 0.2 + r.Float32()*4, Y: 0.2 + r.Float32()*4, Z: 0.2 + r.Float32()*4}

		want := NewAABBFromCenter(ca, sa).Intersects(NewAABBFromCenter(cb, sb))
		got, _ := OBBvsOBB(NewAABBasOBB(ca, sa), NewAABBasOBB(cb, sb))
		require.Equal(t, want, got, "boxes %v/%v and %v/%v", ca, sa, cb, sb)
	}
}

func TestOBBvsOBBMinimumAxis(t *testing.T) {
	a := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})
	b := NewAABBasOBB(rl.Vector3{X: 1.8, Y: 0.5}, rl.Vector3{X: 2, Y: 2, Z: 2})

	ok, res := OBBvsOBB(a, b)
	require.True(t, ok)
	assert.Equal(t, 0, res.Axis0)
	assert.Equal(t, -1, res.Axis1)
	assert.InDelta(t, 0.2, res.Penetration, 1e-5)
	assert.InDelta(t, 1.0, res.Normal.X, 1e-6)
	assert.InDelta(t, 1.8, res.AxisDist0[0], 1e-6)
	assert.InDelta(t, 0.5, res.AxisDist1[1], 1e-6)
}

func TestOBBvsOBBRotated(t *testing.T) {
	a := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 0.7853982) // 45 degrees

	// Rotated cube's corner reaches 1.414 along X.
	near := NewOBB(rl.Vector3{X: 2.3}, rl.Vector3{X: 1, Y: 1, Z: 1}, q)
	far := NewOBB(rl.Vector3{X: 2.5}, rl.Vector3{X: 1, Y: 1, Z: 1}, q)

	ok, _ := OBBvsOBB(a, near)
	assert.True(t, ok)
	ok, _ = OBBvsOBB(a, far)
	assert.False(t, ok)
}

func TestOBBvsOBBEdgeAxisSeparates(t *testing.T) {
	// Every face axis overlaps; only the cross product of A's Z edge and
	// B's X edge separates the boxes.
	qa := rl.QuaternionFromAxisAngle(rl.Vector3{Z: 1}, 0.7853982)
	qb := rl.QuaternionFromAxisAngle(rl.Vector3{X: 1}, 0.7853982)
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, qa)
	b := NewOBB(rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: 1, Z: 1}, qb)

	d := rl.Vector3Subtract(b.Center, a.Center)
	for _, axis := range append(a.Axes[:], b.Axes[:]...) {
		overlap := projectedRadius(a, axis) + projectedRadius(b, axis) - absf(rl.Vector3DotProduct(d, axis))
		require.Greater(t, overlap, float32(0))
	}

	ok, _ := OBBvsOBB(a, b)
	assert.False(t, ok)
}

func TestSphereVsOBB(t *testing.T) {
	box := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	ok, pen := SphereVsOBB(rl.Vector3{X: 1.5}, 1, box)
	assert.True(t, ok)
	assert.InDelta(t, 0.75, pen, 1e-5)

	ok, _ = SphereVsOBB(rl.Vector3{X: 1.5, Y: 1.5}, 0.16, box)
	assert.False(t, ok)

	// center inside
	ok, pen = SphereVsOBB(rl.Vector3{}, 0.25, box)
	assert.True(t, ok)
	assert.InDelta(t, 0.25, pen, 1e-6)
}
