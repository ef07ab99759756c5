package geom

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestClosestPointOnOBBInsideIsIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	q := rl.QuaternionFromAxisAngle(rl.Vector3Normalize(rl.Vector3{X: 1, Y: 2, Z: 3}), 1.1)
	box := NewOBB(rl.Vector3{X: 4, Y: -2, Z: 1}, rl.Vector3{X: 2, Y: 1, Z: 3}, q)

	for i := 0; i < 500; i++ {
		local := rl.Vector3{
			X: (r.Float32()*2 - 1) * 1.9,
			Y: (r.Float32()*2 - 1) * 0.9,
			Z: (r.Float32()*2 - 1) * 2.9,
		}
		p := box.World(local)
		got, dist := ClosestPointOnOBB(box, p)
		assert.Equal(t, p, got)
		assert.True(t, Inside(box, dist))
	}
}

func TestClosestPointOnOBBOutside(t *testing.T) {
	box := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	got, local := ClosestPointOnOBB(box, rl.Vector3{X: 3, Y: 0.5, Z: -4})
	assert.InDelta(t, 1, got.X, 1e-6)
	assert.InDelta(t, 0.5, got.Y, 1e-6)
	assert.InDelta(t, -1, got.Z, 1e-6)
	assert.Equal(t, rl.Vector3{X: 3, Y: 0.5, Z: -4}, local)
	assert.False(t, Inside(box, local))
}

func TestClosestPointOnLineSegment(t *testing.T) {
	a := rl.Vector3{}
	b := rl.Vector3{X: 10}

	assert.Equal(t, rl.Vector3{X: 4}, ClosestPointOnLineSegment(a, b, rl.Vector3{X: 4, Y: 3}))
	assert.Equal(t, a, ClosestPointOnLineSegment(a, b, rl.Vector3{X: -5, Y: 1}))
	assert.Equal(t, b, ClosestPointOnLineSegment(a, b, rl.Vector3{X: 15}))
	// degenerate segment
	assert.Equal(t, a, ClosestPointOnLineSegment(a, a, rl.Vector3{Y: 1}))
}

func TestClosestPointOnAABB(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}
	assert.Equal(t, rl.Vector3{X: 1, Y: 0.5, Z: -1}, ClosestPointOnAABB(box, rl.Vector3{X: 5, Y: 0.5, Z: -2}))
	assert.Equal(t, rl.Vector3{X: 0.1}, ClosestPointOnAABB(box, rl.Vector3{X: 0.1}))
}

func TestExitNormal(t *testing.T) {
	box := NewAABBasOBB(rl.Vector3{}, rl.Vector3{X: 4, Y: 2, Z: 4})
	n := ExitNormal(box, rl.Vector3{X: 0.5, Y: -0.8, Z: 0.2})
	assert.Equal(t, rl.Vector3{Y: -1}, n)
}
