package geom

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox() AABB {
	return AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}
}

func TestRayVsAABB(t *testing.T) {
	tests := []struct {
		name    string
		ray     Ray
		limit   float32
		hit     bool
		wantMin float32
	}{
		{"straight on", NewRay(rl.Vector3{X: -5}, rl.Vector3{X: 1}), 100, true, 4},
		{"parallel miss", NewRay(rl.Vector3{X: -5, Y: 2}, rl.Vector3{X: 1}), 100, false, 0},
		{"pointing away", NewRay(rl.Vector3{X: -5}, rl.Vector3{X: -1}), 100, false, 0},
		{"beyond limit", NewRay(rl.Vector3{X: -5}, rl.Vector3{X: 1}), 3, false, 0},
		{"scaled direction", NewRay(rl.Vector3{X: -5}, rl.Vector3{X: 8}), 1, true, 0.5},
		{"diagonal", NewRay(rl.Vector3{X: -3, Y: -3, Z: 0}, rl.Vector3{X: 1, Y: 1}), 100, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, tMin, _ := RayVsAABB(tt.ray, unitBox(), tt.limit)
			require.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.wantMin, tMin, 1e-5)
			}
		})
	}
}

func TestRayVsAABBOriginInside(t *testing.T) {
	hit, tMin, tMax := RayVsAABB(NewRay(rl.Vector3{}, rl.Vector3{Z: 1}), unitBox(), 10)
	assert.True(t, hit)
	assert.Less(t, tMin, float32(0))
	assert.InDelta(t, 1, tMax, 1e-6)
}

func TestRayVsAABBDegenerateDirection(t *testing.T) {
	hit, _, _ := RayVsAABB(NewRay(rl.Vector3{X: -5}, rl.Vector3{}), unitBox(), 10)
	assert.False(t, hit)
}

func TestRayVsOBB(t *testing.T) {
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 0.7853982)
	box := NewOBB(rl.Vector3{X: 10}, rl.Vector3{X: 1, Y: 1, Z: 1}, q)

	// The rotated cube's corner points back at the origin, sqrt(2) from its center.
	hit, tMin, _ := RayVsOBB(NewRay(rl.Vector3{}, rl.Vector3{X: 1}), box, 100)
	require.True(t, hit)
	assert.InDelta(t, 10-1.4142135, tMin, 1e-4)

	hit, _, _ = RayVsOBB(NewRay(rl.Vector3{Y: 1.2}, rl.Vector3{X: 1}), box, 100)
	assert.False(t, hit)
}

func TestRayVsSphere(t *testing.T) {
	center := rl.Vector3{Z: 10}

	hit, inside := RayVsSphere(NewRay(rl.Vector3{}, rl.Vector3{Z: 1}), center, 4)
	assert.True(t, hit)
	assert.False(t, inside)

	hit, _ = RayVsSphere(NewRay(rl.Vector3{}, rl.Vector3{Z: -1}), center, 4)
	assert.False(t, hit)

	hit, _ = RayVsSphere(NewRay(rl.Vector3{X: 3}, rl.Vector3{Z: 1}), center, 4)
	assert.False(t, hit)

	hit, inside = RayVsSphere(NewRay(rl.Vector3{Z: 9}, rl.Vector3{Z: -1}), center, 4)
	assert.True(t, hit)
	assert.True(t, inside)
}
