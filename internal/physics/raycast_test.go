package physics

import (
	"testing"

	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldRaycastSpheres(t *testing.T) {
	scene := engine.NewScene("s")
	far := addSphere(scene, "far", rl.Vector3{Z: 10}, 1)
	near := addSphere(scene, "near", rl.Vector3{Z: 5}, 1)
	w := newTestWorld(t, scene, DefaultConfig())
	w.RunPhysicsCycle(0)

	// The direction is normalised, so distances are in world units.
	hit, ok := w.Raycast(geom.NewRay(rl.Vector3{}, rl.Vector3{Z: 2}), 100)
	require.True(t, ok)
	assert.Same(t, near, hit.GameObject)
	assert.InDelta(t, 4, hit.Distance, 1e-5)
	assert.InDelta(t, 4, hit.Point.Z, 1e-5)
	assert.Equal(t, -1, hit.Leaf)

	_, ok = w.Raycast(geom.NewRay(rl.Vector3{}, rl.Vector3{Z: 1}), 3)
	assert.False(t, ok)

	hit, ok = w.Raycast(geom.NewRay(rl.Vector3{Z: 20}, rl.Vector3{Z: -1}), 100)
	require.True(t, ok)
	assert.Same(t, far, hit.GameObject)

	_, ok = w.Raycast(geom.NewRay(rl.Vector3{}, rl.Vector3{}), 100)
	assert.False(t, ok)
}

func TestWorldRaycastHierarchy(t *testing.T) {
	scene := engine.NewScene("s")
	rooms, box := addBox(scene, "rooms", rl.Vector3{}, rl.Vector3{X: 10, Y: 2, Z: 2})
	id := rl.QuaternionIdentity()
	left := box.AddBox(0, rl.Vector3{X: -3}, rl.Vector3{X: 4, Y: 2, Z: 2}, id)
	box.AddBox(0, rl.Vector3{X: 3}, rl.Vector3{X: 4, Y: 2, Z: 2}, id)

	w := newTestWorld(t, scene, DefaultConfig())
	w.RunPhysicsCycle(0)

	hit, ok := w.Raycast(geom.NewRay(rl.Vector3{X: -10}, rl.Vector3{X: 1}), 100)
	require.True(t, ok)
	assert.Same(t, rooms, hit.GameObject)
	assert.Equal(t, left, hit.Leaf)
	assert.InDelta(t, 5, hit.Distance, 1e-4)

	// Through the gap between the rooms: inside the bounding sphere and the
	// root box, but no leaf.
	_, ok = w.Raycast(geom.NewRay(rl.Vector3{Y: 5}, rl.Vector3{Y: -1}), 100)
	assert.False(t, ok)
}

func TestCastFullPrefersNearestBoxOverNearerSphere(t *testing.T) {
	scene := engine.NewScene("s")
	// The wide box's bounding sphere is entered first, but the thin box
	// itself lies beyond the small sphere.
	addBox(scene, "slab", rl.Vector3{Z: 10}, rl.Vector3{X: 10, Y: 10, Z: 0.2})
	ball := addSphere(scene, "ball", rl.Vector3{Z: 7}, 1)
	w := newTestWorld(t, scene, DefaultConfig())
	w.RunPhysicsCycle(0)

	hit, ok := CastFull(geom.NewRay(rl.Vector3{}, rl.Vector3{Z: 1}), w.bodies, 100)
	require.True(t, ok)
	assert.Same(t, ball, hit.Object.Object)
	assert.InDelta(t, 6, hit.Distance, 1e-5)
}

func TestCastBroadphase(t *testing.T) {
	scene := engine.NewScene("s")
	addSphere(scene, "far", rl.Vector3{Z: 10}, 1)
	near := addSphere(scene, "near", rl.Vector3{Z: 5}, 1)
	around := addSphere(scene, "around", rl.Vector3{Z: 20}, 30)
	w := newTestWorld(t, scene, DefaultConfig())
	w.RunPhysicsCycle(0)

	ray := geom.NewRay(rl.Vector3{}, rl.Vector3{Z: 1})

	// An object containing the origin wins outright.
	got, ok := CastBroadphase(ray, w.bodies)
	require.True(t, ok)
	assert.Same(t, around, got.Object)

	got, ok = CastBroadphase(ray, w.bodies[:2])
	require.True(t, ok)
	assert.Same(t, near, got.Object)

	_, ok = CastBroadphase(geom.NewRay(rl.Vector3{}, rl.Vector3{Z: -1}), w.bodies[:2])
	assert.False(t, ok)
}

func TestNearby(t *testing.T) {
	scene := engine.NewScene("s")
	a := addSphere(scene, "a", rl.Vector3{X: 1}, 0.5)
	addSphere(scene, "b", rl.Vector3{X: 30}, 0.5)
	w := newTestWorld(t, scene, DefaultConfig())
	w.RunPhysicsCycle(0)

	assert.Equal(t, []*engine.GameObject{a}, w.Nearby(rl.Vector3{}, 2))
	assert.Len(t, w.Nearby(rl.Vector3{}, -1), 2)
}
