package geom

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRoomTree is a 10x2x2 root split into two 4x2x2 rooms with a gap between.
func twoRoomTree() *OBBTree {
	id := rl.QuaternionIdentity()
	t := NewOBBTree(rl.Vector3{}, rl.Vector3{X: 5, Y: 1, Z: 1}, id)
	t.AddChild(0, rl.Vector3{X: -3}, rl.Vector3{X: 2, Y: 1, Z: 1}, id)
	t.AddChild(0, rl.Vector3{X: 3}, rl.Vector3{X: 2, Y: 1, Z: 1}, id)
	t.Update(rl.Vector3{}, id)
	return t
}

func singleBox(pos rl.Vector3, half float32) *OBBTree {
	t := NewOBBTree(rl.Vector3{}, rl.Vector3{X: half, Y: half, Z: half}, rl.QuaternionIdentity())
	t.Update(pos, rl.QuaternionIdentity())
	return t
}

func TestTestHierarchyFindsLeaf(t *testing.T) {
	rooms := twoRoomTree()

	hit, ok := TestHierarchy(rooms, singleBox(rl.Vector3{X: 3.5}, 0.5))
	require.True(t, ok)
	assert.Equal(t, 2, hit.Leaf0)
	assert.Equal(t, 0, hit.Leaf1)

	// The gap between the rooms overlaps the root but no leaf.
	_, ok = TestHierarchy(rooms, singleBox(rl.Vector3{}, 0.4))
	assert.False(t, ok)

	// Outside the root entirely.
	_, ok = TestHierarchy(rooms, singleBox(rl.Vector3{Y: 5}, 0.5))
	assert.False(t, ok)
}

func TestTestHierarchyPrunesAtRoot(t *testing.T) {
	rooms := twoRoomTree()
	// A child that pokes outside its parent is never reached when the
	// parents do not overlap.
	rooms.AddChild(1, rl.Vector3{Y: 20}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity())
	rooms.Update(rl.Vector3{}, rl.QuaternionIdentity())

	_, ok := TestHierarchy(rooms, singleBox(rl.Vector3{Y: 20}, 1))
	assert.False(t, ok)
}

func TestTestHierarchyBothSidesSplit(t *testing.T) {
	a := twoRoomTree()
	b := twoRoomTree()
	b.Update(rl.Vector3{X: 8}, rl.QuaternionIdentity())

	hit, ok := TestHierarchy(a, b)
	require.True(t, ok)
	assert.Equal(t, 2, hit.Leaf0)
	assert.Equal(t, 1, hit.Leaf1)
}

func TestTestSphereHierarchy(t *testing.T) {
	rooms := twoRoomTree()

	leaf, pen, ok := TestSphereHierarchy(rl.Vector3{X: -3, Y: 1.5}, 1, rooms)
	require.True(t, ok)
	assert.Equal(t, 1, leaf)
	assert.InDelta(t, 0.75, pen, 1e-5)

	_, _, ok = TestSphereHierarchy(rl.Vector3{}, 0.25, rooms)
	assert.False(t, ok)
}

func TestRayVsHierarchyNearestLeaf(t *testing.T) {
	rooms := twoRoomTree()

	leaf, tHit, ok := RayVsHierarchy(NewRay(rl.Vector3{X: 20}, rl.Vector3{X: -1}), rooms, 100)
	require.True(t, ok)
	assert.Equal(t, 2, leaf)
	assert.InDelta(t, 15, tHit, 1e-5)

	leaf, tHit, ok = RayVsHierarchy(NewRay(rl.Vector3{X: -20}, rl.Vector3{X: 1}), rooms, 100)
	require.True(t, ok)
	assert.Equal(t, 1, leaf)
	assert.InDelta(t, 15, tHit, 1e-5)

	_, _, ok = RayVsHierarchy(NewRay(rl.Vector3{Y: 5}, rl.Vector3{Y: 1}), rooms, 100)
	assert.False(t, ok)
}

func TestOBBTreeUpdateRotates(t *testing.T) {
	rooms := twoRoomTree()
	q := rl.QuaternionFromAxisAngle(rl.Vector3{Y: 1}, 1.5707964)
	rooms.Update(rl.Vector3{Z: 1}, q)

	// +X offset rotated a quarter turn about Y ends up on -Z.
	c := rooms.Nodes[2].Box.Center
	assert.InDelta(t, 0, c.X, 1e-5)
	assert.InDelta(t, -2, c.Z, 1e-5)
}

func TestOBBTreeClone(t *testing.T) {
	rooms := twoRoomTree()
	c := rooms.Clone()
	c.AddChild(1, rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.QuaternionIdentity())

	assert.Len(t, rooms.Nodes[1].Children, 0)
	assert.Len(t, c.Nodes[1].Children, 1)
	assert.Equal(t, []int{1, 2}, rooms.Leaves())
}
