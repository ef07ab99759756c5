package components

import (
	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider holds an object's OBB hierarchy in object space. Objects in
// FullCollision mode without one fall back to their collision sphere.
type BoxCollider struct {
	engine.BaseComponent
	Tree *geom.OBBTree
}

// NewBoxCollider creates a single-box collider of the given full size.
func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Tree: geom.NewOBBTree(rl.Vector3{}, rl.Vector3Scale(size, 0.5), rl.QuaternionIdentity()),
	}
}

// AddBox adds a sub-box under parent (0 is the root box) and returns its index.
func (b *BoxCollider) AddBox(parent int, offset, size rl.Vector3, orientation rl.Quaternion) int {
	return b.Tree.AddChild(parent, offset, rl.Vector3Scale(size, 0.5), orientation)
}

// Sync moves the hierarchy to the owning object's current transform.
func (b *BoxCollider) Sync() {
	t := b.GetGameObject().Transform
	b.Tree.Update(t.Position, t.Rotation)
}

// Bounds returns the world-space root box.
func (b *BoxCollider) Bounds() geom.OBB {
	return b.Tree.Root()
}

// BoundingRadius is the radius around the object's position that encloses
// every box, for sizing the collision sphere.
func (b *BoxCollider) BoundingRadius() float32 {
	root := b.Tree.Nodes[0]
	return rl.Vector3Length(root.Offset) + rl.Vector3Length(root.HalfSize)
}
