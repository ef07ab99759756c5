package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBBNode is one box of an OBBTree. Offset and Orientation are relative to
// the owning object; Box is the world-space box from the last Update.
type OBBNode struct {
	Offset      rl.Vector3
	HalfSize    rl.Vector3
	Orientation rl.Quaternion
	Children    []int
	Box         OBB
}

func (n *OBBNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// OBBTree is an arena of boxes addressed by index. Node 0 is the root and
// must enclose all of its descendants.
type OBBTree struct {
	Nodes []OBBNode
}

// NewOBBTree creates a tree holding only a root box.
func NewOBBTree(offset, halfSize rl.Vector3, orientation rl.Quaternion) *OBBTree {
	t := &OBBTree{}
	t.Nodes = append(t.Nodes, OBBNode{Offset: offset, HalfSize: halfSize, Orientation: orientation})
	t.Update(rl.Vector3{}, rl.QuaternionIdentity())
	return t
}

// AddChild appends a box under parent and returns its index.
func (t *OBBTree) AddChild(parent int, offset, halfSize rl.Vector3, orientation rl.Quaternion) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, OBBNode{Offset: offset, HalfSize: halfSize, Orientation: orientation})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// Root returns the world-space root box.
func (t *OBBTree) Root() OBB {
	return t.Nodes[0].Box
}

// Update places every node in world space for an object at position with
// the given orientation.
func (t *OBBTree) Update(position rl.Vector3, orientation rl.Quaternion) {
	for i := range t.Nodes {
		n := &t.Nodes[i]
		center := rl.Vector3Add(position, rl.Vector3RotateByQuaternion(n.Offset, orientation))
		n.Box = NewOBB(center, n.HalfSize, rl.QuaternionMultiply(orientation, n.Orientation))
	}
}

// Translate shifts every world-space box by delta without a full Update.
func (t *OBBTree) Translate(delta rl.Vector3) {
	for i := range t.Nodes {
		t.Nodes[i].Box.Center = rl.Vector3Add(t.Nodes[i].Box.Center, delta)
	}
}

// Leaves returns the indices of all leaf nodes.
func (t *OBBTree) Leaves() []int {
	var out []int
	for i := range t.Nodes {
		if t.Nodes[i].IsLeaf() {
			out = append(out, i)
		}
	}
	return out
}

// Clone copies the arena so the copy can be updated independently.
func (t *OBBTree) Clone() *OBBTree {
	c := &OBBTree{Nodes: make([]OBBNode, len(t.Nodes))}
	copy(c.Nodes, t.Nodes)
	for i := range c.Nodes {
		if len(c.Nodes[i].Children) > 0 {
			c.Nodes[i].Children = append([]int(nil), c.Nodes[i].Children...)
		}
	}
	return c
}

// HierarchyHit identifies the first colliding leaf pair of two trees.
type HierarchyHit struct {
	Leaf0, Leaf1 int
	SAT          SATResult
}

// TestHierarchy descends both trees from their roots, only visiting children
// of nodes whose boxes overlap, and returns the first colliding leaf pair.
func TestHierarchy(a, b *OBBTree) (HierarchyHit, bool) {
	return testNodes(a, 0, b, 0)
}

func testNodes(a *OBBTree, ia int, b *OBBTree, ib int) (HierarchyHit, bool) {
	na, nb := &a.Nodes[ia], &b.Nodes[ib]
	ok, sat := OBBvsOBB(na.Box, nb.Box)
	if !ok {
		return HierarchyHit{}, false
	}
	switch {
	case na.IsLeaf() && nb.IsLeaf():
		return HierarchyHit{Leaf0: ia, Leaf1: ib, SAT: sat}, true
	case na.IsLeaf():
		for _, c := range nb.Children {
			if hit, ok := testNodes(a, ia, b, c); ok {
				return hit, true
			}
		}
	default:
		for _, c := range na.Children {
			if hit, ok := testNodes(a, c, b, ib); ok {
				return hit, true
			}
		}
	}
	return HierarchyHit{}, false
}

// TestSphereHierarchy finds the first leaf of t overlapping the sphere.
// penetrationSq is radiusSq minus the squared distance to that leaf.
func TestSphereHierarchy(center rl.Vector3, radiusSq float32, t *OBBTree) (leaf int, penetrationSq float32, ok bool) {
	return sphereNode(center, radiusSq, t, 0)
}

func sphereNode(center rl.Vector3, radiusSq float32, t *OBBTree, i int) (int, float32, bool) {
	n := &t.Nodes[i]
	hit, pen := SphereVsOBB(center, radiusSq, n.Box)
	if !hit {
		return -1, pen, false
	}
	if n.IsLeaf() {
		return i, pen, true
	}
	for _, c := range n.Children {
		if leaf, p, ok := sphereNode(center, radiusSq, t, c); ok {
			return leaf, p, true
		}
	}
	return -1, pen, false
}

// RayVsHierarchy returns the leaf with the nearest entry point along the ray
// within tLimit. A ray starting inside a leaf hits it at t=0.
func RayVsHierarchy(r Ray, t *OBBTree, tLimit float32) (leaf int, tHit float32, ok bool) {
	leaf, tHit = -1, float32(math.MaxFloat32)
	best := tLimit
	stack := []int{0}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[i]
		hit, tMin, _ := RayVsOBB(r, n.Box, best)
		if !hit {
			continue
		}
		if !n.IsLeaf() {
			stack = append(stack, n.Children...)
			continue
		}
		if tMin < 0 {
			tMin = 0
		}
		if tMin < best || leaf < 0 {
			leaf, tHit, best = i, tMin, tMin
			ok = true
		}
	}
	return leaf, tHit, ok
}
