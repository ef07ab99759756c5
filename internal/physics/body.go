package physics

import (
	"math"

	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is the physics view of a collidable GameObject, caching its
// components for the duration of a frame.
type Body struct {
	Object *engine.GameObject
	Rigid  *components.Rigidbody // nil for terrain
	Sphere *components.SphereCollider
	Box    *components.BoxCollider // nil for sphere-only objects

	// Per-cycle sweep state. sweepFrom is where the body was at sweepTime,
	// seconds into the cycle; lastHit is excluded from its next sweep.
	fastMover  bool
	needsSweep bool
	sweepFrom  rl.Vector3
	sweepTime  float32
	lastHit    *Body
}

// NewBody wraps obj. It returns false when obj has no SphereCollider.
func NewBody(obj *engine.GameObject) (*Body, bool) {
	sphere := engine.GetComponent[*components.SphereCollider](obj)
	if sphere == nil {
		return nil, false
	}
	b := &Body{
		Object: obj,
		Rigid:  engine.GetComponent[*components.Rigidbody](obj),
		Sphere: sphere,
		Box:    engine.GetComponent[*components.BoxCollider](obj),
	}
	b.syncVolume()
	return b, true
}

func (b *Body) Position() rl.Vector3 {
	return b.Object.Transform.Position
}

func (b *Body) SetPosition(p rl.Vector3) {
	b.Object.Transform.Position = p
	b.syncVolume()
}

func (b *Body) Radius() float32 {
	return b.Sphere.Radius
}

// Mode is the effective collision mode: FullCollision without a box
// degrades to BroadphaseCollisionOnly.
func (b *Body) Mode() components.CollisionMode {
	if b.Sphere.Mode == components.FullCollision && b.Box == nil {
		return components.BroadphaseCollisionOnly
	}
	return b.Sphere.Mode
}

func (b *Body) Role() components.ColliderRole {
	return b.Sphere.Role
}

// IsTerrain reports an immovable object (no Rigidbody).
func (b *Body) IsTerrain() bool {
	return b.Rigid == nil
}

func (b *Body) IsMoving() bool {
	return b.Rigid != nil && b.Rigid.IsMoving()
}

func (b *Body) Velocity() rl.Vector3 {
	if b.Rigid == nil {
		return rl.Vector3{}
	}
	return b.Rigid.Velocity
}

func (b *Body) AngularVelocity() rl.Vector3 {
	if b.Rigid == nil {
		return rl.Vector3{}
	}
	return b.Rigid.AngularVelocity
}

func (b *Body) InverseMass() float32 {
	if b.Rigid == nil {
		return 0
	}
	return b.Rigid.InverseMass()
}

func (b *Body) mass() float32 {
	if b.Rigid == nil {
		return 0
	}
	return b.Rigid.Mass
}

// inverseInertia treats the body as a solid sphere of its collision radius.
func (b *Body) inverseInertia() float32 {
	r := b.Radius()
	if r <= 0 {
		return 0
	}
	return b.InverseMass() * 2.5 / (r * r)
}

func (b *Body) syncVolume() {
	if b.Box != nil {
		b.Box.Sync()
	}
}

// CollisionCenter implements Collidable.
func (b *Body) CollisionCenter() rl.Vector3 {
	return b.Position()
}

// CollisionRadius implements Collidable.
func (b *Body) CollisionRadius() float32 {
	return b.Radius()
}

// CollisionMode implements NarrowphaseCollidable.
func (b *Body) CollisionMode() components.CollisionMode {
	return b.Mode()
}

// CollisionVolume implements NarrowphaseCollidable.
func (b *Body) CollisionVolume() *geom.OBBTree {
	if b.Box == nil {
		return nil
	}
	return b.Box.Tree
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// normalizeOr returns v normalized, or fallback when v is too short.
func normalizeOr(v, fallback rl.Vector3) rl.Vector3 {
	lenSq := geom.LengthSq(v)
	if lenSq < 1e-12 {
		return fallback
	}
	return rl.Vector3Scale(v, 1/sqrtf(lenSq))
}
