package components

import (
	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionMode selects how far the narrowphase goes for an object.
type CollisionMode int

const (
	// FullCollision tests the object's OBB hierarchy after the sphere test.
	FullCollision CollisionMode = iota
	// BroadphaseCollisionOnly stops at the collision sphere.
	BroadphaseCollisionOnly
	// NoCollision removes the object from collision detection.
	NoCollision
)

func (m CollisionMode) String() string {
	switch m {
	case FullCollision:
		return "FullCollision"
	case BroadphaseCollisionOnly:
		return "BroadphaseCollisionOnly"
	case NoCollision:
		return "NoCollision"
	}
	return "Unknown"
}

// ColliderRole says whether an object may start a collision test.
type ColliderRole int

const (
	ActiveCollider ColliderRole = iota
	// PassiveCollider objects are only ever tested as the candidate side.
	PassiveCollider
)

func (r ColliderRole) String() string {
	if r == PassiveCollider {
		return "PassiveCollider"
	}
	return "ActiveCollider"
}

// SphereCollider is the collision sphere every collidable object carries.
// It is centered on the object's position.
type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Mode   CollisionMode
	Role   ColliderRole
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		Mode:   FullCollision,
		Role:   ActiveCollider,
	}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return s.GetGameObject().Transform.Position
}
