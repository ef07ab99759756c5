package components

import (
	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.05 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 0.05 // rad/sec
	SleepTimeThreshold     = 0.5  // seconds of low velocity before sleeping
)

// Rigidbody makes an object dynamic. Objects without one are treated as
// immovable terrain by the physics world.
type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // radians per second about each world axis
	Mass            float32    // <= 0 means infinite mass: moves but is never pushed
	Friction        float32    // Coulomb coefficient applied along the contact tangent
	UseGravity      bool

	// Sleeping bodies count as non-moving for static-pair filtering.
	IsSleeping bool
	CanSleep   bool
	sleepTimer float32
}

func NewRigidbody(mass float32) *Rigidbody {
	return &Rigidbody{
		Mass:     mass,
		Friction: 0.3,
		CanSleep: true,
	}
}

// InverseMass returns 1/Mass, or 0 for infinite mass.
func (r *Rigidbody) InverseMass() float32 {
	if r.Mass <= 0 {
		return 0
	}
	return 1 / r.Mass
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// IsMoving reports whether the body has any velocity worth simulating.
func (r *Rigidbody) IsMoving() bool {
	if r.IsSleeping {
		return false
	}
	return rl.Vector3Length(r.Velocity) >= SleepVelocityThreshold ||
		rl.Vector3Length(r.AngularVelocity) >= SleepAngularThreshold
}

// TrySleep puts the body to sleep after it has stayed slow for
// SleepTimeThreshold seconds.
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}
	if r.UseGravity || r.IsMoving() {
		r.sleepTimer = 0
		return
	}
	r.sleepTimer += deltaTime
	if r.sleepTimer >= SleepTimeThreshold {
		r.IsSleeping = true
		r.Velocity = rl.Vector3{}
		r.AngularVelocity = rl.Vector3{}
	}
}
