package components

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestRigidbodyInverseMass(t *testing.T) {
	assert.Equal(t, float32(0.5), NewRigidbody(2).InverseMass())
	assert.Equal(t, float32(0), NewRigidbody(0).InverseMass())
	assert.Equal(t, float32(0), NewRigidbody(-1).InverseMass())
}

func TestRigidbodySleep(t *testing.T) {
	rb := NewRigidbody(1)
	rb.Velocity = rl.Vector3{X: 0.01}

	rb.TrySleep(SleepTimeThreshold / 2)
	assert.False(t, rb.IsSleeping)

	rb.TrySleep(SleepTimeThreshold / 2)
	assert.True(t, rb.IsSleeping)
	assert.Equal(t, rl.Vector3{}, rb.Velocity)
	assert.False(t, rb.IsMoving())

	rb.Wake()
	assert.False(t, rb.IsSleeping)
}

func TestRigidbodyMovingBodiesStayAwake(t *testing.T) {
	rb := NewRigidbody(1)
	rb.AngularVelocity = rl.Vector3{Y: 1}
	assert.True(t, rb.IsMoving())

	for i := 0; i < 10; i++ {
		rb.TrySleep(SleepTimeThreshold)
	}
	assert.False(t, rb.IsSleeping)

	rb.AngularVelocity = rl.Vector3{}
	rb.UseGravity = true
	rb.TrySleep(SleepTimeThreshold * 2)
	assert.False(t, rb.IsSleeping)
}

func TestRigidbodyCanSleepDisabled(t *testing.T) {
	rb := NewRigidbody(1)
	rb.CanSleep = false
	rb.TrySleep(SleepTimeThreshold * 10)
	assert.False(t, rb.IsSleeping)
}
