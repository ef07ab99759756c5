package main

import (
	"collide3d/internal/components"
	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// spawnPoint remembers where its object started and puts it back on reset.
type spawnPoint struct {
	engine.BaseComponent
	pos rl.Vector3
	rot rl.Quaternion
}

func (s *spawnPoint) Start() {
	t := s.GetGameObject().Transform
	s.pos, s.rot = t.Position, t.Rotation
}

func (s *spawnPoint) reset() {
	obj := s.GetGameObject()
	obj.Transform.Position = s.pos
	obj.Transform.Rotation = s.rot
	if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil {
		rb.Velocity = rl.Vector3{}
		rb.AngularVelocity = rl.Vector3{}
		rb.Wake()
	}
}

// lifetime ages a shot until the viewer expires it.
type lifetime struct {
	engine.BaseComponent
	age, limit float32
}

func (l *lifetime) Update(dt float32) {
	l.age += dt
}

func (l *lifetime) expired() bool {
	return l.age >= l.limit
}
