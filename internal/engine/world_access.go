package engine

import (
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Distance   float32
	Leaf       int // OBB leaf that was hit, -1 for a sphere-only hit
}

// WorldAccess lets components query the physics world without importing it.
type WorldAccess interface {
	Raycast(ray geom.Ray, maxDistance float32) (RaycastResult, bool)
	Nearby(point rl.Vector3, radius float32) []*GameObject
}
