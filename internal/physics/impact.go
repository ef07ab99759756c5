package physics

import (
	"collide3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ObjectImpact is one participant's side of a two-body collision.
type ObjectImpact struct {
	ID                      uint64
	PreImpactVelocity       rl.Vector3
	VelocityChange          rl.Vector3
	VelocityChangeMagnitude float32
	ImpactForce             float32 // momentum delivered: |dv| * mass
}

// ImpactData is delivered to both participants of a two-body collision.
// Object is always the receiving side.
type ImpactData struct {
	TotalImpactVelocity float32
	TotalImpactForce    float32
	ContactPoint        rl.Vector3
	Object              ObjectImpact
	Collider            ObjectImpact
}

// Swap returns the same impact seen from the collider's side.
func (d ImpactData) Swap() ImpactData {
	d.Object, d.Collider = d.Collider, d.Object
	return d
}

// TerrainImpactData describes a dynamic body hitting immovable geometry.
type TerrainImpactData struct {
	Terrain          *engine.GameObject
	ResponseVector   rl.Vector3 // unit normal pointing away from the terrain
	ResponseVelocity float32    // speed along ResponseVector after the response
	ImpactVelocity   float32    // closing speed along the normal before it
	ImpactForce      float32
}

// ImpactHandler is implemented by components that react to two-body impacts.
type ImpactHandler interface {
	OnImpact(other *engine.GameObject, impact ImpactData)
}

// TerrainImpactHandler is implemented by components that react to hitting
// terrain.
type TerrainImpactHandler interface {
	OnTerrainImpact(impact TerrainImpactData)
}

// ImpactEvent is fired through World.SignificantImpact when an impact's
// momentum exceeds Config.ImpactMomentumThreshold.
type ImpactEvent struct {
	Object   *engine.GameObject
	Other    *engine.GameObject
	Momentum float32
	Terrain  bool
}

func notifyImpact(obj, other *engine.GameObject, impact ImpactData) {
	for _, h := range engine.ComponentsOf[ImpactHandler](obj) {
		h.OnImpact(other, impact)
	}
}

func notifyTerrainImpact(obj *engine.GameObject, impact TerrainImpactData) {
	for _, h := range engine.ComponentsOf[TerrainImpactHandler](obj) {
		h.OnTerrainImpact(impact)
	}
}
