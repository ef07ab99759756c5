package physics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid physics config")
	// ErrNilObject is returned when a nil object is passed to a query.
	ErrNilObject = errors.New("nil object")
	// ErrNotCollidable is returned for objects without a SphereCollider or
	// in NoCollision mode.
	ErrNotCollidable = errors.New("object is not collidable")
)

// Config holds the tunables of the collision engine.
type Config struct {
	ElasticityCoefficient      float32
	MinPhysicsCyclesPerSecond  float32
	MaxPhysicsCyclesPerFrame   int
	MaxIntraFrameCCDCollisions int
	StaticPairCheckIntervalMs  uint
	HandleDivergingCollisions  bool

	// ImpactMomentumThreshold is the momentum above which a collision also
	// fires World.SignificantImpact.
	ImpactMomentumThreshold float32
	// ActiveCollisionDistance limits detection to objects this close to the
	// focus object. Negative means unlimited.
	ActiveCollisionDistance float32
	GridCellSize            float32
	Gravity                 rl.Vector3
}

func DefaultConfig() Config {
	return Config{
		ElasticityCoefficient:      0.9,
		MinPhysicsCyclesPerSecond:  30,
		MaxPhysicsCyclesPerFrame:   5,
		MaxIntraFrameCCDCollisions: 5,
		StaticPairCheckIntervalMs:  1000,
		HandleDivergingCollisions:  false,
		ImpactMomentumThreshold:    1.0,
		ActiveCollisionDistance:    -1,
		GridCellSize:               5.0,
	}
}

func (c Config) Validate() error {
	switch {
	case c.ElasticityCoefficient < 0 || c.ElasticityCoefficient > 1:
		return fmt.Errorf("%w: elasticityCoefficient %v outside [0,1]", ErrInvalidConfig, c.ElasticityCoefficient)
	case c.MinPhysicsCyclesPerSecond <= 0:
		return fmt.Errorf("%w: minPhysicsCyclesPerSecond must be positive", ErrInvalidConfig)
	case c.MaxPhysicsCyclesPerFrame < 1:
		return fmt.Errorf("%w: maxPhysicsCyclesPerFrame must be at least 1", ErrInvalidConfig)
	case c.MaxIntraFrameCCDCollisions < 1:
		return fmt.Errorf("%w: maxIntraFrameCCDCollisions must be at least 1", ErrInvalidConfig)
	case c.GridCellSize <= 0:
		return fmt.Errorf("%w: gridCellSize must be positive", ErrInvalidConfig)
	case c.ImpactMomentumThreshold < 0:
		return fmt.Errorf("%w: impactMomentumThreshold must not be negative", ErrInvalidConfig)
	}
	return nil
}
