package config

import (
	"errors"
	"fmt"

	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/viper"
)

// FileName is the optional JSON config file looked up by Load.
const FileName = "collide3d.json"

// Load registers defaults and reads FileName from configDir if present.
// A missing file is not an error; a malformed one is.
func Load(configDir string) error {
	d := physics.DefaultConfig()

	viper.SetDefault("logLevel", "info")

	viper.SetDefault("physics.elasticityCoefficient", d.ElasticityCoefficient)
	viper.SetDefault("physics.minPhysicsCyclesPerSecond", d.MinPhysicsCyclesPerSecond)
	viper.SetDefault("physics.maxPhysicsCyclesPerFrame", d.MaxPhysicsCyclesPerFrame)
	viper.SetDefault("physics.maxIntraFrameCCDCollisions", d.MaxIntraFrameCCDCollisions)
	viper.SetDefault("physics.staticPairCheckIntervalMs", d.StaticPairCheckIntervalMs)
	viper.SetDefault("physics.handleDivergingCollisions", d.HandleDivergingCollisions)
	viper.SetDefault("physics.impactMomentumThreshold", d.ImpactMomentumThreshold)
	viper.SetDefault("physics.activeCollisionDistance", d.ActiveCollisionDistance)
	viper.SetDefault("physics.gridCellSize", d.GridCellSize)
	viper.SetDefault("physics.gravity.x", d.Gravity.X)
	viper.SetDefault("physics.gravity.y", d.Gravity.Y)
	viper.SetDefault("physics.gravity.z", d.Gravity.Z)

	viper.SetDefault("stress.objects", 1000)
	viper.SetDefault("stress.frames", 600)
	viper.SetDefault("stress.worldSize", 100.0)

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Physics builds a validated physics.Config from the loaded settings.
func Physics() (physics.Config, error) {
	cfg := physics.Config{
		ElasticityCoefficient:      float32(viper.GetFloat64("physics.elasticityCoefficient")),
		MinPhysicsCyclesPerSecond:  float32(viper.GetFloat64("physics.minPhysicsCyclesPerSecond")),
		MaxPhysicsCyclesPerFrame:   viper.GetInt("physics.maxPhysicsCyclesPerFrame"),
		MaxIntraFrameCCDCollisions: viper.GetInt("physics.maxIntraFrameCCDCollisions"),
		StaticPairCheckIntervalMs:  viper.GetUint("physics.staticPairCheckIntervalMs"),
		HandleDivergingCollisions:  viper.GetBool("physics.handleDivergingCollisions"),
		ImpactMomentumThreshold:    float32(viper.GetFloat64("physics.impactMomentumThreshold")),
		ActiveCollisionDistance:    float32(viper.GetFloat64("physics.activeCollisionDistance")),
		GridCellSize:               float32(viper.GetFloat64("physics.gridCellSize")),
		Gravity: rl.Vector3{
			X: float32(viper.GetFloat64("physics.gravity.x")),
			Y: float32(viper.GetFloat64("physics.gravity.y")),
			Z: float32(viper.GetFloat64("physics.gravity.z")),
		},
	}
	if err := cfg.Validate(); err != nil {
		return physics.Config{}, fmt.Errorf("physics config: %w", err)
	}
	return cfg, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float32 {
	return float32(viper.GetFloat64(key))
}
