package config

import (
	"os"
	"path/filepath"
	"testing"

	"collide3d/internal/physics"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"physics": {
			"elasticityCoefficient": 0.5,
			"maxPhysicsCyclesPerFrame": 8,
			"handleDivergingCollisions": true,
			"gravity": { "y": -9.81 }
		}
	}`)

	require.NoError(t, Load(dir))
	assert.Equal(t, "debug", GetString("logLevel"))

	cfg, err := Physics()
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), cfg.ElasticityCoefficient)
	assert.Equal(t, 8, cfg.MaxPhysicsCyclesPerFrame)
	assert.True(t, cfg.HandleDivergingCollisions)
	assert.InDelta(t, -9.81, cfg.Gravity.Y, 1e-6)
	assert.Equal(t, float32(0), cfg.Gravity.X)

	// Unset keys keep their defaults.
	assert.Equal(t, float32(30), cfg.MinPhysicsCyclesPerSecond)
	assert.Equal(t, uint(1000), cfg.StaticPairCheckIntervalMs)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, 1000, GetInt("stress.objects"))
	assert.Equal(t, float32(100), GetFloat("stress.worldSize"))

	cfg, err := Physics()
	require.NoError(t, err)
	assert.Equal(t, physics.DefaultConfig(), cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(writeConfig(t, `{ "physics": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestPhysics_Invalid(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{ "physics": { "elasticityCoefficient": 2 } }`)))
	_, err := Physics()
	assert.ErrorIs(t, err, physics.ErrInvalidConfig)
}
