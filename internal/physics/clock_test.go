package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameCycleTimeLimit(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name       string
		frameDelta float32
		want       float32
	}{
		{"fast frame uses minimum rate", 1.0 / 60, 1.0 / 30},
		{"exactly at cycle budget", 5.0 / 30, 1.0 / 30},
		{"slow frame raises the limit", 1, 0.2},
		{"very slow frame", 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FrameCycleTimeLimit(tt.frameDelta, cfg), 1e-6)
		})
	}
}

func TestFrameCycleTimeLimitCoversFrame(t *testing.T) {
	cfg := DefaultConfig()
	for _, delta := range []float32{0.001, 0.016, 0.1, 0.25, 1, 3} {
		limit := FrameCycleTimeLimit(delta, cfg)
		assert.GreaterOrEqual(t, limit*float32(cfg.MaxPhysicsCyclesPerFrame), delta*(1-1e-6), "delta %v", delta)
	}
}
