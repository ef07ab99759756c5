package physics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "collide3d/internal/physics"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

var (
	discreteAttr   = metric.WithAttributes(attribute.String("detection", "discrete"))
	continuousAttr = metric.WithAttributes(attribute.String("detection", "continuous"))
)

type worldMetrics struct {
	checks     metric.Int64Counter
	collisions metric.Int64Counter
	cycles     metric.Int64Counter
	truncated  metric.Int64Counter
}

// newWorldMetrics registers the world's counters on the global provider
// (a no-op unless one is configured).
func newWorldMetrics() (*worldMetrics, error) {
	m := meter()
	wm := &worldMetrics{}

	var err error
	wm.checks, err = m.Int64Counter(
		"physics.pairs.checked",
		metric.WithDescription("Collision pair tests performed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating checks counter: %w", err)
	}

	wm.collisions, err = m.Int64Counter(
		"physics.collisions",
		metric.WithDescription("Confirmed collisions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating collisions counter: %w", err)
	}

	wm.cycles, err = m.Int64Counter(
		"physics.cycles",
		metric.WithDescription("Physics sub-steps run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating cycles counter: %w", err)
	}

	wm.truncated, err = m.Int64Counter(
		"physics.frames.truncated",
		metric.WithDescription("Frames cut short by the cycle limit"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating truncated counter: %w", err)
	}

	return wm, nil
}

func (wm *worldMetrics) record(ctx context.Context, s CollisionStats) {
	wm.checks.Add(ctx, int64(s.CollisionChecks), discreteAttr)
	wm.checks.Add(ctx, int64(s.CCDCollisionChecks), continuousAttr)
	wm.collisions.Add(ctx, int64(s.Collisions), discreteAttr)
	wm.collisions.Add(ctx, int64(s.CCDCollisions), continuousAttr)
	wm.cycles.Add(ctx, int64(s.Cycles))
	if s.Truncated {
		wm.truncated.Add(ctx, 1)
	}
}
