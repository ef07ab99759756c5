package physics

import (
	"context"
	"fmt"
	"math"
	"time"

	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// CycleReport summarises one call to RunPhysicsCycle.
type CycleReport struct {
	Clock    PhysicsClockData
	Stats    CollisionStats
	LastTest CollisionDetectionResult // most recent detection test of the frame
	// StaticSweep is set when pairs of non-moving objects were also tested.
	StaticSweep bool
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for frame diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// WithSpatialIndex replaces the built-in grid with an externally maintained
// index. The caller keeps it up to date; the world only queries it.
func WithSpatialIndex(idx SpatialIndex) Option {
	return func(w *World) {
		w.index = idx
		w.grid = nil
	}
}

// World runs collision detection and response over the objects of a scene.
// It is not safe for concurrent use.
type World struct {
	Config Config
	Scene  *engine.Scene

	// SignificantImpact fires for impacts whose momentum reaches
	// Config.ImpactMomentumThreshold.
	SignificantImpact engine.EventWithArg[ImpactEvent]

	index    SpatialIndex
	grid     *GridIndex // nil when an external index is used
	bodies   []*Body
	byObject map[*engine.GameObject]*Body

	clock         PhysicsClockData
	stats         CollisionStats
	staticTimerMs float32
	includeStatic bool
	focus         *engine.GameObject
	maxStep       float32 // largest displacement any body can make this cycle

	// Collision tracking for callbacks
	activeCollisions  map[CollisionPair]bool // collisions from last frame
	currentCollisions map[CollisionPair]bool // collisions this frame

	lastTest   CollisionDetectionResult
	candidates []*engine.GameObject

	log             zerolog.Logger
	metrics         *worldMetrics
	lastLoggedCount int
	lastLogTime     time.Time
}

func NewWorld(scene *engine.Scene, cfg Config, opts ...Option) (*World, error) {
	if scene == nil {
		return nil, fmt.Errorf("creating physics world: %w", ErrNilObject)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating physics world: %w", err)
	}
	metrics, err := newWorldMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating physics world: %w", err)
	}

	w := &World{
		Config:            cfg,
		Scene:             scene,
		byObject:          make(map[*engine.GameObject]*Body),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
		lastTest:          newResult(),
		log:               zerolog.Nop(),
		metrics:           metrics,
		lastLoggedCount:   -1,
	}
	w.grid = NewGridIndex(cfg.GridCellSize)
	w.index = w.grid
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// SetFocus limits detection to objects within Config.ActiveCollisionDistance
// of obj. A nil focus removes the limit.
func (w *World) SetFocus(obj *engine.GameObject) {
	w.focus = obj
}

// Body returns the physics view of obj as of the last frame.
func (w *World) Body(obj *engine.GameObject) (*Body, bool) {
	b, ok := w.byObject[obj]
	return b, ok
}

// RunPhysicsCycle advances the simulation by frameDelta seconds, split into
// sub-steps no longer than the frame's cycle time limit.
func (w *World) RunPhysicsCycle(frameDelta float32) CycleReport {
	w.stats.Clear()
	w.syncBodies()

	w.includeStatic = false
	w.staticTimerMs += frameDelta * 1000
	if w.staticTimerMs >= float32(w.Config.StaticPairCheckIntervalMs) {
		w.includeStatic = true
		w.staticTimerMs = 0
	}

	w.clock.RemainingFrameTime = frameDelta
	w.clock.FrameCycleTimeLimit = FrameCycleTimeLimit(frameDelta, w.Config)

	for w.clock.RemainingFrameTime > minCycleTime {
		if w.stats.Cycles >= w.Config.MaxPhysicsCyclesPerFrame {
			w.stats.Truncated = true
			w.log.Debug().
				Float32("remaining", w.clock.RemainingFrameTime).
				Int("cycles", w.stats.Cycles).
				Msg("physics frame truncated")
			break
		}
		dt := min(w.clock.FrameCycleTimeLimit, w.clock.RemainingFrameTime)
		w.clock.TimeFactor = dt
		w.step(dt)
		w.clock.RemainingFrameTime -= dt
		w.stats.Cycles++
	}

	w.dispatchCollisionCallbacks()
	w.metrics.record(context.Background(), w.stats)

	return CycleReport{
		Clock:       w.clock,
		Stats:       w.stats,
		LastTest:    w.lastTest,
		StaticSweep: w.includeStatic,
	}
}

// syncBodies rebuilds the body list from the scene, in scene order.
func (w *World) syncBodies() {
	w.bodies = w.bodies[:0]
	clear(w.byObject)
	for _, obj := range w.Scene.GameObjects {
		if !obj.Active {
			continue
		}
		b, ok := NewBody(obj)
		if !ok || b.Mode() == components.NoCollision {
			continue
		}
		w.bodies = append(w.bodies, b)
		w.byObject[obj] = b
	}
	w.rebuildIndex()

	if n := len(w.bodies); n != w.lastLoggedCount && time.Since(w.lastLogTime) > time.Second {
		w.log.Debug().Int("bodies", n).Msg("physics body count changed")
		w.lastLoggedCount = n
		w.lastLogTime = time.Now()
	}
}

// step runs one physics cycle of length dt.
func (w *World) step(dt float32) {
	w.integrate(dt)
	w.rebuildIndex()
	w.sweepFastMovers(dt)
	w.detectDiscrete(dt)

	for _, b := range w.bodies {
		if b.Rigid != nil {
			b.Rigid.TrySleep(dt)
		}
	}
}

// integrate moves every awake dynamic body by its velocity and flags fast
// movers: bodies travelling further than their radius this cycle.
func (w *World) integrate(dt float32) {
	w.maxStep = 0
	for _, b := range w.bodies {
		b.fastMover, b.needsSweep, b.lastHit = false, false, nil
		b.sweepFrom, b.sweepTime = b.Position(), 0
		rb := b.Rigid
		if rb == nil || rb.IsSleeping {
			continue
		}
		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(w.Config.Gravity, dt))
		}

		disp := rl.Vector3Scale(rb.Velocity, dt)
		tr := &b.Object.Transform
		tr.Position = rl.Vector3Add(tr.Position, disp)
		if spin := rl.Vector3Length(rb.AngularVelocity); spin > 0 {
			q := rl.QuaternionFromAxisAngle(rl.Vector3Scale(rb.AngularVelocity, 1/spin), spin*dt)
			tr.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(q, tr.Rotation))
		}
		b.syncVolume()

		step := rl.Vector3Length(disp)
		if step > b.Radius() {
			b.fastMover = true
			b.needsSweep = true
		}
		w.maxStep = max(w.maxStep, step)
	}
}

func (w *World) rebuildIndex() {
	if w.grid == nil {
		return
	}
	w.grid.Clear()
	for _, b := range w.bodies {
		w.grid.Insert(b.Object, b.Position(), b.Radius())
	}
}

// inScope applies the focus distance limit.
func (w *World) inScope(b *Body) bool {
	if w.focus == nil || w.Config.ActiveCollisionDistance < 0 {
		return true
	}
	d := w.Config.ActiveCollisionDistance + b.Radius()
	return geom.LengthSq(rl.Vector3Subtract(b.Position(), w.focus.Transform.Position)) <= d*d
}

type sweepHit struct {
	other   *Body
	otherAt rl.Vector3 // other's position at the moment of impact
	res     CollisionDetectionResult
}

// sweepFastMovers sweeps every in-scope fast mover. Bodies knocked into fast
// motion by an earlier sweep are swept again in a further pass.
func (w *World) sweepFastMovers(dt float32) {
	for pass := 0; pass <= w.Config.MaxIntraFrameCCDCollisions; pass++ {
		pending := false
		for _, b := range w.bodies {
			if !b.needsSweep || !w.inScope(b) {
				continue
			}
			b.needsSweep = false
			pending = true
			if w.sweep(b, dt) {
				w.rebuildIndex()
			}
		}
		if !pending {
			return
		}
	}
}

// sweep replays a fast mover's motion from where the cycle (or its last
// impact) left it, stopping at each impact to respond before continuing with
// the remaining time. It reports whether the body's path changed.
func (w *World) sweep(b *Body, dt float32) bool {
	remaining := dt - b.sweepTime
	pos := b.sweepFrom
	b.SetPosition(pos)

	exclude := b.lastHit
	hits := 0
	for remaining > minCycleTime {
		disp := rl.Vector3Scale(b.Velocity(), remaining)
		if geom.LengthSq(disp) == 0 {
			break
		}
		hit, ok := w.earliestImpact(b, pos, disp, remaining, exclude)
		if !ok {
			break
		}
		if hits == w.Config.MaxIntraFrameCCDCollisions {
			// Hold at the contact; next frame's sweep resolves it.
			w.stats.CCDTruncated++
			b.SetPosition(hit.res.Continuous.CollisionPos0)
			return true
		}
		hits++
		w.stats.CCDCollisions++

		b.SetPosition(hit.res.Continuous.CollisionPos0)
		if !hit.other.IsTerrain() {
			hit.other.SetPosition(hit.otherAt)
		}
		w.handleCollision(b, hit.other, hit.res, remaining)

		remaining -= remaining * hit.res.Continuous.IntersectionTime
		pos = b.Position()
		w.trackStep(b, dt)
		w.redirect(hit.other, b, dt, remaining)
		b.lastHit = hit.other
		exclude = hit.other
	}

	b.SetPosition(rl.Vector3Add(pos, rl.Vector3Scale(b.Velocity(), remaining)))
	return hits > 0
}

// redirect restarts a swept body's partner from its point of impact with its
// post-impact velocity, queueing a sweep when that carries it further than
// its radius before the cycle ends.
func (w *World) redirect(other, hitter *Body, dt, remaining float32) {
	if other.IsTerrain() {
		return
	}
	other.sweepFrom = other.Position()
	other.sweepTime = dt - remaining
	other.lastHit = hitter

	disp := rl.Vector3Scale(other.Velocity(), remaining)
	other.SetPosition(rl.Vector3Add(other.sweepFrom, disp))
	w.trackStep(other, dt)
	if rl.Vector3Length(disp) > other.Radius() {
		other.fastMover = true
		other.needsSweep = true
	}
}

// trackStep widens sweep queries to cover b's motion at its current velocity.
func (w *World) trackStep(b *Body, dt float32) {
	w.maxStep = max(w.maxStep, rl.Vector3Length(b.Velocity())*dt)
}

// earliestImpact finds the first collider b's sweep from pos by disp touches
// within the remaining time of the cycle.
func (w *World) earliestImpact(b *Body, pos, disp rl.Vector3, remaining float32, exclude *Body) (sweepHit, bool) {
	var best sweepHit
	found := false
	bestT := float32(math.MaxFloat32)

	mid := rl.Vector3Add(pos, rl.Vector3Scale(disp, 0.5))
	// Every candidate is indexed at its end-of-cycle position and is never
	// further than maxStep from it during the sweep.
	reach := rl.Vector3Length(disp)/2 + b.Radius() + w.maxStep
	w.candidates = w.index.QueryNear(mid, reach, w.candidates[:0])

	for _, obj := range w.candidates {
		other := w.byObject[obj]
		if other == nil || other == b || other == exclude {
			continue
		}
		if b.Role() == components.PassiveCollider && other.Role() == components.PassiveCollider {
			continue
		}
		w.stats.CCDCollisionChecks++

		otherDisp := rl.Vector3Scale(other.Velocity(), remaining)
		otherPos := rl.Vector3Subtract(other.Position(), otherDisp)
		cr, ok := TestContinuousSphereCollision(pos, disp, b.Radius(), otherPos, otherDisp, other.Radius())
		if !ok {
			continue
		}

		res := newResult()
		res.Type = ContinuousSphereVsSphere
		res.Continuous = cr
		w.lastTest = res
		otherAt := cr.CollisionPos1

		if other.Mode() == components.FullCollision {
			// Refine against the collider's boxes, held where they were at
			// the start of the sweep.
			tree := other.Box.Tree
			res.Type = ContinuousSphereVsOBB
			boxHit := false
			for _, leaf := range tree.Leaves() {
				box := tree.Nodes[leaf].Box
				box.Center = rl.Vector3Subtract(box.Center, otherDisp)
				lr, ok := TestContinuousSphereVsOBBCollision(pos, disp, b.Radius(), box)
				if ok && (!boxHit || lr.IntersectionTime < res.Continuous.IntersectionTime) {
					res.Continuous = lr
					res.Leaf1 = leaf
					boxHit = true
				}
			}
			w.lastTest = res
			if !boxHit {
				continue
			}
			otherAt = otherPos
		}

		if res.Continuous.IntersectionTime < bestT {
			bestT = res.Continuous.IntersectionTime
			best = sweepHit{other: other, otherAt: otherAt, res: res}
			found = true
		}
	}
	return best, found
}

// detectDiscrete tests every active, in-scope body against its broadphase
// candidates.
func (w *World) detectDiscrete(dt float32) {
	for _, a := range w.bodies {
		if a.Role() != components.ActiveCollider || a.fastMover || !w.inScope(a) {
			continue
		}
		w.candidates = w.index.QueryNear(a.Position(), a.Radius(), w.candidates[:0])
		for _, obj := range w.candidates {
			b := w.byObject[obj]
			if b == nil || b == a || b.fastMover {
				continue
			}
			// Active pairs are tested once, from the lower UID, unless that
			// side is out of scope and never runs its own tests.
			if b.Role() == components.ActiveCollider && a.Object.UID > b.Object.UID && w.inScope(b) {
				continue
			}
			if a.IsTerrain() && b.IsTerrain() {
				continue
			}
			if !w.includeStatic && !a.IsMoving() && !b.IsMoving() {
				continue
			}

			w.stats.CollisionChecks++
			if a.IsTerrain() || b.IsTerrain() {
				w.stats.TerrainChecks++
			}
			res, broad, full := checkCollision(a, b)
			w.lastTest = res
			if !broad {
				continue
			}
			w.stats.BroadphaseCollisions++
			if !full {
				continue
			}
			w.stats.Collisions++
			w.handleCollision(a, b, res, dt)
		}
	}
}

// CheckSingleCollision runs the discrete detection pipeline on one pair
// without applying any response.
func (w *World) CheckSingleCollision(a, b *engine.GameObject) (CollisionDetectionResult, error) {
	if a == nil || b == nil {
		return newResult(), fmt.Errorf("checking collision: %w", ErrNilObject)
	}
	ba, err := collidableBody(a)
	if err != nil {
		return newResult(), err
	}
	bb, err := collidableBody(b)
	if err != nil {
		return newResult(), err
	}
	res, _, _ := checkCollision(ba, bb)
	w.lastTest = res
	return res, nil
}

func collidableBody(obj *engine.GameObject) (*Body, error) {
	b, ok := NewBody(obj)
	if !ok || b.Mode() == components.NoCollision {
		return nil, fmt.Errorf("checking collision with %q: %w", obj.Name, ErrNotCollidable)
	}
	return b, nil
}

// LastTest returns the most recent detection test.
func (w *World) LastTest() CollisionDetectionResult {
	return w.lastTest
}
