// Stress test comparing grid vs brute-force broad-phase, then timing full
// physics frames over a crowded scene.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"collide3d/internal/components"
	"collide3d/internal/config"
	"collide3d/internal/engine"
	"collide3d/internal/geom"
	"collide3d/internal/logging"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	profileMode := flag.String("profile", "", "write a cpu or mem profile")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fatalLog := logging.New("info", nil)
		fatalLog.Fatal().Err(err).Msg("loading config")
	}
	log := logging.New(config.GetString("logLevel"), os.Stderr)

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Physics()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid physics config")
	}

	// Test various object counts
	for _, count := range []int{100, 500, 1000, 2000, 5000, 10000} {
		testBroadPhase(log, count, cfg.GridCellSize)
	}

	runFrames(log, cfg,
		config.GetInt("stress.objects"),
		config.GetInt("stress.frames"),
		config.GetFloat("stress.worldSize"))
}

type sphere struct {
	obj    *engine.GameObject
	center rl.Vector3
	radius float32
}

func testBroadPhase(log zerolog.Logger, count int, cellSize float32) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0

	spheres := make([]sphere, count)
	for i := range spheres {
		spheres[i] = sphere{
			obj:    engine.NewGameObject("s"),
			center: randomPoint(rng, spawnSize),
			radius: 0.5 + rng.Float32()*0.5, // 0.5 to 1.0 radius
		}
	}

	const iterations = 10

	// Grid: rebuild and query every sphere, as a physics cycle does.
	grid := physics.NewGridIndex(cellSize)
	var out []*engine.GameObject
	gridStart := time.Now()
	var gridPairs int
	for iter := 0; iter < iterations; iter++ {
		grid.Clear()
		for _, s := range spheres {
			grid.Insert(s.obj, s.center, s.radius)
		}
		gridPairs = 0
		for _, s := range spheres {
			out = grid.QueryNear(s.center, s.radius, out[:0])
			gridPairs += len(out) - 1 // minus self
		}
	}
	gridTime := time.Since(gridStart) / iterations

	// Brute force O(n²)
	bruteStart := time.Now()
	var brutePairs int
	for iter := 0; iter < iterations; iter++ {
		brutePairs = 0
		for i := range spheres {
			for j := i + 1; j < len(spheres); j++ {
				if geom.SphereVsSphere(spheres[i].center, spheres[i].radius, spheres[j].center, spheres[j].radius) {
					brutePairs++
				}
			}
		}
	}
	bruteTime := time.Since(bruteStart) / iterations

	log.Info().
		Int("objects", count).
		Dur("grid", gridTime.Round(time.Microsecond)).
		Int("gridCandidates", gridPairs/2).
		Dur("brute", bruteTime.Round(time.Microsecond)).
		Int("brutePairs", brutePairs).
		Float64("speedup", float64(bruteTime)/float64(gridTime)).
		Msg("broad-phase")
}

func runFrames(log zerolog.Logger, cfg physics.Config, count, frames int, worldSize float32) {
	rng := rand.New(rand.NewSource(7))
	scene := engine.NewScene("stress")

	// Boxed arena walls are terrain: no rigidbody.
	half := worldSize / 2
	for _, w := range []struct{ pos, size rl.Vector3 }{
		{rl.Vector3{Y: -half}, rl.Vector3{X: worldSize, Y: 1, Z: worldSize}},
		{rl.Vector3{Y: half}, rl.Vector3{X: worldSize, Y: 1, Z: worldSize}},
		{rl.Vector3{X: -half}, rl.Vector3{X: 1, Y: worldSize, Z: worldSize}},
		{rl.Vector3{X: half}, rl.Vector3{X: 1, Y: worldSize, Z: worldSize}},
		{rl.Vector3{Z: -half}, rl.Vector3{X: worldSize, Y: worldSize, Z: 1}},
		{rl.Vector3{Z: half}, rl.Vector3{X: worldSize, Y: worldSize, Z: 1}},
	} {
		wall := engine.NewGameObject("Wall")
		wall.Transform.Position = w.pos
		box := components.NewBoxCollider(w.size)
		wall.AddComponent(box)
		wall.AddComponent(components.NewSphereCollider(box.BoundingRadius()))
		scene.AddGameObject(wall)
	}

	for i := 0; i < count; i++ {
		obj := engine.NewGameObject("Body")
		obj.Transform.Position = randomPoint(rng, worldSize*0.8)
		obj.Transform.Rotation = rl.QuaternionFromEuler(rng.Float32()*rl.Pi, rng.Float32()*rl.Pi, 0)

		size := 0.5 + rng.Float32()
		if i%3 == 0 {
			box := components.NewBoxCollider(rl.Vector3{X: size, Y: size, Z: size})
			obj.AddComponent(box)
			obj.AddComponent(components.NewSphereCollider(box.BoundingRadius()))
		} else {
			sc := components.NewSphereCollider(size / 2)
			sc.Mode = components.BroadphaseCollisionOnly
			obj.AddComponent(sc)
		}

		rb := components.NewRigidbody(size)
		rb.Velocity = rl.Vector3Scale(randomPoint(rng, 2), 20)
		rb.AngularVelocity = randomPoint(rng, 2)
		rb.UseGravity = true
		obj.AddComponent(rb)
		scene.AddGameObject(obj)
	}

	world, err := physics.NewWorld(scene, cfg, physics.WithLogger(logging.Component(log, "physics")))
	if err != nil {
		log.Fatal().Err(err).Msg("creating world")
	}

	var impacts int
	world.SignificantImpact.AddListener(func(physics.ImpactEvent) { impacts++ })

	var total physics.CollisionStats
	start := time.Now()
	for f := 0; f < frames; f++ {
		report := world.RunPhysicsCycle(1.0 / 60)
		s := report.Stats
		total.CollisionChecks += s.CollisionChecks
		total.Collisions += s.Collisions
		total.CCDCollisionChecks += s.CCDCollisionChecks
		total.CCDCollisions += s.CCDCollisions
		total.CCDTruncated += s.CCDTruncated
		total.Cycles += s.Cycles
	}
	elapsed := time.Since(start)

	log.Info().
		Int("objects", count).
		Int("frames", frames).
		Dur("perFrame", (elapsed/time.Duration(max(frames, 1))).Round(time.Microsecond)).
		Int("pairsChecked", total.TotalPairsChecked()).
		Int("collisions", total.TotalCollisions()).
		Int("ccdTruncated", total.CCDTruncated).
		Int("significantImpacts", impacts).
		Msg("frames")
}

func randomPoint(rng *rand.Rand, size float32) rl.Vector3 {
	return rl.Vector3{
		X: rng.Float32()*size - size/2,
		Y: rng.Float32()*size - size/2,
		Z: rng.Float32()*size - size/2,
	}
}
