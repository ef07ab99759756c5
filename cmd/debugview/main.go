// debugview opens a window over a small physics scene and draws collision
// volumes, the most recent detection test and per-frame statistics.
package main

import (
	"flag"
	"os"

	"collide3d/internal/config"
	"collide3d/internal/logging"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		logging.New("info", nil).Fatal().Err(err).Msg("loading config")
	}
	log := logging.New(config.GetString("logLevel"), os.Stderr)

	cfg, err := config.Physics()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid physics config")
	}

	v, err := newViewer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("creating scene")
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "collide3d debug view")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.Update(rl.GetFrameTime())
		v.Draw()
	}
}

// lastTest keeps the most recent interesting detection result across frames
// so it stays on screen after the collision is resolved.
type lastTest struct {
	res   physics.CollisionDetectionResult
	valid bool
}

func (l *lastTest) observe(report physics.CycleReport) {
	if report.Stats.TotalCollisions() > 0 || report.Stats.TotalBroadphaseCollisions() > 0 {
		l.res = report.LastTest
		l.valid = true
	}
}
