package main

import (
	"fmt"

	"collide3d/internal/components"
	"collide3d/internal/engine"
	"collide3d/internal/geom"
	"collide3d/internal/logging"
	"collide3d/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

type viewer struct {
	scene  *engine.Scene
	world  *physics.World
	camera rl.Camera3D
	log    zerolog.Logger

	paused    bool
	showAll   bool
	report    physics.CycleReport
	last      lastTest
	picked    engine.Handle
	pickPoint rl.Vector3
	flashes   int
	shotCount int
	onReset   engine.Event
}

func newViewer(cfg physics.Config, log zerolog.Logger) (*viewer, error) {
	v := &viewer{
		scene:   engine.NewScene("debug"),
		log:     log,
		showAll: true,
		camera: rl.Camera3D{
			Position:   rl.Vector3{X: 18, Y: 14, Z: 18},
			Target:     rl.Vector3{},
			Up:         rl.Vector3{Y: 1},
			Fovy:       50,
			Projection: rl.CameraPerspective,
		},
	}
	v.populate()
	v.scene.Start()

	w, err := physics.NewWorld(v.scene, cfg, physics.WithLogger(logging.Component(log, "physics")))
	if err != nil {
		return nil, err
	}
	w.SignificantImpact.AddListener(func(e physics.ImpactEvent) {
		v.flashes = 10
		v.log.Debug().Str("object", e.Object.Name).Str("other", e.Other.Name).
			Float32("momentum", e.Momentum).Bool("terrain", e.Terrain).Msg("impact")
	})
	w.SetFocus(v.scene.FindByName("Floor"))
	v.world = w
	return v, nil
}

// populate builds a floor, an L-shaped wall hierarchy and a few bodies.
func (v *viewer) populate() {
	id := rl.QuaternionIdentity()

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	fb := components.NewBoxCollider(rl.Vector3{X: 20, Y: 1, Z: 20})
	floor.AddComponent(fb)
	floor.AddComponent(components.NewSphereCollider(fb.BoundingRadius()))
	v.scene.AddGameObject(floor)

	wall := engine.NewGameObject("Wall")
	wall.Transform.Position = rl.Vector3{X: -6, Y: 2, Z: -6}
	wb := components.NewBoxCollider(rl.Vector3{X: 8, Y: 4, Z: 8})
	wb.AddBox(0, rl.Vector3{Z: -3.5}, rl.Vector3{X: 8, Y: 4, Z: 1}, id)
	wb.AddBox(0, rl.Vector3{X: -3.5}, rl.Vector3{X: 1, Y: 4, Z: 8}, id)
	wall.AddComponent(wb)
	wall.AddComponent(components.NewSphereCollider(wb.BoundingRadius()))
	v.scene.AddGameObject(wall)

	for i := 0; i < 6; i++ {
		obj := engine.NewGameObject(fmt.Sprintf("Body%d", i))
		obj.Transform.Position = rl.Vector3{X: float32(i*2 - 5), Y: 3 + float32(i), Z: float32(i%3 - 1)}
		if i%2 == 0 {
			bc := components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
			obj.AddComponent(bc)
			obj.AddComponent(components.NewSphereCollider(bc.BoundingRadius()))
		} else {
			sc := components.NewSphereCollider(0.6)
			sc.Mode = components.BroadphaseCollisionOnly
			obj.AddComponent(sc)
		}
		rb := components.NewRigidbody(1)
		rb.UseGravity = true
		obj.AddComponent(rb)
		sp := &spawnPoint{}
		obj.AddComponent(sp)
		v.onReset.AddListener(sp.reset)
		obj.Tags = []string{"body"}
		v.scene.AddGameObject(obj)
	}
}

// shoot fires a fast sphere from the camera toward its target.
func (v *viewer) shoot() {
	dir := rl.Vector3Normalize(rl.Vector3Subtract(v.camera.Target, v.camera.Position))

	v.shotCount++
	obj := engine.NewGameObject(fmt.Sprintf("Shot%d", v.shotCount))
	obj.Tags = []string{"shot"}
	obj.Transform.Position = rl.Vector3Add(v.camera.Position, rl.Vector3Scale(dir, 2))
	sc := components.NewSphereCollider(0.3)
	sc.Mode = components.BroadphaseCollisionOnly
	obj.AddComponent(sc)
	rb := components.NewRigidbody(0.5)
	rb.Velocity = rl.Vector3Scale(dir, 60)
	obj.AddComponent(rb)
	obj.AddComponent(&lifetime{limit: 5})
	obj.Start()
	v.scene.AddGameObject(obj)
}

// expireShots removes shots that are too old or have left the arena.
func (v *viewer) expireShots() {
	for _, obj := range v.scene.FindByTag("shot") {
		lt := engine.GetComponent[*lifetime](obj)
		if lt.expired() || rl.Vector3Length(obj.Transform.Position) > 60 {
			v.scene.RemoveGameObject(obj)
		}
	}
}

func (v *viewer) Update(dt float32) {
	rl.UpdateCamera(&v.camera, rl.CameraOrbital)

	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyF) {
		v.shoot()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.onReset.Invoke()
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.GetMouseX() > 260 {
		v.pick()
	}

	if v.flashes > 0 {
		v.flashes--
	}
	if v.paused {
		return
	}
	v.scene.Update(dt)
	v.report = v.world.RunPhysicsCycle(dt)
	v.last.observe(v.report)
	v.expireShots()
}

func (v *viewer) pick() {
	mr := rl.GetScreenToWorldRay(rl.GetMousePosition(), v.camera)
	hit, ok := v.world.Raycast(geom.NewRay(mr.Position, mr.Direction), 200)
	if !ok {
		v.picked = engine.Handle{}
		return
	}
	v.picked = engine.HandleOf(hit.GameObject)
	v.pickPoint = hit.Point
}

func (v *viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(v.camera)
	rl.DrawGrid(20, 1)
	for _, obj := range v.scene.GameObjects {
		v.drawObject(obj)
	}
	if v.last.valid {
		drawTest(v.last.res)
	}
	if v.picked.Resolve(v.scene) != nil {
		rl.DrawSphere(v.pickPoint, 0.1, rl.Yellow)
	}
	rl.EndMode3D()

	v.drawPanel()
	rl.EndDrawing()
}

func (v *viewer) drawObject(obj *engine.GameObject) {
	b, ok := v.world.Body(obj)
	if !ok {
		return
	}
	color := rl.SkyBlue
	switch {
	case obj.UID == v.picked.UID:
		color = rl.Yellow
	case b.IsTerrain():
		color = rl.Gray
	case b.Rigid.IsSleeping:
		color = rl.DarkBlue
	}

	if b.Mode() == components.FullCollision {
		tree := b.Box.Tree
		for _, leaf := range tree.Leaves() {
			drawOBB(tree.Nodes[leaf].Box, color)
		}
		if !v.showAll {
			return
		}
		rl.DrawSphereWires(b.Position(), b.Radius(), 6, 8, rl.Fade(color, 0.2))
		return
	}
	rl.DrawSphereWires(b.Position(), b.Radius(), 8, 12, color)
}

// obbEdges lists corner index pairs, matching geom.OBB.Corners ordering.
var obbEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func drawOBB(box geom.OBB, color rl.Color) {
	c := box.Corners()
	for _, e := range obbEdges {
		rl.DrawLine3D(c[e[0]], c[e[1]], color)
	}
}

func drawTest(res physics.CollisionDetectionResult) {
	if !res.Type.Continuous() {
		return
	}
	ct := res.Continuous
	in := ct.InterimCalculations
	end0 := rl.Vector3Add(in.Pos0, in.Displacement0)
	rl.DrawLine3D(in.Pos0, end0, rl.Orange)
	rl.DrawSphereWires(ct.CollisionPos0, 0.05, 4, 4, rl.Orange)
	rl.DrawSphere(ct.ContactPoint, 0.08, rl.Red)
	rl.DrawLine3D(ct.ContactPoint, rl.Vector3Add(ct.ContactPoint, ct.NormalisedContactNormal), rl.Red)
}

func (v *viewer) drawPanel() {
	const x, w = 10, 240
	gui.Panel(rl.Rectangle{X: x, Y: 10, Width: w, Height: 360}, "Physics")

	v.paused = gui.CheckBox(rl.Rectangle{X: x + 10, Y: 40, Width: 16, Height: 16}, "Paused (Space)", v.paused)
	v.showAll = gui.CheckBox(rl.Rectangle{X: x + 10, Y: 62, Width: 16, Height: 16}, "Bounding spheres", v.showAll)
	if gui.Button(rl.Rectangle{X: x + 10, Y: 84, Width: w/2 - 15, Height: 24}, "Shoot (F)") {
		v.shoot()
	}
	if gui.Button(rl.Rectangle{X: x + w/2 + 5, Y: 84, Width: w/2 - 15, Height: 24}, "Reset (R)") {
		v.onReset.Invoke()
	}

	s := v.report.Stats
	lines := []string{
		fmt.Sprintf("cycles %d  truncated %v", s.Cycles, s.Truncated),
		fmt.Sprintf("cycle limit %.4fs", v.report.Clock.FrameCycleTimeLimit),
		fmt.Sprintf("checks %d  terrain %d", s.CollisionChecks, s.TerrainChecks),
		fmt.Sprintf("broadphase %d  collisions %d", s.BroadphaseCollisions, s.Collisions),
		fmt.Sprintf("ccd checks %d  hits %d  cut %d", s.CCDCollisionChecks, s.CCDCollisions, s.CCDTruncated),
		fmt.Sprintf("static sweep %v", v.report.StaticSweep),
	}
	if v.last.valid {
		r := v.last.res
		lines = append(lines,
			"last test: "+r.Type.String(),
			fmt.Sprintf("penetration %.3f", r.DeterminePenetration()),
			fmt.Sprintf("toi %.3f  leaves %d/%d", r.Continuous.IntersectionTime, r.Leaf0, r.Leaf1),
		)
	}
	if picked := v.picked.Resolve(v.scene); picked != nil {
		lines = append(lines, fmt.Sprintf("picked: %s (%d components)", picked.Name, len(picked.Components())))
	}
	for i, line := range lines {
		gui.Label(rl.Rectangle{X: x + 10, Y: float32(118 + i*20), Width: w - 20, Height: 18}, line)
	}

	if v.flashes > 0 {
		rl.DrawText("IMPACT", int32(rl.GetScreenWidth())-120, 20, 24, rl.Red)
	}
	rl.DrawFPS(int32(rl.GetScreenWidth())-100, int32(rl.GetScreenHeight())-30)
}
