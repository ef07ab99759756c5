package physics

// minCycleTime is the remaining frame time below which a frame is done.
const minCycleTime = 1e-5

// PhysicsClockData is the engine's sub-stepped clock. Only the cycle loop
// in RunPhysicsCycle mutates it.
type PhysicsClockData struct {
	TimeFactor          float32 // length of the current physics cycle, seconds
	RemainingFrameTime  float32
	FrameCycleTimeLimit float32
}

// FrameCycleTimeLimit returns the longest cycle allowed for a frame of the
// given length. Normally that is 1/MinPhysicsCyclesPerSecond; when the frame
// is too long to cover in MaxPhysicsCyclesPerFrame such cycles the limit is
// raised so the frame still completes.
func FrameCycleTimeLimit(frameDelta float32, cfg Config) float32 {
	maxCycles := float32(cfg.MaxPhysicsCyclesPerFrame)
	if frameDelta*cfg.MinPhysicsCyclesPerSecond <= maxCycles {
		return 1 / cfg.MinPhysicsCyclesPerSecond
	}
	return frameDelta / maxCycles
}
