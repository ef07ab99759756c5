package physics

// CollisionStats counts the work done during one RunPhysicsCycle.
type CollisionStats struct {
	CollisionChecks      int // discrete pair tests
	BroadphaseCollisions int
	Collisions           int
	TerrainChecks        int // pairs where one side is terrain
	CCDCollisionChecks   int
	CCDCollisions        int
	CCDTruncated         int // sweeps cut short by MaxIntraFrameCCDCollisions
	Cycles               int
	Truncated            bool // frame time left over after MaxPhysicsCyclesPerFrame
}

func (s *CollisionStats) Clear() {
	*s = CollisionStats{}
}

func (s CollisionStats) TotalCollisions() int {
	return s.Collisions + s.CCDCollisions
}

func (s CollisionStats) TotalBroadphaseCollisions() int {
	return s.BroadphaseCollisions
}

func (s CollisionStats) TotalPairsChecked() int {
	return s.CollisionChecks + s.CCDCollisionChecks
}
