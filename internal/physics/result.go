package physics

import (
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CollisionDetectionType tags which test produced a CollisionDetectionResult
// and so which of its fields are meaningful.
type CollisionDetectionType int

const (
	Unknown CollisionDetectionType = iota
	SphereVsSphere
	SphereVsOBB
	OBBvsOBB
	ContinuousSphereVsSphere
	ContinuousSphereVsOBB
)

func (t CollisionDetectionType) String() string {
	switch t {
	case SphereVsSphere:
		return "SphereVsSphere"
	case SphereVsOBB:
		return "SphereVsOBB"
	case OBBvsOBB:
		return "OBBvsOBB"
	case ContinuousSphereVsSphere:
		return "ContinuousSphereVsSphere"
	case ContinuousSphereVsOBB:
		return "ContinuousSphereVsOBB"
	}
	return "Unknown"
}

// Continuous reports whether the result came from a swept test.
func (t CollisionDetectionType) Continuous() bool {
	return t == ContinuousSphereVsSphere || t == ContinuousSphereVsOBB
}

// ContinuousInterimData keeps the intermediate values of a swept test for
// debug overlays.
type ContinuousInterimData struct {
	Displacement0, Displacement1 rl.Vector3 // movement over the tested interval
	Pos0, Pos1                   rl.Vector3 // positions at the start of the interval
	S                            rl.Vector3 // Pos1 - Pos0
	V                            rl.Vector3 // Displacement1 - Displacement0
	R                            float32    // combined radius
	A, B, C, D                   float32    // V.V, V.S, S.S - R^2, B^2 - AC
}

// ContinuousCollisionTestResult is the outcome of one swept test.
// IntersectionTime is in [0,1]: 0 means touching at the start of the
// interval, 1 means no impact.
type ContinuousCollisionTestResult struct {
	InterimCalculations     ContinuousInterimData
	IntersectionTime        float32
	CollisionPos0           rl.Vector3
	CollisionPos1           rl.Vector3
	ContactNormal           rl.Vector3 // from object 0 toward object 1
	NormalisedContactNormal rl.Vector3
	ContactPoint            rl.Vector3
}

// CollisionDetectionResult describes the most recent collision test.
//
// BroadphasePenetrationSq is always non-negative: it holds
// |(r0+r1)^2 - d^2| and BroadphaseOverlap says whether that is a squared
// penetration (true) or a squared clearance (false).
type CollisionDetectionResult struct {
	Type                    CollisionDetectionType
	BroadphasePenetrationSq float32
	BroadphaseOverlap       bool
	Penetration             float32 // linear depth for SphereVsOBB and OBBvsOBB
	SAT                     geom.SATResult
	Continuous              ContinuousCollisionTestResult
	Leaf0, Leaf1            int // colliding OBB leaves, -1 when not applicable
}

func newResult() CollisionDetectionResult {
	return CollisionDetectionResult{
		Leaf0:      -1,
		Leaf1:      -1,
		Continuous: ContinuousCollisionTestResult{IntersectionTime: 1},
	}
}

// DeterminePenetration returns the penetration depth appropriate to Type.
func (r CollisionDetectionResult) DeterminePenetration() float32 {
	if r.Type == SphereVsSphere {
		if !r.BroadphaseOverlap {
			return 0
		}
		return sqrtf(r.BroadphasePenetrationSq)
	}
	return r.Penetration
}
