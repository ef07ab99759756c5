package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SATResult records which axis gave the smallest overlap in an OBB test.
// Axis0 is set for a face axis of A, Axis1 for a face axis of B, and both
// for an edge-edge axis; unused indices are -1. AxisDist0/AxisDist1 hold the
// signed distance from A's center to B's center along each local axis.
type SATResult struct {
	Axis0, Axis1 int
	AxisDist0    [3]float32
	AxisDist1    [3]float32
	Penetration  float32
	Normal       rl.Vector3 // unit axis of minimum overlap, pointing from A toward B
}

func newSATResult() SATResult {
	return SATResult{Axis0: -1, Axis1: -1, Penetration: math.MaxFloat32}
}

// OBBvsOBB tests two OBBs using the Separating Axis Theorem over the 15
// candidate axes. Near-parallel edge pairs are skipped.
func OBBvsOBB(a, b OBB) (bool, SATResult) {
	res := newSATResult()
	d := rl.Vector3Subtract(b.Center, a.Center)
	ea := toArray(a.HalfSize)
	eb := toArray(b.HalfSize)

	var absDot [3][3]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			absDot[i][j] = absf(rl.Vector3DotProduct(a.Axes[i], b.Axes[j]))
		}
		res.AxisDist0[i] = rl.Vector3DotProduct(d, a.Axes[i])
		res.AxisDist1[i] = rl.Vector3DotProduct(d, b.Axes[i])
	}

	// Face axes of A
	for i := 0; i < 3; i++ {
		rb := eb[0]*absDot[i][0] + eb[1]*absDot[i][1] + eb[2]*absDot[i][2]
		overlap := ea[i] + rb - absf(res.AxisDist0[i])
		if overlap < 0 {
			return false, res
		}
		if overlap < res.Penetration {
			res.Penetration = overlap
			res.Axis0, res.Axis1 = i, -1
			res.Normal = towards(a.Axes[i], res.AxisDist0[i])
		}
	}

	// Face axes of B
	for j := 0; j < 3; j++ {
		ra := ea[0]*absDot[0][j] + ea[1]*absDot[1][j] + ea[2]*absDot[2][j]
		overlap := ra + eb[j] - absf(res.AxisDist1[j])
		if overlap < 0 {
			return false, res
		}
		if overlap < res.Penetration {
			res.Penetration = overlap
			res.Axis0, res.Axis1 = -1, j
			res.Normal = towards(b.Axes[j], res.AxisDist1[j])
		}
	}

	// Edge-edge axes
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			lenSq := LengthSq(axis)
			if lenSq < ParallelEpsilon {
				continue
			}
			axis = rl.Vector3Scale(axis, 1/sqrtf(lenSq))

			ra := projectedRadius(a, axis)
			rb := projectedRadius(b, axis)
			dist := rl.Vector3DotProduct(d, axis)
			overlap := ra + rb - absf(dist)
			if overlap < 0 {
				return false, res
			}
			if overlap < res.Penetration {
				res.Penetration = overlap
				res.Axis0, res.Axis1 = i, j
				res.Normal = towards(axis, dist)
			}
		}
	}

	return true, res
}

// projectedRadius is the half-length of the box's projection onto axis.
func projectedRadius(o OBB, axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

func towards(axis rl.Vector3, dist float32) rl.Vector3 {
	if dist < 0 {
		return rl.Vector3Negate(axis)
	}
	return axis
}
