package geom

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ParallelEpsilon is the squared cross-product length below which two edge
// directions are treated as parallel and their SAT axis is skipped.
const ParallelEpsilon = 1e-6

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func sqrtf(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// LengthSq returns the squared length of v.
func LengthSq(v rl.Vector3) float32 {
	return rl.Vector3DotProduct(v, v)
}

// component returns the i-th coordinate of v.
func component(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func toArray(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
