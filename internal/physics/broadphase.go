package physics

import (
	"math"

	"collide3d/internal/engine"
	"collide3d/internal/geom"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SpatialIndex supplies broadphase candidates. QueryNear appends to out every
// object whose bounding sphere may lie within radius of origin; a negative
// radius returns every indexed object. False positives are allowed, false
// negatives are not. The physics world never mutates an index it was given.
type SpatialIndex interface {
	QueryNear(origin rl.Vector3, radius float32, out []*engine.GameObject) []*engine.GameObject
}

// CellKey addresses one cell of a GridIndex.
type CellKey struct {
	X, Y, Z int
}

type gridEntry struct {
	obj    *engine.GameObject
	center rl.Vector3
	radius float32
}

// GridIndex is a uniform spatial hash keyed on object centers. Queries are
// widened by the largest indexed radius so big objects are never missed.
type GridIndex struct {
	CellSize  float32
	cells     map[CellKey][]int
	entries   []gridEntry
	maxRadius float32
}

func NewGridIndex(cellSize float32) *GridIndex {
	return &GridIndex{
		CellSize: cellSize,
		cells:    make(map[CellKey][]int),
	}
}

func (g *GridIndex) posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X / g.CellSize))),
		Y: int(math.Floor(float64(pos.Y / g.CellSize))),
		Z: int(math.Floor(float64(pos.Z / g.CellSize))),
	}
}

// Clear empties the grid, keeping its allocations.
func (g *GridIndex) Clear() {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.entries = g.entries[:0]
	g.maxRadius = 0
}

func (g *GridIndex) Insert(obj *engine.GameObject, center rl.Vector3, radius float32) {
	cell := g.posToCell(center)
	g.cells[cell] = append(g.cells[cell], len(g.entries))
	g.entries = append(g.entries, gridEntry{obj: obj, center: center, radius: radius})
	if radius > g.maxRadius {
		g.maxRadius = radius
	}
}

func (g *GridIndex) Len() int {
	return len(g.entries)
}

func (g *GridIndex) QueryNear(origin rl.Vector3, radius float32, out []*engine.GameObject) []*engine.GameObject {
	if radius < 0 {
		for _, e := range g.entries {
			out = append(out, e.obj)
		}
		return out
	}

	reach := radius + g.maxRadius
	span := rl.Vector3{X: reach, Y: reach, Z: reach}
	lo := g.posToCell(rl.Vector3Subtract(origin, span))
	hi := g.posToCell(rl.Vector3Add(origin, span))

	visits := float64(hi.X-lo.X+1) * float64(hi.Y-lo.Y+1) * float64(hi.Z-lo.Z+1)
	if visits > float64(len(g.entries)) {
		for i := range g.entries {
			out = g.appendIfNear(out, i, origin, radius)
		}
		return out
	}

	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				for _, i := range g.cells[CellKey{X: x, Y: y, Z: z}] {
					out = g.appendIfNear(out, i, origin, radius)
				}
			}
		}
	}
	return out
}

func (g *GridIndex) appendIfNear(out []*engine.GameObject, i int, origin rl.Vector3, radius float32) []*engine.GameObject {
	e := g.entries[i]
	r := radius + e.radius
	if geom.LengthSq(rl.Vector3Subtract(e.center, origin)) <= r*r {
		out = append(out, e.obj)
	}
	return out
}
