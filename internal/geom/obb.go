package geom

import rl "github.com/gen2brain/raylib-go/raylib"

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (unit length)
}

// NewOBB creates an OBB from its center, half-extents and orientation.
func NewOBB(center, halfSize rl.Vector3, orientation rl.Quaternion) OBB {
	return OBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, orientation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, orientation)),
			rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, orientation)),
		},
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation) from a full size.
func NewAABBasOBB(center, size rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: rl.Vector3Scale(size, 0.5),
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// Extent returns the half-size along local axis i.
func (o OBB) Extent(i int) float32 {
	return component(o.HalfSize, i)
}

// Local projects p onto the box axes relative to the center.
func (o OBB) Local(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// LocalDirection expresses a direction in box space.
func (o OBB) LocalDirection(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: rl.Vector3DotProduct(v, o.Axes[0]),
		Y: rl.Vector3DotProduct(v, o.Axes[1]),
		Z: rl.Vector3DotProduct(v, o.Axes[2]),
	}
}

// World maps a box-space point back to world space.
func (o OBB) World(local rl.Vector3) rl.Vector3 {
	p := o.Center
	p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[0], local.X))
	p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[1], local.Y))
	p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[2], local.Z))
	return p
}

// Corners returns the eight world-space corners.
func (o OBB) Corners() [8]rl.Vector3 {
	var out [8]rl.Vector3
	for i := 0; i < 8; i++ {
		local := o.HalfSize
		if i&1 != 0 {
			local.X = -local.X
		}
		if i&2 != 0 {
			local.Y = -local.Y
		}
		if i&4 != 0 {
			local.Z = -local.Z
		}
		out[i] = o.World(local)
	}
	return out
}

// Bounds returns the world-space AABB enclosing the box.
func (o OBB) Bounds() AABB {
	var half rl.Vector3
	for i := 0; i < 3; i++ {
		e := o.Extent(i)
		half.X += absf(o.Axes[i].X) * e
		half.Y += absf(o.Axes[i].Y) * e
		half.Z += absf(o.Axes[i].Z) * e
	}
	return AABB{Min: rl.Vector3Subtract(o.Center, half), Max: rl.Vector3Add(o.Center, half)}
}

// BoundingRadius is the radius of the sphere around Center enclosing the box.
func (o OBB) BoundingRadius() float32 {
	return rl.Vector3Length(o.HalfSize)
}
