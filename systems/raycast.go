package systems

import (
	"math"

	"github.com/pthm-cable/driftmaze/maze"
)

// AABB is an axis-aligned box in world space.
type AABB struct {
	MinX, MinY, MaxX, MaxY float32
}

// BoxAround returns the AABB of half extents (hw, hh) centred on (x, y).
func BoxAround(x, y, hw, hh float32) AABB {
	return AABB{MinX: x - hw, MinY: y - hh, MaxX: x + hw, MaxY: y + hh}
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b AABB) Contains(p maze.Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Overlaps reports whether two boxes intersect.
func (b AABB) Overlaps(o AABB) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}

// Centre returns the box centre.
func (b AABB) Centre() maze.Vec2 {
	return maze.Vec2{X: (b.MinX + b.MaxX) * 0.5, Y: (b.MinY + b.MaxY) * 0.5}
}

// rayAABB returns the distance along a unit ray to the first face of box.
// An origin inside or on the boundary of the box reports no hit, as does a
// ray running exactly along a face.
func rayAABB(origin, dir maze.Vec2, maxDist float32, box AABB) (float32, bool) {
	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))

	// X slab
	if dir.X != 0 {
		invD := 1.0 / dir.X
		t0 := (box.MinX - origin.X) * invD
		t1 := (box.MaxX - origin.X) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		tmin = t0
		tmax = t1
	} else if origin.X <= box.MinX || origin.X >= box.MaxX {
		// Parallel and outside (or grazing) the slab
		return 0, false
	}

	// Y slab
	if dir.Y != 0 {
		invD := 1.0 / dir.Y
		t0 := (box.MinY - origin.Y) * invD
		t1 := (box.MaxY - origin.Y) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
	} else if origin.Y <= box.MinY || origin.Y >= box.MaxY {
		return 0, false
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin <= 0 {
		// Origin inside or on the boundary
		return 0, false
	}
	if tmin > maxDist {
		return 0, false
	}
	return tmin, true
}

func clampFloat(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

func clamp01(v float32) float32 { return clampFloat(v, 0, 1) }

func sqrtf(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
