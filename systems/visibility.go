package systems

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/pthm-cable/driftmaze/maze"
)

// RayCaster finds the nearest obstacle along a unit ray.
type RayCaster interface {
	RayCast(origin, dir maze.Vec2, maxDist float32) (float32, bool)
}

// VisibilitySampler casts a fixed fan of rays from the observer each frame.
// Ray i points at angle i*2π/n, starting along +X.
type VisibilitySampler struct {
	numRays      int
	viewDistance float32

	// Precomputed unit directions per ray
	dirs []maze.Vec2

	origin   maze.Vec2
	points   []maze.Vec2
	previous []maze.Vec2
	hits     int
}

// NewVisibilitySampler creates a sampler with numRays rays reaching viewDistance.
func NewVisibilitySampler(numRays int, viewDistance float32) *VisibilitySampler {
	if numRays < 1 {
		numRays = 1
	}
	vs := &VisibilitySampler{
		numRays:      numRays,
		viewDistance: viewDistance,
		dirs:         make([]maze.Vec2, numRays),
		points:       make([]maze.Vec2, 0, numRays),
		previous:     make([]maze.Vec2, 0, numRays),
	}
	step := 2 * math.Pi / float64(numRays)
	for i := range vs.dirs {
		angle := float64(i) * step
		vs.dirs[i] = maze.Vec2{X: float32(math.Cos(angle)), Y: float32(math.Sin(angle))}
	}
	return vs
}

// Update recomputes the visibility set from origin. The previous set is kept.
func (vs *VisibilitySampler) Update(origin maze.Vec2, caster RayCaster) []maze.Vec2 {
	vs.previous, vs.points = vs.points, vs.previous[:0]
	vs.origin = origin
	vs.hits = 0

	for _, dir := range vs.dirs {
		dist := vs.viewDistance
		if caster != nil {
			if toi, ok := caster.RayCast(origin, dir, vs.viewDistance); ok {
				dist = toi
				vs.hits++
			}
		}
		vs.points = append(vs.points, origin.Add(dir.Scale(dist)))
	}
	return vs.points
}

// Points returns the current visibility set, one point per ray.
func (vs *VisibilitySampler) Points() []maze.Vec2 { return vs.points }

// Previous returns the visibility set from the update before last.
func (vs *VisibilitySampler) Previous() []maze.Vec2 { return vs.previous }

// Origin returns the observer position of the last update.
func (vs *VisibilitySampler) Origin() maze.Vec2 { return vs.origin }

// NumRays returns the ray count.
func (vs *VisibilitySampler) NumRays() int { return vs.numRays }

// ViewDistance returns the maximum ray length.
func (vs *VisibilitySampler) ViewDistance() float32 { return vs.viewDistance }

// Hits returns how many rays stopped at a collider in the last update.
func (vs *VisibilitySampler) Hits() int { return vs.hits }

// Polygon returns the visibility set as a closed ring in ray order.
func (vs *VisibilitySampler) Polygon() orb.Ring {
	if len(vs.points) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(vs.points)+1)
	for _, p := range vs.points {
		ring = append(ring, orb.Point{float64(p.X), float64(p.Y)})
	}
	return append(ring, ring[0])
}

// Contains reports whether p lies inside the visibility polygon.
func (vs *VisibilitySampler) Contains(p maze.Vec2) bool {
	ring := vs.Polygon()
	if len(ring) < 4 {
		return false
	}
	return planar.RingContains(ring, orb.Point{float64(p.X), float64(p.Y)})
}

// Area returns the area of the visibility polygon.
func (vs *VisibilitySampler) Area() float64 {
	ring := vs.Polygon()
	if len(ring) < 4 {
		return 0
	}
	return math.Abs(planar.Area(ring))
}

// MeanRadius returns the mean distance from origin to the visibility points.
func (vs *VisibilitySampler) MeanRadius() float32 {
	if len(vs.points) == 0 {
		return 0
	}
	var sum float32
	for _, p := range vs.points {
		sum += p.Dist(vs.origin)
	}
	return sum / float32(len(vs.points))
}

// Radii appends the distance of every visibility point from the origin.
func (vs *VisibilitySampler) Radii(dst []float64) []float64 {
	for _, p := range vs.points {
		dst = append(dst, float64(p.Dist(vs.origin)))
	}
	return dst
}
