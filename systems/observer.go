package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/components"
	"github.com/pthm-cable/driftmaze/maze"
)

// ObserverInput is one tick of movement intent.
type ObserverInput struct {
	Dir    maze.Vec2 // Desired direction; normalised before use
	Sprint bool
}

// ObserverParams holds observer movement tuning in world units.
type ObserverParams struct {
	Radius         float32
	Speed          float32
	SprintFactor   float32
	SprintDrain    float32
	SprintRecovery float32
	RecoveryDelay  float32
	RangeRadius    float32
}

// maxPushIterations bounds collision resolution per tick.
const maxPushIterations = 4

// ObserverSystem moves the single observer entity and resolves its collisions.
type ObserverSystem struct {
	mapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.Observer]
	entity ecs.Entity
	grid   *maze.Grid
	params ObserverParams
}

// NewObserverSystem spawns the observer at pos.
func NewObserverSystem(world *ecs.World, grid *maze.Grid, params ObserverParams, pos maze.Vec2) *ObserverSystem {
	o := &ObserverSystem{
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.Observer](world),
		grid:   grid,
		params: params,
	}
	o.entity = o.mapper.NewEntity(
		&components.Position{X: pos.X, Y: pos.Y},
		&components.Velocity{},
		&components.Body{Radius: params.Radius},
		&components.Observer{Stamina: 1},
	)
	return o
}

// Entity returns the observer entity.
func (o *ObserverSystem) Entity() ecs.Entity { return o.entity }

// Params returns the movement tuning.
func (o *ObserverSystem) Params() ObserverParams { return o.params }

// Position returns the observer's world position.
func (o *ObserverSystem) Position() maze.Vec2 {
	pos, _, _, _ := o.mapper.Get(o.entity)
	return maze.Vec2{X: pos.X, Y: pos.Y}
}

// SetPosition teleports the observer.
func (o *ObserverSystem) SetPosition(p maze.Vec2) {
	pos, _, _, _ := o.mapper.Get(o.entity)
	pos.X, pos.Y = p.X, p.Y
}

// State returns the observer's sprint state.
func (o *ObserverSystem) State() components.Observer {
	_, _, _, obs := o.mapper.Get(o.entity)
	return *obs
}

// Update applies input for dt seconds and pushes the observer out of any
// overlapping collider.
func (o *ObserverSystem) Update(dt float32, in ObserverInput, colliders *ColliderIndex) {
	pos, vel, body, obs := o.mapper.Get(o.entity)

	dir := in.Dir.Normalize()
	moving := dir.LenSq() > 0
	factor := o.updateSprint(dt, in.Sprint && moving, obs)

	speed := o.params.Speed * factor
	vel.X, vel.Y = dir.X*speed, dir.Y*speed
	pos.X += vel.X * dt
	pos.Y += vel.Y * dt

	if colliders != nil {
		p := resolveCircle(maze.Vec2{X: pos.X, Y: pos.Y}, body.Radius, colliders)
		pos.X, pos.Y = p.X, p.Y
	}
}

// updateSprint drains stamina while sprinting, recovers it after a delay,
// and returns the speed multiplier for this tick.
func (o *ObserverSystem) updateSprint(dt float32, sprint bool, obs *components.Observer) float32 {
	if sprint {
		obs.SinceSprint = 0
		if obs.Stamina > 0 {
			obs.Sprinting = true
			obs.Stamina = clamp01(obs.Stamina - o.params.SprintDrain*dt)
			return o.params.SprintFactor
		}
		obs.Sprinting = false
		return 1
	}

	obs.Sprinting = false
	obs.SinceSprint += dt
	if obs.SinceSprint >= o.params.RecoveryDelay && obs.Stamina < 1 {
		obs.Stamina = clamp01(obs.Stamina + o.params.SprintRecovery*dt)
	}
	return 1
}

// resolveCircle pushes a circle out of overlapping boxes.
func resolveCircle(p maze.Vec2, radius float32, colliders *ColliderIndex) maze.Vec2 {
	for iter := 0; iter < maxPushIterations; iter++ {
		pushed := false
		for _, idx := range colliders.Query(BoxAround(p.X, p.Y, radius, radius)) {
			box := colliders.Box(idx)
			// Closest point on the box to the circle centre
			cx := clampFloat(p.X, box.MinX, box.MaxX)
			cy := clampFloat(p.Y, box.MinY, box.MaxY)
			dx, dy := p.X-cx, p.Y-cy
			distSq := dx*dx + dy*dy
			if distSq >= radius*radius {
				continue
			}

			if distSq > 1e-12 {
				dist := sqrtf(distSq)
				push := (radius - dist) / dist
				p.X += dx * push
				p.Y += dy * push
			} else {
				// Centre inside the box: exit through the nearest face
				p = exitNearestFace(p, radius, box)
			}
			pushed = true
		}
		if !pushed {
			break
		}
	}
	return p
}

func exitNearestFace(p maze.Vec2, radius float32, box AABB) maze.Vec2 {
	left := p.X - box.MinX
	right := box.MaxX - p.X
	down := p.Y - box.MinY
	up := box.MaxY - p.Y

	switch min(left, right, down, up) {
	case left:
		p.X = box.MinX - radius
	case right:
		p.X = box.MaxX + radius
	case down:
		p.Y = box.MinY - radius
	default:
		p.Y = box.MaxY + radius
	}
	return p
}

// RangeNodes appends every node within the range radius of the observer.
func (o *ObserverSystem) RangeNodes(dst []maze.NodeID) []maze.NodeID {
	p := o.Position()
	limitSq := o.params.RangeRadius * o.params.RangeRadius
	for _, n := range o.grid.Nodes() {
		if n.Position.Sub(p).LenSq() < limitSq {
			dst = append(dst, n.ID)
		}
	}
	return dst
}

// CurrentNode returns the node containing the observer.
func (o *ObserverSystem) CurrentNode() (maze.NodeID, bool) {
	return o.grid.NodeAt(o.Position())
}
