package game

import (
	"math/rand"

	"github.com/pthm-cable/driftmaze/components"
	"github.com/pthm-cable/driftmaze/maze"
	"github.com/pthm-cable/driftmaze/systems"
)

// Sprint hysteresis thresholds on stamina.
const (
	sprintStart = 0.95
	sprintStop  = 0.3
)

// autopilot steers the observer along parent pointers toward the root.
// At the root it picks a random tree neighbour so the walk keeps moving.
type autopilot struct {
	grid      *maze.Grid
	graph     *maze.Graph
	rng       *rand.Rand
	tolerance float32

	wander    maze.NodeID
	sprinting bool
}

func newAutopilot(grid *maze.Grid, graph *maze.Graph, rng *rand.Rand, pathWidth float32) *autopilot {
	return &autopilot{
		grid:      grid,
		graph:     graph,
		rng:       rng,
		tolerance: pathWidth * 0.1,
		wander:    maze.NoNode,
	}
}

// Input computes one tick of steering from the observer's position.
func (a *autopilot) Input(pos maze.Vec2, state components.Observer) systems.ObserverInput {
	cur, ok := a.grid.NodeAt(pos)
	if !ok {
		// Outside the grid: head back to the origin
		return systems.ObserverInput{Dir: pos.Scale(-1).Normalize()}
	}

	next := a.graph.Parent(cur)
	if next == maze.NoNode {
		next = a.pickWander(cur)
	} else {
		a.wander = maze.NoNode
	}
	if next == maze.NoNode {
		return systems.ObserverInput{}
	}

	centre := a.grid.Node(cur).Position
	target := a.grid.Node(next).Position

	// Centre on the corridor axis before heading through the opening
	d, _ := a.grid.DirectionTo(cur, next)
	lateral := pos.X - centre.X
	if d.Horizontal() {
		lateral = pos.Y - centre.Y
	}
	if lateral > a.tolerance || lateral < -a.tolerance {
		target = centre
	}

	switch {
	case state.Stamina >= sprintStart:
		a.sprinting = true
	case state.Stamina <= sprintStop:
		a.sprinting = false
	}

	dir := target.Sub(pos)
	if dir.LenSq() < a.tolerance*a.tolerance {
		return systems.ObserverInput{Sprint: a.sprinting}
	}
	return systems.ObserverInput{Dir: dir.Normalize(), Sprint: a.sprinting}
}

// pickWander returns a tree neighbour of the root, keeping the previous
// choice while it is still adjacent.
func (a *autopilot) pickWander(root maze.NodeID) maze.NodeID {
	if a.wander != maze.NoNode && a.graph.HasEdge(root, a.wander) {
		return a.wander
	}
	var options [4]maze.NodeID
	n := 0
	for _, d := range maze.Directions {
		if next, ok := a.grid.Neighbor(root, d); ok && a.graph.HasEdge(root, next) {
			options[n] = next
			n++
		}
	}
	if n == 0 {
		a.wander = maze.NoNode
		return maze.NoNode
	}
	a.wander = options[a.rng.Intn(n)]
	return a.wander
}
