package systems

import (
	"math/rand"

	"github.com/pthm-cable/driftmaze/maze"
)

// WalkResult reports what a RootWalker update did.
type WalkResult struct {
	Fired   bool        // Timer fired this update
	Moved   bool        // Root was relocated
	From    maze.NodeID // Root before the update
	To      maze.NodeID // Root after the update
	Options int         // Directions that were available
}

// RootWalker relocates the maze root one random step per timer interval.
type RootWalker struct {
	graph        *maze.Graph
	rng          *rand.Rand
	timer        *IntervalTimer
	policy       maze.ExclusionPolicy
	viewDistance float32

	dirBuf []maze.Direction

	// Counters consumed by telemetry
	Relocations int
	Skips       int
}

// NewRootWalker creates a walker over graph. viewDistance is in world units
// and only matters under ExclusionViewDistance.
func NewRootWalker(graph *maze.Graph, rng *rand.Rand, interval float32, policy maze.ExclusionPolicy, viewDistance float32) *RootWalker {
	return &RootWalker{
		graph:        graph,
		rng:          rng,
		timer:        NewIntervalTimer(interval),
		policy:       policy,
		viewDistance: viewDistance,
		dirBuf:       make([]maze.Direction, 0, len(maze.Directions)),
	}
}

// Timer exposes the walk timer for tuning.
func (w *RootWalker) Timer() *IntervalTimer { return w.timer }

// Policy returns the active exclusion policy.
func (w *RootWalker) Policy() maze.ExclusionPolicy { return w.policy }

// SetPolicy changes the exclusion policy.
func (w *RootWalker) SetPolicy(p maze.ExclusionPolicy) { w.policy = p }

// Update advances the walk timer and, when it fires, takes one step.
func (w *RootWalker) Update(dt float32, observer maze.Vec2) WalkResult {
	if !w.timer.Tick(dt) {
		root := w.graph.Root()
		return WalkResult{From: root, To: root}
	}
	res := w.Step(observer)
	res.Fired = true
	return res
}

// Step relocates the root once, ignoring the timer. When every direction is
// out of bounds or excluded the step is skipped.
func (w *RootWalker) Step(observer maze.Vec2) WalkResult {
	from := w.graph.Root()

	var exclude maze.Exclusion
	if w.policy == maze.ExclusionViewDistance {
		exclude = maze.ObserverExclusion(w.graph.Grid(), observer, w.viewDistance)
	}
	w.dirBuf = w.graph.AvailableDirections(w.dirBuf[:0], exclude)

	res := WalkResult{From: from, To: from, Options: len(w.dirBuf)}
	if len(w.dirBuf) == 0 {
		w.Skips++
		return res
	}

	d := w.dirBuf[w.rng.Intn(len(w.dirBuf))]
	res.To = w.graph.RelocateRoot(d)
	res.Moved = true
	w.Relocations++
	return res
}

// ResetCounters zeroes the relocation and skip counters.
func (w *RootWalker) ResetCounters() {
	w.Relocations = 0
	w.Skips = 0
}
