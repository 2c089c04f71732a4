package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/driftmaze/maze"
)

func TestRootWalkerTimerGating(t *testing.T) {
	grid := maze.NewGridWithCellSize(5, 5, 10)
	graph := maze.NewGraph(grid)
	w := NewRootWalker(graph, rand.New(rand.NewSource(1)), 0.1, maze.ExclusionNone, 0)

	res := w.Update(0.05, maze.Vec2{})
	if res.Fired || res.Moved {
		t.Fatalf("walker fired before interval: %+v", res)
	}
	res = w.Update(0.05, maze.Vec2{})
	if !res.Fired || !res.Moved {
		t.Fatalf("walker did not move at interval: %+v", res)
	}
	if graph.Root() != res.To {
		t.Errorf("root = %d, want %d", graph.Root(), res.To)
	}
	if w.Relocations != 1 {
		t.Errorf("Relocations = %d, want 1", w.Relocations)
	}
}

func TestRootWalkerStepsToNeighbor(t *testing.T) {
	grid := maze.NewGridWithCellSize(6, 8, 10)
	graph := maze.NewGraph(grid)
	w := NewRootWalker(graph, rand.New(rand.NewSource(7)), 0.1, maze.ExclusionNone, 0)

	for i := 0; i < 500; i++ {
		res := w.Step(maze.Vec2{})
		if !res.Moved {
			t.Fatalf("step %d skipped with no exclusion", i)
		}
		if _, ok := grid.DirectionTo(res.From, res.To); !ok {
			t.Fatalf("step %d moved root to non-adjacent node", i)
		}
		if graph.Parent(res.From) != res.To {
			t.Fatalf("step %d: old root not attached to new root", i)
		}
	}
	if err := graph.Validate(); err != nil {
		t.Fatalf("invariants broken after walk: %v", err)
	}
}

func TestRootWalkerExclusion(t *testing.T) {
	tests := []struct {
		name      string
		policy    maze.ExclusionPolicy
		observer  func(*maze.Grid) maze.Vec2
		viewDist  float32
		wantMoved bool
	}{
		{
			name:      "no policy ignores observer",
			policy:    maze.ExclusionNone,
			observer:  func(g *maze.Grid) maze.Vec2 { return g.Node(g.At(2, 2)).Position },
			viewDist:  1000,
			wantMoved: true,
		},
		{
			name:      "observer covers every neighbour",
			policy:    maze.ExclusionViewDistance,
			observer:  func(g *maze.Grid) maze.Vec2 { return g.Node(g.At(2, 2)).Position },
			viewDist:  1000,
			wantMoved: false,
		},
		{
			name:      "observer far away",
			policy:    maze.ExclusionViewDistance,
			observer:  func(g *maze.Grid) maze.Vec2 { return g.Node(g.At(0, 0)).Position },
			viewDist:  5,
			wantMoved: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := maze.NewGridWithCellSize(3, 3, 10)
			graph := maze.NewGraph(grid)
			w := NewRootWalker(graph, rand.New(rand.NewSource(3)), 0.1, tc.policy, tc.viewDist)

			before := graph.Root()
			res := w.Step(tc.observer(grid))
			if res.Moved != tc.wantMoved {
				t.Fatalf("Moved = %v, want %v", res.Moved, tc.wantMoved)
			}
			if !tc.wantMoved {
				if graph.Root() != before {
					t.Error("root changed on a skipped step")
				}
				if w.Skips != 1 {
					t.Errorf("Skips = %d, want 1", w.Skips)
				}
			}
		})
	}
}

func TestRootWalkerDeterministic(t *testing.T) {
	run := func() []maze.NodeID {
		grid := maze.NewGridWithCellSize(4, 4, 10)
		graph := maze.NewGraph(grid)
		w := NewRootWalker(graph, rand.New(rand.NewSource(42)), 0.1, maze.ExclusionNone, 0)
		var roots []maze.NodeID
		for i := 0; i < 50; i++ {
			roots = append(roots, w.Step(maze.Vec2{}).To)
		}
		return roots
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("walks diverge at step %d: %d vs %d", i, a[i], b[i])
		}
	}
}
