package maze

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewGraphComb(t *testing.T) {
	grid := NewGridWithCellSize(7, 7, 50)
	g := NewGraph(grid)

	if g.Root() != grid.At(6, 6) {
		t.Fatalf("root = %d, want node (6,6)", g.Root())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("initial tree invalid: %v", err)
	}

	// Rows chain rightward, last column chains downward
	if p := g.Parent(grid.At(2, 3)); p != grid.At(3, 3) {
		t.Errorf("parent of (2,3) = %d, want (3,3)", p)
	}
	if p := g.Parent(grid.At(6, 3)); p != grid.At(6, 4) {
		t.Errorf("parent of (6,3) = %d, want (6,4)", p)
	}

	limit := grid.Rows() + grid.Cols()
	for id := range grid.Nodes() {
		d := g.Depth(NodeID(id))
		if d < 0 || d > limit {
			t.Errorf("depth of %d = %d, want within %d", id, d, limit)
		}
	}
}

func TestNewGraphSingleRowAndColumn(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
	}{
		{"single cell", 1, 1},
		{"single row", 1, 5},
		{"single column", 5, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := NewGridWithCellSize(tc.rows, tc.cols, 10)
			g := NewGraph(grid)
			if err := g.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if g.Root() != grid.At(tc.cols-1, tc.rows-1) {
				t.Errorf("root = %d, want last node", g.Root())
			}
		})
	}
}

func TestRelocateRootCorner(t *testing.T) {
	grid := NewGridWithCellSize(7, 7, 50)
	g := NewGraph(grid)

	dirs := g.AvailableDirections(nil, nil)
	if len(dirs) != 2 {
		t.Fatalf("corner has %d directions, want 2 (%v)", len(dirs), dirs)
	}

	old := g.Root()
	newRoot := g.RelocateRoot(Up)
	if newRoot != grid.At(6, 5) {
		t.Fatalf("new root = %d, want (6,5)", newRoot)
	}
	if g.Parent(old) != newRoot {
		t.Errorf("old root parent = %d, want %d", g.Parent(old), newRoot)
	}
	if g.Parent(newRoot) != NoNode {
		t.Errorf("new root still has parent %d", g.Parent(newRoot))
	}
	if g.Version() != 1 {
		t.Errorf("Version = %d, want 1", g.Version())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate after relocation: %v", err)
	}
}

func TestRelocateRootOffGridPanics(t *testing.T) {
	g := NewGraph(NewGridWithCellSize(3, 3, 10))
	defer func() {
		if recover() == nil {
			t.Error("expected panic relocating off the grid")
		}
	}()
	g.RelocateRoot(Right)
}

func TestRelocateRootEdgeSwap(t *testing.T) {
	grid := NewGridWithCellSize(4, 4, 10)
	g := NewGraph(grid)

	a := g.Root()
	g.RelocateRoot(Left)
	b := g.Root()
	c := g.Parent(b) // always NoNode right after relocation
	if c != NoNode {
		t.Fatalf("root parent = %d, want none", c)
	}

	// B's former parent was A via the row chain; the edge A-B now runs A -> B
	if !g.HasEdge(a, b) {
		t.Error("expected edge between old and new root")
	}
	if g.Parent(a) != b {
		t.Errorf("A.parent = %d, want B", g.Parent(a))
	}
}

func TestRandomWalkPreservesInvariants(t *testing.T) {
	sizes := []struct{ rows, cols int }{{7, 7}, {9, 15}, {1, 6}, {6, 1}, {2, 2}}
	for _, sz := range sizes {
		grid := NewGridWithCellSize(sz.rows, sz.cols, 10)
		g := NewGraph(grid)
		rng := rand.New(rand.NewSource(int64(sz.rows*100 + sz.cols)))
		var dirs []Direction

		for step := 0; step < 2000; step++ {
			dirs = g.AvailableDirections(dirs[:0], nil)
			if len(dirs) == 0 {
				if grid.Len() != 1 {
					t.Fatalf("%dx%d: no directions at step %d", sz.rows, sz.cols, step)
				}
				break
			}
			g.RelocateRoot(dirs[rng.Intn(len(dirs))])
			if err := g.Validate(); err != nil {
				t.Fatalf("%dx%d step %d: %v", sz.rows, sz.cols, step, err)
			}
		}

		edges := 0
		g.Edges(func(child, parent NodeID) { edges++ })
		if edges != grid.Len()-1 {
			t.Errorf("%dx%d: %d edges, want %d", sz.rows, sz.cols, edges, grid.Len()-1)
		}
	}
}

func TestAvailableDirectionsExclusion(t *testing.T) {
	grid := NewGridWithCellSize(7, 7, 50)
	g := NewGraph(grid)

	// Observer sits on (5,6): Left is within view distance, Up at (6,5) is ~70 away
	observer := grid.Node(grid.At(5, 6)).Position
	exclude := ObserverExclusion(grid, observer, 60)

	dirs := g.AvailableDirections(nil, exclude)
	if len(dirs) != 1 || dirs[0] != Up {
		t.Fatalf("directions = %v, want [up]", dirs)
	}

	g.RelocateRoot(dirs[0])
	if g.Root() != grid.At(6, 5) {
		t.Errorf("root = %d, want (6,5)", g.Root())
	}
	if g.Parent(grid.At(6, 6)) != grid.At(6, 5) {
		t.Errorf("(6,6).parent = %d, want (6,5)", g.Parent(grid.At(6, 6)))
	}

	// Excluding everything yields an empty set rather than an error
	none := g.AvailableDirections(nil, func(NodeID) bool { return true })
	if len(none) != 0 {
		t.Errorf("expected no directions, got %v", none)
	}
}

func TestValidateDetectsBrokenTree(t *testing.T) {
	grid := NewGridWithCellSize(3, 3, 10)

	tests := []struct {
		name   string
		mutate func(g *Graph)
	}{
		{"second root", func(g *Graph) { g.parent[grid.At(0, 0)] = NoNode }},
		{"diagonal edge", func(g *Graph) { g.parent[grid.At(0, 0)] = grid.At(1, 1) }},
		{"cycle", func(g *Graph) {
			g.parent[grid.At(0, 0)] = grid.At(1, 0)
			g.parent[grid.At(1, 0)] = grid.At(0, 0)
		}},
		{"root with parent", func(g *Graph) { g.parent[g.root] = grid.At(2, 1) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGraph(grid)
			tc.mutate(g)
			err := g.Validate()
			if err == nil {
				t.Fatal("expected invariant violation")
			}
			if !errors.Is(err, ErrInvariant) {
				t.Errorf("error %v does not wrap ErrInvariant", err)
			}
		})
	}
}

func TestDegreeMatchesEdges(t *testing.T) {
	grid := NewGridWithCellSize(5, 5, 10)
	g := NewGraph(grid)
	rng := rand.New(rand.NewSource(7))
	var dirs []Direction
	for i := 0; i < 300; i++ {
		dirs = g.AvailableDirections(dirs[:0], nil)
		g.RelocateRoot(dirs[rng.Intn(len(dirs))])
	}

	total := 0
	for id := range grid.Nodes() {
		total += g.Degree(NodeID(id))
	}
	// Each edge touches two nodes
	if total != 2*(grid.Len()-1) {
		t.Errorf("degree sum = %d, want %d", total, 2*(grid.Len()-1))
	}
}

func TestParseExclusionPolicy(t *testing.T) {
	for name, want := range map[string]ExclusionPolicy{"": ExclusionNone, "none": ExclusionNone, "view_distance": ExclusionViewDistance} {
		got, err := ParseExclusionPolicy(name)
		if err != nil || got != want {
			t.Errorf("ParseExclusionPolicy(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseExclusionPolicy("always"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
