package maze

import (
	"math"
	"testing"
)

func TestNewGridCellSize(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		vw, vh     float32
		want       float32
	}{
		{"width bound", 9, 15, 800, 480, 53},
		{"height bound", 10, 5, 800, 480, 48},
		{"square", 7, 7, 350, 350, 50},
		{"fractional floor", 3, 3, 100, 100, 33},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(tc.rows, tc.cols, tc.vw, tc.vh)
			if g.CellSize() != tc.want {
				t.Errorf("CellSize = %f, want %f", g.CellSize(), tc.want)
			}
			if g.Len() != tc.rows*tc.cols {
				t.Errorf("Len = %d, want %d", g.Len(), tc.rows*tc.cols)
			}
		})
	}
}

func TestWorldPositionCentred(t *testing.T) {
	g := NewGridWithCellSize(7, 7, 50)

	centre := g.Node(g.At(3, 3)).Position
	if centre.X != 0 || centre.Y != 0 {
		t.Errorf("centre node at (%f, %f), want origin", centre.X, centre.Y)
	}

	corner := g.Node(g.At(6, 6)).Position
	if corner.X != 150 || corner.Y != 150 {
		t.Errorf("corner node at (%f, %f), want (150, 150)", corner.X, corner.Y)
	}

	// Even-sized grids have no node on the origin
	even := NewGridWithCellSize(2, 4, 10)
	p := even.Node(even.At(0, 0)).Position
	if p.X != -15 || p.Y != -5 {
		t.Errorf("(0,0) at (%f, %f), want (-15, -5)", p.X, p.Y)
	}
}

func TestNeighborBounds(t *testing.T) {
	g := NewGridWithCellSize(3, 4, 10)

	tests := []struct {
		x, y   int
		dir    Direction
		wantOK bool
		wantX  int
		wantY  int
	}{
		{0, 0, Up, false, 0, 0},
		{0, 0, Left, false, 0, 0},
		{0, 0, Right, true, 1, 0},
		{0, 0, Down, true, 0, 1},
		{3, 2, Right, false, 0, 0},
		{3, 2, Down, false, 0, 0},
		{3, 2, Up, true, 3, 1},
	}

	for _, tc := range tests {
		id, ok := g.Neighbor(g.At(tc.x, tc.y), tc.dir)
		if ok != tc.wantOK {
			t.Errorf("(%d,%d) %s: ok = %v, want %v", tc.x, tc.y, tc.dir, ok, tc.wantOK)
			continue
		}
		if !ok {
			continue
		}
		n := g.Node(id)
		if n.X != tc.wantX || n.Y != tc.wantY {
			t.Errorf("(%d,%d) %s = (%d,%d), want (%d,%d)", tc.x, tc.y, tc.dir, n.X, n.Y, tc.wantX, tc.wantY)
		}
	}
}

func TestNodeAtRoundtrip(t *testing.T) {
	g := NewGridWithCellSize(5, 6, 20)
	for _, n := range g.Nodes() {
		id, ok := g.NodeAt(n.Position)
		if !ok || id != n.ID {
			t.Fatalf("NodeAt(%v) = %d, %v; want %d", n.Position, id, ok, n.ID)
		}
		// Near the cell edge still resolves to the same cell
		edge := n.Position.Add(Vec2{X: 9.9, Y: -9.9})
		if id, _ := g.NodeAt(edge); id != n.ID {
			t.Fatalf("NodeAt(%v) = %d, want %d", edge, id, n.ID)
		}
	}

	if _, ok := g.NodeAt(Vec2{X: 1000, Y: 0}); ok {
		t.Error("expected position outside the grid to miss")
	}
}

func TestDirectionTo(t *testing.T) {
	g := NewGridWithCellSize(3, 3, 10)
	c := g.At(1, 1)
	for _, d := range Directions {
		n, _ := g.Neighbor(c, d)
		got, ok := g.DirectionTo(c, n)
		if !ok || got != d {
			t.Errorf("DirectionTo %s = %s, %v", d, got, ok)
		}
		back, _ := g.DirectionTo(n, c)
		if back != d.Opposite() {
			t.Errorf("reverse of %s = %s, want %s", d, back, d.Opposite())
		}
	}
	if _, ok := g.DirectionTo(g.At(0, 0), g.At(1, 1)); ok {
		t.Error("diagonal nodes must not be adjacent")
	}
}

func TestVec2(t *testing.T) {
	v := Vec2{X: 3, Y: 4}
	if v.Len() != 5 {
		t.Errorf("Len = %f, want 5", v.Len())
	}
	n := v.Normalize()
	if math.Abs(float64(n.Len()-1)) > 1e-6 {
		t.Errorf("normalized length = %f", n.Len())
	}
	if (Vec2{}).Normalize() != (Vec2{}) {
		t.Error("zero vector should normalise to zero")
	}
}
