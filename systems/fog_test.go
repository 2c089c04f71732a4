package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/components"
	"github.com/pthm-cable/driftmaze/maze"
)

func fogStates(world *ecs.World) map[components.FogState]int {
	counts := make(map[components.FogState]int)
	q := ecs.NewFilter1[components.Fog](world).Query()
	for q.Next() {
		fog := q.Get()
		counts[fog.State]++
	}
	return counts
}

func TestFogRevealAndDecay(t *testing.T) {
	world := ecs.NewWorld()
	grid := maze.NewGridWithCellSize(5, 5, 40)
	graph := maze.NewGraph(grid)
	ws := NewWallSystem(world, graph, 0.5, 0.1)
	ws.Setup()

	fog := NewFogSystem(world, grid, grid.CellSize()*0.5)
	fog.Rebuild()

	if got := fogStates(world)[components.FogHidden]; got != fog.Indexed() {
		t.Fatalf("hidden = %d, want all %d elements hidden", got, fog.Indexed())
	}

	// A point on the centre tile reveals it
	centre := grid.Node(grid.At(2, 2)).Position
	fog.Update([]maze.Vec2{centre})
	if fog.VisibleCount() == 0 {
		t.Fatal("nothing revealed at the centre tile")
	}
	visible := fog.VisibleCount()

	// Moving the point away decays revealed geometry to explored
	far := grid.Node(grid.At(0, 0)).Position
	fog.Update([]maze.Vec2{far})
	if fog.ExploredCount() < visible {
		t.Errorf("explored = %d, want at least %d", fog.ExploredCount(), visible)
	}

	// No points leaves nothing visible
	fog.Update(nil)
	if fog.VisibleCount() != 0 {
		t.Errorf("visible = %d with no points, want 0", fog.VisibleCount())
	}
}

func TestFogRadiusIsExact(t *testing.T) {
	world := ecs.NewWorld()
	grid := maze.NewGridWithCellSize(1, 1, 40)
	graph := maze.NewGraph(grid)
	ws := NewWallSystem(world, graph, 0.5, 0.1)
	ws.Setup()

	fog := NewFogSystem(world, grid, 10)
	fog.Rebuild()

	tile := grid.Node(0).Position
	tests := []struct {
		name  string
		point maze.Vec2
		want  int
	}{
		{"inside radius", tile.Add(maze.Vec2{X: 9}), 1},
		{"on radius", tile.Add(maze.Vec2{X: 10}), 0},
		{"diagonal outside", tile.Add(maze.Vec2{X: 8, Y: 8}), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fog.Update([]maze.Vec2{tc.point})
			if fog.VisibleCount() != tc.want {
				t.Errorf("visible = %d, want %d", fog.VisibleCount(), tc.want)
			}
		})
	}
}

func TestFogMemorySurvivesResync(t *testing.T) {
	world := ecs.NewWorld()
	grid := maze.NewGridWithCellSize(3, 3, 40)
	graph := maze.NewGraph(grid)
	ws := NewWallSystem(world, graph, 0.5, 0.1)
	ws.Setup()

	fog := NewFogSystem(world, grid, grid.CellSize()*0.5)
	fog.Rebuild()

	var points []maze.Vec2
	for _, n := range grid.Nodes() {
		points = append(points, n.Position)
	}
	fog.Update(points)
	revealed := fog.VisibleCount()

	ws.Sync()
	fog.Rebuild()
	fog.Update(nil)
	if fog.ExploredCount() != revealed {
		t.Errorf("explored after resync = %d, want %d", fog.ExploredCount(), revealed)
	}
}
