package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/maze"
)

func testObserverParams() ObserverParams {
	return ObserverParams{
		Radius:         5,
		Speed:          100,
		SprintFactor:   1.5,
		SprintDrain:    0.5,
		SprintRecovery: 0.5,
		RecoveryDelay:  1,
		RangeRadius:    4 * 40,
	}
}

func TestObserverMovesAndSprints(t *testing.T) {
	tests := []struct {
		name   string
		input  ObserverInput
		wantDX float32
	}{
		{"walk", ObserverInput{Dir: maze.Vec2{X: 1}}, 10},
		{"sprint", ObserverInput{Dir: maze.Vec2{X: 1}, Sprint: true}, 15},
		{"unnormalised input", ObserverInput{Dir: maze.Vec2{X: 3}}, 10},
		{"idle", ObserverInput{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grid := maze.NewGridWithCellSize(3, 3, 40)
			obs := NewObserverSystem(ecs.NewWorld(), grid, testObserverParams(), maze.Vec2{})
			obs.Update(0.1, tc.input, nil)
			if dx := obs.Position().X; math.Abs(float64(dx-tc.wantDX)) > 1e-4 {
				t.Errorf("moved %f, want %f", dx, tc.wantDX)
			}
		})
	}
}

func TestObserverStamina(t *testing.T) {
	grid := maze.NewGridWithCellSize(3, 3, 40)
	obs := NewObserverSystem(ecs.NewWorld(), grid, testObserverParams(), maze.Vec2{})
	run := ObserverInput{Dir: maze.Vec2{X: 1}, Sprint: true}

	// Drain 0.5/s empties stamina after 2s
	for i := 0; i < 25; i++ {
		obs.Update(0.1, run, nil)
	}
	if s := obs.State(); s.Stamina != 0 || s.Sprinting {
		t.Fatalf("after drain: stamina=%f sprinting=%v", s.Stamina, s.Sprinting)
	}

	// Exhausted sprint moves at walking speed
	before := obs.Position().X
	obs.Update(0.1, run, nil)
	if dx := obs.Position().X - before; math.Abs(float64(dx-10)) > 1e-3 {
		t.Errorf("exhausted sprint moved %f, want 10", dx)
	}

	// No recovery during the delay
	obs.Update(0.5, ObserverInput{}, nil)
	if s := obs.State(); s.Stamina != 0 {
		t.Errorf("stamina recovered during delay: %f", s.Stamina)
	}
	obs.Update(0.6, ObserverInput{}, nil)
	if s := obs.State(); s.Stamina <= 0 {
		t.Error("stamina did not recover after delay")
	}
}

func TestObserverPushOut(t *testing.T) {
	ci := NewColliderIndex(AABB{MinX: -100, MinY: -100, MaxX: 100, MaxY: 100}, 20)
	wall := AABB{MinX: 10, MinY: -20, MaxX: 20, MaxY: 20}
	ci.Rebuild([]AABB{wall})

	tests := []struct {
		name  string
		start maze.Vec2
	}{
		{"overlapping face", maze.Vec2{X: 7}},
		{"centre inside", maze.Vec2{X: 11}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := resolveCircle(tc.start, 5, ci)
			cx := clampFloat(p.X, wall.MinX, wall.MaxX)
			cy := clampFloat(p.Y, wall.MinY, wall.MaxY)
			dx, dy := p.X-cx, p.Y-cy
			if d := sqrtf(dx*dx + dy*dy); d < 5-1e-3 {
				t.Errorf("still overlapping: distance %f from wall", d)
			}
		})
	}
}

func TestObserverBlockedByWalls(t *testing.T) {
	world := ecs.NewWorld()
	grid := maze.NewGridWithCellSize(3, 3, 40)
	graph := maze.NewGraph(grid)
	ws := NewWallSystem(world, graph, 0.5, 0.1)
	ws.Setup()

	start := grid.Node(grid.At(1, 1)).Position
	obs := NewObserverSystem(world, grid, testObserverParams(), start)

	// (1,1) has a wall on its Up side in the comb tree
	for i := 0; i < 60; i++ {
		obs.Update(1.0/60, ObserverInput{Dir: maze.Vec2{Y: -1}}, ws.Colliders())
	}
	if id, _ := obs.CurrentNode(); id != grid.At(1, 1) {
		n := grid.Node(id)
		t.Errorf("observer passed through a wall into (%d, %d)", n.X, n.Y)
	}
}

func TestObserverRangeNodes(t *testing.T) {
	grid := maze.NewGridWithCellSize(9, 9, 40)
	obs := NewObserverSystem(ecs.NewWorld(), grid, testObserverParams(), grid.Node(grid.At(4, 4)).Position)

	nodes := obs.RangeNodes(nil)
	centre := grid.Node(grid.At(4, 4)).Position
	for _, id := range nodes {
		if grid.Node(id).Position.Dist(centre) >= 160 {
			t.Errorf("node %d outside range", id)
		}
	}
	// Straight-line neighbours at 3 cells are in, 4 cells out
	want := map[maze.NodeID]bool{grid.At(4, 1): true, grid.At(4, 0): false}
	got := make(map[maze.NodeID]bool)
	for _, id := range nodes {
		got[id] = true
	}
	for id, in := range want {
		if got[id] != in {
			t.Errorf("node %d in range = %v, want %v", id, got[id], in)
		}
	}
}
