package systems

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/components"
	"github.com/pthm-cable/driftmaze/maze"
)

// borderHalfThickness is the half thickness of the outer boundary colliders.
const borderHalfThickness = 1

// ErrWallMismatch is wrapped by Verify when walls disagree with the tree.
var ErrWallMismatch = errors.New("systems: walls out of sync with tree")

// SyncResult summarises one wall rebuild.
type SyncResult struct {
	Walls   int    // Wall entities spawned
	Links   int    // PathLink entities spawned
	Removed int    // Wall and PathLink entities discarded
	Version uint64 // Graph version the rebuild reflects
	Changed bool   // Tree changed since the previous rebuild
}

// WallSegment is a wall's box in world space, for drawing and checks.
type WallSegment struct {
	Node maze.NodeID
	Side maze.Direction
	Box  AABB
}

// WallSystem keeps wall and corridor entities consistent with the maze tree.
// Every sync discards all derived entities and respawns them from scratch.
type WallSystem struct {
	world *ecs.World
	graph *maze.Graph
	timer *IntervalTimer

	cellSize  float32
	pathWidth float32

	wallMapper   *ecs.Map5[components.Position, components.Collider, components.Occluder, components.Wall, components.Fog]
	linkMapper   *ecs.Map3[components.Position, components.PathLink, components.Fog]
	tileMapper   *ecs.Map3[components.Position, components.PathTile, components.Fog]
	staticMapper *ecs.Map4[components.Position, components.Collider, components.Occluder, components.Static]

	wallFilter     *ecs.Filter2[components.Position, components.Wall]
	linkFilter     *ecs.Filter1[components.PathLink]
	colliderFilter *ecs.Filter2[components.Position, components.Collider]

	colliders *ColliderIndex

	// wallSides holds a bitmask of walled sides per node, rebuilt on sync
	wallSides []uint8
	wallCount int
	linkCount int
	syncs     int
	synced    bool
	version   uint64

	removeBuf []ecs.Entity
	boxBuf    []AABB
}

// NewWallSystem creates the synchroniser. pathThickness is the corridor width
// as a fraction of the cell size. Call Setup before the first Update.
func NewWallSystem(world *ecs.World, graph *maze.Graph, pathThickness, syncInterval float32) *WallSystem {
	grid := graph.Grid()
	cell := grid.CellSize()

	margin := cell
	bounds := AABB{
		MinX: -grid.Width()*0.5 - margin,
		MinY: -grid.Height()*0.5 - margin,
		MaxX: grid.Width()*0.5 + margin,
		MaxY: grid.Height()*0.5 + margin,
	}

	return &WallSystem{
		world:          world,
		graph:          graph,
		timer:          NewIntervalTimer(syncInterval),
		cellSize:       cell,
		pathWidth:      cell * pathThickness,
		wallMapper:     ecs.NewMap5[components.Position, components.Collider, components.Occluder, components.Wall, components.Fog](world),
		linkMapper:     ecs.NewMap3[components.Position, components.PathLink, components.Fog](world),
		tileMapper:     ecs.NewMap3[components.Position, components.PathTile, components.Fog](world),
		staticMapper:   ecs.NewMap4[components.Position, components.Collider, components.Occluder, components.Static](world),
		wallFilter:     ecs.NewFilter2[components.Position, components.Wall](world),
		linkFilter:     ecs.NewFilter1[components.PathLink](world),
		colliderFilter: ecs.NewFilter2[components.Position, components.Collider](world),
		colliders:      NewColliderIndex(bounds, cell),
		wallSides:      make([]uint8, grid.Len()),
	}
}

// Timer exposes the sync timer for tuning.
func (ws *WallSystem) Timer() *IntervalTimer { return ws.timer }

// Colliders returns the broadphase over every wall, pillar and border.
func (ws *WallSystem) Colliders() *ColliderIndex { return ws.colliders }

// PathWidth returns the corridor width in world units.
func (ws *WallSystem) PathWidth() float32 { return ws.pathWidth }

// Setup spawns the fixed geometry and performs the first sync.
func (ws *WallSystem) Setup() SyncResult {
	ws.spawnStatic()
	return ws.Sync()
}

// Update advances the sync timer and rebuilds when it fires.
func (ws *WallSystem) Update(dt float32) (SyncResult, bool) {
	if !ws.timer.Tick(dt) {
		return SyncResult{}, false
	}
	return ws.Sync(), true
}

// spawnStatic creates the border colliders, corner pillars and path tiles.
func (ws *WallSystem) spawnStatic() {
	grid := ws.graph.Grid()
	halfW := grid.Width() * 0.5
	halfH := grid.Height() * 0.5
	gap := ws.cellSize - ws.pathWidth
	inset := borderHalfThickness - gap*0.5

	borders := []struct {
		pos components.Position
		col components.Collider
	}{
		{components.Position{X: 0, Y: halfH + inset}, components.Collider{HalfW: halfW, HalfH: borderHalfThickness}},
		{components.Position{X: 0, Y: -halfH - inset}, components.Collider{HalfW: halfW, HalfH: borderHalfThickness}},
		{components.Position{X: halfW + inset, Y: 0}, components.Collider{HalfW: borderHalfThickness, HalfH: halfH}},
		{components.Position{X: -halfW - inset, Y: 0}, components.Collider{HalfW: borderHalfThickness, HalfH: halfH}},
	}
	for _, b := range borders {
		pos, col := b.pos, b.col
		occ := components.OccluderFor(pos, col)
		ws.staticMapper.NewEntity(&pos, &col, &occ, &components.Static{Kind: components.StaticBorder})
	}

	// One pillar at every cell corner, including the outer ring
	pillar := components.Collider{HalfW: gap * 0.5, HalfH: gap * 0.5}
	for j := 0; j <= grid.Rows(); j++ {
		for i := 0; i <= grid.Cols(); i++ {
			pos := components.Position{
				X: float32(i)*ws.cellSize - halfW,
				Y: float32(j)*ws.cellSize - halfH,
			}
			col := pillar
			occ := components.OccluderFor(pos, col)
			ws.staticMapper.NewEntity(&pos, &col, &occ, &components.Static{Kind: components.StaticPillar})
		}
	}

	for _, n := range grid.Nodes() {
		pos := components.Position{X: n.Position.X, Y: n.Position.Y}
		ws.tileMapper.NewEntity(&pos, &components.PathTile{Node: n.ID}, &components.Fog{})
	}
}

// Sync discards every Wall and PathLink entity and respawns them from the
// current tree, then rebuilds the collider broadphase.
func (ws *WallSystem) Sync() SyncResult {
	removed := ws.despawnDerived()

	grid := ws.graph.Grid()
	gap := ws.cellSize - ws.pathWidth
	walls, links := 0, 0

	for i := range ws.wallSides {
		ws.wallSides[i] = 0
	}

	for _, n := range grid.Nodes() {
		for _, d := range maze.Directions {
			next, ok := grid.Neighbor(n.ID, d)
			if !ok {
				// Border colliders close the outer sides
				continue
			}
			mid := n.Position.Add(grid.Node(next).Position).Scale(0.5)
			pos := components.Position{X: mid.X, Y: mid.Y}

			if ws.graph.HasEdge(n.ID, next) {
				// Each edge gets one corridor segment, spawned from the child
				if ws.graph.Parent(n.ID) == next {
					ws.linkMapper.NewEntity(&pos, &components.PathLink{Child: n.ID, Parent: next}, &components.Fog{})
					links++
				}
				continue
			}

			col := wallCollider(d, gap, ws.pathWidth)
			occ := components.OccluderFor(pos, col)
			ws.wallMapper.NewEntity(&pos, &col, &occ, &components.Wall{Node: n.ID, Side: d}, &components.Fog{})
			ws.wallSides[n.ID] |= 1 << d
			walls++
		}
	}

	ws.wallCount = walls
	ws.linkCount = links
	ws.rebuildColliders()

	changed := !ws.synced || ws.version != ws.graph.Version()
	ws.synced = true
	ws.version = ws.graph.Version()
	ws.syncs++

	return SyncResult{
		Walls:   walls,
		Links:   links,
		Removed: removed,
		Version: ws.version,
		Changed: changed,
	}
}

// despawnDerived removes all Wall and PathLink entities.
func (ws *WallSystem) despawnDerived() int {
	// First pass: collect (query holds the world lock)
	ws.removeBuf = ws.removeBuf[:0]
	wq := ws.wallFilter.Query()
	for wq.Next() {
		ws.removeBuf = append(ws.removeBuf, wq.Entity())
	}
	lq := ws.linkFilter.Query()
	for lq.Next() {
		ws.removeBuf = append(ws.removeBuf, lq.Entity())
	}

	// Second pass: remove
	for _, e := range ws.removeBuf {
		ws.world.RemoveEntity(e)
	}
	return len(ws.removeBuf)
}

// rebuildColliders snapshots every collider into the broadphase.
func (ws *WallSystem) rebuildColliders() {
	ws.boxBuf = ws.boxBuf[:0]
	q := ws.colliderFilter.Query()
	for q.Next() {
		pos, col := q.Get()
		ws.boxBuf = append(ws.boxBuf, BoxAround(pos.X, pos.Y, col.HalfW, col.HalfH))
	}
	ws.colliders.Rebuild(ws.boxBuf)
}

// wallCollider sizes the wall that closes side d of a node: it spans the
// corridor width across the side and fills the gap between path tiles along it.
func wallCollider(d maze.Direction, gap, path float32) components.Collider {
	if d.Horizontal() {
		return components.Collider{HalfW: gap * 0.5, HalfH: path * 0.5}
	}
	return components.Collider{HalfW: path * 0.5, HalfH: gap * 0.5}
}

// HasWall reports whether side d of node id is walled.
func (ws *WallSystem) HasWall(id maze.NodeID, d maze.Direction) bool {
	return ws.wallSides[id]&(1<<d) != 0
}

// OpenSides appends every in-bounds side of id that has no wall.
func (ws *WallSystem) OpenSides(dst []maze.Direction, id maze.NodeID) []maze.Direction {
	grid := ws.graph.Grid()
	for _, d := range maze.Directions {
		if _, ok := grid.Neighbor(id, d); !ok {
			continue
		}
		if !ws.HasWall(id, d) {
			dst = append(dst, d)
		}
	}
	return dst
}

// Verify checks that every in-bounds side is walled exactly when no tree edge
// crosses it. Only meaningful while SyncedVersion matches the graph.
func (ws *WallSystem) Verify() error {
	grid := ws.graph.Grid()
	for _, n := range grid.Nodes() {
		open := 0
		for _, d := range maze.Directions {
			next, ok := grid.Neighbor(n.ID, d)
			if !ok {
				continue
			}
			wall := ws.HasWall(n.ID, d)
			if wall == ws.graph.HasEdge(n.ID, next) {
				return fmt.Errorf("%w: node (%d, %d) side %s wall=%v", ErrWallMismatch, n.X, n.Y, d, wall)
			}
			if !wall {
				open++
			}
		}
		if deg := ws.graph.Degree(n.ID); open != deg {
			return fmt.Errorf("%w: node (%d, %d) has %d open sides, degree %d", ErrWallMismatch, n.X, n.Y, open, deg)
		}
	}
	return nil
}

// InSync reports whether the walls reflect the current tree.
func (ws *WallSystem) InSync() bool {
	return ws.synced && ws.version == ws.graph.Version()
}

// WallCount returns the number of wall entities from the latest sync.
func (ws *WallSystem) WallCount() int { return ws.wallCount }

// LinkCount returns the number of corridor segments from the latest sync.
func (ws *WallSystem) LinkCount() int { return ws.linkCount }

// Syncs returns how many rebuilds have run.
func (ws *WallSystem) Syncs() int { return ws.syncs }

// SyncedVersion is the graph version reflected by the current walls.
func (ws *WallSystem) SyncedVersion() uint64 { return ws.version }

// Segments appends the world box of every wall entity.
func (ws *WallSystem) Segments(dst []WallSegment) []WallSegment {
	gap := ws.cellSize - ws.pathWidth
	q := ws.wallFilter.Query()
	for q.Next() {
		pos, wall := q.Get()
		c := wallCollider(wall.Side, gap, ws.pathWidth)
		dst = append(dst, WallSegment{
			Node: wall.Node,
			Side: wall.Side,
			Box:  BoxAround(pos.X, pos.Y, c.HalfW, c.HalfH),
		})
	}
	return dst
}
