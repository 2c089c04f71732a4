package systems

import (
	"github.com/dhconnelly/rtreego"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/components"
	"github.com/pthm-cable/driftmaze/maze"
)

type fogKind uint8

const (
	fogWall fogKind = iota
	fogLink
	fogTile
)

// fogItem is one revealable geometry element in the R-tree.
type fogItem struct {
	entity ecs.Entity
	kind   fogKind
	key    int // node*4+side for walls and links, node for tiles
	x, y   float32
	rect   rtreego.Rect
	seen   int // generation of the last reveal
}

// Bounds implements rtreego.Spatial.
func (f *fogItem) Bounds() rtreego.Rect {
	return f.rect
}

// FogSystem reveals walls and corridors near visibility points.
// Explored state is remembered per (node, side) so it survives wall rebuilds.
type FogSystem struct {
	grid   *maze.Grid
	radius float32

	tree     *rtreego.Rtree
	items    []fogItem
	spatials []rtreego.Spatial

	fogMap     *ecs.Map1[components.Fog]
	wallFilter *ecs.Filter2[components.Position, components.Wall]
	linkFilter *ecs.Filter2[components.Position, components.PathLink]
	tileFilter *ecs.Filter2[components.Position, components.PathTile]

	exploredWalls []bool
	exploredLinks []bool
	exploredTiles []bool

	generation int
	visible    int
	explored   int
}

// NewFogSystem creates a fog system revealing geometry within radius world
// units of a visibility point.
func NewFogSystem(world *ecs.World, grid *maze.Grid, radius float32) *FogSystem {
	n := grid.Len()
	return &FogSystem{
		grid:          grid,
		radius:        radius,
		tree:          rtreego.NewTree(2, 25, 50),
		fogMap:        ecs.NewMap1[components.Fog](world),
		wallFilter:    ecs.NewFilter2[components.Position, components.Wall](world),
		linkFilter:    ecs.NewFilter2[components.Position, components.PathLink](world),
		tileFilter:    ecs.NewFilter2[components.Position, components.PathTile](world),
		exploredWalls: make([]bool, n*4),
		exploredLinks: make([]bool, n*4),
		exploredTiles: make([]bool, n),
	}
}

// Radius returns the reveal radius in world units.
func (fs *FogSystem) Radius() float32 { return fs.radius }

// Rebuild re-indexes all fog geometry. Call after every wall sync; fresh
// entities take Explored if their slot was seen before, otherwise Hidden.
func (fs *FogSystem) Rebuild() {
	fs.items = fs.items[:0]

	wq := fs.wallFilter.Query()
	for wq.Next() {
		pos, wall := wq.Get()
		fs.items = append(fs.items, fogItem{
			entity: wq.Entity(),
			kind:   fogWall,
			key:    int(wall.Node)*4 + int(wall.Side),
			x:      pos.X,
			y:      pos.Y,
		})
	}
	lq := fs.linkFilter.Query()
	for lq.Next() {
		pos, link := lq.Get()
		// Keyed from the lower node so a flipped edge keeps its memory
		a, b := link.Child, link.Parent
		if b < a {
			a, b = b, a
		}
		d, _ := fs.grid.DirectionTo(a, b)
		fs.items = append(fs.items, fogItem{
			entity: lq.Entity(),
			kind:   fogLink,
			key:    int(a)*4 + int(d),
			x:      pos.X,
			y:      pos.Y,
		})
	}
	tq := fs.tileFilter.Query()
	for tq.Next() {
		pos, tile := tq.Get()
		fs.items = append(fs.items, fogItem{
			entity: tq.Entity(),
			kind:   fogTile,
			key:    int(tile.Node),
			x:      pos.X,
			y:      pos.Y,
		})
	}

	// Pointers into items stay valid until the next Rebuild
	fs.spatials = fs.spatials[:0]
	for i := range fs.items {
		it := &fs.items[i]
		it.rect = rtreego.Point{float64(it.x), float64(it.y)}.ToRect(0.5)
		fs.spatials = append(fs.spatials, it)
		fs.fogMap.Get(it.entity).State = fs.restingState(it)
	}
	fs.tree = rtreego.NewTree(2, 25, 50, fs.spatials...)
}

// Update marks geometry within the reveal radius of any point Visible and
// decays everything else.
func (fs *FogSystem) Update(points []maze.Vec2) {
	fs.generation++
	gen := fs.generation
	r := float64(fs.radius)
	rSq := fs.radius * fs.radius

	for _, p := range points {
		box := rtreego.Point{float64(p.X), float64(p.Y)}.ToRect(r)
		for _, s := range fs.tree.SearchIntersect(box) {
			it := s.(*fogItem)
			dx, dy := it.x-p.X, it.y-p.Y
			if dx*dx+dy*dy < rSq {
				it.seen = gen
			}
		}
	}

	fs.visible, fs.explored = 0, 0
	for i := range fs.items {
		it := &fs.items[i]
		fog := fs.fogMap.Get(it.entity)
		if it.seen == gen {
			fog.State = components.FogVisible
			fs.markExplored(it)
			fs.visible++
			continue
		}
		fog.State = fs.restingState(it)
		if fog.State == components.FogExplored {
			fs.explored++
		}
	}
}

func (fs *FogSystem) memory(kind fogKind) []bool {
	switch kind {
	case fogWall:
		return fs.exploredWalls
	case fogLink:
		return fs.exploredLinks
	}
	return fs.exploredTiles
}

func (fs *FogSystem) markExplored(it *fogItem) {
	fs.memory(it.kind)[it.key] = true
}

func (fs *FogSystem) restingState(it *fogItem) components.FogState {
	if fs.memory(it.kind)[it.key] {
		return components.FogExplored
	}
	return components.FogHidden
}

// VisibleCount returns how many elements were Visible after the last Update.
func (fs *FogSystem) VisibleCount() int { return fs.visible }

// ExploredCount returns how many elements were Explored after the last Update.
func (fs *FogSystem) ExploredCount() int { return fs.explored }

// Indexed returns how many elements the R-tree holds.
func (fs *FogSystem) Indexed() int { return len(fs.items) }
