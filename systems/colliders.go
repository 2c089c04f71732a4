package systems

import (
	"math"

	"github.com/pthm-cable/driftmaze/maze"
)

// ColliderIndex is a uniform grid over wall colliders used for ray casts and
// body overlap queries. It is rebuilt wholesale after every wall sync.
type ColliderIndex struct {
	originX, originY float32
	cellSize         float32
	cols, rows       int

	boxes []AABB
	cells [][]int // indices into boxes

	// Generation-based dedupe so queries need no per-call clearing
	seenGeneration int
	seen           []int
	candidateBuf   []int
}

// NewColliderIndex creates an index covering bounds with square cells of the
// given size. Boxes outside bounds are clamped into the edge cells.
func NewColliderIndex(bounds AABB, cellSize float32) *ColliderIndex {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(float64((bounds.MaxX-bounds.MinX)/cellSize))) + 1
	rows := int(math.Ceil(float64((bounds.MaxY-bounds.MinY)/cellSize))) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	return &ColliderIndex{
		originX:      bounds.MinX,
		originY:      bounds.MinY,
		cellSize:     cellSize,
		cols:         cols,
		rows:         rows,
		cells:        cells,
		candidateBuf: make([]int, 0, 64),
	}
}

// Rebuild replaces the indexed boxes.
func (ci *ColliderIndex) Rebuild(boxes []AABB) {
	ci.boxes = append(ci.boxes[:0], boxes...)
	for i := range ci.cells {
		ci.cells[i] = ci.cells[i][:0]
	}
	if len(ci.seen) < len(ci.boxes) {
		ci.seen = make([]int, len(ci.boxes)*2)
	}

	for i, b := range ci.boxes {
		minC, minR := ci.cellCoords(b.MinX, b.MinY)
		maxC, maxR := ci.cellCoords(b.MaxX, b.MaxY)
		for r := minR; r <= maxR; r++ {
			for c := minC; c <= maxC; c++ {
				idx := r*ci.cols + c
				ci.cells[idx] = append(ci.cells[idx], i)
			}
		}
	}
}

// Len returns the number of indexed boxes.
func (ci *ColliderIndex) Len() int { return len(ci.boxes) }

// Box returns the i-th indexed box.
func (ci *ColliderIndex) Box(i int) AABB { return ci.boxes[i] }

// Query returns indices of boxes whose cells overlap area. The returned
// slice is reused by the next call.
func (ci *ColliderIndex) Query(area AABB) []int {
	ci.candidateBuf = ci.candidateBuf[:0]
	ci.seenGeneration++
	gen := ci.seenGeneration

	minC, minR := ci.cellCoords(area.MinX, area.MinY)
	maxC, maxR := ci.cellCoords(area.MaxX, area.MaxY)
	for r := minR; r <= maxR; r++ {
		for c := minC; c <= maxC; c++ {
			for _, idx := range ci.cells[r*ci.cols+c] {
				if ci.seen[idx] != gen {
					ci.seen[idx] = gen
					ci.candidateBuf = append(ci.candidateBuf, idx)
				}
			}
		}
	}
	return ci.candidateBuf
}

// RayCast finds the nearest collider hit by a ray from origin along the unit
// vector dir within maxDist. Colliders containing the origin are ignored.
func (ci *ColliderIndex) RayCast(origin, dir maze.Vec2, maxDist float32) (float32, bool) {
	end := origin.Add(dir.Scale(maxDist))
	area := AABB{
		MinX: min(origin.X, end.X), MinY: min(origin.Y, end.Y),
		MaxX: max(origin.X, end.X), MaxY: max(origin.Y, end.Y),
	}

	best := maxDist
	hit := false
	for _, idx := range ci.Query(area) {
		if toi, ok := rayAABB(origin, dir, best, ci.boxes[idx]); ok && toi <= best {
			best = toi
			hit = true
		}
	}
	return best, hit
}

// rawCell returns the unclamped grid cell for a world position. Positions
// below the origin map to negative cells.
func (ci *ColliderIndex) rawCell(x, y float32) (int, int) {
	col := int(math.Floor(float64((x - ci.originX) / ci.cellSize)))
	row := int(math.Floor(float64((y - ci.originY) / ci.cellSize)))
	return col, row
}

// cellCoords returns the clamped grid cell for a world position.
func (ci *ColliderIndex) cellCoords(x, y float32) (int, int) {
	col, row := ci.rawCell(x, y)

	if col < 0 {
		col = 0
	} else if col >= ci.cols {
		col = ci.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= ci.rows {
		row = ci.rows - 1
	}
	return col, row
}
