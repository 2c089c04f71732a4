// Package maze holds the grid, the rooted spanning tree over it, and the
// random root walk that keeps the tree drifting.
package maze

import (
	"fmt"
	"math"
)

// NodeID is a stable handle into the grid's node arena.
type NodeID int32

// NoNode marks an absent node reference (the root's parent).
const NoNode NodeID = -1

// Node is a single grid cell with a fixed world position.
type Node struct {
	ID       NodeID
	X, Y     int  // grid index
	Position Vec2 // world-space centre
}

// Grid is a fixed rows x cols arena of nodes centred on the world origin.
// It is immutable after construction.
type Grid struct {
	rows, cols int
	cellSize   float32
	nodes      []Node
}

// NewGrid sizes cells to fit the viewport and lays out rows x cols nodes.
// Shape and viewport must both be positive.
func NewGrid(rows, cols int, viewportW, viewportH float32) *Grid {
	cell := float32(math.Floor(math.Min(float64(viewportW)/float64(cols), float64(viewportH)/float64(rows))))
	if cell < 1 {
		cell = 1
	}
	return NewGridWithCellSize(rows, cols, cell)
}

// NewGridWithCellSize lays out rows x cols nodes with an explicit cell size.
func NewGridWithCellSize(rows, cols int, cellSize float32) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("maze: grid shape must be positive, got %dx%d", rows, cols))
	}
	g := &Grid{
		rows:     rows,
		cols:     cols,
		cellSize: cellSize,
		nodes:    make([]Node, rows*cols),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id := NodeID(y*cols + x)
			g.nodes[id] = Node{
				ID:       id,
				X:        x,
				Y:        y,
				Position: g.WorldPosition(x, y),
			}
		}
	}
	return g
}

// WorldPosition returns the centre of cell (x, y).
func (g *Grid) WorldPosition(x, y int) Vec2 {
	return Vec2{
		X: (float32(x) - float32(g.cols)*0.5 + 0.5) * g.cellSize,
		Y: (float32(y) - float32(g.rows)*0.5 + 0.5) * g.cellSize,
	}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the node count.
func (g *Grid) Len() int { return len(g.nodes) }

// CellSize returns the world size of one cell.
func (g *Grid) CellSize() float32 { return g.cellSize }

// Width returns the world width of the grid.
func (g *Grid) Width() float32 { return float32(g.cols) * g.cellSize }

// Height returns the world height of the grid.
func (g *Grid) Height() float32 { return float32(g.rows) * g.cellSize }

// InBounds reports whether (x, y) is a valid index.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// At returns the node at index (x, y). Panics when out of bounds.
func (g *Grid) At(x, y int) NodeID {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("maze: index (%d, %d) outside %dx%d grid", x, y, g.cols, g.rows))
	}
	return NodeID(y*g.cols + x)
}

// Node returns the node for id. Panics on an invalid id.
func (g *Grid) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// Nodes returns the arena in id order. Callers must not modify it.
func (g *Grid) Nodes() []Node {
	return g.nodes
}

// Neighbor returns the node adjacent to id in direction d, if it exists.
func (g *Grid) Neighbor(id NodeID, d Direction) (NodeID, bool) {
	n := &g.nodes[id]
	dx, dy := d.Delta()
	x, y := n.X+dx, n.Y+dy
	if !g.InBounds(x, y) {
		return NoNode, false
	}
	return NodeID(y*g.cols + x), true
}

// DirectionTo returns the direction from a to an adjacent node b.
func (g *Grid) DirectionTo(a, b NodeID) (Direction, bool) {
	na, nb := &g.nodes[a], &g.nodes[b]
	switch {
	case nb.X == na.X && nb.Y == na.Y-1:
		return Up, true
	case nb.X == na.X && nb.Y == na.Y+1:
		return Down, true
	case nb.Y == na.Y && nb.X == na.X-1:
		return Left, true
	case nb.Y == na.Y && nb.X == na.X+1:
		return Right, true
	}
	return Up, false
}

// NodeAt returns the node whose cell contains the world position.
func (g *Grid) NodeAt(p Vec2) (NodeID, bool) {
	x := int(math.Floor(float64(p.X/g.cellSize + float32(g.cols)*0.5)))
	y := int(math.Floor(float64(p.Y/g.cellSize + float32(g.rows)*0.5)))
	if !g.InBounds(x, y) {
		return NoNode, false
	}
	return NodeID(y*g.cols + x), true
}
