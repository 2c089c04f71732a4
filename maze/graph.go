package maze

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every tree invariant violation reported by Validate.
var ErrInvariant = errors.New("maze: tree invariant violated")

// Exclusion rejects a candidate root position. Returning true excludes it.
type Exclusion func(candidate NodeID) bool

// Graph is a rooted spanning tree over a Grid.
// Every node except the root has exactly one parent, and every edge joins
// grid-adjacent nodes.
type Graph struct {
	grid    *Grid
	parent  []NodeID
	root    NodeID
	version uint64
}

// NewGraph builds the initial comb-shaped tree: every row chains rightward,
// the last column chains downward, and the bottom-right node is the root.
func NewGraph(grid *Grid) *Graph {
	g := &Graph{
		grid:   grid,
		parent: make([]NodeID, grid.Len()),
	}
	rows, cols := grid.Rows(), grid.Cols()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			id := grid.At(x, y)
			switch {
			case x+1 < cols:
				g.parent[id] = grid.At(x+1, y)
			case y+1 < rows:
				g.parent[id] = grid.At(x, y+1)
			default:
				g.parent[id] = NoNode
			}
		}
	}
	g.root = grid.At(cols-1, rows-1)
	return g
}

// Grid returns the underlying grid.
func (g *Graph) Grid() *Grid { return g.grid }

// Root returns the current root.
func (g *Graph) Root() NodeID { return g.root }

// Parent returns the parent of id, or NoNode for the root.
func (g *Graph) Parent(id NodeID) NodeID { return g.parent[id] }

// Version increments on every relocation.
func (g *Graph) Version() uint64 { return g.version }

// RelocateRoot moves the root one step in direction d and returns the new root.
// The old root is attached beneath the new one and the new root drops its
// parent edge. d must be in bounds; use AvailableDirections first.
func (g *Graph) RelocateRoot(d Direction) NodeID {
	next, ok := g.grid.Neighbor(g.root, d)
	if !ok {
		n := g.grid.Node(g.root)
		panic(fmt.Sprintf("maze: cannot relocate root (%d, %d) %s: off grid", n.X, n.Y, d))
	}
	g.parent[g.root] = next
	g.parent[next] = NoNode
	g.root = next
	g.version++
	return next
}

// AvailableDirections appends to dst every in-bounds direction from the root
// whose neighbour is not rejected by exclude. A nil exclude only checks bounds.
func (g *Graph) AvailableDirections(dst []Direction, exclude Exclusion) []Direction {
	for _, d := range Directions {
		next, ok := g.grid.Neighbor(g.root, d)
		if !ok {
			continue
		}
		if exclude != nil && exclude(next) {
			continue
		}
		dst = append(dst, d)
	}
	return dst
}

// HasEdge reports whether a tree edge joins a and b, in either direction.
func (g *Graph) HasEdge(a, b NodeID) bool {
	return g.parent[a] == b || g.parent[b] == a
}

// Degree returns the number of tree edges touching id.
func (g *Graph) Degree(id NodeID) int {
	n := 0
	for _, d := range Directions {
		if next, ok := g.grid.Neighbor(id, d); ok && g.HasEdge(id, next) {
			n++
		}
	}
	return n
}

// Depth returns the number of parent links from id to the root,
// or -1 if the chain does not reach the root within the node count.
func (g *Graph) Depth(id NodeID) int {
	limit := len(g.parent)
	steps := 0
	for cur := id; cur != g.root; cur = g.parent[cur] {
		if cur == NoNode || steps >= limit {
			return -1
		}
		steps++
	}
	return steps
}

// Edges calls fn for every (child, parent) pair.
func (g *Graph) Edges(fn func(child, parent NodeID)) {
	for id, p := range g.parent {
		if p != NoNode {
			fn(NodeID(id), p)
		}
	}
}

// Validate checks the single-root, adjacency, acyclicity and connectivity
// invariants. The returned error wraps ErrInvariant.
func (g *Graph) Validate() error {
	roots := 0
	for id, p := range g.parent {
		if p == NoNode {
			roots++
			if NodeID(id) != g.root {
				n := g.grid.Node(NodeID(id))
				return fmt.Errorf("%w: node (%d, %d) has no parent but is not the root", ErrInvariant, n.X, n.Y)
			}
			continue
		}
		if _, ok := g.grid.DirectionTo(NodeID(id), p); !ok {
			a, b := g.grid.Node(NodeID(id)), g.grid.Node(p)
			return fmt.Errorf("%w: edge (%d, %d) -> (%d, %d) is not grid-adjacent", ErrInvariant, a.X, a.Y, b.X, b.Y)
		}
	}
	if roots != 1 {
		return fmt.Errorf("%w: %d parentless nodes, want 1", ErrInvariant, roots)
	}
	for id := range g.parent {
		if g.Depth(NodeID(id)) < 0 {
			n := g.grid.Node(NodeID(id))
			return fmt.Errorf("%w: node (%d, %d) does not reach the root", ErrInvariant, n.X, n.Y)
		}
	}
	return nil
}
