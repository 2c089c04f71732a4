// Package components defines ECS components for the maze.
package components

import "github.com/pthm-cable/driftmaze/maze"

// Wall marks a derived wall segment on one side of a node.
// Wall entities are discarded and respawned on every synchronization pass.
type Wall struct {
	Node maze.NodeID
	Side maze.Direction
}

// PathLink marks the corridor segment drawn across a tree edge.
type PathLink struct {
	Child  maze.NodeID
	Parent maze.NodeID
}

// PathTile marks the corridor square at a node centre. Spawned once.
type PathTile struct {
	Node maze.NodeID
}

// StaticKind distinguishes the fixed colliders spawned at setup.
type StaticKind uint8

const (
	StaticBorder StaticKind = iota // Outer maze boundary
	StaticPillar                   // Block at a cell corner
)

// Static marks geometry that never changes after setup.
type Static struct {
	Kind StaticKind
}

// FogState represents how much of a geometry element the observer has seen.
type FogState uint8

const (
	FogHidden   FogState = iota // Never seen since spawn
	FogExplored                 // Seen before but not now
	FogVisible                  // Currently near a visibility point
)

// Fog holds the reveal state of a wall or path element.
type Fog struct {
	State FogState
}

// Observer holds the controllable avatar's sprint state.
type Observer struct {
	Stamina     float32 // 0-1
	SinceSprint float32 // Seconds since sprint was last held
	Sprinting   bool
}
