// Package renderer draws the maze through the camera and runs the window loop.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/driftmaze/camera"
	"github.com/pthm-cable/driftmaze/components"
	"github.com/pthm-cable/driftmaze/maze"
)

// Palette entries for maze geometry.
var (
	colorBackground = rl.Color{R: 12, G: 14, B: 18, A: 255}
	colorPath       = rl.Color{R: 70, G: 78, B: 92, A: 255}
	colorWall       = rl.Color{R: 190, G: 170, B: 120, A: 255}
	colorPillar     = rl.Color{R: 120, G: 110, B: 90, A: 255}
	colorBorder     = rl.Color{R: 90, G: 90, B: 100, A: 255}
	colorObserver   = rl.Color{R: 90, G: 200, B: 255, A: 255}
)

// MazeRenderer draws tiles, corridor links, walls and static colliders,
// gated by each element's fog state.
type MazeRenderer struct {
	grid *maze.Grid

	tileFilter   *ecs.Filter3[components.Position, components.PathTile, components.Fog]
	linkFilter   *ecs.Filter3[components.Position, components.PathLink, components.Fog]
	wallFilter   *ecs.Filter4[components.Position, components.Collider, components.Wall, components.Fog]
	staticFilter *ecs.Filter3[components.Position, components.Collider, components.Static]

	pathWidth float32

	// tileFog caches each node's tile state from the last draw
	tileFog []components.FogState
}

// NewMazeRenderer creates filters over the maze world.
func NewMazeRenderer(world *ecs.World, grid *maze.Grid, pathWidth float32) *MazeRenderer {
	return &MazeRenderer{
		grid:         grid,
		tileFilter:   ecs.NewFilter3[components.Position, components.PathTile, components.Fog](world),
		linkFilter:   ecs.NewFilter3[components.Position, components.PathLink, components.Fog](world),
		wallFilter:   ecs.NewFilter4[components.Position, components.Collider, components.Wall, components.Fog](world),
		staticFilter: ecs.NewFilter3[components.Position, components.Collider, components.Static](world),
		pathWidth:    pathWidth,
		tileFog:      make([]components.FogState, grid.Len()),
	}
}

// TileFog returns the fog state of a node's tile as of the last draw.
func (m *MazeRenderer) TileFog(id maze.NodeID) components.FogState {
	return m.tileFog[id]
}

// Draw renders every geometry element. Hidden elements are skipped unless
// revealAll is set, and explored ones are dimmed.
func (m *MazeRenderer) Draw(cam *camera.Camera, revealAll bool) {
	half := m.pathWidth * 0.5
	linkHalf := (m.grid.CellSize() - m.pathWidth) * 0.5

	tq := m.tileFilter.Query()
	for tq.Next() {
		pos, tile, fog := tq.Get()
		m.tileFog[tile.Node] = fog.State
		if c, ok := fogColor(colorPath, fog.State, revealAll); ok {
			drawBox(cam, pos.X, pos.Y, half, half, c)
		}
	}

	lq := m.linkFilter.Query()
	for lq.Next() {
		pos, link, fog := lq.Get()
		c, ok := fogColor(colorPath, fog.State, revealAll)
		if !ok {
			continue
		}
		d, _ := m.grid.DirectionTo(link.Child, link.Parent)
		if d.Horizontal() {
			drawBox(cam, pos.X, pos.Y, linkHalf, half, c)
		} else {
			drawBox(cam, pos.X, pos.Y, half, linkHalf, c)
		}
	}

	wq := m.wallFilter.Query()
	for wq.Next() {
		pos, col, _, fog := wq.Get()
		if c, ok := fogColor(colorWall, fog.State, revealAll); ok {
			drawBox(cam, pos.X, pos.Y, col.HalfW, col.HalfH, c)
		}
	}

	sq := m.staticFilter.Query()
	for sq.Next() {
		pos, col, static := sq.Get()
		c := colorPillar
		if static.Kind == components.StaticBorder {
			c = colorBorder
		}
		drawBox(cam, pos.X, pos.Y, col.HalfW, col.HalfH, c)
	}
}

// DrawObserver renders the observer body.
func DrawObserver(cam *camera.Camera, p maze.Vec2, radius float32, sprinting bool) {
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	c := colorObserver
	if sprinting {
		c = rl.White
	}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius*cam.Zoom, c)
}

// fogColor returns the draw colour for a fog state, or false to skip.
func fogColor(base rl.Color, state components.FogState, revealAll bool) (rl.Color, bool) {
	switch state {
	case components.FogVisible:
		return base, true
	case components.FogExplored:
		return rl.ColorBrightness(base, -0.55), true
	}
	if revealAll {
		return rl.ColorAlpha(base, 0.25), true
	}
	return base, false
}

// drawBox draws an axis-aligned box given its world centre and half extents.
func drawBox(cam *camera.Camera, x, y, halfW, halfH float32, c rl.Color) {
	if !cam.IsVisible(x, y, max(halfW, halfH)) {
		return
	}
	sx, sy := cam.WorldToScreen(x-halfW, y-halfH)
	rl.DrawRectangleV(
		rl.Vector2{X: sx, Y: sy},
		rl.Vector2{X: halfW * 2 * cam.Zoom, Y: halfH * 2 * cam.Zoom},
		c,
	)
}
