package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftmaze/camera"
	"github.com/pthm-cable/driftmaze/maze"
	"github.com/pthm-cable/driftmaze/systems"
)

var (
	colorArrow      = rl.Color{R: 230, G: 230, B: 230, A: 160}
	colorRoot       = rl.Red
	colorRange      = rl.Color{R: 120, G: 220, B: 120, A: 120}
	colorCollider   = rl.Color{R: 255, G: 80, B: 80, A: 200}
	colorVisibility = rl.Color{R: 255, G: 240, B: 180, A: 50}
	colorRay        = rl.Color{R: 255, G: 240, B: 180, A: 90}
)

// DrawParentArrows draws an arrow from every non-root node toward its parent.
func DrawParentArrows(cam *camera.Camera, graph *maze.Graph) {
	grid := graph.Grid()
	length := grid.CellSize() * 0.35
	graph.Edges(func(child, parent maze.NodeID) {
		from := grid.Node(child).Position
		dir := grid.Node(parent).Position.Sub(from).Normalize()
		drawArrow(cam, from, from.Add(dir.Scale(length)), colorArrow)
	})
}

// DrawRoot highlights the root node.
func DrawRoot(cam *camera.Camera, graph *maze.Graph) {
	grid := graph.Grid()
	p := grid.Node(graph.Root()).Position
	sx, sy := cam.WorldToScreen(p.X, p.Y)
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, grid.CellSize()*0.2*cam.Zoom, colorRoot)
}

// DrawRangeNodes marks each node in ids with a small square.
func DrawRangeNodes(cam *camera.Camera, grid *maze.Grid, ids []maze.NodeID) {
	half := grid.CellSize() * 0.08
	for _, id := range ids {
		p := grid.Node(id).Position
		drawBox(cam, p.X, p.Y, half, half, colorRange)
	}
}

// DrawColliders outlines every box in the collider index.
func DrawColliders(cam *camera.Camera, colliders *systems.ColliderIndex) {
	for i := 0; i < colliders.Len(); i++ {
		b := colliders.Box(i)
		sx, sy := cam.WorldToScreen(b.MinX, b.MinY)
		rl.DrawRectangleLinesEx(rl.Rectangle{
			X:      sx,
			Y:      sy,
			Width:  (b.MaxX - b.MinX) * cam.Zoom,
			Height: (b.MaxY - b.MinY) * cam.Zoom,
		}, 1, colorCollider)
	}
}

// DrawVisibility fills the visibility polygon as a triangle fan around origin.
func DrawVisibility(cam *camera.Camera, vs *systems.VisibilitySampler) {
	points := vs.Points()
	if len(points) < 2 {
		return
	}
	ox, oy := cam.WorldToScreen(vs.Origin().X, vs.Origin().Y)
	o := rl.Vector2{X: ox, Y: oy}
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		ax, ay := cam.WorldToScreen(a.X, a.Y)
		bx, by := cam.WorldToScreen(b.X, b.Y)
		// Ray angles grow toward +Y, which is clockwise on screen
		rl.DrawTriangle(o, rl.Vector2{X: bx, Y: by}, rl.Vector2{X: ax, Y: ay}, colorVisibility)
	}
}

// DrawRays draws a line from the origin to every visibility point.
func DrawRays(cam *camera.Camera, vs *systems.VisibilitySampler) {
	ox, oy := cam.WorldToScreen(vs.Origin().X, vs.Origin().Y)
	for _, p := range vs.Points() {
		px, py := cam.WorldToScreen(p.X, p.Y)
		rl.DrawLineV(rl.Vector2{X: ox, Y: oy}, rl.Vector2{X: px, Y: py}, colorRay)
	}
}

// drawArrow draws a line with a two-stroke head at to.
func drawArrow(cam *camera.Camera, from, to maze.Vec2, c rl.Color) {
	fx, fy := cam.WorldToScreen(from.X, from.Y)
	tx, ty := cam.WorldToScreen(to.X, to.Y)
	rl.DrawLineV(rl.Vector2{X: fx, Y: fy}, rl.Vector2{X: tx, Y: ty}, c)

	angle := math.Atan2(float64(ty-fy), float64(tx-fx))
	head := float64(6 * cam.Zoom)
	for _, side := range []float64{math.Pi * 0.8, -math.Pi * 0.8} {
		hx := tx + float32(math.Cos(angle+side)*head)
		hy := ty + float32(math.Sin(angle+side)*head)
		rl.DrawLineV(rl.Vector2{X: tx, Y: ty}, rl.Vector2{X: hx, Y: hy}, c)
	}
}
