package renderer

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftmaze/camera"
	"github.com/pthm-cable/driftmaze/game"
	"github.com/pthm-cable/driftmaze/maze"
	"github.com/pthm-cable/driftmaze/systems"
	"github.com/pthm-cable/driftmaze/ui"
)

// Camera tuning.
const (
	followSpeed = 5.0
	zoomStep    = 1.25
)

const controlsLegend = "WASD/Arrows: move | Shift: sprint | Space: pause | </>: speed | Tab: debug | O: overlays | T: tuning | M: dump maze"

// Window owns the camera and UI for an interactive game.
// The raylib window must already be open.
type Window struct {
	game *game.Game

	camera    *camera.Camera
	maze      *MazeRenderer
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *ui.NodeInspector
	tuning    *ui.TuningPanel

	debugMode    bool
	screenWidth  float32
	screenHeight float32

	rangeBuf []maze.NodeID
	sideBuf  []maze.Direction
}

// NewWindow creates the viewer for g.
func NewWindow(g *game.Game) *Window {
	cfg := g.Config()
	w := cfg.Derived.ScreenW32
	h := cfg.Derived.ScreenH32

	cam := camera.New(w, h)
	start := g.Observer().Position()
	cam.X, cam.Y = start.X, start.Y

	return &Window{
		game:         g,
		camera:       cam,
		maze:         NewMazeRenderer(g.World(), g.Grid(), g.Walls().PathWidth()),
		overlays:     ui.NewOverlayRegistry(),
		controls:     ui.NewControlsPanel(10, 260, 200),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(int32(w)-230, 10),
		inspector:    ui.NewNodeInspector(int32(w)-230, 140, 220),
		tuning:       ui.NewTuningPanel(int32(w)-230, int32(h)-230, 220),
		screenWidth:  w,
		screenHeight: h,
	}
}

// Camera returns the viewer camera.
func (w *Window) Camera() *camera.Camera { return w.camera }

// Update processes input, advances the game and moves the camera.
func (w *Window) Update() {
	w.handleInput()

	in := w.observerInput()
	dt := w.game.Config().Derived.DT32
	for i := 0; i < w.game.StepsPerUpdate(); i++ {
		w.game.Step(dt, in)
	}

	// Paused runs frame the whole maze from the origin
	target := w.game.Observer().Position()
	if w.game.Paused() {
		target = maze.Vec2{}
	}
	w.camera.Follow(target.X, target.Y, rl.GetFrameTime(), followSpeed)
}

// observerInput reads movement and sprint keys.
func (w *Window) observerInput() systems.ObserverInput {
	var dir maze.Vec2
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		dir.Y--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		dir.Y++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		dir.X--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		dir.X++
	}
	return systems.ObserverInput{
		Dir:    dir,
		Sprint: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
	}
}

// handleInput processes keyboard input.
func (w *Window) handleInput() {
	w.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		if w.game.TogglePaused() {
			w.camera.SetZoom(w.camera.FitZoom(w.game.Grid().Width(), w.game.Grid().Height()))
		} else {
			w.camera.SetZoom(1)
		}
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		w.game.SetStepsPerUpdate(w.game.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		w.game.SetStepsPerUpdate(w.game.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		w.debugMode = !w.debugMode
	}
	if rl.IsKeyPressed(rl.KeyO) {
		w.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		w.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		w.game.LogMaze()
	}

	for _, desc := range w.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			w.overlays.Toggle(desc.ID)
		}
	}

	w.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width := float32(rl.GetScreenWidth())
	height := float32(rl.GetScreenHeight())
	if width == w.screenWidth && height == w.screenHeight {
		return
	}
	w.screenWidth = width
	w.screenHeight = height

	w.camera.Resize(width, height)
	w.perfPanel.SetPosition(int32(width)-230, 10)
	w.inspector.SetPosition(int32(width)-230, 140)
	w.tuning.SetPosition(int32(width)-230, int32(height)-230)
}

// handleCameraInput processes zoom controls. The camera follows the observer.
func (w *Window) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		w.camera.ZoomBy(zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		w.camera.ZoomBy(1 / zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		w.camera.SetZoom(1)
	}
}

// Draw renders the game.
func (w *Window) Draw() {
	g := w.game
	g.PerfCollector().RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(colorBackground)

	reveal := w.overlays.IsEnabled(ui.OverlayRevealAll)
	w.maze.Draw(w.camera, reveal)
	w.drawOverlays()

	obs := g.Observer()
	state := obs.State()
	DrawObserver(w.camera, obs.Position(), obs.Params().Radius, state.Sprinting)

	root := g.Grid().Node(g.Graph().Root())
	w.hud.Draw(ui.HUDData{
		Title:      "Drift Maze",
		Tick:       g.Tick(),
		Speed:      g.StepsPerUpdate(),
		FPS:        rl.GetFPS(),
		Paused:     g.Paused(),
		RootX:      root.X,
		RootY:      root.Y,
		Walls:      g.Walls().WallCount(),
		Visible:    g.Fog().VisibleCount(),
		Explored:   g.Fog().ExploredCount(),
		Elements:   g.Fog().Indexed(),
		Stamina:    state.Stamina,
		Sprinting:  state.Sprinting,
		Violations: g.Violations(),
	})
	w.controls.Draw(w.overlays)
	w.hud.DrawControls(int32(w.screenWidth), int32(w.screenHeight), controlsLegend)

	if w.debugMode {
		w.perfPanel.Draw(g.PerfCollector().Stats())
		w.drawInspector()
	}
	w.applyTuning()

	rl.EndDrawing()
}

// drawOverlays renders all currently enabled overlays.
func (w *Window) drawOverlays() {
	g := w.game
	for _, id := range w.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayParentArrows:
			DrawParentArrows(w.camera, g.Graph())
		case ui.OverlayRootMarker:
			DrawRoot(w.camera, g.Graph())
		case ui.OverlayRangeNodes:
			w.rangeBuf = g.Observer().RangeNodes(w.rangeBuf[:0])
			DrawRangeNodes(w.camera, g.Grid(), w.rangeBuf)
		case ui.OverlayVisibility:
			DrawVisibility(w.camera, g.Visibility())
		case ui.OverlayRays:
			DrawRays(w.camera, g.Visibility())
		case ui.OverlayColliders:
			DrawColliders(w.camera, g.Walls().Colliders())
		}
	}
}

// drawInspector describes the node under the mouse cursor.
func (w *Window) drawInspector() {
	g := w.game
	mouse := rl.GetMousePosition()
	wx, wy := w.camera.ScreenToWorld(mouse.X, mouse.Y)
	id, ok := g.Grid().NodeAt(maze.Vec2{X: wx, Y: wy})
	if !ok {
		return
	}

	n := g.Grid().Node(id)
	data := ui.NodeInspectorData{
		X:       n.X,
		Y:       n.Y,
		IsRoot:  id == g.Graph().Root(),
		Depth:   g.Graph().Depth(id),
		Degree:  g.Graph().Degree(id),
		TileFog: w.maze.TileFog(id),
	}
	if p := g.Graph().Parent(id); p != maze.NoNode {
		pn := g.Grid().Node(p)
		data.ParentX, data.ParentY = pn.X, pn.Y
	}

	w.sideBuf = g.Walls().OpenSides(w.sideBuf[:0], id)
	names := make([]string, len(w.sideBuf))
	for i, d := range w.sideBuf {
		names[i] = d.String()
	}
	data.OpenSides = strings.Join(names, " ")
	if data.OpenSides == "" {
		data.OpenSides = "-"
	}
	w.inspector.Draw(data)
}

// applyTuning draws the tuning panel and pushes any edits into the game.
func (w *Window) applyTuning() {
	g := w.game
	before := ui.TuningValues{
		WalkInterval: g.Walker().Timer().Interval(),
		SyncInterval: g.Walls().Timer().Interval(),
		ViewExclude:  g.Walker().Policy() == maze.ExclusionViewDistance,
		Validate:     g.Validating(),
	}
	after := w.tuning.Draw(before)
	if after == before {
		return
	}

	g.Walker().Timer().SetInterval(after.WalkInterval)
	g.Walls().Timer().SetInterval(after.SyncInterval)
	policy := maze.ExclusionNone
	if after.ViewExclude {
		policy = maze.ExclusionViewDistance
	}
	g.Walker().SetPolicy(policy)
	g.SetValidate(after.Validate)
	game.Logf("tuning: walk=%.2fs sync=%.2fs exclusion=%s validate=%v",
		after.WalkInterval, after.SyncInterval, policy, after.Validate)
}
