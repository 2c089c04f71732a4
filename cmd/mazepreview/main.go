// Maze preview tool - interactive view of the drifting tree with sliders.
//
// Usage: go run ./cmd/mazepreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftmaze/camera"
	"github.com/pthm-cable/driftmaze/config"
	"github.com/pthm-cable/driftmaze/game"
	"github.com/pthm-cable/driftmaze/renderer"
	"github.com/pthm-cable/driftmaze/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 560
	previewW     = 640
	previewH     = 480
	panelWidth   = windowWidth - previewW - 30
)

// PreviewParams holds the slider-controlled maze parameters.
type PreviewParams struct {
	Rows         int
	Cols         int
	Thickness    float32
	WalkInterval float32
	Seed         int64
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	rl.InitWindow(windowWidth, windowHeight, "Maze Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := PreviewParams{
		Rows:         9,
		Cols:         15,
		Thickness:    0.5,
		WalkInterval: 0.1,
		Seed:         12345,
	}

	cam := camera.New(previewW, previewH)

	var (
		g      *game.Game
		mr     *renderer.MazeRenderer
		err    error
		status string
	)
	animating := true
	showArrows := true
	needsRebuild := true

	for !rl.WindowShouldClose() {
		if needsRebuild {
			if g != nil {
				g.Unload()
			}
			g, err = buildGame(params)
			if err != nil {
				status = err.Error()
				g = nil
			} else {
				status = ""
				mr = renderer.NewMazeRenderer(g.World(), g.Grid(), g.Walls().PathWidth())
				cam.Reset()
				cam.SetZoom(cam.FitZoom(g.Grid().Width(), g.Grid().Height()))
			}
			needsRebuild = false
		}

		if g != nil && animating {
			g.Step(g.Config().Derived.DT32, systems.ObserverInput{})
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.BeginScissorMode(0, 0, previewW, previewH)
		rl.DrawRectangle(0, 0, previewW, previewH, rl.Black)
		if g != nil {
			drawPreview(cam, g, mr, showArrows)
		}
		rl.EndScissorMode()
		rl.DrawRectangleLines(0, 0, previewW, previewH, rl.DarkGray)

		// Draw stats
		statsY := int32(previewH + 15)
		if g != nil {
			root := g.Grid().Node(g.Graph().Root())
			rl.DrawText(fmt.Sprintf("Tick: %d  Root: (%d,%d)  Walls: %d",
				g.Tick(), root.X, root.Y, g.Walls().WallCount()), 15, statsY, 16, rl.DarkGray)
		}
		if status != "" {
			rl.DrawText(status, 15, statsY+20, 16, rl.Red)
		}

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Maze Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Rows slider
		rl.DrawText("Rows", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newRows := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "40",
			float32(params.Rows), 1, 40,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Rows), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newRows) != params.Rows {
			params.Rows = int(newRows)
			needsRebuild = true
		}
		panelY += 35

		// Cols slider
		rl.DrawText("Columns", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCols := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "60",
			float32(params.Cols), 1, 60,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Cols), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCols) != params.Cols {
			params.Cols = int(newCols)
			needsRebuild = true
		}
		panelY += 35

		// Path thickness slider
		rl.DrawText("Path thickness (fraction of cell)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newThickness := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "0.9",
			params.Thickness, 0.1, 0.9,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Thickness), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newThickness != params.Thickness {
			params.Thickness = newThickness
			needsRebuild = true
		}
		panelY += 35

		// Walk interval slider
		rl.DrawText("Walk interval (seconds)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newInterval := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.02", "1.0",
			params.WalkInterval, 0.02, 1.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.WalkInterval), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newInterval != params.WalkInterval {
			params.WalkInterval = newInterval
			if g != nil {
				g.Walker().Timer().SetInterval(newInterval)
			}
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(showArrows, "Hide Arrows", "Show Arrows")) {
			showArrows = !showArrows
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRebuild = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Step") && g != nil {
			g.Step(g.Config().Derived.DT32, systems.ObserverInput{})
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)

		rl.EndDrawing()
	}

	if g != nil {
		g.Unload()
	}
}

// buildGame creates a fresh maze for the current parameters. The observer
// is left idle and the root walk runs without exclusion.
func buildGame(params PreviewParams) (*game.Game, error) {
	cfg := config.Default()
	cfg.Maze.Rows = params.Rows
	cfg.Maze.Cols = params.Cols
	cfg.Maze.PathThickness = float64(params.Thickness)
	cfg.Walker.Interval = float64(params.WalkInterval)
	cfg.Walker.Exclusion = "none"
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return game.NewGameWithOptions(game.Options{Seed: params.Seed, Config: cfg})
}

// drawPreview draws the whole maze with fog ignored.
func drawPreview(cam *camera.Camera, g *game.Game, mr *renderer.MazeRenderer, showArrows bool) {
	mr.Draw(cam, true)
	if showArrows {
		renderer.DrawParentArrows(cam, g.Graph())
	}
	renderer.DrawRoot(cam, g.Graph())
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
