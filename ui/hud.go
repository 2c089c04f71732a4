package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftmaze/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Tick       int32
	Speed      int
	FPS        int32
	Paused     bool
	RootX      int
	RootY      int
	Walls      int
	Visible    int
	Explored   int
	Elements   int
	Stamina    float32
	Sprinting  bool
	Violations int
}

// hudSections lays out the stats panel under the title line.
var hudSections = []SectionDescriptor{
	{
		ID:    "maze",
		Title: "Maze",
		Fields: []FieldDescriptor{
			{ID: "root", Label: "Root", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(HUDData)
				return fmt.Sprintf("(%d, %d)", h.RootX, h.RootY)
			}},
			{ID: "walls", Label: "Walls", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
				return float32(d.(HUDData).Walls)
			}},
			{ID: "violations", Label: "Violations", Widget: WidgetText, Format: "%.0f",
				Visible: func(d any) bool { return d.(HUDData).Violations > 0 },
				Getter:  func(d any) float32 { return float32(d.(HUDData).Violations) },
			},
		},
	},
	{
		ID:    "fog",
		Title: "Fog",
		Fields: []FieldDescriptor{
			{ID: "visible", Label: "Visible", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
				return float32(d.(HUDData).Visible)
			}},
			{ID: "explored", Label: "Explored", Widget: WidgetBar, Getter: func(d any) float32 {
				h := d.(HUDData)
				if h.Elements == 0 {
					return 0
				}
				return float32(h.Visible+h.Explored) / float32(h.Elements)
			}},
		},
	},
	{
		ID:    "observer",
		Title: "Observer",
		Fields: []FieldDescriptor{
			{ID: "stamina", Label: "Stamina", Widget: WidgetStamina, Getter: func(d any) float32 {
				return d.(HUDData).Stamina
			}},
		},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    200,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	} else if data.Sprinting {
		statusText = "Sprinting"
	}
	rl.DrawText(statusText, 10, 55, 16, rl.Yellow)

	r := h.renderer
	padding := r.Theme.Padding
	x, y := int32(10), int32(80)
	height := padding * 2
	for _, sd := range hudSections {
		height += r.SectionHeight(sd, data)
	}
	r.DrawPanel(x, y, h.width, height)

	y += padding
	for _, sd := range hudSections {
		y = r.DrawSection(x+padding, y, sd, data, h.width-padding*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase step timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  p95: %s  TPS: %.0f",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.P95TickDuration.Round(time.Microsecond),
		stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
