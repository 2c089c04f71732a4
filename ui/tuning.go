package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// TuningValues are the live-adjustable simulation parameters.
type TuningValues struct {
	WalkInterval float32
	SyncInterval float32
	ViewExclude  bool
	Validate     bool
}

// TuningPanel renders raygui sliders for the live parameters.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// IsVisible returns whether the panel is shown.
func (t *TuningPanel) IsVisible() bool {
	return t.visible
}

// Draw renders the panel and returns the values after user edits.
func (t *TuningPanel) Draw(v TuningValues) TuningValues {
	if !t.visible {
		return v
	}

	r := t.renderer
	padding := r.Theme.Padding
	r.DrawPanel(t.x, t.y, t.width, 210)

	x := float32(t.x + padding)
	y := float32(t.y + padding)
	sliderW := float32(t.width - padding*2 - 60)

	rl.DrawText("Tuning", int32(x), int32(y), 16, rl.White)
	y += 26

	rl.DrawText("Walk interval (s)", int32(x), int32(y), 12, r.Theme.LabelColor)
	y += 14
	v.WalkInterval = gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: y, Width: sliderW - 30, Height: 16},
		"0.01", "", v.WalkInterval, 0.01, 1.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", v.WalkInterval), int32(x+sliderW+8), int32(y+2), 12, r.Theme.ValueColor)
	y += 26

	rl.DrawText("Wall sync interval (s)", int32(x), int32(y), 12, r.Theme.LabelColor)
	y += 14
	v.SyncInterval = gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: y, Width: sliderW - 30, Height: 16},
		"0.01", "", v.SyncInterval, 0.01, 1.0,
	)
	rl.DrawText(fmt.Sprintf("%.2f", v.SyncInterval), int32(x+sliderW+8), int32(y+2), 12, r.Theme.ValueColor)
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: float32(t.width - padding*2), Height: 24}, toggleText(v.ViewExclude, "Exclusion: view distance", "Exclusion: none")) {
		v.ViewExclude = !v.ViewExclude
	}
	y += 32

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: float32(t.width - padding*2), Height: 24}, toggleText(v.Validate, "Validate: on", "Validate: off")) {
		v.Validate = !v.Validate
	}

	return v
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
