package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyHint is one line of the key help list.
type KeyHint struct {
	Key    string
	Action string
}

// DefaultKeyHints lists the bindings that are not overlay toggles.
func DefaultKeyHints() []KeyHint {
	return []KeyHint{
		{"WASD", "move"},
		{"Shift", "sprint"},
		{"Space", "pause / fit"},
		{", .", "speed"},
		{"Wheel", "zoom"},
		{"Home", "reset zoom"},
		{"Tab", "debug"},
		{"T", "tuning"},
		{"M", "dump maze"},
		{"F11", "fullscreen"},
	}
}

var (
	toggleOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	toggleOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
	keyColor   = rl.Color{R: 150, G: 150, B: 150, A: 255}
	categories = map[string]string{
		"maze":       "Maze",
		"perception": "Perception",
		"debug":      "Debug",
	}
)

// ControlsPanel lists overlay toggles by category followed by key help.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	hints    []KeyHint
}

// NewControlsPanel creates a hidden panel with the default key help.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		hints:    DefaultKeyHints(),
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool { return c.visible }

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Height returns the panel height for the given registry.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	rows := len(c.hints) + 1
	for _, cat := range overlays.Categories() {
		rows += len(overlays.ByCategory(cat)) + 1
	}
	return int32(rows+1)*t.LineHeight + t.Padding*3
}

// Draw renders the panel and returns the y just below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	pad := r.Theme.Padding
	inner := c.width - pad*2
	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	x := c.x + pad
	y := c.y + pad
	rl.DrawText("Overlays", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	for _, cat := range overlays.Categories() {
		label, ok := categories[cat]
		if !ok {
			label = cat
		}
		rl.DrawText(label, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight

		for _, desc := range overlays.ByCategory(cat) {
			c.drawToggle(x, y, inner, desc, overlays.IsEnabled(desc.ID))
			y += r.Theme.LineHeight
		}
	}

	y += 4
	rl.DrawText("Keys", x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.LineHeight
	for _, h := range c.hints {
		rl.DrawText(h.Action, x+14, y, r.Theme.FontSize, r.Theme.LabelColor)
		drawKey(x+inner, y, h.Key, r.Theme.FontSize)
		y += r.Theme.LineHeight
	}

	return c.y + c.Height(overlays)
}

func (c *ControlsPanel) drawToggle(x, y, width int32, desc OverlayDescriptor, enabled bool) {
	r := c.renderer
	status, name := toggleOff, r.Theme.LabelColor
	if enabled {
		status, name = toggleOn, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, name)
	if desc.KeyLabel != "" {
		drawKey(x+width, y, desc.KeyLabel, r.Theme.FontSize)
	}
}

// drawKey draws a bracketed key label right-aligned at right.
func drawKey(right, y int32, key string, fontSize int32) {
	text := fmt.Sprintf("[%s]", key)
	rl.DrawText(text, right-rl.MeasureText(text, fontSize), y, fontSize, keyColor)
}
