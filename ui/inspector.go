package ui

import (
	"fmt"

	"github.com/pthm-cable/driftmaze/components"
)

// NodeInspectorData describes the node under the cursor.
type NodeInspectorData struct {
	X, Y      int
	ParentX   int
	ParentY   int
	IsRoot    bool
	Depth     int
	Degree    int
	OpenSides string
	TileFog   components.FogState
}

// NodeInspector renders a small panel describing one maze node.
type NodeInspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewNodeInspector creates a new inspector panel.
func NewNodeInspector(x, y, width int32) *NodeInspector {
	return &NodeInspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *NodeInspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for the given data.
func (ins *NodeInspector) Draw(data NodeInspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	lines := int32(6)
	r.DrawPanel(ins.x, ins.y, ins.width, lines*r.Theme.LineHeight+padding*2+r.Theme.LineHeight)

	x := ins.x + padding
	y := r.DrawSectionHeader(x, ins.y+padding, fmt.Sprintf("Node (%d, %d)", data.X, data.Y))

	parent := "none (root)"
	if !data.IsRoot {
		parent = fmt.Sprintf("(%d, %d)", data.ParentX, data.ParentY)
	}
	y = r.DrawLabelValue(x, y, "Parent", parent)
	y = r.DrawLabelValue(x, y, "Depth", fmt.Sprintf("%d", data.Depth))
	y = r.DrawLabelValue(x, y, "Degree", fmt.Sprintf("%d", data.Degree))
	y = r.DrawLabelValue(x, y, "Open", data.OpenSides)
	y = r.DrawLabelValue(x, y, "Fog", fogLabel(data.TileFog))
	return y
}

// fogLabel returns a display name for a fog state.
func fogLabel(s components.FogState) string {
	switch s {
	case components.FogVisible:
		return "visible"
	case components.FogExplored:
		return "explored"
	default:
		return "hidden"
	}
}
