package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// Layout splits the window into the side panel and the world viewport.
type Layout struct {
	ScreenW, ScreenH float32
	PanelW           float32
}

// Panel geometry
const (
	panelWidth    = 280
	panelPadding  = 10
	buttonHeight  = 24
	buttonGap     = 6
	toolColumns   = 2
	toolbarOffset = 150 // y of the first tool row
)

// NewLayout builds a layout for the given window size.
func NewLayout(screenW, screenH int) Layout {
	return Layout{
		ScreenW: float32(screenW),
		ScreenH: float32(screenH),
		PanelW:  panelWidth,
	}
}

// Viewport returns the world viewport rectangle.
func (l Layout) Viewport() rl.Rectangle {
	w := l.ScreenW - l.PanelW
	if w < 1 {
		w = 1
	}
	return rl.Rectangle{X: l.PanelW, Y: 0, Width: w, Height: l.ScreenH}
}

// InPanel reports whether a screen point is over the side panel.
func (l Layout) InPanel(x, y float32) bool {
	return x >= 0 && x < l.PanelW && y >= 0 && y < l.ScreenH
}

// ToolButton returns the rectangle of the i-th tool toggle.
func (l Layout) ToolButton(i int) rl.Rectangle {
	col := i % toolColumns
	row := i / toolColumns
	w := (l.PanelW - 2*panelPadding - buttonGap*(toolColumns-1)) / toolColumns
	return rl.Rectangle{
		X:      panelPadding + float32(col)*(w+buttonGap),
		Y:      toolbarOffset + float32(row)*(buttonHeight+buttonGap),
		Width:  w,
		Height: buttonHeight,
	}
}

// ToolbarBottom returns the y just below the last tool row.
func (l Layout) ToolbarBottom(tools int) float32 {
	rows := (tools + toolColumns - 1) / toolColumns
	return toolbarOffset + float32(rows)*(buttonHeight+buttonGap)
}
