package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	ErrorColor    rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillLow    rl.Color
	BoolOn        rl.Color
	BoolOff       rl.Color
	EditBg        rl.Color
	Selection     rl.Color
	Attract       rl.Color
	Repel         rl.Color
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	BarWidth      int32
	BarHeight     int32
	FontSize      int32
	HeaderSize    int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    rl.Color{R: 12, G: 16, B: 20, A: 255},
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.Color{R: 150, G: 150, B: 150, A: 255},
		ValueColor:    rl.Color{R: 220, G: 220, B: 220, A: 255},
		ErrorColor:    rl.Color{R: 230, G: 90, B: 90, A: 255},
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 180, B: 100, A: 255},
		BarFillLow:    rl.Color{R: 180, G: 80, B: 80, A: 255},
		BoolOn:        rl.Color{R: 100, G: 200, B: 100, A: 255},
		BoolOff:       rl.Color{R: 80, G: 80, B: 80, A: 255},
		EditBg:        rl.Color{R: 50, G: 50, B: 60, A: 255},
		Selection:     rl.Color{R: 255, G: 200, B: 100, A: 255},
		Attract:       rl.Color{R: 90, G: 150, B: 255, A: 255},
		Repel:         rl.Color{R: 255, G: 110, B: 90, A: 255},
		Padding:       panelPadding,
		LineHeight:    18,
		LabelWidth:    90,
		BarWidth:      110,
		BarHeight:     12,
		FontSize:      14,
		HeaderSize:    16,
	}
}

// drawPanel draws a panel background with border.
func (t Theme) drawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}

// drawSectionHeader draws a section header and returns the new y.
func (t Theme) drawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, t.HeaderSize, t.SectionHeader)
	return y + t.LineHeight + 2
}

// drawLabelValue draws a label and value on the same line and returns the new y.
func (t Theme) drawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label, x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}
