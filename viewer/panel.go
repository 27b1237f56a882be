package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biome/inspector"
	"github.com/pthm-cable/biome/world"
)

// drawPanel renders the side panel: HUD, run controls, tools, the fertility
// slider and the inspector.
func (v *Viewer) drawPanel() {
	t := v.theme
	l := v.layout
	v.theme.drawPanel(0, 0, int32(l.PanelW), int32(l.ScreenH))

	x := t.Padding
	v.drawHUD(x)

	// Run controls
	half := (l.PanelW - 2*panelPadding - buttonGap) / 2
	if gui.Button(rl.Rectangle{X: panelPadding, Y: 116, Width: half, Height: buttonHeight}, toggleText(v.paused, "Resume", "Pause")) {
		v.TogglePause()
	}
	if gui.Button(rl.Rectangle{X: panelPadding + half + buttonGap, Y: 116, Width: half, Height: buttonHeight}, "Step") && v.paused {
		v.stepOnce = true
	}

	tools := world.Tools()
	for i, tool := range tools {
		label := fmt.Sprintf("%d %s", i+1, tool)
		if gui.Toggle(l.ToolButton(i), label, v.tool == tool) {
			v.tool = tool
		}
	}

	y := int32(l.ToolbarBottom(len(tools))) + 6
	y = v.drawGlobals(x, y)
	v.drawInspector(x, y+6)
}

// drawHUD draws the title and headline numbers.
func (v *Viewer) drawHUD(x int32) {
	t := v.theme
	c := v.sim.Counts()

	rl.DrawText("biome", x, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Tick: %d | %s", v.sim.Tick(), v.sim.Regime()), x, 36, t.FontSize, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Agents: %d | Pred: %d | Apex: %d", c.Agents, c.Predators, c.Apex), x, 54, t.FontSize, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Plants: %d | Pods: %d | Fields: %d", c.Plants, c.Pods, c.ForceFields), x, 72, t.FontSize, rl.LightGray)

	status := "Running"
	if v.paused {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("FPS: %d | %s", rl.GetFPS(), status), x, 90, t.FontSize, rl.Yellow)
}

// drawGlobals draws the climate readout and the fertility slider, returning
// the new y.
func (v *Viewer) drawGlobals(x, y int32) int32 {
	t := v.theme
	g := v.sim.Globals()

	y = t.drawSectionHeader(x, y, "World")
	y += t.DrawBar(x, y, "Storminess", g.Storminess, map[string]string{"max": "1"})
	y = t.drawLabelValue(x, y, "Metabolism", fmt.Sprintf("%.2f", g.Metabolism))

	rl.DrawText("Fertility", x, y, t.FontSize, t.LabelColor)
	y += t.LineHeight
	width := v.layout.PanelW - 2*panelPadding - 40
	fertility := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: width, Height: 16},
		"", "",
		float32(g.Fertility), 0, 1,
	)
	rl.DrawText(fmt.Sprintf("%.2f", g.Fertility), x+int32(width)+6, y+1, t.FontSize, t.ValueColor)
	if float64(fertility) != g.Fertility {
		v.sim.SetFertility(float64(fertility))
	}
	return y + 22
}

// drawInspector draws the selected entity's sections. Clicking an editable
// row opens it for typing.
func (v *Viewer) drawInspector(x, y int32) {
	t := v.theme
	y = t.drawSectionHeader(x, y, "Inspector")

	sections := v.ins.Sections(v.sim)
	if sections == nil {
		rl.DrawText("Click an entity to inspect", x, y, t.FontSize, t.LabelColor)
		return
	}
	if sel, ok := v.ins.Selected(); ok {
		y = t.drawLabelValue(x, y, "Entity", fmt.Sprintf("#%d", sel))
	}

	editComp, editField, editText, editing := v.ins.Editing()
	width := int32(v.layout.PanelW) - 2*t.Padding
	mouse := rl.GetMousePosition()
	clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft)

	for _, sec := range sections {
		if y > int32(v.layout.ScreenH)-t.LineHeight {
			return
		}
		rl.DrawText(sec.Component, x, y, t.FontSize, t.SectionHeader)
		y += t.LineHeight

		for _, f := range sec.Fields {
			if f.Widget == inspector.WidgetSkip {
				continue
			}
			var edit *fieldEdit
			if editing && sec.Component == editComp && f.Name == editField {
				edit = &fieldEdit{text: editText, err: v.ins.LastError()}
			}

			row := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(t.LineHeight)}
			if f.Editable && edit == nil && clicked && rl.CheckCollisionPointRec(mouse, row) {
				v.ins.BeginEdit(sec.Component, f.Name)
			}
			y += t.DrawField(x+8, y, width-8, f, edit)
		}
		y += 4
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
