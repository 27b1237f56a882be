package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/biome/inspector"
)

// fieldEdit is the in-progress edit shown in place of a field's value.
type fieldEdit struct {
	text string
	err  error
}

// DrawLabel renders a text value and returns the row height.
func (t Theme) DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := inspector.FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, t.FontSize, t.LabelColor)
	rl.DrawText(text, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return t.LineHeight
}

// DrawBar renders a horizontal progress bar scaled by the field's max option.
func (t Theme) DrawBar(x, y int32, name string, value float64, options map[string]string) int32 {
	ratio := barRatio(value, inspector.GetMax(options))

	rl.DrawText(name, x, y, t.FontSize, t.LabelColor)

	barX := x + t.LabelWidth
	rl.DrawRectangle(barX, y+2, t.BarWidth, t.BarHeight, t.BarBg)

	fill := t.BarFill
	if ratio < 0.3 {
		fill = t.BarFillLow
	}
	rl.DrawRectangle(barX, y+2, int32(float64(t.BarWidth)*ratio), t.BarHeight, fill)

	rl.DrawText(fmt.Sprintf("%.2f", value), barX+t.BarWidth+5, y, t.FontSize, t.ValueColor)
	return t.LineHeight
}

// DrawBool renders an on/off indicator.
func (t Theme) DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, t.FontSize, t.LabelColor)

	indicatorX := x + t.LabelWidth
	color := t.BoolOff
	text := "OFF"
	if value {
		color = t.BoolOn
		text = "ON"
	}
	rl.DrawRectangle(indicatorX, y+1, 12, 12, color)
	rl.DrawText(text, indicatorX+17, y, t.FontSize, color)
	return t.LineHeight
}

// DrawEditing renders a field whose value is being typed.
func (t Theme) DrawEditing(x, y, width int32, name string, edit fieldEdit) int32 {
	rl.DrawText(name, x, y, t.FontSize, t.LabelColor)

	boxX := x + t.LabelWidth
	rl.DrawRectangle(boxX, y, width-t.LabelWidth, t.LineHeight-2, t.EditBg)
	rl.DrawText(edit.text+"_", boxX+3, y+1, t.FontSize, t.ValueColor)

	h := t.LineHeight
	if edit.err != nil {
		rl.DrawText(edit.err.Error(), x, y+h, t.FontSize-2, t.ErrorColor)
		h += t.LineHeight
	}
	return h
}

// DrawField renders a field using its widget type. edit is non-nil when the
// field is being edited.
func (t Theme) DrawField(x, y, width int32, field inspector.Field, edit *fieldEdit) int32 {
	if edit != nil {
		return t.DrawEditing(x, y, width, field.Name, *edit)
	}

	var h int32
	switch field.Widget {
	case inspector.WidgetBar:
		if v, ok := inspector.GetFloatValue(field.Value); ok {
			h = t.DrawBar(x, y, field.Name, v, field.Options)
		} else {
			h = t.DrawLabel(x, y, field.Name, field.Value, field.Options)
		}
	case inspector.WidgetBool:
		if v, ok := field.Value.(bool); ok {
			h = t.DrawBool(x, y, field.Name, v)
		} else {
			h = t.DrawLabel(x, y, field.Name, field.Value, field.Options)
		}
	default:
		h = t.DrawLabel(x, y, field.Name, field.Value, field.Options)
	}

	if field.Editable {
		// Pencil marker for click-to-edit fields
		rl.DrawText("*", x+width-8, y, t.FontSize, t.LabelColor)
	}
	return h
}

// barRatio maps value onto [0, 1] of maxVal.
func barRatio(value, maxVal float64) float64 {
	if maxVal <= 0 {
		return 0
	}
	return min(1, max(0, value/maxVal))
}
