// Package inspector exposes component fields for display and validated
// editing, and tracks which entity is selected.
package inspector

import "github.com/pthm-cable/biome/ecs"

// Section is one component's fields on the selected entity.
type Section struct {
	Component string
	Fields    []Field
}

// Source is the read and edit surface the inspector needs from the world.
type Source interface {
	Select(x, y float64) ecs.Entity
	Inspect(e ecs.Entity) ([]Section, bool)
	EditField(e ecs.Entity, component, field, raw string) error
}

// Inspector manages entity selection and the pending edit buffer.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool

	// Field being edited, if any.
	editComponent string
	editField     string
	buffer        []rune
	lastErr       error
}

// NewInspector creates a new inspector instance.
func NewInspector() *Inspector {
	return &Inspector{}
}

// HandleClick selects the entity under the world point, or clears the
// selection if there is none.
func (ins *Inspector) HandleClick(src Source, x, y float64) {
	e := src.Select(x, y)
	if e == ecs.Nil {
		ins.Deselect()
		return
	}
	ins.selected = e
	ins.hasSelected = true
	ins.CancelEdit()
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
	ins.selected = ecs.Nil
	ins.CancelEdit()
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// Sections returns the selected entity's fields. A selection whose entity
// has been destroyed is dropped.
func (ins *Inspector) Sections(src Source) []Section {
	if !ins.hasSelected {
		return nil
	}
	sections, ok := src.Inspect(ins.selected)
	if !ok {
		ins.Deselect()
		return nil
	}
	return sections
}

// BeginEdit starts editing component.field with an empty buffer.
func (ins *Inspector) BeginEdit(component, field string) {
	ins.editComponent = component
	ins.editField = field
	ins.buffer = ins.buffer[:0]
	ins.lastErr = nil
}

// Editing returns the field under edit and the text typed so far.
func (ins *Inspector) Editing() (component, field, text string, ok bool) {
	if ins.editField == "" {
		return "", "", "", false
	}
	return ins.editComponent, ins.editField, string(ins.buffer), true
}

// Type appends a character to the edit buffer.
func (ins *Inspector) Type(r rune) {
	if ins.editField != "" {
		ins.buffer = append(ins.buffer, r)
	}
}

// Backspace removes the last character from the edit buffer.
func (ins *Inspector) Backspace() {
	if n := len(ins.buffer); n > 0 {
		ins.buffer = ins.buffer[:n-1]
	}
}

// Commit applies the edit buffer. Rejected input leaves the world unchanged
// and is reported by LastError; the edit stays open so it can be corrected.
func (ins *Inspector) Commit(src Source) error {
	if !ins.hasSelected || ins.editField == "" {
		return nil
	}
	err := src.EditField(ins.selected, ins.editComponent, ins.editField, string(ins.buffer))
	ins.lastErr = err
	if err == nil {
		ins.CancelEdit()
	}
	return err
}

// CancelEdit abandons the current edit.
func (ins *Inspector) CancelEdit() {
	ins.editComponent = ""
	ins.editField = ""
	ins.buffer = ins.buffer[:0]
}

// LastError returns the error from the most recent commit, if any.
func (ins *Inspector) LastError() error {
	return ins.lastErr
}
