package inspector

import (
	"errors"
	"testing"

	"github.com/pthm-cable/biome/ecs"
)

// fakeSource holds one editable sample at entity 1 near the origin.
type fakeSource struct {
	alive bool
	s     sample
}

func (f *fakeSource) Select(x, y float64) ecs.Entity {
	if f.alive && x*x+y*y < 64 {
		return 1
	}
	return ecs.Nil
}

func (f *fakeSource) Inspect(e ecs.Entity) ([]Section, bool) {
	if !f.alive || e != 1 {
		return nil, false
	}
	return []Section{{Component: "sample", Fields: ExtractFields(&f.s)}}, true
}

func (f *fakeSource) EditField(e ecs.Entity, component, field, raw string) error {
	if component != "sample" {
		return ErrUnknownField
	}
	return SetField(&f.s, field, raw)
}

func TestInspectorSelection(t *testing.T) {
	src := &fakeSource{alive: true}
	ins := NewInspector()

	ins.HandleClick(src, 3, 3)
	if e, ok := ins.Selected(); !ok || e != 1 {
		t.Fatalf("Selected = %d, %v; want 1, true", e, ok)
	}
	if got := ins.Sections(src); len(got) != 1 {
		t.Errorf("sections = %d, want 1", len(got))
	}

	ins.HandleClick(src, 100, 100)
	if _, ok := ins.Selected(); ok {
		t.Error("click on empty space should deselect")
	}
}

func TestInspectorDropsDestroyedSelection(t *testing.T) {
	src := &fakeSource{alive: true}
	ins := NewInspector()
	ins.HandleClick(src, 0, 0)

	src.alive = false
	if got := ins.Sections(src); got != nil {
		t.Errorf("sections = %v, want nil", got)
	}
	if _, ok := ins.Selected(); ok {
		t.Error("selection should be dropped")
	}
}

func TestInspectorEditCommit(t *testing.T) {
	src := &fakeSource{alive: true, s: sample{Energy: 1}}
	ins := NewInspector()
	ins.HandleClick(src, 0, 0)

	ins.BeginEdit("sample", "energy")
	for _, r := range "1.75" {
		ins.Type(r)
	}
	if _, _, text, ok := ins.Editing(); !ok || text != "1.75" {
		t.Fatalf("buffer = %q, %v", text, ok)
	}
	if err := ins.Commit(src); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if src.s.Energy != 1.75 {
		t.Errorf("energy = %v, want 1.75", src.s.Energy)
	}
	if _, _, _, ok := ins.Editing(); ok {
		t.Error("edit should close after a successful commit")
	}
}

func TestInspectorRejectsMalformedInput(t *testing.T) {
	src := &fakeSource{alive: true, s: sample{Energy: 1}}
	ins := NewInspector()
	ins.HandleClick(src, 0, 0)

	ins.BeginEdit("sample", "energy")
	for _, r := range "1.2x" {
		ins.Type(r)
	}
	err := ins.Commit(src)
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Commit error = %v, want ErrInvalidValue", err)
	}
	if src.s.Energy != 1 {
		t.Errorf("energy mutated to %v", src.s.Energy)
	}
	if !errors.Is(ins.LastError(), ErrInvalidValue) {
		t.Errorf("LastError = %v", ins.LastError())
	}

	ins.Backspace()
	if err := ins.Commit(src); err != nil {
		t.Fatalf("corrected commit: %v", err)
	}
	if src.s.Energy != 1.2 {
		t.Errorf("energy = %v, want 1.2", src.s.Energy)
	}
}
