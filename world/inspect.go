package world

import (
	"fmt"

	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/inspector"
	"github.com/pthm-cable/biome/systems"
)

// Select returns the nearest agent or resource whose position lies within
// the inspector hit radius of (x, y), or ecs.Nil. Ties resolve to the lower id.
func (w *World) Select(x, y float64) ecs.Entity {
	c := w.ctx
	radius := c.Cfg.Inspector.HitRadius
	best, bestDist := ecs.Nil, 0.0

	for e := range c.Store.View(c.Position) {
		if !c.Agent.Has(e) && !c.Resource.Has(e) {
			continue
		}
		pos := c.Position.Get(e)
		d := systems.ToroidalDistance(x, y, pos.X, pos.Y, c.Bounds.Width, c.Bounds.Height)
		if d <= radius && (best == ecs.Nil || d < bestDist) {
			best, bestDist = e, d
		}
	}
	return best
}

// component returns a pointer to e's row in the named table, or nil.
func (w *World) component(e ecs.Entity, name string) (any, bool) {
	c := w.ctx
	switch name {
	case c.Position.Name():
		return ptr(c.Position.Get(e))
	case c.Velocity.Name():
		return ptr(c.Velocity.Get(e))
	case c.Agent.Name():
		return ptr(c.Agent.Get(e))
	case c.Predator.Name():
		return ptr(c.Predator.Get(e))
	case c.Apex.Name():
		return ptr(c.Apex.Get(e))
	case c.Resource.Name():
		return ptr(c.Resource.Get(e))
	case c.ForceField.Name():
		return ptr(c.ForceField.Get(e))
	}
	return nil, false
}

func ptr[T any](v *T) (any, bool) {
	if v == nil {
		return nil, false
	}
	return v, true
}

// Inspect lists the fields of every component e has, in table registration
// order.
func (w *World) Inspect(e ecs.Entity) ([]inspector.Section, bool) {
	c := w.ctx
	if !c.Store.Alive(e) {
		return nil, false
	}
	var out []inspector.Section
	for _, t := range c.Store.Tables() {
		v, ok := w.component(e, t.Name())
		if !ok {
			continue
		}
		out = append(out, inspector.Section{Component: t.Name(), Fields: inspector.ExtractFields(v)})
	}
	return out, true
}

// EditField writes a user-typed value into one component field. This is the
// only path that mutates simulation state outside the pipeline. Malformed or
// non-finite input is rejected and nothing changes.
func (w *World) EditField(e ecs.Entity, component, field, raw string) error {
	c := w.ctx
	if !c.Store.Alive(e) {
		return fmt.Errorf("edit %s.%s on %d: %w", component, field, e, ErrNoEntity)
	}
	v, ok := w.component(e, component)
	if !ok {
		return fmt.Errorf("edit %s.%s on %d: %w", component, field, e, ErrNoComponent)
	}
	if err := inspector.SetField(v, field, raw); err != nil {
		return fmt.Errorf("edit %s on %d: %w", component, e, err)
	}

	// Keep edited positions on the torus.
	if pos := c.Position.Get(e); pos != nil && component == c.Position.Name() {
		pos.X = systems.Wrap(pos.X, c.Bounds.Width)
		pos.Y = systems.Wrap(pos.Y, c.Bounds.Height)
	}
	w.logger.Debug("field_edited", "entity", e, "component", component, "field", field, "value", raw)
	return nil
}

// EditGlobal writes a user-typed value into one of the editable globals.
func (w *World) EditGlobal(field, raw string) error {
	g := w.ctx.Globals
	if err := inspector.SetField(&g, field, raw); err != nil {
		return fmt.Errorf("edit globals: %w", err)
	}
	w.ctx.Globals = g
	return nil
}
