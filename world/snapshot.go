package world

import (
	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/systems"
)

// EntityState is a copy of every component an entity has. Absent components
// are nil.
type EntityState struct {
	ID         ecs.Entity
	Position   *components.Position
	Velocity   *components.Velocity
	Agent      *components.Agent
	Predator   *components.Predator
	Apex       *components.Apex
	Resource   *components.Resource
	ForceField *components.ForceField
}

// Snapshot is a read-only copy of the whole world at one tick.
type Snapshot struct {
	Tick     int64
	Width    float64
	Height   float64
	Regime   components.Regime
	Globals  systems.Globals
	Entities []EntityState // insertion order
}

func copyOf[T any](t *ecs.Table[T], e ecs.Entity) *T {
	v := t.Get(e)
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func (w *World) state(e ecs.Entity) EntityState {
	c := w.ctx
	return EntityState{
		ID:         e,
		Position:   copyOf(c.Position, e),
		Velocity:   copyOf(c.Velocity, e),
		Agent:      copyOf(c.Agent, e),
		Predator:   copyOf(c.Predator, e),
		Apex:       copyOf(c.Apex, e),
		Resource:   copyOf(c.Resource, e),
		ForceField: copyOf(c.ForceField, e),
	}
}

// Snapshot copies the current state. Renderers read snapshots and never the
// live tables.
func (w *World) Snapshot() Snapshot {
	ids := w.ctx.Store.Entities()
	snap := Snapshot{
		Tick:     w.ctx.Tick,
		Width:    w.ctx.Bounds.Width,
		Height:   w.ctx.Bounds.Height,
		Regime:   w.ctx.Regime,
		Globals:  w.ctx.Globals,
		Entities: make([]EntityState, len(ids)),
	}
	for i, e := range ids {
		snap.Entities[i] = w.state(e)
	}
	return snap
}

// Lookup copies one entity's state. ok is false once the entity is destroyed.
func (w *World) Lookup(e ecs.Entity) (EntityState, bool) {
	if !w.ctx.Store.Alive(e) {
		return EntityState{}, false
	}
	return w.state(e), true
}
