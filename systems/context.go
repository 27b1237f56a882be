// Package systems provides the fixed-order simulation pipeline and the entity
// factories it uses.
package systems

import (
	"log/slog"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/rng"
)

// Tables groups the component tables registered on a store.
type Tables struct {
	Store      *ecs.Store
	Position   *ecs.Table[components.Position]
	Velocity   *ecs.Table[components.Velocity]
	Agent      *ecs.Table[components.Agent]
	Predator   *ecs.Table[components.Predator]
	Apex       *ecs.Table[components.Apex]
	Resource   *ecs.Table[components.Resource]
	ForceField *ecs.Table[components.ForceField]
}

// NewTables registers every component table on s.
func NewTables(s *ecs.Store) Tables {
	return Tables{
		Store:      s,
		Position:   ecs.NewTable[components.Position](s, "position"),
		Velocity:   ecs.NewTable[components.Velocity](s, "velocity"),
		Agent:      ecs.NewTable[components.Agent](s, "agent"),
		Predator:   ecs.NewTable[components.Predator](s, "predator"),
		Apex:       ecs.NewTable[components.Apex](s, "apex"),
		Resource:   ecs.NewTable[components.Resource](s, "resource"),
		ForceField: ecs.NewTable[components.ForceField](s, "forceField"),
	}
}

// Bounds represents the simulation bounds.
type Bounds struct {
	Width, Height float64
}

// Globals are the world-wide scalars. Fertility and ReproductionThreshold are
// tunables; Metabolism and Storminess are rewritten by the regime system.
type Globals struct {
	Fertility             float64 `inspect:"bar,max:1,edit"`
	Metabolism            float64 `inspect:"label,fmt:%.2f"`
	Storminess            float64 `inspect:"bar,max:1"`
	ReproductionThreshold float64 `inspect:"label,fmt:%.2f,edit"`
}

// Context is the mutable state shared by the systems of one world.
type Context struct {
	Tables
	Cfg      *config.Config
	RNG      *rng.RNG
	Bounds   Bounds
	Globals  Globals
	Regime   components.Regime
	Tick     int64
	Recorder Recorder
	Logger   *slog.Logger

	// Neighbour grids, rebuilt from current positions by RebuildGrids.
	Agents    *SpatialGrid
	Predators *SpatialGrid
	Resources *SpatialGrid
}

// NewContext creates a context over a fresh store.
func NewContext(cfg *config.Config, r *rng.RNG, logger *slog.Logger, rec Recorder) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	if rec == nil {
		rec = NopRecorder{}
	}
	w, h := cfg.World.Width, cfg.World.Height
	cell := cfg.Physics.GridCellSize
	return &Context{
		Tables: NewTables(ecs.NewStore()),
		Cfg:    cfg,
		RNG:    r,
		Bounds: Bounds{Width: w, Height: h},
		Globals: Globals{
			Fertility:             cfg.World.Fertility,
			Metabolism:            1,
			ReproductionThreshold: cfg.World.ReproductionThreshold,
		},
		Regime:    components.RegimeCalm,
		Recorder:  rec,
		Logger:    logger,
		Agents:    NewSpatialGrid(w, h, cell),
		Predators: NewSpatialGrid(w, h, cell),
		Resources: NewSpatialGrid(w, h, cell),
	}
}

// RebuildGrids re-indexes agents, predators and resources at their current
// positions.
func (c *Context) RebuildGrids() {
	c.Agents.Clear()
	c.Predators.Clear()
	c.Resources.Clear()

	for e := range c.Store.View(c.Position) {
		pos := c.Position.Get(e)
		switch {
		case c.Agent.Has(e):
			c.Agents.Insert(e, pos.X, pos.Y)
		case c.Predator.Has(e):
			c.Predators.Insert(e, pos.X, pos.Y)
		case c.Resource.Has(e):
			c.Resources.Insert(e, pos.X, pos.Y)
		}
	}
}

// hasFood reports whether e is a resource with something left to eat.
func (c *Context) hasFood(e ecs.Entity) bool {
	res := c.Resource.Get(e)
	return res != nil && res.Amount > 0
}
