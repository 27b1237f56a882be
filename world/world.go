// Package world owns a simulation instance: its store, globals, tick counter
// and regime, and the entry points drivers and the inspector use to poke it.
package world

import (
	"log/slog"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/rng"
	"github.com/pthm-cable/biome/systems"
)

// Options configures world construction.
type Options struct {
	Config   *config.Config     // nil uses config.Default()
	Logger   *slog.Logger       // nil uses slog.Default()
	Recorder systems.Recorder   // nil discards events
	Timer    systems.PhaseTimer // optional per-system timing
	Empty    bool               // skip the initial population
}

// World is one simulation instance. It is not safe for concurrent use.
type World struct {
	ctx      *systems.Context
	pipeline *systems.Pipeline
	logger   *slog.Logger
}

// New builds a populated world with default configuration.
func New(r *rng.RNG) *World {
	return NewWithOptions(r, Options{})
}

// NewWithOptions builds a world from r and opts.
func NewWithOptions(r *rng.RNG, opts Options) *World {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx := systems.NewContext(cfg, r, logger, opts.Recorder)
	w := &World{
		ctx:      ctx,
		pipeline: systems.NewPipeline(ctx),
		logger:   logger,
	}
	w.pipeline.SetTimer(opts.Timer)

	if !opts.Empty {
		ctx.Populate()
	}

	c := w.Counts()
	logger.Info("world_created",
		"seed", r.Seed(),
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"agents", c.Agents,
		"predators", c.Predators,
		"apex", c.Apex,
		"plants", c.Plants,
		"pods", c.Pods,
	)
	return w
}

// Step advances the simulation by exactly dt seconds.
func (w *World) Step(dt float64) {
	w.pipeline.Step(dt)
}

// Width returns the arena width.
func (w *World) Width() float64 { return w.ctx.Bounds.Width }

// Height returns the arena height.
func (w *World) Height() float64 { return w.ctx.Bounds.Height }

// Tick returns the number of completed steps.
func (w *World) Tick() int64 { return w.ctx.Tick }

// Regime returns the current climate regime.
func (w *World) Regime() components.Regime { return w.ctx.Regime }

// Globals returns a copy of the world-wide scalars.
func (w *World) Globals() systems.Globals { return w.ctx.Globals }

// Config returns the parameters the world was built with.
func (w *World) Config() *config.Config { return w.ctx.Cfg }

// Seed returns the seed string of the world's RNG.
func (w *World) Seed() string { return w.ctx.RNG.Seed() }

// SetFertility tunes the fertility global, clamped to [0, 1].
func (w *World) SetFertility(v float64) {
	w.ctx.Globals.Fertility = min(1, max(0, v))
}

// Counts is the population by kind.
type Counts struct {
	Agents      int
	Predators   int
	Apex        int
	Plants      int
	Pods        int
	ForceFields int
}

// Counts returns the current population by kind.
func (w *World) Counts() Counts {
	c := w.ctx
	out := Counts{
		Agents:      c.Agent.Len(),
		Predators:   c.Predator.Len(),
		Apex:        c.Apex.Len(),
		ForceFields: c.ForceField.Len(),
	}
	for e := range c.Store.View(c.Resource) {
		if c.Resource.Get(e).Kind == components.KindPod {
			out.Pods++
		} else {
			out.Plants++
		}
	}
	return out
}

// SpawnAgentAt places a fresh agent.
func (w *World) SpawnAgentAt(x, y float64) ecs.Entity {
	return w.ctx.SpawnAgent(x, y, components.Fresh{})
}

// SpawnPredatorAt places a fresh predator.
func (w *World) SpawnPredatorAt(x, y float64) ecs.Entity {
	return w.ctx.SpawnPredator(x, y, components.Fresh{})
}

// SpawnApexAt places an apex hunter.
func (w *World) SpawnApexAt(x, y float64) ecs.Entity {
	return w.ctx.SpawnApex(x, y)
}

// SpawnPlantAt places a fully grown plant.
func (w *World) SpawnPlantAt(x, y float64) ecs.Entity {
	return w.ctx.SpawnResource(x, y, components.KindPlant, 1)
}

// SpawnPodAt places a fully grown pod.
func (w *World) SpawnPodAt(x, y float64) ecs.Entity {
	return w.ctx.SpawnResource(x, y, components.KindPod, 1)
}

// PaintForceField moves the nearest existing field anchored close to p onto
// p, or creates a new field there. Either way its strength becomes
// polarity times the configured strength.
func (w *World) PaintForceField(p components.Position, polarity components.Polarity) ecs.Entity {
	c := w.ctx
	cfg := c.Cfg.ForceField
	strength := float64(polarity) * cfg.Strength
	x := systems.Wrap(p.X, c.Bounds.Width)
	y := systems.Wrap(p.Y, c.Bounds.Height)

	snap := cfg.SnapFactor * cfg.Radius
	best, bestDist := ecs.Nil, 0.0
	for e := range c.Store.View(c.Position, c.ForceField) {
		anchor := c.Position.Get(e)
		d := systems.ToroidalDistance(x, y, anchor.X, anchor.Y, c.Bounds.Width, c.Bounds.Height)
		if d <= snap && (best == ecs.Nil || d < bestDist) {
			best, bestDist = e, d
		}
	}

	if best == ecs.Nil {
		return c.SpawnForceField(x, y, strength, cfg.Radius)
	}
	*c.Position.Get(best) = components.Position{X: x, Y: y}
	c.ForceField.Get(best).Strength = strength
	return best
}

// Remove destroys e. Removing an absent entity is a no-op.
func (w *World) Remove(e ecs.Entity) {
	w.ctx.Store.DestroyEntity(e)
}
