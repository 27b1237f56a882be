package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/rng"
)

// Base hues in degrees for freshly spawned organisms.
const (
	agentHue    = 120
	predatorHue = 10
	apexHue     = 280
	hueSpread   = 15

	// patchTries bounds rejection sampling for patchy plant placement.
	patchTries = 32
)

// FreshDNA draws DNA for a new lineage, biased by caste.
func FreshDNA(r *rng.RNG, caste components.Caste) components.DNA {
	d := components.DNA{
		Speed:      1 + r.Jitter(0.15),
		Sense:      1 + r.Jitter(0.15),
		Metabolism: 1 + r.Jitter(0.1),
		HueShift:   r.Jitter(10),
	}
	switch caste {
	case components.CasteScout:
		d.Sense *= 1.3
		d.Metabolism *= 1.05
	case components.CasteRunner:
		d.Speed *= 1.3
		d.Metabolism *= 1.15
	case components.CasteSaver:
		d.Speed *= 0.85
		d.Metabolism *= 0.75
	}
	return d.Clamped()
}

// MutateDNA perturbs each trait by a symmetric random delta and clamps the
// result to the trait bounds.
func (c *Context) MutateDNA(parent components.DNA) components.DNA {
	m := c.Cfg.Mutation
	return components.DNA{
		Speed:      parent.Speed + c.RNG.Jitter(m.Speed),
		Sense:      parent.Sense + c.RNG.Jitter(m.Sense),
		Metabolism: parent.Metabolism + c.RNG.Jitter(m.Metabolism),
		HueShift:   parent.HueShift + c.RNG.Jitter(m.HueShift),
	}.Clamped()
}

func (c *Context) dnaFor(lin components.Lineage, caste components.Caste) components.DNA {
	switch l := lin.(type) {
	case components.Inherited:
		return c.MutateDNA(l.Parent)
	default:
		return FreshDNA(c.RNG, caste)
	}
}

func (c *Context) place(x, y float64, vel components.Velocity) ecs.Entity {
	e := c.Store.CreateEntity()
	c.Position.Add(e, components.Position{X: Wrap(x, c.Bounds.Width), Y: Wrap(y, c.Bounds.Height)})
	c.Velocity.Add(e, vel)
	return e
}

func (c *Context) jitterVelocity(scale float64) components.Velocity {
	return components.Velocity{X: c.RNG.Jitter(scale), Y: c.RNG.Jitter(scale)}
}

// SpawnAgent creates an agent at (x, y). Fresh lineages draw a random caste;
// inherited ones start as balanced and the caller assigns the parent's caste.
func (c *Context) SpawnAgent(x, y float64, lin components.Lineage) ecs.Entity {
	cfg := c.Cfg.Agent
	caste := components.CasteBalanced
	if _, fresh := lin.(components.Fresh); fresh {
		caste = rng.Choice(c.RNG, components.Castes())
	}
	dna := c.dnaFor(lin, caste)
	hue := wrapHue(agentHue + c.RNG.Jitter(hueSpread))

	e := c.place(x, y, c.jitterVelocity(cfg.VelocityJitter))
	c.Agent.Add(e, components.Agent{
		ColorHue: hue,
		Energy:   cfg.InitialEnergy,
		DNA:      dna,
		Caste:    caste,
	})
	return e
}

// SpawnPredator creates a predator at (x, y).
func (c *Context) SpawnPredator(x, y float64, lin components.Lineage) ecs.Entity {
	cfg := c.Cfg.Predator
	dna := c.dnaFor(lin, components.CasteBalanced)
	hue := wrapHue(predatorHue + c.RNG.Jitter(hueSpread))

	e := c.place(x, y, c.jitterVelocity(cfg.VelocityJitter))
	c.Predator.Add(e, components.Predator{
		ColorHue: hue,
		Energy:   cfg.InitialEnergy,
		DNA:      dna,
	})
	return e
}

// SpawnApex creates an apex hunter at (x, y).
func (c *Context) SpawnApex(x, y float64) ecs.Entity {
	cfg := c.Cfg.Apex
	hue := wrapHue(apexHue + c.RNG.Jitter(hueSpread))

	e := c.place(x, y, c.jitterVelocity(cfg.VelocityJitter))
	c.Apex.Add(e, components.Apex{
		ColorHue: hue,
		Energy:   cfg.InitialEnergy,
	})
	return e
}

// SpawnResource creates a stationary plant or pod at (x, y) holding amount.
func (c *Context) SpawnResource(x, y float64, kind components.ResourceKind, amount float64) ecs.Entity {
	cfg := c.Cfg.Resource
	res := components.Resource{
		Kind:       kind,
		Amount:     clamp01(amount),
		RegenTimer: c.RNG.Range(cfg.RegenMin, cfg.RegenMax),
	}
	if kind == components.KindPod {
		res.SeedTimer = c.RNG.Range(cfg.SeedTimerMin, cfg.SeedTimerMax)
	}

	e := c.Store.CreateEntity()
	c.Position.Add(e, components.Position{X: Wrap(x, c.Bounds.Width), Y: Wrap(y, c.Bounds.Height)})
	c.Resource.Add(e, res)
	return e
}

// SpawnForceField creates a field anchored at (x, y).
func (c *Context) SpawnForceField(x, y, strength, radius float64) ecs.Entity {
	e := c.Store.CreateEntity()
	c.Position.Add(e, components.Position{X: Wrap(x, c.Bounds.Width), Y: Wrap(y, c.Bounds.Height)})
	c.ForceField.Add(e, components.ForceField{Strength: strength, Radius: radius})
	return e
}

// Populate spawns the configured initial population. Plants cluster in
// patches following a noise field seeded from the world RNG.
func (c *Context) Populate() {
	pop := c.Cfg.Population
	w, h := c.Bounds.Width, c.Bounds.Height

	for range pop.Agents {
		c.SpawnAgent(c.RNG.Range(0, w), c.RNG.Range(0, h), components.Fresh{})
	}
	for range pop.Predators {
		c.SpawnPredator(c.RNG.Range(0, w), c.RNG.Range(0, h), components.Fresh{})
	}
	for range pop.Apex {
		c.SpawnApex(c.RNG.Range(0, w), c.RNG.Range(0, h))
	}

	noise := opensimplex.NewNormalized(int64(c.RNG.Int(0, math.MaxInt32)))
	for range pop.Plants {
		x, y := c.patchyPoint(noise, pop.Patchiness, pop.PatchScale)
		c.SpawnResource(x, y, components.KindPlant, c.RNG.Range(0.5, 1))
	}
	for range pop.Pods {
		c.SpawnResource(c.RNG.Range(0, w), c.RNG.Range(0, h), components.KindPod, c.RNG.Range(0.6, 1))
	}
}

// patchyPoint rejection-samples a point, accepting it with probability that
// rises with the noise value. patchiness 0 accepts every point.
func (c *Context) patchyPoint(noise opensimplex.Noise, patchiness, scale float64) (float64, float64) {
	var x, y float64
	for range patchTries {
		x = c.RNG.Range(0, c.Bounds.Width)
		y = c.RNG.Range(0, c.Bounds.Height)
		accept := (1 - patchiness) + patchiness*noise.Eval2(x*scale, y*scale)
		if c.RNG.Float() < accept {
			break
		}
	}
	return x, y
}
