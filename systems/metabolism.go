package systems

import "github.com/pthm-cable/biome/components"

// MetabolismSystem drains energy from every organism, lets agents bite nearby
// resources and lets rested hunters kill their prey.
type MetabolismSystem struct {
	ctx *Context
}

// NewMetabolismSystem creates a new metabolism system.
func NewMetabolismSystem(ctx *Context) *MetabolismSystem {
	return &MetabolismSystem{ctx: ctx}
}

// Update runs the metabolism system. Hunters resolve kills against grids
// rebuilt after physics; prey killed earlier in the pass are skipped.
func (s *MetabolismSystem) Update(dt float64) {
	s.ctx.RebuildGrids()

	s.feedAgents(dt)
	s.huntWithPredators(dt)
	s.huntWithApex(dt)
}

// Bite moves up to bite units from res into agent, capping the agent at
// maxEnergy. It returns the amount removed from the resource.
func Bite(agent *components.Agent, res *components.Resource, bite, maxEnergy float64) float64 {
	taken := min(bite, res.Amount)
	if taken <= 0 {
		return 0
	}
	res.Amount = clamp01(res.Amount - taken)
	agent.Energy = min(maxEnergy, agent.Energy+taken)
	return taken
}

func (s *MetabolismSystem) feedAgents(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Agent

	for _, e := range c.Store.Collect(c.Position, c.Agent) {
		pos, agent := c.Position.Get(e), c.Agent.Get(e)
		if pos == nil || agent == nil {
			continue
		}

		drain := cfg.BaseDrain * agent.DNA.Metabolism * c.Globals.Metabolism * dt
		agent.Energy = clampFloat(agent.Energy-drain, 0, cfg.MaxEnergy)

		n, ok := c.Resources.Nearest(pos.X, pos.Y, cfg.EatRadius, e, c.hasFood)
		if !ok {
			continue
		}
		if taken := Bite(agent, c.Resource.Get(n.E), cfg.BiteSize, cfg.MaxEnergy); taken > 0 {
			c.Recorder.RecordBite(taken)
		}
	}
}

func (s *MetabolismSystem) huntWithPredators(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Predator
	base := c.Cfg.Agent.BaseDrain

	for _, e := range c.Store.Collect(c.Position, c.Predator) {
		pos, pred := c.Position.Get(e), c.Predator.Get(e)
		if pos == nil || pred == nil {
			continue
		}

		pred.Rest = floor0(pred.Rest - dt)
		drain := base * pred.DNA.Metabolism * c.Globals.Metabolism * dt * cfg.DrainFactor
		if pred.Resting() {
			drain *= cfg.RestingDrainFactor
		}
		pred.Energy = clampFloat(pred.Energy-drain, 0, cfg.MaxEnergy)
		if pred.Resting() {
			continue
		}

		prey, ok := c.Agents.Nearest(pos.X, pos.Y, cfg.KillRadius, e, c.Agent.Has)
		if !ok {
			continue
		}
		c.Store.DestroyEntity(prey.E)
		pred.Energy = min(cfg.MaxEnergy, pred.Energy+cfg.KillGain)
		pred.Rest = c.RNG.Range(cfg.RestMin, cfg.RestMax)
		c.Recorder.RecordKill(components.RolePredator)
		c.Recorder.RecordDeath(components.RoleAgent)
	}
}

func (s *MetabolismSystem) huntWithApex(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Apex
	base := c.Cfg.Agent.BaseDrain

	for _, e := range c.Store.Collect(c.Position, c.Apex) {
		pos, apex := c.Position.Get(e), c.Apex.Get(e)
		if pos == nil || apex == nil {
			continue
		}

		apex.Rest = floor0(apex.Rest - dt)
		drain := base * c.Globals.Metabolism * dt * cfg.DrainFactor
		if apex.Resting() {
			drain *= cfg.RestingDrainFactor
		}
		apex.Energy = clampFloat(apex.Energy-drain, 0, cfg.MaxEnergy)
		if apex.Resting() {
			continue
		}

		prey, ok := c.Predators.Nearest(pos.X, pos.Y, cfg.KillRadius, e, c.Predator.Has)
		if !ok {
			continue
		}
		c.Store.DestroyEntity(prey.E)
		apex.Energy = min(cfg.MaxEnergy, apex.Energy+cfg.KillGain)
		apex.Rest = c.RNG.Range(cfg.RestMin, cfg.RestMax)
		c.Recorder.RecordKill(components.RoleApex)
		c.Recorder.RecordDeath(components.RolePredator)
	}
}
