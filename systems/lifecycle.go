package systems

import (
	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/ecs"
)

// LifecycleSystem ages organisms, splits well-fed adults and removes starved
// hunters. Agents never starve to death: their energy floors at zero and they
// simply stop reproducing.
type LifecycleSystem struct {
	ctx *Context
}

// NewLifecycleSystem creates a new life-cycle system.
func NewLifecycleSystem(ctx *Context) *LifecycleSystem {
	return &LifecycleSystem{ctx: ctx}
}

// Update runs the life-cycle system.
func (s *LifecycleSystem) Update(dt float64) {
	s.updateAgents(dt)
	s.updatePredators(dt)
	s.updateApex(dt)
}

func (s *LifecycleSystem) updateAgents(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Agent

	for _, e := range c.Store.Collect(c.Position, c.Agent) {
		agent := c.Agent.Get(e)
		if agent == nil {
			continue
		}
		agent.Age += dt
		agent.Energy = floor0(agent.Energy)

		if agent.Energy >= c.Globals.ReproductionThreshold && agent.Age > cfg.MaturityAge {
			s.splitAgent(e)
		}
	}
}

// splitAgent halves the parent's energy into a mutated child placed nearby.
func (s *LifecycleSystem) splitAgent(parent ecs.Entity) ecs.Entity {
	c := s.ctx
	cfg := c.Cfg.Agent
	pos, vel, p := c.Position.Get(parent), c.Velocity.Get(parent), c.Agent.Get(parent)

	half := p.Energy / 2
	x := pos.X + c.RNG.Jitter(cfg.SpawnOffset)
	y := pos.Y + c.RNG.Jitter(cfg.SpawnOffset)
	child := c.SpawnAgent(x, y, components.Inherited{Parent: p.DNA})

	ca := c.Agent.Get(child)
	ca.Energy = half
	ca.Caste = p.Caste
	ca.Evolved = true
	ca.ColorHue = wrapHue(p.ColorHue + ca.DNA.HueShift*0.25)
	p.Energy = half
	s.inheritVelocity(child, vel, cfg.VelocityJitter)

	c.Recorder.RecordBirth(components.RoleAgent)
	return child
}

func (s *LifecycleSystem) updatePredators(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Predator

	for _, e := range c.Store.Collect(c.Position, c.Predator) {
		pred := c.Predator.Get(e)
		if pred == nil {
			continue
		}
		pred.Age += dt

		if pred.Energy <= 0 {
			c.Store.DestroyEntity(e)
			c.Recorder.RecordDeath(components.RolePredator)
			continue
		}
		if cfg.ReproThreshold > 0 && pred.Energy >= cfg.ReproThreshold && pred.Age > cfg.MaturityAge {
			s.splitPredator(e)
		}
	}
}

func (s *LifecycleSystem) splitPredator(parent ecs.Entity) ecs.Entity {
	c := s.ctx
	cfg := c.Cfg.Predator
	pos, vel, p := c.Position.Get(parent), c.Velocity.Get(parent), c.Predator.Get(parent)

	half := p.Energy / 2
	x := pos.X + c.RNG.Jitter(cfg.SpawnOffset)
	y := pos.Y + c.RNG.Jitter(cfg.SpawnOffset)
	child := c.SpawnPredator(x, y, components.Inherited{Parent: p.DNA})

	cp := c.Predator.Get(child)
	cp.Energy = half
	cp.ColorHue = wrapHue(p.ColorHue + cp.DNA.HueShift*0.25)
	p.Energy = half
	s.inheritVelocity(child, vel, cfg.VelocityJitter)

	c.Recorder.RecordBirth(components.RolePredator)
	return child
}

func (s *LifecycleSystem) updateApex(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Apex

	for _, e := range c.Store.Collect(c.Position, c.Apex) {
		apex := c.Apex.Get(e)
		if apex == nil {
			continue
		}
		apex.Age += dt

		if apex.Energy <= 0 {
			c.Store.DestroyEntity(e)
			c.Recorder.RecordDeath(components.RoleApex)
			continue
		}
		if cfg.ReproThreshold > 0 && apex.Energy >= cfg.ReproThreshold && apex.Age > cfg.MaturityAge {
			s.splitApex(e)
		}
	}
}

func (s *LifecycleSystem) splitApex(parent ecs.Entity) ecs.Entity {
	c := s.ctx
	cfg := c.Cfg.Apex
	pos, vel, p := c.Position.Get(parent), c.Velocity.Get(parent), c.Apex.Get(parent)

	half := p.Energy / 2
	child := c.SpawnApex(pos.X+c.RNG.Jitter(cfg.SpawnOffset), pos.Y+c.RNG.Jitter(cfg.SpawnOffset))
	c.Apex.Get(child).Energy = half
	p.Energy = half
	s.inheritVelocity(child, vel, cfg.VelocityJitter)

	c.Recorder.RecordBirth(components.RoleApex)
	return child
}

// inheritVelocity sets the child's velocity to the parent's plus jitter.
func (s *LifecycleSystem) inheritVelocity(child ecs.Entity, parent *components.Velocity, jitter float64) {
	c := s.ctx
	v := c.Velocity.Get(child)
	v.X = parent.X + c.RNG.Jitter(jitter)
	v.Y = parent.Y + c.RNG.Jitter(jitter)
}
