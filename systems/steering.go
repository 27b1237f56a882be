package systems

import (
	"math"

	"github.com/pthm-cable/biome/ecs"
)

// SteeringSystem turns every hunter and forager toward its nearest target and
// keeps agents from crowding each other.
type SteeringSystem struct {
	ctx     *Context
	scratch []Neighbor
}

// NewSteeringSystem creates a new steering system.
func NewSteeringSystem(ctx *Context) *SteeringSystem {
	return &SteeringSystem{ctx: ctx}
}

// Update runs the steering system.
func (s *SteeringSystem) Update(dt float64) {
	c := s.ctx
	c.RebuildGrids()

	s.steerAgents(dt)
	s.steerPredators()
	s.steerApex()
}

func (s *SteeringSystem) steerAgents(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Agent

	query := ecs.NewQuery3(c.Store, c.Position, c.Velocity, c.Agent)
	for query.Next() {
		e := query.Entity()
		pos, vel, agent := query.Get()

		sense := cfg.SenseRadius * agent.DNA.Sense
		if n, ok := c.Resources.Nearest(pos.X, pos.Y, sense, e, c.hasFood); ok {
			vel.X, vel.Y = blendToward(vel.X, vel.Y, n.DX, n.DY, cfg.DesiredSpeed*agent.DNA.Speed, cfg.SteerBlend)
		}

		var ax, ay float64
		s.scratch = c.Agents.QueryRadiusInto(s.scratch[:0], pos.X, pos.Y, cfg.SeparationRadius, e)
		for _, n := range s.scratch {
			if n.DistSq == 0 {
				continue
			}
			d := math.Sqrt(n.DistSq)
			push := cfg.SeparationStrength / max(d, 1)
			ax -= n.DX / d * push
			ay -= n.DY / d * push
		}
		vel.X += ax * dt
		vel.Y += ay * dt
	}
}

func (s *SteeringSystem) steerPredators() {
	c := s.ctx
	cfg := c.Cfg.Predator

	query := ecs.NewQuery3(c.Store, c.Position, c.Velocity, c.Predator)
	for query.Next() {
		e := query.Entity()
		pos, vel, pred := query.Get()
		if pred.Resting() {
			continue
		}

		sense := cfg.SenseRadius * pred.DNA.Sense
		if n, ok := c.Agents.Nearest(pos.X, pos.Y, sense, e, nil); ok {
			vel.X, vel.Y = blendToward(vel.X, vel.Y, n.DX, n.DY, cfg.DesiredSpeed*pred.DNA.Speed, cfg.SteerBlend)
		}
	}
}

func (s *SteeringSystem) steerApex() {
	c := s.ctx
	cfg := c.Cfg.Apex

	query := ecs.NewQuery3(c.Store, c.Position, c.Velocity, c.Apex)
	for query.Next() {
		e := query.Entity()
		pos, vel, apex := query.Get()
		if apex.Resting() {
			continue
		}

		if n, ok := c.Predators.Nearest(pos.X, pos.Y, cfg.SenseRadius, e, nil); ok {
			vel.X, vel.Y = blendToward(vel.X, vel.Y, n.DX, n.DY, cfg.DesiredSpeed, cfg.SteerBlend)
		}
	}
}

