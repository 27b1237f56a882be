package systems

import "github.com/pthm-cable/biome/ecs"

// PhysicsSystem integrates velocity into position on the torus.
type PhysicsSystem struct {
	ctx *Context
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(ctx *Context) *PhysicsSystem {
	return &PhysicsSystem{ctx: ctx}
}

// Update runs the physics system.
func (s *PhysicsSystem) Update(dt float64) {
	b := s.ctx.Bounds

	query := ecs.NewQuery2(s.ctx.Store, s.ctx.Position, s.ctx.Velocity)
	for query.Next() {
		pos, vel := query.Get()
		pos.X = Wrap(pos.X+vel.X*dt, b.Width)
		pos.Y = Wrap(pos.Y+vel.Y*dt, b.Height)
	}
}
