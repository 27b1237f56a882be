package systems

import (
	"math"

	"github.com/pthm-cable/biome/ecs"
)

// ForceFieldSystem pulls or pushes moving entities around painted anchors.
// Acceleration falls off linearly from |strength| at the anchor to zero at
// the field radius.
type ForceFieldSystem struct {
	ctx *Context
}

// NewForceFieldSystem creates a new force field system.
func NewForceFieldSystem(ctx *Context) *ForceFieldSystem {
	return &ForceFieldSystem{ctx: ctx}
}

// Update runs the force field system.
func (s *ForceFieldSystem) Update(dt float64) {
	c := s.ctx

	fields := ecs.NewQuery2(c.Store, c.Position, c.ForceField)
	for fields.Next() {
		anchor, field := fields.Get()
		self := fields.Entity()
		if field.Radius <= 0 {
			continue
		}
		dir := 1.0
		if field.Strength < 0 {
			dir = -1
		}
		mag := math.Abs(field.Strength)

		movers := ecs.NewQuery2(c.Store, c.Position, c.Velocity)
		for movers.Next() {
			if movers.Entity() == self {
				continue
			}
			pos, vel := movers.Get()
			dx, dy := ToroidalDelta(pos.X, pos.Y, anchor.X, anchor.Y, c.Bounds.Width, c.Bounds.Height)
			d := math.Hypot(dx, dy)
			if d == 0 || d >= field.Radius {
				continue
			}
			accel := dir * (1 - d/field.Radius) * mag
			vel.X += dx / d * accel * dt
			vel.Y += dy / d * accel * dt
		}
	}
}
