package systems

import (
	"math"

	"github.com/pthm-cable/biome/components"
)

// EcologySystem ages resources, lets mature pods scatter new pods and
// regrows depleted food.
type EcologySystem struct {
	ctx *Context
}

// NewEcologySystem creates a new ecology system.
func NewEcologySystem(ctx *Context) *EcologySystem {
	return &EcologySystem{ctx: ctx}
}

// Update runs the ecology system over the resources present when it starts;
// pods spawned during the pass are not visited until the next step.
func (s *EcologySystem) Update(dt float64) {
	c := s.ctx
	cfg := c.Cfg.Resource
	regenRate := dt * (cfg.RegenBase + c.Globals.Fertility*cfg.RegenFertilityGain)
	pods := s.countPods()

	for _, e := range c.Store.Collect(c.Position, c.Resource) {
		pos, res := c.Position.Get(e), c.Resource.Get(e)
		if pos == nil || res == nil {
			continue
		}
		res.Age += dt

		if s.readyToSeed(res, pods) {
			n := s.seed(pos, res)
			pods += n
			c.Recorder.RecordPodSeed(n)
			c.Logger.Debug("pod_seeded", "tick", c.Tick, "entity", e, "children", n, "cycles", res.Cycles)
		}

		if res.Amount < cfg.RegrowBelow {
			res.RegenTimer -= regenRate
			if res.RegenTimer <= 0 {
				res.Amount = 1
				res.Cycles++
				res.Age = 0
				res.RegenTimer = c.RNG.Range(cfg.RegenMin, cfg.RegenMax)
				c.Recorder.RecordRegrowth()
			}
		}
	}
}

func (s *EcologySystem) countPods() int {
	c := s.ctx
	n := 0
	for e := range c.Store.View(c.Resource) {
		if c.Resource.Get(e).Kind == components.KindPod {
			n++
		}
	}
	return n
}

func (s *EcologySystem) readyToSeed(res *components.Resource, pods int) bool {
	cfg := s.ctx.Cfg.Resource
	return res.Kind == components.KindPod &&
		res.Age > res.SeedTimer &&
		res.Amount > cfg.SeedMinAmount &&
		res.Cycles < cfg.MaxCycles &&
		pods < cfg.MaxPods
}

// seed scatters children evenly around the parent with jittered angle and
// distance, then resets the parent for its next cycle.
func (s *EcologySystem) seed(pos *components.Position, res *components.Resource) int {
	c := s.ctx
	cfg := c.Cfg.Resource
	x, y := pos.X, pos.Y

	n := c.RNG.Int(cfg.SeedChildrenMin, cfg.SeedChildrenMax)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + c.RNG.Jitter(cfg.SeedAngleJitter)
		dist := c.RNG.Range(cfg.SeedDistanceMin, cfg.SeedDistanceMax)
		c.SpawnResource(x+math.Cos(angle)*dist, y+math.Sin(angle)*dist, components.KindPod, cfg.PodInitialAmount)
	}

	res.Amount = cfg.SeedResetAmount
	res.Cycles++
	res.Age = 0
	res.SeedTimer = c.RNG.Range(cfg.SeedTimerMin, cfg.SeedTimerMax)
	return n
}
