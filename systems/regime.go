package systems

import "github.com/pthm-cable/biome/components"

// RegimeSystem smooths global storminess toward a target driven by food
// scarcity and agent crowding, and derives the metabolism multiplier from it.
type RegimeSystem struct {
	ctx *Context
}

// NewRegimeSystem creates a new regime system.
func NewRegimeSystem(ctx *Context) *RegimeSystem {
	return &RegimeSystem{ctx: ctx}
}

// Scarcity maps the mean resource amount to [0, 1]: zero at or above pivot,
// rising linearly to one as the mean falls to zero.
func Scarcity(meanAmount, pivot float64) float64 {
	if meanAmount >= pivot {
		return 0
	}
	return clamp01((pivot - meanAmount) / pivot)
}

// Update runs the regime system.
func (s *RegimeSystem) Update(float64) {
	c := s.ctx
	cfg := c.Cfg.Regime

	pressure := float64(c.Agent.Len()) / cfg.PressureDivisor

	var sum float64
	n := 0
	for e := range c.Store.View(c.Resource) {
		sum += c.Resource.Get(e).Amount
		n++
	}
	mean := 0.0
	if n > 0 {
		mean = sum / float64(n)
	}

	target := clamp01(cfg.ScarcityWeight*Scarcity(mean, cfg.ScarcityPivot) + cfg.PressureWeight*pressure)
	g := &c.Globals
	g.Storminess = clamp01(g.Storminess + (target-g.Storminess)*cfg.Smoothing)
	g.Metabolism = 1 + g.Storminess*cfg.MetabolismGain

	next := components.RegimeCalm
	if g.Storminess > cfg.StormThreshold {
		next = components.RegimeStorm
	}
	if next != c.Regime {
		c.Logger.Info("regime_change",
			"tick", c.Tick,
			"from", c.Regime.String(),
			"to", next.String(),
			"storminess", g.Storminess,
		)
		c.Recorder.RecordRegimeChange(c.Tick, c.Regime, next)
		c.Regime = next
	}
}
