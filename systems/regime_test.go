package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/biome/components"
)

func TestScarcity(t *testing.T) {
	tests := []struct {
		mean float64
		want float64
	}{
		{1, 0},
		{0.5, 0},
		{0.25, 0.5},
		{0, 1},
	}
	for _, tt := range tests {
		if got := Scarcity(tt.mean, 0.5); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Scarcity(%v) = %v, want %v", tt.mean, got, tt.want)
		}
	}
}

func TestRegimeSmoothing(t *testing.T) {
	c := newTestContext(t)
	// No resources: scarcity 1, no agents: pressure 0.
	NewRegimeSystem(c).Update(0.06)

	want := 0.7 * 0.05
	if math.Abs(c.Globals.Storminess-want) > 1e-12 {
		t.Errorf("storminess = %v, want %v", c.Globals.Storminess, want)
	}
	if math.Abs(c.Globals.Metabolism-(1+want*1.5)) > 1e-12 {
		t.Errorf("metabolism = %v, want %v", c.Globals.Metabolism, 1+want*1.5)
	}
}

func TestRegimeFlipsToStormAndBack(t *testing.T) {
	c := newTestContext(t)
	log := newEventLog()
	c.Recorder = log
	sys := NewRegimeSystem(c)

	// Starve the world and crowd it: target storminess is 1.
	for range 80 {
		still(c, 10, 10)
	}
	steps := 0
	for c.Regime != components.RegimeStorm {
		sys.Update(0.06)
		steps++
		if steps > 1000 {
			t.Fatal("never reached storm")
		}
	}
	if c.Globals.Storminess <= 0.55 {
		t.Errorf("storm at storminess %v", c.Globals.Storminess)
	}

	// Plentiful food and no agents: target drops to 0.
	for e := range c.Store.View(c.Agent) {
		c.Store.DestroyEntity(e)
	}
	c.SpawnResource(100, 100, components.KindPlant, 1)
	steps = 0
	for c.Regime != components.RegimeCalm {
		sys.Update(0.06)
		steps++
		if steps > 1000 {
			t.Fatal("never returned to calm")
		}
	}
	if c.Globals.Storminess > 0.55 {
		t.Errorf("calm at storminess %v", c.Globals.Storminess)
	}
	if len(log.regimes) != 2 || log.regimes[0] != components.RegimeStorm || log.regimes[1] != components.RegimeCalm {
		t.Errorf("regime events = %v", log.regimes)
	}
}

func TestPipelineOrder(t *testing.T) {
	c := newTestContext(t)
	p := NewPipeline(c)
	want := NewSystemRegistry().IDs()
	got := p.Order()
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, got[i], want[i])
		}
	}

	p.Step(0.06)
	p.Step(0.06)
	if c.Tick != 2 {
		t.Errorf("tick = %d, want 2", c.Tick)
	}
}
