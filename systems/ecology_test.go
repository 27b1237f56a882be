package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/biome/components"
)

func countKind(c *Context, kind components.ResourceKind) int {
	n := 0
	for e := range c.Store.View(c.Resource) {
		if c.Resource.Get(e).Kind == kind {
			n++
		}
	}
	return n
}

func TestMaturePodSeeds(t *testing.T) {
	c := newTestContext(t)
	log := newEventLog()
	c.Recorder = log
	e := c.SpawnResource(400, 240, components.KindPod, 0.8)
	pod := c.Resource.Get(e)
	pod.SeedTimer = 1
	pod.Age = 2
	pod.RegenTimer = 100

	NewEcologySystem(c).Update(0.06)

	spawned := countKind(c, components.KindPod) - 1
	if spawned < 4 || spawned > 7 {
		t.Errorf("spawned %d pods, want 4..7", spawned)
	}
	if math.Abs(pod.Amount-0.3) > 1e-9 {
		t.Errorf("amount = %v, want 0.3", pod.Amount)
	}
	if pod.Cycles != 1 {
		t.Errorf("cycles = %d, want 1", pod.Cycles)
	}
	if pod.Age != 0 {
		t.Errorf("age = %v, want 0", pod.Age)
	}
	if pod.SeedTimer < 10 || pod.SeedTimer >= 22 {
		t.Errorf("seed timer = %v, want within [10, 22)", pod.SeedTimer)
	}
	if len(log.seeds) != 1 || log.seeds[0] != spawned {
		t.Errorf("seed events = %v, want [%d]", log.seeds, spawned)
	}

	for ent := range c.Store.View(c.Position) {
		pos := c.Position.Get(ent)
		if pos.X < 0 || pos.X >= c.Bounds.Width || pos.Y < 0 || pos.Y >= c.Bounds.Height {
			t.Errorf("pod %d outside bounds: %+v", ent, *pos)
		}
	}
}

func TestPodSeedingThrottles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Context, pod *components.Resource)
	}{
		{"too young", func(_ *Context, pod *components.Resource) { pod.Age = 0 }},
		{"too depleted", func(_ *Context, pod *components.Resource) { pod.Amount = 0.5 }},
		{"cycles exhausted", func(_ *Context, pod *components.Resource) { pod.Cycles = 3 }},
		{"population capped", func(c *Context, _ *components.Resource) {
			for i := range 80 {
				c.SpawnResource(float64(i*9), 10, components.KindPod, 0.1)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			e := c.SpawnResource(400, 240, components.KindPod, 0.8)
			pod := c.Resource.Get(e)
			pod.SeedTimer = 1
			pod.Age = 2
			tt.mutate(c, pod)
			before := countKind(c, components.KindPod)

			NewEcologySystem(c).Update(0.06)

			if after := countKind(c, components.KindPod); after != before {
				t.Errorf("pods went from %d to %d", before, after)
			}
		})
	}
}

func TestRegrowth(t *testing.T) {
	c := newTestContext(t)
	log := newEventLog()
	c.Recorder = log
	e := c.SpawnResource(100, 100, components.KindPlant, 0.2)
	res := c.Resource.Get(e)
	res.RegenTimer = 0.01
	res.Age = 5

	NewEcologySystem(c).Update(0.06)

	if res.Amount != 1 {
		t.Errorf("amount = %v, want 1", res.Amount)
	}
	if res.Cycles != 1 || res.Age != 0 {
		t.Errorf("cycles = %d age = %v, want 1 and 0", res.Cycles, res.Age)
	}
	if res.RegenTimer < c.Cfg.Resource.RegenMin || res.RegenTimer >= c.Cfg.Resource.RegenMax {
		t.Errorf("regen timer = %v, want within [%v, %v)", res.RegenTimer, c.Cfg.Resource.RegenMin, c.Cfg.Resource.RegenMax)
	}
	if log.regrows != 1 {
		t.Errorf("regrowth events = %d, want 1", log.regrows)
	}
}

func TestRegrowthRate(t *testing.T) {
	c := newTestContext(t)
	e := c.SpawnResource(100, 100, components.KindPlant, 0.5)
	res := c.Resource.Get(e)
	res.RegenTimer = 10

	NewEcologySystem(c).Update(0.06)

	want := 10 - 0.06*(0.8+0.6*1.2)
	if math.Abs(res.RegenTimer-want) > 1e-9 {
		t.Errorf("regen timer = %v, want %v", res.RegenTimer, want)
	}
	if res.Amount != 0.5 {
		t.Errorf("amount changed before timer expired: %v", res.Amount)
	}
}

func TestFullResourceDoesNotCountDown(t *testing.T) {
	c := newTestContext(t)
	e := c.SpawnResource(100, 100, components.KindPlant, 1)
	res := c.Resource.Get(e)
	res.RegenTimer = 5

	NewEcologySystem(c).Update(0.06)

	if res.RegenTimer != 5 {
		t.Errorf("regen timer = %v, want unchanged 5", res.RegenTimer)
	}
	if math.Abs(res.Age-0.06) > 1e-12 {
		t.Errorf("age = %v, want 0.06", res.Age)
	}
}
