package systems

import (
	"io"
	"log/slog"
	"testing"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/config"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/rng"
)

// newTestContext returns an empty world context with default parameters.
func newTestContext(t *testing.T) *Context {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewContext(config.Default(), rng.New("systems-test"), logger, nil)
}

// still places an agent with zero velocity.
func still(c *Context, x, y float64) ecs.Entity {
	e := c.SpawnAgent(x, y, components.Fresh{})
	*c.Velocity.Get(e) = components.Velocity{}
	return e
}

// eventLog counts recorded events.
type eventLog struct {
	births  map[components.Role]int
	deaths  map[components.Role]int
	kills   map[components.Role]int
	bites   []float64
	seeds   []int
	regrows int
	regimes []components.Regime
}

func newEventLog() *eventLog {
	return &eventLog{
		births: make(map[components.Role]int),
		deaths: make(map[components.Role]int),
		kills:  make(map[components.Role]int),
	}
}

func (l *eventLog) RecordBirth(r components.Role) { l.births[r]++ }
func (l *eventLog) RecordDeath(r components.Role) { l.deaths[r]++ }
func (l *eventLog) RecordKill(r components.Role)  { l.kills[r]++ }
func (l *eventLog) RecordBite(a float64)          { l.bites = append(l.bites, a) }
func (l *eventLog) RecordPodSeed(n int)           { l.seeds = append(l.seeds, n) }
func (l *eventLog) RecordRegrowth()               { l.regrows++ }
func (l *eventLog) RecordRegimeChange(_ int64, _, to components.Regime) {
	l.regimes = append(l.regimes, to)
}
