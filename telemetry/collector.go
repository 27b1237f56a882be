// Package telemetry aggregates simulation events into fixed windows of
// simulated time, detects notable moments and writes CSV output.
package telemetry

import (
	"math"

	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/systems"
	"github.com/pthm-cable/biome/world"
)

var _ systems.Recorder = (*Collector)(nil)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window, indexed by components.Role
	births [3]int
	deaths [3]int
	kills  [3]int

	bites         int
	biteAmount    float64
	podSeeds      int
	seedlings     int
	regrowths     int
	regimeChanges int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(1)
	if dt > 0 {
		ticksPerWindow = int64(math.Round(windowDurationSec / dt))
	}
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

func roleIndex(r components.Role) int {
	if int(r) < 3 {
		return int(r)
	}
	return 0
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(role components.Role) {
	c.births[roleIndex(role)]++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(role components.Role) {
	c.deaths[roleIndex(role)]++
}

// RecordKill records a kill by hunter.
func (c *Collector) RecordKill(hunter components.Role) {
	c.kills[roleIndex(hunter)]++
}

// RecordBite records energy an agent took from a resource.
func (c *Collector) RecordBite(amount float64) {
	c.bites++
	c.biteAmount += amount
}

// RecordPodSeed records a pod spreading children seedlings.
func (c *Collector) RecordPodSeed(children int) {
	c.podSeeds++
	c.seedlings += children
}

// RecordRegrowth records a depleted resource refilling.
func (c *Collector) RecordRegrowth() {
	c.regrowths++
}

// RecordRegimeChange records a calm/storm transition.
func (c *Collector) RecordRegimeChange(int64, components.Regime, components.Regime) {
	c.regimeChanges++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample is the world state measured at the end of a window.
type Sample struct {
	Counts           world.Counts
	AgentEnergies    []float64
	PredatorEnergies []float64
	ApexEnergies     []float64
	ResourceAmounts  []float64
	Globals          systems.Globals
	Regime           components.Regime
}

// SampleSnapshot extracts the per-kind measurements of snap.
func SampleSnapshot(snap world.Snapshot) Sample {
	s := Sample{
		Globals: snap.Globals,
		Regime:  snap.Regime,
	}
	for _, e := range snap.Entities {
		switch {
		case e.Agent != nil:
			s.Counts.Agents++
			s.AgentEnergies = append(s.AgentEnergies, e.Agent.Energy)
		case e.Predator != nil:
			s.Counts.Predators++
			s.PredatorEnergies = append(s.PredatorEnergies, e.Predator.Energy)
		case e.Apex != nil:
			s.Counts.Apex++
			s.ApexEnergies = append(s.ApexEnergies, e.Apex.Energy)
		case e.Resource != nil:
			if e.Resource.Kind == components.KindPod {
				s.Counts.Pods++
			} else {
				s.Counts.Plants++
			}
			s.ResourceAmounts = append(s.ResourceAmounts, e.Resource.Amount)
		case e.ForceField != nil:
			s.Counts.ForceFields++
		}
	}
	return s
}

// Flush produces a WindowStats from the counters and the end-of-window
// sample, and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, sample Sample) WindowStats {
	agentMean, agentP10, agentP50, agentP90 := ComputeEnergyStats(sample.AgentEnergies)
	predMean, predP10, predP50, predP90 := ComputeEnergyStats(sample.PredatorEnergies)
	apexMean, apexP10, apexP50, apexP90 := ComputeEnergyStats(sample.ApexEnergies)
	resMean, resStd := ComputeResourceStats(sample.ResourceAmounts)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Agents:      sample.Counts.Agents,
		Predators:   sample.Counts.Predators,
		Apex:        sample.Counts.Apex,
		Plants:      sample.Counts.Plants,
		Pods:        sample.Counts.Pods,
		ForceFields: sample.Counts.ForceFields,

		AgentBirths:    c.births[components.RoleAgent],
		PredatorBirths: c.births[components.RolePredator],
		ApexBirths:     c.births[components.RoleApex],
		AgentDeaths:    c.deaths[components.RoleAgent],
		PredatorDeaths: c.deaths[components.RolePredator],
		ApexDeaths:     c.deaths[components.RoleApex],

		PredatorKills: c.kills[components.RolePredator],
		ApexKills:     c.kills[components.RoleApex],
		Bites:         c.bites,
		BiteAmount:    c.biteAmount,

		PodSeeds:      c.podSeeds,
		Seedlings:     c.seedlings,
		Regrowths:     c.regrowths,
		RegimeChanges: c.regimeChanges,

		AgentEnergyMean: agentMean,
		AgentEnergyP10:  agentP10,
		AgentEnergyP50:  agentP50,
		AgentEnergyP90:  agentP90,

		PredatorEnergyMean: predMean,
		PredatorEnergyP10:  predP10,
		PredatorEnergyP50:  predP50,
		PredatorEnergyP90:  predP90,

		ApexEnergyMean: apexMean,
		ApexEnergyP10:  apexP10,
		ApexEnergyP50:  apexP50,
		ApexEnergyP90:  apexP90,

		ResourceMean: resMean,
		ResourceStd:  resStd,
		Storminess:   sample.Globals.Storminess,
		Fertility:    sample.Globals.Fertility,
		Metabolism:   sample.Globals.Metabolism,
		Regime:       sample.Regime.String(),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = [3]int{}
	c.deaths = [3]int{}
	c.kills = [3]int{}
	c.bites = 0
	c.biteAmount = 0
	c.podSeeds = 0
	c.seedlings = 0
	c.regrowths = 0
	c.regimeChanges = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
