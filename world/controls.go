package world

import (
	"github.com/pthm-cable/biome/components"
	"github.com/pthm-cable/biome/ecs"
	"github.com/pthm-cable/biome/inspector"
	"github.com/pthm-cable/biome/systems"
)

// Controls is the fixed set of operations a UI driver may invoke on a world.
type Controls interface {
	inspector.Source

	PaintForceField(p components.Position, polarity components.Polarity) ecs.Entity
	SpawnAgentAt(x, y float64) ecs.Entity
	SpawnPredatorAt(x, y float64) ecs.Entity
	SpawnApexAt(x, y float64) ecs.Entity
	SpawnPlantAt(x, y float64) ecs.Entity
	SpawnPodAt(x, y float64) ecs.Entity
}

// Sim is what an interactive driver loop needs: the controls plus stepping
// and the read surface.
type Sim interface {
	Controls

	Step(dt float64)
	Snapshot() Snapshot
	Tick() int64
	Regime() components.Regime
	Globals() systems.Globals
	Counts() Counts
	Width() float64
	Height() float64
	SetFertility(v float64)
}

var (
	_ Controls = (*World)(nil)
	_ Sim      = (*World)(nil)
)

// Tool is a UI action bound to a pointer click in world coordinates.
type Tool uint8

const (
	ToolInspect Tool = iota
	ToolAgent
	ToolPredator
	ToolApex
	ToolPlant
	ToolPod
	ToolAttract
	ToolRepel
)

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolInspect, ToolAgent, ToolPredator, ToolApex, ToolPlant, ToolPod, ToolAttract, ToolRepel}
}

// String returns the tool label.
func (t Tool) String() string {
	names := []string{"inspect", "agent", "predator", "apex", "plant", "pod", "attract", "repel"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Apply performs the tool at world point (x, y). The inspect tool selects
// through ins, which may be nil for drivers without a panel.
func (t Tool) Apply(c Controls, ins *inspector.Inspector, x, y float64) {
	switch t {
	case ToolInspect:
		if ins != nil {
			ins.HandleClick(c, x, y)
		}
	case ToolAgent:
		c.SpawnAgentAt(x, y)
	case ToolPredator:
		c.SpawnPredatorAt(x, y)
	case ToolApex:
		c.SpawnApexAt(x, y)
	case ToolPlant:
		c.SpawnPlantAt(x, y)
	case ToolPod:
		c.SpawnPodAt(x, y)
	case ToolAttract:
		c.PaintForceField(components.Position{X: x, Y: y}, components.Attract)
	case ToolRepel:
		c.PaintForceField(components.Position{X: x, Y: y}, components.Repel)
	}
}
