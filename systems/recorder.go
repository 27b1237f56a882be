package systems

import "github.com/pthm-cable/biome/components"

// Recorder receives simulation events as they happen inside a step.
// Implementations must not mutate the world.
type Recorder interface {
	RecordBirth(role components.Role)
	RecordDeath(role components.Role)
	RecordKill(hunter components.Role)
	RecordBite(amount float64)
	RecordPodSeed(children int)
	RecordRegrowth()
	RecordRegimeChange(tick int64, from, to components.Regime)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) RecordBirth(components.Role) {}
func (NopRecorder) RecordDeath(components.Role) {}
func (NopRecorder) RecordKill(components.Role) {}
func (NopRecorder) RecordBite(float64) {}
func (NopRecorder) RecordPodSeed(int) {}
func (NopRecorder) RecordRegrowth() {}
func (NopRecorder) RecordRegimeChange(int64, components.Regime, components.Regime) {}
