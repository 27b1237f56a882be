// Package components defines the component data stored in the entity tables.
package components

// Position is an entity's location in world units.
type Position struct {
	X float64 `inspect:"label,fmt:%.1f,edit"`
	Y float64 `inspect:"label,fmt:%.1f,edit"`
}

// Velocity is an entity's velocity in world units per second.
type Velocity struct {
	X float64 `inspect:"label,fmt:%.1f,edit"`
	Y float64 `inspect:"label,fmt:%.1f,edit"`
}

// ForceField is a painted attractor (Strength >= 0) or repulsor anchored to
// the entity's Position.
type ForceField struct {
	Strength float64 `inspect:"label,fmt:%.0f,edit"`
	Radius   float64 `inspect:"label,fmt:%.0f"`
}

// Polarity selects whether a painted field attracts or repels.
type Polarity int8

const (
	Attract Polarity = 1
	Repel   Polarity = -1
)

// String returns the polarity name.
func (p Polarity) String() string {
	if p < 0 {
		return "repel"
	}
	return "attract"
}
