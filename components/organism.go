package components

// DNA is the heritable trait set of agents and predators.
type DNA struct {
	Speed      float64 `inspect:"bar,max:2"`
	Sense      float64 `inspect:"bar,max:2"`
	Metabolism float64 `inspect:"bar,max:2"`
	HueShift   float64 `inspect:"label,fmt:%.1f"`
}

// Bounds is a closed trait interval.
type Bounds struct {
	Min, Max float64
}

// Clamp limits v to the interval.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Per-trait bounds enforced at creation and after every mutation.
var (
	SpeedBounds      = Bounds{Min: 0.5, Max: 2.0}
	SenseBounds      = Bounds{Min: 0.5, Max: 2.0}
	MetabolismBounds = Bounds{Min: 0.5, Max: 1.8}
	HueShiftBounds   = Bounds{Min: -40, Max: 40}
)

// Clamped returns d with every trait inside its bounds.
func (d DNA) Clamped() DNA {
	return DNA{
		Speed:      SpeedBounds.Clamp(d.Speed),
		Sense:      SenseBounds.Clamp(d.Sense),
		Metabolism: MetabolismBounds.Clamp(d.Metabolism),
		HueShift:   HueShiftBounds.Clamp(d.HueShift),
	}
}

// Lineage records where a new organism's DNA comes from: either a fresh
// random draw or a mutated copy of a parent's DNA.
type Lineage interface {
	lineage()
}

// Fresh starts a new lineage with randomly drawn DNA.
type Fresh struct{}

// Inherited derives DNA by mutating the parent's.
type Inherited struct {
	Parent DNA
}

func (Fresh) lineage()     {}
func (Inherited) lineage() {}

// Agent is a herbivore.
type Agent struct {
	ColorHue float64 `inspect:"label,fmt:%.0f,edit"`
	Energy   float64 `inspect:"bar,max:2,edit"`
	Age      float64 `inspect:"label,fmt:%.1fs"`
	DNA      DNA     `inspect:"skip"`
	Evolved  bool    `inspect:"bool"`
	Caste    Caste   `inspect:"label"`
}

// Predator hunts agents.
type Predator struct {
	ColorHue float64 `inspect:"label,fmt:%.0f,edit"`
	Energy   float64 `inspect:"bar,max:3.5,edit"`
	Age      float64 `inspect:"label,fmt:%.1fs"`
	DNA      DNA     `inspect:"skip"`
	Rest     float64 `inspect:"label,fmt:%.1fs,edit"` // seconds of post-kill cooldown left
}

// Resting reports whether the predator is still digesting a kill.
func (p *Predator) Resting() bool {
	return p.Rest > 0
}

// Apex hunts predators.
type Apex struct {
	ColorHue float64 `inspect:"label,fmt:%.0f,edit"`
	Energy   float64 `inspect:"bar,max:5,edit"`
	Age      float64 `inspect:"label,fmt:%.1fs"`
	Rest     float64 `inspect:"label,fmt:%.1fs,edit"`
}

// Resting reports whether the apex is still digesting a kill.
func (a *Apex) Resting() bool {
	return a.Rest > 0
}

// Caste is an agent's founding behavioural template.
type Caste uint8

const (
	CasteBalanced Caste = iota
	CasteScout          // wider sense
	CasteRunner         // faster
	CasteSaver          // slower metabolism
)

// Castes lists every caste in declaration order.
func Castes() []Caste {
	return []Caste{CasteBalanced, CasteScout, CasteRunner, CasteSaver}
}

// String returns the caste name.
func (c Caste) String() string {
	names := []string{"balanced", "scout", "runner", "saver"}
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// Role is the trophic level of an organism.
type Role uint8

const (
	RoleAgent Role = iota
	RolePredator
	RoleApex
)

// String returns the role name.
func (r Role) String() string {
	names := []string{"agent", "predator", "apex"}
	if int(r) < len(names) {
		return names[r]
	}
	return "unknown"
}
