package components

// ResourceKind distinguishes regrowing plants from seeding pods.
type ResourceKind uint8

const (
	KindPlant ResourceKind = iota
	KindPod
)

// String returns the kind name.
func (k ResourceKind) String() string {
	switch k {
	case KindPlant:
		return "plant"
	case KindPod:
		return "pod"
	default:
		return "unknown"
	}
}

// Resource is a food source agents bite from.
type Resource struct {
	Kind       ResourceKind `inspect:"label"`
	Amount     float64      `inspect:"bar,max:1,edit"`
	RegenTimer float64      `inspect:"label,fmt:%.1fs"`
	Age        float64      `inspect:"label,fmt:%.1fs"`
	Cycles     int          `inspect:"label"`
	SeedTimer  float64      `inspect:"label,fmt:%.1fs"` // pods only
}

// Regime is the smoothed global climate state.
type Regime uint8

const (
	RegimeCalm Regime = iota
	RegimeStorm
)

// String returns the regime name.
func (r Regime) String() string {
	if r == RegimeStorm {
		return "storm"
	}
	return "calm"
}
