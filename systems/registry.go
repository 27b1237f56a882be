package systems

// System IDs in pipeline order.
const (
	IDSteering   = "steering"
	IDForceField = "forceField"
	IDPhysics    = "physics"
	IDMetabolism = "metabolism"
	IDEcology    = "ecology"
	IDLifecycle  = "lifecycle"
	IDRegime     = "regime"
)

// SystemInfo describes a simulation system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "movement", "lifecycle")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the pipeline systems in execution order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: IDSteering, Name: "Steering", Description: "Seeks food and prey, separates agents", Category: "movement"})
	r.Register(SystemInfo{ID: IDForceField, Name: "Force Field", Description: "Applies painted attractors and repulsors", Category: "movement"})
	r.Register(SystemInfo{ID: IDPhysics, Name: "Physics", Description: "Integrates velocity and wraps positions", Category: "movement"})
	r.Register(SystemInfo{ID: IDMetabolism, Name: "Metabolism", Description: "Drains energy, bites and kills", Category: "lifecycle"})
	r.Register(SystemInfo{ID: IDEcology, Name: "Ecology", Description: "Regrows resources and seeds pods", Category: "environment"})
	r.Register(SystemInfo{ID: IDLifecycle, Name: "Life Cycle", Description: "Ages, reproduces and removes starved hunters", Category: "lifecycle"})
	r.Register(SystemInfo{ID: IDRegime, Name: "Regime", Description: "Smooths storminess and metabolism", Category: "environment"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
