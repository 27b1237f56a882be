// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Agent      AgentConfig      `yaml:"agent"`
	Predator   HunterConfig     `yaml:"predator"`
	Apex       HunterConfig     `yaml:"apex"`
	Resource   ResourceConfig   `yaml:"resource"`
	Regime     RegimeConfig     `yaml:"regime"`
	ForceField ForceFieldConfig `yaml:"force_field"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Inspector  InspectorConfig  `yaml:"inspector"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds arena dimensions and the tunable globals.
type WorldConfig struct {
	Width                 float64 `yaml:"width"`
	Height                float64 `yaml:"height"`
	Fertility             float64 `yaml:"fertility"`
	ReproductionThreshold float64 `yaml:"reproduction_threshold"` // agent energy needed to split
}

// PhysicsConfig holds step and neighbour-grid parameters.
type PhysicsConfig struct {
	DT               float64 `yaml:"dt"`                  // fixed step in seconds
	GridCellSize     float64 `yaml:"grid_cell_size"`      // target spatial grid cell size
	MaxStepsPerFrame int     `yaml:"max_steps_per_frame"` // accumulator drain clamp
}

// PopulationConfig holds the initial entity counts.
type PopulationConfig struct {
	Agents     int     `yaml:"agents"`
	Predators  int     `yaml:"predators"`
	Apex       int     `yaml:"apex"`
	Plants     int     `yaml:"plants"`
	Pods       int     `yaml:"pods"`
	Patchiness float64 `yaml:"patchiness"`  // 0 = uniform plant placement, 1 = strongly clustered
	PatchScale float64 `yaml:"patch_scale"` // noise frequency for plant patches
}

// AgentConfig holds herbivore parameters.
type AgentConfig struct {
	InitialEnergy      float64 `yaml:"initial_energy"`
	MaxEnergy          float64 `yaml:"max_energy"`
	SenseRadius        float64 `yaml:"sense_radius"`  // scaled by dna.sense
	DesiredSpeed       float64 `yaml:"desired_speed"` // scaled by dna.speed
	SteerBlend         float64 `yaml:"steer_blend"`   // weight kept from the old velocity
	SeparationRadius   float64 `yaml:"separation_radius"`
	SeparationStrength float64 `yaml:"separation_strength"`
	EatRadius          float64 `yaml:"eat_radius"`
	BiteSize           float64 `yaml:"bite_size"`
	BaseDrain          float64 `yaml:"base_drain"` // energy per second before multipliers
	MaturityAge        float64 `yaml:"maturity_age"`
	SpawnOffset        float64 `yaml:"spawn_offset"`
	VelocityJitter     float64 `yaml:"velocity_jitter"`
}

// HunterConfig holds predator and apex parameters.
type HunterConfig struct {
	InitialEnergy      float64 `yaml:"initial_energy"`
	MaxEnergy          float64 `yaml:"max_energy"`
	SenseRadius        float64 `yaml:"sense_radius"`
	DesiredSpeed       float64 `yaml:"desired_speed"`
	SteerBlend         float64 `yaml:"steer_blend"`
	KillRadius         float64 `yaml:"kill_radius"`
	KillGain           float64 `yaml:"kill_gain"`
	DrainFactor        float64 `yaml:"drain_factor"`         // multiple of the agent base drain
	RestingDrainFactor float64 `yaml:"resting_drain_factor"` // further multiplier while resting
	RestMin            float64 `yaml:"rest_min"`
	RestMax            float64 `yaml:"rest_max"`
	ReproThreshold     float64 `yaml:"repro_threshold"` // 0 disables reproduction
	MaturityAge        float64 `yaml:"maturity_age"`
	SpawnOffset        float64 `yaml:"spawn_offset"`
	VelocityJitter     float64 `yaml:"velocity_jitter"`
}

// ResourceConfig holds regrowth and pod seeding parameters.
type ResourceConfig struct {
	RegrowBelow        float64 `yaml:"regrow_below"`
	RegenBase          float64 `yaml:"regen_base"`
	RegenFertilityGain float64 `yaml:"regen_fertility_gain"`
	RegenMin           float64 `yaml:"regen_min"`
	RegenMax           float64 `yaml:"regen_max"`
	SeedMinAmount      float64 `yaml:"seed_min_amount"`
	MaxCycles          int     `yaml:"max_cycles"`
	MaxPods            int     `yaml:"max_pods"`
	SeedChildrenMin    int     `yaml:"seed_children_min"`
	SeedChildrenMax    int     `yaml:"seed_children_max"`
	SeedTimerMin       float64 `yaml:"seed_timer_min"`
	SeedTimerMax       float64 `yaml:"seed_timer_max"`
	SeedResetAmount    float64 `yaml:"seed_reset_amount"`
	SeedDistanceMin    float64 `yaml:"seed_distance_min"`
	SeedDistanceMax    float64 `yaml:"seed_distance_max"`
	SeedAngleJitter    float64 `yaml:"seed_angle_jitter"` // radians
	PodInitialAmount   float64 `yaml:"pod_initial_amount"`
}

// RegimeConfig holds the storminess feedback parameters.
type RegimeConfig struct {
	PressureDivisor float64 `yaml:"pressure_divisor"`
	ScarcityPivot   float64 `yaml:"scarcity_pivot"`
	ScarcityWeight  float64 `yaml:"scarcity_weight"`
	PressureWeight  float64 `yaml:"pressure_weight"`
	Smoothing       float64 `yaml:"smoothing"`
	StormThreshold  float64 `yaml:"storm_threshold"`
	MetabolismGain  float64 `yaml:"metabolism_gain"`
}

// ForceFieldConfig holds painted field parameters.
type ForceFieldConfig struct {
	Radius     float64 `yaml:"radius"`
	Strength   float64 `yaml:"strength"`
	SnapFactor float64 `yaml:"snap_factor"` // fraction of radius within which painting moves an existing field
}

// MutationConfig holds the half-width of the per-trait mutation delta.
type MutationConfig struct {
	Speed      float64 `yaml:"speed"`
	Sense      float64 `yaml:"sense"`
	Metabolism float64 `yaml:"metabolism"`
	HueShift   float64 `yaml:"hue_shift"`
}

// InspectorConfig holds selection parameters.
type InspectorConfig struct {
	HitRadius float64 `yaml:"hit_radius"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TicksPerWindow int64 // Telemetry.StatsWindow / Physics.DT, at least 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults. Library callers that
// build several worlds use this instead of the global.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first parameter combination the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return errors.New("world dimensions must be positive")
	case c.Physics.DT <= 0:
		return errors.New("physics.dt must be positive")
	case c.Physics.GridCellSize <= 0:
		return errors.New("physics.grid_cell_size must be positive")
	case c.Predator.RestMax < c.Predator.RestMin:
		return errors.New("predator.rest_max is below rest_min")
	case c.Apex.RestMax < c.Apex.RestMin:
		return errors.New("apex.rest_max is below rest_min")
	case c.Resource.RegenMax < c.Resource.RegenMin:
		return errors.New("resource.regen_max is below regen_min")
	case c.Resource.SeedChildrenMax < c.Resource.SeedChildrenMin:
		return errors.New("resource.seed_children_max is below seed_children_min")
	case c.Resource.SeedTimerMax < c.Resource.SeedTimerMin:
		return errors.New("resource.seed_timer_max is below seed_timer_min")
	case c.Regime.Smoothing < 0 || c.Regime.Smoothing > 1:
		return errors.New("regime.smoothing must be within [0, 1]")
	case c.Regime.PressureDivisor <= 0:
		return errors.New("regime.pressure_divisor must be positive")
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	ticks := int64(math.Round(c.Telemetry.StatsWindow / c.Physics.DT))
	if ticks < 1 {
		ticks = 1
	}
	c.Derived.TicksPerWindow = ticks
}

// Clone returns a deep copy; Config holds no reference types.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
