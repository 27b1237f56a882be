// Package main provides CMA-ES optimization for biome simulation parameters.
package main

import (
	"github.com/pthm-cable/biome/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	field func(*config.Config) *float64
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// World
			{Name: "fertility", Path: "world.fertility", Min: 0.2, Max: 1.0, Default: 0.6,
				field: func(c *config.Config) *float64 { return &c.World.Fertility }},
			{Name: "agent_repro_thresh", Path: "world.reproduction_threshold", Min: 1.2, Max: 1.95, Default: 1.6,
				field: func(c *config.Config) *float64 { return &c.World.ReproductionThreshold }},
			// Agent
			{Name: "agent_bite_size", Path: "agent.bite_size", Min: 0.2, Max: 1.0, Default: 0.6,
				field: func(c *config.Config) *float64 { return &c.Agent.BiteSize }},
			{Name: "agent_base_drain", Path: "agent.base_drain", Min: 0.01, Max: 0.08, Default: 0.03,
				field: func(c *config.Config) *float64 { return &c.Agent.BaseDrain }},
			// Predator
			{Name: "pred_kill_gain", Path: "predator.kill_gain", Min: 0.5, Max: 2.0, Default: 1.0,
				field: func(c *config.Config) *float64 { return &c.Predator.KillGain }},
			{Name: "pred_drain_factor", Path: "predator.drain_factor", Min: 1.0, Max: 3.0, Default: 1.9,
				field: func(c *config.Config) *float64 { return &c.Predator.DrainFactor }},
			{Name: "pred_sense_radius", Path: "predator.sense_radius", Min: 100, Max: 300, Default: 200,
				field: func(c *config.Config) *float64 { return &c.Predator.SenseRadius }},
			{Name: "pred_repro_thresh", Path: "predator.repro_threshold", Min: 2.0, Max: 3.4, Default: 2.8,
				field: func(c *config.Config) *float64 { return &c.Predator.ReproThreshold }},
			{Name: "pred_rest_min", Path: "predator.rest_min", Min: 1, Max: 8, Default: 4,
				field: func(c *config.Config) *float64 { return &c.Predator.RestMin }},
			// Apex
			{Name: "apex_kill_gain", Path: "apex.kill_gain", Min: 0.5, Max: 3.0, Default: 1.5,
				field: func(c *config.Config) *float64 { return &c.Apex.KillGain }},
			// Resources
			{Name: "regen_base", Path: "resource.regen_base", Min: 0.2, Max: 2.0, Default: 0.8,
				field: func(c *config.Config) *float64 { return &c.Resource.RegenBase }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(spec.Max, max(spec.Min, v[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		*spec.field(cfg) = clamped[i]
	}

	// Keep the rest window well formed
	if cfg.Predator.RestMax < cfg.Predator.RestMin {
		cfg.Predator.RestMax = cfg.Predator.RestMin
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	values := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		values[i] = *spec.field(cfg)
	}
	return values
}
