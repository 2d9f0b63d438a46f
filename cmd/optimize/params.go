package main

import (
	"github.com/pthm-cable/planar/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Steering
			{Name: "responsiveness", Path: "steering.responsiveness", Min: 0.5, Max: 10.0, Default: 3.0},
			{Name: "arrive_radius", Path: "steering.arrive_radius", Min: 0.5, Max: 5.0, Default: 1.5},
			{Name: "max_speed", Path: "steering.max_speed", Min: 40, Max: 300, Default: 120},
			// Physics
			{Name: "friction", Path: "physics.friction", Min: 0.9, Max: 1.0, Default: 0.995},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Bodies that inherited the shared max speed follow the new value.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	oldMaxSpeed := cfg.Steering.MaxSpeed
	cfg.Steering.Responsiveness = clamped[0]
	cfg.Steering.ArriveRadius = clamped[1]
	cfg.Steering.MaxSpeed = clamped[2]
	cfg.Physics.Friction = clamped[3]

	for i := range cfg.Bodies {
		if cfg.Bodies[i].MaxSpeed == oldMaxSpeed {
			cfg.Bodies[i].MaxSpeed = cfg.Steering.MaxSpeed
		}
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Steering.Responsiveness,
		cfg.Steering.ArriveRadius,
		cfg.Steering.MaxSpeed,
		cfg.Physics.Friction,
	}
}
