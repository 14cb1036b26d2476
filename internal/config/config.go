// YAML mission config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vehicle describes the lander's physical properties.
type Vehicle struct {
	MassKg          float64 `yaml:"mass_kg"`
	MaxThrustN      float64 `yaml:"max_thrust_n"`
	FuelKg          float64 `yaml:"fuel_kg"`
	AltitudeM       float64 `yaml:"initial_altitude_m"`
	InitialVelocity float64 `yaml:"initial_velocity_mps"`
}

// Environment describes gravity and wind disturbance at the landing site.
type Environment struct {
	GravityMps2 float64 `yaml:"gravity_mps2"`
	WindStd     float64 `yaml:"wind_accel_std_mps2"`
}

// Noise describes sensing and actuation error magnitudes.
type Noise struct {
	VelSensorStd float64 `yaml:"vel_sensor_std_mps"`
	ThrustRelStd float64 `yaml:"thrust_rel_std"`
}

// Control describes the descent autopilot settings.
type Control struct {
	TargetDescentMps float64 `yaml:"target_descent_mps"`
	Kp               float64 `yaml:"kp"`
	MinThrottle      float64 `yaml:"min_throttle"`
	MaxThrottle      float64 `yaml:"max_throttle"`
}

// Safety holds the touchdown classification threshold.
type Safety struct {
	SafeSpeedMps float64 `yaml:"safe_speed_mps"`
}

// Sim holds integration and Monte Carlo settings.
type Sim struct {
	DtSeconds      float64 `yaml:"dt_seconds"`
	MaxTimeSeconds float64 `yaml:"max_time_seconds"`
	Runs           int     `yaml:"runs"`
	Seed           int64   `yaml:"seed"`
}

// Mission is the root configuration for one landing scenario.
// It is treated as immutable during a run; the advisor copies it
// before applying candidate patches.
type Mission struct {
	Vehicle     Vehicle     `yaml:"vehicle"`
	Environment Environment `yaml:"environment"`
	Noise       Noise       `yaml:"noise"`
	Control     Control     `yaml:"control"`
	Safety      Safety      `yaml:"safety"`
	Sim         Sim         `yaml:"sim"`
}

// Fallback values applied to omitted optional fields.
const (
	DefaultDt       = 0.1
	DefaultMaxTime  = 300.0
	DefaultRuns     = 500
	DefaultSeed     = 42
	DefaultMaxThrot = 1.0
)

// Load loads a YAML mission config, validates it against a CUE schema,
// and applies defaults for omitted optional fields.
func Load(configPath, cueSchemaPath string) (*Mission, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Mission
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mission config: %w", err)
	}
	return &cfg, nil
}

// ApplyDefaults fills zero-valued optional fields with documented fallbacks.
func (m *Mission) ApplyDefaults() {
	if m.Sim.DtSeconds == 0 {
		m.Sim.DtSeconds = DefaultDt
	}
	if m.Sim.MaxTimeSeconds == 0 {
		m.Sim.MaxTimeSeconds = DefaultMaxTime
	}
	if m.Sim.Runs == 0 {
		m.Sim.Runs = DefaultRuns
	}
	if m.Sim.Seed == 0 {
		m.Sim.Seed = DefaultSeed
	}
	if m.Control.MaxThrottle == 0 {
		m.Control.MaxThrottle = DefaultMaxThrot
	}
}

// Clone returns a copy of the mission config safe to mutate.
func (m *Mission) Clone() *Mission {
	c := *m
	return &c
}
