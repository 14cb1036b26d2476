// CUE schema validation and semantic mission checks
package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML mission file using a CUE schema file.
func ValidateWithCue(configFile, cueFile string) error {
	ctx := cuecontext.New()

	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	yamlAst, err := yaml.Extract(configFile, yamlBytes)
	if err != nil {
		return fmt.Errorf("cannot parse YAML config: %w", err)
	}
	configVal := ctx.BuildFile(yamlAst)

	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	schemaVal := ctx.CompileBytes(schemaBytes)

	final := configVal.Unify(schemaVal)
	if final.Err() != nil {
		return fmt.Errorf("schema unify failed: %w", final.Err())
	}
	if err := final.Validate(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate checks the physical and numerical sanity of a mission config.
// Invalid configs are rejected here, before any simulation runs.
func (m *Mission) Validate() error {
	if m.Vehicle.MassKg <= 0 {
		return fmt.Errorf("vehicle.mass_kg must be > 0, got %v", m.Vehicle.MassKg)
	}
	if m.Vehicle.MaxThrustN <= 0 {
		return fmt.Errorf("vehicle.max_thrust_n must be > 0, got %v", m.Vehicle.MaxThrustN)
	}
	if m.Vehicle.FuelKg < 0 {
		return fmt.Errorf("vehicle.fuel_kg must be >= 0, got %v", m.Vehicle.FuelKg)
	}
	if m.Vehicle.AltitudeM <= 0 {
		return fmt.Errorf("vehicle.initial_altitude_m must be > 0, got %v", m.Vehicle.AltitudeM)
	}
	if m.Environment.GravityMps2 <= 0 {
		return fmt.Errorf("environment.gravity_mps2 must be > 0, got %v", m.Environment.GravityMps2)
	}
	if m.Environment.WindStd < 0 {
		return fmt.Errorf("environment.wind_accel_std_mps2 must be >= 0, got %v", m.Environment.WindStd)
	}
	if m.Noise.VelSensorStd < 0 {
		return fmt.Errorf("noise.vel_sensor_std_mps must be >= 0, got %v", m.Noise.VelSensorStd)
	}
	if m.Noise.ThrustRelStd < 0 {
		return fmt.Errorf("noise.thrust_rel_std must be >= 0, got %v", m.Noise.ThrustRelStd)
	}
	if m.Control.TargetDescentMps <= 0 {
		return fmt.Errorf("control.target_descent_mps must be > 0, got %v", m.Control.TargetDescentMps)
	}
	if m.Control.Kp < 0 {
		return fmt.Errorf("control.kp must be >= 0, got %v", m.Control.Kp)
	}
	if m.Control.MinThrottle < 0 || m.Control.MaxThrottle > 1 {
		return fmt.Errorf("throttle bounds [%v, %v] must lie within [0, 1]",
			m.Control.MinThrottle, m.Control.MaxThrottle)
	}
	if m.Control.MinThrottle > m.Control.MaxThrottle {
		return fmt.Errorf("min_throttle %v exceeds max_throttle %v",
			m.Control.MinThrottle, m.Control.MaxThrottle)
	}
	if m.Safety.SafeSpeedMps <= 0 {
		return fmt.Errorf("safety.safe_speed_mps must be > 0, got %v", m.Safety.SafeSpeedMps)
	}
	if m.Sim.DtSeconds <= 0 {
		return fmt.Errorf("sim.dt_seconds must be > 0, got %v", m.Sim.DtSeconds)
	}
	if m.Sim.MaxTimeSeconds <= 0 {
		return fmt.Errorf("sim.max_time_seconds must be > 0, got %v", m.Sim.MaxTimeSeconds)
	}
	if m.Sim.Runs < 0 {
		return fmt.Errorf("sim.runs must be >= 0, got %v", m.Sim.Runs)
	}
	return nil
}
