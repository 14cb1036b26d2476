// Descent outcome and trace records
package descent

import "time"

// Reason classifies how one descent terminated.
type Reason string

const (
	ReasonSafe      Reason = "safe"
	ReasonTooFast   Reason = "too_fast"
	ReasonOutOfFuel Reason = "out_of_fuel"
	ReasonTimeLimit Reason = "time_limit"
)

// Reasons lists all terminal reasons in classification order.
var Reasons = []Reason{ReasonSafe, ReasonTooFast, ReasonOutOfFuel, ReasonTimeLimit}

// Outcome is the immutable result of a single simulated descent.
type Outcome struct {
	RunID        string    `json:"run_id"`
	Landed       bool      `json:"landed"`
	Safe         bool      `json:"safe"`
	LandingSpeed *float64  `json:"landing_speed_mps"` // set only when Landed
	FuelLeftKg   float64   `json:"fuel_left_kg"`
	TimeS        float64   `json:"time_s"`
	Reason       Reason    `json:"reason"`
	Timestamp    time.Time `json:"ts"`
}

// TraceRow is one integration step of a descent, recorded at full fidelity.
type TraceRow struct {
	TimeS       float64 `json:"time_s"`
	AltitudeM   float64 `json:"altitude_m"`
	FuelKg      float64 `json:"fuel_kg"`
	VelocityMps float64 `json:"velocity_mps"`
	Throttle    float64 `json:"throttle"`
}

// State holds the mutable trajectory variables during one run.
// It is created at t=0 from the mission config and discarded at termination.
type State struct {
	TimeS       float64
	AltitudeM   float64
	VelocityMps float64 // signed, positive = upward
	FuelKg      float64
	Throttle    float64 // last applied command
}

// Downsample thins a trace to at most maxFrames rows for display,
// always keeping the first row. The core produces traces at full
// fidelity; downsampling is a caller concern.
func Downsample(rows []TraceRow, maxFrames int) []TraceRow {
	if maxFrames <= 0 || len(rows) <= maxFrames {
		return rows
	}
	step := (len(rows) + maxFrames - 1) / maxFrames
	out := make([]TraceRow, 0, maxFrames)
	for i := 0; i < len(rows); i += step {
		out = append(out, rows[i])
	}
	return out
}
