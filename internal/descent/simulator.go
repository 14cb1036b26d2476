// Single-trajectory stochastic descent simulator
package descent

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat/distuv"

	"landersim/internal/config"
)

// Slack steps granted beyond max_time/dt before the hard cap trips.
// Guards against altitude oscillating around zero with a large dt.
const stepSlack = 10

// Simulator advances single descents from the initial state to a terminal
// outcome. All randomness is drawn from the source supplied at construction,
// so threading one seeded source through repeated Run calls yields
// contiguous, non-overlapping noise streams per run.
type Simulator struct {
	cfg *config.Mission

	velNoise    distuv.Normal
	thrustNoise distuv.Normal
	windNoise   distuv.Normal

	hoverThrottle float64
	targetVel     float64 // downward-signed setpoint
	maxSteps      int
}

// NewSimulator validates the mission config and prepares the noise model.
func NewSimulator(cfg *config.Mission, src rand.Source) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:           cfg,
		velNoise:      distuv.Normal{Mu: 0, Sigma: cfg.Noise.VelSensorStd, Src: src},
		thrustNoise:   distuv.Normal{Mu: 0, Sigma: cfg.Noise.ThrustRelStd, Src: src},
		windNoise:     distuv.Normal{Mu: 0, Sigma: cfg.Environment.WindStd, Src: src},
		hoverThrottle: cfg.Vehicle.MassKg * cfg.Environment.GravityMps2 / cfg.Vehicle.MaxThrustN,
		targetVel:     -cfg.Control.TargetDescentMps,
		maxSteps:      int(cfg.Sim.MaxTimeSeconds/cfg.Sim.DtSeconds) + stepSlack,
	}, nil
}

// Run simulates one descent and returns its outcome.
func (s *Simulator) Run() Outcome {
	out, _ := s.run(false)
	return out
}

// RunTrace simulates one descent and additionally returns the full
// per-step trace, starting with the initial state at t=0.
func (s *Simulator) RunTrace() (Outcome, []TraceRow) {
	return s.run(true)
}

func (s *Simulator) run(withTrace bool) (Outcome, []TraceRow) {
	cfg := s.cfg
	dt := cfg.Sim.DtSeconds

	st := State{
		AltitudeM:   cfg.Vehicle.AltitudeM,
		VelocityMps: cfg.Vehicle.InitialVelocity,
		FuelKg:      cfg.Vehicle.FuelKg,
	}

	var trace []TraceRow
	if withTrace {
		trace = append(trace, TraceRow{
			TimeS:       0,
			AltitudeM:   st.AltitudeM,
			FuelKg:      st.FuelKg,
			VelocityMps: st.VelocityMps,
		})
	}

	steps := 0
	for st.AltitudeM > 0 && st.FuelKg > 0 && st.TimeS < cfg.Sim.MaxTimeSeconds {
		measuredVel := st.VelocityMps + s.velNoise.Rand()
		velError := s.targetVel - measuredVel

		throttle := s.hoverThrottle + cfg.Control.Kp*velError
		throttle = clamp(throttle, cfg.Control.MinThrottle, cfg.Control.MaxThrottle)

		thrustMult := 1.0 + s.thrustNoise.Rand()
		thrust := math.Max(throttle*cfg.Vehicle.MaxThrustN*thrustMult, 0)

		windAcc := s.windNoise.Rand()

		accel := thrust/cfg.Vehicle.MassKg - cfg.Environment.GravityMps2 + windAcc
		st.VelocityMps += accel * dt
		st.AltitudeM += st.VelocityMps * dt
		// fuel burn tracks the commanded throttle, not actual thrust
		st.FuelKg -= throttle * dt
		st.TimeS += dt
		st.Throttle = throttle

		if withTrace {
			trace = append(trace, TraceRow{
				TimeS:       st.TimeS,
				AltitudeM:   st.AltitudeM,
				FuelKg:      math.Max(st.FuelKg, 0),
				VelocityMps: st.VelocityMps,
				Throttle:    st.Throttle,
			})
		}

		steps++
		if steps >= s.maxSteps {
			break
		}
	}

	return s.classify(st), trace
}

// classify assigns the terminal reason. Touchdown takes precedence over
// fuel exhaustion, which takes precedence over the time limit.
func (s *Simulator) classify(st State) Outcome {
	out := Outcome{
		RunID:      uuid.New().String(),
		FuelLeftKg: math.Max(st.FuelKg, 0),
		TimeS:      st.TimeS,
		Timestamp:  time.Now().UTC(),
	}

	switch {
	case st.AltitudeM <= 0:
		out.Landed = true
		speed := math.Abs(st.VelocityMps)
		out.LandingSpeed = &speed
		if speed <= s.cfg.Safety.SafeSpeedMps {
			out.Reason = ReasonSafe
			out.Safe = true
		} else {
			out.Reason = ReasonTooFast
		}
	case st.FuelKg <= 0:
		out.Reason = ReasonOutOfFuel
	default:
		out.Reason = ReasonTimeLimit
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
