// Closed-form descent feasibility and controller sizing
package physics

import (
	"math"

	"landersim/internal/config"
)

// Tunable safety multipliers. These vary between historical variants of
// the sizing rules; they are exported so callers can audit or adjust them.
const (
	// SigmaMargin is the number of velocity-uncertainty standard
	// deviations kept between the target descent speed and the safe
	// landing threshold.
	SigmaMargin = 3.0
	// MinTargetDescent floors the derived target speed (m/s).
	MinTargetDescent = 0.05
	// IdealGainScale scales the altitude/time-budget-driven gain term.
	IdealGainScale = 10.0
	// MinGain floors the proportional gain.
	MinGain = 0.001
	// Thrust-to-weight thresholds for feasibility classification.
	MarginalTWR = 1.5
)

// Derived holds one consistent set of recommended mission values.
type Derived struct {
	TargetDescentMps float64 `json:"target_descent_mps"`
	Kp               float64 `json:"kp"`
	TimeBudgetS      float64 `json:"time_budget_s"`
	FuelNeededKg     float64 `json:"fuel_needed_kg"`
	AvgThrottle      float64 `json:"avg_throttle"`
}

// Report is the full closed-form assessment of a mission config.
// No simulation is involved; every value follows from kinematic and
// control relations.
type Report struct {
	HoverThrustN  float64  `json:"hover_thrust_n"`
	TWR           float64  `json:"twr"`
	FeedForward   float64  `json:"feed_forward"`
	BrakeAccelMax float64  `json:"brake_accel_max"` // m/s^2, <=0 means no braking authority
	FreefallSpeed float64  `json:"freefall_speed_mps"`
	BrakeAltM     *float64 `json:"emergency_brake_altitude_m"` // nil when braking is impossible

	SigmaWind  float64 `json:"sigma_wind"`
	SigmaTotal float64 `json:"sigma_total"`

	Feasible   bool `json:"feasible"`   // TWR >= 1
	Marginal   bool `json:"marginal"`   // 1 <= TWR < MarginalTWR
	Impossible bool `json:"impossible"` // TWR < 1

	KpWindMin float64 `json:"kp_wind_min"`
	DescentS  float64 `json:"descent_time_s"`
	TauS      float64 `json:"tau_s"` // controller time constant

	ThrustNeededN float64 `json:"thrust_needed_n"`
	ReqBrakeAccel float64 `json:"required_brake_accel"`

	Nominal      Derived `json:"nominal"`
	Conservative Derived `json:"conservative"` // wider safety multipliers
}

// Estimate derives recommended values for cfg from first principles.
func Estimate(cfg *config.Mission) Report {
	m := cfg.Vehicle.MassKg
	g := cfg.Environment.GravityMps2
	h := cfg.Vehicle.AltitudeM
	fMax := cfg.Vehicle.MaxThrustN
	vSafe := cfg.Safety.SafeSpeedMps
	windStd := cfg.Environment.WindStd
	velNoise := cfg.Noise.VelSensorStd
	dt := cfg.Sim.DtSeconds

	r := Report{HoverThrustN: m * g}

	if r.HoverThrustN > 0 {
		r.TWR = fMax / r.HoverThrustN
	}
	r.BrakeAccelMax = fMax/m - g
	r.FreefallSpeed = math.Sqrt(2 * g * h)

	if r.BrakeAccelMax > 0 {
		alt := (r.FreefallSpeed*r.FreefallSpeed - vSafe*vSafe) / (2 * r.BrakeAccelMax)
		r.BrakeAltM = &alt
	}

	if r.TWR > 0 {
		r.FeedForward = math.Min(1/r.TWR, 1)
	} else {
		r.FeedForward = 1
	}

	r.Feasible = r.TWR >= 1
	r.Marginal = r.TWR >= 1 && r.TWR < MarginalTWR
	r.Impossible = r.TWR < 1

	// Propagate wind and sensor noise into an equivalent velocity
	// uncertainty. Without braking authority the wind term degenerates;
	// fall back to a pessimistic bound instead of dividing by zero.
	if r.BrakeAccelMax > 0 {
		r.SigmaWind = windStd / r.BrakeAccelMax
	} else {
		r.SigmaWind = math.Max(windStd*10, vSafe)
	}
	r.SigmaTotal = math.Hypot(r.SigmaWind, velNoise)

	vTarget := math.Max(vSafe-SigmaMargin*r.SigmaTotal, MinTargetDescent)

	sigmaWindC := r.SigmaWind * 2
	if r.BrakeAccelMax > 0 {
		sigmaWindC = 2 * windStd / r.BrakeAccelMax
	}
	sigmaTotalC := math.Hypot(sigmaWindC, velNoise)
	vTargetC := math.Max(vSafe-SigmaMargin*sigmaTotalC, MinTargetDescent)

	// Gain: the minimum of the ideal (closes the descent within the
	// altitude budget) and the saturation bound (typical errors stay
	// inside the throttle range), floored by the wind response minimum.
	kpSat := math.Min(1-r.FeedForward, r.FeedForward) / (SigmaMargin * math.Max(r.SigmaTotal, 0.001))
	if fMax > 0 {
		r.KpWindMin = windStd * m / fMax
	} else {
		r.KpWindMin = MinGain
	}
	kpIdeal := 0.1
	if fMax > 0 && h > 0 {
		kpIdeal = IdealGainScale * m * vTarget / (fMax * h)
	}
	kp := round4(math.Max(math.Max(math.Min(kpIdeal, kpSat), r.KpWindMin), MinGain))

	kpIdealC := 0.1
	if fMax > 0 && h > 0 {
		kpIdealC = IdealGainScale * m * vTargetC / (fMax * h) * 1.2
	}
	kpSatC := math.Min(1-r.FeedForward, r.FeedForward) / (SigmaMargin * math.Max(sigmaTotalC, 0.001))
	kpC := round4(math.Max(math.Max(math.Min(kpIdealC, kpSatC), r.KpWindMin), MinGain))

	r.DescentS = h / vTarget
	descentC := h / vTargetC
	r.TauS = r.DescentS
	if kp > 0 && fMax > 0 {
		r.TauS = m / (kp * fMax)
	}
	tauC := descentC
	if kpC > 0 && fMax > 0 {
		tauC = m / (kpC * fMax)
	}
	tBudget := math.Ceil(r.DescentS + 3*r.TauS + 5*dt)
	tBudgetC := math.Ceil(descentC + 3*tauC + 5*dt)

	// Fuel: feed-forward plus an overhead term bounding correction effort.
	overhead := math.Min(r.SigmaWind/math.Max(vTarget, 0.001), 0.5)
	avgThrottle := 1.0
	avgThrottleC := 1.0
	if r.TWR > 0 {
		avgThrottle = math.Min(r.FeedForward+overhead*(1-r.FeedForward), 1)
		avgThrottleC = math.Min(r.FeedForward+overhead*1.5*(1-r.FeedForward), 1)
	}

	aReq := 0.0
	if h > 0 {
		aReq = (r.FreefallSpeed*r.FreefallSpeed - vSafe*vSafe) / (2 * h)
	}
	r.ReqBrakeAccel = aReq
	r.ThrustNeededN = math.Round(math.Max(m*(g+aReq), r.HoverThrustN))

	r.Nominal = Derived{
		TargetDescentMps: round3(vTarget),
		Kp:               kp,
		TimeBudgetS:      tBudget,
		FuelNeededKg:     round1(avgThrottle * tBudget),
		AvgThrottle:      round4(avgThrottle),
	}
	r.Conservative = Derived{
		TargetDescentMps: round3(vTargetC),
		Kp:               kpC,
		TimeBudgetS:      tBudgetC,
		FuelNeededKg:     round1(avgThrottleC * tBudgetC),
		AvgThrottle:      round4(avgThrottleC),
	}
	return r
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
