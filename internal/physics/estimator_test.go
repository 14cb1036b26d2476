package physics

import (
	"math"
	"testing"

	"landersim/internal/config"
)

func moonConfig() *config.Mission {
	return &config.Mission{
		Vehicle: config.Vehicle{
			MassKg:     1200,
			MaxThrustN: 8000,
			FuelKg:     100,
			AltitudeM:  500,
		},
		Environment: config.Environment{GravityMps2: 1.62, WindStd: 0.12},
		Noise:       config.Noise{VelSensorStd: 0.08, ThrustRelStd: 0.02},
		Control:     config.Control{TargetDescentMps: 3.5, Kp: 0.3, MaxThrottle: 1},
		Safety:      config.Safety{SafeSpeedMps: 2.0},
		Sim:         config.Sim{DtSeconds: 0.1, MaxTimeSeconds: 300},
	}
}

func TestEstimate_MoonFeasible(t *testing.T) {
	r := Estimate(moonConfig())

	if got, want := r.HoverThrustN, 1200*1.62; math.Abs(got-want) > 1e-9 {
		t.Errorf("HoverThrustN = %v, want %v", got, want)
	}
	if r.TWR < 4 || r.TWR > 4.2 {
		t.Errorf("TWR = %v, want about 4.1", r.TWR)
	}
	if !r.Feasible || r.Marginal || r.Impossible {
		t.Errorf("classification = feasible=%v marginal=%v impossible=%v, want feasible only",
			r.Feasible, r.Marginal, r.Impossible)
	}
	if r.BrakeAltM == nil {
		t.Fatal("expected a braking altitude with positive brake authority")
	}
	if *r.BrakeAltM <= 0 || *r.BrakeAltM >= 500 {
		t.Errorf("BrakeAltM = %v, want within (0, 500)", *r.BrakeAltM)
	}
	if ff := r.FeedForward; math.Abs(ff-1/r.TWR) > 1e-9 {
		t.Errorf("FeedForward = %v, want 1/TWR = %v", ff, 1/r.TWR)
	}
}

func TestEstimate_Marginal(t *testing.T) {
	cfg := moonConfig()
	cfg.Vehicle.MaxThrustN = 2500 // TWR about 1.29
	r := Estimate(cfg)
	if !r.Feasible || !r.Marginal || r.Impossible {
		t.Errorf("TWR %.2f should be feasible and marginal, got feasible=%v marginal=%v impossible=%v",
			r.TWR, r.Feasible, r.Marginal, r.Impossible)
	}
}

func TestEstimate_Impossible(t *testing.T) {
	cfg := moonConfig()
	cfg.Vehicle.MaxThrustN = 1000 // under hover thrust
	r := Estimate(cfg)

	if r.Feasible || r.Marginal || !r.Impossible {
		t.Errorf("TWR %.2f should be impossible, got feasible=%v marginal=%v impossible=%v",
			r.TWR, r.Feasible, r.Marginal, r.Impossible)
	}
	if r.BrakeAltM != nil {
		t.Errorf("no brake authority but BrakeAltM = %v", *r.BrakeAltM)
	}
	// wind sigma falls back to a pessimistic bound instead of dividing
	// by a non-positive brake acceleration
	if r.SigmaWind < cfg.Safety.SafeSpeedMps {
		t.Errorf("SigmaWind fallback = %v, want at least safe speed %v", r.SigmaWind, cfg.Safety.SafeSpeedMps)
	}
	if r.ThrustNeededN <= cfg.Vehicle.MaxThrustN {
		t.Errorf("ThrustNeededN = %v should exceed available %v", r.ThrustNeededN, cfg.Vehicle.MaxThrustN)
	}
}

func TestEstimate_TargetKeepsSafetyMargin(t *testing.T) {
	r := Estimate(moonConfig())
	target := r.Nominal.TargetDescentMps
	if target < MinTargetDescent {
		t.Fatalf("target %v below floor %v", target, MinTargetDescent)
	}
	if target+SigmaMargin*r.SigmaTotal > 2.0+1e-3 {
		t.Errorf("target %v + %v sigma margin exceeds safe speed", target, SigmaMargin)
	}
}

func TestEstimate_ConservativeIsTighter(t *testing.T) {
	r := Estimate(moonConfig())
	if r.Conservative.TargetDescentMps > r.Nominal.TargetDescentMps {
		t.Errorf("conservative target %v exceeds nominal %v",
			r.Conservative.TargetDescentMps, r.Nominal.TargetDescentMps)
	}
	if r.Conservative.TimeBudgetS < r.Nominal.TimeBudgetS {
		t.Errorf("conservative budget %v under nominal %v",
			r.Conservative.TimeBudgetS, r.Nominal.TimeBudgetS)
	}
}

func TestEstimate_BudgetCoversDescent(t *testing.T) {
	r := Estimate(moonConfig())
	if r.Nominal.TimeBudgetS < r.DescentS {
		t.Errorf("time budget %v under descent time %v", r.Nominal.TimeBudgetS, r.DescentS)
	}
	if r.Nominal.TimeBudgetS != math.Ceil(r.Nominal.TimeBudgetS) {
		t.Errorf("time budget %v should be a whole number of seconds", r.Nominal.TimeBudgetS)
	}
}

func TestEstimate_ThrottleAndFuelBounds(t *testing.T) {
	for _, thrust := range []float64{1000, 2500, 8000, 50000} {
		cfg := moonConfig()
		cfg.Vehicle.MaxThrustN = thrust
		r := Estimate(cfg)
		for _, d := range []Derived{r.Nominal, r.Conservative} {
			if d.AvgThrottle < 0 || d.AvgThrottle > 1 {
				t.Errorf("thrust %v: avg throttle %v out of [0,1]", thrust, d.AvgThrottle)
			}
			if d.FuelNeededKg < 0 {
				t.Errorf("thrust %v: negative fuel estimate %v", thrust, d.FuelNeededKg)
			}
			if d.Kp < MinGain {
				t.Errorf("thrust %v: gain %v below floor %v", thrust, d.Kp, MinGain)
			}
		}
	}
}

func TestEstimate_ZeroAltitude(t *testing.T) {
	cfg := moonConfig()
	cfg.Vehicle.AltitudeM = 0
	r := Estimate(cfg)
	if math.IsNaN(r.FreefallSpeed) || math.IsNaN(r.Nominal.Kp) || math.IsNaN(r.Nominal.FuelNeededKg) {
		t.Errorf("zero altitude produced NaN: %+v", r)
	}
	if r.DescentS != 0 {
		t.Errorf("DescentS = %v, want 0 at zero altitude", r.DescentS)
	}
}
