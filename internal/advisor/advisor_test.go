package advisor

import (
	"context"
	"reflect"
	"testing"

	"landersim/internal/config"
	"landersim/internal/descent"
	"landersim/internal/montecarlo"
	"landersim/internal/physics"
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
		Safety:      config.Safety{SafeSpeedMps: 5.0},
		Sim:         config.Sim{DtSeconds: 0.1, MaxTimeSeconds: 300, Runs: 100, Seed: 42},
	}
}

func TestQuickRuns(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 80},
		{100, 80},   // 30 clamped up
		{500, 150},  // plain 30%
		{2000, 300}, // 600 clamped down
	}
	for _, c := range cases {
		if got := QuickRuns(c.n); got != c.want {
			t.Errorf("QuickRuns(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestQuickSeed(t *testing.T) {
	a := quickSeed(42, "more_fuel")
	b := quickSeed(42, "more_fuel")
	if a != b {
		t.Fatalf("same key produced different seeds: %d vs %d", a, b)
	}
	if quickSeed(42, "more_fuel") == quickSeed(42, "slow_down") {
		t.Error("different keys should derive different seeds")
	}
	if quickSeed(42, "more_fuel") == quickSeed(43, "more_fuel") {
		t.Error("different base seeds should derive different seeds")
	}
}

func TestPatchApply(t *testing.T) {
	cfg := moonConfig()
	patched, err := Patch{FieldFuel: 200, FieldKp: 0.5}.Apply(cfg)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if patched.Vehicle.FuelKg != 200 || patched.Control.Kp != 0.5 {
		t.Errorf("patch not applied: fuel=%v kp=%v", patched.Vehicle.FuelKg, patched.Control.Kp)
	}
	if cfg.Vehicle.FuelKg != 100 || cfg.Control.Kp != 0.3 {
		t.Error("Apply mutated the original config")
	}

	if _, err := (Patch{"warp_drive": 9}).Apply(cfg); err == nil {
		t.Error("unknown patch field should be rejected")
	}
}

func TestGenerate_AlwaysIncludesPhysicsCandidate(t *testing.T) {
	cfg := moonConfig()
	baseline := montecarlo.Summarize(nil)
	out := generate(newRuleContext(cfg, physics.Estimate(cfg), baseline))
	if len(out) == 0 || out[0].Key != "apply_physics" {
		t.Fatalf("first candidate should be apply_physics, got %+v", out)
	}
}

func TestGenerate_ImpossibleConfigSuggestsThrust(t *testing.T) {
	cfg := moonConfig()
	cfg.Vehicle.MaxThrustN = 1000 // below hover thrust
	baseline := montecarlo.Summarize([]descent.Outcome{
		{Reason: descent.ReasonOutOfFuel},
	})
	out := generate(newRuleContext(cfg, physics.Estimate(cfg), baseline))

	var boost *Suggestion
	for i := range out {
		if out[i].Key == "boost_thrust" {
			boost = &out[i]
		}
	}
	if boost == nil {
		t.Fatal("underpowered craft should trigger a thrust boost candidate")
	}
	if boost.Patch[FieldThrust] <= cfg.Vehicle.MaxThrustN {
		t.Errorf("thrust patch %v should exceed current %v",
			boost.Patch[FieldThrust], cfg.Vehicle.MaxThrustN)
	}
}

func TestGenerate_FuelStarvation(t *testing.T) {
	cfg := moonConfig()
	cfg.Vehicle.FuelKg = 10
	outcomes := make([]descent.Outcome, 10)
	for i := range outcomes {
		outcomes[i] = descent.Outcome{Reason: descent.ReasonOutOfFuel}
	}
	out := generate(newRuleContext(cfg, physics.Estimate(cfg), montecarlo.Summarize(outcomes)))

	found := false
	for _, s := range out {
		if s.Key == "more_fuel" {
			found = true
			if s.Patch[FieldFuel] <= cfg.Vehicle.FuelKg {
				t.Errorf("fuel patch %v should exceed current %v", s.Patch[FieldFuel], cfg.Vehicle.FuelKg)
			}
		}
	}
	if !found {
		t.Error("all-out-of-fuel baseline should trigger a more_fuel candidate")
	}
}

func TestRank_Deterministic(t *testing.T) {
	cfg := moonConfig()
	cfg.Control.TargetDescentMps = 6.0 // above safe speed, guarantees candidates
	baseline, err := montecarlo.Run(cfg, 100, 42)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}

	first, err := Rank(context.Background(), cfg, baseline, 42, 80, DefaultTopK)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	second, err := Rank(context.Background(), cfg, baseline, 42, 80, DefaultTopK)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs ranked differently:\n%+v\n%+v", first, second)
	}
	if len(first) > DefaultTopK {
		t.Errorf("ranked list has %d entries, cap is %d", len(first), DefaultTopK)
	}
}

func TestRank_OrdersPositiveDeltasFirst(t *testing.T) {
	cfg := moonConfig()
	cfg.Control.TargetDescentMps = 6.0
	baseline, err := montecarlo.Run(cfg, 100, 42)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	ranked, err := Rank(context.Background(), cfg, baseline, 42, 80, DefaultTopK)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatal("expected at least one ranked suggestion")
	}

	// once deltas go non-positive they must stay non-positive
	seenNonPositive := false
	for i, s := range ranked {
		if s.Delta <= 0 {
			seenNonPositive = true
		} else if seenNonPositive {
			t.Errorf("positive delta at position %d after non-positive entries", i)
		}
	}
	// within each region the order is by descending delta
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Delta <= 0 == (ranked[i].Delta <= 0) && ranked[i-1].Delta < ranked[i].Delta {
			t.Errorf("entries %d,%d out of order: %v < %v", i-1, i, ranked[i-1].Delta, ranked[i].Delta)
		}
	}
}

func TestRank_NoCandidatesStillSucceeds(t *testing.T) {
	// even a healthy config yields the apply_physics candidate, so Rank
	// should always return something scorable for a valid mission
	cfg := moonConfig()
	baseline, err := montecarlo.Run(cfg, 100, 42)
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	ranked, err := Rank(context.Background(), cfg, baseline, 42, 80, 3)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(ranked) == 0 {
		t.Fatal("expected the always-on physics candidate to survive ranking")
	}
	if len(ranked) > 3 {
		t.Errorf("top 3 requested, got %d", len(ranked))
	}
}

func TestDiagnose(t *testing.T) {
	cfg := moonConfig()
	if msg := Diagnose(cfg, montecarlo.Summary{Dominant: descent.ReasonOutOfFuel}); msg == "" {
		t.Error("out_of_fuel dominant should produce a diagnosis")
	}
	cfg.Vehicle.MaxThrustN = 1000
	msg := Diagnose(cfg, montecarlo.Summary{Dominant: descent.ReasonTooFast})
	if msg == "" {
		t.Error("underpowered craft should produce a diagnosis")
	}
}
