package advisor

import (
	"fmt"
	"math"
	"strings"

	"landersim/internal/config"
	"landersim/internal/descent"
	"landersim/internal/montecarlo"
	"landersim/internal/physics"
)

// Gating thresholds for the candidate rules. These varied between
// historical rule sets; the values here follow the most complete one.
const (
	TooFastGate     = 0.10 // fraction of too_fast runs triggering a slow-down
	TimeLimitGate   = 0.15 // fraction of time_limit runs triggering more time
	FuelGate        = 0.20 // fraction of out_of_fuel runs triggering more fuel
	HeavyGate       = 0.30 // fraction marking a dominant failure mode
	SluggishRatio   = 0.2  // current kp below this share of recommended = too sluggish
	OvercorrectMult = 4.0  // current kp above this multiple of recommended = overcorrecting
	GainCapMult     = 6.0  // upper bound for gain increases, relative to recommended
	BoostTWRBelow   = 1.4  // marginal TWR under frequent too_fast triggers a thrust boost

	// Nudge magnitude scales with severity = 1 - safe_rate/100,
	// from NudgeBase (near-working) to NudgeBase+NudgeSpan (failing).
	NudgeBase = 0.08
	NudgeSpan = 0.22
)

// ruleContext is the shared input every candidate generator sees.
type ruleContext struct {
	cfg      *config.Mission
	report   physics.Report
	baseline montecarlo.Summary
	nudge    float64

	tooFast float64
	timeLim float64
	fuelDry float64
}

// rule pairs a trigger predicate with a candidate builder. Rules are
// evaluated in the fixed order of the rules slice so the generated
// candidate list is reproducible.
type rule struct {
	key     string
	applies func(ruleContext) bool
	build   func(ruleContext) Suggestion
}

var rules = []rule{
	{key: "apply_physics", applies: always, build: buildApplyPhysics},
	{key: "gain_sluggish", applies: gainSluggish, build: buildGainSluggish},
	{key: "slow_down", applies: tooFastOften, build: buildSlowDown},
	{key: "more_time", applies: timeLimited, build: buildMoreTime},
	{key: "speed_up", applies: tooSlow, build: buildSpeedUp},
	{key: "gain_brake", applies: gainTooSoft, build: buildGainBrake},
	{key: "gain_calm", applies: gainOvercorrects, build: buildGainCalm},
	{key: "more_fuel", applies: fuelStarved, build: buildMoreFuel},
	{key: "boost_thrust", applies: thrustTooWeak, build: buildBoostThrust},
}

func newRuleContext(cfg *config.Mission, report physics.Report, baseline montecarlo.Summary) ruleContext {
	severity := 1 - baseline.SafeRate/100
	return ruleContext{
		cfg:      cfg,
		report:   report,
		baseline: baseline,
		nudge:    NudgeBase + NudgeSpan*severity,
		tooFast:  baseline.ReasonFraction(descent.ReasonTooFast),
		timeLim:  baseline.ReasonFraction(descent.ReasonTimeLimit),
		fuelDry:  baseline.ReasonFraction(descent.ReasonOutOfFuel),
	}
}

// generate evaluates every rule in order and returns the triggered candidates.
func generate(ctx ruleContext) []Suggestion {
	var out []Suggestion
	for _, r := range rules {
		if !r.applies(ctx) {
			continue
		}
		s := r.build(ctx)
		s.Key = r.key
		out = append(out, s)
	}
	return out
}

func always(ruleContext) bool { return true }

func gainSluggish(ctx ruleContext) bool {
	kpOpt := ctx.report.Nominal.Kp
	return kpOpt > 0 && ctx.cfg.Control.Kp < kpOpt*SluggishRatio
}

func tooFastOften(ctx ruleContext) bool {
	return ctx.tooFast > TooFastGate ||
		ctx.cfg.Control.TargetDescentMps >= ctx.cfg.Safety.SafeSpeedMps
}

func timeLimited(ctx ruleContext) bool { return ctx.timeLim > TimeLimitGate }

func tooSlow(ctx ruleContext) bool {
	return ctx.timeLim > HeavyGate &&
		ctx.cfg.Control.TargetDescentMps < ctx.cfg.Safety.SafeSpeedMps*0.7
}

func gainTooSoft(ctx ruleContext) bool {
	kpOpt := ctx.report.Nominal.Kp
	return ctx.tooFast > HeavyGate &&
		ctx.cfg.Control.TargetDescentMps < ctx.cfg.Safety.SafeSpeedMps &&
		ctx.cfg.Control.Kp >= kpOpt*SluggishRatio
}

func gainOvercorrects(ctx ruleContext) bool {
	return (ctx.timeLim > HeavyGate || ctx.fuelDry > HeavyGate) &&
		ctx.cfg.Control.Kp > ctx.report.Nominal.Kp*OvercorrectMult
}

func fuelStarved(ctx ruleContext) bool { return ctx.fuelDry > FuelGate }

func thrustTooWeak(ctx ruleContext) bool {
	return ctx.report.Impossible ||
		(ctx.tooFast > 0.4 && ctx.report.TWR < BoostTWRBelow)
}

// Tolerances deciding whether a field counts as materially changed by
// the apply-everything candidate.
const (
	descentTol = 0.05
	kpTol      = 0.001
	timeTol    = 5.0
	fuelTol    = 1.0
)

func buildApplyPhysics(ctx ruleContext) Suggestion {
	rec := ctx.report.Nominal
	cur := ctx.cfg
	newFuel := math.Max(cur.Vehicle.FuelKg, rec.FuelNeededKg)

	var changes []string
	if math.Abs(cur.Control.TargetDescentMps-rec.TargetDescentMps) > descentTol {
		changes = append(changes, "descent speed "+change(FieldTargetDescent, cur.Control.TargetDescentMps, rec.TargetDescentMps))
	}
	if math.Abs(cur.Control.Kp-rec.Kp) > kpTol {
		changes = append(changes, "autopilot gain "+change(FieldKp, cur.Control.Kp, rec.Kp))
	}
	if cur.Sim.MaxTimeSeconds < rec.TimeBudgetS-timeTol {
		changes = append(changes, "time limit "+change(FieldMaxTime, cur.Sim.MaxTimeSeconds, rec.TimeBudgetS))
	}
	if newFuel > cur.Vehicle.FuelKg+fuelTol {
		changes = append(changes, "fuel "+change(FieldFuel, cur.Vehicle.FuelKg, newFuel))
	}
	changeStr := "all settings already match the physics"
	if len(changes) > 0 {
		changeStr = strings.Join(changes, " / ")
	}

	return Suggestion{
		Title:  "Apply the physics-derived settings",
		Action: "Set descent speed, gain, time budget, and fuel to their derived values",
		Change: changeStr,
		Why: "Sets every parameter the kinematics of this descent dictates at once: " +
			"target speed with a noise margin, a gain inside the saturation bounds, " +
			"enough time to reach the ground, and enough fuel to brake the whole way.",
		Patch: Patch{
			FieldTargetDescent: rec.TargetDescentMps,
			FieldKp:            rec.Kp,
			FieldMaxTime:       rec.TimeBudgetS,
			FieldFuel:          newFuel,
		},
	}
}

func buildGainSluggish(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Control.Kp
	rec := ctx.report.Nominal.Kp
	return Suggestion{
		Title:  "Autopilot too sluggish to steer",
		Action: "Raise the proportional gain",
		Change: change(FieldKp, cur, rec),
		Why: "The gain is so low the controller cannot close velocity errors before " +
			"touchdown; the craft drifts past its setpoint no matter what the sensors report.",
		Patch: Patch{FieldKp: rec},
	}
}

func buildSlowDown(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Control.TargetDescentMps
	vSafe := ctx.cfg.Safety.SafeSpeedMps
	newD := math.Max(round2(cur*(1-ctx.nudge)), 0.1)
	why := fmt.Sprintf("%.0f%% of runs crashed on impact; arriving that fast leaves the "+
		"engines no time to brake before the ground.", ctx.tooFast*100)
	if cur >= vSafe {
		why = fmt.Sprintf("The target descent speed (%s) is at or above the safe landing "+
			"threshold (%s); any gust or sensor glitch turns touchdown into a crash.",
			formatValue(FieldTargetDescent, cur), formatValue(FieldTargetDescent, vSafe))
	}
	return Suggestion{
		Title:  "Touchdown speed too high",
		Action: "Lower the target descent speed",
		Change: change(FieldTargetDescent, cur, newD),
		Why:    why,
		Patch:  Patch{FieldTargetDescent: newD},
	}
}

func buildMoreTime(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Sim.MaxTimeSeconds
	newT := math.Ceil(cur * (1 + ctx.nudge*1.5))
	needT := ctx.cfg.Vehicle.AltitudeM / math.Max(ctx.cfg.Control.TargetDescentMps, 0.1)
	return Suggestion{
		Title:  "Mission ends before touchdown",
		Action: "Extend the time budget",
		Change: change(FieldMaxTime, cur, newT),
		Why: fmt.Sprintf("%.0f%% of runs hit the time limit mid-flight. Descending from "+
			"%.0f m at the current rate takes about %.0f s but the budget cuts off at %.0f s.",
			ctx.timeLim*100, ctx.cfg.Vehicle.AltitudeM, needT, cur),
		Patch: Patch{FieldMaxTime: newT},
	}
}

func buildSpeedUp(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Control.TargetDescentMps
	newD := math.Max(round2(cur*(1+ctx.nudge*0.5)), round2(cur+0.1))
	return Suggestion{
		Title:  "Descent slower than it needs to be",
		Action: "Raise the target descent speed slightly",
		Change: change(FieldTargetDescent, cur, newD),
		Why: fmt.Sprintf("Runs are timing out while the safe threshold (%s) leaves headroom "+
			"above the current rate (%s); a slightly faster descent reaches the ground in budget.",
			formatValue(FieldTargetDescent, ctx.cfg.Safety.SafeSpeedMps),
			formatValue(FieldTargetDescent, cur)),
		Patch: Patch{FieldTargetDescent: newD},
	}
}

func buildGainBrake(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Control.Kp
	newKp := round4(math.Min(cur*(1+ctx.nudge), ctx.report.Nominal.Kp*GainCapMult))
	return Suggestion{
		Title:  "Autopilot not braking hard enough",
		Action: "Raise the proportional gain",
		Change: change(FieldKp, cur, newKp),
		Why: fmt.Sprintf("%.0f%% of runs landed too fast despite a safe-looking setpoint; "+
			"the controller reacts too weakly in the final seconds to shed the excess speed.",
			ctx.tooFast*100),
		Patch: Patch{FieldKp: newKp},
	}
}

func buildGainCalm(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Control.Kp
	newKp := round4(cur * (1 - ctx.nudge))
	return Suggestion{
		Title:  "Autopilot overcorrecting and wasting fuel",
		Action: "Lower the proportional gain",
		Change: change(FieldKp, cur, newKp),
		Why: "The gain sits far above the recommended value, so the throttle swings " +
			"between its bounds instead of settling; the descent burns fuel fighting itself.",
		Patch: Patch{FieldKp: newKp},
	}
}

func buildMoreFuel(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Vehicle.FuelKg
	newF := round1(cur * (1 + ctx.nudge*1.5))
	return Suggestion{
		Title:  "Fuel runs out mid-descent",
		Action: "Load more fuel",
		Change: change(FieldFuel, cur, newF),
		Why: fmt.Sprintf("%.0f%% of runs went dry before touchdown. The engines must fire "+
			"continuously to hold the descent rate; an empty tank means free fall the rest "+
			"of the way down.", ctx.fuelDry*100),
		Patch: Patch{FieldFuel: newF},
	}
}

func buildBoostThrust(ctx ruleContext) Suggestion {
	cur := ctx.cfg.Vehicle.MaxThrustN
	mult := 1 + ctx.nudge
	why := "Thrust is only marginally above the craft's weight; there is little braking " +
		"force left for the final approach."
	if ctx.report.Impossible {
		mult = 1 + ctx.nudge*2
		why = fmt.Sprintf("Maximum thrust (%s) cannot even hold the craft's weight against "+
			"gravity (%s needed to hover); no controller setting can brake this descent.",
			formatValue(FieldThrust, cur), formatValue(FieldThrust, ctx.report.HoverThrustN))
	}
	newT := math.Round(cur * mult)
	return Suggestion{
		Title:  "Engines too weak to brake",
		Action: "Increase maximum thrust",
		Change: change(FieldThrust, cur, newT),
		Why:    why,
		Patch:  Patch{FieldThrust: newT},
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
