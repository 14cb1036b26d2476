package advisor

import (
	"fmt"
	"math"

	"landersim/internal/config"
	"landersim/internal/descent"
	"landersim/internal/montecarlo"
	"landersim/internal/physics"
)

// Diagnose summarizes the dominant failure of a batch in plain language.
func Diagnose(cfg *config.Mission, s montecarlo.Summary) string {
	p := physics.Estimate(cfg)
	if p.Impossible {
		return fmt.Sprintf(
			"The engines (%.0f N) cannot support the craft's weight (%.0f kg) against "+
				"this gravity; at least %.0f N of thrust is needed for any braking power.",
			cfg.Vehicle.MaxThrustN, cfg.Vehicle.MassKg, p.ThrustNeededN)
	}
	switch s.Dominant {
	case descent.ReasonOutOfFuel:
		return fmt.Sprintf(
			"The craft runs dry before reaching the ground: the descent needs roughly "+
				"%.1f kg of fuel but only %.1f kg was loaded.",
			p.Nominal.FuelNeededKg, cfg.Vehicle.FuelKg)
	case descent.ReasonTooFast:
		return fmt.Sprintf(
			"Most runs hit the ground above the %.1f m/s safe landing speed; the "+
				"controller is not shedding enough velocity before touchdown.",
			cfg.Safety.SafeSpeedMps)
	case descent.ReasonTimeLimit:
		need := cfg.Vehicle.AltitudeM / math.Max(cfg.Control.TargetDescentMps, 0.1)
		return fmt.Sprintf(
			"The timer expires before touchdown: the descent takes about %.0f s at the "+
				"current rate but the budget ends at %.0f s.",
			need, cfg.Sim.MaxTimeSeconds)
	}
	return fmt.Sprintf(
		"Mixed results across %d runs; see the ranked suggestions for the best next edit.",
		s.Runs)
}
