package montecarlo

import (
	"github.com/montanaflynn/stats"

	"landersim/internal/descent"
)

// Summary aggregates a batch of descent outcomes.
type Summary struct {
	Runs          int                        `json:"runs"`
	SafeRate      float64                    `json:"safe_rate"`      // percent
	TouchdownRate float64                    `json:"touchdown_rate"` // percent
	AvgSpeed      *float64                   `json:"avg_speed"`      // landed runs only, nil if none landed
	StdSpeed      float64                    `json:"std_speed"`      // sample stddev, 0 with <2 landed runs
	AvgFuelLeft   float64                    `json:"avg_fuel_left"`
	Breakdown     map[descent.Reason]int     `json:"breakdown"`
	BreakdownPct  map[descent.Reason]float64 `json:"breakdown_pct"`
	Dominant      descent.Reason             `json:"dominant_reason"`

	// reasonOrder preserves first-seen order so dominant-reason
	// ties break deterministically.
	reasonOrder []descent.Reason
}

// Summarize reduces outcome records to batch statistics. An empty batch
// yields zeroed statistics rather than division errors.
func Summarize(outcomes []descent.Outcome) Summary {
	s := Summary{
		Runs:         len(outcomes),
		Breakdown:    map[descent.Reason]int{},
		BreakdownPct: map[descent.Reason]float64{},
		Dominant:     "none",
	}
	if s.Runs == 0 {
		return s
	}

	var safe, landed int
	var speeds, fuels []float64
	for _, o := range outcomes {
		if o.Safe {
			safe++
		}
		if o.Landed {
			landed++
			if o.LandingSpeed != nil {
				speeds = append(speeds, *o.LandingSpeed)
			}
		}
		fuels = append(fuels, o.FuelLeftKg)

		if _, seen := s.Breakdown[o.Reason]; !seen {
			s.reasonOrder = append(s.reasonOrder, o.Reason)
		}
		s.Breakdown[o.Reason]++
	}

	n := float64(s.Runs)
	s.SafeRate = float64(safe) / n * 100
	s.TouchdownRate = float64(landed) / n * 100

	if len(speeds) > 0 {
		if m, err := stats.Mean(speeds); err == nil {
			s.AvgSpeed = &m
		}
	}
	if len(speeds) > 1 {
		if sd, err := stats.StandardDeviationSample(speeds); err == nil {
			s.StdSpeed = sd
		}
	}
	if m, err := stats.Mean(fuels); err == nil {
		s.AvgFuelLeft = m
	}

	best := -1
	for _, r := range s.reasonOrder {
		c := s.Breakdown[r]
		s.BreakdownPct[r] = float64(c) / n * 100
		if c > best {
			best = c
			s.Dominant = r
		}
	}
	return s
}

// ReasonFraction returns the share (0..1) of runs that ended for reason r.
func (s Summary) ReasonFraction(r descent.Reason) float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Breakdown[r]) / float64(s.Runs)
}
