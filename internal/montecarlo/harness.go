// Monte Carlo batch harness over the descent simulator
package montecarlo

import (
	"math/rand/v2"

	"landersim/internal/config"
	"landersim/internal/descent"
)

// NewStream returns a deterministic random source for a batch seed.
func NewStream(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
}

// Collect runs the simulator n times against cfg, drawing every run's
// noise from one seeded stream so runs consume contiguous,
// non-overlapping slices of it.
func Collect(cfg *config.Mission, n int, seed int64) ([]descent.Outcome, error) {
	sim, err := descent.NewSimulator(cfg, NewStream(seed))
	if err != nil {
		return nil, err
	}
	outcomes := make([]descent.Outcome, 0, n)
	for i := 0; i < n; i++ {
		outcomes = append(outcomes, sim.Run())
	}
	return outcomes, nil
}

// Run executes a batch and reduces it to aggregate statistics.
func Run(cfg *config.Mission, n int, seed int64) (Summary, error) {
	outcomes, err := Collect(cfg, n, seed)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(outcomes), nil
}
