// Candidate scoring and ranking by quick Monte Carlo re-simulation
package advisor

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"landersim/internal/config"
	"landersim/internal/logging"
	"landersim/internal/montecarlo"
	"landersim/internal/physics"
)

// QuickSeedOffset separates quick-evaluation streams from the baseline
// run's seed so candidate draws cannot correlate with the original batch.
const QuickSeedOffset = 777

// DefaultTopK is the ranked list size callers usually want.
const DefaultTopK = 6

// maxScorers bounds concurrent candidate evaluations.
const maxScorers = 4

// QuickRuns sizes a reduced-sample evaluation for a baseline of n runs:
// 30% of n clamped to a sane range, so scoring stays cheap but stable.
func QuickRuns(n int) int {
	q := n * 30 / 100
	if q < 80 {
		q = 80
	}
	if q > 300 {
		q = 300
	}
	return q
}

// quickSeed derives a reproducible, candidate-specific seed. Hashing the
// candidate key decorrelates streams between candidates; the fixed offset
// decorrelates them from the baseline batch.
func quickSeed(base int64, key string) int64 {
	var h uint32 = 5381
	for _, c := range key {
		h = h<<5 + h + uint32(c)
	}
	return base + QuickSeedOffset + int64(h)
}

// Rank generates candidate edits for cfg, scores each with a quick
// Monte Carlo run, and returns at most topK suggestions: positive deltas
// first (descending), backfilled with the least-bad remainder.
// Candidates whose patch yields an invalid config are skipped.
func Rank(ctx context.Context, cfg *config.Mission, baseline montecarlo.Summary, seed int64, quickRuns, topK int) ([]Suggestion, error) {
	log := logging.FromContext(ctx)
	report := physics.Estimate(cfg)
	candidates := generate(newRuleContext(cfg, report, baseline))
	if len(candidates) == 0 {
		return nil, nil
	}

	scored := make([]*Suggestion, len(candidates))
	var g errgroup.Group
	g.SetLimit(maxScorers)
	for i := range candidates {
		g.Go(func() error {
			c := candidates[i]
			patched, err := c.Patch.Apply(cfg)
			if err != nil {
				return nil // malformed patch, drop the candidate
			}
			if err := patched.Validate(); err != nil {
				log.Debug("dropping candidate with degenerate config", "key", c.Key, "err", err)
				return nil
			}
			summary, err := montecarlo.Run(patched, quickRuns, quickSeed(seed, c.Key))
			if err != nil {
				return nil
			}
			c.EstRate = summary.SafeRate
			c.Delta = summary.SafeRate - baseline.SafeRate
			scored[i] = &c
			log.Debug("scored candidate", "key", c.Key, "est_rate", c.EstRate, "delta", c.Delta)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var positive, rest []Suggestion
	for _, s := range scored {
		if s == nil {
			continue
		}
		if s.Delta > 0 {
			positive = append(positive, *s)
		} else {
			rest = append(rest, *s)
		}
	}
	byDelta := func(list []Suggestion) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Delta > list[j].Delta })
	}
	byDelta(positive)
	byDelta(rest)

	ranked := positive
	if len(ranked) < topK {
		ranked = append(ranked, rest...)
	}
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}
