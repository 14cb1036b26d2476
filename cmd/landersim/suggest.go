package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"landersim/internal/advisor"
	"landersim/internal/config"
	"landersim/internal/logging"
	"landersim/internal/montecarlo"
	"landersim/internal/sim"
)

var (
	suggestConfigPath string
	suggestSchemaPath string
	suggestRuns       int
	suggestSeed       int64
	suggestTopK       int
	suggestQuickRuns  int
	suggestVerbose    bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Rank configuration edits that improve the safe-landing rate",
	Long: "suggest runs a baseline Monte Carlo batch, generates candidate configuration " +
		"edits from the failure breakdown and the physics estimator, re-simulates each " +
		"candidate, and prints them ranked by improvement.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(suggestVerbose)

		cfg, err := config.Load(suggestConfigPath, suggestSchemaPath)
		if err != nil {
			return err
		}
		runs := suggestRuns
		if !cmd.Flags().Changed("runs") {
			runs = cfg.Sim.Runs
		}
		seed := suggestSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.Sim.Seed
		}
		quick := suggestQuickRuns
		if !cmd.Flags().Changed("quick-runs") {
			quick = advisor.QuickRuns(runs)
		}

		log.Info("running baseline batch", "runs", runs, "seed", seed)
		baseline, err := montecarlo.Run(cfg, runs, seed)
		if err != nil {
			return err
		}
		sim.NewColorStdoutWriter().PrintSummary(baseline)
		fmt.Println()
		fmt.Println(advisor.Diagnose(cfg, baseline))

		log.Info("scoring candidates", "quick_runs", quick, "top_k", suggestTopK)
		ctx := logging.NewContext(context.Background(), log)
		ranked, err := advisor.Rank(ctx, cfg, baseline, seed, quick, suggestTopK)
		if err != nil {
			return err
		}
		if len(ranked) == 0 {
			fmt.Println("no candidate edits triggered")
			return nil
		}

		fmt.Println()
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tdelta\test. safe rate\tsuggestion\tchange")
		for i, s := range ranked {
			fmt.Fprintf(tw, "%d\t%+.2f%%\t%.2f%%\t%s\t%s\n",
				i+1, s.Delta, s.EstRate, s.Title, s.Change)
		}
		tw.Flush()

		if suggestVerbose {
			for _, s := range ranked {
				fmt.Printf("\n%s\n  %s\n  %s\n", s.Title, s.Action, s.Why)
			}
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestConfigPath, "config", "config/mission.yaml", "Path to mission configuration YAML")
	suggestCmd.Flags().StringVar(&suggestSchemaPath, "schema", "schemas/mission.cue", "Path to CUE schema file")
	suggestCmd.Flags().IntVar(&suggestRuns, "runs", 0, "Baseline run count (defaults to the config run count)")
	suggestCmd.Flags().Int64Var(&suggestSeed, "seed", 0, "Random seed (defaults to the config seed)")
	suggestCmd.Flags().IntVar(&suggestTopK, "top", advisor.DefaultTopK, "Number of suggestions to print")
	suggestCmd.Flags().IntVar(&suggestQuickRuns, "quick-runs", 0, "Sample count per candidate evaluation")
	suggestCmd.Flags().BoolVar(&suggestVerbose, "verbose", false, "Print full explanations for every suggestion")
}
