package main

import (
	"github.com/spf13/cobra"

	"landersim/internal/config"
	"landersim/internal/logging"
	"landersim/internal/montecarlo"
	"landersim/internal/sim"
)

var (
	batchConfigPath string
	batchSchemaPath string
	batchRuns       int
	batchSeed       int64
	batchPrintRows  bool
	batchPrintOnly  bool
	batchLogFile    string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a Monte Carlo batch and summarize it",
	Long: "batch runs the descent simulator repeatedly with independent noise draws and " +
		"reports safe-landing statistics and the failure-mode breakdown.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(false)

		cfg, err := config.Load(batchConfigPath, batchSchemaPath)
		if err != nil {
			return err
		}
		runs := batchRuns
		if !cmd.Flags().Changed("runs") {
			runs = cfg.Sim.Runs
		}
		seed := batchSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.Sim.Seed
		}

		log.Info("starting batch", "runs", runs, "seed", seed)
		outcomes, err := montecarlo.Collect(cfg, runs, seed)
		if err != nil {
			return err
		}
		summary := montecarlo.Summarize(outcomes)

		writer, cleanup, err := newOutcomeWriter(batchPrintOnly, batchLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		if batchPrintRows {
			if err := sim.WriteOutcomes(writer, outcomes); err != nil {
				return err
			}
		} else if _, stdout := writer.(*sim.StdoutWriter); !stdout {
			// non-stdout sinks always get the full batch
			if err := sim.WriteOutcomes(writer, outcomes); err != nil {
				return err
			}
		}

		sim.NewColorStdoutWriter().PrintSummary(summary)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "config/mission.yaml", "Path to mission configuration YAML")
	batchCmd.Flags().StringVar(&batchSchemaPath, "schema", "schemas/mission.cue", "Path to CUE schema file")
	batchCmd.Flags().IntVar(&batchRuns, "runs", 0, "Number of runs (defaults to the config run count)")
	batchCmd.Flags().Int64Var(&batchSeed, "seed", 0, "Random seed (defaults to the config seed)")
	batchCmd.Flags().BoolVar(&batchPrintRows, "rows", false, "Also print every outcome row")
	batchCmd.Flags().BoolVar(&batchPrintOnly, "print-only", false, "Print outcomes to STDOUT instead of writing to DB")
	batchCmd.Flags().StringVar(&batchLogFile, "log-file", "", "Path to export outcome logs (JSONL)")
}
