package main

import (
	"github.com/spf13/cobra"

	"landersim/internal/config"
	"landersim/internal/descent"
	"landersim/internal/logging"
	"landersim/internal/montecarlo"
	"landersim/internal/sim"
	"landersim/internal/tui"
)

var (
	simConfigPath string
	simSchemaPath string
	simSeed       int64
	simPrintOnly  bool
	simLogFile    string
	simTUI        bool
	simTUISpeed   float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a single descent with a full trace",
	Long:  "simulate runs one stochastic descent and emits its outcome plus a per-step trace.",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(false)

		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}
		seed := simSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.Sim.Seed
		}

		simulator, err := descent.NewSimulator(cfg, montecarlo.NewStream(seed))
		if err != nil {
			return err
		}
		outcome, trace := simulator.RunTrace()
		log.Info("descent finished",
			"reason", outcome.Reason, "time_s", outcome.TimeS, "fuel_left_kg", outcome.FuelLeftKg)

		writer, cleanup, err := newOutcomeWriter(simPrintOnly, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := writer.Write(outcome); err != nil {
			return err
		}
		if tw, ok := writer.(sim.TraceWriter); ok {
			if err := sim.WriteTraceEvents(tw, sim.TraceEvents(outcome.RunID, trace)); err != nil {
				return err
			}
		}

		if simTUI {
			return tui.Run(descent.Downsample(trace, maxPlaybackFrames), outcome, simTUISpeed)
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/mission.yaml", "Path to mission configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/mission.cue", "Path to CUE schema file")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "Random seed (defaults to the config seed)")
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print outcomes to STDOUT instead of writing to DB")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export outcome/trace logs (JSONL)")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Play the descent back in a terminal UI")
	simulateCmd.Flags().Float64Var(&simTUISpeed, "speed", 4, "Playback speed multiplier for --tui")
}
