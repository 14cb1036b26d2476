package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"landersim/internal/descent"
	"landersim/internal/sim"
	"landersim/internal/tui"
)

// Playback caps trace length so coarse-dt runs stay scrubbable.
const maxPlaybackFrames = 2000

var (
	replayInput     string
	replaySpeed     float64
	replayTUI       bool
	replaySafeSpeed float64
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded descent trace",
	Long:  "replay reads a JSONL trace log and plays it back to STDOUT or a terminal UI.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input trace file required")
		}
		if !replayTUI {
			return sim.ReplayLogFile(replayInput, &sim.StdoutWriter{}, replaySpeed)
		}

		evs, err := sim.LoadTrace(replayInput)
		if err != nil {
			return err
		}
		rows := make([]descent.TraceRow, len(evs))
		for i, ev := range evs {
			rows[i] = ev.Row
		}
		var outcome descent.Outcome
		if len(evs) > 0 {
			outcome.RunID = evs[0].RunID
			last := rows[len(rows)-1]
			if last.AltitudeM <= 0 {
				outcome.Landed = true
				speed := last.VelocityMps
				if speed < 0 {
					speed = -speed
				}
				outcome.LandingSpeed = &speed
				if speed <= replaySafeSpeed {
					outcome.Safe = true
					outcome.Reason = descent.ReasonSafe
				} else {
					outcome.Reason = descent.ReasonTooFast
				}
			}
			outcome.FuelLeftKg = last.FuelKg
			outcome.TimeS = last.TimeS
		}
		return tui.Run(descent.Downsample(rows, maxPlaybackFrames), outcome, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to trace log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayTUI, "tui", false, "Render playback in a terminal UI")
	replayCmd.Flags().Float64Var(&replaySafeSpeed, "safe-speed", 2.0, "Safe landing speed used to classify the replayed touchdown (m/s)")
}
