package main

import (
	"os"

	"landersim/internal/sim"
)

// newOutcomeWriter selects the outcome sink: GreptimeDB when an endpoint
// is configured and print-only is off, STDOUT otherwise, plus an optional
// JSONL log file fan-out.
func newOutcomeWriter(printOnly bool, logFile string) (sim.OutcomeWriter, func(), error) {
	cleanup := func() {}

	var writer sim.OutcomeWriter
	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if printOnly || endpoint == "" {
		writer = &sim.StdoutWriter{}
	} else {
		mission := os.Getenv("MISSION_ID")
		if mission == "" {
			mission = "mission-01"
		}
		gw, err := sim.NewGreptimeDBWriter(endpoint, "public", os.Getenv("GREPTIMEDB_TABLE"), mission)
		if err != nil {
			return nil, cleanup, err
		}
		writer = gw
	}

	if logFile != "" {
		fw, err := sim.NewFileWriter(logFile, logFile+".trace")
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = func() { fw.Close() }
		writer = sim.NewMultiWriter(
			[]sim.OutcomeWriter{writer, fw},
			[]sim.TraceWriter{fw},
		)
	}
	return writer, cleanup, nil
}
