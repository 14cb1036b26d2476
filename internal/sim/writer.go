// Output sinks for descent outcomes and traces
package sim

import "landersim/internal/descent"

// OutcomeWriter receives terminal outcome records.
type OutcomeWriter interface {
	Write(descent.Outcome) error
}

// TraceWriter receives per-step trace rows tagged with their run.
type TraceWriter interface {
	WriteTrace(TraceEvent) error
}

// Optional: writers can also support batch mode.
type batchOutcomeWriter interface {
	WriteBatch([]descent.Outcome) error
}

type batchTraceWriter interface {
	WriteTraces([]TraceEvent) error
}

// TraceEvent is one trace row attributed to a run, the unit persisted
// to trace logs and replayed for display.
type TraceEvent struct {
	RunID string           `json:"run_id"`
	Row   descent.TraceRow `json:"row"`
}

// TraceEvents tags every row of a trace with its run ID.
func TraceEvents(runID string, rows []descent.TraceRow) []TraceEvent {
	evs := make([]TraceEvent, len(rows))
	for i, r := range rows {
		evs[i] = TraceEvent{RunID: runID, Row: r}
	}
	return evs
}

// WriteOutcomes writes a batch through w, using batch mode when available.
func WriteOutcomes(w OutcomeWriter, outcomes []descent.Outcome) error {
	if bw, ok := w.(batchOutcomeWriter); ok {
		return bw.WriteBatch(outcomes)
	}
	for _, o := range outcomes {
		if err := w.Write(o); err != nil {
			return err
		}
	}
	return nil
}

// WriteTraceEvents writes trace events through w, using batch mode when available.
func WriteTraceEvents(w TraceWriter, evs []TraceEvent) error {
	if bw, ok := w.(batchTraceWriter); ok {
		return bw.WriteTraces(evs)
	}
	for _, ev := range evs {
		if err := w.WriteTrace(ev); err != nil {
			return err
		}
	}
	return nil
}
