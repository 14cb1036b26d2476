package sim

import "landersim/internal/descent"

// MultiWriter fans out outcomes and traces to several writers.
type MultiWriter struct {
	outcomeWriters []OutcomeWriter
	traceWriters   []TraceWriter
}

// NewMultiWriter creates a MultiWriter over the given sinks.
func NewMultiWriter(outcomes []OutcomeWriter, traces []TraceWriter) *MultiWriter {
	return &MultiWriter{outcomeWriters: outcomes, traceWriters: traces}
}

// Write forwards an outcome to every writer, returning the first error.
func (m *MultiWriter) Write(o descent.Outcome) error {
	var err error
	for _, w := range m.outcomeWriters {
		if e := w.Write(o); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// WriteBatch forwards a batch to every writer, using batch mode per writer
// when available.
func (m *MultiWriter) WriteBatch(outcomes []descent.Outcome) error {
	var err error
	for _, w := range m.outcomeWriters {
		if e := WriteOutcomes(w, outcomes); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// WriteTrace forwards a trace event to every trace writer.
func (m *MultiWriter) WriteTrace(ev TraceEvent) error {
	var err error
	for _, w := range m.traceWriters {
		if e := w.WriteTrace(ev); e != nil && err == nil {
			err = e
		}
	}
	return err
}
