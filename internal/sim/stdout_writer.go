// Writer implementation printing outcomes to STDOUT as JSON lines
package sim

import (
	"encoding/json"
	"fmt"

	"landersim/internal/descent"
)

// StdoutWriter prints outcome and trace records to STDOUT.
type StdoutWriter struct{}

// Write outputs a single outcome record.
func (w *StdoutWriter) Write(o descent.Outcome) error {
	data, _ := json.Marshal(o)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple outcome records.
func (w *StdoutWriter) WriteBatch(outcomes []descent.Outcome) error {
	for _, o := range outcomes {
		_ = w.Write(o)
	}
	return nil
}

// WriteTrace prints a trace event to STDOUT.
func (w *StdoutWriter) WriteTrace(ev TraceEvent) error {
	data, _ := json.Marshal(ev)
	fmt.Println(string(data))
	return nil
}
