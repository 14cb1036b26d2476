package sim

import (
	"encoding/json"
	"os"

	"landersim/internal/descent"
)

// FileWriter writes outcome and trace data to JSONL files.
type FileWriter struct {
	outFile   *os.File
	traceFile *os.File
	outEnc    *json.Encoder
	traceEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. tracePath may be empty to skip the trace log.
func NewFileWriter(outcomePath, tracePath string) (*FileWriter, error) {
	of, err := os.Create(outcomePath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{outFile: of, outEnc: json.NewEncoder(of)}
	if tracePath != "" {
		tf, err := os.Create(tracePath)
		if err != nil {
			of.Close()
			return nil, err
		}
		fw.traceFile = tf
		fw.traceEnc = json.NewEncoder(tf)
	}
	return fw, nil
}

// Write logs a single outcome record.
func (f *FileWriter) Write(o descent.Outcome) error {
	return f.outEnc.Encode(o)
}

// WriteBatch logs multiple outcome records.
func (f *FileWriter) WriteBatch(outcomes []descent.Outcome) error {
	for _, o := range outcomes {
		if err := f.Write(o); err != nil {
			return err
		}
	}
	return nil
}

// WriteTrace logs a single trace event, if enabled.
func (f *FileWriter) WriteTrace(ev TraceEvent) error {
	if f.traceEnc == nil {
		return nil
	}
	return f.traceEnc.Encode(ev)
}

// WriteTraces logs multiple trace events.
func (f *FileWriter) WriteTraces(evs []TraceEvent) error {
	for _, ev := range evs {
		if err := f.WriteTrace(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.outFile != nil {
		if e := f.outFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.traceFile != nil {
		if e := f.traceFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
