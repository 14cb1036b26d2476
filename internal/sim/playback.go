package sim

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// ReplayLog replays trace events from r to writer. A speed >0 scales the
// simulated time deltas into wall-clock delays; speed <= 0 replays
// without artificial delay.
func ReplayLog(r io.Reader, writer TraceWriter, speed float64) error {
	dec := json.NewDecoder(r)
	first := true
	var prev float64
	for {
		var ev TraceEvent
		if err := dec.Decode(&ev); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !first && speed > 0 {
			diff := ev.Row.TimeS - prev
			if diff > 0 {
				time.Sleep(time.Duration(diff / speed * float64(time.Second)))
			}
		}
		if err := writer.WriteTrace(ev); err != nil {
			return err
		}
		prev = ev.Row.TimeS
		first = false
	}
}

// ReplayLogFile opens a file and replays its trace events.
func ReplayLogFile(path string, writer TraceWriter, speed float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReplayLog(f, writer, speed)
}

// LoadTrace reads all trace events from a JSONL file.
func LoadTrace(path string) ([]TraceEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var evs []TraceEvent
	dec := json.NewDecoder(f)
	for {
		var ev TraceEvent
		if err := dec.Decode(&ev); err != nil {
			if err == io.EOF {
				return evs, nil
			}
			return nil, err
		}
		evs = append(evs, ev)
	}
}
