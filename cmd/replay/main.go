package main

import (
	"flag"
	"log"

	"landersim/internal/sim"
)

func main() {
	input := flag.String("input", "", "Path to trace log file")
	speed := flag.Float64("speed", 1.0, "Playback speed multiplier")
	flag.Parse()

	if *input == "" {
		log.Fatal("input file required")
	}

	if err := sim.ReplayLogFile(*input, &sim.StdoutWriter{}, *speed); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
}
