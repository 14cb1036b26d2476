package sim

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"landersim/internal/descent"
	"landersim/internal/montecarlo"
)

var (
	styleSafe    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleDanger  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeading = lipgloss.NewStyle().Bold(true)
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func reasonStyle(r descent.Reason) lipgloss.Style {
	switch r {
	case descent.ReasonSafe:
		return styleSafe
	case descent.ReasonTooFast:
		return styleDanger
	default:
		return styleWarn
	}
}

// ColorStdoutWriter prints outcome rows and batch summaries using
// terminal colors.
type ColorStdoutWriter struct {
	out io.Writer
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{out: os.Stdout}
}

// Write prints a single outcome line.
func (w *ColorStdoutWriter) Write(o descent.Outcome) error {
	speed := "-"
	if o.LandingSpeed != nil {
		speed = fmt.Sprintf("%.2f m/s", *o.LandingSpeed)
	}
	fmt.Fprintf(w.out, "%s  reason=%s  speed=%s  fuel=%.1f kg  t=%.1f s\n",
		styleMuted.Render(shortID(o.RunID)),
		reasonStyle(o.Reason).Render(string(o.Reason)),
		speed, o.FuelLeftKg, o.TimeS)
	return nil
}

// PrintSummary renders batch statistics as an aligned table.
func (w *ColorStdoutWriter) PrintSummary(s montecarlo.Summary) {
	fmt.Fprintln(w.out, styleHeading.Render("Monte Carlo summary"))
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Runs:\t%d\n", s.Runs)
	fmt.Fprintf(tw, "Safe rate:\t%.2f%%\n", s.SafeRate)
	fmt.Fprintf(tw, "Touchdown rate:\t%.2f%%\n", s.TouchdownRate)
	if s.AvgSpeed != nil {
		fmt.Fprintf(tw, "Avg landing speed:\t%.3f m/s\n", *s.AvgSpeed)
		fmt.Fprintf(tw, "Std landing speed:\t%.3f m/s\n", s.StdSpeed)
	} else {
		fmt.Fprintf(tw, "Avg landing speed:\t-\n")
	}
	fmt.Fprintf(tw, "Avg fuel left:\t%.3f kg\n", s.AvgFuelLeft)
	tw.Flush()

	fmt.Fprintln(w.out, styleHeading.Render("Reason breakdown"))
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	for _, r := range descent.Reasons {
		count, ok := s.Breakdown[r]
		if !ok {
			continue
		}
		marker := " "
		if r == s.Dominant {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%d\t(%.2f%%)\n",
			marker, reasonStyle(r).Render(string(r)), count, s.BreakdownPct[r])
	}
	tw.Flush()
}
