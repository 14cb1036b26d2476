// Terminal playback of a recorded descent trace
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"landersim/internal/descent"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	safeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	crashStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

type tickMsg time.Time

// Model plays back one descent trace frame by frame.
type Model struct {
	rows    []descent.TraceRow
	outcome descent.Outcome
	speed   float64

	frame   int
	paused  bool
	done    bool
	width   int
	maxAlt  float64
	maxFuel float64

	altBar  progress.Model
	fuelBar progress.Model
}

// New builds a playback model for a trace and its outcome.
func New(rows []descent.TraceRow, outcome descent.Outcome, speed float64) Model {
	maxAlt, maxFuel := 1.0, 1.0
	if len(rows) > 0 {
		maxAlt = rows[0].AltitudeM
		maxFuel = rows[0].FuelKg
		if maxFuel <= 0 {
			maxFuel = 1
		}
	}
	if speed <= 0 {
		speed = 1
	}
	return Model{
		rows:    rows,
		outcome: outcome,
		speed:   speed,
		maxAlt:  maxAlt,
		maxFuel: maxFuel,
		width:   80,
		altBar:  progress.New(progress.WithDefaultGradient()),
		fuelBar: progress.New(progress.WithSolidFill("11")),
	}
}

// Run plays the trace in an alt-screen bubbletea program.
func Run(rows []descent.TraceRow, outcome descent.Outcome, speed float64) error {
	p := tea.NewProgram(New(rows, outcome, speed), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	dt := 0.1
	if len(m.rows) > 1 {
		dt = m.rows[1].TimeS - m.rows[0].TimeS
	}
	return tea.Tick(time.Duration(dt/m.speed*float64(time.Second)), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	if len(m.rows) == 0 {
		return tea.Quit
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 24
		if barWidth < 10 {
			barWidth = 10
		}
		m.altBar.Width = barWidth
		m.fuelBar.Width = barWidth
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			if !m.paused && !m.done {
				return m, m.tick()
			}
		case "left", "h":
			if m.frame > 0 {
				m.frame--
				m.done = false
			}
		case "right", "l":
			if m.frame < len(m.rows)-1 {
				m.frame++
			}
		}
		return m, nil
	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		if m.frame < len(m.rows)-1 {
			m.frame++
			return m, m.tick()
		}
		m.done = true
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.rows) == 0 {
		return "no trace to play\n"
	}
	row := m.rows[m.frame]

	s := titleStyle.Render("Descent playback") + "\n\n"
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("time    "),
		valueStyle.Render(fmt.Sprintf("%7.1f s", row.TimeS)))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("velocity"),
		valueStyle.Render(fmt.Sprintf("%7.2f m/s", row.VelocityMps)))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("throttle"),
		valueStyle.Render(fmt.Sprintf("%7.0f %%", row.Throttle*100)))

	altPct := row.AltitudeM / m.maxAlt
	if altPct < 0 {
		altPct = 0
	}
	fuelPct := row.FuelKg / m.maxFuel
	s += fmt.Sprintf("\n%s %s\n", labelStyle.Render("altitude"), m.altBar.ViewAs(altPct))
	s += fmt.Sprintf("%s %s\n", labelStyle.Render("fuel    "), m.fuelBar.ViewAs(fuelPct))

	if m.paused {
		s += "\n" + pausedStyle.Render("paused")
	}
	// no verdict without a terminal reason (e.g. a truncated trace log)
	if m.done && (m.outcome.Safe || m.outcome.Reason != "") {
		verdict := crashStyle.Render(fmt.Sprintf("outcome: %s", m.outcome.Reason))
		if m.outcome.Safe {
			verdict = safeStyle.Render("outcome: safe landing")
		}
		detail := ""
		if m.outcome.LandingSpeed != nil {
			detail = fmt.Sprintf(" at %.2f m/s with %.1f kg fuel left",
				*m.outcome.LandingSpeed, m.outcome.FuelLeftKg)
		}
		s += "\n" + wordwrap.String(verdict+detail, m.width)
	}

	s += helpStyle.Render("\nspace pause · ←/→ step · q quit")
	return s
}
