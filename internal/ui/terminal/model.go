// Package terminal is the bubbletea driver for the round timer.
package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tomato/internal/core/clock"
	"tomato/internal/core/roundtimer"
	"tomato/internal/effects"
	"tomato/internal/ui/theme"
	"tomato/internal/ui/timerwindow"
)

const (
	lengthStep     = time.Minute
	minBreakLength = time.Minute
	progressWidth  = 30
)

type tickMsg time.Time

type transitionMsg roundtimer.Transition

type transitionsClosedMsg struct{}

// Model is the bubbletea model. All RoundTimer mutations happen in Update.
type Model struct {
	timer        *roundtimer.RoundTimer
	clock        clock.Clock
	pollInterval time.Duration
	transitions  <-chan roundtimer.Transition
	progress     progress.Model

	banner   string
	width    int
	quitting bool
}

// NewModel creates a terminal model. transitions may be nil.
func NewModel(timer *roundtimer.RoundTimer, source clock.Clock, pollInterval time.Duration, transitions <-chan roundtimer.Transition) Model {
	if source == nil {
		source = clock.System{}
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Millisecond
	}
	return Model{
		timer:        timer,
		clock:        source,
		pollInterval: pollInterval,
		transitions:  transitions,
		progress:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressWidth)),
	}
}

// Init starts polling and listening for transitions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleTick(), m.waitForTransition())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(progressWidth, max(msg.Width-4, 10))
	case tickMsg:
		m.timer.Tick(m.clock.Now())
		return m, m.scheduleTick()
	case transitionMsg:
		if effect := effects.EffectFor(roundtimer.Transition(msg)); effect.Title != "" {
			m.banner = effect.Title + " " + effect.Body
		}
		return m, m.waitForTransition()
	case transitionsClosedMsg:
		m.transitions = nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	config := m.timer.Config()

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "s", " ", "enter":
		m.banner = ""
		if !m.timer.Toggle(now) && !m.timer.Phase().Active() && config.RoundLength <= 0 {
			m.banner = "Set a round length first"
		}
	case "r":
		m.timer.ResetCompletedRounds()
	case "+", "=":
		m.timer.SetRoundLength(config.RoundLength + lengthStep)
	case "-", "_":
		m.timer.SetRoundLength(config.RoundLength - lengthStep)
	case "]":
		m.timer.SetBreakLength(config.BreakLength + lengthStep)
	case "[":
		m.timer.SetBreakLength(max(config.BreakLength-lengthStep, minBreakLength))
	case "b":
		m.timer.SetBreaksEnabled(!config.BreaksEnabled)
	}
	return m, nil
}

// View renders the timer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snapshot := m.timer.Snapshot(m.clock.Now())
	config := m.timer.Config()

	header := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Foreground(lipgloss.Color("#ffffff")).
		Background(lipgloss.Color(theme.Hex(theme.ColorFor(snapshot.Phase.State)))).
		Render(timerwindow.PhaseTitle(snapshot.Phase.State))

	display := snapshot.Display
	if display == "" {
		display = "Press s to start a round"
	}

	breaks := "on"
	if !config.BreaksEnabled {
		breaks = "off"
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(display + "\n")
	b.WriteString(m.progress.ViewAs(snapshot.Progress) + "\n\n")
	if m.banner != "" {
		b.WriteString(lipgloss.NewStyle().Italic(true).Render(m.banner) + "\n\n")
	}
	fmt.Fprintf(&b, "Round: %d min   Break: %d min   Breaks: %s\n",
		int(config.RoundLength.Minutes()), int(config.BreakLength.Minutes()), breaks)
	fmt.Fprintf(&b, "Completed rounds: %d   Focus time: %s\n\n",
		snapshot.CompletedRounds, timerwindow.FormatFocus(snapshot.FocusTime))
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("s start/stop  r reset  +/- round  [/] break  b breaks  q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(at time.Time) tea.Msg {
		return tickMsg(at)
	})
}

func (m Model) waitForTransition() tea.Cmd {
	if m.transitions == nil {
		return nil
	}
	transitions := m.transitions
	return func() tea.Msg {
		transition, ok := <-transitions
		if !ok {
			return transitionsClosedMsg{}
		}
		return transitionMsg(transition)
	}
}

// Run runs the program until the user quits.
func Run(m Model, options ...tea.ProgramOption) error {
	_, err := tea.NewProgram(m, options...).Run()
	return err
}
