package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the animation frames (◐ ◓ ◑ ◒) for the command status.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 10, // 100ms per frame
}

// SpinnerComponentState represents the state of the command status.
type SpinnerComponentState int

const (
	SpinnerComponentIdle SpinnerComponentState = iota
	SpinnerComponentInProgress
	SpinnerComponentSuccess
	SpinnerComponentFailed
	SpinnerComponentStopped
)

// SpinnerComponent shows which terraform command is running and how the
// last one ended. It is embedded in the status bar.
type SpinnerComponent struct {
	spinner   spinner.Model
	Label     string
	State     SpinnerComponentState
	StartTime time.Time
	EndTime   time.Time
}

// NewSpinnerComponent creates an idle status with the given label.
func NewSpinnerComponent(label string) SpinnerComponent {
	sp := spinner.New()
	sp.Spinner = SpinnerFrames
	sp.Style = lipgloss.NewStyle().Foreground(ColorSecondary)

	return SpinnerComponent{
		spinner: sp,
		Label:   label,
		State:   SpinnerComponentIdle,
	}
}

// Update advances the animation while a command runs.
func (s SpinnerComponent) Update(msg tea.Msg) (SpinnerComponent, tea.Cmd) {
	if s.State != SpinnerComponentInProgress {
		return s, nil
	}

	if tickMsg, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(tickMsg)
		return s, cmd
	}
	return s, nil
}

// View renders the status in its current state.
func (s SpinnerComponent) View() string {
	switch s.State {
	case SpinnerComponentInProgress:
		return s.spinner.View() + " " + s.Label + "..."
	case SpinnerComponentSuccess:
		return s.viewFinal(SymbolSuccess, ColorSuccess)
	case SpinnerComponentFailed:
		return s.viewFinal(SymbolFail, ColorError)
	case SpinnerComponentStopped:
		return s.viewFinal(SymbolSkipped, ColorWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(SymbolPending + " " + s.Label)
	}
}

func (s SpinnerComponent) viewFinal(symbol string, color lipgloss.Color) string {
	symbolStyle := lipgloss.NewStyle().Foreground(color)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return symbolStyle.Render(symbol) + " " + s.Label + " " + timingStyle.Render(FormatDuration(s.Elapsed()))
}

// Start marks label as running and returns the first animation tick.
func (s *SpinnerComponent) Start(label string) tea.Cmd {
	s.Label = label
	s.State = SpinnerComponentInProgress
	s.StartTime = time.Now()
	s.EndTime = time.Time{}
	return s.spinner.Tick
}

// Success transitions to the success state.
func (s *SpinnerComponent) Success() { s.finish(SpinnerComponentSuccess) }

// Fail transitions to the failed state.
func (s *SpinnerComponent) Fail() { s.finish(SpinnerComponentFailed) }

// Stop transitions to the stopped state.
func (s *SpinnerComponent) Stop() { s.finish(SpinnerComponentStopped) }

func (s *SpinnerComponent) finish(state SpinnerComponentState) {
	s.State = state
	s.EndTime = time.Now()
}

// Running reports whether a command is in progress.
func (s SpinnerComponent) Running() bool {
	return s.State == SpinnerComponentInProgress
}

// Elapsed returns the run time so far, or the final run time once finished.
func (s SpinnerComponent) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	if !s.EndTime.IsZero() {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}
