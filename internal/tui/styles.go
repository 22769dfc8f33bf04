package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/tfui/internal/ui"
)

// Layout constants
const (
	// formMaxWidth caps the variable pane on wide terminals.
	formMaxWidth = 64
	// stackBelow is the width under which panes stack vertically.
	stackBelow = 100
	// chromeHeight is the header plus status bar.
	chromeHeight = 2
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorPrimary).
			Bold(true)

	dirStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorUnfocused)

	focusedPaneStyle = paneStyle.
				BorderForeground(ui.ColorFocused)

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(ui.ColorSecondary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(ui.ColorError)
)
