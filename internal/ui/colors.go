package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes so the chrome follows the user's
// terminal theme. Terraform's own output is colored by the console package.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Focus colors for pane borders
const (
	ColorFocused   lipgloss.Color = "4" // Blue
	ColorUnfocused lipgloss.Color = "8" // Gray
)
