// Package ui provides the small terminal components shared by the TUI and
// the headless commands.
//
// # Color Scheme
//
// Colors are ANSI codes so the chrome follows the terminal theme:
//
//	ColorSuccess   (green)  - Successful commands
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Stopped commands
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// # Symbols
//
//	SymbolSuccess  (checkmark)  - Command exited zero
//	SymbolFail     (X)          - Command failed
//	SymbolPending  (circle)     - Nothing run yet
//	SymbolProgress (half-fill)  - Command running
//	SymbolSkipped  (slashed)    - Command stopped
//
// # Components
//
//	SpinnerComponent - Command status for the TUI status bar
//	NewDirPicker     - Huh file picker restricted to directories
package ui
