package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Command exited zero
	SymbolFail     = "✗" // Command failed
	SymbolPending  = "○" // Nothing run yet
	SymbolProgress = "◐" // Command running
	SymbolSkipped  = "⊘" // Command stopped before finishing
)
