// Package tui is the full-screen terminal front-end: a form generated from
// variables.tf beside a console streaming terraform output.
package tui

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logger"
)

// DebugLogFile receives log output while the TUI owns the terminal.
const DebugLogFile = "tfui-debug.log"

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	// The alt screen owns stderr too; logs go to a file or nowhere.
	prev := log.Writer()
	defer log.SetOutput(prev)
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(DebugLogFile, "tfui")
		if err == nil {
			defer f.Close()
		}
	} else {
		log.SetOutput(io.Discard)
	}

	m := NewModel(opts)
	defer m.Close()

	program := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"The terminal UI exited unexpectedly",
			"Try 'tfui run <command>' for plain output")
	}
	return nil
}
