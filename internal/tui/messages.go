package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/tfui/internal/terraform"
	"github.com/rileyhilliard/tfui/internal/watch"
)

// drainTickMsg asks the model to move queued output into the console.
type drainTickMsg time.Time

// commandDoneMsg reports that a terraform run exited.
type commandDoneMsg struct {
	run    *terraform.Run
	result terraform.Result
}

// schemaChangedMsg reports an edit to variables.tf.
type schemaChangedMsg struct {
	event watch.Event
}

func drainTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return drainTickMsg(t)
	})
}

func waitForRun(run *terraform.Run) tea.Cmd {
	return func() tea.Msg {
		return commandDoneMsg{run: run, result: run.Wait()}
	}
}

// waitForChange blocks on the next watcher event. A closed source ends the
// chain.
func waitForChange(src watch.ChangeSource) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-src.Events()
		if !ok {
			return nil
		}
		return schemaChangedMsg{event: ev}
	}
}
