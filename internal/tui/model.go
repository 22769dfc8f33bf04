package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/tfui/internal/ansi"
	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/console"
	"github.com/rileyhilliard/tfui/internal/logger"
	"github.com/rileyhilliard/tfui/internal/logs"
	"github.com/rileyhilliard/tfui/internal/output"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/rileyhilliard/tfui/internal/terraform"
	"github.com/rileyhilliard/tfui/internal/ui"
	"github.com/rileyhilliard/tfui/internal/watch"
)

// pane identifies which side receives key presses.
type pane int

const (
	paneForm pane = iota
	paneConsole
)

// Options configures a Model.
type Options struct {
	Dir     string
	Config  *config.Config
	Vars    []schema.Variable
	Changes watch.ChangeSource // nil disables reloads on edit
	Logs    *logs.LogWriter    // nil disables transcripts
	Logger  logger.Logger
}

// runLog collects what one run's output lines feed besides the console.
type runLog struct {
	transcript *logs.Transcript
	summary    terraform.Summary
}

// Model is the Bubble Tea model for the Terraform front-end: a variable form,
// a console showing terraform output and a status bar.
type Model struct {
	dir      string
	varFile  string
	interval time.Duration

	queue    *output.Queue
	runner   *terraform.Runner
	renderer *console.Renderer
	buffer   *console.Buffer
	styler   *console.Styler

	form     *VarForm
	viewport viewport.Model
	help     help.Model
	status   ui.SpinnerComponent

	changes   watch.ChangeSource
	logWriter *logs.LogWriter
	// runs holds the transcript and summary of every unfinished run, keyed
	// by run ID. active is the latest run started from the UI.
	runs    map[uint64]*runLog
	active  uint64
	summary terraform.Summary
	log     logger.Logger

	focus    pane
	width    int
	height   int
	quitting bool
}

// NewModel creates a model for the Terraform directory in opts.
func NewModel(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	table := ansi.DefaultStyleTable()
	buffer := console.NewBuffer()
	queue := output.NewQueue()
	varFile := filepath.Join(opts.Dir, cfg.Terraform.VarFile)

	runner := terraform.NewRunner(terraform.Options{
		Binary:  cfg.Terraform.Binary,
		Dir:     opts.Dir,
		VarFile: varFile,
		Env:     cfg.Terraform.EnvList(),
	}, queue)
	runner.SetLogger(log)

	vp := viewport.New(80, 20)

	m := &Model{
		dir:       opts.Dir,
		varFile:   varFile,
		interval:  cfg.UI.RenderInterval,
		queue:     queue,
		runner:    runner,
		renderer:  console.NewRenderer(buffer, table),
		buffer:    buffer,
		styler:    console.NewStyler(table, nil),
		form:      NewVarForm(opts.Vars),
		viewport:  vp,
		help:      help.New(),
		status:    ui.NewSpinnerComponent("Ready"),
		changes:   opts.Changes,
		logWriter: opts.Logs,
		runs:      make(map[uint64]*runLog),
		log:       log,
		focus:     paneForm,
	}
	if m.form.Form() == nil {
		m.focus = paneConsole
	}
	if m.interval <= 0 {
		m.interval = config.DefaultConfig().UI.RenderInterval
	}
	return m
}

// Init starts the drain loop, the watcher and the form.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{drainTick(m.interval), waitForChange(m.changes)}
	if f := m.form.Form(); f != nil {
		cmds = append(cmds, f.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case drainTickMsg:
		if m.quitting {
			return m, nil
		}
		m.drain()
		return m, drainTick(m.interval)

	case commandDoneMsg:
		m.finishRun(msg.run, msg.result)
		return m, nil

	case schemaChangedMsg:
		m.log.Debug("reloading variables after change to %s", msg.event.Path)
		cmd := m.reload()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.status, cmd = m.status.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateForm(msg)
}

// handleKey routes key presses to the focused pane.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, m.quit()
	}

	if m.focus == paneForm {
		if key.Matches(msg, keys.Focus) {
			m.focus = paneConsole
			return m, nil
		}
		return m, m.updateForm(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.quit()
	case key.Matches(msg, keys.Focus):
		if m.form.Form() != nil {
			m.focus = paneForm
		}
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	case key.Matches(msg, keys.Refresh):
		return m, m.reload()
	case key.Matches(msg, keys.Stop):
		if m.runner.Stop() {
			m.log.Debug("stop requested")
		}
		return m, nil
	case key.Matches(msg, keys.Up):
		m.viewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, keys.Down):
		m.viewport.ScrollDown(1)
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.viewport.PageUp()
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.viewport.PageDown()
		return m, nil
	case key.Matches(msg, keys.Top):
		m.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, keys.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	for _, ck := range commandKeys {
		if key.Matches(msg, *ck.binding) {
			return m, m.runCommand(ck.command)
		}
	}
	return m, nil
}

// updateForm forwards msg to the huh form. A submitted form saves the var
// file and is rebuilt so editing can continue.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	f := m.form.Form()
	if f == nil {
		return nil
	}

	updated, cmd := f.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		m.form.SetForm(form)
		f = form
	}

	if f.State == huh.StateCompleted {
		if err := m.saveVars(); err != nil {
			m.printError(err)
		} else {
			m.printNote("saved " + filepath.Base(m.varFile))
		}
		m.form.Rebuild()
		m.layout()
		m.focus = paneConsole
		return m.form.Form().Init()
	}
	return cmd
}

// drain moves queued output into the console and keeps the view pinned to
// the newest line.
func (m *Model) drain() {
	m.consume(m.queue.Drain())
}

// drainAll also collects lines still in transit; used when a run ends or is
// replaced so none of its output lands after the next header.
func (m *Model) drainAll() {
	m.consume(m.queue.DrainAll())
}

func (m *Model) consume(lines []output.QueuedLine) {
	if len(lines) == 0 {
		return
	}
	for _, l := range lines {
		rl, ok := m.runs[l.Run]
		if !ok {
			continue
		}
		if rl.transcript != nil {
			rl.transcript.WriteLine(l.Content)
		}
		rl.summary.ProcessLine(l.Content)
	}
	m.renderer.Consume(lines)
	m.refreshConsole()
}

func (m *Model) refreshConsole() {
	m.viewport.SetContent(m.buffer.Render(m.styler))
	if m.buffer.TakeScroll() {
		m.viewport.GotoBottom()
	}
}

// runCommand saves the var file and starts c, terminating any running
// command first.
func (m *Model) runCommand(c terraform.Command) tea.Cmd {
	if err := m.saveVars(); err != nil {
		m.printError(err)
		return nil
	}

	// Carryover from the previous run is rendered before the new header.
	m.drainAll()
	m.renderer.Flush()

	m.summary = terraform.Summary{}
	m.active = 0
	m.renderer.Write(fmt.Sprintf("\x1b[1m$ %s %s\x1b[0m\n",
		m.runner.Options().Binary, strings.Join(m.runner.Args(c), " ")))

	run, err := m.runner.Start(context.Background(), c)
	if err != nil {
		m.printError(err)
		m.status.Fail()
		return nil
	}
	m.active = run.ID
	m.runs[run.ID] = &runLog{transcript: m.beginTranscript(run)}
	m.refreshConsole()

	return tea.Batch(m.status.Start(c.Name), waitForRun(run))
}

func (m *Model) saveVars() error {
	return schema.WriteVarFile(m.varFile, m.form.Values())
}

func (m *Model) beginTranscript(run *terraform.Run) *logs.Transcript {
	if m.logWriter == nil {
		return nil
	}
	t, err := m.logWriter.Begin(run.Command.Name, m.runner.Args(run.Command))
	if err != nil {
		m.log.Warn("transcript: %v", err)
		return nil
	}
	return t
}

// finishRun records a run's result. Results of runs replaced by a newer
// Start only close their transcript.
//
// The run's lines are all queued before its done channel closes, so the
// drain below is the last one that can carry them.
func (m *Model) finishRun(run *terraform.Run, res terraform.Result) {
	m.drainAll()

	current := run == m.runner.Current()
	rl, ok := m.runs[run.ID]
	if !ok {
		rl = &runLog{}
	}
	delete(m.runs, run.ID)
	if rl.transcript != nil {
		if err := m.logWriter.Finish(rl.transcript, logs.RunResult{
			ExitCode: res.ExitCode,
			Stopped:  res.Stopped,
			Duration: res.Duration,
			Err:      res.Err,
			Summary:  rl.summary.String(),
		}); err != nil {
			m.log.Warn("transcript: %v", err)
		}
	}

	if !current {
		return
	}
	m.summary = rl.summary
	switch {
	case res.Stopped:
		m.status.Stop()
	case res.Success():
		m.status.Success()
	default:
		m.status.Fail()
	}
	if res.Err != nil {
		m.printError(res.Err)
	}
}

// reload rebuilds the form from variables.tf. Entered values are replaced by
// the file's defaults.
func (m *Model) reload() tea.Cmd {
	vars, err := schema.Load(m.dir)
	if err != nil {
		m.printError(err)
		return nil
	}
	m.form = NewVarForm(vars)
	m.printNote(fmt.Sprintf("loaded %d variables from %s", len(vars), schema.FileName))
	m.layout()
	if f := m.form.Form(); f != nil {
		return f.Init()
	}
	m.focus = paneConsole
	return nil
}

func (m *Model) printError(err error) {
	for _, line := range strings.Split(strings.TrimRight(err.Error(), "\n"), "\n") {
		m.renderer.Write("\x1b[31m" + line + "\x1b[0m\n")
	}
	m.refreshConsole()
}

func (m *Model) printNote(note string) {
	m.renderer.Write("\x1b[36m" + note + "\x1b[0m\n")
	m.refreshConsole()
}

// quit stops the render loop and any running command.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.runner.Stop()
	return tea.Quit
}

// layout sizes the panes for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.help.Width = m.width

	bodyHeight := m.height - chromeHeight - lipgloss.Height(m.help.View(keys)) + 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	formW, consoleW, formH, consoleH := m.paneSizes(bodyHeight)
	if f := m.form.Form(); f != nil {
		m.form.SetForm(f.WithWidth(formW).WithHeight(formH))
	}
	m.viewport.Width = consoleW
	m.viewport.Height = consoleH
	m.refreshConsole()
}

// paneSizes returns inner sizes of the form and console panes. Borders take
// two cells in each direction and the pane title one row.
func (m *Model) paneSizes(bodyHeight int) (formW, consoleW, formH, consoleH int) {
	inner := func(n int) int {
		if n < 1 {
			return 1
		}
		return n
	}

	if m.form.Form() == nil {
		return 0, inner(m.width - 2), 0, inner(bodyHeight - 3)
	}
	if m.width < stackBelow {
		formH = bodyHeight / 3
		return inner(m.width - 2), inner(m.width - 2), inner(formH - 3), inner(bodyHeight - formH - 3)
	}
	formW = m.width / 2
	if formW > formMaxWidth {
		formW = formMaxWidth
	}
	return inner(formW - 2), inner(m.width - formW - 2), inner(bodyHeight - 3), inner(bodyHeight - 3)
}

// View renders the UI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render("tfui") + " " + dirStyle.Render(m.dir)

	consoleStyle, formStyle := paneStyle, paneStyle
	if m.focus == paneConsole {
		consoleStyle = focusedPaneStyle
	} else {
		formStyle = focusedPaneStyle
	}

	consolePane := consoleStyle.Render(paneTitleStyle.Render("Output") + "\n" + m.viewport.View())

	var body string
	if f := m.form.Form(); f != nil {
		formPane := formStyle.Render(paneTitleStyle.Render("Variables") + "\n" + f.View())
		if m.width < stackBelow {
			body = lipgloss.JoinVertical(lipgloss.Left, formPane, consolePane)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, formPane, consolePane)
		}
	} else {
		body = consolePane
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.statusBar(), m.help.View(keys))
}

// runSummary is the summary shown in the status bar: the running command's
// while it streams, else the last finished one's.
func (m *Model) runSummary() terraform.Summary {
	if rl, ok := m.runs[m.active]; ok {
		return rl.summary
	}
	return m.summary
}

func (m *Model) statusBar() string {
	parts := []string{m.status.View()}
	if summary := m.runSummary().String(); summary != "" {
		parts = append(parts, summary)
	}
	parts = append(parts, mutedStyle.Render(humanize.Comma(int64(m.buffer.Len()))+" lines"))
	if m.runner.Running() {
		parts = append(parts, mutedStyle.Render("s to stop"))
	}
	if m.form.Form() == nil {
		parts = append(parts, errorStyle.Render("no variables"))
	}
	return strings.Join(parts, mutedStyle.Render(" │ "))
}

// Close releases the queue and any open transcript. Call after the program
// exits.
func (m *Model) Close() {
	m.runner.Stop()
	m.queue.Close()
	if m.logWriter != nil {
		if err := m.logWriter.Close(); err != nil {
			m.log.Warn("transcript: %v", err)
		}
	}
}
