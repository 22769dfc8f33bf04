// Package logs writes plain-text transcripts of terraform runs and prunes
// old sessions.
package logs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
)

// LogWriter writes run transcripts for one session. Each session gets its
// own directory with one log per run and a summary.json file.
type LogWriter struct {
	dir        string // Base log directory (~/.tfui/logs)
	sessionDir string // Session directory (~/.tfui/logs/<project>-<timestamp>/)
	project    string
	started    time.Time

	mu      sync.Mutex
	current *Transcript
	runs    []RunJSON
	closed  bool
}

// SummaryJSON is the structure written to summary.json.
type SummaryJSON struct {
	Project   string    `json:"project"`
	WorkDir   string    `json:"work_dir"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
	Runs      []RunJSON `json:"runs"`
}

// RunJSON is the per-run record in summary.json.
type RunJSON struct {
	Command   string    `json:"command"`
	Args      []string  `json:"args"`
	ExitCode  int       `json:"exit_code"`
	Stopped   bool      `json:"stopped,omitempty"`
	Duration  string    `json:"duration"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	LogFile   string    `json:"log_file"`
	Lines     int       `json:"lines"`
	Error     string    `json:"error,omitempty"`
	Summary   string    `json:"summary,omitempty"`
}

// RunResult is what the caller knows about a finished run.
type RunResult struct {
	ExitCode int
	Stopped  bool
	Duration time.Duration
	Err      error
	Summary  string // e.g. "+1 ~0 -0"
}

// NewLogWriter creates a session directory for workDir under baseDir.
// The directory is created immediately so runs can write to it.
func NewLogWriter(baseDir, workDir string) (*LogWriter, error) {
	baseDir = config.ExpandTilde(baseDir)
	project := sanitizeFilename(filepath.Base(workDir))

	started := time.Now()
	sessionDir := filepath.Join(baseDir, fmt.Sprintf("%s-%s", project, started.Format("20060102-150405")))

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't create log directory "+sessionDir,
			"Check your permissions for "+baseDir+".")
	}

	return &LogWriter{
		dir:        baseDir,
		sessionDir: sessionDir,
		project:    project,
		started:    started,
	}, nil
}

// Begin opens a transcript for a run. A transcript left open by a previous
// run is closed first.
func (w *LogWriter) Begin(command string, args []string) (*Transcript, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New(errors.ErrExec,
			"Log writer is closed",
			"This is unexpected - create a new LogWriter.")
	}
	if w.current != nil {
		w.current.close()
	}

	start := time.Now()
	name := fmt.Sprintf("%02d-%s-%s.log", len(w.runs)+1, sanitizeFilename(command), start.Format("150405"))
	path := filepath.Join(w.sessionDir, name)

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Can't create run log "+path,
			"Check your permissions.")
	}

	t := &Transcript{
		file: f,
		buf:  bufio.NewWriter(f),
		run: RunJSON{
			Command:   command,
			Args:      append([]string{}, args...),
			StartTime: start,
			LogFile:   name,
		},
	}
	w.current = t
	return t, nil
}

// Finish closes t and records its result in summary.json.
func (w *LogWriter) Finish(t *Transcript, res RunResult) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	closeErr := t.close()

	run := t.run
	run.ExitCode = res.ExitCode
	run.Stopped = res.Stopped
	run.Duration = res.Duration.String()
	run.EndTime = time.Now()
	run.Lines = t.Lines()
	run.Summary = res.Summary
	if res.Err != nil {
		run.Error = res.Err.Error()
	}
	w.runs = append(w.runs, run)
	if w.current == t {
		w.current = nil
	}

	if err := w.writeSummary(); err != nil {
		return err
	}
	if closeErr != nil {
		return errors.WrapWithCode(closeErr, errors.ErrExec,
			"Can't write run log "+run.LogFile,
			"Check free disk space.")
	}
	return nil
}

// writeSummary rewrites summary.json. Callers hold w.mu.
func (w *LogWriter) writeSummary() error {
	summary := SummaryJSON{
		Project:   w.project,
		StartTime: w.started,
		EndTime:   time.Now(),
		Total:     len(w.runs),
		Runs:      w.runs,
	}
	for _, r := range w.runs {
		if r.ExitCode == 0 && !r.Stopped && r.Error == "" {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Can't encode summary JSON",
			"This is unexpected - check the result data.")
	}

	summaryPath := filepath.Join(w.sessionDir, "summary.json")
	if err := os.WriteFile(summaryPath, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Can't write summary file "+summaryPath,
			"Check your permissions.")
	}
	return nil
}

// Dir returns the session directory.
func (w *LogWriter) Dir() string {
	return w.sessionDir
}

// BaseDir returns the base log directory.
func (w *LogWriter) BaseDir() string {
	return w.dir
}

// Close finalizes logging. An unfinished transcript is closed without a
// summary entry.
func (w *LogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.current != nil {
		err := w.current.close()
		w.current = nil
		return err
	}
	return nil
}

// Transcript is one run's log file with escape sequences stripped.
type Transcript struct {
	mu     sync.Mutex
	file   *os.File
	buf    *bufio.Writer
	run    RunJSON
	lines  int
	err    error
	closed bool
}

// WriteLine appends one line of terraform output.
func (t *Transcript) WriteLine(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || t.err != nil {
		return
	}
	if _, err := t.buf.WriteString(xansi.Strip(line)); err != nil {
		t.err = err
		return
	}
	if n := len(line); n > 0 && (line[n-1] == '\n' || line[n-1] == '\r') {
		t.lines++
	}
}

// Lines returns the number of complete lines written.
func (t *Transcript) Lines() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lines
}

// Path returns the transcript file name inside the session directory.
func (t *Transcript) Path() string {
	return t.run.LogFile
}

func (t *Transcript) close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return t.err
	}
	t.closed = true
	if err := t.buf.Flush(); err != nil && t.err == nil {
		t.err = err
	}
	if err := t.file.Close(); err != nil && t.err == nil {
		t.err = err
	}
	return t.err
}

// sanitizeFilename replaces characters that aren't safe for filenames.
func sanitizeFilename(name string) string {
	result := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '/' || c == '\\' || c == ':' || c == '*' || c == '?' || c == '"' || c == '<' || c == '>' || c == '|' || c == ' ' {
			result[i] = '-'
		} else {
			result[i] = c
		}
	}
	return string(result)
}
