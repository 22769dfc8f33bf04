package terraform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logger"
	"github.com/rileyhilliard/tfui/internal/output"
	"github.com/rileyhilliard/tfui/internal/ui"
)

// Options configures how terraform is invoked.
type Options struct {
	Binary  string   // executable name or path, "terraform" when empty
	Dir     string   // working directory
	VarFile string   // passed as -var-file on every command
	Env     []string // extra KEY=VALUE pairs appended to the environment
}

// Result describes a finished run.
type Result struct {
	Command  Command
	ExitCode int
	Duration time.Duration
	Err      error // set when the process could not be waited on
	Stopped  bool  // terminated by Stop or by a newer Start
}

// Success reports whether terraform exited zero.
func (r Result) Success() bool {
	return r.Err == nil && !r.Stopped && r.ExitCode == 0
}

// StatusLine is the colored line appended to the console when a run ends.
func (r Result) StatusLine() string {
	timing := ui.FormatDuration(r.Duration)
	switch {
	case r.Stopped:
		return fmt.Sprintf("\x1b[33m%s %s stopped after %s\x1b[0m\n", ui.SymbolSkipped, r.Command.Name, timing)
	case r.Success():
		return fmt.Sprintf("\x1b[32m%s %s finished in %s\x1b[0m\n", ui.SymbolSuccess, r.Command.Name, timing)
	default:
		return fmt.Sprintf("\x1b[31m%s %s failed with exit code %d after %s\x1b[0m\n", ui.SymbolFail, r.Command.Name, r.ExitCode, timing)
	}
}

// Run is a started terraform process.
type Run struct {
	// ID tags every line the run pushes. IDs increase per Runner from 1.
	ID      uint64
	Command Command
	Started time.Time

	cmd     *exec.Cmd
	done    chan struct{}
	result  Result
	stopped bool
	mu      sync.Mutex
}

// Done is closed once the process has exited and both pipes are drained.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run finishes and returns its result.
func (r *Run) Wait() Result {
	<-r.done
	return r.result
}

func (r *Run) finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// terminate asks the process to exit without waiting for it.
func (r *Run) terminate() {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
	if r.cmd.Process != nil {
		if err := terminate(r.cmd); err != nil {
			logger.Default().Debug("terminate %s: %v", r.Command.Name, err)
		}
	}
}

// Runner starts terraform processes one at a time. Output lines from both
// pipes go to the queue; the final status line follows them.
type Runner struct {
	opts  Options
	queue *output.Queue
	log   logger.Logger

	mu      sync.Mutex
	current *Run
	seq     uint64
}

// NewRunner creates a runner that pushes output into q.
func NewRunner(opts Options, q *output.Queue) *Runner {
	if opts.Binary == "" {
		opts.Binary = "terraform"
	}
	return &Runner{opts: opts, queue: q, log: logger.Default()}
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(l logger.Logger) {
	r.log = l
}

// Options returns the invocation settings.
func (r *Runner) Options() Options {
	return r.opts
}

// Args returns the full argument list for c.
func (r *Runner) Args(c Command) []string {
	args := append([]string{}, c.Args...)
	if r.opts.VarFile != "" {
		args = append(args, "-var-file", r.opts.VarFile)
	}
	return args
}

// Start launches c. A run that is still in progress is sent SIGTERM first;
// Start does not wait for it to exit. Cancelling ctx terminates the new run.
func (r *Runner) Start(ctx context.Context, c Command) (*Run, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev := r.current; prev != nil && !prev.finished() {
		r.log.Debug("terminating running %s", prev.Command.Name)
		prev.terminate()
	}

	cmd := exec.CommandContext(ctx, r.opts.Binary, r.Args(c)...)
	cmd.Dir = r.opts.Dir
	if len(r.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), r.opts.Env...)
	}
	setProcAttr(cmd)

	r.seq++
	run := &Run{
		ID:      r.seq,
		Command: c,
		cmd:     cmd,
		done:    make(chan struct{}),
	}
	cmd.Cancel = func() error {
		run.mu.Lock()
		run.stopped = true
		run.mu.Unlock()
		return terminate(cmd)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't create stdout pipe",
			"This shouldn't happen - please report this bug!")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't create stderr pipe",
			"This shouldn't happen - please report this bug!")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Couldn't start %s %s", r.opts.Binary, c.Name),
			"Install terraform or set terraform.binary in .tfui.yaml")
	}
	r.log.Debug("started %s %v (pid %d) in %s", r.opts.Binary, cmd.Args[1:], cmd.Process.Pid, r.opts.Dir)

	run.Started = time.Now()
	r.current = run

	var pumps sync.WaitGroup
	pumps.Add(2)
	go func() {
		defer pumps.Done()
		output.Pump(stdout, output.Stdout, run.ID, r.queue)
	}()
	go func() {
		defer pumps.Done()
		output.Pump(stderr, output.Stderr, run.ID, r.queue)
	}()

	go r.wait(run, &pumps)
	return run, nil
}

// wait reaps the process once both pumps hit EOF. exec.Cmd requires pipe
// reads to finish before Wait.
func (r *Runner) wait(run *Run, pumps *sync.WaitGroup) {
	pumps.Wait()
	waitErr := run.cmd.Wait()

	run.mu.Lock()
	stopped := run.stopped
	run.mu.Unlock()

	res := Result{
		Command:  run.Command,
		Duration: time.Since(run.Started),
		Stopped:  stopped,
	}
	if run.cmd.ProcessState != nil {
		res.ExitCode = run.cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		if _, ok := waitErr.(*exec.ExitError); !ok && !stopped {
			res.Err = errors.WrapWithCode(waitErr, errors.ErrExec,
				"terraform "+run.Command.Name+" did not exit cleanly", "")
		}
	}
	r.log.Debug("%s exited: code=%d stopped=%v after %s", run.Command.Name, res.ExitCode, stopped, res.Duration)

	run.result = res
	r.mu.Lock()
	superseded := r.current != run
	r.mu.Unlock()
	if !superseded {
		r.queue.Push(output.QueuedLine{Content: res.StatusLine(), Source: output.Stdout, Run: run.ID})
	}
	close(run.done)
}

// Stop terminates the current run, if any.
func (r *Runner) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || r.current.finished() {
		return false
	}
	r.current.terminate()
	return true
}

// Running reports whether a process is in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current != nil && !r.current.finished()
}

// Current returns the most recent run, or nil.
func (r *Runner) Current() *Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
