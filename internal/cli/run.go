package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/rileyhilliard/tfui/internal/ansi"
	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/console"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logger"
	"github.com/rileyhilliard/tfui/internal/logs"
	"github.com/rileyhilliard/tfui/internal/output"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/rileyhilliard/tfui/internal/terraform"
	"github.com/spf13/cobra"
)

var runVarFlags []string

// runCmd runs one terraform command without the full-screen UI.
var runCmd = &cobra.Command{
	Use:   "run <command> [dir]",
	Short: "Run a terraform command with streamed output",
	Long: `Write the var file and run a terraform command, streaming its output
to stdout through the same renderer the UI uses. Carriage-return progress
lines are overwritten in place.

Commands: init, plan, apply, destroy-plan, destroy.

Variables start at their defaults from variables.tf; override them with
--var. The exit code is terraform's.

Examples:
  tfui run init
  tfui run plan ./infra
  tfui run apply --var region=eu-west-1 --var replicas=3 ./infra`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeRunArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 1 {
			dir = args[1]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		code, err := runHeadless(ctx, headlessOptions{
			Command: args[0],
			Dir:     dir,
			Vars:    runVarFlags,
			Out:     cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		if code != 0 {
			return &exitCodeError{code: code}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringArrayVar(&runVarFlags, "var", nil, "set a variable (name=value, repeatable)")
	rootCmd.AddCommand(runCmd)
}

// headlessOptions configures runHeadless.
type headlessOptions struct {
	Command string
	Dir     string
	Vars    []string
	Out     io.Writer
	Config  *config.Config // loaded from Dir when nil
}

// runHeadless streams one command to opts.Out and returns terraform's exit
// code. Output is drained on the render interval like the UI does.
func runHeadless(ctx context.Context, opts headlessOptions) (int, error) {
	c, ok := terraform.Lookup(opts.Command)
	if !ok {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown command '%s'", opts.Command),
			"Available commands: "+strings.Join(terraform.Names(), ", "))
	}

	dir, err := resolveDir(opts.Dir, false, nil)
	if err != nil {
		return 0, err
	}
	cfg := opts.Config
	if cfg == nil {
		if cfg, err = loadConfig(dir); err != nil {
			return 0, err
		}
	}

	vars, err := schema.Load(dir)
	if err != nil {
		return 0, err
	}
	values, err := varValues(vars, opts.Vars)
	if err != nil {
		return 0, err
	}
	varFile := filepath.Join(dir, cfg.Terraform.VarFile)
	if err := schema.WriteVarFile(varFile, values); err != nil {
		return 0, err
	}

	queue := output.NewQueue()
	defer queue.Close()
	runner := terraform.NewRunner(terraform.Options{
		Binary:  cfg.Terraform.Binary,
		Dir:     dir,
		VarFile: varFile,
		Env:     cfg.Terraform.EnvList(),
	}, queue)

	table := ansi.DefaultStyleTable()
	surface := console.NewStreamSurface(opts.Out, table)
	switch {
	case noColor || cfg.UI.Color == "never":
		surface.SetColorProfile(termenv.Ascii)
	case cfg.UI.Color == "always":
		surface.SetColorProfile(termenv.ANSI)
	}
	renderer := console.NewRenderer(surface, table)

	lw, err := openLogWriter(cfg.Logs, dir)
	if err != nil {
		logger.Default().Warn("%v", err)
	}
	if lw != nil {
		defer lw.Close()
	}

	run, err := runner.Start(ctx, c)
	if err != nil {
		return 0, err
	}

	var transcript *logs.Transcript
	if lw != nil {
		if transcript, err = lw.Begin(c.Name, runner.Args(c)); err != nil {
			logger.Default().Warn("transcript: %v", err)
		}
	}

	var summary terraform.Summary
	drain := func(lines []output.QueuedLine) {
		for _, l := range lines {
			if transcript != nil {
				transcript.WriteLine(l.Content)
			}
			summary.ProcessLine(l.Content)
		}
		renderer.Consume(lines)
	}

	ticker := time.NewTicker(cfg.UI.RenderInterval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ticker.C:
			drain(queue.Drain())
		case <-run.Done():
			break loop
		}
	}

	res := run.Wait()
	drain(queue.DrainAll())
	renderer.Flush()

	if transcript != nil {
		if err := lw.Finish(transcript, logs.RunResult{
			ExitCode: res.ExitCode,
			Stopped:  res.Stopped,
			Duration: res.Duration,
			Err:      res.Err,
			Summary:  summary.String(),
		}); err != nil {
			logger.Default().Warn("transcript: %v", err)
		}
	}

	if res.Err != nil {
		return res.ExitCode, res.Err
	}
	if err := surface.Err(); err != nil {
		return res.ExitCode, errors.WrapWithCode(err, errors.ErrExec,
			"Couldn't write terraform output", "")
	}
	// Killed processes report -1.
	if res.ExitCode < 0 || (res.Stopped && res.ExitCode == 0) {
		return 1, nil
	}
	return res.ExitCode, nil
}
