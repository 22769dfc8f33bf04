package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logger"
	"github.com/rileyhilliard/tfui/internal/logs"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/rileyhilliard/tfui/internal/tui"
	"github.com/rileyhilliard/tfui/internal/ui"
	"github.com/rileyhilliard/tfui/internal/watch"
)

// openCommand resolves the working directory and runs the TUI in it.
func openCommand(dir string) error {
	interactive := ui.Interactive()
	dir, err := resolveDir(dir, interactive, ui.PickDirectory)
	if err != nil {
		return err
	}
	if dir == "" {
		fmt.Println("Cancelled.")
		return nil
	}
	if !interactive {
		return errors.New(errors.ErrConfig,
			"The interactive UI needs a terminal",
			fmt.Sprintf("Use 'tfui run <command> %s' when output is piped or in CI", dir))
	}

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	vars, err := schema.Load(dir)
	if err != nil {
		return err
	}

	log := logger.NewEnvLogger("[tfui]")
	opts := tui.Options{
		Dir:    dir,
		Config: cfg,
		Vars:   vars,
		Logger: log,
	}

	if cfg.UI.Watch {
		w, err := watch.NewFileWatcher(dir, schema.FileName)
		if err != nil {
			// Editing still works; the form just needs a manual reload.
			log.Warn("%v", err)
		} else {
			defer w.Close()
			opts.Changes = w
		}
	}

	lw, err := openLogWriter(cfg.Logs, dir)
	if err != nil {
		log.Warn("%v", err)
	}
	opts.Logs = lw

	return tui.Run(opts)
}

// resolveDir returns the absolute Terraform directory from the argument or,
// in a terminal, the picker. An empty result with no error means the picker
// was cancelled.
func resolveDir(arg string, interactive bool, pick func(string, func(string) error) (string, error)) (string, error) {
	if arg == "" {
		if !interactive {
			return "", errors.New(errors.ErrConfig,
				"No Terraform directory given",
				"Pass it as an argument: tfui <dir>")
		}
		start, err := os.Getwd()
		if err != nil {
			start = "."
		}
		picked, err := pick(start, schema.Validate)
		if err != nil || picked == "" {
			return "", err
		}
		arg = picked
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid directory: "+arg, "")
	}
	if err := schema.Validate(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// openLogWriter starts a transcript session when logs are enabled, applying
// the retention policy first. It returns nil when logs are disabled.
func openLogWriter(cfg config.LogsConfig, dir string) (*logs.LogWriter, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if err := logs.Cleanup(cfg); err != nil {
		logger.Default().Debug("log cleanup: %v", err)
	}
	return logs.NewLogWriter(cfg.Dir, dir)
}
