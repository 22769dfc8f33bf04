package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logger"
	"github.com/rileyhilliard/tfui/internal/terraform"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	noColor bool
	verbose bool
)

// rootCmd opens the full-screen UI for a Terraform directory.
var rootCmd = &cobra.Command{
	Use:   "tfui [dir]",
	Short: "Terminal front-end for Terraform",
	Long: `tfui reads variables.tf from a Terraform working directory, builds an
input form from it and runs terraform with the entered values, streaming
colorized output into a scrollable console.

Without a directory argument an interactive picker is shown.

Examples:
  tfui ./infra
  tfui run plan ./infra
  tfui run apply --var region=eu-west-1 ./infra`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			os.Setenv(logger.DebugEnv, "1")
		}
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir string
		if len(args) > 0 {
			dir = args[0]
		}
		return openCommand(dir)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .tfui.yaml in the working directory)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// exitCodeError carries terraform's exit code out of a headless run.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("terraform exited with code %d", e.code)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *exitCodeError
	if stderrors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}

	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			if _, ok := terraform.Lookup(name); ok {
				err = errors.New(errors.ErrConfig,
					fmt.Sprintf("'%s' is a terraform command, not a tfui command", name),
					fmt.Sprintf("Run it with: tfui run %s [dir]", name))
			}
		}
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// isUnknownCommandError reports whether cobra rejected the command line.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the quoted name out of cobra's
// `unknown command "x" for "tfui"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// applyColorMode sets the lipgloss profile for the ui.color setting. The
// --no-color flag wins over the config file.
func applyColorMode(mode string) {
	if noColor {
		return
	}
	switch mode {
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// loadConfig finds and validates the config for a Terraform directory.
func loadConfig(dir string) (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile, dir)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if path != "" {
		logger.Default().Debug("using config %s", path)
	}
	applyColorMode(cfg.UI.Color)
	return cfg, nil
}
