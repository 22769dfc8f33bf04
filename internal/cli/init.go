package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/ui"
	"github.com/spf13/cobra"
)

var (
	initForce  bool
	initBinary string
	initLogs   bool
)

// initCmd writes a default .tfui.yaml
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create .tfui.yaml configuration",
	Long: `Write a .tfui.yaml with default settings into a Terraform directory
(the current directory when omitted).

Examples:
  tfui init
  tfui init ./infra --binary tofu
  tfui init --logs --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		return Init(InitOptions{
			Dir:            dir,
			Binary:         initBinary,
			Logs:           initLogs,
			Overwrite:      initForce,
			NonInteractive: !ui.Interactive(),
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().StringVar(&initBinary, "binary", "", "terraform executable (e.g. tofu)")
	initCmd.Flags().BoolVar(&initLogs, "logs", false, "enable run transcripts")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string
	Binary         string // terraform executable, default kept when empty
	Logs           bool   // enable transcripts
	Overwrite      bool   // overwrite existing config without asking
	NonInteractive bool   // never prompt
}

// Init creates a .tfui.yaml in opts.Dir.
func Init(opts InitOptions) error {
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Binary != "" {
		cfg.Terraform.Binary = opts.Binary
	}
	cfg.Logs.Enabled = opts.Logs

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(configPath, cfg, true); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n", ui.SymbolSuccess, configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  tfui             - Open the UI")
	fmt.Println("  tfui run plan    - Plan with default variables")
	return nil
}
