package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/tfui/internal/errors"
)

// ColorModes lists the accepted ui.color values.
var ColorModes = []string{"auto", "always", "never"}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but tfui only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade tfui to the latest release")
	}

	if strings.TrimSpace(cfg.Terraform.Binary) == "" {
		return errors.New(errors.ErrConfig,
			"terraform.binary can't be empty",
			"Set it to 'terraform' or the full path to the binary")
	}

	if err := validateVarFile(cfg.Terraform.VarFile); err != nil {
		return err
	}

	if cfg.UI.RenderInterval <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("ui.render_interval must be positive, got %s", cfg.UI.RenderInterval),
			"Use a duration like 50ms")
	}

	if !validColor(cfg.UI.Color) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown ui.color '%s'", cfg.UI.Color),
			"Use one of: "+strings.Join(ColorModes, ", "))
	}

	if cfg.Logs.KeepRuns < 0 || cfg.Logs.KeepDays < 0 || cfg.Logs.MaxSizeMB < 0 {
		return errors.New(errors.ErrConfig,
			"Log retention values can't be negative",
			"Use 0 to disable a retention rule")
	}

	if cfg.Logs.Enabled && cfg.Logs.Dir == "" {
		return errors.New(errors.ErrConfig,
			"logs.enabled is set but logs.dir is empty",
			"Set logs.dir, for example ~/.tfui/logs")
	}

	return nil
}

// validateVarFile requires a plain file name inside the working directory.
func validateVarFile(name string) error {
	if name == "" {
		return errors.New(errors.ErrConfig,
			"terraform.var_file can't be empty",
			"Use the default: gui_auto.tfvars")
	}
	if filepath.IsAbs(name) || filepath.Base(name) != name {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("terraform.var_file '%s' must be a file name, not a path", name),
			"It is always written inside the Terraform directory")
	}
	if !strings.HasSuffix(name, ".tfvars") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("terraform.var_file '%s' must end in .tfvars", name),
			"Terraform only reads var files with a .tfvars extension")
	}
	return nil
}

func validColor(mode string) bool {
	for _, m := range ColorModes {
		if mode == m {
			return true
		}
	}
	return false
}
