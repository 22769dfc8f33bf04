package config

import (
	"sort"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .tfui.yaml configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Terraform TerraformConfig `yaml:"terraform" mapstructure:"terraform"`
	UI        UIConfig        `yaml:"ui" mapstructure:"ui"`
	Logs      LogsConfig      `yaml:"logs" mapstructure:"logs"`
}

// TerraformConfig controls how terraform is invoked.
type TerraformConfig struct {
	// Binary is the terraform executable (name on PATH or absolute path).
	// Set it to "tofu" to drive OpenTofu instead.
	Binary string `yaml:"binary" mapstructure:"binary"`

	// VarFile is written into the working directory before every command and
	// passed with -var-file.
	VarFile string `yaml:"var_file" mapstructure:"var_file"`

	// Env contains extra environment variables for the terraform process.
	Env map[string]string `yaml:"env" mapstructure:"env"`
}

// UIConfig controls the terminal UI.
type UIConfig struct {
	// RenderInterval is how often queued output is drained into the console.
	RenderInterval time.Duration `yaml:"render_interval" mapstructure:"render_interval"`

	// Watch reloads the variable form when variables.tf changes.
	Watch bool `yaml:"watch" mapstructure:"watch"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// LogsConfig controls run transcripts.
type LogsConfig struct {
	// Enabled writes a transcript of every command.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Dir holds one directory per session. Supports ~.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// KeepRuns keeps only the last N sessions per working directory (0 = unlimited).
	KeepRuns int `yaml:"keep_runs" mapstructure:"keep_runs"`

	// KeepDays deletes sessions older than N days (0 = unlimited).
	KeepDays int `yaml:"keep_days" mapstructure:"keep_days"`

	// MaxSizeMB deletes the oldest sessions once the total exceeds N megabytes (0 = unlimited).
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Terraform: TerraformConfig{
			Binary:  "terraform",
			VarFile: "gui_auto.tfvars",
		},
		UI: UIConfig{
			RenderInterval: 50 * time.Millisecond,
			Watch:          true,
			Color:          "auto",
		},
		Logs: LogsConfig{
			Enabled:  false,
			Dir:      "~/.tfui/logs",
			KeepRuns: 20,
		},
	}
}

// EnvList returns Terraform.Env as sorted KEY=VALUE pairs.
func (c TerraformConfig) EnvList() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+c.Env[k])
	}
	return out
}
