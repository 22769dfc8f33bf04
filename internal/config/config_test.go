package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "terraform", cfg.Terraform.Binary)
	assert.Equal(t, "gui_auto.tfvars", cfg.Terraform.VarFile)
	assert.Equal(t, 50*time.Millisecond, cfg.UI.RenderInterval)
	assert.True(t, cfg.UI.Watch)
	assert.Equal(t, "auto", cfg.UI.Color)
	assert.False(t, cfg.Logs.Enabled)
	assert.Equal(t, "~/.tfui/logs", cfg.Logs.Dir)
	assert.NoError(t, Validate(cfg))
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
version: 1
terraform:
  binary: tofu
  var_file: ui.tfvars
  env:
    TF_LOG: DEBUG
    TF_VAR_region: eu-west-1
ui:
  render_interval: 100ms
  watch: false
  color: never
logs:
  enabled: true
  dir: /tmp/tfui-logs
  keep_runs: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tofu", cfg.Terraform.Binary)
	assert.Equal(t, "ui.tfvars", cfg.Terraform.VarFile)
	assert.Equal(t, map[string]string{"TF_LOG": "DEBUG", "TF_VAR_region": "eu-west-1"}, cfg.Terraform.Env)
	assert.Equal(t, 100*time.Millisecond, cfg.UI.RenderInterval)
	assert.False(t, cfg.UI.Watch)
	assert.Equal(t, "never", cfg.UI.Color)
	assert.True(t, cfg.Logs.Enabled)
	assert.Equal(t, "/tmp/tfui-logs", cfg.Logs.Dir)
	assert.Equal(t, 5, cfg.Logs.KeepRuns)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "terraform:\n  binary: /usr/local/bin/terraform\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/terraform", cfg.Terraform.Binary)
	assert.Equal(t, "gui_auto.tfvars", cfg.Terraform.VarFile)
	assert.Equal(t, 50*time.Millisecond, cfg.UI.RenderInterval)
	assert.True(t, cfg.UI.Watch)
	assert.Empty(t, cfg.Terraform.Env)
}

func TestLoad_TildeInLogsDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, t.TempDir(), "logs:\n  dir: ~/tfui-test-logs\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "tfui-test-logs"), cfg.Logs.Dir)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "ui: [unclosed\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "ui:\n  render_interval: soon\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid config format")
	})
}

func TestFind(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		workDir := t.TempDir()
		writeConfig(t, workDir, "version: 1\n")
		explicit := writeConfig(t, t.TempDir(), "version: 1\n")

		got, err := Find(explicit, workDir)
		require.NoError(t, err)
		assert.Equal(t, explicit, got)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"), "")
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("working directory", func(t *testing.T) {
		workDir := t.TempDir()
		want := writeConfig(t, workDir, "version: 1\n")

		got, err := Find("", workDir)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, path, err := LoadOrDefault("", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestEnvList(t *testing.T) {
	tc := TerraformConfig{Env: map[string]string{"TF_LOG": "INFO", "AWS_PROFILE": "dev"}}

	assert.Equal(t, []string{"AWS_PROFILE=dev", "TF_LOG=INFO"}, tc.EnvList())
	assert.Empty(t, TerraformConfig{}.EnvList())
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/logs", filepath.Join(home, "logs")},
		{"/abs/path", "/abs/path"},
		{"~other/logs", "~other/logs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTilde(tt.in))
		})
	}
}
