package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rileyhilliard/tfui/internal/config"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/logs"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const runVariables = `
variable "region" {
  type    = string
  default = "us-east-1"
}

variable "replicas" {
  type    = number
  default = 2
}
`

func fakeTerraform(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "terraform")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

// syncBuffer lets the test read output while runHeadless writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func headlessConfig(bin string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Terraform.Binary = bin
	return cfg
}

func TestRunHeadless_StreamsOutput(t *testing.T) {
	dir := terraformDir(t, runVariables)
	bin := fakeTerraform(t, `printf 'Refreshing...\r'
printf 'done\n'
echo "args: $@"`)

	var out bytes.Buffer
	code, err := runHeadless(context.Background(), headlessOptions{
		Command: "plan",
		Dir:     dir,
		Out:     &out,
		Config:  headlessConfig(bin),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	got := out.String()
	assert.Contains(t, got, "Refreshing...\r\x1b[2Kdone\n")
	assert.Contains(t, got, "args: plan -var-file "+filepath.Join(dir, "gui_auto.tfvars"))
	assert.Contains(t, got, "✓ plan finished in")
}

func TestRunHeadless_WritesVarFile(t *testing.T) {
	dir := terraformDir(t, runVariables)
	bin := fakeTerraform(t, "exit 0")

	var out bytes.Buffer
	_, err := runHeadless(context.Background(), headlessOptions{
		Command: "apply",
		Dir:     dir,
		Vars:    []string{"region=eu-west-1"},
		Out:     &out,
		Config:  headlessConfig(bin),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, schema.DefaultVarFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"eu-west-1"`)
	assert.Contains(t, string(data), `"2"`)
}

func TestRunHeadless_ExitCode(t *testing.T) {
	dir := terraformDir(t, runVariables)
	bin := fakeTerraform(t, "echo 'Error: boom' >&2\nexit 3")

	var out bytes.Buffer
	code, err := runHeadless(context.Background(), headlessOptions{
		Command: "destroy",
		Dir:     dir,
		Out:     &out,
		Config:  headlessConfig(bin),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, code)
	assert.Contains(t, out.String(), "Error: boom")
	assert.Contains(t, out.String(), "destroy failed with exit code 3")
}

func TestRunHeadless_Errors(t *testing.T) {
	dir := terraformDir(t, runVariables)

	tests := []struct {
		name string
		opts headlessOptions
		code string
		msg  string
	}{
		{
			name: "unknown command",
			opts: headlessOptions{Command: "refresh", Dir: dir},
			code: errors.ErrConfig,
			msg:  "Unknown command 'refresh'",
		},
		{
			name: "missing variables.tf",
			opts: headlessOptions{Command: "plan", Dir: t.TempDir()},
			code: errors.ErrConfig,
		},
		{
			name: "unknown variable",
			opts: headlessOptions{Command: "plan", Dir: dir, Vars: []string{"zone=a"}},
			code: errors.ErrConfig,
			msg:  "Unknown variable 'zone'",
		},
		{
			name: "missing binary",
			opts: headlessOptions{Command: "plan", Dir: dir},
			code: errors.ErrExec,
			msg:  "Couldn't start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tt.opts.Out = &out
			tt.opts.Config = headlessConfig(filepath.Join(t.TempDir(), "no-such-terraform"))

			_, err := runHeadless(context.Background(), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestRunHeadless_Transcript(t *testing.T) {
	dir := terraformDir(t, runVariables)
	bin := fakeTerraform(t, `printf '\033[32mApply complete!\033[0m\n'`)

	cfg := headlessConfig(bin)
	cfg.Logs.Enabled = true
	cfg.Logs.Dir = t.TempDir()

	var out bytes.Buffer
	code, err := runHeadless(context.Background(), headlessOptions{
		Command: "apply",
		Dir:     dir,
		Out:     &out,
		Config:  cfg,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	sessions, err := logs.ListSessions(cfg.Logs.Dir)
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	matches, err := filepath.Glob(filepath.Join(sessions[0].Path, "*apply*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Apply complete!")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestRunHeadless_ContextCancel(t *testing.T) {
	dir := terraformDir(t, runVariables)
	bin := fakeTerraform(t, "echo started\nexec sleep 30")

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan struct{})
	var code int
	go func() {
		defer close(done)
		code, _ = runHeadless(ctx, headlessOptions{
			Command: "apply",
			Dir:     dir,
			Out:     &out,
			Config:  headlessConfig(bin),
		})
	}()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "started") }, 5*time.Second, 10*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "apply stopped after")
}
