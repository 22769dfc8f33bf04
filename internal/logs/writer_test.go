package logs

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogWriter(t *testing.T) {
	base := t.TempDir()

	w, err := NewLogWriter(base, "/work/network stack")
	require.NoError(t, err)
	defer w.Close()

	assert.DirExists(t, w.Dir())
	assert.True(t, strings.HasPrefix(filepath.Base(w.Dir()), "network-stack-"))
	assert.Equal(t, base, w.BaseDir())
}

func TestLogWriter_Transcript(t *testing.T) {
	w, err := NewLogWriter(t.TempDir(), "/work/app")
	require.NoError(t, err)
	defer w.Close()

	tr, err := w.Begin("plan", []string{"plan", "-var-file", "gui_auto.tfvars"})
	require.NoError(t, err)

	tr.WriteLine("\x1b[1m\x1b[32mNo changes.\x1b[0m\n")
	tr.WriteLine("Refreshing state...\n")
	tr.WriteLine("partial")
	assert.Equal(t, 2, tr.Lines())

	require.NoError(t, w.Finish(tr, RunResult{ExitCode: 0, Duration: 1200 * time.Millisecond}))

	data, err := os.ReadFile(filepath.Join(w.Dir(), tr.Path()))
	require.NoError(t, err)
	assert.Equal(t, "No changes.\nRefreshing state...\npartial", string(data))
	assert.Contains(t, tr.Path(), "01-plan-")
}

func TestLogWriter_Summary(t *testing.T) {
	w, err := NewLogWriter(t.TempDir(), "/work/app")
	require.NoError(t, err)
	defer w.Close()

	first, err := w.Begin("init", []string{"init"})
	require.NoError(t, err)
	first.WriteLine("ok\n")
	require.NoError(t, w.Finish(first, RunResult{ExitCode: 0, Summary: "initialized"}))

	second, err := w.Begin("apply", []string{"apply", "-auto-approve"})
	require.NoError(t, err)
	require.NoError(t, w.Finish(second, RunResult{ExitCode: 1, Err: stderrors.New("boom")}))

	third, err := w.Begin("destroy", nil)
	require.NoError(t, err)
	require.NoError(t, w.Finish(third, RunResult{ExitCode: -1, Stopped: true}))

	data, err := os.ReadFile(filepath.Join(w.Dir(), "summary.json"))
	require.NoError(t, err)

	var summary SummaryJSON
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, "app", summary.Project)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Runs, 3)
	assert.Equal(t, "init", summary.Runs[0].Command)
	assert.Equal(t, 1, summary.Runs[0].Lines)
	assert.Equal(t, "initialized", summary.Runs[0].Summary)
	assert.Equal(t, "boom", summary.Runs[1].Error)
	assert.True(t, summary.Runs[2].Stopped)
	assert.Contains(t, summary.Runs[1].LogFile, "02-apply-")
}

func TestLogWriter_BeginClosesPrevious(t *testing.T) {
	w, err := NewLogWriter(t.TempDir(), "/work/app")
	require.NoError(t, err)
	defer w.Close()

	first, err := w.Begin("plan", nil)
	require.NoError(t, err)
	first.WriteLine("before\n")

	_, err = w.Begin("apply", nil)
	require.NoError(t, err)

	first.WriteLine("after close\n")
	data, err := os.ReadFile(filepath.Join(w.Dir(), first.Path()))
	require.NoError(t, err)
	assert.Equal(t, "before\n", string(data))
}

func TestLogWriter_Closed(t *testing.T) {
	w, err := NewLogWriter(t.TempDir(), "/work/app")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = w.Begin("plan", nil)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b-c-d", sanitizeFilename("a/b:c d"))
	assert.Equal(t, "destroy-plan", sanitizeFilename("destroy-plan"))
}
