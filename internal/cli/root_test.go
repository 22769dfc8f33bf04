package cli

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  stderrors.New(`unknown command "foo" for "tfui"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  stderrors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  stderrors.New("variables.tf not found"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  stderrors.New(`unknown command "plan" for "tfui"`),
			want: "plan",
		},
		{
			name: "command with hyphen",
			err:  stderrors.New(`unknown command "destroy-plan" for "tfui"`),
			want: "destroy-plan",
		},
		{
			name: "no quotes returns empty",
			err:  stderrors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  stderrors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestExitCodeError(t *testing.T) {
	var err error = &exitCodeError{code: 2}

	var target *exitCodeError
	require.True(t, stderrors.As(err, &target))
	assert.Equal(t, 2, target.code)
	assert.Contains(t, err.Error(), "code 2")
}

func terraformDir(t *testing.T, variables string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, schema.FileName), []byte(variables), 0o644))
	return dir
}

func TestResolveDir(t *testing.T) {
	dir := terraformDir(t, "")
	noPicker := func(string, func(string) error) (string, error) {
		t.Fatal("picker should not be shown")
		return "", nil
	}

	t.Run("argument", func(t *testing.T) {
		got, err := resolveDir(dir, true, noPicker)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("relative argument becomes absolute", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(filepath.Dir(dir)))
		defer os.Chdir(wd)

		got, err := resolveDir(filepath.Base(dir), false, noPicker)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, filepath.Base(dir), filepath.Base(got))
	})

	t.Run("missing variables.tf", func(t *testing.T) {
		_, err := resolveDir(t.TempDir(), true, noPicker)
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("no argument without a terminal", func(t *testing.T) {
		_, err := resolveDir("", false, noPicker)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No Terraform directory given")
	})

	t.Run("picker", func(t *testing.T) {
		got, err := resolveDir("", true, func(start string, validate func(string) error) (string, error) {
			assert.NotEmpty(t, start)
			assert.Error(t, validate(t.TempDir()))
			return dir, nil
		})
		require.NoError(t, err)
		assert.Equal(t, dir, got)
	})

	t.Run("picker cancelled", func(t *testing.T) {
		got, err := resolveDir("", true, func(string, func(string) error) (string, error) {
			return "", nil
		})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
