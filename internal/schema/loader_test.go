package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVariables = `
variable "region" {
  type        = string
  default     = "us-east-1"
  description = "AWS region"
}

variable "instance_count" {
  type    = number
  default = 3
}

variable "ratio" {
  type    = number
  default = 0.25
}

variable "enable_logs" {
  type    = bool
  default = true
}

variable "tags" {
  type    = map(string)
  default = { env = "dev" }
}

variable "zones" {
  type = list(number)
}

variable "settings" {
  type    = object({ size = number })
  default = null
}

variable "untyped" {}

locals {
  ignored = true
}
`

func writeVariables(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeVariables(t, sampleVariables)

	vars, err := Load(dir)
	require.NoError(t, err)

	want := []Variable{
		{Name: "region", Type: "string", Kind: KindString, Default: "us-east-1", Description: "AWS region"},
		{Name: "instance_count", Type: "number", Kind: KindNumber, Default: "3"},
		{Name: "ratio", Type: "number", Kind: KindNumber, Default: "0.25"},
		{Name: "enable_logs", Type: "bool", Kind: KindBool, Default: "true"},
		{Name: "tags", Type: "map(string)", Kind: KindString, Default: `{ env = "dev" }`},
		{Name: "zones", Type: "list(number)", Kind: KindNumber},
		{Name: "settings", Type: "object({ size = number })", Kind: KindNumber},
		{Name: "untyped", Type: "string", Kind: KindString},
	}
	require.Len(t, vars, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, vars[i].Name)
		assert.Equal(t, want[i].Type, vars[i].Type, vars[i].Name)
		assert.Equal(t, want[i].Kind, vars[i].Kind, vars[i].Name)
		assert.Equal(t, want[i].Description, vars[i].Description, vars[i].Name)
		if want[i].Name == "tags" {
			assert.Contains(t, vars[i].Default, `env = "dev"`)
			continue
		}
		assert.Equal(t, want[i].Default, vars[i].Default, vars[i].Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSchema))
}

func TestLoad_SyntaxError(t *testing.T) {
	dir := writeVariables(t, `variable "broken" {`)

	_, err := Load(dir)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSchema))
	assert.Contains(t, err.Error(), "Failed to load variables")
}

func TestParse_DefaultReferencingVariables(t *testing.T) {
	src := []byte(`
variable "name" {
  default = "${var.prefix}-app"
}
`)
	vars, err := Parse(src, "variables.tf")
	require.NoError(t, err)
	require.Len(t, vars, 1)
	assert.Equal(t, `"${var.prefix}-app"`, vars[0].Default)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		typeExpr string
		want     Kind
	}{
		{"string", KindString},
		{"number", KindNumber},
		{"bool", KindBool},
		{"list(string)", KindString},
		{"map(number)", KindNumber},
		{"set(bool)", KindBool},
		{"any", KindOther},
		{"list(any)", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.typeExpr, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.typeExpr))
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		assert.NoError(t, Validate(writeVariables(t, sampleVariables)))
	})

	t.Run("missing variables.tf", func(t *testing.T) {
		err := Validate(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
		assert.Contains(t, err.Error(), "must contain variables.tf")
	})

	t.Run("not a directory", func(t *testing.T) {
		dir := writeVariables(t, sampleVariables)
		err := Validate(filepath.Join(dir, FileName))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})

	t.Run("does not exist", func(t *testing.T) {
		err := Validate(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrConfig))
	})
}
