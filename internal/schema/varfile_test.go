package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVarFile(t *testing.T) {
	out := string(EncodeVarFile([]Value{
		{Name: "region", Value: "us-east-1"},
		{Name: "empty", Value: ""},
		{Name: "count", Value: "3"},
		{Name: "quoted", Value: `say "hi"`},
	}))

	assert.Regexp(t, `region\s+= "us-east-1"`, out)
	assert.Regexp(t, `count\s+= "3"`, out)
	assert.Contains(t, out, `= "say \"hi\""`)
	assert.NotContains(t, out, "empty")
	assert.Less(t, strings.Index(out, "region"), strings.Index(out, "count"), "form order is kept")
}

func TestWriteVarFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultVarFile)
	require.NoError(t, os.WriteFile(path, []byte("stale = \"1\"\n"), 0o644))

	require.NoError(t, WriteVarFile(path, []Value{{Name: "region", Value: "eu-west-1"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Regexp(t, `region\s+= "eu-west-1"`, string(data))
}

func TestWriteVarFile_BadPath(t *testing.T) {
	err := WriteVarFile(filepath.Join(t.TempDir(), "missing", "x.tfvars"), nil)
	assert.Error(t, err)
}
