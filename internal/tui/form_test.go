package tui

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleVars() []schema.Variable {
	return []schema.Variable{
		{Name: "region", Type: "string", Kind: schema.KindString, Default: "us-east-1"},
		{Name: "instance_count", Type: "number", Kind: schema.KindNumber, Default: "2"},
		{Name: "enable_logs", Type: "bool", Kind: schema.KindBool, Default: "TRUE"},
		{Name: "settings", Type: "any", Kind: schema.KindOther, Default: `{ a = 1 }`},
		{Name: "name", Type: "string", Kind: schema.KindString},
	}
}

func TestNewVarForm_Defaults(t *testing.T) {
	f := NewVarForm(sampleVars())

	require.NotNil(t, f.Form())
	assert.Equal(t, []schema.Value{
		{Name: "region", Value: "us-east-1"},
		{Name: "instance_count", Value: "2"},
		{Name: "enable_logs", Value: "true"},
		{Name: "settings", Value: ""},
		{Name: "name", Value: ""},
	}, f.Values())
}

func TestNewVarForm_Empty(t *testing.T) {
	f := NewVarForm(nil)

	assert.Nil(t, f.Form())
	assert.Empty(t, f.Values())
}

func TestVarForm_SetAndRebuild(t *testing.T) {
	f := NewVarForm(sampleVars())
	before := f.Form()

	assert.True(t, f.Set("region", "eu-west-1"))
	assert.False(t, f.Set("missing", "x"))
	f.Rebuild()

	assert.NotSame(t, before, f.Form())
	assert.Equal(t, "eu-west-1", f.Values()[0].Value)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, labelWidth, runewidth.StringWidth(Label("region")))
	assert.Equal(t, "region:", Label("region")[:7])

	// Wide runes count as two cells.
	assert.Equal(t, labelWidth, runewidth.StringWidth(Label("名前")))
}

func TestValidateNumber(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{"42", false},
		{"-3.5", false},
		{" 7 ", false},
		{"[1, 2]", false},
		{"ten", true},
		{"1e", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := validateNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
