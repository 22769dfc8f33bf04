package schema

import (
	"os"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/zclconf/go-cty/cty"
)

// DefaultVarFile is the var file name written next to variables.tf.
const DefaultVarFile = "gui_auto.tfvars"

// EncodeVarFile renders values as tfvars. Every value is written as a quoted
// string, empty values are skipped, and order is preserved.
func EncodeVarFile(values []Value) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for _, v := range values {
		if v.Value == "" {
			continue
		}
		body.SetAttributeValue(v.Name, cty.StringVal(v.Value))
	}
	return f.Bytes()
}

// WriteVarFile replaces the file at path with the encoded values.
func WriteVarFile(path string, values []Value) error {
	if err := os.WriteFile(path, EncodeVarFile(values), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Failed to write "+path,
			"Check the directory is writable")
	}
	return nil
}
