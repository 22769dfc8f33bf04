package schema

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/zclconf/go-cty/cty"
)

// Path returns the location of variables.tf inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Validate checks that dir is a Terraform directory with a variables.tf.
func Validate(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't open "+dir,
			"Pass a Terraform working directory")
	}
	if !info.IsDir() {
		return errors.New(errors.ErrConfig,
			dir+" is not a directory",
			"Pass a Terraform working directory")
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		return errors.New(errors.ErrConfig,
			"Selected directory must contain "+FileName,
			"Pick the directory holding your root module")
	}
	return nil
}

// Load parses variables.tf in dir and returns its variables in file order.
func Load(dir string) ([]Variable, error) {
	path := Path(dir)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSchema,
			"Can't read "+path,
			"Check the file exists and is readable")
	}
	return Parse(src, path)
}

// Parse extracts variable blocks from HCL source. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) ([]Variable, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.WrapWithCode(diags, errors.ErrSchema,
			"Failed to load variables",
			"Fix the syntax error in "+filepath.Base(filename))
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.New(errors.ErrSchema,
			"Failed to load variables: "+filename+" is not native HCL syntax",
			"JSON variable files are not supported")
	}

	var vars []Variable
	for _, block := range body.Blocks {
		if block.Type != "variable" || len(block.Labels) != 1 {
			continue
		}
		v := Variable{Name: block.Labels[0], Type: "string"}

		if attr, ok := block.Body.Attributes["type"]; ok {
			v.Type = strings.TrimSpace(string(attr.Expr.Range().SliceBytes(src)))
		}
		v.Kind = KindOf(v.Type)

		if attr, ok := block.Body.Attributes["default"]; ok {
			v.Default = renderDefault(attr.Expr, src)
		}
		if attr, ok := block.Body.Attributes["description"]; ok {
			if val, d := attr.Expr.Value(nil); !d.HasErrors() && val.Type() == cty.String && val.IsKnown() && !val.IsNull() {
				v.Description = val.AsString()
			}
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// renderDefault turns a default expression into the text shown in the form.
// Expressions that can't be evaluated without context fall back to their
// source text.
func renderDefault(expr hclsyntax.Expression, src []byte) string {
	val, diags := expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() {
		return sourceText(expr.Range(), src)
	}
	if val.IsNull() {
		return ""
	}

	switch val.Type() {
	case cty.String:
		return val.AsString()
	case cty.Number:
		return val.AsBigFloat().Text('f', -1)
	case cty.Bool:
		return strconv.FormatBool(val.True())
	default:
		return strings.TrimSpace(string(hclwrite.TokensForValue(val).Bytes()))
	}
}

func sourceText(rng hcl.Range, src []byte) string {
	return strings.TrimSpace(string(rng.SliceBytes(src)))
}
