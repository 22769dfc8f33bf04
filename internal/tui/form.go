package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-runewidth"
	"github.com/rileyhilliard/tfui/internal/schema"
)

// labelWidth is the column labels are padded to.
const labelWidth = 25

// unsetOption is the bool choice that leaves a variable out of the var file.
const unsetOption = "(unset)"

// VarForm is the input form generated from variables.tf. Field values are
// bound to the values slice, so they survive form rebuilds.
type VarForm struct {
	vars   []schema.Variable
	values []*string
	form   *huh.Form
}

// NewVarForm builds a form for vars prefilled with their defaults.
// Variables of an unrecognised type start empty.
func NewVarForm(vars []schema.Variable) *VarForm {
	values := make([]*string, len(vars))
	for i, v := range vars {
		val := v.Default
		if v.Kind == schema.KindOther {
			val = ""
		}
		if v.Kind == schema.KindBool {
			val = strings.ToLower(val)
		}
		values[i] = &val
	}
	f := &VarForm{vars: vars, values: values}
	f.form = f.build()
	return f
}

// build creates the huh form over the current values.
func (f *VarForm) build() *huh.Form {
	if len(f.vars) == 0 {
		return nil
	}

	fields := make([]huh.Field, 0, len(f.vars))
	for i, v := range f.vars {
		fields = append(fields, field(v, f.values[i]))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithShowHelp(false).
		WithShowErrors(true)
}

func field(v schema.Variable, value *string) huh.Field {
	title := Label(v.Name)
	switch v.Kind {
	case schema.KindBool:
		return huh.NewSelect[string]().
			Key(v.Name).
			Title(title).
			Description(v.Description).
			Options(
				huh.NewOption(unsetOption, ""),
				huh.NewOption("true", "true"),
				huh.NewOption("false", "false"),
			).
			Inline(true).
			Value(value)
	case schema.KindNumber:
		return huh.NewInput().
			Key(v.Name).
			Title(title).
			Description(v.Description).
			Placeholder(v.Type).
			Validate(validateNumber).
			Value(value)
	default:
		return huh.NewInput().
			Key(v.Name).
			Title(title).
			Description(v.Description).
			Placeholder(v.Type).
			Value(value)
	}
}

// Label formats a variable name as a form label padded to labelWidth cells.
func Label(name string) string {
	return runewidth.FillRight(name+":", labelWidth)
}

// validateNumber accepts empty input or a decimal number. Collection types
// such as list(number) are left for terraform to check.
func validateNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

// Form returns the huh form, or nil when there are no variables.
func (f *VarForm) Form() *huh.Form {
	return f.form
}

// SetForm stores the form returned by huh's Update.
func (f *VarForm) SetForm(form *huh.Form) {
	f.form = form
}

// Rebuild replaces a completed form with a fresh one holding the same values.
func (f *VarForm) Rebuild() {
	f.form = f.build()
}

// Variables returns the schema the form was built from.
func (f *VarForm) Variables() []schema.Variable {
	return f.vars
}

// Values returns the entered values in form order.
func (f *VarForm) Values() []schema.Value {
	out := make([]schema.Value, len(f.vars))
	for i, v := range f.vars {
		out[i] = schema.Value{Name: v.Name, Value: *f.values[i]}
	}
	return out
}

// Set overwrites the value of the named variable.
func (f *VarForm) Set(name, value string) bool {
	for i, v := range f.vars {
		if v.Name == name {
			*f.values[i] = value
			return true
		}
	}
	return false
}
