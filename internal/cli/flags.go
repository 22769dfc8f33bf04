package cli

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/tfui/internal/errors"
	"github.com/rileyhilliard/tfui/internal/schema"
	"github.com/rileyhilliard/tfui/internal/tui"
)

// parseVarFlag splits a --var flag of the form name=value.
func parseVarFlag(flag string) (name, value string, err error) {
	name, value, ok := strings.Cut(flag, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid --var '%s'", flag),
			"Use --var name=value")
	}
	return name, value, nil
}

// varValues applies --var overrides on top of the variable defaults, the same
// values the form would start with.
func varValues(vars []schema.Variable, flags []string) ([]schema.Value, error) {
	form := tui.NewVarForm(vars)
	for _, flag := range flags {
		name, value, err := parseVarFlag(flag)
		if err != nil {
			return nil, err
		}
		if !form.Set(name, value) {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown variable '%s'", name),
				fmt.Sprintf("Variables declared in %s: %s", schema.FileName, strings.Join(variableNames(vars), ", ")))
		}
	}
	return form.Values(), nil
}

func variableNames(vars []schema.Variable) []string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}
