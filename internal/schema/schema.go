// Package schema reads the input variables of a Terraform working directory
// and writes the values a user entered back out as a var file.
package schema

import (
	"strings"
)

// FileName is the file the variable schema is read from.
const FileName = "variables.tf"

// Kind selects the input widget used for a variable.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "other"
	}
}

// Variable is one `variable` block from variables.tf.
type Variable struct {
	Name        string
	Type        string // type expression as written, "string" when omitted
	Kind        Kind
	Default     string
	Description string
}

// Value is a variable name paired with the text the user entered.
type Value struct {
	Name  string
	Value string
}

// KindOf classifies a type expression. Checks run in order, so
// "map(string)" is a string and "list(number)" is a number.
func KindOf(typeExpr string) Kind {
	switch {
	case strings.Contains(typeExpr, "string"):
		return KindString
	case strings.Contains(typeExpr, "number"):
		return KindNumber
	case strings.Contains(typeExpr, "bool"):
		return KindBool
	default:
		return KindOther
	}
}
