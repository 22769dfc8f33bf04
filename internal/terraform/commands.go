// Package terraform runs terraform subcommands against a working directory
// and streams their output into an output.Queue.
package terraform

import (
	"sort"
)

// Command is one action the user can run. Name is what the CLI accepts,
// Args are passed to the terraform binary before the var file flag.
type Command struct {
	Name  string
	Args  []string
	Label string
}

var (
	Init        = Command{Name: "init", Args: []string{"init"}, Label: "Init"}
	Plan        = Command{Name: "plan", Args: []string{"plan"}, Label: "Plan"}
	Apply       = Command{Name: "apply", Args: []string{"apply", "-auto-approve"}, Label: "Apply"}
	DestroyPlan = Command{Name: "destroy-plan", Args: []string{"plan", "-destroy"}, Label: "Destroy Plan"}
	Destroy     = Command{Name: "destroy", Args: []string{"destroy", "-auto-approve"}, Label: "Destroy"}
)

// Commands lists the supported commands in display order.
var Commands = []Command{Init, Plan, Apply, DestroyPlan, Destroy}

// Lookup finds a command by name.
func Lookup(name string) (Command, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// Names returns the command names sorted for completion and help text.
func Names() []string {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
