package terraform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// Summary collects the outcome terraform reports in its output: planned or
// applied resource counts and error diagnostics.
type Summary struct {
	Add     int
	Change  int
	Destroy int

	// Counted is set once a plan or apply line with counts was seen.
	Counted     bool
	NoChanges   bool
	Initialized bool
	Errors      []string
}

// Patterns for terraform's human-readable output
var (
	// Plan: 1 to add, 2 to change, 0 to destroy.
	planPattern = regexp.MustCompile(`^Plan: (\d+) to add, (\d+) to change, (\d+) to destroy\.`)
	// Apply complete! Resources: 1 added, 0 changed, 0 destroyed.
	applyPattern = regexp.MustCompile(`^Apply complete! Resources: (\d+) added, (\d+) changed, (\d+) destroyed\.`)
	// Destroy complete! Resources: 3 destroyed.
	destroyPattern = regexp.MustCompile(`^Destroy complete! Resources: (\d+) destroyed\.`)
	// Error: Invalid value for variable
	errorPattern = regexp.MustCompile(`^Error: (.+)`)
)

// ProcessLine updates the summary from one output line. Escape sequences and
// the box-drawing gutter terraform puts around diagnostics are ignored.
func (s *Summary) ProcessLine(line string) {
	line = strings.TrimSpace(xansi.Strip(line))
	line = strings.TrimSpace(strings.TrimPrefix(line, "│"))
	line = strings.TrimSpace(strings.TrimPrefix(line, "╷"))

	switch {
	case line == "":
	case strings.HasPrefix(line, "No changes."):
		s.NoChanges = true
	case strings.HasPrefix(line, "Terraform has been successfully initialized!"):
		s.Initialized = true
	default:
		if m := planPattern.FindStringSubmatch(line); m != nil {
			s.setCounts(m[1], m[2], m[3])
		} else if m := applyPattern.FindStringSubmatch(line); m != nil {
			s.setCounts(m[1], m[2], m[3])
		} else if m := destroyPattern.FindStringSubmatch(line); m != nil {
			s.setCounts("0", "0", m[1])
		} else if m := errorPattern.FindStringSubmatch(line); m != nil {
			s.Errors = append(s.Errors, m[1])
		}
	}
}

func (s *Summary) setCounts(add, change, destroy string) {
	s.Add, _ = strconv.Atoi(add)
	s.Change, _ = strconv.Atoi(change)
	s.Destroy, _ = strconv.Atoi(destroy)
	s.Counted = true
}

// String is a one-line description for status bars, or "" when nothing
// recognisable was seen.
func (s Summary) String() string {
	var parts []string
	switch {
	case s.Counted:
		parts = append(parts, fmt.Sprintf("+%d ~%d -%d", s.Add, s.Change, s.Destroy))
	case s.NoChanges:
		parts = append(parts, "no changes")
	case s.Initialized:
		parts = append(parts, "initialized")
	}
	switch len(s.Errors) {
	case 0:
	case 1:
		parts = append(parts, "1 error")
	default:
		parts = append(parts, fmt.Sprintf("%d errors", len(s.Errors)))
	}
	return strings.Join(parts, ", ")
}
