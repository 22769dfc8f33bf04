//go:build windows

package terraform

import (
	"os/exec"
)

func setProcAttr(cmd *exec.Cmd) {}

// terminate kills the process; Windows has no SIGTERM.
func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
