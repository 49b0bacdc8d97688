//go:build !windows

package launcher

import "os/exec"

// setCmdLine is a no-op: only Windows passes a raw command line to the child.
func setCmdLine(cmd *exec.Cmd, line string) {}
