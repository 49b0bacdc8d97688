//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

func setCmdLine(cmd *exec.Cmd, line string) {
	if line == "" {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: line}
}
