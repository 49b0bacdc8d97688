package launcher

import (
	"errors"
	"fmt"
)

var (
	ErrEditorUnavailable     = errors.New("no editor could be started")
	ErrToolLaunchFailed      = errors.New("tool launch failed")
	ErrTerminalLaunchFailed  = errors.New("terminal launch failed")
	ErrCommandLaunchFailed   = errors.New("command launch failed")
	ErrSubsystemLaunchFailed = errors.New("subsystem launch failed")
	ErrOpenFailed            = errors.New("open failed")
)

// LaunchError ties a launch failure kind to the path or command that failed.
type LaunchError struct {
	Kind   error
	Target string
	Err    error
}

func (e *LaunchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Target)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Target, e.Err)
}

func (e *LaunchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
