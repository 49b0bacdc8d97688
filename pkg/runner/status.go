package runner

import (
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-launcher/pkg/models"
)

// State is the lifecycle state of a run.
type State int

const (
	Running State = iota
	Succeeded
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Status reports that step Index (1-based) of Total is being dispatched.
type Status struct {
	Index       int
	Total       int
	Kind        models.ActionKind
	Description string
}

func (s Status) String() string {
	return fmt.Sprintf("[%d/%d] %s", s.Index, s.Total, s.Description)
}

// Outcome is the terminal result of a run, delivered exactly once.
type Outcome struct {
	State State
	// Steps is the number of actions dispatched successfully.
	Steps int
	Err   error
}

// ErrPathNotFound is returned when an action's resolved directory does not exist.
var ErrPathNotFound = errors.New("path not found")

// PathError names the missing directory.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return fmt.Sprintf("%v: %s", e.Err, e.Path) }

func (e *PathError) Unwrap() error { return e.Err }

// StepError is the failure of the action at Index (0-based). Earlier actions
// already took effect and are not rolled back.
type StepError struct {
	Index  int
	Action models.Action
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("action %d (%s): %v", e.Index+1, e.Action.Kind(), e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
