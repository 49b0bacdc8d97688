package navigator

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProject = errors.New("unknown project")
	ErrUnknownOption  = errors.New("unknown option")
	ErrNotAGroup      = errors.New("option is not a group")
	ErrAtRoot         = errors.New("already at the root option list")
)

// NavError describes a failed navigation step. State is left unchanged.
type NavError struct {
	Op    string
	Label string
	Err   error
}

func (e *NavError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Label, e.Err)
}

func (e *NavError) Unwrap() error { return e.Err }
