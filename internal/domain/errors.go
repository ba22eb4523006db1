package domain

import (
	"errors"
	"fmt"
)

// ErrSystemNotFound reports that the coordinate service does not know a system
// or knows it without coordinates.
var ErrSystemNotFound = errors.New("system not found")

// ResolutionError reports that no position could be obtained for a system.
// It is never fatal to a route on its own; callers decide whether the system
// is the start (fatal) or a target (discarded).
type ResolutionError struct {
	System string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.System, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
