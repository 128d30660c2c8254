package runlevel

import (
	"errors"
	"fmt"
)

// Common errors returned by runlevel operations
var (
	// ErrNoRegistry indicates the registry directory layout is missing
	ErrNoRegistry = errors.New("runlevel: registry dir missing")

	// ErrConflictingCommands indicates more than one command flag was set
	ErrConflictingCommands = errors.New("runlevel: cannot mix commands")

	// ErrNoCommand indicates no command flag or positional command was given
	ErrNoCommand = errors.New("runlevel: no command")

	// ErrInvalidCommand indicates an unrecognized positional command token
	ErrInvalidCommand = errors.New("runlevel: invalid command")

	// ErrMissingService indicates add/delete was invoked without a service name
	ErrMissingService = errors.New("runlevel: no service specified")

	// ErrUnknownRunlevel indicates a named runlevel does not exist
	ErrUnknownRunlevel = errors.New("runlevel: not a valid runlevel")

	// ErrNoRunlevel indicates no runlevel was given and none is current
	ErrNoRunlevel = errors.New("runlevel: no runlevels found")

	// ErrServiceNotFound indicates the named service does not exist
	ErrServiceNotFound = errors.New("runlevel: service does not exist")

	// ErrNotAMember indicates the service is not in the runlevel
	ErrNotAMember = errors.New("runlevel: service not in runlevel")
)

// OpError represents an error from a registry operation
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Path is the file path involved in the operation
	Path string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("runlevel %s %q: %v", e.Op.String(), e.Path, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// RunlevelError attributes an error to a named runlevel
type RunlevelError struct {
	// Runlevel is the offending runlevel name
	Runlevel string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *RunlevelError) Error() string {
	return fmt.Sprintf("runlevel `%s': %v", e.Runlevel, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *RunlevelError) Unwrap() error {
	return e.Err
}
