package runlevel

import (
	"context"
)

// Request is one fully resolved invocation: the command, the target
// service (empty for show), and the ordered runlevels to operate on.
// A Request is built once and never modified afterwards.
type Request struct {
	// Command is the resolved action
	Command Command
	// Service is the target service name; empty for show
	Service string
	// Runlevels is the ordered set of target runlevel names
	Runlevels []string
}

// BuildRequest resolves the positional arguments remaining after command
// resolution into a Request.
//
// For show the first positional scopes the report to that runlevel and
// carries no service; for add and delete the first positional is the
// service name and its absence is an ErrMissingService. Every further
// positional must name an existing runlevel; the first unknown name
// fails the whole invocation with a RunlevelError wrapping
// ErrUnknownRunlevel.
//
// An empty runlevel set defaults to all runlevels for show and to the
// current runlevel for add and delete.
func BuildRequest(ctx context.Context, reg Registry, cmd Command, args []string) (*Request, error) {
	req := &Request{Command: cmd}
	rest := args

	switch cmd {
	case CommandShow:
		// The scope token is not existence-checked; an unknown
		// runlevel simply renders an empty report.
		if len(rest) > 0 {
			req.Runlevels = append(req.Runlevels, rest[0])
			rest = rest[1:]
		}
	case CommandAdd, CommandDelete:
		if len(rest) == 0 {
			return nil, ErrMissingService
		}
		req.Service = rest[0]
		rest = rest[1:]
	default:
		return nil, ErrNoCommand
	}

	for _, name := range rest {
		if !reg.RunlevelExists(ctx, name) {
			return nil, &RunlevelError{Runlevel: name, Err: ErrUnknownRunlevel}
		}
		req.Runlevels = append(req.Runlevels, name)
	}

	if len(req.Runlevels) == 0 {
		if cmd == CommandShow {
			levels, err := reg.Runlevels(ctx)
			if err != nil {
				return nil, err
			}
			req.Runlevels = levels
		} else {
			level, err := reg.CurrentRunlevel(ctx)
			if err != nil {
				return nil, err
			}
			req.Runlevels = []string{level}
		}
	}

	return req, nil
}
