package runlevel

import (
	"context"
)

// Registry is the interface all membership registries implement.
// It provides a unified API over the persistent record mapping
// (runlevel, service) pairs to membership state.
//
// Implementations must apply each single mutation atomically: a caller
// never observes a partially added or partially removed membership.
type Registry interface {
	// Existence checks
	ServiceExists(ctx context.Context, service string) bool
	RunlevelExists(ctx context.Context, runlevel string) bool

	// CurrentRunlevel resolves the distinguished current runlevel.
	// It returns ErrNoRunlevel when none is recorded.
	CurrentRunlevel(ctx context.Context) (string, error)

	// Runlevels enumerates all runlevels in registry order.
	Runlevels(ctx context.Context) ([]string, error)

	// Services enumerates services in registry order. An empty runlevel
	// means all services known to the registry.
	Services(ctx context.Context, runlevel string) ([]string, error)

	// IsMember reports whether service belongs to runlevel.
	IsMember(ctx context.Context, service, runlevel string) bool

	// AddMembership records service as a member of runlevel.
	AddMembership(ctx context.Context, runlevel, service string) error

	// RemoveMembership erases the membership of service in runlevel.
	// It returns an error wrapping ErrNotAMember when the pair was
	// never present.
	RemoveMembership(ctx context.Context, runlevel, service string) error
}
