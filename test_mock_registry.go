package runlevel

import (
	"context"
	"path"
)

// MockRegistry is an in-memory Registry for testing. It allows exercising
// command resolution, mutation batches, and report rendering without a
// real registry directory tree.
type MockRegistry struct {
	// Known is the ordered set of services the registry knows about
	Known []string
	// Levels is the ordered set of runlevels
	Levels []string
	// Current is the current runlevel; empty means unresolvable
	Current string
	// Members maps runlevel -> service -> membership
	Members map[string]map[string]bool

	// AddErr, when set, is returned by every AddMembership call
	AddErr error
	// RemoveErr, when set, is returned by every RemoveMembership call
	RemoveErr error

	// AddCalls counts AddMembership invocations
	AddCalls int
	// RemoveCalls counts RemoveMembership invocations
	RemoveCalls int
}

// NewMockRegistry creates a MockRegistry with the given services,
// runlevels, and current runlevel, and no memberships.
func NewMockRegistry(services, levels []string, current string) *MockRegistry {
	m := &MockRegistry{
		Known:   services,
		Levels:  levels,
		Current: current,
		Members: make(map[string]map[string]bool),
	}
	for _, level := range levels {
		m.Members[level] = make(map[string]bool)
	}
	return m
}

// SetMember records a membership directly, bypassing call counting
func (m *MockRegistry) SetMember(service, runlevel string, member bool) {
	if m.Members[runlevel] == nil {
		m.Members[runlevel] = make(map[string]bool)
	}
	m.Members[runlevel][service] = member
}

// ServiceExists reports whether service is in Known
func (m *MockRegistry) ServiceExists(_ context.Context, service string) bool {
	for _, s := range m.Known {
		if s == service {
			return true
		}
	}
	return false
}

// RunlevelExists reports whether runlevel is in Levels
func (m *MockRegistry) RunlevelExists(_ context.Context, runlevel string) bool {
	for _, l := range m.Levels {
		if l == runlevel {
			return true
		}
	}
	return false
}

// CurrentRunlevel returns Current, or ErrNoRunlevel when empty
func (m *MockRegistry) CurrentRunlevel(_ context.Context) (string, error) {
	if m.Current == "" {
		return "", ErrNoRunlevel
	}
	return m.Current, nil
}

// Runlevels returns Levels in order
func (m *MockRegistry) Runlevels(_ context.Context) ([]string, error) {
	return append([]string(nil), m.Levels...), nil
}

// Services returns Known in order, filtered to runlevel members when a
// runlevel is given.
func (m *MockRegistry) Services(ctx context.Context, runlevel string) ([]string, error) {
	if runlevel == "" {
		return append([]string(nil), m.Known...), nil
	}
	var services []string
	for _, s := range m.Known {
		if m.Members[runlevel][s] {
			services = append(services, s)
		}
	}
	return services, nil
}

// IsMember reports the recorded membership
func (m *MockRegistry) IsMember(_ context.Context, service, runlevel string) bool {
	return m.Members[runlevel][service]
}

// AddMembership records a membership, or returns AddErr when set
func (m *MockRegistry) AddMembership(_ context.Context, runlevel, service string) error {
	m.AddCalls++
	if m.AddErr != nil {
		return &OpError{Op: OpAdd, Path: path.Join(runlevel, service), Err: m.AddErr}
	}
	m.SetMember(service, runlevel, true)
	return nil
}

// RemoveMembership erases a membership. A pair that was never present
// returns an error wrapping ErrNotAMember; RemoveErr overrides when set.
func (m *MockRegistry) RemoveMembership(_ context.Context, runlevel, service string) error {
	m.RemoveCalls++
	if m.RemoveErr != nil {
		return &OpError{Op: OpDelete, Path: path.Join(runlevel, service), Err: m.RemoveErr}
	}
	if !m.Members[runlevel][service] {
		return &OpError{Op: OpDelete, Path: path.Join(runlevel, service), Err: ErrNotAMember}
	}
	delete(m.Members[runlevel], service)
	return nil
}
