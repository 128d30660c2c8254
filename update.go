package runlevel

import (
	"context"
	"errors"
)

// Reporter receives the user-facing messages emitted while applying
// mutations: confirmations, per-runlevel warnings and errors.
type Reporter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Mutation is a single membership change applied uniformly across a
// batch of runlevels. Exactly two implementations exist, Add and Delete;
// one is selected after command resolution and used for the whole batch.
//
// apply returns the number of changes made for one pair:
//
//	-1 = no changes (error)
//	 0 = no changes (nothing to do)
//	 1 = membership updated
type Mutation interface {
	apply(ctx context.Context, u *Updater, runlevel, service string) int

	// Command returns the command this mutation implements
	Command() Command
}

// MutationFor returns the Mutation implementing cmd, or false when cmd
// is not a mutating command.
func MutationFor(cmd Command) (Mutation, bool) {
	switch cmd {
	case CommandAdd:
		return Add{}, true
	case CommandDelete:
		return Delete{}, true
	default:
		return nil, false
	}
}

// Add is the Mutation that installs a service into runlevels
type Add struct{}

// Command returns CommandAdd
func (Add) Command() Command { return CommandAdd }

func (Add) apply(ctx context.Context, u *Updater, runlevel, service string) int {
	if !u.Registry.ServiceExists(ctx, service) {
		u.Reporter.Errorf("service `%s' does not exist", service)
		return -1
	}

	if u.Registry.IsMember(ctx, service, runlevel) {
		u.Reporter.Warnf("%s already installed in runlevel `%s'; skipping", service, runlevel)
		return 0
	}

	if err := u.Registry.AddMembership(ctx, runlevel, service); err != nil {
		u.Reporter.Errorf("failed to add service `%s' to runlevel `%s': %v",
			service, runlevel, cause(err))
		return -1
	}

	u.Reporter.Infof("%s added to runlevel %s", service, runlevel)
	return 1
}

// Delete is the Mutation that removes a service from runlevels
type Delete struct{}

// Command returns CommandDelete
func (Delete) Command() Command { return CommandDelete }

func (Delete) apply(ctx context.Context, u *Updater, runlevel, service string) int {
	err := u.Registry.RemoveMembership(ctx, runlevel, service)
	if err == nil {
		u.Reporter.Infof("%s removed from runlevel %s", service, runlevel)
		return 1
	}

	if errors.Is(err, ErrNotAMember) {
		u.Reporter.Errorf("service `%s' is not in the runlevel `%s'", service, runlevel)
		return 0
	}

	u.Reporter.Errorf("failed to remove service `%s' from runlevel `%s': %v",
		service, runlevel, cause(err))
	return -1
}

// Result aggregates one batch of membership mutations
type Result struct {
	// Updated is the number of successful membership changes
	Updated int
	// Failed reports whether any per-runlevel mutation errored
	Failed bool
}

// Updater applies one Mutation for one service across a batch of
// runlevels, strictly in input order, continuing past per-runlevel
// failures.
type Updater struct {
	// Registry is the membership registry mutated
	Registry Registry
	// Reporter receives confirmations, warnings and errors
	Reporter Reporter
}

// Apply runs m for service against every runlevel in order and folds
// the per-runlevel outcomes into a Result.
//
// A runlevel that no longer exists is reported and skipped without
// failing the batch. For Delete, a batch that succeeds overall but
// changes nothing yields a single summary warning.
func (u *Updater) Apply(ctx context.Context, m Mutation, service string, runlevels []string) Result {
	var res Result

	for _, runlevel := range runlevels {
		if !u.Registry.RunlevelExists(ctx, runlevel) {
			u.Reporter.Errorf("runlevel `%s' does not exist", runlevel)
			continue
		}

		if n := m.apply(ctx, u, runlevel, service); n < 0 {
			res.Failed = true
		} else {
			res.Updated += n
		}
	}

	if !res.Failed && res.Updated == 0 && m.Command() == CommandDelete {
		u.Reporter.Warnf("service `%s' not found in any of the specified runlevels", service)
	}

	return res
}

// cause returns the innermost error in err's chain
func cause(err error) error {
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err
		}
		err = inner
	}
}
