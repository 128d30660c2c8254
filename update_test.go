package runlevel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// recordingReporter captures reporter output for assertions
type recordingReporter struct {
	infos []string
	warns []string
	errs  []string
}

func (r *recordingReporter) Infof(format string, args ...any) {
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Warnf(format string, args ...any) {
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func TestMutationFor(t *testing.T) {
	if m, ok := MutationFor(CommandAdd); !ok || m.Command() != CommandAdd {
		t.Errorf("MutationFor(CommandAdd) = %v, %v", m, ok)
	}
	if m, ok := MutationFor(CommandDelete); !ok || m.Command() != CommandDelete {
		t.Errorf("MutationFor(CommandDelete) = %v, %v", m, ok)
	}
	if _, ok := MutationFor(CommandShow); ok {
		t.Error("MutationFor(CommandShow) = ok, want !ok")
	}
	if _, ok := MutationFor(CommandUnset); ok {
		t.Error("MutationFor(CommandUnset) = ok, want !ok")
	}
}

func TestUpdaterAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		reg := newTestRegistry()
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		res := u.Apply(ctx, Add{}, "sshd", []string{"default", "boot"})
		if res.Failed {
			t.Error("Failed = true, want false")
		}
		if res.Updated != 2 {
			t.Errorf("Updated = %v, want 2", res.Updated)
		}
		if !reg.IsMember(ctx, "sshd", "default") || !reg.IsMember(ctx, "sshd", "boot") {
			t.Error("memberships not recorded")
		}
		if len(rep.infos) != 2 || rep.infos[0] != "sshd added to runlevel default" {
			t.Errorf("infos = %v", rep.infos)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		reg := newTestRegistry()
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		u.Apply(ctx, Add{}, "sshd", []string{"default"})
		calls := reg.AddCalls

		res := u.Apply(ctx, Add{}, "sshd", []string{"default"})
		if res.Failed {
			t.Error("Failed = true, want false")
		}
		if res.Updated != 0 {
			t.Errorf("Updated = %v, want 0", res.Updated)
		}
		if reg.AddCalls != calls {
			t.Errorf("AddCalls = %v, want %v (no extra mutation)", reg.AddCalls, calls)
		}
		if len(rep.warns) != 1 || !strings.Contains(rep.warns[0], "already installed in runlevel `default'") {
			t.Errorf("warns = %v", rep.warns)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		reg := newTestRegistry()
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		res := u.Apply(ctx, Add{}, "nonesuch", []string{"default"})
		if !res.Failed {
			t.Error("Failed = false, want true")
		}
		if reg.AddCalls != 0 {
			t.Errorf("AddCalls = %v, want 0", reg.AddCalls)
		}
		if len(rep.errs) != 1 || !strings.Contains(rep.errs[0], "service `nonesuch' does not exist") {
			t.Errorf("errs = %v", rep.errs)
		}
	})

	t.Run("registry failure reports cause", func(t *testing.T) {
		reg := newTestRegistry()
		reg.AddErr = errors.New("read-only file system")
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		res := u.Apply(ctx, Add{}, "sshd", []string{"default"})
		if !res.Failed {
			t.Error("Failed = false, want true")
		}
		if len(rep.errs) != 1 || !strings.Contains(rep.errs[0], "read-only file system") {
			t.Errorf("errs = %v, want cause string", rep.errs)
		}
	})

	t.Run("continues past failed runlevel", func(t *testing.T) {
		reg := newTestRegistry()
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		// "vanished" exists at validation time in real flows; here it
		// simply is not a runlevel, standing in for one that went away.
		res := u.Apply(ctx, Add{}, "sshd", []string{"vanished", "default"})
		if res.Failed {
			t.Error("Failed = true, want false (skip is not a batch failure)")
		}
		if res.Updated != 1 {
			t.Errorf("Updated = %v, want 1", res.Updated)
		}
		if !reg.IsMember(ctx, "sshd", "default") {
			t.Error("default membership missing")
		}
		if len(rep.errs) != 1 || !strings.Contains(rep.errs[0], "runlevel `vanished' does not exist") {
			t.Errorf("errs = %v", rep.errs)
		}
	})
}

func TestUpdaterDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		reg := newTestRegistry()
		reg.SetMember("sshd", "default", true)
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		res := u.Apply(ctx, Delete{}, "sshd", []string{"default"})
		if res.Failed {
			t.Error("Failed = true, want false")
		}
		if res.Updated != 1 {
			t.Errorf("Updated = %v, want 1", res.Updated)
		}
		if reg.IsMember(ctx, "sshd", "default") {
			t.Error("membership still present")
		}
		if len(rep.infos) != 1 || rep.infos[0] != "sshd removed from runlevel default" {
			t.Errorf("infos = %v", rep.infos)
		}
		if len(rep.warns) != 0 {
			t.Errorf("warns = %v, want none", rep.warns)
		}
	})

	t.Run("not a member yields summary warning", func(t *testing.T) {
		reg := newTestRegistry()
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		res := u.Apply(ctx, Delete{}, "sshd", []string{"default", "boot"})
		if res.Failed {
			t.Error("Failed = true, want false")
		}
		if res.Updated != 0 {
			t.Errorf("Updated = %v, want 0", res.Updated)
		}
		if len(rep.errs) != 2 {
			t.Errorf("errs = %v, want one per runlevel", rep.errs)
		}
		if len(rep.warns) != 1 || !strings.Contains(rep.warns[0], "not found in any of the specified runlevels") {
			t.Errorf("warns = %v, want single summary warning", rep.warns)
		}
	})

	t.Run("second delete leaves state unchanged", func(t *testing.T) {
		reg := newTestRegistry()
		reg.SetMember("sshd", "default", true)
		u := &Updater{Registry: reg, Reporter: &recordingReporter{}}

		u.Apply(ctx, Delete{}, "sshd", []string{"default"})

		rep := &recordingReporter{}
		u.Reporter = rep
		res := u.Apply(ctx, Delete{}, "sshd", []string{"default"})
		if res.Failed || res.Updated != 0 {
			t.Errorf("res = %+v, want clean no-op", res)
		}
		if len(rep.errs) != 1 || !strings.Contains(rep.errs[0], "is not in the runlevel `default'") {
			t.Errorf("errs = %v", rep.errs)
		}
	})

	t.Run("registry failure fails batch without summary", func(t *testing.T) {
		reg := newTestRegistry()
		reg.RemoveErr = errors.New("permission denied")
		rep := &recordingReporter{}
		u := &Updater{Registry: reg, Reporter: rep}

		res := u.Apply(ctx, Delete{}, "sshd", []string{"default"})
		if !res.Failed {
			t.Error("Failed = false, want true")
		}
		if len(rep.errs) != 1 || !strings.Contains(rep.errs[0], "permission denied") {
			t.Errorf("errs = %v, want cause string", rep.errs)
		}
		if len(rep.warns) != 0 {
			t.Errorf("warns = %v, want none on failed batch", rep.warns)
		}
	})
}

func TestAddDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry()
	reg.SetMember("ntpd", "boot", true)
	reg.SetMember("cron", "default", true)
	u := &Updater{Registry: reg, Reporter: &recordingReporter{}}

	u.Apply(ctx, Add{}, "sshd", []string{"default"})
	u.Apply(ctx, Delete{}, "sshd", []string{"default"})

	if reg.IsMember(ctx, "sshd", "default") {
		t.Error("sshd membership not restored to pre-add state")
	}
	// No side effects outside the targeted pair.
	if !reg.IsMember(ctx, "ntpd", "boot") || !reg.IsMember(ctx, "cron", "default") {
		t.Error("unrelated memberships disturbed")
	}
}
