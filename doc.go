// Package runlevel provides a native Go library and CLI core for managing
// service-to-runlevel memberships in an OpenRC-style registry, without
// shelling out to rc-update.
//
// The registry is modeled by the Registry interface; DirRegistry is the
// canonical implementation over the on-disk layout (init scripts in one
// directory, a directory per runlevel, membership as symlinks):
//
//	reg, err := runlevel.NewDirRegistry(
//	    runlevel.WithInitDir("/etc/init.d"),
//	    runlevel.WithRunlevelDir("/etc/runlevels"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// An invocation is resolved in three steps. ResolveCommand turns flag
// bits and the legacy positional syntax into exactly one Command;
// BuildRequest validates the service and runlevel arguments and applies
// the per-command defaults; Updater applies the selected Mutation across
// the batch:
//
//	cmd, args, err := runlevel.ResolveCommand(addFlag, delFlag, showFlag, args)
//	req, err := runlevel.BuildRequest(ctx, reg, cmd, args)
//	m, _ := runlevel.MutationFor(req.Command)
//	res := (&runlevel.Updater{Registry: reg, Reporter: rep}).Apply(ctx, m, req.Service, req.Runlevels)
//
// The show command renders a membership matrix through Report:
//
//	report := &runlevel.Report{Registry: reg, Runlevels: req.Runlevels}
//	err = report.Render(ctx, os.Stdout)
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - Zero external process spawning (no exec of rc-update/rc-status)
//   - Atomic single-pair mutations (membership links renamed into place)
//   - Strictly ordered, serial batch application with per-runlevel
//     error isolation
//   - Type safety (closed Command and Mutation variants, no string codes)
//
// WatchRunlevel is included because membership changes made by other
// processes are a common coordination point; it remains optional and all
// core operations work without it.
package runlevel
