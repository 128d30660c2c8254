// Command rc-update manages service-to-runlevel memberships in an
// OpenRC-style registry.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/juju/gnuflag"

	runlevel "github.com/axondata/go-runlevel"
	"github.com/axondata/go-runlevel/internal/einfo"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr, os.Getenv))
}

func usage(w io.Writer, applet string) {
	fmt.Fprintf(w, `usage: %[1]s [options] add <service> <runlevel>...
       %[1]s [options] delete <service> <runlevel>...
       %[1]s [options] show [<runlevel>]

options:
  -a, --add      Add the service to runlevels
  -d, --delete   Delete the service from runlevels
  -s, --show     Show services in runlevels
`, applet)
}

// registryOptions builds DirRegistry options from environment overrides
func registryOptions(getenv func(string) string) []runlevel.DirOption {
	var opts []runlevel.DirOption
	if dir := getenv("RC_INITDIR"); dir != "" {
		opts = append(opts, runlevel.WithInitDir(dir))
	}
	if dir := getenv("RC_RUNLEVELDIR"); dir != "" {
		opts = append(opts, runlevel.WithRunlevelDir(dir))
	}
	if dir := getenv("RC_STATEDIR"); dir != "" {
		opts = append(opts, runlevel.WithStateDir(dir))
	}
	return opts
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	applet := filepath.Base(args[0])
	rep := &einfo.Reporter{Applet: applet, Out: stdout, Err: stderr}
	ctx := context.Background()

	var add, del, show bool
	flags := gnuflag.NewFlagSet(applet, gnuflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { usage(stderr, applet) }
	flags.BoolVar(&add, "a", false, "Add the service to runlevels")
	flags.BoolVar(&add, "add", false, "Add the service to runlevels")
	flags.BoolVar(&del, "d", false, "Delete the service from runlevels")
	flags.BoolVar(&del, "delete", false, "Delete the service from runlevels")
	flags.BoolVar(&show, "s", false, "Show services in runlevels")
	flags.BoolVar(&show, "show", false, "Show services in runlevels")

	if err := flags.Parse(true, args[1:]); err != nil {
		usage(stderr, applet)
		return 2
	}

	cmd, rest, err := runlevel.ResolveCommand(add, del, show, flags.Args())
	if err != nil {
		switch {
		case errors.Is(err, runlevel.ErrConflictingCommands):
			rep.Errorf("cannot mix commands")
		case errors.Is(err, runlevel.ErrInvalidCommand):
			rep.Errorf("invalid command `%s'", flags.Args()[0])
		default:
			usage(stderr, applet)
		}
		return 1
	}

	reg, err := runlevel.NewDirRegistry(registryOptions(getenv)...)
	if err != nil {
		rep.Errorf("%v", err)
		return 1
	}

	req, err := runlevel.BuildRequest(ctx, reg, cmd, rest)
	if err != nil {
		var rerr *runlevel.RunlevelError
		switch {
		case errors.Is(err, runlevel.ErrMissingService):
			rep.Errorf("no service specified")
		case errors.As(err, &rerr):
			rep.Errorf("`%s' is not a valid runlevel", rerr.Runlevel)
		case errors.Is(err, runlevel.ErrNoRunlevel):
			rep.Errorf("no runlevels found")
		default:
			rep.Errorf("%v", err)
		}
		return 1
	}

	if cmd == runlevel.CommandShow {
		report := &runlevel.Report{
			Registry:  reg,
			Runlevels: req.Runlevels,
			Verbose:   einfo.Yesno(getenv("EINFO_VERBOSE")),
		}
		if err := report.Render(ctx, stdout); err != nil {
			rep.Errorf("%v", err)
			return 1
		}
		return 0
	}

	m, ok := runlevel.MutationFor(cmd)
	if !ok {
		rep.Errorf("invalid action")
		return 1
	}

	updater := &runlevel.Updater{Registry: reg, Reporter: rep}
	if res := updater.Apply(ctx, m, req.Service, req.Runlevels); res.Failed {
		return 1
	}
	return 0
}
