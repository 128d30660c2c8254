package runlevel

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// MembershipEvent represents one observed membership change in a runlevel
type MembershipEvent struct {
	// Runlevel is the watched runlevel
	Runlevel string
	// Service is the service whose membership changed
	Service string
	// Op is OpAdd or OpDelete
	Op Operation
	// Err carries a watch failure instead of a change
	Err error
}

// WatchCleanupFunc stops a watch and releases its resources
type WatchCleanupFunc func() error

// WatchRunlevel monitors one runlevel for membership changes. It returns
// a channel of events and a cleanup function; the channel is closed once
// the watch stops.
func (r *DirRegistry) WatchRunlevel(ctx context.Context, runlevel string) (<-chan MembershipEvent, WatchCleanupFunc, error) {
	dir := filepath.Join(r.RunlevelDir, runlevel)

	if !r.RunlevelExists(ctx, runlevel) {
		return nil, nil, &OpError{Op: OpWatch, Path: dir, Err: ErrUnknownRunlevel}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, &OpError{Op: OpWatch, Path: dir, Err: err}
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, &OpError{Op: OpWatch, Path: dir, Err: err}
	}

	ch := make(chan MembershipEvent, 10)

	// Stopper context manages the watcher goroutine lifecycle
	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond) // Graceful stop with 100ms grace period
		return sctx.Wait()
	}

	sctx.Go(func(sctx *stopper.Context) error {
		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				service := filepath.Base(event.Name)
				// Dot-prefixed names are rename staging files, not memberships
				if strings.HasPrefix(service, ".") {
					continue
				}

				var op Operation
				switch {
				case event.Has(fsnotify.Create):
					op = OpAdd
				case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
					op = OpDelete
				default:
					continue
				}

				select {
				case ch <- MembershipEvent{Runlevel: runlevel, Service: service, Op: op}:
				case <-sctx.Stopping():
					return nil
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !sctx.IsStopping() {
					select {
					case ch <- MembershipEvent{Runlevel: runlevel, Err: err}:
					case <-sctx.Stopping():
						return nil
					}
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}
