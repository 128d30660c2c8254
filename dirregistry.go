package runlevel

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// DirRegistry is a Registry backed by the OpenRC on-disk layout: init
// scripts under InitDir, one directory per runlevel under RunlevelDir,
// and membership expressed as a symlink from the runlevel directory to
// the init script. The current runlevel is recorded in a softlevel file
// under StateDir.
//
// Membership mutations are atomic: links are created via a rename and
// removed with a single unlink.
type DirRegistry struct {
	// InitDir is the directory holding service init scripts
	InitDir string

	// RunlevelDir is the directory holding one subdirectory per runlevel
	RunlevelDir string

	// StateDir is the directory holding runtime state such as the softlevel file
	StateDir string
}

// DirOption configures a DirRegistry
type DirOption func(*DirRegistry)

// WithInitDir sets the directory holding service init scripts
func WithInitDir(dir string) DirOption {
	return func(r *DirRegistry) {
		r.InitDir = dir
	}
}

// WithRunlevelDir sets the directory holding runlevel subdirectories
func WithRunlevelDir(dir string) DirOption {
	return func(r *DirRegistry) {
		r.RunlevelDir = dir
	}
}

// WithStateDir sets the directory holding runtime registry state
func WithStateDir(dir string) DirOption {
	return func(r *DirRegistry) {
		r.StateDir = dir
	}
}

// NewDirRegistry creates a DirRegistry rooted at the standard OpenRC
// directories, applies any provided options, and verifies the layout
// exists.
func NewDirRegistry(opts ...DirOption) (*DirRegistry, error) {
	r := &DirRegistry{
		InitDir:     DefaultInitDir,
		RunlevelDir: DefaultRunlevelDir,
		StateDir:    DefaultStateDir,
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, p := range []*string{&r.InitDir, &r.RunlevelDir, &r.StateDir} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return nil, fmt.Errorf("resolving registry dir: %w", err)
		}
		*p = abs
	}

	for _, dir := range []string{r.InitDir, r.RunlevelDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return nil, &OpError{Op: OpUnknown, Path: dir, Err: ErrNoRegistry}
		}
	}

	return r, nil
}

// validName rejects names that would escape the registry directories
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, os.PathSeparator)
}

// ServiceExists reports whether an init script for service exists
func (r *DirRegistry) ServiceExists(_ context.Context, service string) bool {
	if !validName(service) {
		return false
	}
	info, err := os.Stat(filepath.Join(r.InitDir, service))
	return err == nil && !info.IsDir()
}

// RunlevelExists reports whether a runlevel directory exists
func (r *DirRegistry) RunlevelExists(_ context.Context, runlevel string) bool {
	if !validName(runlevel) {
		return false
	}
	info, err := os.Stat(filepath.Join(r.RunlevelDir, runlevel))
	return err == nil && info.IsDir()
}

// CurrentRunlevel reads the softlevel file and returns the recorded
// runlevel name. It returns an error wrapping ErrNoRunlevel when the
// file is missing or empty.
func (r *DirRegistry) CurrentRunlevel(_ context.Context) (string, error) {
	path := filepath.Join(r.StateDir, SoftlevelFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &OpError{Op: OpCurrent, Path: path, Err: ErrNoRunlevel}
		}
		return "", &OpError{Op: OpCurrent, Path: path, Err: err}
	}

	level := strings.TrimSpace(string(data))
	if level == "" {
		return "", &OpError{Op: OpCurrent, Path: path, Err: ErrNoRunlevel}
	}
	return level, nil
}

// SetCurrentRunlevel records runlevel in the softlevel file atomically
func (r *DirRegistry) SetCurrentRunlevel(_ context.Context, runlevel string) error {
	if !validName(runlevel) {
		return &OpError{Op: OpCurrent, Path: r.StateDir, Err: ErrUnknownRunlevel}
	}

	if err := os.MkdirAll(r.StateDir, DirMode); err != nil {
		return &OpError{Op: OpCurrent, Path: r.StateDir, Err: err}
	}

	path := filepath.Join(r.StateDir, SoftlevelFile)
	if err := renameio.WriteFile(path, []byte(runlevel+"\n"), FileMode); err != nil {
		return &OpError{Op: OpCurrent, Path: path, Err: err}
	}
	return nil
}

// Runlevels enumerates runlevel directories in directory order
func (r *DirRegistry) Runlevels(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.RunlevelDir)
	if err != nil {
		return nil, &OpError{Op: OpList, Path: r.RunlevelDir, Err: err}
	}

	var levels []string
	for _, entry := range entries {
		if entry.IsDir() {
			levels = append(levels, entry.Name())
		}
	}
	return levels, nil
}

// Services enumerates services in directory order. An empty runlevel
// lists every init script; otherwise it lists the members of that
// runlevel.
func (r *DirRegistry) Services(_ context.Context, runlevel string) ([]string, error) {
	dir := r.InitDir
	if runlevel != "" {
		if !validName(runlevel) {
			return nil, &OpError{Op: OpList, Path: r.RunlevelDir, Err: ErrUnknownRunlevel}
		}
		dir = filepath.Join(r.RunlevelDir, runlevel)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &OpError{Op: OpList, Path: dir, Err: err}
	}

	var services []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		services = append(services, entry.Name())
	}
	return services, nil
}

// IsMember reports whether the membership link for (service, runlevel) exists
func (r *DirRegistry) IsMember(_ context.Context, service, runlevel string) bool {
	if !validName(service) || !validName(runlevel) {
		return false
	}
	_, err := os.Lstat(filepath.Join(r.RunlevelDir, runlevel, service))
	return err == nil
}

// AddMembership links service into runlevel. The link is staged in a
// temporary name and renamed into place so a concurrent reader never
// observes a half-created membership.
func (r *DirRegistry) AddMembership(_ context.Context, runlevel, service string) error {
	if !validName(service) || !validName(runlevel) {
		return &OpError{Op: OpAdd, Path: r.RunlevelDir, Err: ErrUnknownRunlevel}
	}

	target := filepath.Join(r.InitDir, service)
	link := filepath.Join(r.RunlevelDir, runlevel, service)

	if err := renameio.Symlink(target, link); err != nil {
		return &OpError{Op: OpAdd, Path: link, Err: err}
	}
	return nil
}

// RemoveMembership unlinks service from runlevel. Removing a pair that
// was never present returns an error wrapping ErrNotAMember.
func (r *DirRegistry) RemoveMembership(_ context.Context, runlevel, service string) error {
	if !validName(service) || !validName(runlevel) {
		return &OpError{Op: OpDelete, Path: r.RunlevelDir, Err: ErrUnknownRunlevel}
	}

	link := filepath.Join(r.RunlevelDir, runlevel, service)
	if err := os.Remove(link); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &OpError{Op: OpDelete, Path: link, Err: ErrNotAMember}
		}
		return &OpError{Op: OpDelete, Path: link, Err: err}
	}
	return nil
}
