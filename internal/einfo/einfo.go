// Package einfo provides the leveled user-facing message layer shared by
// the runlevel tools: informational lines on stdout, warnings and errors
// on stderr, each carrying the applet name explicitly rather than through
// global state.
package einfo

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter writes user-facing messages for one applet invocation
type Reporter struct {
	// Applet is the program name prefixed to warnings and errors
	Applet string
	// Out receives informational messages
	Out io.Writer
	// Err receives warnings and errors
	Err io.Writer
}

// New creates a Reporter for applet writing to stdout and stderr
func New(applet string) *Reporter {
	return &Reporter{
		Applet: applet,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// Infof writes an informational message to Out
func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintf(r.Out, " * "+format+"\n", args...)
}

// Warnf writes an applet-attributed warning to Err
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.Err, " * "+r.Applet+": "+format+"\n", args...)
}

// Errorf writes an applet-attributed error to Err
func (r *Reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.Err, " * "+r.Applet+": "+format+"\n", args...)
}

// Yesno reports whether s is a truthy configuration string.
// Recognized values are yes, y, true, on and 1, case-insensitively;
// anything else is false.
func Yesno(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "on", "1":
		return true
	default:
		return false
	}
}
