package runlevel

// Registry layout constants
const (
	// DefaultInitDir is the default directory holding service init scripts
	DefaultInitDir = "/etc/init.d"

	// DefaultRunlevelDir is the default directory holding one subdirectory per runlevel
	DefaultRunlevelDir = "/etc/runlevels"

	// DefaultStateDir is the default directory holding runtime registry state
	DefaultStateDir = "/run/openrc"

	// SoftlevelFile is the state file naming the current runlevel
	SoftlevelFile = "softlevel"
)

// File modes
const (
	// DirMode is the default mode for created directories
	DirMode = 0o755

	// FileMode is the default mode for created files
	FileMode = 0o644
)

// ServiceNameWidth is the fixed width of the service column in membership reports
const ServiceNameWidth = 20

// Operation represents a registry operation type
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpAdd adds a service to a runlevel
	OpAdd
	// OpDelete removes a service from a runlevel
	OpDelete
	// OpShow renders the membership report
	OpShow
	// OpList enumerates runlevels or services
	OpList
	// OpCurrent resolves the current runlevel
	OpCurrent
	// OpWatch monitors a runlevel for membership changes
	OpWatch
)

// Operation string constants
const (
	opUnknownStr = "unknown"
	opAddStr     = "add"
	opDeleteStr  = "delete"
	opShowStr    = "show"
	opListStr    = "list"
	opCurrentStr = "current"
	opWatchStr   = "watch"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpAdd:
		return opAddStr
	case OpDelete:
		return opDeleteStr
	case OpShow:
		return opShowStr
	case OpList:
		return opListStr
	case OpCurrent:
		return opCurrentStr
	case OpWatch:
		return opWatchStr
	default:
		return opUnknownStr
	}
}
