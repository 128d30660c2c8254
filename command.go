package runlevel

// Command represents the single action selected for one invocation
type Command int

const (
	// CommandUnset represents no command
	CommandUnset Command = iota
	// CommandAdd adds a service to runlevels
	CommandAdd
	// CommandDelete removes a service from runlevels
	CommandDelete
	// CommandShow renders the membership report
	CommandShow
)

// Command string constants
const (
	commandUnsetStr  = "unset"
	commandAddStr    = "add"
	commandDeleteStr = "delete"
	commandShowStr   = "show"
	commandDelStr    = "del"
)

// String returns the string representation of a Command
func (c Command) String() string {
	switch c {
	case CommandAdd:
		return commandAddStr
	case CommandDelete:
		return commandDeleteStr
	case CommandShow:
		return commandShowStr
	default:
		return commandUnsetStr
	}
}

// ResolveCommand turns the parsed flag bits and remaining positional
// arguments into exactly one Command.
//
// At most one flag may be set; more than one fails with
// ErrConflictingCommands. With no flag set the first positional token is
// interpreted as a legacy command word and consumed from the returned
// argument list. An unrecognized token fails with ErrInvalidCommand; no
// flag and no token fails with ErrNoCommand.
func ResolveCommand(add, del, show bool, args []string) (Command, []string, error) {
	set := 0
	cmd := CommandUnset
	if add {
		set++
		cmd = CommandAdd
	}
	if del {
		set++
		cmd = CommandDelete
	}
	if show {
		set++
		cmd = CommandShow
	}

	if set > 1 {
		return CommandUnset, args, ErrConflictingCommands
	}
	if set == 1 {
		return cmd, args, nil
	}

	if len(args) == 0 {
		return CommandUnset, args, ErrNoCommand
	}

	switch args[0] {
	case commandAddStr:
		cmd = CommandAdd
	case commandDeleteStr, commandDelStr:
		cmd = CommandDelete
	case commandShowStr:
		cmd = CommandShow
	default:
		return CommandUnset, args, ErrInvalidCommand
	}

	return cmd, args[1:], nil
}
