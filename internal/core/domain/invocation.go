package domain

// Mode selects what Build-operation units do once parsed.
type Mode int

const (
	// ModeDefault runs the Default sequence, or Build when the sequence is empty.
	ModeDefault Mode = iota
	// ModeCommandList runs the named commands in order.
	ModeCommandList
	// ModeGenerate emits an external project description instead of building.
	ModeGenerate
)

// BuildCommand is the reserved command name that triggers compilation and linking.
const BuildCommand = "Build"

// GenerateArgument is the single argument that selects ModeGenerate.
const GenerateArgument = "generate"

// Invocation is the mode and command list derived from the command line.
type Invocation struct {
	Mode      Mode
	Arguments []string
}

// NewInvocation derives the invocation from the positional command-line arguments.
func NewInvocation(args []string) Invocation {
	switch {
	case len(args) == 0:
		return Invocation{Mode: ModeDefault}
	case len(args) == 1 && args[0] == GenerateArgument:
		return Invocation{Mode: ModeGenerate}
	default:
		return Invocation{Mode: ModeCommandList, Arguments: append([]string(nil), args...)}
	}
}

// Commands returns the command sequence a unit runs under this invocation,
// given its Default sequence.
func (i Invocation) Commands(defaults []InternedString) []string {
	switch i.Mode {
	case ModeCommandList:
		return i.Arguments
	case ModeDefault:
		if len(defaults) == 0 {
			return []string{BuildCommand}
		}
		return Strings(defaults)
	default:
		return nil
	}
}
