package domain

// UnitState is the lifecycle state of a build unit.
// States only move forward: NotStarted, then Parsed or ParseError, then Built or BuildError.
type UnitState int

const (
	// StateNotStarted is the initial state.
	StateNotStarted UnitState = iota
	// StateParseError is terminal: the description file could not be parsed or validated.
	StateParseError
	// StateParsed means fields are parsed, validated and merged with included files.
	StateParsed
	// StateBuildError is terminal: a compile, link or archive step failed.
	StateBuildError
	// StateBuilt means the unit and all of its executable dependencies are built.
	StateBuilt
)

// String returns the name of the state.
func (s UnitState) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateParseError:
		return "ParseError"
	case StateParsed:
		return "Parsed"
	case StateBuildError:
		return "BuildError"
	case StateBuilt:
		return "Built"
	default:
		return "Invalid"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s UnitState) IsTerminal() bool {
	return s == StateParseError || s == StateBuildError || s == StateBuilt
}

// CanTransition reports whether moving from s to next is allowed.
func (s UnitState) CanTransition(next UnitState) bool {
	switch s {
	case StateNotStarted:
		return next == StateParsed || next == StateParseError
	case StateParsed:
		return next == StateBuilt || next == StateBuildError
	default:
		return false
	}
}

// Operation is what a build unit is asked to do with its description file.
type Operation int

const (
	// OperationParse parses the file and exposes its fields to the includer.
	OperationParse Operation = iota
	// OperationBuild parses the file and then processes the invocation (building by default).
	OperationBuild
)

// String returns the name of the operation.
func (o Operation) String() string {
	if o == OperationBuild {
		return "Build"
	}
	return "Parse"
}
