package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// OpKind is the kind of external tool invocation.
type OpKind int

const (
	// OpCompile turns one source file into an object file.
	OpCompile OpKind = iota
	// OpLink turns objects and archives into an executable.
	OpLink
	// OpArchive turns objects into a static library.
	OpArchive
)

// String returns the name of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpCompile:
		return "Compile"
	case OpLink:
		return "Link"
	case OpArchive:
		return "Archive"
	default:
		return "Unknown"
	}
}

// IsFinalizer reports whether the operation concludes a unit's build.
func (k OpKind) IsFinalizer() bool {
	return k == OpLink || k == OpArchive
}

// UnitOwner is the build unit an ExecutableUnit reports back to.
// The executor calls these methods from its scheduling goroutine.
type UnitOwner interface {
	// Path returns the canonical path of the owner's description file.
	Path() string
	// CompileQueued is called once for each Compile unit before it becomes visible to the scheduler.
	CompileQueued()
	// CompileReaped is called once for each Compile unit after its process has been reaped.
	CompileReaped(failed bool)
	// FinalizeReaped is called once the Link or Archive unit has been reaped.
	FinalizeReaped(failed bool)
}

// ExecutableUnit is an immutable request to run one external tool.
type ExecutableUnit struct {
	Op         OpKind
	Owner      UnitOwner
	Callee     string
	Source     string
	Binary     string
	Args       []string
	WorkingDir string
}

// Subject returns the file the unit is about: the source for Compile, the output otherwise.
func (u *ExecutableUnit) Subject() string {
	if u.Op == OpCompile {
		return u.Source
	}
	return u.Binary
}

// Fingerprint returns a stable identifier of the invocation.
func (u *ExecutableUnit) Fingerprint() string {
	d := xxhash.New()
	_, _ = d.WriteString(u.Op.String())
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(u.Callee)
	_, _ = d.Write([]byte{0})
	for _, arg := range u.Args {
		_, _ = d.WriteString(arg)
		_, _ = d.Write([]byte{0})
	}
	_, _ = d.WriteString(u.WorkingDir)
	return fmt.Sprintf("%016x", d.Sum64())
}
