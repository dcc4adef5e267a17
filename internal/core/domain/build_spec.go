package domain

import (
	"go.trai.ch/zerr"
)

// TargetKind is the kind of artifact a build-description file produces.
type TargetKind int

const (
	// KindUnknown means the Build field has not been parsed (or is absent).
	KindUnknown TargetKind = iota
	// KindStaticLib produces an archive through the archiver.
	KindStaticLib
	// KindExecutable produces a binary through the linker.
	KindExecutable
)

const (
	// DefaultArchiver is used when a StaticLib target does not name an archiver.
	DefaultArchiver = "ar"
	// DefaultLinker is used when an Executable target does not name a linker.
	DefaultLinker = "cc"
)

// ParseTargetKind converts the textual Type value of a Build field.
func ParseTargetKind(s string) (TargetKind, bool) {
	switch s {
	case "StaticLib":
		return KindStaticLib, true
	case "Executable":
		return KindExecutable, true
	default:
		return KindUnknown, false
	}
}

// String returns the textual representation used in build-description files.
func (k TargetKind) String() string {
	switch k {
	case KindStaticLib:
		return "StaticLib"
	case KindExecutable:
		return "Executable"
	default:
		return "Unknown"
	}
}

// ExtensionOption is the compiler and flag list registered for a source file extension.
type ExtensionOption struct {
	Compiler InternedString
	Flags    []InternedString
}

// BuildSpec is the content of the Build field of a build-description file.
type BuildSpec struct {
	Kind         TargetKind
	Depends      []InternedString
	Sources      []InternedString
	Extensions   map[string]*ExtensionOption
	Linker       InternedString
	LinkerFlags  []InternedString
	Archiver     InternedString
	hasArchiver  bool
	hasLinker    bool
	declaredSpec bool
}

// Declare marks the Build field as present in the description file.
func (b *BuildSpec) Declare() {
	b.declaredSpec = true
}

// Declared reports whether the description file has a Build field.
func (b *BuildSpec) Declared() bool {
	return b.declaredSpec
}

// SetCompiler registers the compiler for an extension.
// It returns false if a compiler was already registered for it.
func (b *BuildSpec) SetCompiler(ext, compiler string) bool {
	opt := b.option(ext)
	if !opt.Compiler.IsZero() {
		return false
	}
	opt.Compiler = NewInternedString(compiler)
	return true
}

// AddFlag appends a compiler flag for an extension.
func (b *BuildSpec) AddFlag(ext, flag string) {
	opt := b.option(ext)
	opt.Flags = append(opt.Flags, NewInternedString(flag))
}

func (b *BuildSpec) option(ext string) *ExtensionOption {
	if b.Extensions == nil {
		b.Extensions = make(map[string]*ExtensionOption)
	}
	opt, ok := b.Extensions[ext]
	if !ok {
		opt = &ExtensionOption{}
		b.Extensions[ext] = opt
	}
	return opt
}

// OptionFor returns the compiler option registered for the extension (without the leading dot).
func (b *BuildSpec) OptionFor(ext string) (*ExtensionOption, bool) {
	opt, ok := b.Extensions[ext]
	if !ok || opt.Compiler.IsZero() {
		return nil, false
	}
	return opt, true
}

// SetLinker sets the linker program.
func (b *BuildSpec) SetLinker(linker string) {
	b.Linker = NewInternedString(linker)
	b.hasLinker = true
}

// AddLinkerFlag appends a linker flag.
func (b *BuildSpec) AddLinkerFlag(flag string) {
	b.LinkerFlags = append(b.LinkerFlags, NewInternedString(flag))
}

// SetArchiver sets the archiver program.
func (b *BuildSpec) SetArchiver(archiver string) {
	b.Archiver = NewInternedString(archiver)
	b.hasArchiver = true
}

// LinkerOrDefault returns the configured linker or DefaultLinker.
func (b *BuildSpec) LinkerOrDefault() string {
	if b.hasLinker {
		return b.Linker.String()
	}
	return DefaultLinker
}

// ArchiverOrDefault returns the configured archiver or DefaultArchiver.
func (b *BuildSpec) ArchiverOrDefault() string {
	if b.hasArchiver {
		return b.Archiver.String()
	}
	return DefaultArchiver
}

// Validate checks the field combinations allowed for the target kind.
func (b *BuildSpec) Validate() error {
	switch b.Kind {
	case KindExecutable:
		if b.hasArchiver {
			return zerr.Wrap(ErrInvalidField, "can't use Archiver subfield for Executable type")
		}
	case KindStaticLib:
		if b.hasLinker || len(b.LinkerFlags) > 0 {
			return zerr.Wrap(ErrInvalidField, "can't use Link subfield for StaticLib type")
		}
	case KindUnknown:
		if b.declaredSpec && len(b.Sources) > 0 {
			return zerr.Wrap(ErrInvalidField, "Build field requires a Type")
		}
	}
	for ext, opt := range b.Extensions {
		if opt.Compiler.IsZero() {
			return zerr.With(zerr.Wrap(ErrInvalidField, "no compiler is specified"), "extension", ext)
		}
	}
	return nil
}
