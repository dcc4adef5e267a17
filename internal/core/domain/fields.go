package domain

// Fields holds the values the description parser extracted from one build-description file.
type Fields struct {
	Include  []InternedString
	Defines  map[string]InternedString
	Commands map[string][]InternedString
	Build    BuildSpec
	Default  []InternedString

	localDefines  map[string]struct{}
	localCommands map[string]struct{}
}

// NewFields creates an empty field set.
func NewFields() *Fields {
	return &Fields{
		Defines:       make(map[string]InternedString),
		Commands:      make(map[string][]InternedString),
		localDefines:  make(map[string]struct{}),
		localCommands: make(map[string]struct{}),
	}
}

// AddDefine records a define of this file. It returns false if the key is already defined.
func (f *Fields) AddDefine(key, value string) bool {
	if _, exists := f.Defines[key]; exists {
		return false
	}
	f.Defines[key] = NewInternedString(value)
	f.localDefines[key] = struct{}{}
	return true
}

// AppendCommand appends one command line to the named command of this file.
func (f *Fields) AppendCommand(name, line string) {
	f.Commands[name] = append(f.Commands[name], NewInternedString(line))
	f.localCommands[name] = struct{}{}
}

// Merge copies the defines and commands of an included file into f.
// Names declared by f itself are kept; names brought in by an earlier child are
// overwritten by later children.
func (f *Fields) Merge(child *Fields) {
	for key, value := range child.Defines {
		if _, local := f.localDefines[key]; local {
			continue
		}
		f.Defines[key] = value
	}
	for name, lines := range child.Commands {
		if _, local := f.localCommands[name]; local {
			continue
		}
		f.Commands[name] = append([]InternedString(nil), lines...)
	}
}

// Environment returns the defines as a KEY -> VALUE map.
func (f *Fields) Environment() map[string]string {
	env := make(map[string]string, len(f.Defines))
	for key, value := range f.Defines {
		env[key] = value.String()
	}
	return env
}
