package domain

// Project is the description of one Build-operation unit handed to a project generator.
type Project struct {
	Name         string
	Dir          string
	Kind         TargetKind
	Sources      []string
	Extensions   map[string]ExtensionOption
	LinkerFlags  []string
	Defines      map[string]string
	Dependencies []ProjectRef
}

// ProjectRef names a static library the project links against.
type ProjectRef struct {
	Name string
	Dir  string
}
