package ports

// PathFinder resolves the files a build-description file refers to.
//
//go:generate mockgen -source=finder.go -destination=mocks/mock_finder.go -package=mocks
type PathFinder interface {
	// Root returns the single build-description file in dir.
	Root(dir string) (string, error)

	// Descriptions returns the canonical paths of the build-description files matched by
	// <dir>/<pattern>/*.bee, sorted.
	Descriptions(dir, pattern string) ([]string, error)

	// Sources expands a source glob rooted at dir and returns the matches relative to dir, sorted.
	// "**" matches any number of directories.
	Sources(dir, pattern string) ([]string, error)

	// MakeDir creates the directory and its parents.
	MakeDir(path string) error
}
