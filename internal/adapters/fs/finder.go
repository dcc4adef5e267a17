package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/beelder/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathFinder = (*Finder)(nil)

// recursiveWildcard matches any number of directories in a source pattern.
const recursiveWildcard = "**"

// Finder implements ports.PathFinder on top of filepath.Glob and the Walker.
type Finder struct {
	walker  *Walker
	ignores []string
}

// NewFinder creates a Finder. Directories named in ignores are not searched by recursive patterns.
func NewFinder(walker *Walker, ignores ...string) *Finder {
	return &Finder{walker: walker, ignores: ignores}
}

// Root returns the canonical path of the single build-description file in dir.
func (f *Finder) Root(dir string) (string, error) {
	matches, err := f.glob(filepath.Join(dir, "*"+domain.DescriptionExtension))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", zerr.With(zerr.Wrap(domain.ErrNoRootFile, "no build description found"), "dir", dir)
	case 1:
		return canonical(matches[0])
	default:
		return "", zerr.With(
			zerr.Wrap(domain.ErrMultipleRootFiles, "more than one build description found"),
			"files", strings.Join(matches, ", "),
		)
	}
}

// Descriptions returns the canonical paths of the files matched by <dir>/<pattern>/*.bee.
func (f *Finder) Descriptions(dir, pattern string) ([]string, error) {
	matches, err := f.glob(filepath.Join(dir, pattern, "*"+domain.DescriptionExtension))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(matches))
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		path, err := canonical(match)
		if err != nil {
			return nil, err
		}
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}
	slices.Sort(result)
	return result, nil
}

// Sources expands a source pattern rooted at dir. Matches are relative to dir.
func (f *Finder) Sources(dir, pattern string) ([]string, error) {
	pattern = filepath.Clean(pattern)
	if filepath.IsAbs(pattern) || pattern == ".." || strings.HasPrefix(pattern, ".."+string(filepath.Separator)) {
		return nil, zerr.With(zerr.New("source pattern must stay inside the unit directory"), "pattern", pattern)
	}

	var matches []string
	if strings.Contains(pattern, recursiveWildcard) {
		if _, err := filepath.Match(strings.ReplaceAll(pattern, recursiveWildcard, "*"), ""); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "malformed source pattern"), "pattern", pattern)
		}
		segments := strings.Split(filepath.ToSlash(pattern), "/")
		for path := range f.walker.WalkFiles(dir, f.ignores) {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize source"), "path", path)
			}
			if matchSegments(segments, strings.Split(filepath.ToSlash(rel), "/")) {
				matches = append(matches, rel)
			}
		}
	} else {
		found, err := f.glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to relativize source"), "path", path)
			}
			matches = append(matches, rel)
		}
	}

	slices.Sort(matches)
	return slices.Compact(matches), nil
}

// MakeDir creates the directory and its parents.
func (f *Finder) MakeDir(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

func (f *Finder) glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "pattern", pattern)
	}
	return matches, nil
}

// matchSegments matches a slash-separated path against pattern segments where "**"
// stands for zero or more directories.
func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == recursiveWildcard {
		for i := 0; i <= len(path); i++ {
			if matchSegments(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	if ok, _ := filepath.Match(pattern[0], path[0]); !ok {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", path)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve path"), "path", abs)
	}
	return resolved, nil
}
