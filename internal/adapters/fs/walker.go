// Package fs provides file system adapters for locating build-description and source files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root, skipping .git, .jj and ignored directories.
// Yielded paths start with root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root {
				if skipAction := w.shouldSkipDir(d, ignores); skipAction != nil {
					return skipAction
				}
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir returns filepath.SkipDir for directories that are never searched.
func (w *Walker) shouldSkipDir(d fs.DirEntry, ignores []string) error {
	if !d.IsDir() {
		return nil
	}
	name := d.Name()
	if name == ".git" || name == ".jj" {
		return filepath.SkipDir
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return filepath.SkipDir
		}
	}
	return nil
}
