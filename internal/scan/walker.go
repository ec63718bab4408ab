package scan

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSkip is the built-in skip-list. Test setup files are bootstrapped by
// name from tooling configuration, so renaming them would break the setup.
var DefaultSkip = []string{"setupTests.*"}

// DefaultSkipDirs are directories never descended into.
var DefaultSkipDirs = []string{".git", "node_modules"}

// Walker produces the list of files under a root, honouring a skip-list.
type Walker struct {
	skip     []string
	skipDirs []string
}

// NewWalker creates a Walker that skips DefaultSkip and DefaultSkipDirs plus
// any extra patterns. Patterns are validated up front so a typo in a config
// file fails before anything is touched.
func NewWalker(extra ...string) (*Walker, error) {
	skip := make([]string, 0, len(DefaultSkip)+len(extra))
	skip = append(skip, DefaultSkip...)
	for _, p := range extra {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid skip pattern %q", p)
		}
		skip = append(skip, p)
	}
	return &Walker{skip: skip, skipDirs: DefaultSkipDirs}, nil
}

// Patterns returns the effective skip patterns.
func (w *Walker) Patterns() []string {
	out := make([]string, len(w.skip))
	copy(out, w.skip)
	return out
}

// Files walks root and returns every regular file that is not skipped.
//
// Returned paths are relative to root, slash-separated and sorted, so both
// passes and their tests see a deterministic order. The walk is drained
// completely before returning; callers never act on a partially listed tree.
func (w *Walker) Files(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if w.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		// Symlinks, sockets and the like are left alone.
		if !d.Type().IsRegular() {
			return nil
		}
		if w.Skipped(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Skipped reports whether the root-relative path rel matches a skip pattern,
// either by its base name or as a whole.
func (w *Walker) Skipped(rel string) bool {
	base := path.Base(rel)
	for _, pattern := range w.skip {
		if match(pattern, base) || match(pattern, rel) {
			return true
		}
	}
	return false
}

func (w *Walker) skipDir(rel string) bool {
	base := path.Base(rel)
	for _, name := range w.skipDirs {
		if base == name {
			return true
		}
	}
	// A pattern such as "legacy/**" also matches the directory itself.
	return w.Skipped(rel)
}

// match wraps doublestar.Match; patterns are validated in NewWalker.
func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
