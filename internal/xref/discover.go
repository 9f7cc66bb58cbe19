package xref

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DefaultExclude lists directories that never hold hand-written documentation.
// Entries without a slash match any directory with that name; entries with a
// slash match a directory at that path relative to the root.
var DefaultExclude = []string{
	".git",
	"node_modules",
	"dist",
	"build",
	".genie/state",
	".genie/backups",
}

// ExclusionSet decides which directories the discoverer skips.
type ExclusionSet struct {
	names map[string]struct{}
	paths map[string]struct{}
}

// NewExclusionSet builds an exclusion set from directory names and
// root-relative directory paths.
func NewExclusionSet(entries ...string) ExclusionSet {
	set := ExclusionSet{
		names: map[string]struct{}{},
		paths: map[string]struct{}{},
	}
	for _, e := range entries {
		e = strings.Trim(filepath.ToSlash(strings.TrimSpace(e)), "/")
		if e == "" || e == "." {
			continue
		}
		if strings.Contains(e, "/") {
			set.paths[path.Clean(e)] = struct{}{}
		} else {
			set.names[e] = struct{}{}
		}
	}
	return set
}

// Excludes reports whether the directory at rel (slash-separated, relative to
// the root) is excluded.
func (s ExclusionSet) Excludes(rel string) bool {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." {
		return false
	}
	if _, ok := s.names[path.Base(rel)]; ok {
		return true
	}
	_, ok := s.paths[rel]
	return ok
}

// Entries returns the configured exclusions, names first.
func (s ExclusionSet) Entries() []string {
	out := make([]string, 0, len(s.names)+len(s.paths))
	for n := range s.names {
		out = append(out, n)
	}
	for p := range s.paths {
		out = append(out, p)
	}
	return out
}

// Discover walks root and returns every markdown file outside the excluded
// directories, in lexical walk order. Any traversal error aborts the walk.
func Discover(root string, exclude ExclusionSet) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(root, current)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if exclude.Excludes(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if isMarkdown(d.Name()) {
			files = append(files, current)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return files, nil
}

func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}
