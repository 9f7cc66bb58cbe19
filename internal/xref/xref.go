// Package xref validates @ cross-references in markdown files.
//
// A run discovers markdown files under a root, extracts @ tokens from prose,
// drops the ones that are not path references (emails, versions, handles and
// the like), and checks that the rest exist relative to the root.
package xref

import (
	"fmt"
	"os"
	"path/filepath"
)

// Options configures a validation run.
type Options struct {
	// Root is the repository root; references resolve against it.
	Root string
	// Exclude holds directory names or root-relative directory paths to skip.
	// DefaultExclude is used when nil.
	Exclude []string
}

// Violation is a reference that does not resolve.
type Violation struct {
	Source    string `json:"source" yaml:"source"`
	Line      int    `json:"line" yaml:"line"`
	Reference string `json:"reference" yaml:"reference"`
	Message   string `json:"error" yaml:"error"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: @%s: %s", v.Source, v.Line, v.Reference, v.Message)
}

// Result is the outcome of one validation run.
type Result struct {
	Root              string      `json:"root" yaml:"root"`
	FilesScanned      int         `json:"files_scanned" yaml:"files_scanned"`
	ReferencesChecked int         `json:"references_checked" yaml:"references_checked"`
	Violations        []Violation `json:"violations" yaml:"violations"`
	// Warnings collects files that could not be read and were skipped.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HasViolations reports whether any reference failed to resolve.
func (r Result) HasViolations() bool {
	return len(r.Violations) > 0
}

// Validate runs discovery, extraction, classification and path checks over
// opts.Root. It returns an error only when the root cannot be traversed;
// broken references are reported through Result.Violations.
func Validate(opts Options) (Result, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve root %q: %w", opts.Root, err)
	}
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	files, err := Discover(root, NewExclusionSet(exclude...))
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Root:         root,
		FilesScanned: len(files),
		Violations:   []Violation{},
	}
	for _, file := range files {
		rel, err := filepath.Rel(root, file)
		if err != nil {
			rel = file
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(file)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not read %s: %v", rel, err))
			continue
		}

		for _, c := range Extract(rel, string(data)) {
			if IsNoise(c.Token, c.Context) {
				continue
			}
			result.ReferencesChecked++
			if msg := CheckPath(root, c.Token); msg != "" {
				result.Violations = append(result.Violations, Violation{
					Source:    c.Source,
					Line:      c.Line,
					Reference: c.Token,
					Message:   msg,
				})
			}
		}
	}
	return result, nil
}
