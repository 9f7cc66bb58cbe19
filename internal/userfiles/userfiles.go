// Package userfiles keeps personal Genie files out of commits.
package userfiles

import (
	"context"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/moasq/geniekit/internal/terminal"
)

// StagedLister reports the files staged for commit.
type StagedLister interface {
	StagedFiles(ctx context.Context) ([]string, error)
}

// Result is the outcome of a staged-file check.
type Result struct {
	// Staged is how many files were staged in total.
	Staged int
	// Violations are the protected files found among them, in protected order.
	Violations []string
}

// HasViolations reports whether any protected file is staged.
func (r Result) HasViolations() bool {
	return len(r.Violations) > 0
}

// FindProtected returns the protected paths present in staged, in the order
// they appear in protected.
func FindProtected(staged, protected []string) []string {
	normalized := make([]string, 0, len(staged))
	for _, s := range staged {
		normalized = append(normalized, normalize(s))
	}
	var found []string
	for _, p := range protected {
		if slices.Contains(normalized, normalize(p)) {
			found = append(found, p)
		}
	}
	return found
}

func normalize(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// Check lists the staged files and matches them against protected.
func Check(ctx context.Context, git StagedLister, protected []string) (Result, error) {
	staged, err := git.StagedFiles(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list staged files: %w", err)
	}
	return Result{
		Staged:     len(staged),
		Violations: FindProtected(staged, protected),
	}, nil
}

// WriteReport prints the outcome: a success line on out, or the offending
// files plus remediation steps on errOut.
func WriteReport(out, errOut io.Writer, res Result, protected []string) {
	if !res.HasViolations() {
		terminal.Success(out, "User files validation passed (no personal files in commit)")
		return
	}

	terminal.Error(errOut, "User files detected in commit (should be gitignored):")
	fmt.Fprintln(errOut)
	for _, v := range res.Violations {
		terminal.Detail(errOut, 3, v)
	}
	fmt.Fprintln(errOut)
	fmt.Fprintln(errOut, "These files are personal and should never be committed.")
	fmt.Fprintln(errOut)
	fmt.Fprintln(errOut, "Fix:")
	terminal.Detail(errOut, 2, "1. Unstage files:")
	for _, v := range res.Violations {
		terminal.Detail(errOut, 7, "git reset HEAD "+v)
	}
	terminal.Detail(errOut, 2, "2. Verify .gitignore contains:")
	for _, p := range protected {
		terminal.Detail(errOut, 7, p)
	}
	terminal.Detail(errOut, 2, "3. Retry commit")
	fmt.Fprintln(errOut)
}
