// Package changelog turns conventional commit subjects into an Unreleased
// changelog section.
package changelog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

// DefaultHeader starts a changelog that does not exist yet.
const DefaultHeader = "# Changelog\n\nAll notable changes to this project will be documented in this file.\n\n"

// UnreleasedMarker identifies a pending section.
const UnreleasedMarker = "[Unreleased]"

// OtherType collects commits without a recognized type prefix.
const OtherType = "other"

var (
	onelineRE = regexp.MustCompile(`^([a-f0-9]+)\s+(.+)$`)
	typedRE   = regexp.MustCompile(`^(feat|fix|refactor|docs|chore|test|perf):\s+(.+)$`)
)

// Sections lists commit types in render order with their headings.
var Sections = []struct {
	Type    string
	Heading string
}{
	{"feat", "### Features"},
	{"fix", "### Fixes"},
	{"refactor", "### Refactor"},
	{"docs", "### Documentation"},
	{"test", "### Tests"},
	{"perf", "### Performance"},
	{"chore", "### Chore"},
	{OtherType, "### Other"},
}

// Commit is one parsed `git log --oneline` line.
type Commit struct {
	Hash    string
	Type    string
	Message string
}

// ParseCommit splits "<hash> <subject>" and a conventional "type: message"
// subject. Untyped subjects get OtherType.
func ParseCommit(line string) (Commit, bool) {
	m := onelineRE.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Commit{}, false
	}
	c := Commit{Hash: m[1], Type: OtherType, Message: m[2]}
	if tm := typedRE.FindStringSubmatch(m[2]); tm != nil {
		c.Type = tm[1]
		c.Message = tm[2]
	}
	return c, true
}

// Group parses lines and buckets commits by type, keeping input order.
// Unparseable lines are dropped.
func Group(lines []string) map[string][]Commit {
	grouped := map[string][]Commit{}
	for _, line := range lines {
		c, ok := ParseCommit(line)
		if !ok {
			continue
		}
		grouped[c.Type] = append(grouped[c.Type], c)
	}
	return grouped
}

// RenderSection builds the "## [Unreleased]" block. Types without commits are
// omitted.
func RenderSection(grouped map[string][]Commit) string {
	lines := []string{"## " + UnreleasedMarker, ""}
	for _, s := range Sections {
		commits := grouped[s.Type]
		if len(commits) == 0 {
			continue
		}
		lines = append(lines, s.Heading)
		for _, c := range commits {
			lines = append(lines, "- "+c.Message+" ("+c.Hash+")")
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Insert places section after the header block of existing, which is
// everything up to the first blank line. An empty existing becomes
// DefaultHeader followed by section. It returns false when an Unreleased
// section is already present.
func Insert(existing, section string) (string, bool) {
	if existing == "" {
		return DefaultHeader + section + "\n", true
	}
	if strings.Contains(existing, UnreleasedMarker) {
		return existing, false
	}
	if i := strings.Index(existing, "\n\n"); i >= 0 {
		return existing[:i+2] + section + "\n" + existing[i+2:], true
	}
	return existing + "\n" + section, true
}

// UpdateFile inserts section into the changelog at path, creating the file
// when it does not exist. It returns the resulting content and whether the
// section was inserted. With dryRun nothing is written.
func UpdateFile(path, section string, dryRun bool) (string, bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", false, fmt.Errorf("failed to read changelog: %w", err)
	}
	updated, inserted := Insert(string(existing), section)
	if !inserted || dryRun {
		return updated, inserted, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write changelog: %w", err)
	}
	return updated, true, nil
}
