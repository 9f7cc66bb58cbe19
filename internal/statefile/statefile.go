// Package statefile keeps the last_version field of the Genie state file in
// step with package.json.
package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var lastVersionRE = regexp.MustCompile(`(last_version:[ \t]+)[^\n]+`)

// ErrNoVersionField is returned when the state file has no last_version line.
var ErrNoVersionField = errors.New("no last_version field")

// PackageVersion reads the version field of a package.json.
func PackageVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if strings.TrimSpace(pkg.Version) == "" {
		return "", fmt.Errorf("no version field in %s", path)
	}
	return strings.TrimSpace(pkg.Version), nil
}

// Patch sets every last_version value in content to version. It reports
// whether anything changed.
func Patch(content, version string) (string, bool, error) {
	if !lastVersionRE.MatchString(content) {
		return content, false, ErrNoVersionField
	}
	updated := lastVersionRE.ReplaceAllString(content, "${1}"+escapeReplacement(version))
	return updated, updated != content, nil
}

func escapeReplacement(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// Update patches the state file at path. With dryRun it reports what would
// change without writing.
func Update(path, version string, dryRun bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read state file: %w", err)
	}
	updated, changed, err := Patch(string(data), version)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if !changed || dryRun {
		return changed, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat state file: %w", err)
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write state file: %w", err)
	}
	return true, nil
}

// CommitMessage is the message used when the update is committed.
func CommitMessage(version string) string {
	return fmt.Sprintf("chore: auto-update STATE.md to v%s [skip ci]", version)
}
