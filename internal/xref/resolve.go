package xref

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CheckPath resolves token against root. A trailing slash asks for a
// directory, anything else for a regular file. It returns "" when the target
// exists with the expected kind, and a human-readable message otherwise.
func CheckPath(root, token string) string {
	target := filepath.Join(root, filepath.FromSlash(token))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Sprintf("Reference escapes repository root: %s", token)
	}

	info, err := os.Stat(target)
	if strings.HasSuffix(token, "/") {
		if err != nil || !info.IsDir() {
			return fmt.Sprintf("Directory not found: %s", token)
		}
		return ""
	}
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Sprintf("File not found: %s", token)
	}
	return ""
}
