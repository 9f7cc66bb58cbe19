package xrefserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestValidateReferencesTool(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "AGENTS.md", "Load @.genie/agents/core.md and @.genie/agents/gone.md\n")
	writeFile(t, root, ".genie/agents/core.md", "# Core\n")
	writeFile(t, root, "vendor/x.md", "@nope.md\n")

	h := &handler{root: root}
	_, out, err := h.validateReferences(context.Background(), nil, validateReferencesInput{})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Equal(t, 3, out.FilesScanned)
	require.Len(t, out.Violations, 2)
	assert.Equal(t, ".genie/agents/gone.md", out.Violations[0].Reference)
	assert.Equal(t, "nope.md", out.Violations[1].Reference)
	assert.Contains(t, out.Message, "Found 2 broken @ reference(s)")

	_, out, err = h.validateReferences(context.Background(), nil, validateReferencesInput{Exclude: []string{"vendor"}})
	require.NoError(t, err)
	require.Len(t, out.Violations, 1)
}

func TestValidateReferencesToolRelativeRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/README.md", "See @docs/\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg", "docs"), 0o755))

	h := &handler{root: root}
	_, out, err := h.validateReferences(context.Background(), nil, validateReferencesInput{Root: "pkg"})
	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Equal(t, 1, out.ReferencesChecked)
	assert.Contains(t, out.Message, "All @ cross-references valid")

	_, _, err = h.validateReferences(context.Background(), nil, validateReferencesInput{Root: "missing"})
	assert.Error(t, err)
}
