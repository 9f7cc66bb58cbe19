package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/moasq/geniekit/internal/terminal"
	"github.com/moasq/geniekit/internal/xref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against root and captures output.
func execute(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	terminal.SetColor(false)

	rootFlag = ""
	xrefExclude, xrefFormat, xrefWatch = nil, "", false
	stateDryRun, stateNoCommit = false, false
	changelogDryRun, changelogNoStage = false, false
	treeOutput, treeFormat, treeDryRun, treePrint = "", "markdown", false, false
	t.Setenv("GENIEKIT_ROOT", "")
	t.Setenv("GENIEKIT_XREF_FORMAT", "")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--root", root}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestXrefJSONReportsViolation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "See @docs/guide.md.\nMissing @nope.md here.\n")
	writeFile(t, root, "docs/guide.md", "# Guide\n")

	out, _, err := execute(t, root, "xref", "--format", "json")
	require.ErrorIs(t, err, ErrReported)

	var res xref.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 2, res.FilesScanned)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "README.md", res.Violations[0].Source)
	assert.Equal(t, 2, res.Violations[0].Line)
	assert.Equal(t, "nope.md", res.Violations[0].Reference)
}

func TestXrefTextClean(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "Contact admin@example.com or @docs/.\n")
	writeFile(t, root, "docs/a.md", "npm i @types/node@latest\n")

	out, errOut, err := execute(t, root, "validate-refs")
	require.NoError(t, err)
	assert.Contains(t, out, "Validating @ cross-references...")
	assert.Contains(t, out, "Found 2 markdown files to check")
	assert.Contains(t, out, "✓ All @ cross-references valid")
	assert.Empty(t, errOut)
}

func TestXrefRejectsUnknownFormat(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "xref", "--format", "xml")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReported)
}

func TestPrecommitOutsideGit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "AGENTS.md", "Load @missing.md first.\n")

	_, errOut, err := execute(t, root, "precommit")
	require.ErrorIs(t, err, ErrReported)
	assert.Contains(t, errOut, "@missing.md")
}

func TestStateDryRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"version":"2.5.0"}`)
	state := "# State\nlast_version: 2.4.0\n"
	writeFile(t, root, ".genie/STATE.md", state)

	out, _, err := execute(t, root, "state", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: 2.5.0")
	assert.Contains(t, out, "Dry run: would update .genie/STATE.md to 2.5.0")

	data, err := os.ReadFile(filepath.Join(root, ".genie", "STATE.md"))
	require.NoError(t, err)
	assert.Equal(t, state, string(data))
}

func TestStateAlreadyCurrent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"version":"2.4.0"}`)
	writeFile(t, root, ".genie/STATE.md", "last_version: 2.4.0\n")

	out, _, err := execute(t, root, "state")
	require.NoError(t, err)
	assert.Contains(t, out, "already up to date (version: 2.4.0)")
}

func TestTreeWritesReport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".genie/agents/neurons/plan.md", "mcp__genie__run agent=\"implementor\"\n")
	writeFile(t, root, ".genie/agents/code/code.md", "Uses @.genie/agents/neurons/plan.md\n")

	out, _, err := execute(t, root, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 agents total")
	assert.Contains(t, out, "Agent neural tree generated: .genie/reports/agent-neural-tree.md")

	data, err := os.ReadFile(filepath.Join(root, ".genie", "reports", "agent-neural-tree.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- **Delegates to:** `implementor`")
	assert.Contains(t, string(data), "  - References: `plan`")
}

func TestTreeDryRunJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".genie/agents/neurons/plan.md", "# Plan\n")

	out, _, err := execute(t, root, "tree", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"category": "universal"`)

	_, err = os.Stat(filepath.Join(root, ".genie", "reports"))
	assert.True(t, os.IsNotExist(err), "json output must not write the report")
}
