package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateDoc = "# State\n\n## Validation\nlast_version: 2.4.0-rc.1\nlast_check: today\n"

func TestPatch(t *testing.T) {
	got, changed, err := Patch(stateDoc, "2.4.0-rc.2")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "# State\n\n## Validation\nlast_version: 2.4.0-rc.2\nlast_check: today\n", got)

	got, changed, err = Patch(got, "2.4.0-rc.2")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Contains(t, got, "last_version: 2.4.0-rc.2\n")

	_, _, err = Patch("# nothing here\n", "1.0.0")
	assert.ErrorIs(t, err, ErrNoVersionField)
}

func TestPatchKeepsFollowingLine(t *testing.T) {
	got, changed, err := Patch("last_version:   old\nnext: line\n", "1.2.3")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "last_version:   1.2.3\nnext: line\n", got)
}

func TestPatchLiteralDollar(t *testing.T) {
	got, _, err := Patch("last_version: x\n", "$1")
	require.NoError(t, err)
	assert.Equal(t, "last_version: $1\n", got)
}

func TestPackageVersion(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "package.json")

	require.NoError(t, os.WriteFile(p, []byte(`{"name":"genie","version":"2.4.0"}`), 0o644))
	v, err := PackageVersion(p)
	require.NoError(t, err)
	assert.Equal(t, "2.4.0", v)

	require.NoError(t, os.WriteFile(p, []byte(`{"name":"genie"}`), 0o644))
	_, err = PackageVersion(p)
	assert.ErrorContains(t, err, "no version field")

	_, err = PackageVersion(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	p := filepath.Join(t.TempDir(), "STATE.md")
	require.NoError(t, os.WriteFile(p, []byte(stateDoc), 0o644))

	changed, err := Update(p, "3.0.0", true)
	require.NoError(t, err)
	assert.True(t, changed)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, stateDoc, string(data), "dry run must not write")

	changed, err = Update(p, "3.0.0", false)
	require.NoError(t, err)
	assert.True(t, changed)
	data, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), "last_version: 3.0.0\n")

	changed, err = Update(p, "3.0.0", false)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Equal(t, "chore: auto-update STATE.md to v3.0.0 [skip ci]", CommitMessage("3.0.0"))
}
