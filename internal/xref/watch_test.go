package xref

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRevalidatesOnChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "# A\n")
	writeFile(t, root, "docs/b.md", "# B\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Options{Root: root}, 20*time.Millisecond, func(res Result, err error) {
			if err == nil {
				results <- res
			}
		})
	}()

	next := func() Result {
		t.Helper()
		select {
		case res := <-results:
			return res
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for validation run")
			return Result{}
		}
	}

	first := next()
	assert.Equal(t, 2, first.FilesScanned)
	assert.False(t, first.HasViolations())

	writeFile(t, root, "docs/c.md", "see @docs/nowhere.md\n")
	res := next()
	for i := 0; i < 5 && !res.HasViolations(); i++ {
		res = next()
	}
	require.True(t, res.HasViolations())
	assert.Equal(t, "docs/c.md", res.Violations[0].Source)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
