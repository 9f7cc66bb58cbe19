package xref

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last filesystem event
// before validating again.
const DefaultDebounce = 500 * time.Millisecond

// Watch validates once, then again after every burst of filesystem changes
// under opts.Root, until ctx is cancelled. Runs happen one at a time on the
// calling goroutine and each outcome is handed to onResult.
func Watch(ctx context.Context, opts Options, debounce time.Duration, onResult func(Result, error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root %q: %w", opts.Root, err)
	}
	opts.Root = root
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}
	set := NewExclusionSet(exclude...)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchTree(watcher, root, root, set); err != nil {
		return err
	}

	onResult(Validate(opts))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// Errors here only mean the new directory vanished again.
					_ = addWatchTree(watcher, root, event.Name, set)
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			onResult(Validate(opts))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onResult(Result{}, fmt.Errorf("watcher error: %w", err))
		}
	}
}

func addWatchTree(watcher *fsnotify.Watcher, root, dir string, set ExclusionSet) error {
	return filepath.WalkDir(dir, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, current)
		if err != nil {
			return err
		}
		if set.Excludes(rel) {
			return filepath.SkipDir
		}
		if err := watcher.Add(current); err != nil {
			return fmt.Errorf("failed to watch %s: %w", current, err)
		}
		return nil
	})
}
