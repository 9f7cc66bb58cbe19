// Package gitutil runs the handful of git commands the maintenance tools need.
package gitutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Repo runs git inside Dir.
type Repo struct {
	Dir string
}

// New returns a Repo rooted at dir.
func New(dir string) *Repo {
	return &Repo{Dir: dir}
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
		}
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
	}
	return strings.TrimSpace(string(out)), nil
}

func lines(out string) []string {
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// StagedFiles lists paths staged for the next commit.
func (r *Repo) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// LastTag returns the most recent reachable tag, or "" when there is none.
func (r *Repo) LastTag(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "describe", "--tags", "--abbrev=0")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// CommitsSince returns one-line, non-merge commits after tag, newest first.
// An empty tag means the whole history of HEAD.
func (r *Repo) CommitsSince(ctx context.Context, tag string) ([]string, error) {
	rangeSpec := "HEAD"
	if tag != "" {
		rangeSpec = tag + "..HEAD"
	}
	out, err := r.run(ctx, "log", rangeSpec, "--oneline", "--no-merges")
	if err != nil {
		return nil, err
	}
	return lines(out), nil
}

// ShortHead returns the abbreviated hash of HEAD.
func (r *Repo) ShortHead(ctx context.Context) (string, error) {
	return r.run(ctx, "log", "-1", "--format=%h")
}

// Add stages paths.
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	_, err := r.run(ctx, append([]string{"add", "--"}, paths...)...)
	return err
}

// Commit records the staged changes with message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, "commit", "-m", message)
	return err
}
