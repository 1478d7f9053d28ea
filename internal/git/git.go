// Package git inspects the blog checkout via the git binary. Exports
// land in a working tree the user commits by hand; this package only
// reports state, it never mutates the repository.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/obeck/outpost/internal/output"
)

// RunIn executes a git command inside dir and returns trimmed stdout.
func RunIn(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo reports whether dir is inside a git working tree.
func IsRepo(ctx context.Context, dir string) bool {
	_, err := RunIn(ctx, dir, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the branch checked out in dir.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	branch, err := RunIn(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// HasUncommittedChanges reports whether dir's working tree has staged
// or unstaged changes. A freshly exported post shows up here until the
// user commits it.
func HasUncommittedChanges(ctx context.Context, dir string) bool {
	out, err := RunIn(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false
	}
	return out != ""
}
