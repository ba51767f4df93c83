// Package git provides Git operations via exec for review-cli.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/oidellajulio/code-review-cli/internal/output"
)

// Repo runs git commands inside Dir. An empty Dir means the current directory.
type Repo struct {
	Dir string
}

// Run executes a git command in the current directory.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command in the current directory with ctx.
func RunContext(ctx context.Context, args ...string) (string, error) {
	return Repo{}.Run(ctx, args...)
}

// Run executes a git command in the repository directory and returns its
// trimmed stdout.
func (r Repo) Run(ctx context.Context, args ...string) (string, error) {
	out, err := r.RunRaw(ctx, args...)
	return strings.TrimSpace(out), err
}

// RunRaw executes a git command and returns stdout untouched.
func (r Repo) RunRaw(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir

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

	return stdout.String(), nil
}

// IsRepo reports whether the directory is inside a git repository.
func (r Repo) IsRepo(ctx context.Context) bool {
	_, err := r.Run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// Root returns the top-level directory of the repository.
func (r Repo) Root(ctx context.Context) (string, error) {
	root, err := r.Run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (r Repo) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := r.Run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to get current branch", err)
	}
	return branch, nil
}

// RefExists reports whether ref resolves to a commit.
func (r Repo) RefExists(ctx context.Context, ref string) bool {
	if ref == "" {
		return false
	}
	_, err := r.Run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	return err == nil
}
