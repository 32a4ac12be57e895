// Package gitutil runs the handful of git commands the release pipeline needs.
package gitutil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// Runner executes git with the given arguments and returns its standard
// output. A non-zero exit must be reported as a *specerrors.GitError carrying
// the exit code.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Binary overrides the executable name. Defaults to "git".
	Binary string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec // arguments are built by this package
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	gitErr := &specerrors.GitError{
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Cause:    err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		gitErr.ExitCode = exitErr.ExitCode()
	}
	return stdout.Bytes(), gitErr
}

// Repo issues git commands through a Runner.
type Repo struct {
	runner Runner
}

// New returns a Repo backed by runner. A nil runner uses ExecRunner in the
// current directory.
func New(runner Runner) *Repo {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Repo{runner: runner}
}

// Open returns a Repo running git in dir.
func Open(dir string) *Repo {
	return New(ExecRunner{Dir: dir})
}

// IsIgnored reports whether path is excluded by the repository's ignore rules.
func (r *Repo) IsIgnored(ctx context.Context, path string) (bool, error) {
	_, err := r.runner.Run(ctx, "check-ignore", "-q", "--", path)
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, err
}

// Add stages paths. Calling it with no paths is a no-op.
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	_, err := r.runner.Run(ctx, append([]string{"add", "--"}, paths...)...)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD. When paths
// are given, only those paths are compared.
func (r *Repo) HasStagedChanges(ctx context.Context, paths ...string) (bool, error) {
	args := []string{"diff", "--cached", "--quiet"}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	_, err := r.runner.Run(ctx, args...)
	if err == nil {
		return false, nil
	}
	if exitCode(err) == 1 {
		return true, nil
	}
	return false, err
}

// ShowFile returns the content of path at revision rev. A path or revision
// that does not exist yields an error matching specerrors.ErrNotFound.
func (r *Repo) ShowFile(ctx context.Context, rev, path string) ([]byte, error) {
	out, err := r.runner.Run(ctx, "show", rev+":"+path)
	if err == nil {
		return out, nil
	}
	var gitErr *specerrors.GitError
	if errors.As(err, &gitErr) && gitErr.ExitCode > 0 && isMissingObject(gitErr.Stderr) {
		gitErr.Missing = true
	}
	return nil, err
}

func exitCode(err error) int {
	var gitErr *specerrors.GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}
	return -1
}

var missingMarkers = []string{
	"does not exist",
	"exists on disk, but not in",
	"invalid object name",
	"bad revision",
	"unknown revision",
	"not a valid object name",
}

func isMissingObject(stderr string) bool {
	s := strings.ToLower(stderr)
	for _, m := range missingMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
