package specerrors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	t.Run("message with status", func(t *testing.T) {
		err := &FetchError{URL: "https://example.com/spec", StatusCode: 503}
		assert.Equal(t, "fetch error for https://example.com/spec: unexpected status 503", err.Error())
	})

	t.Run("message with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &FetchError{URL: "https://example.com/spec", Cause: cause}
		assert.Equal(t, "fetch error for https://example.com/spec: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("matches sentinel through wrapping", func(t *testing.T) {
		err := fmt.Errorf("fetcher: %w", &FetchError{StatusCode: 404})
		assert.ErrorIs(t, err, ErrFetch)
		assert.NotErrorIs(t, err, ErrDecode)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, 404, fetchErr.StatusCode)
	})
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name string
		err  *DecodeError
		want string
	}{
		{"minimal", &DecodeError{}, "decode error"},
		{"source only", &DecodeError{Source: "spec.json"}, "decode error in spec.json"},
		{
			"all fields",
			&DecodeError{Source: "spec.json", Offset: 12, Message: "unexpected end", Cause: errors.New("EOF")},
			"decode error in spec.json at offset 12: unexpected end: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrDecode)
		})
	}
}

func TestArgumentError(t *testing.T) {
	tests := []struct {
		name string
		err  *ArgumentError
		want string
	}{
		{"missing", &ArgumentError{Name: "url"}, "--url argument is required"},
		{"invalid value", &ArgumentError{Name: "new-version", Value: "1.x", Message: "invalid semver version"}, "invalid semver version: 1.x"},
		{"invalid without value", &ArgumentError{Name: "files", Message: "no files given"}, "--files: no files given"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrArgument)
		})
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("yaml: line 3: did not find expected key")
	err := &ConfigError{Source: ".specsync.yaml", Option: "timeout", Message: "invalid duration", Cause: cause}

	assert.Equal(t, "configuration error in .specsync.yaml for timeout: invalid duration: yaml: line 3: did not find expected key", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.ErrorIs(t, err, cause)
}

func TestVersionError(t *testing.T) {
	err := &VersionError{Version: "01.2.3", Message: "leading zero"}
	assert.Equal(t, "invalid semver version: 01.2.3 (leading zero)", err.Error())
	assert.ErrorIs(t, err, ErrVersion)
	assert.Equal(t, "invalid semver version: x", (&VersionError{Version: "x"}).Error())
}

func TestGitError(t *testing.T) {
	t.Run("exit status and stderr", func(t *testing.T) {
		err := &GitError{Args: []string{"add", "--", "a.json"}, ExitCode: 128, Stderr: "fatal: not a git repository"}
		assert.Equal(t, "git add -- a.json exited with status 128: fatal: not a git repository", err.Error())
		assert.ErrorIs(t, err, ErrGit)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing object matches ErrNotFound", func(t *testing.T) {
		err := fmt.Errorf("gitutil: %w", &GitError{Args: []string{"show", "HEAD:spec.json"}, ExitCode: 128, Missing: true})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, ErrGit)
	})

	t.Run("git not runnable", func(t *testing.T) {
		err := &GitError{Args: []string{"status"}, ExitCode: -1, Cause: os.ErrNotExist}
		assert.Equal(t, "git status failed: file does not exist", err.Error())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
