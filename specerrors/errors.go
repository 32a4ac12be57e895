package specerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrFetch indicates the upstream document could not be retrieved.
	ErrFetch = errors.New("fetch error")

	// ErrDecode indicates a document could not be decoded.
	ErrDecode = errors.New("decode error")

	// ErrArgument indicates a missing or invalid command-line argument.
	ErrArgument = errors.New("argument error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrVersion indicates a malformed semantic version.
	ErrVersion = errors.New("version error")

	// ErrGit indicates a git command failed.
	ErrGit = errors.New("git error")

	// ErrNotFound indicates a file or object does not exist.
	ErrNotFound = errors.New("not found")
)

// FetchError represents a failure to retrieve the upstream specification.
type FetchError struct {
	// URL is the requested location
	URL string
	// StatusCode is the HTTP status received (0 if no response)
	StatusCode int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FetchError) Error() string {
	msg := "fetch error"
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": unexpected status %d", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// DecodeError represents a document that is not valid JSON, or JSON of the
// wrong shape.
type DecodeError struct {
	// Source is the file path, URL or "<input>"
	Source string
	// Offset is the byte offset of the failure (0 if unknown)
	Offset int64
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *DecodeError) Error() string {
	msg := "decode error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Offset > 0 {
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// ArgumentError represents a missing or invalid command-line argument.
type ArgumentError struct {
	// Name is the argument name without the leading "--"
	Name string
	// Value is the rejected value (empty when the argument is missing)
	Value string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ArgumentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("--%s argument is required", e.Name)
	}
	if e.Value != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Value)
	}
	return fmt.Sprintf("--%s: %s", e.Name, e.Message)
}

// Is reports whether target matches this error type.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrArgument
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	// Source is the configuration file or environment variable
	Source string
	// Option is the name of the problematic option
	Option string
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// VersionError represents a string that is not a valid semantic version.
type VersionError struct {
	// Version is the rejected input
	Version string
	// Message describes why it was rejected
	Message string
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := fmt.Sprintf("invalid semver version: %s", e.Version)
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrVersion
}

// GitError represents a failed git invocation.
type GitError struct {
	// Args are the git arguments, without the leading "git"
	Args []string
	// ExitCode is the process exit status (-1 if git did not run)
	ExitCode int
	// Stderr is the trimmed standard error output
	Stderr string
	// Missing is true when git reported that the object does not exist
	Missing bool
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *GitError) Error() string {
	msg := "git " + strings.Join(e.Args, " ")
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitCode)
	} else {
		msg += " failed"
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GitError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// A GitError for a missing object also matches ErrNotFound.
func (e *GitError) Is(target error) bool {
	return target == ErrGit || (e.Missing && target == ErrNotFound)
}
