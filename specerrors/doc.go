// Package specerrors provides structured error types for the release tooling.
//
// The types support [errors.Is] and [errors.As] so callers, and the CLI in
// particular, can tell a failed upstream fetch from a malformed document or a
// bad command-line argument.
//
// # Error Types
//
//   - [FetchError]: the upstream spec could not be retrieved
//   - [DecodeError]: a JSON document or sidecar file could not be decoded
//   - [ArgumentError]: a missing or invalid command-line argument
//   - [ConfigError]: an invalid configuration file or environment value
//   - [VersionError]: a malformed semantic version
//   - [GitError]: a failed git invocation
//
// # Sentinel Errors
//
// Each type matches a sentinel with errors.Is():
//
//	if errors.Is(err, specerrors.ErrFetch) {
//	    // upstream unavailable, retry the pipeline later
//	}
//
// [ErrNotFound] is additionally matched by a [GitError] whose object does not
// exist at the requested revision:
//
//	_, err := git.ShowFile(ctx, "HEAD", "riigikogu-openapi.json")
//	if errors.Is(err, specerrors.ErrNotFound) {
//	    // first release, no previous spec
//	}
package specerrors
