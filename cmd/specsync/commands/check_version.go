package commands

import (
	"context"
	"errors"

	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/internal/semver"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

var checkVersionUsage = usageText(
	"Usage: specsync check-version --new-version X.Y.Z [--json-file FILE] [--rev REV]",
	"",
	"Report whether the new spec version differs from info.version of the spec",
	"file committed at REV. A missing or unreadable previous file counts as a",
	"change.",
	"",
	"Arguments:",
	"  --new-version  version of the freshly fetched spec (required)",
	"  --json-file    spec file path in the repository (default: riigikogu-openapi.json)",
	"  --rev          revision to compare with (default: HEAD)",
	"",
	"Output:",
	"  spec_changed=true|false",
)

// HandleCheckVersion executes the check-version command.
func HandleCheckVersion(ctx context.Context, env *Env, args []string) error {
	a, ok := parse(env, "check-version", checkVersionUsage, args, "new-version", "json-file", "rev")
	if !ok {
		return nil
	}

	newVersion, err := requireValue(a, "new-version")
	if err != nil {
		return err
	}
	if !semver.Valid(newVersion) {
		return &specerrors.VersionError{Version: newVersion}
	}

	path := a.GetOr("json-file", env.Config.OutputJSON)
	rev := a.GetOr("rev", "HEAD")
	prev := previousVersion(ctx, env, rev, path)

	// A missing or non-semver previous version counts as a change, not an error.
	changed := prev == "" || !semver.Valid(prev) || !semver.Equal(prev, newVersion)
	env.Logger.Debug("compared spec versions", "previous", prev, "new", newVersion, "changed", changed)
	return env.emit(cliutil.KV("spec_changed", changed))
}

// previousVersion returns info.version of path at rev, or "" when it cannot
// be determined.
func previousVersion(ctx context.Context, env *Env, rev, path string) string {
	data, err := env.Git.ShowFile(ctx, rev, path)
	if err != nil {
		if errors.Is(err, specerrors.ErrNotFound) {
			env.Logger.Info("no previous spec", "rev", rev, "path", path)
		} else {
			env.Logger.Warn("cannot read previous spec", "rev", rev, "path", path, "error", err)
		}
		return ""
	}
	v, err := specjson.Version(data)
	if err != nil {
		env.Logger.Warn("previous spec has no usable version", "rev", rev, "path", path, "error", err)
		return ""
	}
	return v
}
