package commands

import (
	"context"

	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/internal/manifest"
	"github.com/avalik-ee/riigikogu-openapi/internal/semver"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

var syncVersionUsage = usageText(
	"Usage: specsync sync-version --set-version X.Y.Z [--increment-revision] [--package-file FILE]",
	"",
	"Bump the package version for a new spec release. The package version is",
	"major-bumped, or patch-bumped with --increment-revision. A package version",
	"that is missing or not valid semver is bumped from 1.0.0.",
	"",
	"Arguments:",
	"  --set-version         version of the new spec (required)",
	"  --increment-revision  bump the patch component instead of the major one",
	"  --package-file        manifest holding the version (default: package.json)",
	"",
	"Output:",
	"  updated=true|false",
	"  version=X.Y.Z",
)

// HandleSyncVersion executes the sync-version command.
func HandleSyncVersion(_ context.Context, env *Env, args []string) error {
	a, ok := parse(env, "sync-version", syncVersionUsage, args,
		"set-version", "increment-revision", "package-file")
	if !ok {
		return nil
	}

	specVersion, err := requireValue(a, "set-version")
	if err != nil {
		return err
	}
	if !semver.Valid(specVersion) {
		return &specerrors.VersionError{Version: specVersion}
	}

	level := semver.LevelMajor
	if a.Bool("increment-revision") {
		level = semver.LevelPatch
	}

	m, err := manifest.Load(a.GetOr("package-file", env.Config.PackageFile))
	if err != nil {
		return err
	}
	current := m.Version()
	next, err := semver.Bump(current, level)
	if err != nil {
		return err
	}
	env.Logger.Debug("bumping package version",
		"spec_version", specVersion, "current", current, "next", next, "level", level)

	updated := next != current
	if updated {
		if err := m.SetVersion(next); err != nil {
			return err
		}
		if err := m.Save(); err != nil {
			return err
		}
		cliutil.Writef(env.Stderr, "Version updated: %s → %s\n", current, next)
	} else {
		cliutil.Writef(env.Stderr, "Version unchanged: %s\n", current)
	}

	return env.emit(
		cliutil.KV("updated", updated),
		cliutil.KV("version", next),
	)
}
