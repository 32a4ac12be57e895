package commands

import (
	"context"

	"github.com/avalik-ee/riigikogu-openapi/internal/argparse"
	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/internal/fileutil"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

var stageUsage = usageText(
	"Usage: specsync stage --files a,b,c",
	"",
	"Stage the listed files and report whether the index now differs from HEAD",
	"for them. Missing and git-ignored files are skipped.",
	"",
	"Arguments:",
	"  --files  comma-separated list of paths (required)",
	"",
	"Output:",
	"  changed=true|false",
)

// HandleStage executes the stage command.
func HandleStage(ctx context.Context, env *Env, args []string) error {
	a, ok := parse(env, "stage", stageUsage, args, "files")
	if !ok {
		return nil
	}

	list := a.Get("files")
	if list == "" || list == argparse.FlagValue {
		return &specerrors.ArgumentError{Name: "files", Message: "argument is required (comma-separated list)"}
	}

	var files []string
	for _, f := range splitList(list) {
		if !fileutil.Exists(f) {
			env.Logger.Debug("skipping missing file", "path", f)
			continue
		}
		ignored, err := env.Git.IsIgnored(ctx, f)
		if err != nil {
			return err
		}
		if ignored {
			env.Logger.Debug("skipping ignored file", "path", f)
			continue
		}
		files = append(files, f)
	}

	if len(files) == 0 {
		return env.emit(cliutil.KV("changed", false))
	}
	if err := env.Git.Add(ctx, files...); err != nil {
		return err
	}
	changed, err := env.Git.HasStagedChanges(ctx, files...)
	if err != nil {
		return err
	}
	return env.emit(cliutil.KV("changed", changed))
}
