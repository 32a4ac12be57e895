package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

var readVersionUsage = usageText(
	"Usage: specsync read-version [--json-file FILE]",
	"",
	"Print info.version of the stored spec.",
	"",
	"Arguments:",
	"  --json-file  spec file (default: riigikogu-openapi.json)",
	"",
	"Output:",
	"  version=X.Y.Z",
)

// HandleReadVersion executes the read-version command.
func HandleReadVersion(_ context.Context, env *Env, args []string) error {
	a, ok := parse(env, "read-version", readVersionUsage, args, "json-file")
	if !ok {
		return nil
	}

	path := a.GetOr("json-file", env.Config.OutputJSON)
	data, err := os.ReadFile(path) //nolint:gosec // path chosen by the operator
	if err != nil {
		return err
	}
	version, err := specjson.Version(data)
	if err != nil {
		if errors.Is(err, specjson.ErrNoVersion) {
			return fmt.Errorf("version not found in %s", path)
		}
		return err
	}
	return env.emit(cliutil.KV("version", version))
}
