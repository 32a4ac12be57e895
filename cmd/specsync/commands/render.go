package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/internal/manifest"
	"github.com/avalik-ee/riigikogu-openapi/internal/render"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

var renderUsage = usageText(
	"Usage: specsync render [--templates FILE --output FILE] [--vars K=V,K2=V2] [--json-file FILE]",
	"",
	"Replace {{NAME}} placeholders in template files. Without --templates the",
	"configured mappings are rendered (default: templates/info.go.tmpl -> info.go).",
	"",
	"Built-in variables:",
	"  DATE          current UTC date, YYYY-MM-DD",
	"  SPEC_VERSION  info.version of the stored spec",
	"  SPEC_HASH     SHA-256 of the stored spec",
	"  SPEC_URL      upstream spec URL",
	"  VERSION       package version, when the package file exists",
	"",
	"Arguments:",
	"  --templates  single template to render",
	"  --output     output path for --templates",
	"  --vars       extra variables; these override built-ins",
	"  --json-file  stored spec (default: riigikogu-openapi.json)",
	"",
	"Output:",
	"  rendered=N",
)

// HandleRender executes the render command.
func HandleRender(_ context.Context, env *Env, args []string) error {
	a, ok := parse(env, "render", renderUsage, args, "templates", "output", "vars", "json-file")
	if !ok {
		return nil
	}

	mappings, err := renderMappings(env, a.Get("templates"), a.Get("output"))
	if err != nil {
		return err
	}

	builtins, err := builtinVars(env, a.GetOr("json-file", env.Config.OutputJSON))
	if err != nil {
		return err
	}
	user, err := render.ParseVars(a.Get("vars"))
	if err != nil {
		return err
	}
	vars := render.Merge(builtins, user)

	results, err := render.All(mappings, vars)
	for _, r := range results {
		cliutil.Writef(env.Stderr, "✓ Rendered %s → %s\n", r.Template, r.Output)
		if len(r.Unresolved) > 0 {
			env.Logger.Warn("unresolved placeholders", "template", r.Template, "names", r.Unresolved)
		}
	}
	if err != nil {
		return err
	}
	return env.emit(cliutil.KV("rendered", len(results)))
}

func renderMappings(env *Env, templates, output string) ([]render.Mapping, error) {
	switch {
	case templates != "" && output != "":
		return []render.Mapping{{Template: templates, Output: output}}, nil
	case templates != "":
		return nil, &specerrors.ArgumentError{Name: "output", Message: "required with --templates"}
	case output != "":
		return nil, &specerrors.ArgumentError{Name: "templates", Message: "required with --output"}
	}
	mappings := make([]render.Mapping, 0, len(env.Config.Templates))
	for _, t := range env.Config.Templates {
		mappings = append(mappings, render.Mapping{Template: t.Template, Output: t.Output})
	}
	return mappings, nil
}

// builtinVars collects DATE, SPEC_URL and, when the files exist, the
// spec and package variables.
func builtinVars(env *Env, specPath string) (render.Vars, error) {
	vars := render.DateVars(env.Now())
	vars["SPEC_URL"] = env.Config.URL

	data, err := os.ReadFile(specPath) //nolint:gosec // path chosen by the operator
	switch {
	case err == nil:
		vars["SPEC_HASH"] = specjson.Hash(data)
		if v, err := specjson.Version(data); err == nil {
			vars["SPEC_VERSION"] = v
		} else {
			env.Logger.Warn("stored spec has no version", "path", specPath, "error", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		env.Logger.Info("no stored spec", "path", specPath)
	default:
		return nil, err
	}

	m, err := manifest.Load(env.Config.PackageFile)
	switch {
	case err == nil:
		if m.HasVersion() {
			vars["VERSION"] = m.Version()
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}
	return vars, nil
}
