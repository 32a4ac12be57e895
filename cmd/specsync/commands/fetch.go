package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avalik-ee/riigikogu-openapi/fetcher"
	"github.com/avalik-ee/riigikogu-openapi/internal/cliutil"
	"github.com/avalik-ee/riigikogu-openapi/internal/options"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

var fetchUsage = usageText(
	"Usage: specsync fetch [--url URL] [--output-json FILE] [--output-sha256 FILE]",
	"                      [--timeout DURATION] [--user-agent UA] [--input FILE]",
	"",
	"Fetch the upstream OpenAPI document, canonicalize it and update the stored",
	"copy and its SHA-256 sidecar when anything differs.",
	"",
	"Arguments:",
	"  --url            upstream location (default: configured URL)",
	"  --output-json    stored spec file (default: riigikogu-openapi.json)",
	"  --output-sha256  checksum sidecar (default: <output-json>.sha256)",
	"  --timeout        fetch timeout, e.g. 45s (default: 30s)",
	"  --user-agent     User-Agent header",
	"  --input          read the document from a local file instead of the URL",
	"",
	"Output:",
	"  changed | unchanged",
	"",
	"Examples:",
	"  specsync fetch",
	"  specsync fetch --output-json spec/openapi.json --timeout 1m",
)

// HandleFetch executes the fetch command.
func HandleFetch(ctx context.Context, env *Env, args []string) error {
	a, ok := parse(env, "fetch", fetchUsage, args,
		"url", "output-json", "output-sha256", "timeout", "user-agent", "input")
	if !ok {
		return nil
	}

	if _, err := options.AtMostOne(
		options.Source{Name: "--url", Value: a.Get("url")},
		options.Source{Name: "--input", Value: a.Get("input")},
	); err != nil {
		return &specerrors.ArgumentError{Name: "input", Message: err.Error()}
	}

	cfg := env.Config
	jsonPath := a.GetOr("output-json", cfg.OutputJSON)
	shaPath := a.GetOr("output-sha256", "")
	if shaPath == "" {
		shaPath = cfg.OutputSHA256
		if a.Has("output-json") {
			shaPath = jsonPath + ".sha256"
		}
	}

	timeout := cfg.Timeout
	if v := a.Get("timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return &specerrors.ArgumentError{Name: "timeout", Value: v, Message: "invalid duration"}
		}
		timeout = d
	}

	f, err := fetcher.New(
		fetcher.WithURL(a.GetOr("url", cfg.URL)),
		fetcher.WithUserAgent(a.GetOr("user-agent", cfg.UserAgent)),
		fetcher.WithTimeout(timeout),
		fetcher.WithLogger(fetcher.NewSlogAdapter(env.Logger)),
	)
	if err != nil {
		return err
	}

	var res *fetcher.Result
	if input := a.Get("input"); input != "" {
		data, err := os.ReadFile(input) //nolint:gosec // local input chosen by the operator
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		res, err = f.SyncBytes(data, jsonPath, shaPath)
		if err != nil {
			return err
		}
	} else {
		res, err = f.Sync(ctx, jsonPath, shaPath)
		if err != nil {
			return err
		}
	}

	word := "unchanged"
	if res.Changed() {
		word = "changed"
	}
	cliutil.Writef(env.Stdout, "%s\n", word)
	return cliutil.AppendGitHubOutput(env.GitHubOutput,
		cliutil.KV("changed", res.Changed()),
		cliutil.KV("status", res.Status),
		cliutil.KV("sha256", res.Hash),
		cliutil.KV("spec_version", res.Version),
	)
}
