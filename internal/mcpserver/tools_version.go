package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avalik-ee/riigikogu-openapi/internal/semver"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

type checkVersionInput struct {
	Previous   documentInput `json:"previous"    jsonschema:"The previously released document"`
	NewVersion string        `json:"new_version" jsonschema:"info.version of the new document"`
}

type checkVersionOutput struct {
	SpecChanged     bool   `json:"spec_changed"`
	PreviousVersion string `json:"previous_version,omitempty"`
	Reason          string `json:"reason"`
}

func handleCheckVersion(ctx context.Context, _ *mcp.CallToolRequest, input checkVersionInput) (*mcp.CallToolResult, checkVersionOutput, error) {
	if !semver.Valid(input.NewVersion) {
		return errResult(&specerrors.VersionError{Version: input.NewVersion}), checkVersionOutput{}, nil
	}

	doc, err := input.Previous.load(ctx)
	if err != nil {
		return nil, checkVersionOutput{SpecChanged: true, Reason: "previous document unavailable: " + sanitizeError(err)}, nil
	}
	prev, err := specjson.Version(doc.Raw)
	if err != nil {
		return nil, checkVersionOutput{SpecChanged: true, Reason: "previous version unreadable: " + sanitizeError(err)}, nil
	}

	output := checkVersionOutput{PreviousVersion: prev}
	switch {
	case !semver.Valid(prev):
		output.SpecChanged = true
		output.Reason = "previous version is not a valid semantic version"
	case semver.Equal(prev, input.NewVersion):
		output.Reason = "versions are equal"
	default:
		output.SpecChanged = true
		output.Reason = "versions differ"
	}
	return nil, output, nil
}

type bumpVersionInput struct {
	Current string `json:"current"         jsonschema:"The current package version"`
	Level   string `json:"level,omitempty" jsonschema:"major, minor or patch (default major)"`
}

type bumpVersionOutput struct {
	Next     string `json:"next"`
	Baseline bool   `json:"baseline"`
}

func handleBumpVersion(_ context.Context, _ *mcp.CallToolRequest, input bumpVersionInput) (*mcp.CallToolResult, bumpVersionOutput, error) {
	level := semver.LevelMajor
	if input.Level != "" {
		var err error
		if level, err = semver.ParseLevel(input.Level); err != nil {
			return errResult(err), bumpVersionOutput{}, nil
		}
	}

	next, err := semver.Bump(input.Current, level)
	if err != nil {
		return errResult(err), bumpVersionOutput{}, nil
	}
	return nil, bumpVersionOutput{Next: next, Baseline: !semver.Valid(input.Current)}, nil
}
