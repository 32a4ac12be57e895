package mcpserver

import (
	"bytes"
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

type compareInput struct {
	Base     documentInput `json:"base"     jsonschema:"The original document"`
	Revision documentInput `json:"revision" jsonschema:"The document to compare against base"`
}

type compareSide struct {
	SHA256  string `json:"sha256"`
	Version string `json:"version,omitempty"`
}

type compareOutput struct {
	Equal          bool        `json:"equal"`
	VersionChanged bool        `json:"version_changed"`
	Base           compareSide `json:"base"`
	Revision       compareSide `json:"revision"`
}

func handleCompare(ctx context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, compareOutput, error) {
	base, err := canonicalInput(ctx, "base", input.Base)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}
	revision, err := canonicalInput(ctx, "revision", input.Revision)
	if err != nil {
		return errResult(err), compareOutput{}, nil
	}

	output := compareOutput{
		Equal:    bytes.Equal(base, revision),
		Base:     side(base),
		Revision: side(revision),
	}
	output.VersionChanged = output.Base.Version != output.Revision.Version
	return nil, output, nil
}

func canonicalInput(ctx context.Context, name string, in documentInput) ([]byte, error) {
	doc, err := in.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	canonical, err := specjson.CanonicalizeDocument(doc.Raw, doc.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return canonical, nil
}

func side(canonical []byte) compareSide {
	s := compareSide{SHA256: specjson.Hash(canonical)}
	s.Version, _ = specjson.Version(canonical)
	return s
}
