package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

type canonicalizeInput struct {
	Document       documentInput `json:"document"                  jsonschema:"The JSON document to canonicalize"`
	IncludeContent bool          `json:"include_content,omitempty" jsonschema:"Return the canonical text"`
}

type canonicalizeOutput struct {
	SHA256           string `json:"sha256"`
	Version          string `json:"version,omitempty"`
	Size             int    `json:"size"`
	AlreadyCanonical bool   `json:"already_canonical"`
	Content          string `json:"content,omitempty"`
}

func handleCanonicalize(ctx context.Context, _ *mcp.CallToolRequest, input canonicalizeInput) (*mcp.CallToolResult, canonicalizeOutput, error) {
	doc, err := input.Document.load(ctx)
	if err != nil {
		return errResult(err), canonicalizeOutput{}, nil
	}

	canonical, err := specjson.CanonicalizeDocument(doc.Raw, doc.Source)
	if err != nil {
		return errResult(err), canonicalizeOutput{}, nil
	}

	output := canonicalizeOutput{
		SHA256:           specjson.Hash(canonical),
		Size:             len(canonical),
		AlreadyCanonical: specjson.IsCanonical(doc.Raw),
	}
	output.Version, _ = specjson.Version(canonical)
	if input.IncludeContent {
		output.Content = string(canonical)
	}
	return nil, output, nil
}
