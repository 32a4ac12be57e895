package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avalik-ee/riigikogu-openapi"
)

type specInfoInput struct{}

type specInfoOutput struct {
	Version   string `json:"version"`
	SHA256    string `json:"sha256"`
	URL       string `json:"url"`
	OpenAPI   string `json:"openapi,omitempty"`
	Title     string `json:"title,omitempty"`
	PathCount int    `json:"path_count"`
	Generated string `json:"generated"`
	Size      int    `json:"size"`
}

func handleSpecInfo(_ context.Context, _ *mcp.CallToolRequest, _ specInfoInput) (*mcp.CallToolResult, specInfoOutput, error) {
	spec, err := riigikogu.ReadSpec()
	if err != nil {
		return errResult(err), specInfoOutput{}, nil
	}

	output := specInfoOutput{
		Version:   spec.Version,
		SHA256:    spec.Hash,
		URL:       riigikogu.OpenAPIURL,
		Generated: riigikogu.Generated,
		Size:      len(spec.Raw),
	}
	output.OpenAPI, _ = spec.JSON["openapi"].(string)
	if info, ok := spec.JSON["info"].(map[string]any); ok {
		output.Title, _ = info["title"].(string)
	}
	if paths, ok := spec.JSON["paths"].(map[string]any); ok {
		output.PathCount = len(paths)
	}
	return nil, output, nil
}
