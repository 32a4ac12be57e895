// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes the side-effect-free parts of specsync as tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/avalik-ee/riigikogu-openapi"
)

const serverInstructions = `specsync MCP server: inspects the bundled Riigikogu OpenAPI specification, canonicalizes and compares JSON documents, and computes release versions.

Documents can be given as inline content, a file path or a URL. URL inputs to private or loopback addresses are refused unless SPECSYNC_MCP_ALLOW_PRIVATE_IPS=true.

Settings:
- SPECSYNC_MCP_MAX_INLINE_SIZE (default: 10485760) - maximum inline content in bytes
- SPECSYNC_MCP_MAX_FETCH_SIZE (default: 33554432) - maximum fetched document in bytes
- SPECSYNC_MCP_FETCH_TIMEOUT (default: 30s) - timeout for URL inputs
- SPECSYNC_MCP_ALLOW_FILES (default: true) - accept file inputs`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "specsync", Version: riigikogu.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "spec_info",
		Description: "Describe the Riigikogu OpenAPI specification bundled with this build: info.version, SHA-256, upstream URL, title and path count. Takes no input.",
	}, handleSpecInfo)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "canonicalize",
		Description: "Canonicalize a JSON document: object keys sorted recursively, two-space indentation, number literals preserved, one trailing newline. Returns the SHA-256 of the canonical text, info.version when present, and whether the input was already canonical. Set include_content=true to return the canonical text itself.",
	}, handleCanonicalize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare two JSON documents semantically, ignoring key order and formatting. Returns whether they are equal and the canonical SHA-256 and info.version of each.",
	}, handleCompare)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_version",
		Description: "Decide whether a new spec version differs from the info.version of a previous document. A previous document that is unreadable, lacks a version, or has an invalid one counts as changed. new_version must be a valid semantic version.",
	}, handleCheckVersion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bump_version",
		Description: "Compute the next package version. level is major, minor or patch. An invalid current version is replaced by the baseline 1.0.0 before bumping.",
	}, handleBumpVersion)
}

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
