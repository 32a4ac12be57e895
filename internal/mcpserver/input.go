package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/avalik-ee/riigikogu-openapi/fetcher"
	"github.com/avalik-ee/riigikogu-openapi/internal/options"
)

// documentInput represents the three ways a JSON document can be provided to
// a tool. Exactly one of File, URL, or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a JSON document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON document content"`
}

// document is a loaded input. Raw is the text as provided; the fetcher
// already canonicalizes URL inputs.
type document struct {
	Raw    []byte
	Source string
}

// load reads the document from whichever input was provided.
func (d documentInput) load(ctx context.Context) (*document, error) {
	source, err := options.ExactlyOne(
		options.Source{Name: "file", Value: d.File},
		options.Source{Name: "url", Value: d.URL},
		options.Source{Name: "content", Value: d.Content},
	)
	if err != nil {
		return nil, err
	}

	switch source {
	case "content":
		if int64(len(d.Content)) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SPECSYNC_MCP_MAX_INLINE_SIZE to increase",
				len(d.Content), cfg.MaxInlineSize)
		}
		return &document{Raw: []byte(d.Content), Source: "<content>"}, nil

	case "file":
		if !cfg.AllowFiles {
			return nil, fmt.Errorf("file inputs are disabled (SPECSYNC_MCP_ALLOW_FILES=false)")
		}
		data, err := os.ReadFile(d.File) //nolint:gosec // file inputs are opt-out via SPECSYNC_MCP_ALLOW_FILES
		if err != nil {
			return nil, err
		}
		return &document{Raw: data, Source: d.File}, nil

	default:
		opts := []fetcher.Option{
			fetcher.WithURL(d.URL),
			fetcher.WithTimeout(cfg.FetchTimeout),
			fetcher.WithMaxBytes(cfg.MaxFetchSize),
		}
		if !cfg.AllowPrivateIPs {
			opts = append(opts, fetcher.WithHTTPClient(newSafeHTTPClient(cfg.FetchTimeout)))
		}
		f, err := fetcher.New(opts...)
		if err != nil {
			return nil, err
		}
		data, err := f.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return &document{Raw: data, Source: d.URL}, nil
	}
}
