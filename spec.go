package riigikogu

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

// OpenAPIURL is the upstream location of the Riigikogu OpenAPI specification.
// Use it to fetch the spec directly from the API.
const OpenAPIURL = "https://api.riigikogu.ee/v3/api-docs"

// SpecFileName is the name of the bundled specification file.
const SpecFileName = "riigikogu-openapi.json"

//go:embed riigikogu-openapi.json
var specJSON []byte

//go:embed riigikogu-openapi.json.sha256
var specSHA256 string

// Spec is the bundled OpenAPI specification.
type Spec struct {
	// Version is info.version of the document, or "0.0.0" when absent.
	Version string
	// Hash is the SHA-256 recorded for the bundled file.
	Hash string
	// JSON is the decoded document.
	JSON map[string]any
	// Raw is the canonical document text.
	Raw []byte
}

var readSpec = sync.OnceValues(func() (*Spec, error) {
	return loadSpec(specJSON, specSHA256)
})

// ReadSpec returns the bundled Riigikogu OpenAPI specification.
// The document is decoded on first use; later calls return the same value.
// Callers must not modify the returned JSON map.
func ReadSpec() (*Spec, error) {
	return readSpec()
}

func loadSpec(raw []byte, sidecar string) (*Spec, error) {
	doc, err := specjson.DecodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("riigikogu: decoding bundled spec: %w", err)
	}

	version, err := specjson.Version(raw)
	if err != nil {
		version = "0.0.0"
	}

	var hash string
	if fields := strings.Fields(sidecar); len(fields) > 0 {
		hash = fields[0]
	}

	return &Spec{
		Version: version,
		Hash:    hash,
		JSON:    doc,
		Raw:     raw,
	}, nil
}
