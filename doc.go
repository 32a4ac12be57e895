// Package riigikogu bundles the OpenAPI specification of the Riigikogu (the
// Estonian parliament) open data API.
//
// The document is embedded at build time from riigikogu-openapi.json and is
// refreshed by the specsync release tool, which fetches the upstream document,
// stores it in canonical form together with a SHA-256 sidecar, bumps the
// package version and re-renders generated files such as info.go.
//
// # Reading the specification
//
//	spec, err := riigikogu.ReadSpec()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(spec.Version, spec.Hash)
//	paths := spec.JSON["paths"].(map[string]any)
//
// Numbers in the decoded document are json.Number values so that the
// document round-trips without loss.
//
// The upstream location is available as [OpenAPIURL] for callers that want
// to fetch the live document instead.
package riigikogu
