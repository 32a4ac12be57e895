// Package fetcher downloads the upstream OpenAPI document and keeps a stored
// canonical copy and its checksum sidecar in sync with it.
//
// A sync writes only when something is actually different, so the release
// pipeline can use the returned status to decide whether to commit:
//
//	f, err := fetcher.New(fetcher.WithLogger(fetcher.NewSlogAdapter(nil)))
//	if err != nil { ... }
//	res, err := f.Sync(ctx, "riigikogu-openapi.json", "riigikogu-openapi.json.sha256")
//	if err != nil { ... }
//	if res.Changed() { ... }
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/avalik-ee/riigikogu-openapi"
	"github.com/avalik-ee/riigikogu-openapi/checksum"
	"github.com/avalik-ee/riigikogu-openapi/internal/fileutil"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
	"github.com/avalik-ee/riigikogu-openapi/specjson"
)

// Defaults applied by New.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 32 << 20
)

// Status describes what a sync did.
type Status int

const (
	// StatusUnchanged means the stored copy and sidecar were already current.
	StatusUnchanged Status = iota
	// StatusCreated means there was no stored copy.
	StatusCreated
	// StatusContentChanged means the upstream document differs semantically
	// from the stored copy, or the stored copy could not be parsed.
	StatusContentChanged
	// StatusReformatted means the content is equal but the stored text was
	// not in canonical form.
	StatusReformatted
	// StatusChecksumRepaired means only the sidecar was missing, invalid or
	// stale.
	StatusChecksumRepaired
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusCreated:
		return "created"
	case StatusContentChanged:
		return "content-changed"
	case StatusReformatted:
		return "reformatted"
	case StatusChecksumRepaired:
		return "checksum-repaired"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports the outcome of a sync.
type Result struct {
	Status Status
	// Hash is the SHA-256 of the canonical document.
	Hash string
	// Version is info.version of the document, or "" when absent.
	Version    string
	JSONPath   string
	SHA256Path string
	// Size is the length of the canonical document in bytes.
	Size int
}

// Changed reports whether any file was written.
func (r *Result) Changed() bool {
	return r.Status != StatusUnchanged
}

// Fetcher retrieves and stores the upstream document.
type Fetcher struct {
	url       string
	client    *http.Client
	userAgent string
	timeout   time.Duration
	maxBytes  int64
	log       Logger
}

// New creates a Fetcher.
func New(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		url:       riigikogu.OpenAPIURL,
		userAgent: riigikogu.UserAgent(),
		timeout:   DefaultTimeout,
		maxBytes:  DefaultMaxBytes,
		log:       NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.client == nil {
		f.client = &http.Client{Timeout: f.timeout}
	}
	return f, nil
}

// URL returns the configured document location.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch downloads the document and returns its canonical form.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &specerrors.FetchError{URL: f.url, Message: "invalid request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	f.log.Debug("fetching spec", "url", f.url, "timeout", f.timeout)
	start := time.Now()

	resp, err := f.client.Do(req) //nolint:gosec // G704 - URL comes from pipeline configuration
	if err != nil {
		return nil, &specerrors.FetchError{URL: f.url, Message: "request failed", Cause: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &specerrors.FetchError{URL: f.url, StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &specerrors.FetchError{URL: f.url, StatusCode: resp.StatusCode, Message: "reading response body", Cause: err}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, &specerrors.FetchError{URL: f.url, StatusCode: resp.StatusCode, Message: fmt.Sprintf("response exceeds %d bytes", f.maxBytes)}
	}

	f.log.Debug("fetched spec", "bytes", len(body), "elapsed", time.Since(start))
	return specjson.CanonicalizeDocument(body, f.url)
}

// Sync fetches the document and reconciles jsonPath and shaPath with it.
func (f *Fetcher) Sync(ctx context.Context, jsonPath, shaPath string) (*Result, error) {
	canonical, err := f.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return f.store(canonical, jsonPath, shaPath)
}

// SyncBytes reconciles jsonPath and shaPath with an already retrieved
// document.
func (f *Fetcher) SyncBytes(data []byte, jsonPath, shaPath string) (*Result, error) {
	canonical, err := specjson.CanonicalizeDocument(data, "<input>")
	if err != nil {
		return nil, err
	}
	return f.store(canonical, jsonPath, shaPath)
}

func (f *Fetcher) store(canonical []byte, jsonPath, shaPath string) (*Result, error) {
	hash := specjson.Hash(canonical)
	version, _ := specjson.Version(canonical)

	status, err := f.decide(canonical, hash, jsonPath, shaPath)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Status:     status,
		Hash:       hash,
		Version:    version,
		JSONPath:   jsonPath,
		SHA256Path: shaPath,
		Size:       len(canonical),
	}
	log := f.log.With("status", status.String(), "sha256", hash)
	if status == StatusUnchanged {
		log.Info("spec unchanged", "path", jsonPath)
		return res, nil
	}

	if err := fileutil.WriteFileAtomic(jsonPath, canonical, fileutil.ReadableByAll); err != nil {
		return nil, fmt.Errorf("fetcher: %w", err)
	}
	if err := checksum.Write(shaPath, hash, jsonPath); err != nil {
		return nil, fmt.Errorf("fetcher: %w", err)
	}
	log.Info("spec stored", "path", jsonPath, "version", version, "bytes", len(canonical))
	return res, nil
}

// decide applies the first matching rule: missing copy, unparsable copy,
// semantic difference, non-canonical text, stale sidecar.
func (f *Fetcher) decide(canonical []byte, hash, jsonPath, shaPath string) (Status, error) {
	stored, err := os.ReadFile(jsonPath) //nolint:gosec // path comes from pipeline configuration
	if errors.Is(err, fs.ErrNotExist) {
		return StatusCreated, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetcher: reading %s: %w", jsonPath, err)
	}

	equal, err := specjson.Equal(stored, canonical)
	if err != nil {
		f.log.Warn("stored spec is not valid JSON, replacing it", "path", jsonPath, "error", err)
		return StatusContentChanged, nil
	}
	if !equal {
		return StatusContentChanged, nil
	}
	if !bytes.Equal(specjson.NormalizeNewlines(stored), canonical) {
		return StatusReformatted, nil
	}

	entry, ok, err := checksum.Read(shaPath)
	if err != nil {
		return 0, fmt.Errorf("fetcher: %w", err)
	}
	if !ok || !entry.Matches(hash, jsonPath) {
		return StatusChecksumRepaired, nil
	}
	return StatusUnchanged, nil
}
