package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Option configures a Fetcher.
type Option func(*Fetcher) error

// WithURL sets the location of the upstream document.
// Default: riigikogu.OpenAPIURL
func WithURL(rawURL string) Option {
	return func(f *Fetcher) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("fetcher: invalid URL %q: %w", rawURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("fetcher: unsupported URL scheme %q", u.Scheme)
		}
		f.url = rawURL
		return nil
	}
}

// WithHTTPClient sets the client used for requests. The configured timeout
// still applies through the request context. A nil client is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) error {
		if client != nil {
			f.client = client
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
// Default: "riigikogu-openapi/<version>"
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) error {
		if ua != "" {
			f.userAgent = ua
		}
		return nil
	}
}

// WithTimeout bounds each fetch, including reading the body.
// Default: 30s
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) error {
		if d <= 0 {
			return fmt.Errorf("fetcher: timeout must be positive, got %s", d)
		}
		f.timeout = d
		return nil
	}
}

// WithLogger sets the logger. Default: NopLogger.
func WithLogger(l Logger) Option {
	return func(f *Fetcher) error {
		if l == nil {
			return errors.New("fetcher: logger must not be nil")
		}
		f.log = l
		return nil
	}
}

// WithMaxBytes limits the size of the response body.
// Default: 32 MiB
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) error {
		if n <= 0 {
			return fmt.Errorf("fetcher: max bytes must be positive, got %d", n)
		}
		f.maxBytes = n
		return nil
	}
}
