// Package config resolves pipeline settings from built-in defaults, an
// optional YAML file and SPECSYNC_* environment variables, in that order.
// Command arguments are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/avalik-ee/riigikogu-openapi"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".specsync.yaml"

// Environment variable names.
const (
	EnvConfig       = "SPECSYNC_CONFIG"
	EnvURL          = "SPECSYNC_URL"
	EnvTimeout      = "SPECSYNC_TIMEOUT"
	EnvUserAgent    = "SPECSYNC_USER_AGENT"
	EnvOutputJSON   = "SPECSYNC_OUTPUT_JSON"
	EnvOutputSHA256 = "SPECSYNC_OUTPUT_SHA256"
	EnvLogLevel     = "SPECSYNC_LOG_LEVEL"
)

// DefaultTimeout bounds a single upstream fetch.
const DefaultTimeout = 30 * time.Second

// TemplateMapping pairs a template file with the file rendered from it.
type TemplateMapping struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
}

// Config holds the resolved pipeline settings.
type Config struct {
	// URL is the upstream OpenAPI document location.
	URL string
	// Timeout bounds the fetch request.
	Timeout time.Duration
	// UserAgent is sent with the fetch request.
	UserAgent string
	// OutputJSON is where the canonical spec is stored.
	OutputJSON string
	// OutputSHA256 is the checksum sidecar of OutputJSON.
	OutputSHA256 string
	// PackageFile is the manifest whose version sync-version maintains.
	PackageFile string
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level
	// Templates lists the files the render command produces.
	Templates []TemplateMapping
	// Source is the configuration file that was read, or "" when none was.
	Source string
}

type fileConfig struct {
	URL          string            `yaml:"url"`
	Timeout      string            `yaml:"timeout"`
	UserAgent    string            `yaml:"user_agent"`
	OutputJSON   string            `yaml:"output_json"`
	OutputSHA256 string            `yaml:"output_sha256"`
	PackageFile  string            `yaml:"package_file"`
	LogLevel     string            `yaml:"log_level"`
	Templates    []TemplateMapping `yaml:"templates"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		URL:          riigikogu.OpenAPIURL,
		Timeout:      DefaultTimeout,
		UserAgent:    riigikogu.UserAgent(),
		OutputJSON:   riigikogu.SpecFileName,
		OutputSHA256: riigikogu.SpecFileName + ".sha256",
		PackageFile:  "package.json",
		LogLevel:     slog.LevelWarn,
		Templates: []TemplateMapping{
			{Template: "templates/info.go.tmpl", Output: "info.go"},
		},
	}
}

// Load resolves the configuration. path names the YAML file to read; when it
// is empty, SPECSYNC_CONFIG is consulted and then DefaultFile, which may be
// absent. An explicitly named file must exist.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path) //nolint:gosec // configuration path is chosen by the operator
	switch {
	case err == nil:
		if err := c.applyFile(path, data); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, &specerrors.ConfigError{Source: path, Message: "cannot read configuration file", Cause: err}
	}

	c.applyEnv()
	return c, nil
}

func (c *Config) applyFile(path string, data []byte) error {
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return &specerrors.ConfigError{Source: path, Message: "invalid YAML", Cause: err}
	}
	c.Source = path

	if f.URL != "" {
		c.URL = f.URL
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil || d <= 0 {
			return &specerrors.ConfigError{Source: path, Option: "timeout", Message: fmt.Sprintf("invalid duration %q", f.Timeout), Cause: err}
		}
		c.Timeout = d
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.OutputJSON != "" {
		c.OutputJSON = f.OutputJSON
		if f.OutputSHA256 == "" {
			c.OutputSHA256 = f.OutputJSON + ".sha256"
		}
	}
	if f.OutputSHA256 != "" {
		c.OutputSHA256 = f.OutputSHA256
	}
	if f.PackageFile != "" {
		c.PackageFile = f.PackageFile
	}
	if f.LogLevel != "" {
		lvl, err := ParseLevel(f.LogLevel)
		if err != nil {
			return &specerrors.ConfigError{Source: path, Option: "log_level", Message: err.Error()}
		}
		c.LogLevel = lvl
	}
	if f.Templates != nil {
		for i, m := range f.Templates {
			if m.Template == "" || m.Output == "" {
				return &specerrors.ConfigError{
					Source:  path,
					Option:  fmt.Sprintf("templates[%d]", i),
					Message: "both template and output are required",
				}
			}
		}
		c.Templates = f.Templates
	}
	return nil
}

func (c *Config) applyEnv() {
	c.URL = envString(EnvURL, c.URL)
	c.Timeout = EnvDuration(EnvTimeout, c.Timeout)
	c.UserAgent = envString(EnvUserAgent, c.UserAgent)
	if v := os.Getenv(EnvOutputJSON); v != "" {
		if os.Getenv(EnvOutputSHA256) == "" && c.OutputSHA256 == c.OutputJSON+".sha256" {
			c.OutputSHA256 = v + ".sha256"
		}
		c.OutputJSON = v
	}
	c.OutputSHA256 = envString(EnvOutputSHA256, c.OutputSHA256)
	c.LogLevel = envValue(EnvLogLevel, c.LogLevel, ParseLevel)
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}
