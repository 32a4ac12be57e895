package mcpserver

import (
	"time"

	"github.com/avalik-ee/riigikogu-openapi/internal/config"
)

// Environment variables read by loadConfig.
const (
	envMaxInlineSize   = "SPECSYNC_MCP_MAX_INLINE_SIZE"
	envMaxFetchSize    = "SPECSYNC_MCP_MAX_FETCH_SIZE"
	envFetchTimeout    = "SPECSYNC_MCP_FETCH_TIMEOUT"
	envAllowPrivateIPs = "SPECSYNC_MCP_ALLOW_PRIVATE_IPS"
	envAllowFiles      = "SPECSYNC_MCP_ALLOW_FILES"
)

// serverConfig holds the limits applied to tool inputs.
type serverConfig struct {
	// MaxInlineSize bounds inline document content, in bytes.
	MaxInlineSize int64
	// MaxFetchSize bounds documents fetched from a URL, in bytes.
	MaxFetchSize int64
	FetchTimeout time.Duration
	// AllowPrivateIPs disables the private address check for URL inputs.
	AllowPrivateIPs bool
	AllowFiles      bool
}

// cfg is read once when the package loads.
var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInlineSize:   config.EnvSize(envMaxInlineSize, 10<<20),
		MaxFetchSize:    config.EnvSize(envMaxFetchSize, 32<<20),
		FetchTimeout:    config.EnvDuration(envFetchTimeout, 30*time.Second),
		AllowPrivateIPs: config.EnvBool(envAllowPrivateIPs, false),
		AllowFiles:      config.EnvBool(envAllowFiles, true),
	}
}
