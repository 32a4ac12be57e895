package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearMCPEnv isolates tests from SPECSYNC_MCP_* variables in the environment.
func clearMCPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		envMaxInlineSize, envMaxFetchSize, envFetchTimeout, envAllowPrivateIPs, envAllowFiles,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearMCPEnv(t)

	c := loadConfig()
	assert.Equal(t, int64(10<<20), c.MaxInlineSize)
	assert.Equal(t, int64(32<<20), c.MaxFetchSize)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
	assert.False(t, c.AllowPrivateIPs)
	assert.True(t, c.AllowFiles)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv(envMaxInlineSize, "1024")
	t.Setenv("SPECSYNC_MCP_FETCH_TIMEOUT", "5s")
	t.Setenv("SPECSYNC_MCP_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("SPECSYNC_MCP_ALLOW_FILES", "0")

	c := loadConfig()
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.Equal(t, 5*time.Second, c.FetchTimeout)
	assert.True(t, c.AllowPrivateIPs)
	assert.False(t, c.AllowFiles)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv("SPECSYNC_MCP_MAX_INLINE_SIZE", "-5")
	t.Setenv("SPECSYNC_MCP_MAX_FETCH_SIZE", "lots")
	t.Setenv("SPECSYNC_MCP_FETCH_TIMEOUT", "0s")
	t.Setenv("SPECSYNC_MCP_ALLOW_FILES", "maybe")

	c := loadConfig()
	assert.Equal(t, int64(10<<20), c.MaxInlineSize)
	assert.Equal(t, int64(32<<20), c.MaxFetchSize)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
	assert.True(t, c.AllowFiles)
}

// withConfig swaps the active configuration for the duration of a test.
func withConfig(t *testing.T, mutate func(*serverConfig)) {
	t.Helper()
	saved := cfg
	c := *saved
	mutate(&c)
	cfg = &c
	t.Cleanup(func() { cfg = saved })
}
