// Package testutil provides test fixtures shared by the command and tool tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MinimalSpec returns a compact, non-canonical OpenAPI 3.0 document with the
// given info.version.
func MinimalSpec(version string) string {
	return fmt.Sprintf(`{"openapi":"3.0.1","info":{"title":"Riigikogu","version":%q},"paths":{}}`, version)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
