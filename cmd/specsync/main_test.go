package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"fecth", "fetch"},
		{"fetc", "fetch"},
		{"rendr", "render"},
		{"stag", "stage"},
		{"read-versio", "read-version"},
		{"check-verison", "check-version"},
		{"sync-versoin", "sync-version"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far
		{"xyz", ""},
		{"publish", ""},
		{"version-sync", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestSplitConfigFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPath string
		wantArgs []string
	}{
		{"none", []string{"fetch"}, "", []string{"fetch"}},
		{"separate", []string{"--config", "ci.yaml", "fetch", "--url", "x"}, "ci.yaml", []string{"fetch", "--url", "x"}},
		{"inline", []string{"--config=ci.yaml", "stage"}, "ci.yaml", []string{"stage"}},
		{"dangling", []string{"--config"}, "", []string{"--config"}},
		{"empty", nil, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, args := splitConfigFlag(tt.args)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRun(t *testing.T) {
	t.Run("no command", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(nil, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "Usage:")
	})

	t.Run("help", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"help"}, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "check-version")
		assert.Contains(t, stdout.String(), "mcp")
	})

	t.Run("version", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"--version"}, &stdout, &stderr))
		assert.Contains(t, stdout.String(), "specsync dev")
	})

	t.Run("unknown command suggests", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"fecth"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "Unknown command: fecth")
		assert.Contains(t, stderr.String(), "Did you mean: fetch?")
	})

	t.Run("command error", func(t *testing.T) {
		t.Chdir(t.TempDir())
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"stage"}, &stdout, &stderr))
		assert.Equal(t, "error: --files: argument is required (comma-separated list)\n", stderr.String())
		assert.Empty(t, stdout.String())
	})

	t.Run("read-version with config file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv("GITHUB_OUTPUT", "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "custom.yaml"),
			[]byte("output_json: spec/openapi.json\n"), 0o600))
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "spec"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "spec", "openapi.json"),
			[]byte(`{"info":{"version":"4.5.6"}}`), 0o600))

		var stdout, stderr bytes.Buffer
		assert.Equal(t, 0, run([]string{"--config", "custom.yaml", "read-version"}, &stdout, &stderr))
		assert.Equal(t, "version=4.5.6\n", stdout.String())
	})

	t.Run("bad config file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"--config", "missing.yaml", "read-version"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "error: configuration error")
	})
}
