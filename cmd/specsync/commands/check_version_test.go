package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

func TestHandleCheckVersion(t *testing.T) {
	tests := []struct {
		name     string
		show     fakeResult
		newVer   string
		wantLine string
	}{
		{"same version", fakeResult{out: []byte(upstreamSpec)}, "2.21.4", "spec_changed=false\n"},
		{"newer version", fakeResult{out: []byte(upstreamSpec)}, "2.22.0", "spec_changed=true\n"},
		{"build metadata ignored", fakeResult{out: []byte(upstreamSpec)}, "2.21.4+20261019", "spec_changed=false\n"},
		{"not committed yet", fakeResult{err: gitExit(128, "fatal: path 'spec.json' does not exist in 'HEAD'")}, "2.21.4", "spec_changed=true\n"},
		{"git unavailable", fakeResult{err: &specerrors.GitError{ExitCode: -1, Cause: errors.New("executable file not found")}}, "2.21.4", "spec_changed=true\n"},
		{"previous not json", fakeResult{out: []byte("<<<<<<< HEAD")}, "2.21.4", "spec_changed=true\n"},
		{"previous without version", fakeResult{out: []byte(`{"info":{}}`)}, "2.21.4", "spec_changed=true\n"},
		{"previous not semver", fakeResult{out: []byte(`{"info":{"version":"latest"}}`)}, "2.21.4", "spec_changed=true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.git.results["show"] = tt.show

			require.NoError(t, HandleCheckVersion(context.Background(), env.Env,
				[]string{"--new-version", tt.newVer, "--json-file", "spec.json"}))
			assert.Equal(t, tt.wantLine, env.stdout.String())
			assert.Equal(t, [][]string{{"show", "HEAD:spec.json"}}, env.git.calls)
		})
	}
}

func TestHandleCheckVersion_Rev(t *testing.T) {
	env := newTestEnv(t)
	env.git.results["show"] = fakeResult{out: []byte(upstreamSpec)}

	require.NoError(t, HandleCheckVersion(context.Background(), env.Env,
		[]string{"--new-version", "2.21.4", "--json-file", "spec.json", "--rev", "origin/main"}))
	assert.Equal(t, [][]string{{"show", "origin/main:spec.json"}}, env.git.calls)
}

func TestHandleCheckVersion_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"missing", nil, specerrors.ErrArgument},
		{"empty", []string{"--new-version="}, specerrors.ErrArgument},
		{"bare flag", []string{"--new-version"}, specerrors.ErrVersion},
		{"not semver", []string{"--new-version", "2.21"}, specerrors.ErrVersion},
		{"v prefix", []string{"--new-version", "v2.21.4"}, specerrors.ErrVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			err := HandleCheckVersion(context.Background(), env.Env, tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.git.calls)
		})
	}
}
