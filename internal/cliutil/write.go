// Package cliutil provides output helpers shared by the specsync commands.
package cliutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avalik-ee/riigikogu-openapi/internal/fileutil"
)

// GitHubOutputEnv names the file GitHub Actions reads step outputs from.
const GitHubOutputEnv = "GITHUB_OUTPUT"

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Output is a named step output.
type Output struct {
	Key   string
	Value string
}

// KV is shorthand for an Output.
func KV(key string, value any) Output {
	return Output{Key: key, Value: fmt.Sprint(value)}
}

// Emit writes each output as a key=value line to w and, when githubOutput is
// not empty, appends them to that file as well.
func Emit(w io.Writer, githubOutput string, outputs ...Output) error {
	for _, o := range outputs {
		Writef(w, "%s=%s\n", o.Key, o.Value)
	}
	return AppendGitHubOutput(githubOutput, outputs...)
}

// AppendGitHubOutput appends outputs to the GitHub Actions output file.
// Multi-line values use the heredoc form. An empty path is a no-op.
func AppendGitHubOutput(path string, outputs ...Output) error {
	if path == "" || len(outputs) == 0 {
		return nil
	}

	var b strings.Builder
	for _, o := range outputs {
		if !strings.ContainsAny(o.Value, "\r\n") {
			b.WriteString(o.Key + "=" + o.Value + "\n")
			continue
		}
		delim, err := delimiter(o.Value)
		if err != nil {
			return err
		}
		b.WriteString(o.Key + "<<" + delim + "\n" + o.Value + "\n" + delim + "\n")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileutil.ReadableByAll) //nolint:gosec // path is provided by the Actions runner
	if err != nil {
		return fmt.Errorf("cliutil: opening %s: %w", GitHubOutputEnv, err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("cliutil: writing %s: %w", GitHubOutputEnv, err)
	}
	return f.Close()
}

// delimiter returns a heredoc delimiter that does not occur in value.
func delimiter(value string) (string, error) {
	for range 8 {
		var buf [8]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return "", fmt.Errorf("cliutil: generating delimiter: %w", err)
		}
		d := "ghadelimiter_" + hex.EncodeToString(buf[:])
		if !strings.Contains(value, d) {
			return d, nil
		}
	}
	return "", fmt.Errorf("cliutil: no usable delimiter for multi-line output")
}
