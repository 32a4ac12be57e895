// Package checksum reads and writes sha256sum-style sidecar files:
//
//	<64 hex digits><two spaces><file name>
//
// Only the first line of a sidecar is significant.
package checksum

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"github.com/avalik-ee/riigikogu-openapi/internal/fileutil"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// HexLength is the length of a hex-encoded SHA-256 digest.
const HexLength = 64

// Entry is a parsed sidecar line.
type Entry struct {
	// Hash is the digest as written in the file.
	Hash string
	// Filename is the file the digest describes, or "" when omitted.
	Filename string
}

// Matches reports whether the entry records exactly hash and, when the entry
// names a file, that it names filename.
func (e Entry) Matches(hash, filename string) bool {
	if e.Hash != hash {
		return false
	}
	return e.Filename == "" || e.Filename == filename
}

// Parse parses the first line of a sidecar file. Hex digits are accepted in
// either case.
func Parse(content string) (Entry, error) {
	line, _, _ := strings.Cut(content, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, &specerrors.DecodeError{Message: "empty checksum file"}
	}

	hash, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		hash, rest = line[:i], line[i:]
	}
	if !isHex(hash) {
		return Entry{}, &specerrors.DecodeError{Message: fmt.Sprintf("invalid sha256 digest %q", hash)}
	}

	// sha256sum marks binary mode with a leading '*'
	filename := strings.TrimPrefix(strings.TrimSpace(rest), "*")
	return Entry{Hash: hash, Filename: filename}, nil
}

// Format returns the sidecar line for hash and filename, including the
// trailing newline.
func Format(hash, filename string) string {
	return hash + "  " + filename + "\n"
}

// Read reads and parses the sidecar at path. ok is false when the file does
// not exist or cannot be parsed; err is only set for other I/O failures.
func Read(path string) (entry Entry, ok bool, err error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the pipeline configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("checksum: reading %s: %w", path, err)
	}
	entry, err = Parse(string(data))
	if err != nil {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

// Write atomically writes the sidecar for hash and filename to path.
func Write(path, hash, filename string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(Format(hash, filename)), fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("checksum: writing %s: %w", path, err)
	}
	return nil
}

func isHex(s string) bool {
	if len(s) != HexLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
