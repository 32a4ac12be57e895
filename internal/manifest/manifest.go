// Package manifest reads and updates the version field of a package manifest
// (package.json, version.json, or a YAML equivalent) without reformatting
// the rest of the file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/avalik-ee/riigikogu-openapi/internal/fileutil"
)

// VersionKey is the top-level key holding the package version.
const VersionKey = "version"

// Format identifies the manifest encoding.
type Format int

const (
	// FormatJSON is a JSON object manifest.
	FormatJSON Format = iota
	// FormatYAML is a YAML mapping manifest.
	FormatYAML
)

// ErrNotObject is returned when the manifest's top level is not an object or
// mapping.
var ErrNotObject = errors.New("manifest: top-level value is not an object")

// Manifest is a loaded manifest file.
type Manifest struct {
	// Path is the file the manifest was read from.
	Path string
	// Format is detected from the file extension.
	Format Format

	data    []byte
	version string
	found   bool
}

// DetectFormat returns FormatYAML for .yaml and .yml files and FormatJSON
// otherwise.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the pipeline configuration
	if err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses manifest content; path selects the format and names the
// manifest in errors.
func Parse(path string, data []byte) (*Manifest, error) {
	m := &Manifest{Path: path, Format: DetectFormat(path), data: data}

	var err error
	switch m.Format {
	case FormatYAML:
		m.version, m.found, err = yamlVersion(data)
	default:
		var loc jsonLocation
		loc, err = locateJSONVersion(data)
		m.version, m.found = loc.version, loc.found
	}
	if err != nil {
		return nil, fmt.Errorf("manifest: parsing %s: %w", path, err)
	}
	return m, nil
}

// Version returns the current version, or "" when the key is absent or not a
// string.
func (m *Manifest) Version() string {
	return m.version
}

// HasVersion reports whether the manifest has a version key.
func (m *Manifest) HasVersion() bool {
	return m.found
}

// Bytes returns the current manifest content.
func (m *Manifest) Bytes() []byte {
	return m.data
}

// SetVersion replaces the version in memory, inserting the key when absent.
func (m *Manifest) SetVersion(version string) error {
	var (
		out []byte
		err error
	)
	switch m.Format {
	case FormatYAML:
		out, err = setYAMLVersion(m.data, version)
	default:
		out, err = setJSONVersion(m.data, version)
	}
	if err != nil {
		return fmt.Errorf("manifest: updating %s: %w", m.Path, err)
	}
	m.data = out
	m.version = version
	m.found = true
	return nil
}

// Save atomically writes the manifest back to its path.
func (m *Manifest) Save() error {
	if err := fileutil.WriteFileAtomic(m.Path, m.data, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return nil
}
