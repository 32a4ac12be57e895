// Package fileutil provides file permission constants and atomic writes for
// the files the release pipeline commits.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadableByAll is the file permission mode for committed files: the spec,
// its checksum, manifests and rendered templates.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for directories created for output.
const DirReadableByAll os.FileMode = 0o755

// WriteFileAtomic writes data to a temporary file in the target directory and
// renames it over path, so readers never observe a partially written file.
// An existing file keeps its permission bits; new files get perm.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("fileutil: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fileutil: writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("fileutil: setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fileutil: closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("fileutil: replacing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than non-existence are
// treated as existing so that callers surface them on the next operation.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
