// Package atomicfile writes files through a temp file and rename so readers
// never observe a partially written document.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultPerm os.FileMode = 0o644

// WriteFile replaces path with data and returns the number of bytes written.
// Missing parent directories are created. A zero perm keeps the mode of the
// file being replaced, or 0644 for a new file.
func WriteFile(path string, data []byte, perm os.FileMode) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory %s: %w", dir, err)
	}
	if perm == 0 {
		perm = currentPerm(path)
	}

	tmpPath, n, err := writeTemp(dir, filepath.Base(path), data, perm)
	if err != nil {
		return 0, err
	}
	if err := replace(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, err
	}
	syncDir(dir)
	return n, nil
}

func currentPerm(path string) os.FileMode {
	if st, err := os.Stat(path); err == nil {
		return st.Mode().Perm()
	}
	return defaultPerm
}

// writeTemp writes data to a hidden sibling file and flushes it to disk.
func writeTemp(dir, base string, data []byte, perm os.FileMode) (string, int, error) {
	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	fail := func(step string, err error) (string, int, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", 0, fmt.Errorf("%s temp file: %w", step, err)
	}

	// Not every filesystem honors chmod.
	_ = f.Chmod(perm)

	n, err := f.Write(data)
	if err != nil {
		return fail("write", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", 0, fmt.Errorf("close temp file: %w", err)
	}
	return name, n, nil
}

// replace renames src over dst. Windows refuses to rename onto an existing
// file, so the destination is removed and the rename retried once.
func replace(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
		return fmt.Errorf("rename temp file: %w", err)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// syncDir flushes the rename itself. Errors are ignored; some platforms cannot
// open or fsync directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
