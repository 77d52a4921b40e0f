// Package filex contains filesystem helpers for the CLI: preparing the
// local state directory and opening files picked for upload.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRegularFile is returned by OpenRegular for directories, devices and
// other non-regular paths.
var ErrNotRegularFile = errors.New("not a regular file")

// EnsureParentDir creates the directory that will hold path (mode 0700) and
// returns path made absolute. It is a no-op when the directory exists.
func EnsureParentDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return abs, nil
}

// OpenRegular opens path for reading and returns the file together with its
// base name. The caller closes the file.
func OpenRegular(path string) (*os.File, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, "", fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", path, err)
	}
	return f, filepath.Base(path), nil
}
