package sanitize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrTargetExists is returned when the sanitized name is already taken by a
// different file.
var ErrTargetExists = errors.New("target file already exists")

// checkTarget refuses to overwrite a file other than source.
func checkTarget(source, target string) error {
	if filepath.Clean(source) == filepath.Clean(target) {
		return nil
	}
	targetInfo, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", target, err)
	}
	// Case-insensitive filesystems resolve both names to the same file.
	if sourceInfo, err := os.Stat(source); err == nil && os.SameFile(sourceInfo, targetInfo) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTargetExists, filepath.Base(target))
}

// replaceFile writes data to target and removes source when the paths
// differ. The new file keeps the permissions of the source.
func replaceFile(source, target string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(source); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(target, data, mode); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	if filepath.Clean(source) == filepath.Clean(target) {
		return nil
	}
	if err := os.Remove(source); err != nil {
		return fmt.Errorf("remove %s: %w", filepath.Base(source), err)
	}
	return nil
}
