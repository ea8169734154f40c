package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FindSettingsRoot walks up from start looking for a directory holding
// name. It returns the directory, or "" when the filesystem root is reached
// without a match.
func FindSettingsRoot(start, name string) (string, error) {
	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	for {
		info, err := os.Stat(filepath.Join(current, name))
		if err == nil {
			if !info.IsDir() {
				return current, nil
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			// Permission problems and the like.
			return "", fmt.Errorf("error checking for %s at %s: %w", name, current, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}
