package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureCleanDir creates the directory if missing and empties it otherwise,
// so each batch run starts from a fresh output directory.
func EnsureCleanDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clean %s: %w", dir, err)
		}
	}
	return nil
}
