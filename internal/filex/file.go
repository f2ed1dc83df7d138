package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and any missing parents) if needed and returns its
// absolute path. Relative paths are resolved against the current working
// directory.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
