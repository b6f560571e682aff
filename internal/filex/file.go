// Package filex contains small filesystem helpers for the CLI.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDir makes sure the client data directory exists and returns its
// absolute path. Relative paths are resolved against the current working
// directory, so running the CLI from a project checkout keeps its state local.
func EnsureDataDir(path string) (string, error) {
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	if err := os.MkdirAll(path, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", path, err)
	}

	return path, nil
}
