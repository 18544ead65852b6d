// Package storage persists settings and categories as YAML files under the
// quickcap config directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ConfigDir is the directory created under the chosen root.
	ConfigDir      = ".quickcap"
	SettingsFile   = "settings.yaml"
	CategoriesFile = "categories.yaml"
)

// DefaultRoot resolves the user-level config root ($HOME). The environment
// override QUICKCAP_CONFIG points directly at an alternative root.
func DefaultRoot() (string, error) {
	if root := os.Getenv("QUICKCAP_CONFIG"); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return home, nil
}

// ResolvePath keeps every file strictly inside root/.quickcap and rejects
// traversal attempts.
func ResolvePath(root, filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(root, ConfigDir)
	cleanPath := filepath.Clean(filepath.Join(baseDir, filename))

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}
	return cleanPath, nil
}

// writeFileAtomic writes via a temp file and rename so readers never observe
// a half-written store.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func ensureConfigDir(root string) error {
	return os.MkdirAll(filepath.Join(root, ConfigDir), 0700)
}
