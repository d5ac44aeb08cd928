package filemanager

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func stagingPrefix(root string) string {
	return "." + root + "-staging-"
}

// CleanupStaging removes staging directories left behind by interrupted
// extractions of root.
func CleanupStaging(dir, root string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	prefix := stagingPrefix(root)
	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			return removed, fmt.Errorf("removing stale staging dir %s: %w", entry.Name(), err)
		}
		removed = append(removed, entry.Name())
	}

	return removed, nil
}

// RemoveProject removes an extracted project directory.
func RemoveProject(dir, root string) error {
	if err := validatePathComponent(root, "project directory"); err != nil {
		return err
	}
	path := filepath.Join(dir, root)
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
