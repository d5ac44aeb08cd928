package filemanager

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// validatePathComponent rejects path components that could escape the intended directory.
func validatePathComponent(name, label string) error {
	if name == "" {
		return fmt.Errorf("empty %s", label)
	}
	cleaned := filepath.Clean(name)
	if cleaned != name || strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) || strings.ContainsRune(cleaned, filepath.Separator) {
		return fmt.Errorf("invalid %s: %q", label, name)
	}
	return nil
}

// validateRelPath checks a slash-separated path relative to the project root.
func validateRelPath(name string) error {
	if name == "" {
		return fmt.Errorf("empty file path")
	}
	if path.Clean(name) != name || path.IsAbs(name) || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid file path: %q", name)
	}
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." || seg == "." {
			return fmt.Errorf("invalid file path: %q", name)
		}
	}
	return nil
}

// validateInsideDir checks that resolved is a child of base after symlink-safe cleaning.
func validateInsideDir(base, resolved string) error {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return err
	}
	absResolved, err := filepath.Abs(resolved)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(absResolved, absBase+string(filepath.Separator)) && absResolved != absBase {
		return fmt.Errorf("path %q escapes base directory %q", resolved, base)
	}
	return nil
}

// ExistsError is returned when the extraction target is already present.
type ExistsError struct {
	Path string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("%s already exists (use --force to replace it)", e.Path)
}

// TreeWriter extracts a generated project into dir/root. Files are written
// to a hidden staging directory and moved into place on Close, so a failed
// run never leaves a half-written project behind.
type TreeWriter struct {
	dir     string
	root    string
	staging string
	force   bool
	files   int
}

// NewTreeWriter prepares extraction of root under dir. With force, an
// existing project directory is replaced on Close.
func NewTreeWriter(dir, root string, force bool) (*TreeWriter, error) {
	if err := validatePathComponent(root, "project directory"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	target := filepath.Join(dir, root)
	if _, err := os.Stat(target); err == nil && !force {
		return nil, &ExistsError{Path: target}
	}

	if _, err := CleanupStaging(dir, root); err != nil {
		return nil, err
	}
	staging, err := os.MkdirTemp(dir, stagingPrefix(root))
	if err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}

	return &TreeWriter{dir: dir, root: root, staging: staging, force: force}, nil
}

// Path is where the project ends up.
func (w *TreeWriter) Path() string {
	return filepath.Join(w.dir, w.root)
}

// Len returns the number of files written so far.
func (w *TreeWriter) Len() int {
	return w.files
}

// Add writes one file below the project root.
func (w *TreeWriter) Add(name string, content []byte) error {
	if err := validateRelPath(name); err != nil {
		return err
	}
	filePath := filepath.Join(w.staging, filepath.FromSlash(name))
	if err := validateInsideDir(w.staging, filePath); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", name, err)
	}
	if err := WriteFileAtomic(filePath, content, 0644); err != nil {
		return err
	}
	w.files++
	return nil
}

// Close moves the staged project into place.
func (w *TreeWriter) Close() error {
	target := w.Path()
	if w.force {
		if err := RemoveProject(w.dir, w.root); err != nil {
			w.Abort()
			return err
		}
	}
	if err := os.Rename(w.staging, target); err != nil {
		w.Abort()
		return fmt.Errorf("moving project into %s: %w", target, err)
	}
	return nil
}

// Abort discards the staged files.
func (w *TreeWriter) Abort() error {
	if err := os.RemoveAll(w.staging); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// WriteFileAtomic writes data next to path and renames it into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
