// Package archive writes a generated project as a ZIP file rooted at one
// top-level directory.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// DuplicateError is returned when the same path is added twice.
type DuplicateError struct {
	Path string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate archive entry %q", e.Path)
}

// Writer streams entries into a ZIP under a single root directory.
type Writer struct {
	zw      *zip.Writer
	root    string
	modTime time.Time
	seen    map[string]struct{}
	bytes   int64
}

// Option configures a Writer.
type Option func(*Writer)

// WithModTime stamps every entry with t instead of the current time.
func WithModTime(t time.Time) Option {
	return func(w *Writer) {
		w.modTime = t
	}
}

// NewWriter returns a Writer that places every entry under root/.
func NewWriter(out io.Writer, root string, opts ...Option) *Writer {
	w := &Writer{
		zw:      zip.NewWriter(out),
		root:    strings.Trim(root, "/"),
		modTime: time.Now(),
		seen:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Add writes one file. The path is relative to the archive root.
func (w *Writer) Add(name string, content []byte) error {
	clean := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))[1:]
	if clean == "" {
		return fmt.Errorf("empty archive path %q", name)
	}
	if _, ok := w.seen[clean]; ok {
		return &DuplicateError{Path: clean}
	}

	hdr := &zip.FileHeader{
		Name:     w.root + "/" + clean,
		Method:   zip.Deflate,
		Modified: w.modTime,
	}
	hdr.SetMode(0o644)

	f, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("adding %s: %w", clean, err)
	}
	if _, err := f.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", clean, err)
	}
	w.seen[clean] = struct{}{}
	w.bytes += int64(len(content))
	return nil
}

// Len returns the number of files added.
func (w *Writer) Len() int {
	return len(w.seen)
}

// Size returns the uncompressed size of everything added.
func (w *Writer) Size() int64 {
	return w.bytes
}

// Root returns the top-level directory name.
func (w *Writer) Root() string {
	return w.root
}

// Close finishes the central directory. The underlying writer is not closed.
func (w *Writer) Close() error {
	if err := w.zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}
