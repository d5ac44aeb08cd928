// Package bundle loads and builds the template bundle: every text file of
// the project template keyed by its relative path.
package bundle

import (
	"context"
	"fmt"
	"sort"
)

// FileName is the bundle's name next to the site assets.
const FileName = "templates.json"

// Bundle is the decoded templates.json document.
type Bundle struct {
	Files map[string]string `json:"files"`
}

// Len returns the number of template files.
func (b *Bundle) Len() int {
	return len(b.Files)
}

// Paths returns the template paths in sorted order so generation is
// deterministic.
func (b *Bundle) Paths() []string {
	paths := make([]string, 0, len(b.Files))
	for p := range b.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Source yields a bundle.
type Source interface {
	Load(ctx context.Context) (*Bundle, error)
}

// FetchError reports a bundle that could not be loaded. It is fatal to the
// generation run that asked for it.
type FetchError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("failed to load templates from %s: HTTP %d", e.Location, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("failed to load templates from %s: %v", e.Location, e.Err)
	default:
		return fmt.Sprintf("failed to load templates from %s", e.Location)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
