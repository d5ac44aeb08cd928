package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/company/fastapi-configurator/internal/output"
)

// TemplateRoot is the directory of a cookiecutter template that holds the
// project files.
const TemplateRoot = "{{cookiecutter.project_slug}}"

var skipDirs = map[string]bool{
	"__pycache__":  true,
	".git":         true,
	"node_modules": true,
	".next":        true,
}

var binaryExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".svg": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".lock": true, ".pyc": true, ".pyo": true, ".so": true, ".dylib": true,
}

// BuildStats summarizes one bundle build.
type BuildStats struct {
	Files   int
	Skipped int
	Bytes   int64
}

// Build walks a template directory into a bundle. When dir contains the
// {{cookiecutter.project_slug}} directory, only that subtree is bundled.
func Build(dir string) (*Bundle, BuildStats, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, BuildStats{}, fmt.Errorf("reading template dir: %w", err)
	}
	if !info.IsDir() {
		return nil, BuildStats{}, fmt.Errorf("%s is not a directory", dir)
	}
	return BuildFS(os.DirFS(dir))
}

// BuildFS is Build over an fs.FS.
func BuildFS(fsys fs.FS) (*Bundle, BuildStats, error) {
	root := "."
	if fi, err := fs.Stat(fsys, TemplateRoot); err == nil && fi.IsDir() {
		root = TemplateRoot
	}

	b := &Bundle{Files: make(map[string]string)}
	var stats BuildStats
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if binaryExts[strings.ToLower(path.Ext(p))] {
			stats.Skipped++
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		if !utf8.Valid(data) {
			output.Debug("skipping non-text template", "path", p)
			stats.Skipped++
			return nil
		}

		rel := p
		if root != "." {
			rel = strings.TrimPrefix(p, root+"/")
		}
		b.Files[rel] = string(data)
		stats.Files++
		stats.Bytes += int64(len(data))
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walking templates: %w", err)
	}
	return b, stats, nil
}

// Write encodes b as templates.json.
func Write(w io.Writer, b *Bundle) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
