package bundle

import (
	"context"
	"os"
	"strings"
	"sync"
)

// FileSource loads a templates.json from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Load(_ context.Context) (*Bundle, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, &FetchError{Location: s.Path, Err: err}
	}
	b, err := Decode(data)
	if err != nil {
		return nil, &FetchError{Location: s.Path, Err: err}
	}
	return b, nil
}

// DirSource bundles a template directory in memory on first use.
type DirSource struct {
	Dir string

	once   sync.Once
	bundle *Bundle
	err    error
}

func (s *DirSource) Load(_ context.Context) (*Bundle, error) {
	s.once.Do(func() {
		b, _, err := Build(s.Dir)
		if err != nil {
			s.err = &FetchError{Location: s.Dir, Err: err}
			return
		}
		s.bundle = b
	})
	return s.bundle, s.err
}

// Open picks a source for location: an http(s) URL, a templates.json file,
// or a template directory.
func Open(location string, opts ...Option) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewClient(append([]Option{WithBaseURL(location)}, opts...)...), nil
	}
	info, err := os.Stat(location)
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	if info.IsDir() {
		return &DirSource{Dir: location}, nil
	}
	return FileSource{Path: location}, nil
}
