// Package exclude decides which template paths are dropped from a generated
// project for a given context.
package exclude

import (
	"sort"
	"strings"
)

// Set holds exact file paths and directory prefixes. Directory prefixes are
// matched segment by segment, so "worker/" never matches "workers-extra/x".
type Set struct {
	exact map[string]struct{}
	dirs  *node
}

type node struct {
	children map[string]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{exact: make(map[string]struct{}), dirs: newNode()}
}

func segments(p string) []string {
	p = strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" && s != "." {
			out = append(out, s)
		}
	}
	return out
}

func normalize(p string) string {
	return strings.Join(segments(p), "/")
}

// AddFile excludes one exact path.
func (s *Set) AddFile(p string) {
	if n := normalize(p); n != "" {
		s.exact[n] = struct{}{}
	}
}

// AddDir excludes everything nested under dir.
func (s *Set) AddDir(dir string) {
	segs := segments(dir)
	if len(segs) == 0 {
		return
	}
	cur := s.dirs
	for _, seg := range segs {
		next, ok := cur.children[seg]
		if !ok {
			next = newNode()
			cur.children[seg] = next
		}
		cur = next
	}
	cur.terminal = true
}

// Add routes p to AddDir when it ends in a slash, otherwise to AddFile.
func (s *Set) Add(p string) {
	if strings.HasSuffix(p, "/") {
		s.AddDir(p)
		return
	}
	s.AddFile(p)
}

// Excluded reports whether p matches an exact entry or lives under an
// excluded directory.
func (s *Set) Excluded(p string) bool {
	segs := segments(p)
	if len(segs) == 0 {
		return false
	}
	if _, ok := s.exact[strings.Join(segs, "/")]; ok {
		return true
	}
	cur := s.dirs
	// the last segment is the file itself; only its parents can be prefixes
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur.children[seg]
		if !ok {
			return false
		}
		if next.terminal {
			return true
		}
		cur = next
	}
	return false
}

// Len returns the number of entries.
func (s *Set) Len() int {
	return len(s.exact) + countDirs(s.dirs)
}

func countDirs(n *node) int {
	c := 0
	for _, child := range n.children {
		if child.terminal {
			c++
		}
		c += countDirs(child)
	}
	return c
}

// Paths lists every entry sorted, directories with a trailing slash.
func (s *Set) Paths() []string {
	out := make([]string, 0, s.Len())
	for p := range s.exact {
		out = append(out, p)
	}
	var walk func(prefix string, n *node)
	walk = func(prefix string, n *node) {
		for seg, child := range n.children {
			p := prefix + seg + "/"
			if child.terminal {
				out = append(out, p)
			}
			walk(p, child)
		}
	}
	walk("", s.dirs)
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same entries.
func (s *Set) Equal(other *Set) bool {
	a, b := s.Paths(), other.Paths()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
