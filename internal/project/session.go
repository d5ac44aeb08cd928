package project

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
	"gopkg.in/yaml.v3"
)

// Session owns the one mutable Configuration of a wizard run. Every mutation
// is followed by Resolve, so Snapshot always returns a consistent value.
type Session struct {
	cfg    Config
	preset string
	fixed  []string
}

// NewSession starts from the defaults, optionally overridden by a preset.
func NewSession(preset string) (*Session, error) {
	cfg, err := WithPreset(preset)
	if err != nil {
		return nil, err
	}
	s := &Session{preset: preset}
	s.cfg, s.fixed = resolveTracked(cfg)
	return s, nil
}

// NewSessionFrom starts from an existing configuration.
func NewSessionFrom(cfg Config) *Session {
	s := &Session{}
	s.cfg, s.fixed = resolveTracked(cfg)
	return s
}

// Snapshot returns a copy of the current configuration.
func (s *Session) Snapshot() Config {
	return s.cfg
}

// Preset is the preset the session was last reset to, if any.
func (s *Session) Preset() string {
	return s.preset
}

// AutoFixed lists the fixups applied by the most recent mutation.
func (s *Session) AutoFixed() []string {
	return s.fixed
}

// ApplyPreset replaces the whole configuration with defaults overridden by
// the named preset.
func (s *Session) ApplyPreset(name string) error {
	cfg, err := WithPreset(name)
	if err != nil {
		return err
	}
	s.cfg, s.fixed = resolveTracked(cfg)
	s.preset = name
	return nil
}

// Update applies fn to a copy of the configuration, resolves it and stores
// the result. Field validation errors are returned but never block the
// update.
func (s *Session) Update(fn func(c *Config)) error {
	next := s.cfg
	fn(&next)
	s.cfg, s.fixed = resolveTracked(next)
	return s.cfg.Validate()
}

// Set assigns one field by its snake_case key. Nested logfire toggles use a
// dotted key such as "logfire_features.redis". The raw value is decoded with
// YAML scalar rules, so "true", "8000" and "postgresql" all work.
func (s *Session) Set(key, value string) error {
	doc, err := fieldDocument(key, value)
	if err != nil {
		return err
	}

	next := s.cfg
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&next); err != nil {
		return &FieldError{Field: key, Message: decodeMessage(err)}
	}
	// enums only take their closed values; the previous one is kept
	if fe := invalidEnum(next, key); fe != nil {
		return fe
	}

	s.cfg, s.fixed = resolveTracked(next)
	if verr := s.cfg.Validate(); verr != nil {
		var errs ValidationErrors
		if errors.As(verr, &errs) {
			if fe := errs.For(key); fe != nil {
				return fe
			}
		}
	}
	return nil
}

// Changed reports whether the session differs from the given configuration.
func (s *Session) Changed(since Config) bool {
	return Fingerprint(s.cfg) != Fingerprint(since)
}

// Fingerprint is a stable hash of a configuration.
func Fingerprint(c Config) uint64 {
	h, err := hashstructure.Hash(c, hashstructure.FormatV2, nil)
	if err != nil {
		// Config holds only strings, ints and bools.
		panic(fmt.Sprintf("hashing configuration: %v", err))
	}
	return h
}

func fieldDocument(key, value string) ([]byte, error) {
	parts := strings.Split(key, ".")
	for _, p := range parts {
		if p == "" {
			return nil, &FieldError{Field: key, Message: "invalid field key"}
		}
	}

	leaf := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if value == "" {
		// A bare empty scalar decodes as null and would leave the field untouched.
		leaf.Style = yaml.DoubleQuotedStyle
	}
	node := leaf
	for i := len(parts) - 1; i >= 0; i-- {
		node = &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: parts[i]},
				node,
			},
		}
	}
	return yaml.Marshal(node)
}

func decodeMessage(err error) string {
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg := te.Errors[0]
		if strings.Contains(msg, "not found in type") {
			return "unknown field"
		}
		return "invalid value"
	}
	return err.Error()
}
