package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/company/fastapi-configurator/internal/cookiecutter"
	"github.com/company/fastapi-configurator/internal/filemanager"
	"github.com/company/fastapi-configurator/internal/project"
)

const derivedSeparator = "\n# Derived context — auto-generated, do not edit below this line\n"

// Answers is a saved configuration, including the derived context it
// projects to.
type Answers struct {
	Version int            `yaml:"version"`
	Preset  string         `yaml:"preset,omitempty"`
	Project project.Config `yaml:"project"`

	Derived map[string]bool `yaml:"derived,omitempty"`
}

// answersUserFields is the part of the file users edit.
// Used for two-pass marshaling so the derived section stays below a comment.
type answersUserFields struct {
	Version int            `yaml:"version"`
	Preset  string         `yaml:"preset,omitempty"`
	Project project.Config `yaml:"project"`
}

// answersDerivedFields is the auto-generated portion of the file.
type answersDerivedFields struct {
	Derived map[string]bool `yaml:"derived"`
}

type answersHeader struct {
	Version int    `yaml:"version"`
	Preset  string `yaml:"preset"`
}

// NewAnswers wraps cfg for saving. The derived section is filled on save.
func NewAnswers(preset string, cfg project.Config) *Answers {
	return &Answers{Version: AnswersVersion, Preset: preset, Project: cfg}
}

// AnswersExists checks whether the file exists.
func AnswersExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadAnswers reads an answers file. Fields missing from the file keep the
// value of the named preset (or the defaults); the derived section is
// ignored. The result is validated and auto-resolved.
func LoadAnswers(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("answers file %s not found: run 'fastapi-configurator answers init' first", path)
		}
		return nil, fmt.Errorf("reading answers: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes answers file content. See LoadAnswers.
func ParseAnswers(data []byte) (*Answers, error) {
	var head answersHeader
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	if head.Version == 0 {
		head.Version = AnswersVersion
	}
	if head.Version > AnswersVersion {
		return nil, fmt.Errorf("unsupported answers version %d (newest known is %d)", head.Version, AnswersVersion)
	}

	base, err := project.WithPreset(head.Preset)
	if err != nil {
		return nil, err
	}

	// Decoding into a populated struct only overwrites keys present in the file.
	a := &Answers{Project: base}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(a); err != nil {
		return nil, fmt.Errorf("parsing answers: %w", err)
	}
	a.Version = head.Version
	a.Derived = nil

	if err := a.Project.Validate(); err != nil {
		return nil, fmt.Errorf("invalid answers: %w", err)
	}
	a.Project = project.Resolve(a.Project)
	return a, nil
}

// Marshal renders the file in two passes: user fields first, then a comment
// separator, then the derived context of the resolved configuration.
func (a *Answers) Marshal() ([]byte, error) {
	if a.Version == 0 {
		a.Version = AnswersVersion
	}
	a.Project = project.Resolve(a.Project)
	a.Derived = cookiecutter.Project(a.Project).Flags()

	userBytes, err := yaml.Marshal(answersUserFields{
		Version: a.Version,
		Preset:  a.Preset,
		Project: a.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling answers: %w", err)
	}
	derivedBytes, err := yaml.Marshal(answersDerivedFields{Derived: a.Derived})
	if err != nil {
		return nil, fmt.Errorf("marshaling derived context: %w", err)
	}

	content := append([]byte("---\n"), userBytes...)
	content = append(content, []byte(derivedSeparator)...)
	content = append(content, derivedBytes...)
	return content, nil
}

// SaveAnswers writes the file atomically.
func SaveAnswers(path string, a *Answers) error {
	content, err := a.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := filemanager.WriteFileAtomic(path, content, 0644); err != nil {
		return fmt.Errorf("saving answers: %w", err)
	}
	return nil
}
