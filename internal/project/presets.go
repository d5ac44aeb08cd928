package project

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets/presets.yml
var presetsYAML []byte

// Preset is a named partial override of the default configuration.
type Preset struct {
	Name        string    `yaml:"name"`
	Label       string    `yaml:"label"`
	Description string    `yaml:"description"`
	Overrides   yaml.Node `yaml:"overrides"`
}

// UnknownPresetError is returned when a preset name is not defined.
type UnknownPresetError struct {
	Name string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown preset %q (available: %s)", e.Name, strings.Join(PresetNames(), ", "))
}

var presets = mustLoadPresets(presetsYAML)

func mustLoadPresets(data []byte) []Preset {
	var ps []Preset
	if err := yaml.Unmarshal(data, &ps); err != nil {
		panic(fmt.Sprintf("parsing embedded presets: %v", err))
	}
	return ps
}

// Presets returns all presets in declaration order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the preset names in declaration order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

// LookupPreset finds a preset by name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, &UnknownPresetError{Name: name}
}

// WithPreset returns the defaults overridden by the named preset. An empty
// name yields the plain defaults.
func WithPreset(name string) (Config, error) {
	cfg := Default()
	if name == "" {
		return cfg, nil
	}
	p, err := LookupPreset(name)
	if err != nil {
		return Config{}, err
	}
	if err := p.Overrides.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("applying preset %s: %w", name, err)
	}
	return cfg, nil
}
