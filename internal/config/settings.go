package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the tool's own options, as opposed to a project's answers.
type Settings struct {
	BundleURL   string        `mapstructure:"bundle_url"`
	BundleToken string        `mapstructure:"bundle_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OutputDir   string        `mapstructure:"output_dir"`
	Debug       bool          `mapstructure:"debug"`
	NoColor     bool          `mapstructure:"no_color"`
}

// settingsKeys are bound to EnvPrefix_<KEY> environment variables.
var settingsKeys = []string{"bundle_url", "bundle_token", "timeout", "output_dir", "debug", "no_color"}

// DefaultSettingsPath is ~/.config/fastapi-configurator/settings.yaml, or
// the same path under $XDG_CONFIG_HOME.
func DefaultSettingsPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fastapi-configurator", "settings.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "fastapi-configurator", "settings.yaml"), nil
}

// SettingsLoader merges settings from a file, the environment and flags.
// Flags win over the environment, which wins over the file.
type SettingsLoader struct {
	v     *viper.Viper
	flags map[string]*pflag.Flag
}

// NewSettingsLoader creates a loader with defaults and env bindings.
func NewSettingsLoader() *SettingsLoader {
	v := viper.New()
	v.SetDefault("bundle_url", DefaultBundleURL)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("output_dir", DefaultOutputDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range settingsKeys {
		_ = v.BindEnv(key)
	}
	return &SettingsLoader{v: v, flags: make(map[string]*pflag.Flag)}
}

// BindFlag ties a settings key to a command-line flag. The flag only takes
// effect when it was set explicitly.
func (l *SettingsLoader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: flag not defined", key)
	}
	l.flags[key] = flag
	return l.v.BindPFlag(key, flag)
}

// Load reads path (or the default location when empty). A missing file is
// not an error.
func (l *SettingsLoader) Load(path string) (*Settings, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
		if explicit {
			return nil, fmt.Errorf("settings file %s not found", path)
		}
	}

	var s Settings
	if err := l.v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.BundleURL == "" {
		s.BundleURL = DefaultBundleURL
	}
	if s.OutputDir == "" {
		s.OutputDir = DefaultOutputDir
	}
	if os.Getenv("NO_COLOR") != "" {
		s.NoColor = true
	}
	return &s, nil
}

// Source reports where the effective value of key came from: "flag",
// "env", "file" or "default".
func (l *SettingsLoader) Source(key string) string {
	if f := l.lookupFlag(key); f != nil && f.Changed {
		return "flag"
	}
	if _, ok := os.LookupEnv(EnvPrefix + "_" + strings.ToUpper(key)); ok {
		return "env"
	}
	if l.v.InConfig(key) {
		return "file"
	}
	return "default"
}

func (l *SettingsLoader) lookupFlag(key string) *pflag.Flag {
	return l.flags[key]
}
