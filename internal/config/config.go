package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "LINEDIT"

// LocalConfigFile is looked up in the working directory.
const LocalConfigFile = ".linedit.yaml"

// Config holds all linedit settings.
type Config struct {
	// WorkspaceFile is where the session is persisted between runs.
	WorkspaceFile string `mapstructure:"workspace_file" yaml:"workspace_file" toml:"workspace_file"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level" toml:"log_level"`

	// LogFile receives diagnostics. Empty means stderr.
	LogFile string `mapstructure:"log_file" yaml:"log_file" toml:"log_file"`

	// Prompt is printed before each command.
	Prompt string `mapstructure:"prompt" yaml:"prompt" toml:"prompt"`

	// WatchFiles warns when an open file changes on disk.
	WatchFiles bool `mapstructure:"watch_files" yaml:"watch_files" toml:"watch_files"`

	Activity ActivityConfig `mapstructure:"activity" yaml:"activity" toml:"activity"`
}

// ActivityConfig controls the per-file activity logs.
type ActivityConfig struct {
	// EnabledByDefault turns logging on for every file opened.
	EnabledByDefault bool `mapstructure:"enabled_by_default" yaml:"enabled_by_default" toml:"enabled_by_default"`

	// Marker is the first line that turns logging on when a file is loaded.
	Marker string `mapstructure:"marker" yaml:"marker" toml:"marker"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		WorkspaceFile: ".editor_workspace",
		LogLevel:      "info",
		LogFile:       "",
		Prompt:        "> ",
		WatchFiles:    false,
		Activity: ActivityConfig{
			EnabledByDefault: false,
			Marker:           "# log",
		},
	}
}

// SetDefaults registers the defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("workspace_file", d.WorkspaceFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("prompt", d.Prompt)
	v.SetDefault("watch_files", d.WatchFiles)
	v.SetDefault("activity.enabled_by_default", d.Activity.EnabledByDefault)
	v.SetDefault("activity.marker", d.Activity.Marker)
}

// Load reads the configuration into v and decodes it. When path is empty
// the default locations are searched. Flags bound to v before the call
// take precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		v.SetConfigFile(path)
	} else if _, err := os.Stat(LocalConfigFile); err == nil {
		v.SetConfigFile(LocalConfigFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "linedit"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Key: "log_level", Value: c.LogLevel, Message: `must be "debug", "info", "warn" or "error"`}
	}
	if strings.TrimSpace(c.WorkspaceFile) == "" {
		return &ValidationError{Key: "workspace_file", Value: c.WorkspaceFile, Message: "must not be empty"}
	}
	if strings.ContainsAny(c.Activity.Marker, "\r\n") {
		return &ValidationError{Key: "activity.marker", Value: c.Activity.Marker, Message: "must be a single line"}
	}
	return nil
}

const defaultHeader = "# linedit configuration\n# Every key can be overridden with LINEDIT_<KEY>, e.g. LINEDIT_LOG_LEVEL=debug.\n\n"

// WriteDefault writes the default configuration to path, creating parent
// directories. The extension selects the format, see Encode. An
// existing file is left alone and ErrFileExists is returned.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrFileExists, path)
	}

	data, err := Encode(Defaults(), filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Encode renders cfg in the format named by ext (".toml", ".yaml" or
// ".yml"). An empty extension means YAML.
func Encode(cfg Config, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.Marshal(cfg)
	case "", ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrValidationFailed, ext)
	}
}
