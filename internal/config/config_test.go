package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", `
log_level: debug
prompt: "linedit> "
watch_files: true
activity:
  marker: "#! log"
`)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "linedit> ", cfg.Prompt)
	assert.True(t, cfg.WatchFiles)
	assert.Equal(t, "#! log", cfg.Activity.Marker)
	assert.False(t, cfg.Activity.EnabledByDefault, "unset keys keep defaults")
	assert.Equal(t, ".editor_workspace", cfg.WorkspaceFile)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	writeFile(t, dir, LocalConfigFile, "workspace_file: state.json\n")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "state.json", cfg.WorkspaceFile)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", "log_level: debug\n")
	t.Setenv("LINEDIT_LOG_LEVEL", "error")
	t.Setenv("LINEDIT_ACTIVITY_ENABLED_BY_DEFAULT", "true")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.Activity.EnabledByDefault)
}

func TestLoadFlagOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", "workspace_file: from-file\n")
	v := viper.New()
	v.Set("workspace_file", "from-flag")

	cfg, err := Load(v, path)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.WorkspaceFile)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", "log_level: [unclosed\n")

	_, err := Load(viper.New(), path)
	assert.Error(t, err)
}

func TestLoadInvalidValue(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cfg.yaml", "log_level: loud\n")

	_, err := Load(viper.New(), path)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Contains(t, err.Error(), "log_level")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
	}{
		{"upper case level", func(c *Config) { c.LogLevel = "WARN" }, ""},
		{"warning alias", func(c *Config) { c.LogLevel = "warning" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"empty workspace file", func(c *Config) { c.WorkspaceFile = "  " }, "workspace_file"},
		{"multi-line marker", func(c *Config) { c.Activity.Marker = "a\nb" }, "activity.marker"},
		{"empty marker", func(c *Config) { c.Activity.Marker = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantKey, ve.Key)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefault(path))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	assert.ErrorIs(t, WriteDefault(path), ErrFileExists)
}

func TestWriteDefaultTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[activity]")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestEncodeUnsupported(t *testing.T) {
	_, err := Encode(Defaults(), ".ini")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
