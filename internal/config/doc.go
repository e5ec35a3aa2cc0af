// Package config loads linedit settings.
//
// Settings come from, in increasing priority: built-in defaults, a YAML
// config file, and LINEDIT_* environment variables. Nested keys map to
// environment names by replacing dots with underscores, so
// activity.marker is LINEDIT_ACTIVITY_MARKER.
//
// Without an explicit path the first of ./.linedit.yaml and
// ~/.config/linedit/config.yaml that exists is used. A missing file is
// not an error unless it was named explicitly.
package config
