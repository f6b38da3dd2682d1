// Package config loads termtune settings from TOML files and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.termtunerc, $XDG_CONFIG_HOME/termtune/config.toml
// It returns the path it read, or "" when no file was found.
func Load() (*Config, string, error) {
	path := findConfigFile()
	if path == "" {
		cfg := Default()
		finish(cfg)
		return cfg, "", nil
	}

	cfg, err := LoadFrom(path)
	return cfg, path, err
}

// LoadFrom reads configuration from a specific file path. Keys missing from
// the file keep their default value. Unknown keys are an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parse %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	finish(cfg)
	return cfg, nil
}

// finish applies defaults, environment overrides and home expansion.
func finish(cfg *Config) {
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	cfg.Library.MusicDir = ExpandHome(cfg.Library.MusicDir)
	cfg.Library.PlaylistDir = ExpandHome(cfg.Library.PlaylistDir)
	cfg.Log.File = ExpandHome(cfg.Log.File)
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".termtunerc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "termtune", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Library
	if v := os.Getenv("TERMTUNE_MUSIC_DIR"); v != "" {
		cfg.Library.MusicDir = v
	}
	if v := os.Getenv("TERMTUNE_PLAYLIST_DIR"); v != "" {
		cfg.Library.PlaylistDir = v
	}

	// Playback
	if v := os.Getenv("TERMTUNE_SKIP_BACK_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Playback.SkipBackThreshold = f
		}
	}

	// TUI
	if v := os.Getenv("TERMTUNE_REFRESH_INTERVAL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.TUI.RefreshInterval = f
		}
	}

	// Log
	if v := os.Getenv("TERMTUNE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TERMTUNE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Encode writes cfg as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}
