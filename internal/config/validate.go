package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Library.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("library: %w", err))
	}
	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks LibraryConfig for errors.
func (c *LibraryConfig) Validate() error {
	var errs []error

	if c.MusicDir == "" {
		errs = append(errs, errors.New("music_dir must be set"))
	}
	for _, ext := range c.MusicFormats {
		if !validExtension(ext) {
			errs = append(errs, fmt.Errorf("invalid music format: %q (must start with a dot)", ext))
		}
	}
	for _, ext := range c.PlaylistFormats {
		if !validExtension(ext) {
			errs = append(errs, fmt.Errorf("invalid playlist format: %q (must start with a dot)", ext))
		}
	}

	return errors.Join(errs...)
}

func validExtension(ext string) bool {
	return len(ext) > 1 && strings.HasPrefix(ext, ".")
}

// Validate checks PlaybackConfig for errors.
func (c *PlaybackConfig) Validate() error {
	if c.SkipBackThreshold < 0 {
		return errors.New("skip_back_threshold must be non-negative")
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	if c.RefreshInterval <= 0 {
		return errors.New("refresh_interval must be positive")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	var errs []error

	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level))
	}

	switch c.Format {
	case "", "text", "json":
		// valid
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %s (must be text or json)", c.Format))
	}

	return errors.Join(errs...)
}
