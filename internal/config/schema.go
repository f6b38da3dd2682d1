package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Library  LibraryConfig  `toml:"library"`
	Playback PlaybackConfig `toml:"playback"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// LibraryConfig holds the music and playlist locations.
type LibraryConfig struct {
	MusicDir        string   `toml:"music_dir"`
	PlaylistDir     string   `toml:"playlist_dir"`
	MusicFormats    []string `toml:"music_formats"`
	PlaylistFormats []string `toml:"playlist_formats"`
}

// PlaybackConfig holds playback settings.
type PlaybackConfig struct {
	// SkipBackThreshold is in seconds. Skip-back on a track no longer than
	// this restarts it instead of going to the previous track.
	SkipBackThreshold float64 `toml:"skip_back_threshold"`
}

// SkipBack returns the threshold as a duration.
func (c PlaybackConfig) SkipBack() time.Duration {
	return seconds(c.SkipBackThreshold)
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	// RefreshInterval is in seconds.
	RefreshInterval float64 `toml:"refresh_interval"`
}

// Refresh returns the refresh interval as a duration.
func (c TUIConfig) Refresh() time.Duration {
	return seconds(c.RefreshInterval)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
