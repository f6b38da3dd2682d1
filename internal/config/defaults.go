package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Library: LibraryConfig{
			MusicDir:        "~/Music",
			PlaylistDir:     "~/Music/playlists",
			MusicFormats:    []string{".mp3", ".flac", ".wav", ".ogg"},
			PlaylistFormats: []string{".m3u", ".m3u8"},
		},
		Playback: PlaybackConfig{
			SkipBackThreshold: 5.0,
		},
		TUI: TUIConfig{
			RefreshInterval: 0.1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
// A zero skip_back_threshold is a valid setting and is kept.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Library
	if c.Library.MusicDir == "" {
		c.Library.MusicDir = d.Library.MusicDir
	}
	if c.Library.PlaylistDir == "" {
		c.Library.PlaylistDir = d.Library.PlaylistDir
	}
	if len(c.Library.MusicFormats) == 0 {
		c.Library.MusicFormats = d.Library.MusicFormats
	}
	if len(c.Library.PlaylistFormats) == 0 {
		c.Library.PlaylistFormats = d.Library.PlaylistFormats
	}

	// TUI
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}
