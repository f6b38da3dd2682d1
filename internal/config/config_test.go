package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and XDG_CONFIG_HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	for _, k := range []string{
		"TERMTUNE_MUSIC_DIR",
		"TERMTUNE_PLAYLIST_DIR",
		"TERMTUNE_SKIP_BACK_THRESHOLD",
		"TERMTUNE_REFRESH_INTERVAL",
		"TERMTUNE_LOG_LEVEL",
		"TERMTUNE_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	home := isolate(t)

	cfg, path, err := Load()

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, filepath.Join(home, "Music"), cfg.Library.MusicDir)
	assert.Equal(t, filepath.Join(home, "Music", "playlists"), cfg.Library.PlaylistDir)
	assert.Equal(t, 5*time.Second, cfg.Playback.SkipBack())
	assert.Equal(t, 100*time.Millisecond, cfg.TUI.Refresh())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_SearchOrder(t *testing.T) {
	home := isolate(t)
	xdg := filepath.Join(home, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeConfig(t, filepath.Join(xdg, "termtune", "config.toml"), "[library]\nmusic_dir = \"/xdg\"\n")

	cfg, path, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "termtune", "config.toml"), path)
	assert.Equal(t, "/xdg", cfg.Library.MusicDir)

	writeConfig(t, filepath.Join(home, ".termtunerc"), "[library]\nmusic_dir = \"/rc\"\n")

	cfg, path, err = Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".termtunerc"), path)
	assert.Equal(t, "/rc", cfg.Library.MusicDir)
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, `
[library]
music_dir = "/srv/music"
music_formats = [".opus"]

[playback]
skip_back_threshold = 0.0
`)

	cfg, err := LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "/srv/music", cfg.Library.MusicDir)
	assert.Equal(t, []string{".opus"}, cfg.Library.MusicFormats)
	assert.Equal(t, []string{".m3u", ".m3u8"}, cfg.Library.PlaylistFormats)
	assert.Zero(t, cfg.Playback.SkipBack(), "explicit zero threshold is kept")
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_UnknownKey(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[playback]\nvolume = 3\n")

	_, err := LoadFrom(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "playback.volume")
}

func TestLoadFrom_Malformed(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[library\n")

	_, err := LoadFrom(path)
	assert.Error(t, err)

	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TERMTUNE_MUSIC_DIR", "/env/music")
	t.Setenv("TERMTUNE_PLAYLIST_DIR", "/env/lists")
	t.Setenv("TERMTUNE_SKIP_BACK_THRESHOLD", "2.5")
	t.Setenv("TERMTUNE_REFRESH_INTERVAL", "not-a-number")
	t.Setenv("TERMTUNE_LOG_LEVEL", "debug")
	t.Setenv("TERMTUNE_LOG_FILE", "~/termtune.log")

	cfg, _, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/env/music", cfg.Library.MusicDir)
	assert.Equal(t, "/env/lists", cfg.Library.PlaylistDir)
	assert.Equal(t, 2500*time.Millisecond, cfg.Playback.SkipBack())
	assert.Equal(t, 100*time.Millisecond, cfg.TUI.Refresh(), "bad value ignored")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "termtune.log"), cfg.Log.File)
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)

	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, filepath.Join(home, "a", "b"), ExpandHome("~/a/b"))
	assert.Equal(t, "~user/a", ExpandHome("~user/a"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "", ExpandHome(""))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Library.MusicFormats = []string{"mp3", ".flac"}
	cfg.Library.PlaylistFormats = []string{"."}
	cfg.Playback.SkipBackThreshold = -1
	cfg.TUI.RefreshInterval = 0
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `library: invalid music format: "mp3"`)
	assert.Contains(t, msg, `invalid playlist format: "."`)
	assert.Contains(t, msg, "playback: skip_back_threshold must be non-negative")
	assert.Contains(t, msg, "tui: refresh_interval must be positive")
	assert.Contains(t, msg, "invalid log level: loud")
	assert.Contains(t, msg, "invalid log format: xml")
	assert.NotContains(t, msg, ".flac")
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, Default().Library, cfg.Library)
	assert.Equal(t, 0.1, cfg.TUI.RefreshInterval)
	assert.Zero(t, cfg.Playback.SkipBackThreshold)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestEncodeRoundTrip(t *testing.T) {
	isolate(t)
	out, err := Default().Encode()
	require.NoError(t, err)
	assert.Contains(t, out, "skip_back_threshold = 5.0")

	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, out)
	_, err = LoadFrom(path)
	assert.NoError(t, err)
}
