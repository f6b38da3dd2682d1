package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/logger"
	"github.com/tejashwikalptaru/termtune/internal/navigation"
	"github.com/tejashwikalptaru/termtune/internal/testutil"
)

// writeTagged writes a file whose only content is a 128-byte ID3v1 block.
func writeTagged(t *testing.T, path, title, artist string) {
	t.Helper()
	block := make([]byte, 128)
	copy(block[0:3], "TAG")
	copy(block[3:33], title)
	copy(block[33:63], artist)
	require.NoError(t, os.WriteFile(path, append(make([]byte, 256), block...), 0o644))
}

func testConfig(t *testing.T) (Config, string) {
	t.Helper()

	root := t.TempDir()
	config := DefaultConfig()
	config.UseMockAudio = true
	config.Settings.Library.MusicDir = root
	config.Settings.Library.PlaylistDir = filepath.Join(root, "playlists")
	return config, root
}

func TestNewApplication(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	config, _ := testConfig(t)

	app, err := NewApplication(config)
	require.NoError(t, err)
	require.NotNil(t, app)

	// Verify all services were created
	assert.NotNil(t, app.Library())
	assert.NotNil(t, app.Player())
	assert.NotNil(t, app.Navigator())
	assert.NotNil(t, app.EventBus())
	assert.NotNil(t, app.Logger())
	assert.Equal(t, navigation.ScreenHome, app.Navigator().Screen())

	// Cleanup
	err = app.Shutdown()
	assert.NoError(t, err)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	require.NotNil(t, config.Settings)
	assert.False(t, config.UseMockAudio)
	assert.False(t, config.Verbose)
	assert.Equal(t, 5*time.Second, config.Settings.Playback.SkipBack())
}

func TestNewApplication_NilSettingsUseDefaults(t *testing.T) {
	app, err := NewApplication(Config{UseMockAudio: true})
	require.NoError(t, err)
	defer app.Shutdown()

	assert.Equal(t, "defaults", app.ConfigSource())
}

func TestNewApplication_InvalidSettings(t *testing.T) {
	config, _ := testConfig(t)
	config.Settings.Playback.SkipBackThreshold = -1

	app, err := NewApplication(config)

	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestApplicationLifecycle(t *testing.T) {
	config, _ := testConfig(t)

	// Create
	app, err := NewApplication(config)
	require.NoError(t, err)

	// Run would normally block, but we're not calling it in test

	// Shutdown
	err = app.Shutdown()
	assert.NoError(t, err)

	// Shutdown again should not panic
	err = app.Shutdown()
	assert.NoError(t, err)
}

func TestApplicationScanAndPlay(t *testing.T) {
	config, root := testConfig(t)
	paths := testutil.TouchTracks(t, root, "b/two.mp3", "a/one.mp3", "notes.txt")
	testutil.WriteFiles(t, config.Settings.Library.PlaylistDir, map[string]string{
		"mix.m3u": "../a/one.mp3\n../b/two.mp3\n",
	})

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	require.NoError(t, app.Scan(context.Background()))

	assert.Equal(t, []string{paths[1], paths[0]}, app.Library().Tracks())
	assert.Len(t, app.Library().Playlists(), 1)

	// Playing the playlist expands it through the library.
	playlist := filepath.Join(config.Settings.Library.PlaylistDir, "mix.m3u")
	require.True(t, app.Player().Play(domain.Single(playlist)))
	assert.Equal(t, paths[1], app.Player().CurrentPath())
	assert.Equal(t, []string{paths[0]}, app.Player().Upcoming())
	assert.Equal(t, domain.StatePlaying, app.Player().State())
}

func TestApplicationConstructionDoesNotScan(t *testing.T) {
	config, root := testConfig(t)
	testutil.TouchTracks(t, root, "one.mp3")

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	var scans int
	app.EventBus().Subscribe(domain.EventLibraryScanned, func(domain.Event) { scans++ })
	assert.Empty(t, app.Library().Tracks())

	require.NoError(t, app.Scan(context.Background()))

	assert.Equal(t, 1, scans)
	assert.Len(t, app.Library().Tracks(), 1)
}

func TestApplicationRescanRereadsTags(t *testing.T) {
	config, root := testConfig(t)
	song := filepath.Join(root, "song.mp3")
	writeTagged(t, song, "Song", "Old Artist")

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	require.NoError(t, app.Scan(context.Background()))
	require.Equal(t, []string{"Old Artist"}, app.Library().Index(domain.TagArtist).Values())

	writeTagged(t, song, "Song", "New Artist")
	require.NoError(t, app.Scan(context.Background()))

	assert.Equal(t, []string{"New Artist"}, app.Library().Index(domain.TagArtist).Values())
	require.True(t, app.Player().Play(domain.Single(song)))
	meta, ok := app.Player().DisplayMetadata()
	require.True(t, ok)
	assert.Equal(t, "New Artist", meta.Artist)
}

func TestApplicationScanCancelled(t *testing.T) {
	config, root := testConfig(t)
	testutil.TouchTracks(t, root, "one.mp3")

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, app.Scan(ctx), context.Canceled)
}

func TestSettingsLines(t *testing.T) {
	config, root := testConfig(t)
	config.Source = "/etc/termtune.toml"

	app, err := NewApplication(config)
	require.NoError(t, err)
	defer app.Shutdown()

	lines := app.SettingsLines()

	assert.Contains(t, lines, "config: /etc/termtune.toml")
	assert.Contains(t, lines, "music dir: "+root)
	assert.Contains(t, lines, "music formats: .mp3 .flac .wav .ogg")
	assert.Contains(t, lines, "skip back threshold: 5s")

	// The settings screen shows the same lines followed by the rescan command.
	nav := app.Navigator()
	for nav.Cursor() < len(navigation.HomeItems)-2 {
		nav.Navigate(navigation.Down)
	}
	nav.Navigate(navigation.Select)
	require.Equal(t, navigation.ScreenSettings, nav.Screen())
	assert.Len(t, nav.Items(), len(lines)+1)
}

func TestApplicationLogFile(t *testing.T) {
	config, _ := testConfig(t)
	logPath := filepath.Join(t.TempDir(), "termtune.log")
	config.Settings.Log.File = logPath

	app, err := NewApplication(config)
	require.NoError(t, err)
	require.NoError(t, app.Shutdown())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "initializing application")
	assert.Contains(t, string(data), "application shutdown complete")
}

func TestApplicationLogOutput(t *testing.T) {
	config, _ := testConfig(t)
	_, buf := logger.NewBufferLogger()
	config.LogOutput = buf

	app, err := NewApplication(config)
	require.NoError(t, err)
	require.NoError(t, app.Shutdown())

	assert.Contains(t, buf.String(), "initializing application")
}

func TestApplicationLogAttributesNotRepeated(t *testing.T) {
	config, root := testConfig(t)
	writeTagged(t, filepath.Join(root, "song.mp3"), "Song", "Band")
	_, buf := logger.NewBufferLogger()
	config.LogOutput = buf
	config.Verbose = true

	app, err := NewApplication(config)
	require.NoError(t, err)
	app.EventBus().Subscribe(domain.EventLibraryScanned, func(domain.Event) {})
	require.NoError(t, app.Scan(context.Background()))
	require.NoError(t, app.Shutdown())

	out := buf.String()
	require.Contains(t, out, "component=eventbus")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, strings.Count(line, "component="), 1, line)
	}
}

func TestVersionString(t *testing.T) {
	info := VersionInfo{Version: "1.2.0", GitCommit: "abc123", BuildTime: "today"}
	assert.Equal(t, "termtune 1.2.0 (commit: abc123, built: today)", info.FullString())

	info.GitTag = "v1.2.0"
	assert.Equal(t, "termtune v1.2.0 (commit: abc123, built: today)", info.FullString())
}
