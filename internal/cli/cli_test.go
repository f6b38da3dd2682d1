package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/termtune/internal/testutil"
)

func init() {
	text.DisableColors()
}

// execute runs the root command with args in an isolated home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	for _, env := range []string{
		"TERMTUNE_MUSIC_DIR", "TERMTUNE_PLAYLIST_DIR", "TERMTUNE_SKIP_BACK_THRESHOLD",
		"TERMTUNE_REFRESH_INTERVAL", "TERMTUNE_LOG_LEVEL", "TERMTUNE_LOG_FILE",
	} {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}

	cfgFile, scanIndex, verbose, mockAudio = "", "", false, false
	cfg, cfgSource = nil, ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// writeConfig writes a config file pointing at a fresh music tree.
func writeConfig(t *testing.T) (path, music string) {
	t.Helper()

	music = t.TempDir()
	path = filepath.Join(t.TempDir(), "termtune.toml")
	body := "[library]\n" +
		"music_dir = \"" + filepath.ToSlash(music) + "\"\n" +
		"playlist_dir = \"" + filepath.ToSlash(filepath.Join(music, "lists")) + "\"\n" +
		"[log]\nlevel = \"error\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path, music
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "termtune dev")
	assert.NotContains(t, out, "go version")
}

func TestVersionCommand_Verbose(t *testing.T) {
	out, err := execute(t, "version", "-v")

	require.NoError(t, err)
	assert.Contains(t, out, "go version")
	assert.Contains(t, out, "platform")
}

func TestScanCommand(t *testing.T) {
	path, music := writeConfig(t)
	testutil.TouchTracks(t, music, "a/one.mp3", "b/two.flac", "cover.jpg")
	testutil.WriteFiles(t, filepath.Join(music, "lists"), map[string]string{"mix.m3u": "../a/one.mp3\n"})

	out, err := execute(t, "scan", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, music)
	assert.Contains(t, out, "2 tracks, 1 playlists")
	assert.Contains(t, out, "ENTRIES")
	for _, key := range []string{"album", "artist", "genre", "year"} {
		assert.Contains(t, out, key)
	}
}

func TestScanCommand_Index(t *testing.T) {
	path, music := writeConfig(t)
	testutil.TouchTracks(t, music, "one.mp3")

	out, err := execute(t, "scan", "-c", path, "--index", "Artist")

	require.NoError(t, err)
	assert.Contains(t, out, "ARTIST")
	assert.Contains(t, out, "TOTAL")
}

func TestScanCommand_UnknownIndex(t *testing.T) {
	path, _ := writeConfig(t)

	_, err := execute(t, "scan", "-c", path, "--index", "mood")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown index "mood"`)
	assert.Contains(t, err.Error(), "album, artist, genre, year")
}

func TestConfigShowCommand(t *testing.T) {
	path, music := writeConfig(t)

	out, err := execute(t, "config", "show", "-c", path)

	require.NoError(t, err)
	assert.Contains(t, out, "# source: "+path)
	assert.Contains(t, out, "[library]")
	assert.Contains(t, out, filepath.ToSlash(music))
	assert.Contains(t, out, "skip_back_threshold")
}

func TestConfigShowCommand_Defaults(t *testing.T) {
	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "# source: defaults")
	assert.Contains(t, out, "Music")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[library\n"), 0o644))

	_, err := execute(t, "scan", "-c", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.toml")
	require.NoError(t, os.WriteFile(path, []byte("[playback]\nskip_back_threshold = -2.0\n"), 0o644))

	_, err := execute(t, "config", "show", "-c", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
