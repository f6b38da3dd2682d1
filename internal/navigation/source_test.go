package navigation

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/termtune/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/termtune/internal/adapter/eventbus"
	tagmock "github.com/tejashwikalptaru/termtune/internal/adapter/tags/mock"
	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/logger"
	"github.com/tejashwikalptaru/termtune/internal/service"
	"github.com/tejashwikalptaru/termtune/internal/testutil"
)

func TestLibrarySource(t *testing.T) {
	root := t.TempDir()
	paths := testutil.TouchTracks(t, root, "a/one.mp3", "a/deep/two.mp3", "three.mp3")
	lists := filepath.Join(root, "lists")
	testutil.WriteFiles(t, lists, map[string]string{"mix.m3u": "../three.mp3\n"})

	reader := tagmock.NewReader()
	reader.Set(paths[0], domain.Tags{domain.TagAlbum: {"Blue"}})
	bus := eventbus.NewSyncEventBus(nil)
	t.Cleanup(func() { _ = bus.Close() })

	lib := service.NewLibraryService(logger.NewTestLogger(), reader, bus, service.LibraryOptions{
		MusicDir:        root,
		PlaylistDir:     lists,
		MusicFormats:    []string{".mp3"},
		PlaylistFormats: []string{".m3u"},
	})
	require.NoError(t, lib.Refresh(context.Background()))
	engine := mock.NewEngine()
	require.NoError(t, engine.Initialize())
	player := service.NewPlaybackService(logger.NewTestLogger(), engine, reader, bus, lib, service.PlaybackOptions{})
	player.EnqueueLast(domain.Single(paths[2]))

	src := NewLibrarySource(lib, player, func() []string { return []string{"ok"} })

	assert.Equal(t, lists, src.PlaylistRoot())
	assert.Equal(t, []string{
		filepath.Join(root, "a/deep/two.mp3"),
		filepath.Join(root, "a/one.mp3"),
	}, src.DirectoryTracks(filepath.Join(root, "a")))
	assert.Equal(t, []string{filepath.Join(root, "three.mp3")}, src.PlaylistTracks(filepath.Join(lists, "mix.m3u")))
	assert.Len(t, src.Tracks(), 3)
	assert.Equal(t, []string{"Blue"}, src.IndexValues(domain.TagAlbum))
	assert.Equal(t, []string{paths[0]}, src.IndexTracks(domain.TagAlbum, "Blue"))
	assert.Nil(t, src.IndexValues(domain.TagTitle))
	assert.Equal(t, []string{paths[2]}, src.Upcoming())
	assert.Equal(t, []string{"ok"}, src.Settings())
	assert.Nil(t, NewLibrarySource(lib, player, nil).Settings())
}
