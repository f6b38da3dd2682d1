package navigation

import (
	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/service"
)

// LibrarySource serves navigation entries from the library and the player.
type LibrarySource struct {
	library  *service.LibraryService
	player   *service.PlaybackService
	settings func() []string
}

// NewLibrarySource creates a source. settings produces the lines shown on the
// settings screen; it may be nil.
func NewLibrarySource(library *service.LibraryService, player *service.PlaybackService, settings func() []string) *LibrarySource {
	return &LibrarySource{library: library, player: player, settings: settings}
}

// PlaylistRoot returns the directory the playlists menu opens on.
func (s *LibrarySource) PlaylistRoot() string {
	return s.library.PlaylistDir()
}

// Browse lists one directory level.
func (s *LibrarySource) Browse(dir string) []domain.MediaItem {
	return s.library.Browse(dir)
}

// DirectoryTracks returns every track under dir, recursively.
func (s *LibrarySource) DirectoryTracks(dir string) []string {
	music, _ := s.library.Formats()
	return service.Scan(dir, music, nil).Tracks
}

// PlaylistTracks expands a playlist file.
func (s *LibrarySource) PlaylistTracks(path string) []string {
	return s.library.PlaylistTracks(path)
}

// Tracks returns every scanned track.
func (s *LibrarySource) Tracks() []string {
	return s.library.Tracks()
}

// IndexValues returns the sorted values of the index for key.
func (s *LibrarySource) IndexValues(key domain.TagKey) []string {
	idx := s.library.Index(key)
	if idx == nil {
		return nil
	}
	return idx.Values()
}

// IndexTracks returns the tracks filed under value.
func (s *LibrarySource) IndexTracks(key domain.TagKey, value string) []string {
	idx := s.library.Index(key)
	if idx == nil {
		return nil
	}
	return idx.Tracks(value)
}

// Upcoming returns the player's queue.
func (s *LibrarySource) Upcoming() []string {
	return s.player.Upcoming()
}

// Settings returns the lines for the settings screen.
func (s *LibrarySource) Settings() []string {
	if s.settings == nil {
		return nil
	}
	return s.settings()
}

var _ Source = (*LibrarySource)(nil)
