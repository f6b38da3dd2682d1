// Package service provides business logic for termtune.
package service

import (
	"bufio"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// LibraryOptions configures where the library looks and what it recognises.
type LibraryOptions struct {
	MusicDir        string
	PlaylistDir     string
	MusicFormats    []string // extensions with leading dot
	PlaylistFormats []string // extensions with leading dot
}

// LibraryService owns the scanned track list, the playlist list and the tag indexes.
// All operations are thread-safe via sync.RWMutex; Refresh may run off the UI goroutine.
type LibraryService struct {
	// Dependencies (injected)
	logger *slog.Logger
	reader ports.TagReader
	bus    ports.EventBus

	opts         LibraryOptions
	musicExts    map[string]struct{}
	playlistExts map[string]struct{}

	// State
	tracks    []string
	playlists []string
	indexes   map[domain.TagKey]*MetadataIndex
	scanning  bool

	mu sync.RWMutex
}

// NewLibraryService creates an empty library. Call Refresh to scan it.
func NewLibraryService(
	logger *slog.Logger,
	reader ports.TagReader,
	bus ports.EventBus,
	opts LibraryOptions,
) *LibraryService {
	return &LibraryService{
		logger:       logger,
		reader:       reader,
		bus:          bus,
		opts:         opts,
		musicExts:    extSet(opts.MusicFormats),
		playlistExts: extSet(opts.PlaylistFormats),
		indexes:      emptyIndexes(),
	}
}

func emptyIndexes() map[domain.TagKey]*MetadataIndex {
	return lo.SliceToMap(domain.IndexKeys, func(key domain.TagKey) (domain.TagKey, *MetadataIndex) {
		return key, BuildIndex(nil, key, nil)
	})
}

func extSet(exts []string) map[string]struct{} {
	return lo.SliceToMap(exts, func(ext string) (string, struct{}) {
		return strings.ToLower(ext), struct{}{}
	})
}

// Refresh rescans both roots and rebuilds every index.
// It only fails when ctx is cancelled or another refresh is running.
func (s *LibraryService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return domain.NewServiceError("LibraryService", "Refresh", "scan already in progress", nil)
	}
	s.scanning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	start := time.Now()

	music, err := ScanContext(ctx, s.opts.MusicDir, s.opts.MusicFormats, s.opts.PlaylistFormats)
	if err != nil {
		return err
	}
	lists, err := ScanContext(ctx, s.opts.PlaylistDir, nil, s.opts.PlaylistFormats)
	if err != nil {
		return err
	}

	indexes := make(map[domain.TagKey]*MetadataIndex, len(domain.IndexKeys))
	sizes := make(map[domain.TagKey]int, len(domain.IndexKeys))
	for _, key := range domain.IndexKeys {
		if err := ctx.Err(); err != nil {
			return err
		}
		idx := BuildIndex(music.Tracks, key, s.reader)
		indexes[key] = idx
		sizes[key] = idx.Len()
	}

	s.mu.Lock()
	s.tracks = music.Tracks
	s.playlists = lists.Playlists
	s.indexes = indexes
	s.mu.Unlock()

	elapsed := time.Since(start)
	s.logger.Info("library scanned",
		slog.String("music_dir", s.opts.MusicDir),
		slog.Int("tracks", len(music.Tracks)),
		slog.Int("playlists", len(lists.Playlists)),
		slog.Int("artists", sizes[domain.TagArtist]),
		slog.Int("albums", sizes[domain.TagAlbum]),
		slog.Duration("elapsed", elapsed))

	s.bus.Publish(domain.NewLibraryScannedEvent(
		s.opts.MusicDir, len(music.Tracks), len(lists.Playlists), sizes, elapsed))

	return nil
}

// Scan walks root recursively in lexical order and classifies files by extension.
// A missing or unreadable root yields an empty result; unreadable subtrees are skipped.
func Scan(root string, musicExts, playlistExts []string) domain.ScanResult {
	res, _ := ScanContext(context.Background(), root, musicExts, playlistExts)
	return res
}

// ScanContext is Scan with cancellation. The only error it returns is ctx.Err().
func ScanContext(ctx context.Context, root string, musicExts, playlistExts []string) (domain.ScanResult, error) {
	var res domain.ScanResult
	if root == "" {
		return res, nil
	}

	music := extSet(musicExts)
	lists := extSet(playlistExts)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Skip files and folders we can't access
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := music[ext]; ok {
			res.Tracks = append(res.Tracks, path)
		} else if _, ok := lists[ext]; ok {
			res.Playlists = append(res.Playlists, path)
		}
		return nil
	})
	if err != nil {
		return domain.ScanResult{}, err
	}
	return res, nil
}

// Browse lists one directory level. Directories are always listed; files are
// listed when their extension is a known track or playlist format.
// It returns nil when dir is not a readable directory.
func (s *LibraryService) Browse(dir string) []domain.MediaItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	items := make([]domain.MediaItem, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir() || isDirLink(path, entry):
			items = append(items, domain.MediaItem{Kind: domain.ItemDirectory, Path: path})
		case filepath.Ext(path) == "":
			continue
		case s.IsTrack(path):
			items = append(items, domain.MediaItem{Kind: domain.ItemTrack, Path: path})
		case s.IsPlaylist(path):
			items = append(items, domain.MediaItem{Kind: domain.ItemPlaylist, Path: path})
		}
	}
	return items
}

func isDirLink(path string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// PlaylistTracks reads a playlist file: one path per line with trailing
// whitespace stripped. Blank lines and '#' directive lines are skipped, and
// relative entries are resolved against the playlist's directory.
// It returns nil when the file cannot be read.
func (s *LibraryService) PlaylistTracks(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Debug("cannot open playlist", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	defer f.Close()

	base := filepath.Dir(path)
	var tracks []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimPrefix(strings.TrimRight(scanner.Text(), " \t\r\v\f"), "\ufeff")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		tracks = append(tracks, line)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Warn("error reading playlist", slog.String("path", path), slog.Any("error", err))
		return nil
	}
	return tracks
}

// Resolve expands a single playlist path into its tracks.
// Single tracks and multi-path selections are returned unchanged.
func (s *LibraryService) Resolve(sel domain.Selection) domain.Selection {
	if sel.Kind() == domain.SelectionSingle && s.IsPlaylist(sel.Path()) {
		return domain.Many(s.PlaylistTracks(sel.Path()))
	}
	return sel
}

// IsTrack reports whether path has a known track extension.
func (s *LibraryService) IsTrack(path string) bool {
	_, ok := s.musicExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsPlaylist reports whether path has a known playlist extension.
func (s *LibraryService) IsPlaylist(path string) bool {
	_, ok := s.playlistExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Tracks returns every scanned track in scan order.
func (s *LibraryService) Tracks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.tracks...)
}

// Playlists returns every playlist found under the playlist root.
func (s *LibraryService) Playlists() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.playlists...)
}

// Index returns the index for key, or nil if key is not indexed.
func (s *LibraryService) Index(key domain.TagKey) *MetadataIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexes[key]
}

// MusicDir returns the music root.
func (s *LibraryService) MusicDir() string { return s.opts.MusicDir }

// PlaylistDir returns the playlist root.
func (s *LibraryService) PlaylistDir() string { return s.opts.PlaylistDir }

// Formats returns the configured track and playlist extensions.
func (s *LibraryService) Formats() (music, playlists []string) {
	return append([]string(nil), s.opts.MusicFormats...), append([]string(nil), s.opts.PlaylistFormats...)
}
