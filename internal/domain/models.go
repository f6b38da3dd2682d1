// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the termtune music player.
package domain

import (
	"path/filepath"
	"time"
)

// TagKey names a metadata field read from an audio file header.
type TagKey string

// Tag keys understood by the tag reader and the metadata index.
const (
	TagTitle  TagKey = "title"
	TagArtist TagKey = "artist"
	TagAlbum  TagKey = "album"
	TagGenre  TagKey = "genre"
	TagYear   TagKey = "year"
)

// IndexKeys are the tag keys the library builds an index for, in menu order.
var IndexKeys = []TagKey{TagAlbum, TagArtist, TagGenre, TagYear}

// Tags maps a tag key to its values. An absent key means the field is unknown.
type Tags map[TagKey][]string

// First returns the first value for key, or "" when the field is unknown.
func (t Tags) First(key TagKey) string {
	values := t[key]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Has reports whether at least one value exists for key.
func (t Tags) Has(key TagKey) bool {
	return len(t[key]) > 0
}

// SelectionKind distinguishes a single track from an ordered list of tracks.
type SelectionKind int

const (
	// SelectionNone is the zero value: nothing selected.
	SelectionNone SelectionKind = iota

	// SelectionSingle holds exactly one path.
	SelectionSingle

	// SelectionMany holds an ordered list of paths.
	SelectionMany
)

// Selection is what the UI hands to the player: one path or an ordered list of paths.
// The zero value is the empty selection.
type Selection struct {
	kind  SelectionKind
	paths []string
}

// Single selects one path. An empty path yields the empty selection.
func Single(path string) Selection {
	if path == "" {
		return Selection{}
	}
	return Selection{kind: SelectionSingle, paths: []string{path}}
}

// Many selects an ordered list of paths. The slice is copied.
func Many(paths []string) Selection {
	if len(paths) == 0 {
		return Selection{}
	}
	cp := make([]string, len(paths))
	copy(cp, paths)
	return Selection{kind: SelectionMany, paths: cp}
}

// Kind returns the selection kind.
func (s Selection) Kind() SelectionKind {
	return s.kind
}

// IsEmpty reports whether the selection holds no paths.
func (s Selection) IsEmpty() bool {
	return len(s.paths) == 0
}

// Paths returns a copy of the selected paths in order.
func (s Selection) Paths() []string {
	cp := make([]string, len(s.paths))
	copy(cp, s.paths)
	return cp
}

// Path returns the path of a single selection, or "" for any other kind.
func (s Selection) Path() string {
	if s.kind != SelectionSingle {
		return ""
	}
	return s.paths[0]
}

// ItemKind classifies an entry found while browsing the disk.
type ItemKind int

const (
	ItemDirectory ItemKind = iota
	ItemTrack
	ItemPlaylist
)

// String returns a human-readable representation of the item kind.
func (k ItemKind) String() string {
	switch k {
	case ItemDirectory:
		return "directory"
	case ItemTrack:
		return "track"
	case ItemPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// MediaItem is a browsable entry: a directory, a track or a playlist file.
type MediaItem struct {
	Kind ItemKind
	Path string
}

// Name returns the base name of the item, extension included.
func (m MediaItem) Name() string {
	return filepath.Base(m.Path)
}

// ScanResult is the ordered outcome of walking a directory tree.
type ScanResult struct {
	// Tracks are playable files in walk order
	Tracks []string

	// Playlists are playlist files in walk order
	Playlists []string
}

// TrackHandle represents a handle to an audio track in the audio engine.
// This is an opaque identifier used by the audio engine to reference loaded tracks.
type TrackHandle int64

const (
	// InvalidTrackHandle represents an invalid or uninitialized track handle
	InvalidTrackHandle TrackHandle = 0
)

// PlaybackStatus is the status an audio engine reports for a loaded track.
type PlaybackStatus int

const (
	// StatusStopped indicates the track is loaded but not started
	StatusStopped PlaybackStatus = iota

	// StatusPlaying indicates playback is active
	StatusPlaying

	// StatusPaused indicates playback is paused
	StatusPaused

	// StatusEnded indicates the track played to its end
	StatusEnded
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PlayerState is the player-level state shown to the user.
type PlayerState int

const (
	StateNoMedia PlayerState = iota
	StatePlaying
	StatePaused
	StateEnded
)

// Label returns the user-facing status line for the state.
func (s PlayerState) Label() string {
	switch s {
	case StatePlaying:
		return "now playing:"
	case StatePaused:
		return "paused."
	case StateEnded:
		return "playback ended."
	default:
		return "nothing playing."
	}
}

// String returns a short name for logging.
func (s PlayerState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "no_media"
	}
}

// StateFromStatus maps an engine status onto the player state machine.
func StateFromStatus(status PlaybackStatus) PlayerState {
	switch status {
	case StatusPlaying:
		return StatePlaying
	case StatusPaused:
		return StatePaused
	case StatusEnded:
		return StateEnded
	default:
		return StateNoMedia
	}
}

// DisplayMetadata is what the UI polls each tick for the now-playing area.
type DisplayMetadata struct {
	Path      string
	IsPlaying bool
	Title     string
	Artist    string
	Album     string
	Current   time.Duration
	Total     time.Duration
}

// Percent returns playback progress in the range 0-100.
func (m DisplayMetadata) Percent() int {
	if m.Total <= 0 {
		return 0
	}
	p := int(m.Current * 100 / m.Total)
	if p > 100 {
		return 100
	}
	return p
}
