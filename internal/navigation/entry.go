package navigation

import "github.com/tejashwikalptaru/termtune/internal/domain"

// Direction is one navigation input.
type Direction int

const (
	Up Direction = iota + 1
	Down
	Select
	Back
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Select:
		return "select"
	case Back:
		return "back"
	default:
		return "unknown"
	}
}

// Screen identifies what a menu frame shows.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenBrowse
	ScreenIndexKeys
	ScreenTrackList
	ScreenQueue
	ScreenOptions
	ScreenSettings
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenBrowse:
		return "browse"
	case ScreenIndexKeys:
		return "index"
	case ScreenTrackList:
		return "tracks"
	case ScreenQueue:
		return "queue"
	case ScreenOptions:
		return "options"
	case ScreenSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Home menu items, in display order.
const (
	MenuPlaylists = "playlists"
	MenuAlbums    = "albums"
	MenuArtists   = "artists"
	MenuGenres    = "genres"
	MenuYears     = "years"
	MenuTracks    = "tracks"
	MenuQueue     = "queue"
	MenuSettings  = "settings"
	MenuQuit      = "quit"
)

// HomeItems is the home menu.
var HomeItems = []string{
	MenuPlaylists,
	MenuAlbums,
	MenuArtists,
	MenuGenres,
	MenuYears,
	MenuTracks,
	MenuQueue,
	MenuSettings,
	MenuQuit,
}

// menuKeys maps the index menu items to the tag they browse.
var menuKeys = map[string]domain.TagKey{
	MenuAlbums:  domain.TagAlbum,
	MenuArtists: domain.TagArtist,
	MenuGenres:  domain.TagGenre,
	MenuYears:   domain.TagYear,
}

// Media options, in display order.
const (
	OptionPlay      = "play"
	OptionView      = "view"
	OptionQueueNext = "queue next"
	OptionQueueLast = "queue last"
)

// SettingRescan is the settings entry that rescans the library.
const SettingRescan = "rescan library"

// EntryKind classifies a menu entry.
type EntryKind int

const (
	EntryMenu EntryKind = iota
	EntryDirectory
	EntryTrack
	EntryPlaylist
	EntryBucket
	EntryOption
	EntryCommand
	EntryInfo
)

// IsMedia reports whether selecting the entry opens the media options.
func (k EntryKind) IsMedia() bool {
	switch k {
	case EntryDirectory, EntryTrack, EntryPlaylist, EntryBucket:
		return true
	default:
		return false
	}
}

// Entry is one line of a menu.
type Entry struct {
	Kind  EntryKind
	Label string

	// Path is set for directories, tracks and playlists.
	Path string

	// Key and Label identify a bucket; Tracks holds its contents.
	Key    domain.TagKey
	Tracks []string
}

func menuEntry(label string) Entry {
	return Entry{Kind: EntryMenu, Label: label}
}

func trackEntry(path string) Entry {
	return mediaEntry(domain.MediaItem{Kind: domain.ItemTrack, Path: path})
}

func mediaEntry(item domain.MediaItem) Entry {
	e := Entry{Label: item.Name(), Path: item.Path}
	switch item.Kind {
	case domain.ItemDirectory:
		e.Kind = EntryDirectory
	case domain.ItemPlaylist:
		e.Kind = EntryPlaylist
	default:
		e.Kind = EntryTrack
	}
	return e
}

// ActionKind says what the caller should do after a navigation step.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionPlay
	ActionQueueNext
	ActionQueueLast
	ActionRescan
	ActionQuit
)

// String returns the action name.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionPlay:
		return "play"
	case ActionQueueNext:
		return "queue next"
	case ActionQueueLast:
		return "queue last"
	case ActionRescan:
		return "rescan"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Action is the result of Navigate.
type Action struct {
	Kind      ActionKind
	Selection domain.Selection
}
