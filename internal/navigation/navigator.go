// Package navigation holds the menu stack the terminal UI drives.
//
// The Navigator knows nothing about rendering or playback. It turns
// Up/Down/Select/Back into cursor moves, pushed and popped screens, and
// Actions the caller carries out against the player.
package navigation

import (
	"strings"

	"github.com/samber/lo"

	"github.com/tejashwikalptaru/termtune/internal/domain"
)

// Source supplies the entries of every screen.
type Source interface {
	PlaylistRoot() string
	Browse(dir string) []domain.MediaItem
	DirectoryTracks(dir string) []string
	PlaylistTracks(path string) []string
	Tracks() []string
	IndexValues(key domain.TagKey) []string
	IndexTracks(key domain.TagKey, value string) []string
	Upcoming() []string
	Settings() []string
}

// frame is one level of the menu stack.
type frame struct {
	screen Screen
	title  string
	cursor int
	items  []Entry

	// what the frame was opened for
	dir    string
	key    domain.TagKey
	target Entry
}

// Navigator is a stack of menu frames with Home at the bottom.
type Navigator struct {
	src   Source
	stack []*frame
}

// New creates a navigator showing the home menu.
func New(src Source) *Navigator {
	n := &Navigator{src: src}
	n.push(&frame{screen: ScreenHome, title: "home"})
	return n
}

// Screen returns the screen on top of the stack.
func (n *Navigator) Screen() Screen {
	return n.top().screen
}

// Title returns the heading of the current screen.
func (n *Navigator) Title() string {
	return n.top().title
}

// Items returns the entries of the current screen.
func (n *Navigator) Items() []Entry {
	return n.top().items
}

// Cursor returns the highlighted index. It is 0 for an empty screen.
func (n *Navigator) Cursor() int {
	return n.top().cursor
}

// Depth returns the number of frames on the stack, Home included.
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// Current returns the highlighted entry.
func (n *Navigator) Current() (Entry, bool) {
	f := n.top()
	if len(f.items) == 0 {
		return Entry{}, false
	}
	return f.items[f.cursor], true
}

// Refresh reloads the entries of the current screen, keeping the cursor in range.
func (n *Navigator) Refresh() {
	f := n.top()
	f.items = n.load(f)
	f.cursor = clamp(f.cursor, len(f.items))
}

// Navigate applies one input and reports what the caller should do.
func (n *Navigator) Navigate(d Direction) Action {
	f := n.top()

	switch d {
	case Up:
		f.cursor = clamp(f.cursor-1, len(f.items))
	case Down:
		f.cursor = clamp(f.cursor+1, len(f.items))
	case Back:
		n.pop()
	case Select:
		if entry, ok := n.Current(); ok {
			return n.selectEntry(f, entry)
		}
	}
	return Action{}
}

func (n *Navigator) selectEntry(f *frame, e Entry) Action {
	switch {
	case e.Kind == EntryMenu:
		return n.openMenu(e.Label)
	case e.Kind.IsMedia():
		n.push(&frame{screen: ScreenOptions, title: e.Label, target: e})
	case e.Kind == EntryOption:
		return n.applyOption(f.target, e.Label)
	case e.Kind == EntryCommand && e.Label == SettingRescan:
		return Action{Kind: ActionRescan}
	}
	return Action{}
}

func (n *Navigator) openMenu(item string) Action {
	switch item {
	case MenuPlaylists:
		root := n.src.PlaylistRoot()
		n.push(&frame{screen: ScreenBrowse, title: MenuPlaylists, dir: root})
	case MenuAlbums, MenuArtists, MenuGenres, MenuYears:
		n.push(&frame{screen: ScreenIndexKeys, title: item, key: menuKeys[item]})
	case MenuTracks:
		n.push(&frame{screen: ScreenTrackList, title: MenuTracks, target: Entry{Tracks: n.src.Tracks()}})
	case MenuQueue:
		n.push(&frame{screen: ScreenQueue, title: MenuQueue})
	case MenuSettings:
		n.push(&frame{screen: ScreenSettings, title: MenuSettings})
	case MenuQuit:
		return Action{Kind: ActionQuit}
	}
	return Action{}
}

// applyOption runs a media option against the entry the options screen was opened for.
func (n *Navigator) applyOption(target Entry, option string) Action {
	if option == OptionView {
		n.view(target)
		return Action{}
	}

	var kind ActionKind
	switch option {
	case OptionPlay:
		kind = ActionPlay
	case OptionQueueNext:
		kind = ActionQueueNext
	case OptionQueueLast:
		kind = ActionQueueLast
	default:
		return Action{}
	}

	n.pop()
	return Action{Kind: kind, Selection: n.selection(target)}
}

// view replaces the options screen with the contents of target.
func (n *Navigator) view(target Entry) {
	n.pop()
	switch target.Kind {
	case EntryDirectory:
		n.push(&frame{screen: ScreenBrowse, title: target.Label, dir: target.Path})
	case EntryPlaylist:
		n.push(&frame{screen: ScreenTrackList, title: target.Label,
			target: Entry{Tracks: n.src.PlaylistTracks(target.Path)}})
	case EntryBucket:
		n.push(&frame{screen: ScreenTrackList, title: target.Label, target: target})
	}
}

// selection turns an entry into what the player accepts. Playlists stay a
// single path so the player expands them.
func (n *Navigator) selection(e Entry) domain.Selection {
	switch e.Kind {
	case EntryTrack, EntryPlaylist:
		return domain.Single(e.Path)
	case EntryDirectory:
		return domain.Many(n.src.DirectoryTracks(e.Path))
	case EntryBucket:
		return domain.Many(e.Tracks)
	default:
		return domain.Selection{}
	}
}

func (n *Navigator) load(f *frame) []Entry {
	switch f.screen {
	case ScreenHome:
		return lo.Map(HomeItems, func(item string, _ int) Entry { return menuEntry(item) })
	case ScreenBrowse:
		return lo.Map(n.src.Browse(f.dir), func(item domain.MediaItem, _ int) Entry { return mediaEntry(item) })
	case ScreenIndexKeys:
		return lo.Map(n.src.IndexValues(f.key), func(value string, _ int) Entry {
			return Entry{Kind: EntryBucket, Label: value, Key: f.key, Tracks: n.src.IndexTracks(f.key, value)}
		})
	case ScreenTrackList:
		return lo.Map(f.target.Tracks, func(path string, _ int) Entry { return trackEntry(path) })
	case ScreenQueue:
		return lo.Map(n.src.Upcoming(), func(path string, _ int) Entry { return trackEntry(path) })
	case ScreenOptions:
		return lo.Map(optionsFor(f.target), func(opt string, _ int) Entry {
			return Entry{Kind: EntryOption, Label: opt}
		})
	case ScreenSettings:
		items := lo.Map(n.src.Settings(), func(line string, _ int) Entry {
			return Entry{Kind: EntryInfo, Label: line}
		})
		return append(items, Entry{Kind: EntryCommand, Label: SettingRescan})
	}
	return nil
}

// optionsFor lists the media options. A single track has nothing to view.
func optionsFor(e Entry) []string {
	if e.Kind == EntryTrack {
		return []string{OptionPlay, OptionQueueNext, OptionQueueLast}
	}
	return []string{OptionPlay, OptionView, OptionQueueNext, OptionQueueLast}
}

func (n *Navigator) push(f *frame) {
	f.items = n.load(f)
	f.cursor = clamp(f.cursor, len(f.items))
	n.stack = append(n.stack, f)
}

// pop drops the top frame. Home is never popped. The uncovered frame is
// reloaded since the queue or library may have changed underneath it.
func (n *Navigator) pop() {
	if len(n.stack) == 1 {
		return
	}
	n.stack = n.stack[:len(n.stack)-1]
	n.Refresh()
}

func (n *Navigator) top() *frame {
	return n.stack[len(n.stack)-1]
}

func clamp(i, length int) int {
	if length == 0 {
		return 0
	}
	return max(0, min(i, length-1))
}

// Breadcrumb returns the titles from Home to the current screen.
func (n *Navigator) Breadcrumb() string {
	titles := lo.Map(n.stack, func(f *frame, _ int) string { return f.title })
	return strings.Join(titles, " / ")
}
