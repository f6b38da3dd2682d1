// Package tui is the terminal front end: a menu tree on top, the now-playing
// area below, refreshed on a fixed tick.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/logger"
	"github.com/tejashwikalptaru/termtune/internal/navigation"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// Notices shown in the status line.
const (
	noticeQueuedNext = "queued next."
	noticeQueuedLast = "queued last."
	noticePlayError  = "couldn't play file."
	noticeLoadError  = "unable to load."
	noticeScanning   = "scanning library..."
)

// footerLines is the number of rows below the menu: notice, state, time, bar, help.
const footerLines = 5

// Player is the playback surface the UI drives.
type Player interface {
	Play(sel domain.Selection) bool
	Pause()
	Stop()
	SkipForward() bool
	SkipBack() bool
	EnqueueNext(sel domain.Selection) int
	EnqueueLast(sel domain.Selection) int
	DisplayMetadata() (domain.DisplayMetadata, bool)
	State() domain.PlayerState
	StateLabel() string
	Tick()
}

// Rescanner rebuilds the library.
type Rescanner interface {
	Refresh(ctx context.Context) error
}

// RescanFunc adapts a function to the Rescanner interface.
type RescanFunc func(ctx context.Context) error

// Refresh calls f(ctx).
func (f RescanFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// Options configures a Model.
type Options struct {
	Logger  *slog.Logger
	Refresh time.Duration
}

type tickMsg time.Time

type rescanDoneMsg struct {
	err error
}

type notice struct {
	text  string
	isErr bool
}

// inbox collects what bus handlers report. Handlers may run on any goroutine.
type inbox struct {
	mu      sync.Mutex
	notices []notice
	dirty   bool
}

func (b *inbox) post(text string, isErr bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if text != "" {
		b.notices = append(b.notices, notice{text: text, isErr: isErr})
	}
	b.dirty = true
}

func (b *inbox) drain() ([]notice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	notices, dirty := b.notices, b.dirty
	b.notices, b.dirty = nil, false
	return notices, dirty
}

// Model is the bubbletea model for the player.
type Model struct {
	logger  *slog.Logger
	player  Player
	library Rescanner
	nav     *navigation.Navigator
	bus     ports.EventBus
	subs    []domain.SubscriptionID
	inbox   *inbox

	keys    keyMap
	help    help.Model
	refresh time.Duration

	width  int
	height int

	notice   notice
	scanning bool
	quitting bool
}

// NewModel creates a model and subscribes it to bus.
func NewModel(player Player, library Rescanner, nav *navigation.Navigator, bus ports.EventBus, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 100 * time.Millisecond
	}

	m := Model{
		logger:  opts.Logger,
		player:  player,
		library: library,
		nav:     nav,
		bus:     bus,
		inbox:   &inbox{},
		keys:    defaultKeyMap(),
		help:    help.New(),
		refresh: opts.Refresh,
		width:   80,
		height:  24,
	}
	m.subscribe()
	return m
}

func (m *Model) subscribe() {
	if m.bus == nil {
		return
	}
	in := m.inbox
	m.subs = append(m.subs,
		m.bus.Subscribe(domain.EventQueueChanged, func(e domain.Event) {
			switch ev := e.(domain.QueueChangedEvent); ev.Kind {
			case domain.QueuedNext:
				in.post(noticeQueuedNext, false)
			case domain.QueuedLast:
				in.post(noticeQueuedLast, false)
			default:
				in.post("", false)
			}
		}),
		m.bus.Subscribe(domain.EventTrackError, func(domain.Event) {
			in.post(noticePlayError, true)
		}),
		m.bus.Subscribe(domain.EventLibraryScanned, func(e domain.Event) {
			ev := e.(domain.LibraryScannedEvent)
			in.post(fmt.Sprintf("library scanned: %d tracks, %d playlists.", ev.Tracks, ev.Playlists), false)
		}),
		m.bus.Subscribe(domain.EventTrackStarted, func(domain.Event) { in.post("", false) }),
		m.bus.Subscribe(domain.EventAutoNext, func(domain.Event) { in.post("", false) }),
	)
}

// Close drops the model's bus subscriptions.
func (m Model) Close() {
	if m.bus == nil {
		return
	}
	for _, id := range m.subs {
		m.bus.Unsubscribe(id)
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) rescan() tea.Cmd {
	lib := m.library
	return func() tea.Msg {
		return rescanDoneMsg{err: lib.Refresh(context.Background())}
	}
}

// Init starts the refresh tick.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.player.Tick()
		m.collect()
		return m, m.tick()

	case rescanDoneMsg:
		m.scanning = false
		if msg.err != nil {
			m.logger.Warn("rescan failed", slog.Any("error", msg.err))
			m.notice = notice{text: noticeLoadError, isErr: true}
		}
		m.collect()
		m.nav.Refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// collect applies what the bus handlers reported since the last call.
func (m *Model) collect() {
	notices, dirty := m.inbox.drain()
	if len(notices) > 0 {
		m.notice = notices[len(notices)-1]
	}
	if dirty {
		m.nav.Refresh()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.nav.Navigate(navigation.Up)
	case key.Matches(msg, m.keys.Down):
		m.nav.Navigate(navigation.Down)
	case key.Matches(msg, m.keys.Select):
		m.notice = notice{}
		cmd = m.apply(m.nav.Navigate(navigation.Select))
	case key.Matches(msg, m.keys.Back):
		m.nav.Navigate(navigation.Back)
	case key.Matches(msg, m.keys.PlayPause):
		if m.player.State() == domain.StatePlaying {
			m.player.Pause()
		} else {
			m.player.Play(domain.Selection{})
		}
	case key.Matches(msg, m.keys.Stop):
		m.player.Stop()
	case key.Matches(msg, m.keys.Next):
		m.player.SkipForward()
	case key.Matches(msg, m.keys.Prev):
		m.player.SkipBack()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	if m.quitting {
		return m, tea.Quit
	}
	m.collect()
	return m, cmd
}

// apply carries out an action picked from the menu.
func (m *Model) apply(act navigation.Action) tea.Cmd {
	switch act.Kind {
	case navigation.ActionPlay:
		if !m.player.Play(act.Selection) {
			m.notice = notice{text: noticeLoadError, isErr: true}
		}
	case navigation.ActionQueueNext:
		m.player.EnqueueNext(act.Selection)
	case navigation.ActionQueueLast:
		m.player.EnqueueLast(act.Selection)
	case navigation.ActionRescan:
		if m.scanning || m.library == nil {
			return nil
		}
		m.scanning = true
		m.notice = notice{text: noticeScanning}
		return m.rescan()
	case navigation.ActionQuit:
		m.quitting = true
	}
	return nil
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	inner := max(10, m.width-4)
	rows := max(1, m.height-footerLines-5)

	var b strings.Builder
	b.WriteString(titleStyle.Render(homeIcon+" "+appTitle) + "  " +
		crumbStyle.Render(truncate(m.nav.Breadcrumb(), max(0, inner-len(appTitle)-4))))
	b.WriteString("\n\n")
	b.WriteString(m.viewMenu(inner, rows))
	b.WriteString("\n\n")
	b.WriteString(m.viewFooter(inner))

	return frameStyle.Width(max(0, m.width-2)).Render(b.String())
}

// viewMenu draws a rows-high window of the current menu that keeps the cursor visible.
func (m Model) viewMenu(width, rows int) string {
	items := m.nav.Items()
	if len(items) == 0 {
		return infoStyle.Render(emptyStr) + strings.Repeat("\n", rows-1)
	}

	cursor := m.nav.Cursor()
	start := 0
	if cursor >= rows {
		start = cursor - rows + 1
	}
	end := min(len(items), start+rows)

	lines := make([]string, 0, rows)
	for i := start; i < end; i++ {
		line := padRight(icon(items[i].Kind)+items[i].Label, width)
		switch {
		case i == cursor:
			line = cursorStyle.Render(line)
		case items[i].Kind == navigation.EntryInfo:
			line = infoStyle.Render(line)
		default:
			line = itemStyle.Render(line)
		}
		lines = append(lines, line)
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewFooter(width int) string {
	meta, ok := m.player.DisplayMetadata()

	status := m.player.StateLabel()
	if ok {
		status += " " + trackLine(meta)
	}
	statusStyle := infoStyle
	if m.player.State() == domain.StatePlaying {
		statusStyle = playingStyle
	}

	noticeLine := ""
	if m.notice.text != "" {
		style := noticeStyle
		if m.notice.isErr {
			style = errorStyle
		}
		noticeLine = style.Render(truncate(m.notice.text, width))
	}

	lines := []string{
		noticeLine,
		statusStyle.Render(truncate(status, width)),
		truncate(timeLine(meta, ok), width),
		progressBar(meta, ok, width),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Run shows the UI until the user quits.
func Run(m Model) error {
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
