package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// PlaylistResolver expands playlist files into track paths.
// LibraryService implements it.
type PlaylistResolver interface {
	Resolve(sel domain.Selection) domain.Selection
}

// PlaybackOptions tunes the player.
type PlaybackOptions struct {
	// SkipBackThreshold: a skip-back on a track whose total length is at or
	// below this restarts the track instead of going to the previous one.
	SkipBackThreshold time.Duration
}

// PlaybackService drives the audio engine from the playback queue.
//
// At most one engine session is open at a time. currentPath is empty until a
// track is first made current and from then on equals the front of history.
// A session released by Stop leaves currentPath in place so Play can reopen it.
//
// Public operations never return errors: failures are logged, published as
// track.error events and reported as false or a no-op. Events are published
// after the internal lock is released, so handlers may call back in.
type PlaybackService struct {
	// Dependencies (injected)
	logger   *slog.Logger
	engine   ports.AudioEngine
	reader   ports.TagReader
	bus      ports.EventBus
	playlist PlaylistResolver

	threshold time.Duration

	// State
	queue       *PlaybackQueue
	currentPath string
	handle      domain.TrackHandle

	// lastTotal is the length the engine reported for currentPath when its
	// session was released, or -1 if unknown.
	lastTotal time.Duration

	mu      sync.Mutex
	pending []domain.Event
}

// NewPlaybackService creates a new playback service.
func NewPlaybackService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	reader ports.TagReader,
	bus ports.EventBus,
	playlist PlaylistResolver,
	opts PlaybackOptions,
) *PlaybackService {
	s := &PlaybackService{
		logger:    logger,
		engine:    engine,
		reader:    reader,
		bus:       bus,
		playlist:  playlist,
		threshold: opts.SkipBackThreshold,
		queue:     NewPlaybackQueue(),
		handle:    domain.InvalidTrackHandle,
		lastTotal: -1,
	}

	logger.Debug("playback service initialized",
		slog.Duration("skip_back_threshold", opts.SkipBackThreshold))
	return s
}

func (s *PlaybackService) lock() {
	s.mu.Lock()
}

// unlock releases mu and then publishes the events queued while it was held.
func (s *PlaybackService) unlock() {
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, e := range events {
		s.bus.Publish(e)
	}
}

func (s *PlaybackService) emit(e domain.Event) {
	s.pending = append(s.pending, e)
}

// Play starts playback.
//
// With an empty selection it resumes the current track, reopening it from the
// start if Stop released its session. A single path equal to the current track
// is a no-op. Otherwise the selection (a playlist is expanded) replaces the
// upcoming queue and its first track starts. It reports whether playback is on.
func (s *PlaybackService) Play(sel domain.Selection) bool {
	s.lock()
	defer s.unlock()

	if sel.IsEmpty() {
		return s.resume()
	}

	if sel.Kind() == domain.SelectionSingle {
		path := sel.Path()
		if path == s.currentPath {
			return true
		}
		if !fileExists(path) {
			s.fail(path, domain.ErrNotFound)
			return false
		}
	}

	resolved := s.resolve(sel)
	if resolved.IsEmpty() {
		s.logger.Info("nothing to play", slog.Any("selection", sel.Paths()))
		return false
	}

	s.queue.ClearUpcoming()
	s.queue.EnqueueLast(resolved)
	s.emit(domain.NewQueueChangedEvent(domain.QueueReplaced, len(resolved.Paths()), s.queue.Upcoming()))

	path, _ := s.queue.Advance()
	return s.startCurrent(path, s.undoAdvance)
}

// resume handles Play with an empty selection. Caller must hold mu.
func (s *PlaybackService) resume() bool {
	if s.currentPath == "" {
		return false
	}

	if s.handle == domain.InvalidTrackHandle {
		if !fileExists(s.currentPath) {
			s.fail(s.currentPath, domain.ErrNotFound)
			return false
		}
		if err := s.openSession(s.currentPath); err != nil {
			s.fail(s.currentPath, err)
			return false
		}
		return true
	}

	status, err := s.engine.Status(s.handle)
	if err != nil {
		s.fail(s.currentPath, err)
		return false
	}

	switch status {
	case domain.StatusPlaying:
		return true
	case domain.StatusEnded:
		return s.restart()
	}

	if err := s.engine.Play(s.handle); err != nil {
		s.fail(s.currentPath, fmt.Errorf("%w: %w", domain.ErrTransportFailure, err))
		return false
	}
	s.emit(domain.NewTrackStartedEvent(s.currentPath, s.handle))
	return true
}

// Pause pauses the current session, keeping its position.
func (s *PlaybackService) Pause() {
	s.lock()
	defer s.unlock()

	if s.handle == domain.InvalidTrackHandle {
		return
	}

	position, err := s.engine.Position(s.handle)
	if err != nil {
		position = 0
	}

	if err := s.engine.Pause(s.handle); err != nil {
		s.logger.Warn("pause failed", slog.String("path", s.currentPath), slog.Any("error", err))
		return
	}
	s.emit(domain.NewTrackPausedEvent(s.currentPath, position))
}

// Stop stops and releases the current session. The position is discarded but
// the track stays current.
func (s *PlaybackService) Stop() {
	s.lock()
	defer s.unlock()

	s.releaseSession()
}

// SkipForward moves to the next queued track. With nothing queued it does
// nothing. A queued track missing on disk is dropped and the current session
// is left alone.
func (s *PlaybackService) SkipForward() bool {
	s.lock()
	defer s.unlock()

	return s.skipForward()
}

func (s *PlaybackService) skipForward() bool {
	path, ok := s.queue.Advance()
	if !ok {
		s.logger.Debug("skip forward ignored", slog.Any("error", domain.ErrEmptyQueue))
		return false
	}
	return s.startCurrent(path, s.undoAdvance)
}

// SkipBack restarts the current track when its total length is at or below
// the skip-back threshold. Otherwise it returns to the previously played
// track and queues the current one to play next. A track released by Stop
// is measured by the length it reported before release.
func (s *PlaybackService) SkipBack() bool {
	s.lock()
	defer s.unlock()

	if total, ok := s.currentTotal(); ok && total <= s.threshold {
		return s.restart()
	}

	path, ok := s.queue.Retreat()
	if !ok {
		s.logger.Debug("skip back ignored", slog.Any("error", domain.ErrEmptyQueue))
		return false
	}
	return s.startCurrent(path, s.undoRetreat)
}

// currentTotal returns the length of the current track, clamped at zero.
// Caller must hold mu.
func (s *PlaybackService) currentTotal() (time.Duration, bool) {
	if s.handle == domain.InvalidTrackHandle {
		if s.currentPath == "" || s.lastTotal < 0 {
			return 0, false
		}
		return s.lastTotal, true
	}

	total, err := s.engine.Duration(s.handle)
	if err != nil {
		return 0, false
	}
	return max(total, 0), true
}

// EnqueueNext queues the selection to play right after the current track.
// It returns the number of tracks queued.
func (s *PlaybackService) EnqueueNext(sel domain.Selection) int {
	return s.enqueue(sel, domain.QueuedNext)
}

// EnqueueLast queues the selection after everything already queued.
// It returns the number of tracks queued.
func (s *PlaybackService) EnqueueLast(sel domain.Selection) int {
	return s.enqueue(sel, domain.QueuedLast)
}

func (s *PlaybackService) enqueue(sel domain.Selection, kind domain.QueueChangeKind) int {
	s.lock()
	defer s.unlock()

	resolved := s.resolve(sel)
	if resolved.IsEmpty() {
		return 0
	}

	if kind == domain.QueuedNext {
		s.queue.EnqueueNext(resolved)
	} else {
		s.queue.EnqueueLast(resolved)
	}

	added := len(resolved.Paths())
	s.logger.Debug("tracks queued", slog.String("kind", string(kind)), slog.Int("count", added))
	s.emit(domain.NewQueueChangedEvent(kind, added, s.queue.Upcoming()))
	return added
}

// DisplayMetadata describes the current track for the now-playing area.
// ok is false when no track is current.
func (s *PlaybackService) DisplayMetadata() (meta domain.DisplayMetadata, ok bool) {
	s.lock()
	defer s.unlock()

	if s.currentPath == "" {
		return meta, false
	}

	tags := s.reader.ReadTags(s.currentPath)
	meta = domain.DisplayMetadata{
		Path:   s.currentPath,
		Title:  tags.First(domain.TagTitle),
		Artist: tags.First(domain.TagArtist),
		Album:  tags.First(domain.TagAlbum),
	}

	if s.handle == domain.InvalidTrackHandle {
		return meta, true
	}

	if status, err := s.engine.Status(s.handle); err == nil {
		meta.IsPlaying = status == domain.StatusPlaying
	}
	if pos, err := s.engine.Position(s.handle); err == nil && pos > 0 {
		meta.Current = pos
	}
	if total, err := s.engine.Duration(s.handle); err == nil && total > 0 {
		meta.Total = total
	} else {
		meta.IsPlaying = false
	}
	return meta, true
}

// State maps the engine status of the current session onto the player state.
func (s *PlaybackService) State() domain.PlayerState {
	s.lock()
	defer s.unlock()

	return s.state()
}

func (s *PlaybackService) state() domain.PlayerState {
	if s.currentPath == "" || s.handle == domain.InvalidTrackHandle {
		return domain.StateNoMedia
	}
	status, err := s.engine.Status(s.handle)
	if err != nil {
		return domain.StateNoMedia
	}
	return domain.StateFromStatus(status)
}

// StateLabel returns the user-facing status line.
func (s *PlaybackService) StateLabel() string {
	return s.State().Label()
}

// Tick is called once per UI refresh. It publishes progress for the open
// session and moves on to the next queued track when the current one ended.
func (s *PlaybackService) Tick() {
	s.lock()
	defer s.unlock()

	if s.handle == domain.InvalidTrackHandle {
		return
	}

	status, err := s.engine.Status(s.handle)
	if err != nil {
		return
	}

	position, _ := s.engine.Position(s.handle)
	duration, _ := s.engine.Duration(s.handle)
	s.emit(domain.NewTrackProgressEvent(s.currentPath, max(position, 0), max(duration, 0)))

	if status != domain.StatusEnded || s.queue.UpcomingLen() == 0 {
		return
	}

	from := s.currentPath
	if s.skipForward() {
		s.emit(domain.NewAutoNextEvent(from, s.currentPath))
	}
}

// Upcoming returns the queued tracks, next first.
func (s *PlaybackService) Upcoming() []string {
	s.lock()
	defer s.unlock()
	return s.queue.Upcoming()
}

// History returns the played tracks, current first.
func (s *PlaybackService) History() []string {
	s.lock()
	defer s.unlock()
	return s.queue.History()
}

// CurrentPath returns the current track, or "" if none.
func (s *PlaybackService) CurrentPath() string {
	s.lock()
	defer s.unlock()
	return s.currentPath
}

// Shutdown releases the open session, if any.
func (s *PlaybackService) Shutdown() error {
	s.lock()
	defer s.unlock()

	if s.handle == domain.InvalidTrackHandle {
		return nil
	}
	err := s.engine.Stop(s.handle)
	s.handle = domain.InvalidTrackHandle
	return err
}

// resolve expands a single playlist path. Caller must hold mu.
func (s *PlaybackService) resolve(sel domain.Selection) domain.Selection {
	if s.playlist == nil {
		return sel
	}
	return s.playlist.Resolve(sel)
}

// startCurrent switches the transport to path, which the queue has just made
// current. A missing file is checked before the old session is touched; undo
// then puts the queue back. Caller must hold mu.
func (s *PlaybackService) startCurrent(path string, undo func()) bool {
	if !fileExists(path) {
		undo()
		s.fail(path, domain.ErrNotFound)
		return false
	}

	if err := s.switchTransport(path); err != nil {
		s.fail(path, err)
		return false
	}
	return true
}

// undoAdvance drops the entry Advance made current.
func (s *PlaybackService) undoAdvance() {
	s.queue.Discard()
}

// undoRetreat drops the entry Retreat made current and brings the old current
// track back from the front of upcoming.
func (s *PlaybackService) undoRetreat() {
	s.queue.Discard()
	s.queue.Advance()
}

// switchTransport stops the old session, makes path current and starts it.
// On failure the new track stays current with no session. Caller must hold mu.
func (s *PlaybackService) switchTransport(path string) error {
	s.releaseSession()
	s.currentPath = path
	s.lastTotal = -1
	return s.openSession(path)
}

// openSession loads path and plays it from the start. Every failure after a
// successful load releases the handle. Caller must hold mu.
func (s *PlaybackService) openSession(path string) error {
	handle, err := s.engine.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
	}

	if err := s.engine.Play(handle); err != nil {
		if stopErr := s.engine.Stop(handle); stopErr != nil {
			s.logger.Warn("failed to release track after play error", slog.Any("error", stopErr))
		}
		return fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
	}

	s.handle = handle
	s.lastTotal = -1
	s.logger.Debug("track started", slog.String("path", path), slog.Int64("handle", int64(handle)))
	s.emit(domain.NewTrackStartedEvent(path, handle))
	return nil
}

// releaseSession stops the open session, if any. Caller must hold mu.
func (s *PlaybackService) releaseSession() {
	if s.handle == domain.InvalidTrackHandle {
		return
	}

	if total, err := s.engine.Duration(s.handle); err == nil {
		s.lastTotal = max(total, 0)
	}
	if err := s.engine.Stop(s.handle); err != nil {
		s.logger.Warn("failed to stop track", slog.String("path", s.currentPath), slog.Any("error", err))
	}
	s.handle = domain.InvalidTrackHandle
	s.emit(domain.NewTrackStoppedEvent(s.currentPath))
}

// restart reopens the current track from the start. Caller must hold mu.
func (s *PlaybackService) restart() bool {
	path := s.currentPath
	if s.handle != domain.InvalidTrackHandle {
		if err := s.engine.Stop(s.handle); err != nil {
			s.logger.Warn("failed to stop track for restart", slog.Any("error", err))
		}
		s.handle = domain.InvalidTrackHandle
	}

	if err := s.openSession(path); err != nil {
		s.fail(path, err)
		return false
	}
	s.emit(domain.NewTrackRestartedEvent(path))
	return true
}

// fail logs err and publishes it as a track error. Caller must hold mu.
func (s *PlaybackService) fail(path string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, domain.ErrNotFound) {
		level = slog.LevelInfo
	}
	s.logger.Log(context.Background(), level, "couldn't play file", slog.String("path", path), slog.Any("error", err))
	s.emit(domain.NewTrackErrorEvent(path, err))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Verify that PlaybackService implements the expected interface patterns
var _ interface {
	Play(domain.Selection) bool
	Pause()
	Stop()
	SkipForward() bool
	SkipBack() bool
	EnqueueNext(domain.Selection) int
	EnqueueLast(domain.Selection) int
	DisplayMetadata() (domain.DisplayMetadata, bool)
	State() domain.PlayerState
	StateLabel() string
	Tick()
	Shutdown() error
} = (*PlaybackService)(nil)
