// Package mock provides a mock implementation of the AudioEngine interface.
// It is used for testing services without an audio device and backs the
// --mock-audio flag for headless runs.
package mock

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// DefaultDuration is the simulated length of a track with no configured duration.
const DefaultDuration = 3 * time.Minute

// Engine is a mock implementation of the AudioEngine interface.
// It simulates audio playback in memory without actually playing audio.
//
// By default the clock is frozen and position only moves through
// SimulateProgress. NewRealtimeEngine advances position with the wall clock.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time

	initialized bool

	// Track state
	tracks     map[domain.TrackHandle]*mockTrack
	nextHandle domain.TrackHandle
	loads      []string
	durations  map[string]time.Duration
	defaultDur time.Duration
	mu         sync.RWMutex

	// Behavior configuration (for testing error scenarios)
	failInitialize bool
	failLoad       bool
	failPlay       bool
}

// mockTrack represents a loaded track in the mock engine.
type mockTrack struct {
	filePath string
	duration time.Duration
	position time.Duration
	since    time.Time // set while playing
	status   domain.PlaybackStatus
}

// NewEngine creates a mock audio engine with a frozen clock.
func NewEngine() *Engine {
	return &Engine{
		logger:     slog.New(slog.DiscardHandler),
		tracks:     make(map[domain.TrackHandle]*mockTrack),
		durations:  make(map[string]time.Duration),
		defaultDur: DefaultDuration,
		nextHandle: 1,
	}
}

// NewRealtimeEngine creates a mock engine whose playing tracks advance with wall time.
func NewRealtimeEngine(logger *slog.Logger) *Engine {
	m := NewEngine()
	m.now = time.Now
	if logger != nil {
		m.logger = logger.With(slog.String("component", "mock-audio"))
	}
	return m
}

// SetFailInitialize configures the mock to fail initialization (for testing).
func (m *Engine) SetFailInitialize(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInitialize = fail
}

// SetFailLoad configures the mock to fail loading tracks (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// SetDuration sets the length reported for tracks loaded afterwards.
// A negative value simulates an unknown length.
func (m *Engine) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultDur = d
}

// SetDurationFor sets the length reported for one path, overriding SetDuration.
func (m *Engine) SetDurationFor(path string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[path] = d
}

// Initialize initializes the mock audio engine.
func (m *Engine) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInitialize {
		return domain.NewAudioEngineError("initialize", "", "mock initialization failed", nil)
	}

	if m.initialized {
		return domain.ErrAlreadyInitialized
	}

	m.initialized = true
	m.logger.Debug("mock audio engine initialized")
	return nil
}

// Shutdown shuts down the mock audio engine and drops every loaded track.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	m.initialized = false
	m.tracks = make(map[domain.TrackHandle]*mockTrack)
	return nil
}

// IsInitialized returns true if the engine is initialized.
func (m *Engine) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Load opens a simulated session for filePath.
func (m *Engine) Load(filePath string) (domain.TrackHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.InvalidTrackHandle, domain.ErrNotInitialized
	}

	if filePath == "" {
		return domain.InvalidTrackHandle, domain.ErrInvalidFilePath
	}

	if m.failLoad {
		return domain.InvalidTrackHandle, domain.NewAudioEngineError("load", filePath, "mock load failed", nil)
	}

	duration, ok := m.durations[filePath]
	if !ok {
		duration = m.defaultDur
	}

	handle := m.nextHandle
	m.nextHandle++

	m.tracks[handle] = &mockTrack{
		filePath: filePath,
		duration: duration,
		status:   domain.StatusStopped,
	}
	m.loads = append(m.loads, filePath)

	return handle, nil
}

// Unload unloads a previously loaded track.
func (m *Engine) Unload(handle domain.TrackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.track(handle); err != nil {
		return err
	}

	delete(m.tracks, handle)
	return nil
}

// Play starts or resumes playback.
func (m *Engine) Play(handle domain.TrackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, err := m.track(handle)
	if err != nil {
		return err
	}

	if m.failPlay {
		return domain.NewAudioEngineError("play", track.filePath, "mock play failed", nil)
	}

	m.settle(track)
	if track.status == domain.StatusPlaying || track.status == domain.StatusEnded {
		return nil
	}

	track.status = domain.StatusPlaying
	if m.now != nil {
		track.since = m.now()
	}
	return nil
}

// Pause pauses playback, keeping the position.
func (m *Engine) Pause(handle domain.TrackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, err := m.track(handle)
	if err != nil {
		return err
	}

	m.settle(track)
	if track.status == domain.StatusPlaying {
		track.status = domain.StatusPaused
	}
	return nil
}

// Stop stops playback and unloads the track.
func (m *Engine) Stop(handle domain.TrackHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.track(handle); err != nil {
		return err
	}

	delete(m.tracks, handle)
	return nil
}

// Status returns the playback status.
func (m *Engine) Status(handle domain.TrackHandle) (domain.PlaybackStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, err := m.track(handle)
	if err != nil {
		return domain.StatusStopped, err
	}

	m.settle(track)
	return track.status, nil
}

// Position returns the current playback position.
func (m *Engine) Position(handle domain.TrackHandle) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, err := m.track(handle)
	if err != nil {
		return 0, err
	}

	m.settle(track)
	return track.position, nil
}

// Duration returns the total track duration. Negative means unknown.
func (m *Engine) Duration(handle domain.TrackHandle) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	track, err := m.track(handle)
	if err != nil {
		return 0, err
	}

	return track.duration, nil
}

// track looks up a loaded track. Caller must hold mu.
func (m *Engine) track(handle domain.TrackHandle) (*mockTrack, error) {
	if !m.initialized {
		return nil, domain.ErrNotInitialized
	}

	track, exists := m.tracks[handle]
	if !exists {
		return nil, domain.ErrInvalidTrackHandle
	}
	return track, nil
}

// settle folds wall time into position for realtime engines. Caller must hold mu.
func (m *Engine) settle(track *mockTrack) {
	if m.now == nil || track.status != domain.StatusPlaying {
		return
	}
	now := m.now()
	m.advance(track, now.Sub(track.since))
	track.since = now
}

// advance moves a playing track forward and marks it ended at its length.
func (m *Engine) advance(track *mockTrack, delta time.Duration) {
	track.position += delta
	if track.duration >= 0 && track.position >= track.duration {
		track.position = track.duration
		track.status = domain.StatusEnded
	}
}

// GetLoadedTracks returns the number of currently loaded tracks (for testing).
func (m *Engine) GetLoadedTracks() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tracks)
}

// Loads returns every path passed to a successful Load, in call order (for testing).
func (m *Engine) Loads() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.loads))
	copy(out, m.loads)
	return out
}

// PathOf returns the path loaded under handle (for testing).
func (m *Engine) PathOf(handle domain.TrackHandle) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	track, ok := m.tracks[handle]
	if !ok {
		return "", false
	}
	return track.filePath, true
}

// SimulateProgress advances a playing track by delta (for testing).
// Reaching the track's length puts it in the ended state.
func (m *Engine) SimulateProgress(handle domain.TrackHandle, delta time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	track, err := m.track(handle)
	if err != nil {
		return err
	}

	if track.status != domain.StatusPlaying {
		return fmt.Errorf("track is not playing")
	}

	m.advance(track, delta)
	return nil
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
