//go:build (linux && cgo) || windows || darwin

package beep

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// Available reports whether this build can produce sound.
const Available = true

// The speaker is process-wide and only initialized once.
var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerErr
}

// session is one loaded track.
type session struct {
	*decoded
	path    string
	ctrl    *beep.Ctrl
	started bool
	ended   atomic.Bool // set from the speaker goroutine
}

// Engine plays tracks through the beep speaker.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	logger     *slog.Logger
	sampleRate beep.SampleRate

	mu          sync.Mutex
	initialized bool
	sessions    map[domain.TrackHandle]*session
	nextHandle  domain.TrackHandle
}

// NewEngine creates an engine that resamples every track to sampleRate.
// A non-positive rate selects DefaultSampleRate.
func NewEngine(logger *slog.Logger, sampleRate int) *Engine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		logger:     logger.With(slog.String("engine", "beep")),
		sampleRate: beep.SampleRate(sampleRate),
		sessions:   make(map[domain.TrackHandle]*session),
		nextHandle: 1,
	}
}

// Initialize opens the speaker.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return domain.ErrAlreadyInitialized
	}

	if err := initSpeaker(e.sampleRate); err != nil {
		return domain.NewAudioEngineError("initialize", "", "speaker init failed", err)
	}
	// A second engine in the same process shares the first one's rate.
	e.sampleRate = speakerRate
	e.initialized = true

	e.logger.Info("audio engine initialized", slog.Int("sample_rate", int(e.sampleRate)))
	return nil
}

// Shutdown closes every session and silences the speaker.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	for handle, s := range e.sessions {
		e.release(s)
		delete(e.sessions, handle)
	}
	speaker.Clear()
	e.initialized = false

	e.logger.Info("audio engine shut down")
	return nil
}

// IsInitialized returns true if the engine is initialized.
func (e *Engine) IsInitialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Load decodes filePath and opens a stopped session for it.
func (e *Engine) Load(filePath string) (domain.TrackHandle, error) {
	if filePath == "" {
		return domain.InvalidTrackHandle, domain.ErrInvalidFilePath
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.InvalidTrackHandle, domain.ErrNotInitialized
	}

	d, err := decode(filePath)
	if err != nil {
		return domain.InvalidTrackHandle, err
	}

	s := &session{decoded: d, path: filePath}
	var stream beep.Streamer = d.streamer
	if d.format.SampleRate != e.sampleRate {
		stream = beep.Resample(4, d.format.SampleRate, e.sampleRate, d.streamer)
	}
	s.ctrl = &beep.Ctrl{Streamer: stream}

	handle := e.nextHandle
	e.nextHandle++
	e.sessions[handle] = s

	e.logger.Debug("track loaded",
		slog.String("path", filePath),
		slog.Int64("handle", int64(handle)),
		slog.Duration("duration", d.Duration()))
	return handle, nil
}

// Unload closes a session.
func (e *Engine) Unload(handle domain.TrackHandle) error {
	return e.Stop(handle)
}

// Play starts or resumes a session. Playing an ended session does nothing.
func (e *Engine) Play(handle domain.TrackHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.session(handle)
	if err != nil {
		return err
	}

	if s.ended.Load() {
		return nil
	}

	if !s.started {
		s.started = true
		speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
			s.ended.Store(true)
		})))
		return nil
	}

	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause pauses a session, keeping its position.
func (e *Engine) Pause(handle domain.TrackHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.session(handle)
	if err != nil {
		return err
	}

	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// Stop stops a session and closes it.
func (e *Engine) Stop(handle domain.TrackHandle) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.session(handle)
	if err != nil {
		return err
	}

	e.release(s)
	delete(e.sessions, handle)
	return nil
}

// release detaches the session from the speaker and closes its decoder.
// Caller must hold mu.
func (e *Engine) release(s *session) {
	speaker.Lock()
	s.ctrl.Streamer = nil
	s.decoded.Close()
	speaker.Unlock()
}

// Status returns the playback status of a session.
func (e *Engine) Status(handle domain.TrackHandle) (domain.PlaybackStatus, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.session(handle)
	if err != nil {
		return domain.StatusStopped, err
	}

	switch {
	case s.ended.Load():
		return domain.StatusEnded, nil
	case !s.started:
		return domain.StatusStopped, nil
	}

	speaker.Lock()
	paused := s.ctrl.Paused
	speaker.Unlock()

	if paused {
		return domain.StatusPaused, nil
	}
	return domain.StatusPlaying, nil
}

// Position returns the elapsed time of a session.
func (e *Engine) Position(handle domain.TrackHandle) (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.session(handle)
	if err != nil {
		return 0, err
	}

	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()

	return s.format.SampleRate.D(pos), nil
}

// Duration returns the length of a session, negative when unknown.
func (e *Engine) Duration(handle domain.TrackHandle) (time.Duration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.session(handle)
	if err != nil {
		return 0, err
	}
	return s.decoded.Duration(), nil
}

// session looks up a loaded track. Caller must hold mu.
func (e *Engine) session(handle domain.TrackHandle) (*session, error) {
	if !e.initialized {
		return nil, domain.ErrNotInitialized
	}

	s, ok := e.sessions[handle]
	if !ok {
		return nil, domain.ErrInvalidTrackHandle
	}
	return s, nil
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
