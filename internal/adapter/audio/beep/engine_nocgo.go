//go:build !windows && !darwin && !(linux && cgo)

package beep

import (
	"log/slog"
	"time"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// Available reports whether this build can produce sound.
// The speaker needs cgo on this platform.
const Available = false

// Engine is the placeholder used by builds without an audio backend.
// Every operation fails with domain.ErrAudioUnavailable.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an engine that cannot play anything.
func NewEngine(logger *slog.Logger, _ int) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger.With(slog.String("engine", "beep"))}
}

func unavailable(op, path string) error {
	return domain.NewAudioEngineError(op, path, "built without cgo", domain.ErrAudioUnavailable)
}

// Initialize always fails.
func (e *Engine) Initialize() error {
	e.logger.Warn("audio output unavailable, rebuild with CGO_ENABLED=1 or use --mock-audio")
	return unavailable("initialize", "")
}

// Shutdown reports the engine was never initialized.
func (e *Engine) Shutdown() error { return domain.ErrNotInitialized }

// IsInitialized always returns false.
func (e *Engine) IsInitialized() bool { return false }

// Load always fails.
func (e *Engine) Load(filePath string) (domain.TrackHandle, error) {
	return domain.InvalidTrackHandle, unavailable("load", filePath)
}

// Unload always fails.
func (e *Engine) Unload(domain.TrackHandle) error { return domain.ErrNotInitialized }

// Play always fails.
func (e *Engine) Play(domain.TrackHandle) error { return unavailable("play", "") }

// Pause always fails.
func (e *Engine) Pause(domain.TrackHandle) error { return domain.ErrNotInitialized }

// Stop always fails.
func (e *Engine) Stop(domain.TrackHandle) error { return domain.ErrNotInitialized }

// Status always fails.
func (e *Engine) Status(domain.TrackHandle) (domain.PlaybackStatus, error) {
	return domain.StatusStopped, domain.ErrNotInitialized
}

// Position always fails.
func (e *Engine) Position(domain.TrackHandle) (time.Duration, error) {
	return 0, domain.ErrNotInitialized
}

// Duration always fails.
func (e *Engine) Duration(domain.TrackHandle) (time.Duration, error) {
	return 0, domain.ErrNotInitialized
}

var _ ports.AudioEngine = (*Engine)(nil)
