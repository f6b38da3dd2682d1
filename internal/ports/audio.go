// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/termtune/internal/domain"
)

// AudioEngine is the interface for audio playback engines.
// This abstracts the underlying audio library (beep) and allows for testing with mocks.
//
// Implementations must be thread-safe as the output goroutine may call back into them.
type AudioEngine interface {
	// Lifecycle methods

	// Initialize opens the audio output device.
	//
	// Returns domain.ErrAlreadyInitialized when called twice.
	Initialize() error

	// Shutdown releases all loaded tracks and the output device.
	Shutdown() error

	// IsInitialized returns true if the engine has been successfully initialized.
	IsInitialized() bool

	// Track loading methods

	// Load opens an audio file and returns a handle to its session.
	// The session starts stopped at position zero and stays open until Stop or Unload.
	Load(filePath string) (domain.TrackHandle, error)

	// Unload releases resources for a previously loaded track without touching output.
	Unload(handle domain.TrackHandle) error

	// Playback control methods

	// Play starts or resumes playback of the specified track.
	Play(handle domain.TrackHandle) error

	// Pause pauses playback of the specified track, keeping its position.
	Pause(handle domain.TrackHandle) error

	// Stop stops playback of the specified track and unloads it.
	// The track must be reloaded with Load before it can be played again.
	Stop(handle domain.TrackHandle) error

	// State query methods

	// Status returns the current playback status of the specified track.
	Status(handle domain.TrackHandle) (domain.PlaybackStatus, error)

	// Position returns the elapsed playback time within the track.
	Position(handle domain.TrackHandle) (time.Duration, error)

	// Duration returns the total length of the track.
	// A negative duration means the length is unknown.
	Duration(handle domain.TrackHandle) (time.Duration, error)
}
