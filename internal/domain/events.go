// Package domain defines events for the event-driven architecture.
// Events let the UI react to playback and library changes without the services knowing about it.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events
	EventTrackStarted   EventType = "track.started"
	EventTrackPaused    EventType = "track.paused"
	EventTrackStopped   EventType = "track.stopped"
	EventTrackRestarted EventType = "track.restarted"
	EventTrackProgress  EventType = "track.progress"
	EventTrackError     EventType = "track.error"
	EventAutoNext       EventType = "track.auto_next"

	// Queue events
	EventQueueChanged EventType = "queue.changed"

	// Library events
	EventLibraryScanned EventType = "library.scanned"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackStartedEvent is published when a track becomes current and starts playing.
type TrackStartedEvent struct {
	baseEvent
	Path   string
	Handle TrackHandle
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType {
	return EventTrackStarted
}

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(path string, handle TrackHandle) TrackStartedEvent {
	return TrackStartedEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
		Handle:    handle,
	}
}

// TrackPausedEvent is published when playback is paused.
type TrackPausedEvent struct {
	baseEvent
	Path     string
	Position time.Duration
}

// Type returns the event type.
func (e TrackPausedEvent) Type() EventType {
	return EventTrackPaused
}

// NewTrackPausedEvent creates a new TrackPausedEvent.
func NewTrackPausedEvent(path string, position time.Duration) TrackPausedEvent {
	return TrackPausedEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
		Position:  position,
	}
}

// TrackStoppedEvent is published when playback is stopped and the session released.
type TrackStoppedEvent struct {
	baseEvent
	Path string
}

// Type returns the event type.
func (e TrackStoppedEvent) Type() EventType {
	return EventTrackStopped
}

// NewTrackStoppedEvent creates a new TrackStoppedEvent.
func NewTrackStoppedEvent(path string) TrackStoppedEvent {
	return TrackStoppedEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
	}
}

// TrackRestartedEvent is published when skip-back restarts the current track.
type TrackRestartedEvent struct {
	baseEvent
	Path string
}

// Type returns the event type.
func (e TrackRestartedEvent) Type() EventType {
	return EventTrackRestarted
}

// NewTrackRestartedEvent creates a new TrackRestartedEvent.
func NewTrackRestartedEvent(path string) TrackRestartedEvent {
	return TrackRestartedEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
	}
}

// TrackProgressEvent is published on every tick while a session is open.
type TrackProgressEvent struct {
	baseEvent
	Path     string
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType {
	return EventTrackProgress
}

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(path string, position, duration time.Duration) TrackProgressEvent {
	return TrackProgressEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
		Position:  position,
		Duration:  duration,
	}
}

// TrackErrorEvent is published when a track cannot be found or played.
type TrackErrorEvent struct {
	baseEvent
	Path  string
	Error error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType {
	return EventTrackError
}

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(path string, err error) TrackErrorEvent {
	return TrackErrorEvent{
		baseEvent: newBaseEvent(),
		Path:      path,
		Error:     err,
	}
}

// AutoNextEvent is published when a track ended and the player moved on by itself.
type AutoNextEvent struct {
	baseEvent
	From string
	To   string
}

// Type returns the event type.
func (e AutoNextEvent) Type() EventType {
	return EventAutoNext
}

// NewAutoNextEvent creates a new AutoNextEvent.
func NewAutoNextEvent(from, to string) AutoNextEvent {
	return AutoNextEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
	}
}

// QueueChangeKind says how the upcoming queue was changed.
type QueueChangeKind string

const (
	QueuedNext    QueueChangeKind = "next"
	QueuedLast    QueueChangeKind = "last"
	QueueReplaced QueueChangeKind = "replaced"
)

// QueueChangedEvent is published when the upcoming queue changes.
type QueueChangedEvent struct {
	baseEvent
	Kind     QueueChangeKind
	Added    int
	Upcoming []string
}

// Type returns the event type.
func (e QueueChangedEvent) Type() EventType {
	return EventQueueChanged
}

// NewQueueChangedEvent creates a new QueueChangedEvent.
func NewQueueChangedEvent(kind QueueChangeKind, added int, upcoming []string) QueueChangedEvent {
	return QueueChangedEvent{
		baseEvent: newBaseEvent(),
		Kind:      kind,
		Added:     added,
		Upcoming:  upcoming,
	}
}

// LibraryScannedEvent is published once the library finished scanning and indexing.
type LibraryScannedEvent struct {
	baseEvent
	MusicDir   string
	Tracks     int
	Playlists  int
	IndexSizes map[TagKey]int
	Elapsed    time.Duration
}

// Type returns the event type.
func (e LibraryScannedEvent) Type() EventType {
	return EventLibraryScanned
}

// NewLibraryScannedEvent creates a new LibraryScannedEvent.
func NewLibraryScannedEvent(musicDir string, tracks, playlists int, sizes map[TagKey]int, elapsed time.Duration) LibraryScannedEvent {
	return LibraryScannedEvent{
		baseEvent:  newBaseEvent(),
		MusicDir:   musicDir,
		Tracks:     tracks,
		Playlists:  playlists,
		IndexSizes: sizes,
		Elapsed:    elapsed,
	}
}
