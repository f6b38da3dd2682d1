package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/logger"
	"github.com/tejashwikalptaru/termtune/internal/testutil"
)

func newBus(t *testing.T) *SyncEventBus {
	t.Helper()
	bus := NewSyncEventBus(logger.NewTestLogger())
	t.Cleanup(func() { _ = bus.Close() })
	return bus
}

func TestNewSyncEventBus(t *testing.T) {
	bus := NewSyncEventBus(nil)

	require.NotNil(t, bus)
	assert.Equal(t, 0, bus.SubscriberCount())
	assert.False(t, bus.closed)
}

func TestPublishSubscribe(t *testing.T) {
	bus := newBus(t)

	var received []domain.Event
	subID := bus.Subscribe(domain.EventTrackStarted, func(event domain.Event) {
		received = append(received, event)
	})
	require.NotEmpty(t, subID)

	bus.Publish(domain.NewTrackStartedEvent("/music/a.mp3", 7))

	require.Len(t, received, 1)
	started, ok := received[0].(domain.TrackStartedEvent)
	require.True(t, ok)
	assert.Equal(t, "/music/a.mp3", started.Path)
	assert.Equal(t, domain.TrackHandle(7), started.Handle)
	assert.False(t, started.Timestamp().IsZero())
}

func TestDeliveryOrder(t *testing.T) {
	bus := newBus(t)

	var order []string
	bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })
	bus.Subscribe(domain.EventTrackStopped, func(domain.Event) { order = append(order, "first") })
	bus.Subscribe(domain.EventTrackStopped, func(domain.Event) { order = append(order, "second") })

	bus.Publish(domain.NewTrackStoppedEvent("/music/a.mp3"))

	assert.Equal(t, []string{"first", "second", "all"}, order)
}

func TestUnsubscribe(t *testing.T) {
	bus := newBus(t)

	var calls int
	subID := bus.Subscribe(domain.EventTrackStarted, func(domain.Event) { calls++ })

	bus.Publish(domain.NewTrackStartedEvent("a", 1))
	bus.Unsubscribe(subID)
	bus.Publish(domain.NewTrackStartedEvent("a", 1))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.SubscriberCount())
}

func TestUnsubscribeKeepsOrder(t *testing.T) {
	bus := newBus(t)

	var order []int
	first := bus.Subscribe(domain.EventQueueChanged, func(domain.Event) { order = append(order, 1) })
	bus.Subscribe(domain.EventQueueChanged, func(domain.Event) { order = append(order, 2) })
	bus.Subscribe(domain.EventQueueChanged, func(domain.Event) { order = append(order, 3) })

	bus.Unsubscribe(first)
	bus.Publish(domain.NewQueueChangedEvent(domain.QueuedLast, 1, nil))

	assert.Equal(t, []int{2, 3}, order)
}

func TestUnsubscribeWildcard(t *testing.T) {
	bus := newBus(t)

	var calls int
	id := bus.SubscribeAll(func(domain.Event) { calls++ })
	bus.Unsubscribe(id)
	bus.Publish(domain.NewTrackStoppedEvent("a"))

	assert.Zero(t, calls)
}

func TestUnsubscribeInvalidID(t *testing.T) {
	bus := newBus(t)

	assert.NotPanics(t, func() {
		bus.Unsubscribe("invalid-id")
		bus.Unsubscribe("")
	})
}

func TestSubscribeAll(t *testing.T) {
	bus := newBus(t)

	var received []domain.EventType
	bus.SubscribeAll(func(event domain.Event) {
		received = append(received, event.Type())
	})

	bus.Publish(domain.NewTrackStartedEvent("a", 1))
	bus.Publish(domain.NewTrackPausedEvent("a", 10*time.Second))
	bus.Publish(domain.NewQueueChangedEvent(domain.QueuedNext, 2, []string{"b", "c"}))

	assert.Equal(t, []domain.EventType{
		domain.EventTrackStarted,
		domain.EventTrackPaused,
		domain.EventQueueChanged,
	}, received)
}

func TestSubscribeFiltered(t *testing.T) {
	bus := newBus(t)

	var paths []string
	bus.SubscribeFiltered(domain.EventTrackProgress,
		func(e domain.Event) bool {
			return e.(domain.TrackProgressEvent).Path == "/music/b.mp3"
		},
		func(e domain.Event) {
			paths = append(paths, e.(domain.TrackProgressEvent).Path)
		})

	bus.Publish(domain.NewTrackProgressEvent("/music/a.mp3", time.Second, time.Minute))
	bus.Publish(domain.NewTrackProgressEvent("/music/b.mp3", time.Second, time.Minute))

	assert.Equal(t, []string{"/music/b.mp3"}, paths)
}

func TestHasSubscribers(t *testing.T) {
	bus := newBus(t)

	assert.False(t, bus.HasSubscribers(domain.EventTrackStarted))

	bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {})

	assert.True(t, bus.HasSubscribers(domain.EventTrackStarted))
	assert.False(t, bus.HasSubscribers(domain.EventTrackPaused))

	bus.SubscribeAll(func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventTrackPaused))
}

func TestHandlerPanic(t *testing.T) {
	log, buf := logger.NewBufferLogger()
	bus := NewSyncEventBus(log)
	defer bus.Close()

	var calls int
	bus.Subscribe(domain.EventTrackError, func(domain.Event) { panic("test panic") })
	bus.Subscribe(domain.EventTrackError, func(domain.Event) { calls++ })

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewTrackErrorEvent("a", errors.New("boom")))
	})
	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "event handler panicked")
}

func TestHandlerCanPublish(t *testing.T) {
	bus := newBus(t)

	var stopped int
	bus.Subscribe(domain.EventTrackStopped, func(domain.Event) { stopped++ })
	bus.Subscribe(domain.EventTrackError, func(e domain.Event) {
		bus.Publish(domain.NewTrackStoppedEvent(e.(domain.TrackErrorEvent).Path))
	})

	bus.Publish(domain.NewTrackErrorEvent("a", domain.ErrNotFound))

	assert.Equal(t, 1, stopped)
}

func TestClose(t *testing.T) {
	bus := NewSyncEventBus(nil)

	bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {})
	bus.SubscribeAll(func(domain.Event) {})
	require.Equal(t, 2, bus.SubscriberCount())

	require.NoError(t, bus.Close())
	assert.Equal(t, 0, bus.SubscriberCount())

	assert.NotPanics(t, func() { bus.Publish(domain.NewTrackStartedEvent("a", 1)) })
	assert.Error(t, bus.Close())
	assert.Panics(t, func() { bus.Subscribe(domain.EventTrackStarted, func(domain.Event) {}) })
}

func TestNilEvent(t *testing.T) {
	bus := newBus(t)

	var calls int
	bus.SubscribeAll(func(domain.Event) { calls++ })
	bus.Publish(nil)

	assert.Zero(t, calls)
}

func TestNilHandler(t *testing.T) {
	bus := newBus(t)

	assert.Panics(t, func() { bus.Subscribe(domain.EventTrackStarted, nil) })
	assert.Panics(t, func() { bus.SubscribeAll(nil) })
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var events atomic.Int32
	handler := func(domain.Event) { events.Add(1) }
	bus.Subscribe(domain.EventTrackProgress, handler)

	const publishers = 8
	const perPublisher = 100

	var wg sync.WaitGroup
	for range publishers {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range perPublisher {
				bus.Publish(domain.NewTrackProgressEvent("a", time.Second, time.Minute))
			}
		}()
		go func() {
			defer wg.Done()
			for range 10 {
				bus.Subscribe(domain.EventAutoNext, handler)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(publishers*perPublisher), events.Load())
	assert.Equal(t, 1+publishers*10, bus.SubscriberCount())
}
