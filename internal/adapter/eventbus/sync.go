// Package eventbus provides implementations of the EventBus interface.
// This package contains the synchronous event bus implementation.
package eventbus

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/tejashwikalptaru/termtune/internal/domain"
	"github.com/tejashwikalptaru/termtune/internal/ports"
)

// SyncEventBus delivers events synchronously, on the publisher's goroutine,
// in subscription order. Type-specific handlers run before wildcard handlers.
//
// Thread-safety: subscribe, unsubscribe and publish may be called concurrently.
// Handlers run outside the lock, so a handler may publish or subscribe itself.
type SyncEventBus struct {
	logger *slog.Logger

	// subscribers map event types to their subscriptions
	subscribers map[domain.EventType][]subscription

	// allSubscribers receive every event
	allSubscribers []subscription

	mu        sync.RWMutex
	idCounter atomic.Uint64
	closed    bool
}

type subscription struct {
	id      domain.SubscriptionID
	filter  ports.EventFilter
	handler domain.EventHandler
}

// NewSyncEventBus creates a new synchronous event bus. A nil logger discards output.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncEventBus{
		logger:      logger.With(slog.String("component", "eventbus")),
		subscribers: make(map[domain.EventType][]subscription),
	}
}

// Publish delivers event to its type subscribers, then to wildcard subscribers.
//
// Publishing nil or publishing on a closed bus does nothing. A panicking
// handler is logged and does not stop delivery to the others.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	targets := slices.Concat(bus.subscribers[event.Type()], bus.allSubscribers)
	bus.mu.RUnlock()

	for _, sub := range targets {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		bus.deliver(sub, event)
	}
}

func (bus *SyncEventBus) deliver(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			bus.logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("event_type", string(event.Type())),
				slog.String("subscription", string(sub.id)))
		}
	}()

	if event.Type() != domain.EventTrackProgress {
		bus.logger.Debug("event published",
			slog.String("event_type", string(event.Type())),
			slog.String("subscription", string(sub.id)))
	}
	sub.handler(event)
}

// Subscribe registers a handler for events of the specified type.
// It panics on a nil handler or a closed bus.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	return bus.SubscribeFiltered(eventType, nil, handler)
}

// SubscribeFiltered registers a handler that only sees events accepted by filter.
// A nil filter accepts everything.
func (bus *SyncEventBus) SubscribeFiltered(eventType domain.EventType, filter ports.EventFilter, handler domain.EventHandler) domain.SubscriptionID {
	sub := bus.newSubscription("sub", filter, handler)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.ensureOpen()

	bus.subscribers[eventType] = append(bus.subscribers[eventType], sub)
	return sub.id
}

// SubscribeAll registers a handler that receives all events regardless of type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	sub := bus.newSubscription("sub-all", nil, handler)

	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.ensureOpen()

	bus.allSubscribers = append(bus.allSubscribers, sub)
	return sub.id
}

func (bus *SyncEventBus) newSubscription(prefix string, filter ports.EventFilter, handler domain.EventHandler) subscription {
	if handler == nil {
		panic("event handler cannot be nil")
	}
	return subscription{
		id:      domain.SubscriptionID(fmt.Sprintf("%s-%d", prefix, bus.idCounter.Add(1))),
		filter:  filter,
		handler: handler,
	}
}

// ensureOpen must be called with mu held.
func (bus *SyncEventBus) ensureOpen() {
	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}
}

// Unsubscribe removes a subscription. Unknown IDs are ignored.
// The remaining handlers keep their delivery order.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	match := func(s subscription) bool { return s.id == id }

	for eventType, subs := range bus.subscribers {
		if slices.ContainsFunc(subs, match) {
			bus.subscribers[eventType] = slices.DeleteFunc(subs, match)
			return
		}
	}
	bus.allSubscribers = slices.DeleteFunc(bus.allSubscribers, match)
}

// HasSubscribers reports whether publishing eventType would reach any handler.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return len(bus.subscribers[eventType]) > 0 || len(bus.allSubscribers) > 0
}

// Close drops every subscription. Later publishes are ignored.
// Closing twice returns an error.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}

	bus.closed = true
	bus.subscribers = make(map[domain.EventType][]subscription)
	bus.allSubscribers = nil
	return nil
}

// SubscriberCount returns the number of active subscriptions, wildcard included.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.allSubscribers)
	for _, subs := range bus.subscribers {
		count += len(subs)
	}
	return count
}

var _ ports.FilteringEventBus = (*SyncEventBus)(nil)
