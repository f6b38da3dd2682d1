package service

import (
	"github.com/tejashwikalptaru/termtune/internal/deque"
	"github.com/tejashwikalptaru/termtune/internal/domain"
)

// PlaybackQueue holds the "up next" list and the "played" history.
//
// The front of upcoming is the next track to play. The front of history is the
// most recently made-current track, which is the current track whenever history
// is non-empty. A path may appear any number of times in either list.
//
// PlaybackQueue is not safe for concurrent use; PlaybackService serialises access.
type PlaybackQueue struct {
	upcoming deque.Deque[string]
	history  deque.Deque[string]
}

// NewPlaybackQueue returns an empty queue.
func NewPlaybackQueue() *PlaybackQueue {
	return &PlaybackQueue{}
}

// EnqueueNext places the selection at the front of upcoming, keeping the
// selection's own order. Each call goes ahead of earlier calls.
func (q *PlaybackQueue) EnqueueNext(sel domain.Selection) {
	if sel.IsEmpty() {
		return
	}
	q.upcoming.PushFrontAll(sel.Paths())
}

// EnqueueLast appends the selection to the back of upcoming.
func (q *PlaybackQueue) EnqueueLast(sel domain.Selection) {
	if sel.IsEmpty() {
		return
	}
	q.upcoming.PushBackAll(sel.Paths())
}

// Advance pops the next track off upcoming and makes it current.
// It returns false, leaving history untouched, when upcoming is empty.
func (q *PlaybackQueue) Advance() (string, bool) {
	next, ok := q.upcoming.PopFront()
	if !ok {
		return "", false
	}
	q.makeCurrent(next)
	return next, true
}

// Retreat steps back to the previously played track. The current track is put
// back at the front of upcoming so it plays next, and the previous track
// becomes current. It returns false when there is no previous track.
func (q *PlaybackQueue) Retreat() (string, bool) {
	if q.history.Len() < 2 {
		return "", false
	}
	current, _ := q.history.PopFront()
	previous, _ := q.history.PopFront()
	q.upcoming.PushFront(current)
	q.makeCurrent(previous)
	return previous, true
}

// makeCurrent is the only place a track enters history.
func (q *PlaybackQueue) makeCurrent(path string) {
	q.history.PushFront(path)
}

// Discard drops the current track from history without re-queuing it.
// It is used when the current track turns out to be unplayable.
func (q *PlaybackQueue) Discard() (string, bool) {
	return q.history.PopFront()
}

// ClearUpcoming empties the upcoming list. History is kept.
func (q *PlaybackQueue) ClearUpcoming() {
	q.upcoming.Clear()
}

// Current returns the current track, if any.
func (q *PlaybackQueue) Current() (string, bool) {
	return q.history.Front()
}

// Upcoming returns a copy of upcoming, next track first.
func (q *PlaybackQueue) Upcoming() []string {
	return q.upcoming.Snapshot()
}

// History returns a copy of history, current track first.
func (q *PlaybackQueue) History() []string {
	return q.history.Snapshot()
}

// UpcomingLen returns the number of queued tracks.
func (q *PlaybackQueue) UpcomingLen() int {
	return q.upcoming.Len()
}

// HistoryLen returns the number of played tracks, current included.
func (q *PlaybackQueue) HistoryLen() int {
	return q.history.Len()
}
