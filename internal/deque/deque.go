// Package deque provides the double-ended queue used for the upcoming and
// played lists. It wraps github.com/gammazero/deque with the few bulk
// operations the player needs.
package deque

import (
	gdeque "github.com/gammazero/deque"
)

// Deque is a double-ended queue of T. The zero value is an empty deque ready to use.
// It is not safe for concurrent use.
type Deque[T any] struct {
	q gdeque.Deque[T]
}

// New returns a deque holding items in order, items[0] at the front.
func New[T any](items ...T) *Deque[T] {
	d := &Deque[T]{}
	d.PushBackAll(items)
	return d
}

// Len returns the number of items.
func (d *Deque[T]) Len() int {
	return d.q.Len()
}

// Empty reports whether the deque holds no items.
func (d *Deque[T]) Empty() bool {
	return d.q.Len() == 0
}

// PushFront inserts v at the front.
func (d *Deque[T]) PushFront(v T) {
	d.q.PushFront(v)
}

// PushBack appends v at the back.
func (d *Deque[T]) PushBack(v T) {
	d.q.PushBack(v)
}

// PushFrontAll inserts items at the front keeping their relative order,
// so items[0] becomes the new front.
func (d *Deque[T]) PushFrontAll(items []T) {
	for i := len(items) - 1; i >= 0; i-- {
		d.q.PushFront(items[i])
	}
}

// PushBackAll appends items at the back in order.
func (d *Deque[T]) PushBackAll(items []T) {
	for _, v := range items {
		d.q.PushBack(v)
	}
}

// PopFront removes and returns the front item. ok is false when empty.
func (d *Deque[T]) PopFront() (v T, ok bool) {
	if d.q.Len() == 0 {
		return v, false
	}
	return d.q.PopFront(), true
}

// Front returns the front item without removing it. ok is false when empty.
func (d *Deque[T]) Front() (v T, ok bool) {
	if d.q.Len() == 0 {
		return v, false
	}
	return d.q.Front(), true
}

// At returns the item at index i, counted from the front.
// It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	return d.q.At(i)
}

// Clear removes every item.
func (d *Deque[T]) Clear() {
	d.q.Clear()
}

// Snapshot copies the items front to back.
func (d *Deque[T]) Snapshot() []T {
	out := make([]T, d.q.Len())
	for i := range out {
		out[i] = d.q.At(i)
	}
	return out
}
