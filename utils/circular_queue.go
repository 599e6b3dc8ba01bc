package utils

import (
	"iter"

	"github.com/oomph-ac/charsim/oerror"
)

// CircularQueue is a fixed-capacity FIFO. Appending to a full queue overwrites the oldest item.
type CircularQueue[T any] struct {
	items []T
	head  int
	size  int
}

func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Get returns the element at logical position index (0 = oldest).
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, oerror.New("circular queue: index %d out of range [0, %d)", index, q.size)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Iter yields the queued items from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of queued items.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Pop removes and returns the oldest element. ok is false if the queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Append adds an item at the back. When the queue is full the oldest item is dropped and returned
// with evicted set.
func (q *CircularQueue[T]) Append(item T) (dropped T, evicted bool, err error) {
	if len(q.items) == 0 {
		return dropped, false, oerror.New("circular queue: append on zero-capacity queue")
	}
	if q.size == len(q.items) {
		dropped, evicted = q.items[q.head], true
		q.items[q.head] = item
		q.head = (q.head + 1) % len(q.items)
		return dropped, evicted, nil
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++
	return dropped, false, nil
}

// Reset empties the queue without releasing its storage.
func (q *CircularQueue[T]) Reset() {
	clear(q.items)
	q.head, q.size = 0, 0
}
