package ring

import (
	"iter"

	"github.com/oomph-ac/grip/oerror"
)

// Buffer is a fixed-capacity FIFO that overwrites its oldest element once full.
type Buffer[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// New returns a Buffer that can hold capacity elements.
func New[T any](capacity int) *Buffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Get returns the element at logical position index (0 = oldest), or an error if out of range.
func (b *Buffer[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= b.size {
		return zero, oerror.New("ring: get out of range (%d/%d)", index, b.size)
	}
	return b.items[(b.head+index)%len(b.items)], nil
}

// All iterates the buffer from oldest to newest.
func (b *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range b.size {
			if !yield(b.items[(b.head+index)%len(b.items)]) {
				return
			}
		}
	}
}

// Len returns the number of elements currently in the buffer.
func (b *Buffer[T]) Len() int {
	return b.size
}

// Cap returns the maximum number of elements the buffer can hold.
func (b *Buffer[T]) Cap() int {
	return len(b.items)
}

// Pop removes and returns the oldest element. The boolean ok is false if the buffer is empty.
func (b *Buffer[T]) Pop() (item T, ok bool) {
	if b.size == 0 {
		return item, false
	}
	var zero T
	item = b.items[b.head]
	b.items[b.head] = zero
	b.head = (b.head + 1) % len(b.items)
	b.size--
	return item, true
}

// Push appends an item, dropping the oldest element if the buffer is full. It returns true if an
// element was dropped, and an error if the buffer has zero capacity.
func (b *Buffer[T]) Push(item T) (dropped bool, err error) {
	if len(b.items) == 0 {
		return false, oerror.New("ring: push on zero-capacity buffer")
	}

	b.items[b.tail] = item
	if b.size == len(b.items) {
		// Full: the write above replaced the element at head.
		b.head = (b.head + 1) % len(b.items)
		dropped = true
	} else {
		b.size++
	}
	b.tail = (b.tail + 1) % len(b.items)
	return dropped, nil
}

// Clear removes all elements from the buffer.
func (b *Buffer[T]) Clear() {
	clear(b.items)
	b.head, b.tail, b.size = 0, 0, 0
}
