// Package ringbuf provides a fixed-capacity FIFO used for craft inventories,
// hit history and queued sound requests.
package ringbuf

// Ring is a bounded queue. Pushing into a full ring fails instead of
// overwriting.
type Ring[T any] struct {
	items []T
	head  int
	count int
}

// New returns an empty ring holding at most capacity items.
func New[T any](capacity int) *Ring[T] {
	return &Ring[T]{items: make([]T, capacity)}
}

// TryPush appends v. It returns false when the ring is full.
func (r *Ring[T]) TryPush(v T) bool {
	if r.count == len(r.items) {
		return false
	}
	r.items[(r.head+r.count)%len(r.items)] = v
	r.count++
	return true
}

// PopFront removes and returns the oldest item.
func (r *Ring[T]) PopFront() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	v := r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) % len(r.items)
	r.count--
	return v, true
}

// Front returns the oldest item without removing it.
func (r *Ring[T]) Front() (T, bool) {
	if r.count == 0 {
		var zero T
		return zero, false
	}
	return r.items[r.head], true
}

func (r *Ring[T]) Len() int    { return r.count }
func (r *Ring[T]) Cap() int    { return len(r.items) }
func (r *Ring[T]) Full() bool  { return r.count == len(r.items) }
func (r *Ring[T]) Empty() bool { return r.count == 0 }

// Clear drops every item.
func (r *Ring[T]) Clear() {
	for r.count > 0 {
		r.PopFront()
	}
	r.head = 0
}

// Each calls fn for every item from oldest to newest.
func (r *Ring[T]) Each(fn func(T)) {
	for i := 0; i < r.count; i++ {
		fn(r.items[(r.head+i)%len(r.items)])
	}
}
