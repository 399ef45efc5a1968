package fanheap

// Buffer is the tie-break structure behind Dequeue: within one scheduling
// round several branches can report a value at once, and Buffer orders
// them by the caller's less function (arrival order with a deterministic
// branch tie-break) instead of releasing them in whatever order the
// draining goroutines happened to win the race. Unlike a bounded work
// queue, it never rejects a write — Dequeue drains it completely once per
// round, so there's nothing to enforce a capacity against.
type Buffer[T any] struct {
	heap *heap[T]
}

// New creates a priority queue buffer ordered by less. A positive capacity
// preallocates the backing slice for that many items.
func New[T any](capacity int, less func(item1, item2 T) bool) *Buffer[T] {
	h := newHeap[T](less)
	if capacity > 0 {
		h.Grow(capacity)
	}

	return &Buffer[T]{heap: h}
}

func (b *Buffer[T]) IsEmpty() bool {
	return b.heap.Len() == 0
}

func (b *Buffer[T]) Read() T {
	return b.heap.Pop()
}

func (b *Buffer[T]) Write(v T) {
	b.heap.Push(v)
}
