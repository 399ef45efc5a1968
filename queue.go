package flow

import (
	"sync"

	"github.com/mccutchen/flow/internal/ring"
)

// Queue is the bounded producer-consumer device from §4.7/§6: a writer side
// with both a lossy Put (never blocks, reports whether the value was
// accepted) and a lossless Write (suspends until space is available), and a
// reader side that drains in FIFO order and yields end once End has been
// called and the buffer has drained.
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	buf      ring.Buffer[T]
	max      int
	ended    bool
	stopped  bool
	stopErr  error
	silent   bool
	recorder Recorder
}

// QueueOption configures NewQueue.
type QueueOption[T any] func(*Queue[T])

// WithRecorder attaches an observability Recorder to the queue, so its
// depth can be reported without the queue itself doing any logging.
func WithRecorder[T any](r Recorder) QueueOption[T] {
	return func(q *Queue[T]) {
		q.recorder = r
	}
}

// NewQueue creates a queue device with the given positive capacity.
func NewQueue[T any](max int, opts ...QueueOption[T]) *Queue[T] {
	if max <= 0 {
		panic("flow: queue capacity must be positive")
	}

	q := &Queue[T]{max: max, recorder: noopRecorder{}}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)

	for _, opt := range opts {
		opt(q)
	}
	if q.recorder == nil {
		q.recorder = noopRecorder{}
	}
	return q
}

func (q *Queue[T]) isFull() bool {
	return q.buf.Len() >= q.max
}

// Put is the non-suspending, lossy write: it returns true if v was
// accepted, false if the queue was full or already ended.
func (q *Queue[T]) Put(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ended || q.isFull() {
		q.recorder.IncDropped("queue")
		return false
	}
	q.buf.Write(v)
	q.recorder.ObserveQueueDepth(q.buf.Len())
	q.notEmpty.Signal()
	return true
}

// Write is the lossless write: it suspends until there is room, then
// enqueues v. It returns an error if the queue has already ended.
func (q *Queue[T]) Write(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.ended && q.isFull() {
		q.notFull.Wait()
	}
	if q.ended {
		return ErrWriteAfterEnd
	}

	q.buf.Write(v)
	q.recorder.ObserveQueueDepth(q.buf.Len())
	q.notEmpty.Signal()
	return nil
}

// Close is an alias for End, so *Queue[T] satisfies Writer[T] (minus Stop,
// provided below) for use as a plain sink.
func (q *Queue[T]) Close() error {
	return q.End()
}

// End closes the producer side. After End, the reader drains whatever is
// already buffered, then returns end.
func (q *Queue[T]) End() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.ended {
		return nil
	}
	q.ended = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
	return nil
}

// Stop aborts the queue. With reason Err(e), a pending or later Read on a
// reader side raises e instead of draining normally; that reader then
// reports end on every Read after the one that raised e.
func (q *Queue[T]) Stop(reason StopReason) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return nil
	}
	q.stopped = true
	q.ended = true

	if err, isErr := reason.IsErr(); isErr {
		q.stopErr = err
	} else if reason.IsSilent() {
		q.silent = true
	}

	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
	return nil
}

// Reader returns the Reader side of the queue: it drains values in FIFO
// order and yields end once End has been called and the buffer empties, or
// surfaces Stop(Err(e)) immediately.
func (q *Queue[T]) Reader() Reader[T] {
	return NewReader(func() (T, bool, error) {
		q.mu.Lock()
		defer q.mu.Unlock()

		var zero T
		if q.stopped && q.stopErr != nil {
			return zero, false, q.stopErr
		}

		for q.buf.Len() == 0 && !q.ended {
			q.notEmpty.Wait()
		}

		if q.stopped && q.stopErr != nil {
			return zero, false, q.stopErr
		}

		if q.buf.Len() == 0 {
			return zero, false, nil
		}

		v, _ := q.buf.Read()
		q.notFull.Signal()
		return v, true, nil
	}, func(reason StopReason) error {
		return q.Stop(reason)
	})
}
